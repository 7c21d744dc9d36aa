package dto

// Response envoltorio estándar de la API: {success, data, message}.
// En errores: success=false, data=null, message con texto apto para el cliente.
type Response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Message *string `json:"message"`
}

// OK respuesta exitosa sin mensaje.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKWithMessage respuesta exitosa con mensaje.
func OKWithMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: &message}
}

// Error respuesta de error con mensaje apto para el cliente.
func Error(message string) Response {
	return Response{Success: false, Message: &message}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
