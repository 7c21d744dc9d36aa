package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock-service/internal/domain"
	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-stock-service/internal/interfaces/http"
	"github.com/jhoicas/inventario-stock-service/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubService implementación configurable de StockService que además registra
// el orden de las llamadas (para verificar EnsureExists antes de mutar).
type stubService struct {
	calls []string

	ensureErr   error
	getAllOut   []*entity.InventoryWithProduct
	getAllErr   error
	getByOut    *entity.InventoryWithProduct
	getByErr    error
	increaseOut *entity.Inventory
	increaseErr error
	decreaseOut *entity.Inventory
	decreaseErr error
	setOut      *entity.Inventory
	setErr      error
	movsOut     []*entity.InventoryMovement
	movsErr     error
}

func (s *stubService) EnsureExists(ctx context.Context, productID int) error {
	s.calls = append(s.calls, "ensure")
	return s.ensureErr
}

func (s *stubService) GetAll(ctx context.Context) ([]*entity.InventoryWithProduct, error) {
	s.calls = append(s.calls, "get_all")
	return s.getAllOut, s.getAllErr
}

func (s *stubService) GetByProduct(ctx context.Context, productID int) (*entity.InventoryWithProduct, error) {
	s.calls = append(s.calls, "get_by_product")
	if s.getByOut == nil && s.getByErr == nil {
		return nil, domain.ErrNotFound
	}
	return s.getByOut, s.getByErr
}

func (s *stubService) Increase(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	s.calls = append(s.calls, "increase")
	return s.increaseOut, s.increaseErr
}

func (s *stubService) Decrease(ctx context.Context, productID, amount int) (*entity.Inventory, error) {
	s.calls = append(s.calls, "decrease")
	return s.decreaseOut, s.decreaseErr
}

func (s *stubService) SetAbsolute(ctx context.Context, productID, quantity int, reason *string) (*entity.Inventory, error) {
	s.calls = append(s.calls, "set")
	return s.setOut, s.setErr
}

func (s *stubService) ListMovements(ctx context.Context, productID, limit, offset int) ([]*entity.InventoryMovement, error) {
	s.calls = append(s.calls, "list_movements")
	return s.movsOut, s.movsErr
}

// envelope espejo del envoltorio {success, data, message} para decodificar respuestas.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
}

func buildTestApp(svc apphttp.StockService) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Stock:  svc,
		Logger: logger.New(logger.Config{Env: "test", Level: "error"}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp, env
}

func sampleInventory(productID, quantity int) *entity.Inventory {
	alert := 10
	return &entity.Inventory{ID: 1, ProductID: productID, Quantity: quantity, MinStockAlert: &alert}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAll_DevuelveListado(t *testing.T) {
	svc := &stubService{getAllOut: []*entity.InventoryWithProduct{
		{Inventory: *sampleInventory(1, 5)},
		{Inventory: *sampleInventory(2, 8)},
	}}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/inventory", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	var data []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data, 2)
}

func TestGetAll_ErrorDeAlmacenamientoNoFiltraDetalle(t *testing.T) {
	svc := &stubService{getAllErr: assert.AnError}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/inventory", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Failed to retrieve inventory", *env.Message)
	assert.NotContains(t, *env.Message, assert.AnError.Error())
}

func TestGetByProduct_NoEncontrado(t *testing.T) {
	app := buildTestApp(&stubService{})

	resp, env := doJSON(t, app, http.MethodGet, "/inventory/7", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Inventory not found for product", *env.Message)
}

func TestGetByProduct_IDInvalido(t *testing.T) {
	svc := &stubService{}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/inventory/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Empty(t, svc.calls, "el servicio no se toca con un id inválido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Increase
// ──────────────────────────────────────────────────────────────────────────────

func TestIncrease_OK(t *testing.T) {
	svc := &stubService{increaseOut: sampleInventory(1, 15)}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/inventory/1/increase", map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Stock increased by 5", *env.Message)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.EqualValues(t, 15, data["quantity"])

	// EnsureExists se llama antes de mutar (primer movimiento de un producto)
	assert.Equal(t, []string{"ensure", "increase"}, svc.calls)
}

func TestIncrease_CantidadInvalida(t *testing.T) {
	svc := &stubService{}
	app := buildTestApp(svc)

	for _, qty := range []int{0, -3} {
		resp, env := doJSON(t, app, http.MethodPost, "/inventory/1/increase", map[string]any{"quantity": qty})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotNil(t, env.Message)
		assert.Equal(t, "Quantity must be greater than 0", *env.Message)
	}
	assert.Empty(t, svc.calls, "la validación rechaza antes de tocar el servicio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Decrease
// ──────────────────────────────────────────────────────────────────────────────

func TestDecrease_OK(t *testing.T) {
	svc := &stubService{decreaseOut: sampleInventory(1, 30)}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/inventory/1/decrease", map[string]any{"quantity": 20})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Stock decreased by 20", *env.Message)
}

func TestDecrease_StockInsuficiente(t *testing.T) {
	svc := &stubService{decreaseErr: &domain.InsufficientStockError{Available: 3, Requested: 10}}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/inventory/1/decrease", map[string]any{"quantity": 10})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Insufficient stock. Available: 3, Requested: 10", *env.Message)
}

func TestDecrease_ProductoSinRegistro(t *testing.T) {
	svc := &stubService{decreaseErr: domain.ErrNotFound}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/inventory/1/decrease", map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Product not found in inventory", *env.Message)
}

func TestDecrease_CantidadInvalida(t *testing.T) {
	svc := &stubService{}
	app := buildTestApp(svc)

	resp, _ := doJSON(t, app, http.MethodPost, "/inventory/1/decrease", map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetStock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStock_OK(t *testing.T) {
	svc := &stubService{setOut: sampleInventory(1, 10)}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPut, "/inventory/1", map[string]any{"quantity": 10, "reason": "correction"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Stock set to 10", *env.Message)
	assert.Equal(t, []string{"ensure", "set"}, svc.calls)
}

func TestSetStock_CantidadNegativa(t *testing.T) {
	svc := &stubService{}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodPut, "/inventory/1", map[string]any{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Quantity cannot be negative", *env.Message)
	assert.Empty(t, svc.calls)
}

func TestSetStock_CantidadCeroEsValida(t *testing.T) {
	svc := &stubService{setOut: sampleInventory(1, 0)}
	app := buildTestApp(svc)

	resp, _ := doJSON(t, app, http.MethodPut, "/inventory/1", map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_OK(t *testing.T) {
	reason := "Stock decreased"
	svc := &stubService{movsOut: []*entity.InventoryMovement{
		{ID: 2, ProductID: 1, QuantityChange: -20, Type: entity.MovementTypeDecrease, Reason: &reason},
		{ID: 1, ProductID: 1, QuantityChange: 50, Type: entity.MovementTypeIncrease},
	}}
	app := buildTestApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/inventory/1/movements", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var data []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 2)
	assert.EqualValues(t, -20, data[0]["quantity_change"])
	assert.Equal(t, "decrease", data[0]["movement_type"])
}

func TestListMovements_ProductoSinRegistro(t *testing.T) {
	svc := &stubService{movsErr: domain.ErrNotFound}
	app := buildTestApp(svc)

	resp, _ := doJSON(t, app, http.MethodGet, "/inventory/9/movements", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
