package http

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-stock-service/internal/application/dto"
	"github.com/jhoicas/inventario-stock-service/internal/domain"
	"github.com/jhoicas/inventario-stock-service/internal/domain/entity"
	"github.com/jhoicas/inventario-stock-service/pkg/logger"
)

// StockService operaciones del libro mayor que consume la capa HTTP.
// Lo implementa inventory.StockUseCase.
type StockService interface {
	EnsureExists(ctx context.Context, productID int) error
	GetAll(ctx context.Context) ([]*entity.InventoryWithProduct, error)
	GetByProduct(ctx context.Context, productID int) (*entity.InventoryWithProduct, error)
	Increase(ctx context.Context, productID, amount int) (*entity.Inventory, error)
	Decrease(ctx context.Context, productID, amount int) (*entity.Inventory, error)
	SetAbsolute(ctx context.Context, productID, quantity int, reason *string) (*entity.Inventory, error)
	ListMovements(ctx context.Context, productID, limit, offset int) ([]*entity.InventoryMovement, error)
}

// InventoryHandler maneja las peticiones HTTP de existencias.
// Es la frontera validadora: cantidades inválidas se rechazan aquí, antes de
// tocar el caso de uso, y el texto de los errores internos nunca sale al cliente.
type InventoryHandler struct {
	svc StockService
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc StockService, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: log}
}

// GetAll godoc
// @Summary      Listar existencias
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory [get]
func (h *InventoryHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.svc.GetAll(c.Context())
	if err != nil {
		return h.storeError(c, err, "get_all", 0, "Failed to retrieve inventory")
	}
	return c.JSON(dto.OK(dto.FromInventoryWithProductList(list)))
}

// GetByProduct godoc
// @Summary      Existencias de un producto
// @Tags         inventory
// @Produce      json
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory/{product_id} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid product id"))
	}
	rec, err := h.svc.GetByProduct(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Inventory not found for product"))
		}
		return h.storeError(c, err, "get_by_product", productID, "Failed to retrieve inventory")
	}
	return c.JSON(dto.OK(dto.FromInventoryWithProduct(rec)))
}

// IncreaseStock godoc
// @Summary      Aumentar stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        product_id  path  int                  true  "ID del producto"
// @Param        body        body  dto.QuantityRequest  true  "cantidad a sumar (> 0)"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory/{product_id}/increase [post]
func (h *InventoryHandler) IncreaseStock(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid product id"))
	}
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Quantity must be greater than 0"))
	}

	// Primer movimiento de un producto: crear el registro en cero si falta
	if err := h.svc.EnsureExists(c.Context(), productID); err != nil {
		return h.storeError(c, err, "ensure_exists", productID, "Failed to process request")
	}

	inv, err := h.svc.Increase(c.Context(), productID, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Product not found in inventory"))
		}
		return h.storeError(c, err, "increase", productID, "Failed to increase stock")
	}
	h.log.Info().Int("product_id", productID).Int("quantity", in.Quantity).Msg("stock aumentado")
	return c.JSON(dto.OKWithMessage(dto.FromInventory(inv), "Stock increased by "+strconv.Itoa(in.Quantity)))
}

// DecreaseStock godoc
// @Summary      Disminuir stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        product_id  path  int                  true  "ID del producto"
// @Param        body        body  dto.QuantityRequest  true  "cantidad a restar (> 0)"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory/{product_id}/decrease [post]
func (h *InventoryHandler) DecreaseStock(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid product id"))
	}
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Quantity must be greater than 0"))
	}

	inv, err := h.svc.Decrease(c.Context(), productID, in.Quantity)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			msg := "Insufficient stock. Available: " + strconv.Itoa(insufficient.Available) +
				", Requested: " + strconv.Itoa(insufficient.Requested)
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(msg))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Product not found in inventory"))
		}
		return h.storeError(c, err, "decrease", productID, "Failed to decrease stock")
	}
	h.log.Info().Int("product_id", productID).Int("quantity", in.Quantity).Msg("stock disminuido")
	return c.JSON(dto.OKWithMessage(dto.FromInventory(inv), "Stock decreased by "+strconv.Itoa(in.Quantity)))
}

// SetStock godoc
// @Summary      Fijar stock absoluto
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        product_id  path  int                  true  "ID del producto"
// @Param        body        body  dto.SetStockRequest  true  "cantidad absoluta (>= 0) y razón opcional"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory/{product_id} [put]
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid product id"))
	}
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid request body"))
	}
	if in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Quantity cannot be negative"))
	}

	if err := h.svc.EnsureExists(c.Context(), productID); err != nil {
		return h.storeError(c, err, "ensure_exists", productID, "Failed to process request")
	}

	inv, err := h.svc.SetAbsolute(c.Context(), productID, in.Quantity, in.Reason)
	if err != nil {
		return h.storeError(c, err, "set", productID, "Failed to set stock")
	}
	h.log.Info().Int("product_id", productID).Int("quantity", in.Quantity).Msg("stock fijado")
	return c.JSON(dto.OKWithMessage(dto.FromInventory(inv), "Stock set to "+strconv.Itoa(in.Quantity)))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        product_id  path   int  true   "ID del producto"
// @Param        limit       query  int  false  "máximo de filas (default 20)"
// @Param        offset      query  int  false  "desplazamiento (default 0)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      500  {object}  dto.Response
// @Router       /inventory/{product_id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID, err := parseProductID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid product id"))
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("Invalid query parameters"))
	}
	page.DefaultPage()

	movs, err := h.svc.ListMovements(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Error("Inventory not found for product"))
		}
		return h.storeError(c, err, "list_movements", productID, "Failed to retrieve movements")
	}
	return c.JSON(dto.OK(dto.FromMovementList(movs)))
}

// storeError registra el error de almacenamiento con contexto y responde 500
// con un mensaje genérico (el detalle interno no se expone al cliente).
func (h *InventoryHandler) storeError(c *fiber.Ctx, err error, operation string, productID int, message string) error {
	h.log.Error().Err(err).Str("operation", operation).Int("product_id", productID).Msg("error de almacenamiento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error(message))
}

func parseProductID(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("product_id"))
}
