package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-stock-service/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock  StockService
	Logger *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	handler := NewInventoryHandler(deps.Stock, deps.Logger)

	inv := app.Group("/inventory")
	inv.Get("/", handler.GetAll)
	inv.Get("/:product_id", handler.GetByProduct)
	inv.Put("/:product_id", handler.SetStock)
	inv.Post("/:product_id/increase", handler.IncreaseStock)
	inv.Post("/:product_id/decrease", handler.DecreaseStock)
	inv.Get("/:product_id/movements", handler.ListMovements)
}
