// handlers/catalog_routes.go
package handlers

import (
	"loyalty-admin-system/middleware"
	"loyalty-admin-system/models"
	"loyalty-admin-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, catalogService *services.CatalogService, teamService *services.TeamService) {
	// 🔐 All panel routes require user context forwarded by the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Read access — any team member
	viewer := secured.Group("/", teamService.RequireRole(models.TeamRoleViewer))
	viewer.Get("/catalog", catalogService.GetCatalogItems)
	viewer.Get("/catalog/:id", catalogService.GetCatalogItem)
	viewer.Get("/curation/view", catalogService.GetCurationView)

	// Catalog edits — editor and up
	editor := secured.Group("/", teamService.RequireRole(models.TeamRoleEditor))
	editor.Post("/catalog", catalogService.CreateCatalogItem)
	editor.Put("/catalog/:id", catalogService.UpdateCatalogItem)
	editor.Patch("/catalog/:id", catalogService.UpdateCatalogItem)
	editor.Post("/catalog/:id/image", catalogService.UploadItemImage)
	editor.Patch("/catalog/:id/stock", catalogService.AdjustStock)
	editor.Put("/catalog/:id/stock", catalogService.SetStock)

	// Curation session state
	editor.Post("/curation/refresh", catalogService.RefreshCuration)
	editor.Post("/curation/order-mode", catalogService.SetOrderMode)
	editor.Post("/curation/selection", catalogService.UpdateSelection)
	editor.Delete("/curation/selection", catalogService.ClearSelection)
	editor.Post("/curation/reorder", catalogService.ReorderItem)
	editor.Post("/curation/move", catalogService.MoveSelected)
	editor.Post("/curation/save-order", catalogService.SaveOrder)
	editor.Post("/curation/discard", catalogService.DiscardCuration)

	// Bulk lifecycle transitions
	editor.Post("/curation/bulk/toggle", catalogService.BulkToggle)
	editor.Post("/curation/bulk/sponsor", catalogService.BulkSponsor)
	editor.Post("/curation/bulk/unsponsor", catalogService.BulkUnsponsor)

	// Deletion is destructive — manager and up
	manager := secured.Group("/", teamService.RequireRole(models.TeamRoleManager))
	manager.Delete("/catalog/:id", catalogService.DeleteCatalogItem)
}
