// handlers/claim_routes.go
package handlers

import (
	"loyalty-admin-system/middleware"
	"loyalty-admin-system/models"
	"loyalty-admin-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupClaimRoutes(app *fiber.App, claimService *services.ClaimService, teamService *services.TeamService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	viewer := secured.Group("/", teamService.RequireRole(models.TeamRoleViewer))
	viewer.Get("/claims", claimService.GetClaims)
	viewer.Get("/claims/counts", claimService.GetClaimCounts)

	editor := secured.Group("/", teamService.RequireRole(models.TeamRoleEditor))
	editor.Post("/claims/:id/approve", claimService.ApproveClaim)
	editor.Post("/claims/:id/fulfill", claimService.FulfillClaim)
	editor.Post("/claims/:id/reject", claimService.RejectClaim)
}
