// handlers/admin_routes.go — partners, handles, team
package handlers

import (
	"loyalty-admin-system/middleware"
	"loyalty-admin-system/models"
	"loyalty-admin-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, partnerService *services.PartnerService, handleService *services.HandleService, teamService *services.TeamService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Partners — read for everyone on the team, writes for managers
	viewer := secured.Group("/", teamService.RequireRole(models.TeamRoleViewer))
	viewer.Get("/partners", partnerService.GetPartners)
	viewer.Get("/partners/:id", partnerService.GetPartner)
	viewer.Get("/handles", handleService.GetHandles)
	viewer.Get("/handles/check", handleService.CheckHandle)
	viewer.Get("/team", teamService.GetTeamMembers)

	manager := secured.Group("/", teamService.RequireRole(models.TeamRoleManager))
	manager.Post("/partners", partnerService.CreatePartner)
	manager.Put("/partners/:id", partnerService.UpdatePartner)
	manager.Post("/partners/:id/logo", partnerService.UploadPartnerLogo)
	manager.Delete("/partners/:id", partnerService.DeletePartner)
	manager.Post("/handles", handleService.ReserveHandle)
	manager.Delete("/handles/:id", handleService.ReleaseHandle)

	// Team administration — owners only
	owner := secured.Group("/", teamService.RequireRole(models.TeamRoleOwner))
	owner.Post("/team", teamService.AddTeamMember)
	owner.Put("/team/:id/role", teamService.UpdateTeamMemberRole)
	owner.Delete("/team/:id", teamService.RemoveTeamMember)
}
