package vault

import (
	"vault-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for vault validation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validation")
	group.Post("/run", h.HandleRun)
	group.Get("/report", h.HandleGetReport)
	group.Get("/entities", h.HandleGetEntities)
}

// HandleRun triggers a reconciliation run and returns its report.
// @Summary Run Validation
// @Description Validate every configured entity against the warehouse. A cached report within its TTL is reused unless force is set. Concurrent triggers share a single run.
// @Tags validation
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the report cache"
// @Success 200 {object} vault.Report "Validation Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	force := c.QueryBool("force")

	report, err := h.service.Run(c.Context(), "http", force)
	if err != nil {
		l.Error("Validation run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleGetReport returns the most recent validation report.
// @Summary Get Latest Report
// @Description Get the most recent validation report without triggering a run.
// @Tags validation
// @Produce json
// @Success 200 {object} vault.Report "Validation Report"
// @Failure 404 {object} map[string]string "No report available yet"
// @Router /validation/report [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	report := h.service.Latest()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no report available yet",
		})
	}
	return c.JSON(report)
}

// HandleGetEntities returns the configured entity list.
// @Summary List Entities
// @Description List the entities this instance validates.
// @Tags validation
// @Produce json
// @Success 200 {array} vault.EntityConfig "Configured Entities"
// @Router /validation/entities [get]
func (h *Handler) HandleGetEntities(c *fiber.Ctx) error {
	return c.JSON(h.service.Entities())
}
