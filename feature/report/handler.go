package report

import (
	"bytes"
	"fmt"

	"vault-reconciler/core/logger"
	"vault-reconciler/feature/vault"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Provider yields the most recent finished report. The vault service
// satisfies it.
type Provider interface {
	Latest() *vault.Report
}

// Handler serves report downloads.
type Handler struct {
	provider Provider
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(provider Provider, logger *zap.Logger) *Handler {
	return &Handler{provider: provider, logger: logger}
}

// RegisterRoutes registers the report download routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/validation/report/excel", h.HandleDownloadExcel)
}

// HandleDownloadExcel streams the latest report as an Excel workbook.
// @Summary Download Report Workbook
// @Description Download the most recent validation report as an Excel workbook.
// @Tags validation
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Validation Report Workbook"
// @Failure 404 {object} map[string]string "No report available yet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation/report/excel [get]
func (h *Handler) HandleDownloadExcel(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	r := h.provider.Latest()
	if r == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no report available yet",
		})
	}

	var buf bytes.Buffer
	if err := WriteExcel(r, &buf); err != nil {
		l.Error("Report workbook rendering failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, contentTypeExcel)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, ExcelFileName(r.FinishedAt)))
	return c.Send(buf.Bytes())
}
