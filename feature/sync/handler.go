package sync

import (
	"errors"

	"inventory-sync/core/logger"
	"inventory-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleRun)
	group.Get("/plan", h.HandlePlan)
	group.Get("/report", h.HandleLastReport)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:id", h.HandleGetReport)
}

// HandleRun triggers a sync run.
// @Summary Run Sync
// @Description Loads Device42 and the target inventory, diffs them and applies the plan. Applying requires confirm=true unless dry_run is set.
// @Tags sync
// @Accept json
// @Produce json
// @Param dry_run query boolean false "Compute the plan without applying it"
// @Param confirm query boolean false "Confirm that changes may be applied"
// @Param delete query boolean false "Allow deletions for this run"
// @Success 200 {object} reconcile.Report "Run Report"
// @Failure 400 {object} map[string]string "Not Confirmed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := RunOptions{
		DryRun:    c.QueryBool("dry_run", false),
		Confirmed: c.QueryBool("confirm", false),
		Delete:    c.QueryBool("delete", false),
	}
	l.Info("Triggering sync", zap.Bool("dry_run", opts.DryRun), zap.Bool("confirm", opts.Confirmed))

	report, err := h.service.Run(c.Context(), opts)
	if errors.Is(err, reconcile.ErrNotConfirmed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "confirm=true is required to apply changes",
		})
	}
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if report != nil {
			body["report"] = report
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
	return c.JSON(report)
}

// HandlePlan computes the plan without applying it.
// @Summary Preview Sync Plan
// @Description Loads both inventories and returns the ordered operations and the issues found while loading.
// @Tags sync
// @Produce json
// @Param delete query boolean false "Plan deletions for this run"
// @Success 200 {object} PlanResult "Plan"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	result, err := h.service.Plan(c.Context(), c.QueryBool("delete", false))
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleLastReport returns the report of the last run.
// @Summary Last Sync Report
// @Tags sync
// @Produce json
// @Success 200 {object} reconcile.Report "Run Report"
// @Failure 404 {object} map[string]string "No Report"
// @Router /sync/report [get]
func (h *Handler) HandleLastReport(c *fiber.Ctx) error {
	report, err := h.service.Last()
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleListReports lists archived reports.
// @Summary List Archived Reports
// @Description Lists the reports kept in the storage bucket, newest first.
// @Tags sync
// @Produce json
// @Success 200 {array} ArchivedReport "Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	reports, err := h.service.Reports(c.Context())
	if err != nil {
		l.Error("Listing reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived report.
// @Summary Get Archived Report
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} reconcile.Report "Run Report"
// @Failure 400 {object} map[string]string "Invalid Run ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/reports/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context(), c.Params("id"))
	switch {
	case errors.Is(err, ErrInvalidRunID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNoReport):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.service.logger, c).Error("Reading report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
