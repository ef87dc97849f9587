package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/service"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// CaretakerHandler serves the caretaker workspace: assigned tasks and the
// growth tracker.
type CaretakerHandler struct {
	tasks     *service.TaskService
	analytics *service.AnalyticsService
}

// NewCaretakerHandler constructs handler.
func NewCaretakerHandler(tasks *service.TaskService, analytics *service.AnalyticsService) *CaretakerHandler {
	return &CaretakerHandler{tasks: tasks, analytics: analytics}
}

// Dashboard handles GET /caretaker/dashboard.
func (h *CaretakerHandler) Dashboard(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	tasks, err := h.tasks.ListForCaretaker(c.UserContext(), identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the dashboard")
	}

	var pending, inProgress, completed int
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusPending:
			pending++
		case domain.TaskStatusInProgress:
			inProgress++
		case domain.TaskStatusCompleted:
			completed++
		}
	}

	return c.Render("caretaker/dashboard", fiber.Map{
		"Title":      "Caretaker Dashboard",
		"User":       identity,
		"Tasks":      tasks,
		"Pending":    pending,
		"InProgress": inProgress,
		"Completed":  completed,
	})
}

// Tasks handles GET /caretaker/tasks.
func (h *CaretakerHandler) Tasks(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	tasks, err := h.tasks.ListForCaretaker(c.UserContext(), identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load your tasks")
	}
	return c.Render("caretaker/tasks", fiber.Map{
		"Title": "My Tasks",
		"User":  identity,
		"Tasks": tasks,
	})
}

// TaskStatus handles POST /tasks/:id/status, shared by admins and
// caretakers. Ownership is enforced in the service.
func (h *CaretakerHandler) TaskStatus(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid task id", nil)
	}

	var req dto.TaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.tasks.UpdateStatus(c.UserContext(), identity, id, domain.TaskStatus(req.Status)); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Task status updated")
}

// GrowthTracker handles GET /caretaker/growth-tracker.
func (h *CaretakerHandler) GrowthTracker(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	measurements, err := h.analytics.ListForCaretaker(c.UserContext(), identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load measurements")
	}
	return c.Render("caretaker/growth-tracker", fiber.Map{
		"Title":        "Growth Tracker",
		"User":         identity,
		"Measurements": measurements,
	})
}

// GrowthTrackerAdd handles GET /caretaker/growth-tracker/add.
func (h *CaretakerHandler) GrowthTrackerAdd(c *fiber.Ctx) error {
	return c.Render("caretaker/growth-tracker-add", fiber.Map{
		"Title": "Log Measurement",
		"User":  mustIdentity(c),
	})
}

// GrowthTrackerSave handles POST /caretaker/growth-tracker/save. Metrics
// arrive as raw form strings; blanks become NULL rather than zero so an
// unmeasured value is distinguishable from a zero reading.
func (h *CaretakerHandler) GrowthTrackerSave(c *fiber.Ctx) error {
	identity := mustIdentity(c)

	var req dto.MeasurementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("caretaker/growth-tracker-add", fiber.Map{
			"Title": "Log Measurement",
			"User":  identity,
			"Flash": dangerFlash("Invalid form submission"),
		})
	}

	measurement := domain.GrowthMeasurement{
		PlantName:       strings.TrimSpace(req.PlantName),
		HeightCm:        optFloat(req.HeightCm),
		WidthCm:         optFloat(req.WidthCm),
		LeafCount:       optInt(req.LeafCount),
		StemDiameterMm:  optFloat(req.StemDiameterMm),
		LeafColor:       req.LeafColor,
		LeafCondition:   req.LeafCondition,
		SunlightHours:   optFloat(req.SunlightHours),
		TemperatureCels: optFloat(req.TemperatureCels),
		HumidityPercent: optFloat(req.HumidityPercent),
		Notes:           req.Notes,
	}

	if _, err := h.analytics.Record(c.UserContext(), identity.ID, measurement); err != nil {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).Render("caretaker/growth-tracker-add", fiber.Map{
			"Title": "Log Measurement",
			"User":  identity,
			"Flash": dangerFlash(domainErr.Message),
			"Form":  req,
		})
	}
	return c.Redirect("/caretaker/growth-tracker", fiber.StatusFound)
}

func optFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &val
}

func optInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &val
}
