// handlers/dashboard.go
package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"flowai-dashboard/i18n"
	"flowai-dashboard/middleware"
	"flowai-dashboard/models"
	"flowai-dashboard/services"
	"flowai-dashboard/workers"
)

// Dashboard bundles what the local control API drives.
type Dashboard struct {
	Session         *services.Session
	Agent           *services.Agent
	Poller          *workers.Poller
	Hub             *services.EventHub
	Stats           *services.StatsService
	Reports         *services.ReportService // nil when no bucket is configured
	DefaultInterval time.Duration
}

// maxIntervalMS caps the auto-work period at one day.
const maxIntervalMS = int64(24 * time.Hour / time.Millisecond)

func SetupDashboardRoutes(app *fiber.App, d *Dashboard, token string) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "time": time.Now().UTC()})
	})

	// Event stream authenticates via query param, so it sits outside the header-auth group
	app.Get("/api/events", middleware.SSEAuthMiddleware(token), StreamEvents(d.Hub))

	api := app.Group("/api", middleware.DashboardAuthMiddleware(token), middleware.LanguageMiddleware(d.Session.Translator))

	api.Get("/session", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session":    d.Session.Snapshot(),
			"buttons":    d.Hub.Buttons(),
			"poller":     d.Poller.State(),
			"aggregates": d.Hub.Aggregates(),
			"network":    d.Hub.Network(),
			"account":    d.Hub.AccountView(),
			"notices":    d.Hub.Notices(),
			"log":        d.Hub.Logs(),
		})
	})

	// ---------------- tasks ----------------

	// ?sort= orders this response only; POST /tasks/sort changes the session order
	api.Get("/tasks", func(c *fiber.Ctx) error {
		criterion := d.Session.Sort()
		if raw := c.Query("sort"); raw != "" {
			parsed, err := services.ParseSortCriterion(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			criterion = parsed
		}
		return c.JSON(fiber.Map{
			"loaded": d.Session.Loaded(),
			"sort":   criterion,
			"tasks":  d.Session.AvailableViews(criterion),
		})
	})

	api.Post("/tasks/sort", func(c *fiber.Ctx) error {
		var body struct {
			Sort string `json:"sort"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
		}
		criterion, err := services.ParseSortCriterion(body.Sort)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		d.Session.SetSort(criterion)
		return c.JSON(fiber.Map{"sort": criterion, "tasks": d.Session.AvailableViews(criterion)})
	})

	api.Post("/tasks/refresh", func(c *fiber.Ctx) error {
		if err := d.Session.RefreshTasks(c.UserContext()); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"tasks": d.Session.Snapshot().Available})
	})

	api.Post("/tasks/:id/select", func(c *fiber.Ctx) error {
		task, err := d.Session.Select(models.TaskID(c.Params("id")))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"task": task})
	})

	api.Delete("/tasks/current", func(c *fiber.Ctx) error {
		d.Session.Deselect()
		return c.SendStatus(fiber.StatusNoContent)
	})

	api.Post("/tasks/claim", func(c *fiber.Ctx) error {
		task, err := d.Session.ClaimCurrent(c.UserContext())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task, "claimed": d.Session.ClaimedIDs()})
	})

	api.Post("/tasks/:id/claim", func(c *fiber.Ctx) error {
		task, err := d.Session.Claim(c.UserContext(), models.TaskID(c.Params("id")))
		if err != nil {
			return errorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task, "claimed": d.Session.ClaimedIDs()})
	})

	api.Get("/claimed", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tasks": d.Session.Snapshot().Claimed})
	})

	// ---------------- agent ----------------

	api.Post("/agent/work", func(c *fiber.Ctx) error {
		if err := d.Agent.StartWork(c.UserContext()); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"status": models.WorkStatusStarted})
	})

	api.Post("/agent/cycle", func(c *fiber.Ctx) error {
		result, err := d.Poller.RunCycle(c.UserContext())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"result": result, "claimed": d.Session.ClaimedIDs()})
	})

	api.Post("/agent/auto/start", func(c *fiber.Ctx) error {
		var body struct {
			IntervalMS int64 `json:"interval_ms"`
		}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "cause": err.Error()})
			}
		}
		if body.IntervalMS < 0 || body.IntervalMS > maxIntervalMS {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "interval_ms must be between 0 and " + strconv.FormatInt(maxIntervalMS, 10),
			})
		}
		period := d.DefaultInterval
		if body.IntervalMS > 0 {
			period = time.Duration(body.IntervalMS) * time.Millisecond
		}

		started, err := d.Poller.Start(period)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to start auto work", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{"started": started, "poller": d.Poller.State(), "buttons": d.Hub.Buttons()})
	})

	api.Post("/agent/auto/stop", func(c *fiber.Ctx) error {
		stopped, err := d.Poller.Stop()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to stop auto work", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{"stopped": stopped, "poller": d.Poller.State(), "buttons": d.Hub.Buttons()})
	})

	// ---------------- stats ----------------

	api.Post("/stats/refresh", func(c *fiber.Ctx) error {
		if err := d.Agent.RefreshStats(c.UserContext()); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"aggregates": d.Hub.Aggregates(), "network": d.Hub.Network()})
	})

	api.Get("/chart", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		points, err := d.Stats.Chart(c.UserContext(), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load chart", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{"points": points})
	})

	// ---------------- language ----------------

	api.Post("/language", func(c *fiber.Ctx) error {
		var body struct {
			Lang string `json:"lang"`
		}
		if err := c.BodyParser(&body); err != nil || body.Lang == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lang is required"})
		}
		if err := d.Agent.SwitchLanguage(c.UserContext(), body.Lang); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"language": d.Session.Translator.Language()})
	})

	api.Get("/i18n", func(c *fiber.Ctx) error {
		lang := middleware.Language(c)
		return c.JSON(fiber.Map{"language": lang, "strings": i18n.Table(lang)})
	})

	// ---------------- reports ----------------

	api.Post("/reports/export", func(c *fiber.Ctx) error {
		if d.Reports == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "report export is not configured"})
		}
		url, err := d.Reports.Export(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to export report", "cause": err.Error()})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})
}

// errorResponse maps session and backend errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var rejected *services.ClaimRejectedError
	switch {
	case errors.As(err, &rejected):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "claim rejected",
			"reason": rejected.Reason,
		})
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNoCurrentTask), errors.Is(err, i18n.ErrUnsupportedLanguage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrTransport):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "backend unavailable", "cause": err.Error()})
	}
	log.Printf("❌ [DASHBOARD] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
