package jpa

import (
	"errors"

	"persistence-setup/core/logger"
	"persistence-setup/feature/jpa/catalog"
	"persistence-setup/feature/jpa/pom"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SetupRequest is the body of POST /jpa/setup.
type SetupRequest struct {
	catalog.Request
	DryRun bool `json:"dry_run"`
}

// Handler handles HTTP requests for the persistence setup.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the persistence setup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/jpa")
	group.Post("/setup", h.HandleSetup)
	group.Get("/status", h.HandleStatus)
	group.Get("/databases", h.HandleDatabases)
	group.Get("/providers", h.HandleProviders)
	group.Get("/history", h.HandleHistory)
}

// HandleSetup reconciles the project against the posted selection.
// @Summary Run Persistence Setup
// @Description Reconcile the project's persistence artifacts for the selected ORM provider and database.
// @Tags jpa
// @Accept json
// @Produce json
// @Param request body SetupRequest true "Selection"
// @Success 200 {object} Result "Setup Result"
// @Failure 400 {object} map[string]string "Invalid Selection"
// @Failure 422 {object} map[string]string "No Project"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /jpa/setup [post]
func (h *Handler) HandleSetup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SetupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.service.Setup(c.Context(), req.Request, req.DryRun)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownDatabase), errors.Is(err, catalog.ErrUnknownProvider),
			errors.Is(err, catalog.ErrInvalidPersistenceUnit):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, pom.ErrNoProject):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Persistence setup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleStatus reports whether persistence is installed.
// @Summary Get Setup Status
// @Description Report whether the project has a persistence setup and list its connection settings.
// @Tags jpa
// @Produce json
// @Success 200 {object} map[string]interface{} "Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /jpa/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	status, err := h.service.Status(c.Context())
	if err != nil {
		l.Error("Status check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	properties := []string{}
	if status.Installed {
		if properties, err = h.service.DatabaseProperties(c.Context()); err != nil {
			l.Warn("Failed to read connection settings", zap.Error(err))
			properties = []string{}
		}
	}

	return c.JSON(fiber.Map{
		"installed":             status.Installed,
		"installation_possible": status.InstallationPossible,
		"database_properties":   properties,
	})
}

// HandleDatabases lists the database catalog.
// @Summary List Databases
// @Description List the databases a persistence setup can target.
// @Tags jpa
// @Produce json
// @Success 200 {array} catalog.Database "Databases"
// @Router /jpa/databases [get]
func (h *Handler) HandleDatabases(c *fiber.Ctx) error {
	return c.JSON(h.service.Databases())
}

// HandleProviders lists the ORM provider catalog.
// @Summary List ORM Providers
// @Description List the ORM providers a persistence setup can use.
// @Tags jpa
// @Produce json
// @Success 200 {array} catalog.Provider "Providers"
// @Router /jpa/providers [get]
func (h *Handler) HandleProviders(c *fiber.Ctx) error {
	return c.JSON(h.service.Providers())
}

// HandleHistory lists journaled changes.
// @Summary Get Change History
// @Description List the latest journaled file changes, newest first.
// @Tags jpa
// @Produce json
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {array} journal.Entry "Journal Entries"
// @Failure 404 {object} map[string]string "Journal Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /jpa/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.History(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		if errors.Is(err, ErrJournalDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}
