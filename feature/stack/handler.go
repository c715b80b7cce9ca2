package stack

import (
	"context"
	"errors"
	"strings"

	"docker-up/core/docker"
	"docker-up/core/history"
	"docker-up/core/logger"
	"docker-up/core/resource"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stacks and resources.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stack routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	resources := app.Group("/resources")
	resources.Get("/:kind", h.HandleList)
	resources.Get("/:kind/:name", h.HandleInspect)

	group := app.Group("/stack")
	group.Post("/up", h.HandleUp)
	group.Post("/down", h.HandleDown)
	group.Post("/diff", h.HandleDiff)

	app.Get("/history", h.HandleHistory)
}

// HandleList lists the instances of a kind.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	kind := c.Params("kind")
	l := logger.WithRayID(h.service.logger, c)

	states, err := h.service.List(c.Context(), kind, c.Query("namespace"))
	if err != nil {
		l.Error("Listing resources failed", zap.String("kind", kind), zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(states)
}

// HandleInspect returns the remote state of one resource.
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	kind, name := c.Params("kind"), c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	state, err := h.service.Inspect(c.Context(), kind, name)
	if err != nil {
		l.Error("Inspecting resource failed", zap.String("kind", kind), zap.String("name", name), zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(state)
}

// HandleUp applies the stack file of the request.
func (h *Handler) HandleUp(c *fiber.Ctx) error {
	return h.handleAction(c, h.service.Up)
}

// HandleDown removes the resources of the stack file of the request.
func (h *Handler) HandleDown(c *fiber.Ctx) error {
	return h.handleAction(c, h.service.Down)
}

// HandleDiff reports the drift of the stack file of the request.
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	return h.handleAction(c, h.service.Diff)
}

// HandleHistory returns recent reconcile records.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.History(c.Context(), c.QueryInt("limit", history.DefaultLimit))
	if err != nil {
		l.Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

type action func(ctx context.Context, f *File) (*Report, error)

func (h *Handler) handleAction(c *fiber.Ctx, run action) error {
	l := logger.WithRayID(h.service.logger, c)

	f, err := h.file(c)
	if err != nil {
		l.Warn("Rejected stack file", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := run(c.Context(), f)
	if err != nil {
		l.Error("Stack action failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error(), "report": report})
	}
	return c.JSON(report)
}

// file reads the stack file from ?location= (object storage only) or the body.
func (h *Handler) file(c *fiber.Ctx) (*File, error) {
	if location := c.Query("location"); location != "" {
		if !strings.HasPrefix(location, "s3://") {
			return nil, cerrdefs.ErrInvalidArgument.WithMessage("only s3:// locations are accepted")
		}
		return h.service.Load(c.Context(), location)
	}
	return Parse("request body", c.Body())
}

func statusOf(err error) int {
	var cfgErr *resource.ConfigError
	var parseErr *ParseError
	var remote *docker.StatusError

	switch {
	case errors.Is(err, ErrUnknownKind), cerrdefs.IsNotFound(err):
		return fiber.StatusNotFound
	case errors.As(err, &cfgErr), errors.As(err, &parseErr), errors.Is(err, ErrEmptyFile), cerrdefs.IsInvalidArgument(err):
		return fiber.StatusBadRequest
	case errors.As(err, &remote):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
