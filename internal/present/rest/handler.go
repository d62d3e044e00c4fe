package rest

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/totegamma/shoplist/internal/domain"
	"github.com/totegamma/shoplist/internal/present/rest/middleware"
	"github.com/totegamma/shoplist/internal/present/rest/presenter"
	"github.com/totegamma/shoplist/internal/usecase"
)

// RealtimeSource streams committed change events until ctx is done.
type RealtimeSource interface {
	Realtime(ctx context.Context, output chan<- domain.Event) error
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	items    *usecase.ItemUsecase
	tags     *usecase.TagUsecase
	realtime RealtimeSource
	health   HealthCheck
}

// NewHandler wires the API handlers. realtime and health may be nil.
func NewHandler(
	items *usecase.ItemUsecase,
	tags *usecase.TagUsecase,
	realtime RealtimeSource,
	health HealthCheck,
) *Handler {
	return &Handler{
		items:    items,
		tags:     tags,
		realtime: realtime,
		health:   health,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group(middleware.APIPrefix)

	api.GET("/items", h.handleListItems)
	api.POST("/items", h.handleCreateItem)
	api.GET("/items/:id", h.handleGetItem)
	api.PUT("/items/:id", h.handleUpdateItem)
	api.DELETE("/items/:id", h.handleDeleteItem)

	api.GET("/tags", h.handleListTags)
	api.POST("/tags", h.handleCreateTag)
	api.GET("/tags/:id", h.handleGetTag)
	api.PUT("/tags/:id", h.handleUpdateTag)
	api.DELETE("/tags/:id", h.handleDeleteTag)

	api.GET("/realtime", h.handleRealtime)
	api.GET("/health", h.handleHealth)
}

func (h *Handler) handleHealth(c echo.Context) error {
	if h.health != nil {
		if err := h.health(c.Request().Context()); err != nil {
			return presenter.ServiceUnavailable(c, "database unavailable")
		}
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// respondError is the single place where domain errors become status codes.
func respondError(c echo.Context, err error, resource string, fallback string) error {
	var validation domain.ValidationError
	switch {
	case errors.As(err, &validation):
		return presenter.BadRequestMessage(c, validation.Message)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, resource+" not found")
	case errors.Is(err, domain.ErrConflict):
		return presenter.BadRequestMessage(c, resource+" with this name already exists")
	default:
		return presenter.InternalError(c, err, fallback)
	}
}
