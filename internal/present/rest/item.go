package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/shoplist/internal/domain"
	"github.com/totegamma/shoplist/internal/present/rest/presenter"
	"github.com/totegamma/shoplist/internal/usecase"
)

func (h *Handler) handleListItems(c echo.Context) error {
	ctx := c.Request().Context()

	filter := domain.ItemFilter{
		Query: c.QueryParam("q"),
	}

	tagParam := c.QueryParam("tagId")
	if tagParam == "" {
		tagParam = c.QueryParam("tag_id")
	}
	if tagParam != "" {
		tagID, err := strconv.ParseInt(tagParam, 10, 64)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid tagId parameter")
		}
		filter.TagID = &tagID
	}

	items, err := h.items.List(ctx, filter)
	if err != nil {
		return presenter.InternalError(c, err, "Failed to retrieve items")
	}
	return presenter.OK(c, items)
}

func (h *Handler) handleGetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	item, err := h.items.Get(ctx, id)
	if err != nil {
		return respondError(c, err, "Item", "Failed to retrieve item")
	}
	return presenter.OK(c, item)
}

func (h *Handler) handleCreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateItemInput
	if err := c.Bind(&input); err != nil {
		return presenter.InvalidBody(c, err)
	}

	item, err := h.items.Create(ctx, input)
	if err != nil {
		return respondError(c, err, "Item", "Failed to create item")
	}
	return presenter.Created(c, item)
}

func (h *Handler) handleUpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var patch domain.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.InvalidBody(c, err)
	}

	item, err := h.items.Update(ctx, id, patch)
	if err != nil {
		return respondError(c, err, "Item", "Failed to update item")
	}
	return presenter.OK(c, item)
}

func (h *Handler) handleDeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	if err := h.items.Delete(ctx, id); err != nil {
		return respondError(c, err, "Item", "Failed to delete item")
	}
	return presenter.NoContent(c)
}
