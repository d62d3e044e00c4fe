package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/shoplist/internal/domain"
	"github.com/totegamma/shoplist/internal/present/rest/presenter"
	"github.com/totegamma/shoplist/internal/usecase"
)

func (h *Handler) handleListTags(c echo.Context) error {
	ctx := c.Request().Context()

	tags, err := h.tags.List(ctx)
	if err != nil {
		return presenter.InternalError(c, err, "Failed to retrieve tags")
	}
	return presenter.OK(c, tags)
}

func (h *Handler) handleGetTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	tag, err := h.tags.Get(ctx, id)
	if err != nil {
		return respondError(c, err, "Tag", "Failed to retrieve tag")
	}
	return presenter.OK(c, tag)
}

func (h *Handler) handleCreateTag(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateTagInput
	if err := c.Bind(&input); err != nil {
		return presenter.InvalidBody(c, err)
	}

	tag, err := h.tags.Create(ctx, input)
	if err != nil {
		return respondError(c, err, "Tag", "Failed to create tag")
	}
	return presenter.Created(c, tag)
}

func (h *Handler) handleUpdateTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	var patch domain.TagPatch
	if err := c.Bind(&patch); err != nil {
		return presenter.InvalidBody(c, err)
	}

	tag, err := h.tags.Update(ctx, id, patch)
	if err != nil {
		return respondError(c, err, "Tag", "Failed to update tag")
	}
	return presenter.OK(c, tag)
}

func (h *Handler) handleDeleteTag(c echo.Context) error {
	ctx := c.Request().Context()

	id, ok := parseID(c)
	if !ok {
		return presenter.BadRequestMessage(c, "invalid id")
	}

	if err := h.tags.Delete(ctx, id); err != nil {
		return respondError(c, err, "Tag", "Failed to delete tag")
	}
	return presenter.NoContent(c)
}
