package usecase

import (
	"context"

	"github.com/totegamma/shoplist/internal/domain"
)

// CreateTagInput is the body of a tag creation request.
type CreateTagInput struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type TagUsecase struct {
	repo   TagRepository
	events EventPublisher
}

func NewTagUsecase(repo TagRepository, events EventPublisher) *TagUsecase {
	return &TagUsecase{repo: repo, events: events}
}

func (uc *TagUsecase) List(ctx context.Context) ([]domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "Tag.Usecase.List")
	defer span.End()

	tags, err := uc.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return tags, nil
}

func (uc *TagUsecase) Get(ctx context.Context, id int64) (domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "Tag.Usecase.Get")
	defer span.End()

	tag, err := uc.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Tag{}, err
	}
	return tag, nil
}

func (uc *TagUsecase) Create(ctx context.Context, input CreateTagInput) (domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "Tag.Usecase.Create")
	defer span.End()

	if input.Name == "" {
		return domain.Tag{}, domain.ValidationError{Message: "name is required"}
	}

	tag, err := uc.repo.Create(ctx, input.Name, input.Color)
	if err != nil {
		span.RecordError(err)
		return domain.Tag{}, err
	}

	publish(ctx, span, uc.events, domain.Event{Type: domain.EventTagCreated, Tag: &tag})
	return tag, nil
}

func (uc *TagUsecase) Update(ctx context.Context, id int64, patch domain.TagPatch) (domain.Tag, error) {
	ctx, span := tracer.Start(ctx, "Tag.Usecase.Update")
	defer span.End()

	if patch.Name.Set && (patch.Name.Null || patch.Name.Value == "") {
		return domain.Tag{}, domain.ValidationError{Message: "name cannot be empty"}
	}

	tag, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		return domain.Tag{}, err
	}

	if !patch.Empty() {
		publish(ctx, span, uc.events, domain.Event{Type: domain.EventTagUpdated, Tag: &tag})
	}
	return tag, nil
}

func (uc *TagUsecase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Tag.Usecase.Delete")
	defer span.End()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !deleted {
		return domain.NotFoundError{Resource: "tag"}
	}

	publish(ctx, span, uc.events, domain.Event{Type: domain.EventTagDeleted, ID: id})
	return nil
}
