package usecase

import (
	"context"
	"unicode/utf8"

	"github.com/totegamma/shoplist/internal/domain"
)

// MinContentLength is the shortest item content accepted, in characters.
const MinContentLength = 3

var errContentTooShort = domain.ValidationError{Message: "content must be at least 3 characters"}

// CreateItemInput is the body of an item creation request.
type CreateItemInput struct {
	Content string  `json:"content"`
	Checked bool    `json:"checked"`
	TagIDs  []int64 `json:"tagIds"`
}

type ItemUsecase struct {
	repo   ItemRepository
	events EventPublisher
}

func NewItemUsecase(repo ItemRepository, events EventPublisher) *ItemUsecase {
	return &ItemUsecase{repo: repo, events: events}
}

func (uc *ItemUsecase) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.List")
	defer span.End()

	items, err := uc.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return items, nil
}

func (uc *ItemUsecase) Get(ctx context.Context, id int64) (domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Get")
	defer span.End()

	item, err := uc.repo.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.Item{}, err
	}
	return item, nil
}

func (uc *ItemUsecase) Create(ctx context.Context, input CreateItemInput) (domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Create")
	defer span.End()

	if utf8.RuneCountInString(input.Content) < MinContentLength {
		return domain.Item{}, errContentTooShort
	}

	item, err := uc.repo.Create(ctx, input.Content, input.Checked, input.TagIDs)
	if err != nil {
		span.RecordError(err)
		return domain.Item{}, err
	}

	publish(ctx, span, uc.events, domain.Event{Type: domain.EventItemCreated, Item: &item})
	return item, nil
}

func (uc *ItemUsecase) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Update")
	defer span.End()

	if patch.Content.Set {
		if patch.Content.Null || utf8.RuneCountInString(patch.Content.Value) < MinContentLength {
			return domain.Item{}, errContentTooShort
		}
	}
	if patch.Checked.Set && patch.Checked.Null {
		return domain.Item{}, domain.ValidationError{Message: "checked must be a boolean"}
	}

	item, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		return domain.Item{}, err
	}

	if !patch.Empty() {
		publish(ctx, span, uc.events, domain.Event{Type: domain.EventItemUpdated, Item: &item})
	}
	return item, nil
}

func (uc *ItemUsecase) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Item.Usecase.Delete")
	defer span.End()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !deleted {
		return domain.NotFoundError{Resource: "item"}
	}

	publish(ctx, span, uc.events, domain.Event{Type: domain.EventItemDeleted, ID: id})
	return nil
}
