package usecase

import (
	"context"

	"github.com/totegamma/shoplist/internal/domain"
)

// ItemRepository defines storage operations for items and their tag links.
type ItemRepository interface {
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Get(ctx context.Context, id int64) (domain.Item, error)
	Create(ctx context.Context, content string, checked bool, tagIDs []int64) (domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TagRepository defines storage operations for tags.
type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, id int64) (domain.Tag, error)
	Create(ctx context.Context, name string, color *string) (domain.Tag, error)
	Update(ctx context.Context, id int64, patch domain.TagPatch) (domain.Tag, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventPublisher fans out change notifications after a committed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
