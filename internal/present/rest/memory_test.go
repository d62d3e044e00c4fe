package rest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/totegamma/shoplist/internal/domain"
)

// memoryStore is an in-process stand-in for the postgres repositories with
// the same ordering, cascade and uniqueness rules.
type memoryStore struct {
	mu        sync.Mutex
	clock     time.Time
	nextItem  int64
	nextTag   int64
	items     map[int64]*memoryItem
	tags      map[int64]domain.Tag
	failItems error
}

var errUnknownTag = errors.New("insert or update on table \"item_tags\" violates foreign key constraint")

type memoryItem struct {
	item   domain.Item
	tagIDs map[int64]struct{}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		items: map[int64]*memoryItem{},
		tags:  map[int64]domain.Tag{},
	}
}

func (s *memoryStore) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memoryStore) populate(rec *memoryItem) domain.Item {
	item := rec.item
	item.Tags = []domain.Tag{}
	for id := range rec.tagIDs {
		item.Tags = append(item.Tags, s.tags[id])
	}
	sort.Slice(item.Tags, func(i, j int) bool { return item.Tags[i].Name < item.Tags[j].Name })
	return item
}

func (s *memoryStore) link(rec *memoryItem, tagIDs []int64) error {
	for _, id := range tagIDs {
		if _, ok := s.tags[id]; !ok {
			return errUnknownTag
		}
	}
	for _, id := range tagIDs {
		rec.tagIDs[id] = struct{}{}
	}
	return nil
}

type memoryItems struct{ *memoryStore }

func (s memoryItems) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failItems != nil {
		return nil, s.failItems
	}

	result := []domain.Item{}
	for _, rec := range s.items {
		if filter.TagID != nil {
			if _, ok := rec.tagIDs[*filter.TagID]; !ok {
				continue
			}
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(rec.item.Content), strings.ToLower(filter.Query)) {
			continue
		}
		result = append(result, s.populate(rec))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s memoryItems) Get(ctx context.Context, id int64) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		return domain.Item{}, domain.NotFoundError{Resource: "item"}
	}
	return s.populate(rec), nil
}

func (s memoryItems) Create(ctx context.Context, content string, checked bool, tagIDs []int64) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItem++
	now := s.now()
	rec := &memoryItem{
		item: domain.Item{
			ID:        s.nextItem,
			Content:   content,
			Checked:   checked,
			CreatedAt: now,
			UpdatedAt: now,
		},
		tagIDs: map[int64]struct{}{},
	}
	if err := s.link(rec, tagIDs); err != nil {
		return domain.Item{}, err
	}
	s.items[rec.item.ID] = rec
	return s.populate(rec), nil
}

func (s memoryItems) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		return domain.Item{}, domain.NotFoundError{Resource: "item"}
	}
	if patch.Content.Set {
		rec.item.Content = patch.Content.Value
		rec.item.UpdatedAt = s.now()
	}
	if patch.Checked.Set {
		rec.item.Checked = patch.Checked.Value
		rec.item.UpdatedAt = s.now()
	}
	if patch.TagIDs.Set {
		rec.tagIDs = map[int64]struct{}{}
		if err := s.link(rec, patch.TagIDs.Value); err != nil {
			return domain.Item{}, err
		}
	}
	return s.populate(rec), nil
}

func (s memoryItems) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

type memoryTags struct{ *memoryStore }

func (s memoryTags) List(ctx context.Context) ([]domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []domain.Tag{}
	for _, tag := range s.tags {
		result = append(result, tag)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s memoryTags) Get(ctx context.Context, id int64) (domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.tags[id]
	if !ok {
		return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
	}
	return tag, nil
}

func (s memoryTags) nameTaken(name string, except int64) bool {
	for id, tag := range s.tags {
		if id != except && tag.Name == name {
			return true
		}
	}
	return false
}

func (s memoryTags) Create(ctx context.Context, name string, color *string) (domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(name, 0) {
		return domain.Tag{}, domain.ConflictError{Resource: "tag"}
	}
	s.nextTag++
	tag := domain.Tag{ID: s.nextTag, Name: name, Color: color, CreatedAt: s.now()}
	s.tags[tag.ID] = tag
	return tag, nil
}

func (s memoryTags) Update(ctx context.Context, id int64, patch domain.TagPatch) (domain.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.tags[id]
	if !ok {
		return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
	}
	if patch.Name.Set {
		if s.nameTaken(patch.Name.Value, id) {
			return domain.Tag{}, domain.ConflictError{Resource: "tag"}
		}
		tag.Name = patch.Name.Value
	}
	if patch.Color.Set {
		tag.Color = patch.Color.Ptr()
	}
	s.tags[id] = tag
	return tag, nil
}

func (s memoryTags) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return false, nil
	}
	delete(s.tags, id)
	for _, rec := range s.items {
		delete(rec.tagIDs, id)
	}
	return true, nil
}
