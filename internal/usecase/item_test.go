package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/shoplist/internal/domain"
)

type mockItemRepo struct {
	created   *CreateItemInput
	patched   *domain.ItemPatch
	deleteHit bool
	err       error
}

func (m *mockItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	return nil, m.err
}

func (m *mockItemRepo) Get(ctx context.Context, id int64) (domain.Item, error) {
	return domain.Item{ID: id}, m.err
}

func (m *mockItemRepo) Create(ctx context.Context, content string, checked bool, tagIDs []int64) (domain.Item, error) {
	m.created = &CreateItemInput{Content: content, Checked: checked, TagIDs: tagIDs}
	if m.err != nil {
		return domain.Item{}, m.err
	}
	return domain.Item{ID: 1, Content: content, Checked: checked, Tags: []domain.Tag{}}, nil
}

func (m *mockItemRepo) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	m.patched = &patch
	if m.err != nil {
		return domain.Item{}, m.err
	}
	return domain.Item{ID: id, Content: patch.Content.Value}, nil
}

func (m *mockItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteHit, m.err
}

type mockPublisher struct {
	events []domain.Event
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return m.err
}

func TestItemUsecaseCreate(t *testing.T) {
	repo := &mockItemRepo{}
	events := &mockPublisher{}
	uc := NewItemUsecase(repo, events)

	item, err := uc.Create(context.Background(), CreateItemInput{Content: "milk", TagIDs: []int64{2}})
	require.NoError(t, err)

	assert.Equal(t, "milk", item.Content)
	require.NotNil(t, repo.created)
	assert.Equal(t, []int64{2}, repo.created.TagIDs)
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventItemCreated, events.events[0].Type)
}

func TestItemUsecaseCreateRejectsShortContent(t *testing.T) {
	cases := []string{"", "ab", "é!"}
	for _, content := range cases {
		repo := &mockItemRepo{}
		uc := NewItemUsecase(repo, nil)

		_, err := uc.Create(context.Background(), CreateItemInput{Content: content})
		assert.ErrorIs(t, err, domain.ErrValidation, "content %q", content)
		assert.Nil(t, repo.created, "repository must not be called for %q", content)
	}
}

func TestItemUsecaseCreateCountsCharacters(t *testing.T) {
	repo := &mockItemRepo{}
	uc := NewItemUsecase(repo, nil)

	_, err := uc.Create(context.Background(), CreateItemInput{Content: "äöü"})
	assert.NoError(t, err)
}

func TestItemUsecaseUpdateValidation(t *testing.T) {
	tests := []struct {
		name  string
		patch domain.ItemPatch
		valid bool
	}{
		{"checked only", domain.ItemPatch{Checked: domain.Some(true)}, true},
		{"empty patch", domain.ItemPatch{}, true},
		{"short content", domain.ItemPatch{Content: domain.Some("no")}, false},
		{"null content", domain.ItemPatch{Content: domain.Null[string]()}, false},
		{"null checked", domain.ItemPatch{Checked: domain.Null[bool]()}, false},
		{"null tags", domain.ItemPatch{TagIDs: domain.Null[[]int64]()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockItemRepo{}
			uc := NewItemUsecase(repo, nil)

			_, err := uc.Update(context.Background(), 7, tt.patch)
			if tt.valid {
				assert.NoError(t, err)
				assert.NotNil(t, repo.patched)
			} else {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Nil(t, repo.patched)
			}
		})
	}
}

func TestItemUsecaseDeleteMissing(t *testing.T) {
	events := &mockPublisher{}
	uc := NewItemUsecase(&mockItemRepo{deleteHit: false}, events)

	err := uc.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, events.events)
}

func TestItemUsecaseDeletePublishes(t *testing.T) {
	events := &mockPublisher{}
	uc := NewItemUsecase(&mockItemRepo{deleteHit: true}, events)

	require.NoError(t, uc.Delete(context.Background(), 9))
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventItemDeleted, events.events[0].Type)
	assert.Equal(t, int64(9), events.events[0].ID)
}

func TestItemUsecasePublishFailureIsIgnored(t *testing.T) {
	events := &mockPublisher{err: errors.New("redis down")}
	uc := NewItemUsecase(&mockItemRepo{}, events)

	_, err := uc.Create(context.Background(), CreateItemInput{Content: "bread"})
	assert.NoError(t, err)
}

func TestItemUsecaseRepositoryErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	events := &mockPublisher{}
	uc := NewItemUsecase(&mockItemRepo{err: boom}, events)

	_, err := uc.Create(context.Background(), CreateItemInput{Content: "bread"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, events.events)
}

func TestItemUsecaseEmptyPatchIsSilent(t *testing.T) {
	repo := &mockItemRepo{}
	events := &mockPublisher{}
	uc := NewItemUsecase(repo, events)

	item, err := uc.Update(context.Background(), 7, domain.ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	require.NotNil(t, repo.patched)
	assert.Empty(t, events.events)

	_, err = uc.Update(context.Background(), 7, domain.ItemPatch{Checked: domain.Some(true)})
	require.NoError(t, err)
	require.Len(t, events.events, 1)
	assert.Equal(t, domain.EventItemUpdated, events.events[0].Type)
}

func TestItemUsecaseEmptyPatchMissingItem(t *testing.T) {
	events := &mockPublisher{}
	uc := NewItemUsecase(&mockItemRepo{err: domain.NotFoundError{Resource: "item"}}, events)

	_, err := uc.Update(context.Background(), 7, domain.ItemPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, events.events)
}
