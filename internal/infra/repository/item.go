package repository

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/shoplist/internal/domain"
	"github.com/totegamma/shoplist/internal/infra/database/models"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Item{})

	if filter.TagID != nil {
		tagged := db.Model(&models.ItemTag{}).
			Select("item_id").
			Where("tag_id = ?", *filter.TagID)
		query = query.Where("items.id IN (?)", tagged)
	}

	if filter.Query != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"
		query = query.Where("LOWER(items.content) LIKE ?", pattern)
	}

	var rows []models.Item
	err := query.
		Order("items.created_at DESC").
		Order("items.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "ItemRepository.List: query items failed")
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tagsByItem, err := loadItemTags(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, len(rows))
	for i, row := range rows {
		items[i] = toDomainItem(row, tagsByItem[row.ID])
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (domain.Item, error) {
	return getItem(ctx, r.db, id)
}

func (r *ItemRepository) Create(ctx context.Context, content string, checked bool, tagIDs []int64) (domain.Item, error) {
	var item domain.Item

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.Item{
			Content: content,
			Checked: checked,
		}
		if err := tx.Create(&row).Error; err != nil {
			return errors.Wrap(err, "ItemRepository.Create: insert item failed")
		}

		if err := attachTags(tx, row.ID, tagIDs); err != nil {
			return err
		}

		created, err := getItem(ctx, tx, row.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.Errorf("ItemRepository.Create: item %d missing after insert", row.ID)
			}
			return err
		}

		item = created
		return nil
	})

	return item, err
}

func (r *ItemRepository) Update(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	var item domain.Item

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Item
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "item"}
			}
			return errors.Wrap(err, "ItemRepository.Update: lookup failed")
		}

		updates := map[string]any{}
		if patch.Content.Set {
			updates["content"] = patch.Content.Value
		}
		if patch.Checked.Set {
			updates["checked"] = patch.Checked.Value
		}

		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			err := tx.Model(&models.Item{}).
				Where("id = ?", id).
				Updates(updates).Error
			if err != nil {
				return errors.Wrap(err, "ItemRepository.Update: update item failed")
			}
		}

		if patch.TagIDs.Set {
			err := tx.Where("item_id = ?", id).Delete(&models.ItemTag{}).Error
			if err != nil {
				return errors.Wrap(err, "ItemRepository.Update: clear tags failed")
			}
			if err := attachTags(tx, id, patch.TagIDs.Value); err != nil {
				return err
			}
		}

		updated, err := getItem(ctx, tx, id)
		if err != nil {
			return err
		}

		item = updated
		return nil
	})

	return item, err
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Item{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "ItemRepository.Delete: delete failed")
	}
	return result.RowsAffected > 0, nil
}

func getItem(ctx context.Context, db *gorm.DB, id int64) (domain.Item, error) {
	var row models.Item
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, domain.NotFoundError{Resource: "item"}
		}
		return domain.Item{}, errors.Wrap(err, "getItem: query failed")
	}

	tagsByItem, err := loadItemTags(ctx, db, []int64{id})
	if err != nil {
		return domain.Item{}, err
	}

	return toDomainItem(row, tagsByItem[id]), nil
}

type itemTagRow struct {
	ItemID    int64
	ID        int64
	Name      string
	Color     *string
	CreatedAt time.Time
}

// loadItemTags fetches the tag sets of several items in one query, each set
// ordered by tag name.
func loadItemTags(ctx context.Context, db *gorm.DB, itemIDs []int64) (map[int64][]domain.Tag, error) {
	result := make(map[int64][]domain.Tag, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	var rows []itemTagRow
	err := db.WithContext(ctx).
		Table("tags").
		Select("item_tags.item_id, tags.id, tags.name, tags.color, tags.created_at").
		Joins("JOIN item_tags ON item_tags.tag_id = tags.id").
		Where("item_tags.item_id IN ?", itemIDs).
		Order("tags.name ASC").
		Order("tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "loadItemTags: query failed")
	}

	for _, row := range rows {
		result[row.ItemID] = append(result[row.ItemID], domain.Tag{
			ID:        row.ID,
			Name:      row.Name,
			Color:     row.Color,
			CreatedAt: row.CreatedAt,
		})
	}
	return result, nil
}

// attachTags links tags to an item. Pairs that already exist are skipped.
func attachTags(tx *gorm.DB, itemID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(tagIDs))
	links := make([]models.ItemTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		links = append(links, models.ItemTag{
			ItemID: itemID,
			TagID:  tagID,
		})
	}

	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
	if err != nil {
		return errors.Wrap(err, "attachTags: insert failed")
	}
	return nil
}

func toDomainItem(row models.Item, tags []domain.Tag) domain.Item {
	if tags == nil {
		tags = []domain.Tag{}
	}
	return domain.Item{
		ID:        row.ID,
		Content:   row.Content,
		Checked:   row.Checked,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Tags:      tags,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
