package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/shoplist/internal/domain"
	"github.com/totegamma/shoplist/internal/infra/database/models"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var rows []models.Tag
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "TagRepository.List: query failed")
	}

	tags := make([]domain.Tag, len(rows))
	for i, row := range rows {
		tags[i] = toDomainTag(row)
	}
	return tags, nil
}

func (r *TagRepository) Get(ctx context.Context, id int64) (domain.Tag, error) {
	return getTag(ctx, r.db, id)
}

func (r *TagRepository) Create(ctx context.Context, name string, color *string) (domain.Tag, error) {
	row := models.Tag{
		Name:  name,
		Color: color,
	}

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Tag{}, errors.WithStack(domain.ConflictError{Resource: "tag"})
		}
		return domain.Tag{}, errors.Wrap(err, "TagRepository.Create: insert failed")
	}

	return getTag(ctx, r.db, row.ID)
}

func (r *TagRepository) Update(ctx context.Context, id int64, patch domain.TagPatch) (domain.Tag, error) {
	var tag domain.Tag

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Tag
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "tag"}
			}
			return errors.Wrap(err, "TagRepository.Update: lookup failed")
		}

		updates := map[string]any{}
		if patch.Name.Set {
			updates["name"] = patch.Name.Value
		}
		if patch.Color.Set {
			updates["color"] = patch.Color.Ptr()
		}

		if len(updates) > 0 {
			err := tx.Model(&models.Tag{}).
				Where("id = ?", id).
				Updates(updates).Error
			if err != nil {
				if isUniqueViolation(err) {
					return errors.WithStack(domain.ConflictError{Resource: "tag"})
				}
				return errors.Wrap(err, "TagRepository.Update: update failed")
			}
		}

		updated, err := getTag(ctx, tx, id)
		if err != nil {
			return err
		}
		tag = updated
		return nil
	})

	return tag, err
}

func (r *TagRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Tag{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "TagRepository.Delete: delete failed")
	}
	return result.RowsAffected > 0, nil
}

func getTag(ctx context.Context, db *gorm.DB, id int64) (domain.Tag, error) {
	var row models.Tag
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.NotFoundError{Resource: "tag"}
		}
		return domain.Tag{}, errors.Wrap(err, "getTag: query failed")
	}
	return toDomainTag(row), nil
}

func toDomainTag(row models.Tag) domain.Tag {
	return domain.Tag{
		ID:        row.ID,
		Name:      row.Name,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
	}
}
