package repository

import (
	"context"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// EstimateGormRepository keeps the ledger in two tables: estimates and
// estimate_items, the latter ordered by position.
type EstimateGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IEstimateRepository = (*EstimateGormRepository)(nil)

func NewEstimateGormRepository(db *gorm.DB) *EstimateGormRepository {
	return &EstimateGormRepository{db: db}
}

func (r *EstimateGormRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	m := toEstimateModel(e)
	// estimate and items go in one transaction
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateGormRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	var m estimateModel
	res := r.withItems(ctx).Where("id = ?", id).Limit(1).Find(&m)
	if res.Error != nil {
		return entities.Estimate{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Estimate{}, nil
	}
	return m.toEntity(), nil
}

func (r *EstimateGormRepository) List(ctx context.Context) ([]entities.Estimate, error) {
	return r.list(r.withItems(ctx))
}

func (r *EstimateGormRepository) ListByCreator(ctx context.Context, username string) ([]entities.Estimate, error) {
	return r.list(r.withItems(ctx).Where("created_by = ?", username))
}

func (r *EstimateGormRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *EstimateGormRepository) list(query *gorm.DB) ([]entities.Estimate, error) {
	var models []estimateModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Estimate, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}
