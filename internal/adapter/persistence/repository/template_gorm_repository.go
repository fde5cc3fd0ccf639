package repository

import (
	"context"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type TemplateGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ITemplateRepository = (*TemplateGormRepository)(nil)

func NewTemplateGormRepository(db *gorm.DB) *TemplateGormRepository {
	return &TemplateGormRepository{db: db}
}

func (r *TemplateGormRepository) Create(ctx context.Context, t entities.Template) (entities.Template, error) {
	m := toTemplateModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Template{}, err
	}
	return m.toEntity(), nil
}

func (r *TemplateGormRepository) Update(ctx context.Context, t entities.Template) (entities.Template, error) {
	m := toTemplateModel(t)
	res := r.db.WithContext(ctx).Model(&templateModel{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"code":          m.Code,
		"description":   m.Description,
		"quantity":      m.Quantity,
		"price":         m.Price,
		"profit_margin": m.ProfitMargin,
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	})
	if res.Error != nil {
		return entities.Template{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Template{}, nil
	}
	return m.toEntity(), nil
}

func (r *TemplateGormRepository) GetByID(ctx context.Context, id string) (entities.Template, error) {
	var m templateModel
	res := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&m)
	if res.Error != nil {
		return entities.Template{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.Template{}, nil
	}
	return m.toEntity(), nil
}

func (r *TemplateGormRepository) List(ctx context.Context) ([]entities.Template, error) {
	var models []templateModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Template, 0, len(models))
	for _, m := range models {
		out = append(out, m.toEntity())
	}
	return out, nil
}

func (r *TemplateGormRepository) Delete(ctx context.Context, id string) (entities.Template, error) {
	var deleted entities.Template
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m templateModel
		res := tx.Where("id = ?", id).Limit(1).Find(&m)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		if err := tx.Delete(&templateModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = m.toEntity()
		return nil
	})
	if err != nil {
		return entities.Template{}, err
	}
	return deleted, nil
}
