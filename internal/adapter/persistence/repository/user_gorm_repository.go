package repository

import (
	"context"

	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IUserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.User{}, err
	}
	return m.toEntity(), nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserGormRepository) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserGormRepository) List(ctx context.Context) ([]entities.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(models))
	for _, m := range models {
		users = append(users, m.toEntity())
	}
	return users, nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id string) (entities.User, error) {
	var deleted entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m userModel
		res := tx.Where("id = ?", id).Limit(1).Find(&m)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		if err := tx.Delete(&userModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = m.toEntity()
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return deleted, nil
}

// findOne returns a zero User when nothing matches.
func (r *UserGormRepository) findOne(ctx context.Context, query string, arg interface{}) (entities.User, error) {
	var m userModel
	res := r.db.WithContext(ctx).Where(query, arg).Limit(1).Find(&m)
	if res.Error != nil {
		return entities.User{}, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.User{}, nil
	}
	return m.toEntity(), nil
}
