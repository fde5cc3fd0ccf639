package usecase

import (
	"context"
	"errors"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTemplateNotFound       = errors.New("template not found")
	ErrTemplateFieldsRequired = errors.New("code, description, quantity, price and profit margin are required")
	ErrInvalidTemplateID      = errors.New("invalid template id")
	ErrInvalidTemplateNumber  = errors.New("invalid template number")
)

// TemplateInput is the template form. Numeric fields are pointers so a
// missing value can be told apart from zero.
type TemplateInput struct {
	ID           string
	Code         string
	Description  string
	Quantity     *float64
	Price        *float64
	ProfitMargin *float64
}

// ITemplateUseCase exposes the Template Catalog operations.

type ITemplateUseCase interface {
	UpsertTemplate(ctx context.Context, in TemplateInput) (entities.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
	GetTemplate(ctx context.Context, id string) (entities.Template, error)
	ListTemplates(ctx context.Context) ([]entities.Template, error)
}

type TemplateUseCase struct {
	repo   interfaces.ITemplateRepository
	logger *zap.Logger
}

var _ ITemplateUseCase = (*TemplateUseCase)(nil)

func NewTemplateUseCase(repo interfaces.ITemplateRepository, logger *zap.Logger) *TemplateUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateUseCase{repo: repo, logger: logger}
}

// UpsertTemplate replaces the template with in.ID, or appends a new one when
// in.ID is empty.
func (u *TemplateUseCase) UpsertTemplate(ctx context.Context, in TemplateInput) (entities.Template, error) {
	t, err := in.toTemplate()
	if err != nil {
		return entities.Template{}, err
	}

	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = now
		t.UpdatedAt = now
		created, err := u.repo.Create(ctx, t)
		if err != nil {
			u.logger.Error("[template][usecase] create failed", zap.String("code", t.Code), zap.Error(err))
			return entities.Template{}, err
		}
		u.logger.Info("[template][usecase] template created", zap.String("template_id", created.ID), zap.String("code", created.Code))
		return created, nil
	}

	existing, err := u.repo.GetByID(ctx, t.ID)
	if err != nil {
		return entities.Template{}, err
	}
	if existing.ID == "" {
		return entities.Template{}, ErrTemplateNotFound
	}

	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = now
	updated, err := u.repo.Update(ctx, t)
	if err != nil {
		u.logger.Error("[template][usecase] update failed", zap.String("template_id", t.ID), zap.Error(err))
		return entities.Template{}, err
	}
	if updated.ID == "" {
		return entities.Template{}, ErrTemplateNotFound
	}
	u.logger.Info("[template][usecase] template replaced", zap.String("template_id", updated.ID))
	return updated, nil
}

// DeleteTemplate removes a catalog entry. Estimates keep their own snapshot
// of the items, so nothing else is touched.
func (u *TemplateUseCase) DeleteTemplate(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidTemplateID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted.ID == "" {
		return ErrTemplateNotFound
	}
	u.logger.Info("[template][usecase] template deleted", zap.String("template_id", id))
	return nil
}

func (u *TemplateUseCase) GetTemplate(ctx context.Context, id string) (entities.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Template{}, ErrInvalidTemplateID
	}

	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Template{}, err
	}
	if t.ID == "" {
		return entities.Template{}, ErrTemplateNotFound
	}
	return t, nil
}

func (u *TemplateUseCase) ListTemplates(ctx context.Context) ([]entities.Template, error) {
	return u.repo.List(ctx)
}

func (in TemplateInput) toTemplate() (entities.Template, error) {
	code := strings.TrimSpace(in.Code)
	description := strings.TrimSpace(in.Description)
	if code == "" || description == "" || in.Quantity == nil || in.Price == nil || in.ProfitMargin == nil {
		return entities.Template{}, ErrTemplateFieldsRequired
	}
	for _, v := range []float64{*in.Quantity, *in.Price, *in.ProfitMargin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return entities.Template{}, ErrInvalidTemplateNumber
		}
	}

	return entities.Template{
		ID:           strings.TrimSpace(in.ID),
		Code:         code,
		Description:  description,
		Quantity:     *in.Quantity,
		Price:        *in.Price,
		ProfitMargin: *in.ProfitMargin,
	}, nil
}
