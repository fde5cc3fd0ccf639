package usecase

import (
	"context"
	"errors"
	"estimador/internal/domain/entities"
	"estimador/internal/usecase/interfaces"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEstimateNotFound    = errors.New("estimate not found")
	ErrIncompleteEstimate  = errors.New("estimate name, date and at least one item are required")
	ErrInvalidEstimateDate = errors.New("invalid estimate date")
	ErrInvalidEstimateID   = errors.New("invalid estimate id")
)

// CreateEstimateCommand is what the estimate creation screen submits.
//
// TemplateIDs keeps the order and the repetitions of the selection: each
// occurrence becomes one item.
type CreateEstimateCommand struct {
	Name        string
	Date        string
	TemplateIDs []string
	CreatedBy   string
}

// IEstimateUseCase exposes the Estimate Builder and the ledger reads.
//
//   - "Generate final estimate" => CreateEstimate()
//   - "My estimates" panel => ListMyEstimates()

type IEstimateUseCase interface {
	CreateEstimate(ctx context.Context, cmd CreateEstimateCommand) (entities.Estimate, error)
	GetEstimate(ctx context.Context, viewer entities.Identity, id string) (entities.Estimate, error)
	ListMyEstimates(ctx context.Context, viewer entities.Identity) ([]entities.Estimate, error)
}

type EstimateUseCase struct {
	repo         interfaces.IEstimateRepository
	templateRepo interfaces.ITemplateRepository
	logger       *zap.Logger
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, templateRepo interfaces.ITemplateRepository, logger *zap.Logger) *EstimateUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateUseCase{repo: repo, templateRepo: templateRepo, logger: logger}
}

// CreateEstimate snapshots the selected templates, prices them and appends
// the estimate to the ledger. Nothing is written when validation fails.
func (u *EstimateUseCase) CreateEstimate(ctx context.Context, cmd CreateEstimateCommand) (entities.Estimate, error) {
	name := strings.TrimSpace(cmd.Name)
	rawDate := strings.TrimSpace(cmd.Date)
	if name == "" || rawDate == "" || len(cmd.TemplateIDs) == 0 {
		return entities.Estimate{}, ErrIncompleteEstimate
	}
	date, err := entities.ParseDate(rawDate)
	if err != nil {
		return entities.Estimate{}, ErrInvalidEstimateDate
	}

	u.logger.Debug("[estimate][usecase] create start",
		zap.String("name", name),
		zap.String("created_by", cmd.CreatedBy),
		zap.Int("items", len(cmd.TemplateIDs)),
	)

	snapshots := make(map[string]entities.Template, len(cmd.TemplateIDs))
	items := make([]entities.EstimateItem, 0, len(cmd.TemplateIDs))
	for _, rawID := range cmd.TemplateIDs {
		id := strings.TrimSpace(rawID)
		t, ok := snapshots[id]
		if !ok {
			if id == "" {
				return entities.Estimate{}, ErrTemplateNotFound
			}
			t, err = u.templateRepo.GetByID(ctx, id)
			if err != nil {
				return entities.Estimate{}, fmt.Errorf("load template %s: %w", id, err)
			}
			if t.ID == "" {
				return entities.Estimate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
			}
			snapshots[id] = t
		}
		items = append(items, entities.NewEstimateItem(t))
	}

	e := entities.Estimate{
		ID:        uuid.NewString(),
		Name:      name,
		Date:      date,
		Items:     items,
		CreatedAt: time.Now().UTC(),
		CreatedBy: cmd.CreatedBy,
	}
	e.ApplyTotals()

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		u.logger.Error("[estimate][usecase] create failed", zap.String("estimate_id", e.ID), zap.Error(err))
		return entities.Estimate{}, err
	}
	u.logger.Info("[estimate][usecase] estimate created",
		zap.String("estimate_id", created.ID),
		zap.String("created_by", created.CreatedBy),
		zap.Float64("total_amount", created.TotalAmount),
	)
	return created, nil
}

// GetEstimate returns one estimate. Users only see their own estimates;
// anything else reads as not found.
func (u *EstimateUseCase) GetEstimate(ctx context.Context, viewer entities.Identity, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if !viewer.IsAdmin() && e.CreatedBy != viewer.Username {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

// ListMyEstimates returns the viewer's estimates, oldest first.
func (u *EstimateUseCase) ListMyEstimates(ctx context.Context, viewer entities.Identity) ([]entities.Estimate, error) {
	estimates, err := u.repo.ListByCreator(ctx, viewer.Username)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].CreatedAt.Before(estimates[j].CreatedAt)
	})
	return estimates, nil
}
