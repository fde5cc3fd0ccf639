package interfaces

import (
	"context"
	"estimador/internal/domain/entities"
)

// IEstimateRepository abstracts persistence of the Estimate Ledger.
//
// The ledger is append-only:
//   - create an estimate once the builder priced it
//   - read one estimate, the whole ledger, or the estimates of one creator
//
// Lookups that find nothing return a zero Estimate and a nil error.

type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context) ([]entities.Estimate, error)
	ListByCreator(ctx context.Context, username string) ([]entities.Estimate, error)
}
