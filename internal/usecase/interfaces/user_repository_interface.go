package interfaces

import (
	"context"
	"estimador/internal/domain/entities"
)

// IUserRepository abstracts persistence of the Identity Store.
//
// Lookups and deletes that find nothing return a zero User and a nil error.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Delete(ctx context.Context, id string) (entities.User, error)
}
