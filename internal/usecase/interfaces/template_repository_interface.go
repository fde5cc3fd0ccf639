package interfaces

import (
	"context"
	"estimador/internal/domain/entities"
)

// ITemplateRepository abstracts persistence of the Template Catalog.
//
// Update replaces an existing entry and never creates one. Lookups, updates
// and deletes that find nothing return a zero Template and a nil error.

type ITemplateRepository interface {
	Create(ctx context.Context, t entities.Template) (entities.Template, error)
	Update(ctx context.Context, t entities.Template) (entities.Template, error)
	GetByID(ctx context.Context, id string) (entities.Template, error)
	List(ctx context.Context) ([]entities.Template, error)
	Delete(ctx context.Context, id string) (entities.Template, error)
}
