package field

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for fields.
type Repository interface {
	// ListAvailable returns active fields matching the filters plus the
	// total match count for pagination.
	ListAvailable(ctx context.Context, req ListFieldsRequest) ([]Field, int, error)

	// FindByID returns ErrFieldNotFound when the field does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Field, error)
}
