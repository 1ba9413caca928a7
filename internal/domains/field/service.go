package field

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for the field catalog.
type Service interface {
	ListFields(ctx context.Context, req ListFieldsRequest) (*ListFieldsResponse, error)
	GetField(ctx context.Context, id uuid.UUID) (*Field, error)
}
