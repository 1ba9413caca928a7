package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"futsal-backend/internal/domains/field"
)

type fieldService struct {
	repo field.Repository
}

func NewFieldService(repo field.Repository) field.Service {
	return &fieldService{repo: repo}
}

func (s *fieldService) ListFields(ctx context.Context, req field.ListFieldsRequest) (*field.ListFieldsResponse, error) {
	req.SetDefaults()

	fields, total, err := s.repo.ListAvailable(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	totalPages := (total + req.Limit - 1) / req.Limit // ceiling division

	return &field.ListFieldsResponse{
		Fields: fields,
		Pagination: field.PaginationMeta{
			CurrentPage: req.Page,
			PerPage:     req.Limit,
			Total:       total,
			TotalPages:  totalPages,
		},
	}, nil
}

func (s *fieldService) GetField(ctx context.Context, id uuid.UUID) (*field.Field, error) {
	return s.repo.FindByID(ctx, id)
}
