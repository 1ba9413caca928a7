package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"futsal-backend/internal/domains/field"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresFieldRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) field.Repository {
	return &postgresFieldRepository{pool: pool}
}

const fieldColumns = `id, name, description, location, type, price, price_weekend, status, created_at, updated_at`

func scanField(row pgx.Row) (*field.Field, error) {
	f := &field.Field{}
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Location,
		&f.Type,
		&f.Price,
		&f.PriceWeekend,
		&f.Status,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, field.ErrFieldNotFound
		}
		return nil, fmt.Errorf("scan field: %w", err)
	}
	return f, nil
}

func (r *postgresFieldRepository) ListAvailable(ctx context.Context, req field.ListFieldsRequest) ([]field.Field, int, error) {
	// Dynamic WHERE built from optional filters; args are always
	// parameterized.
	where := `WHERE status = 'active'`
	args := []interface{}{}
	argPos := 1

	if req.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, argPos, argPos)
		args = append(args, "%"+req.Search+"%")
		argPos++
	}
	if req.Type != "" {
		where += fmt.Sprintf(` AND type = $%d`, argPos)
		args = append(args, req.Type)
		argPos++
	}
	if req.Location != "" {
		where += fmt.Sprintf(` AND location ILIKE $%d`, argPos)
		args = append(args, "%"+req.Location+"%")
		argPos++
	}

	// Total count for pagination
	var total int
	countQuery := `SELECT COUNT(*) FROM fields ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fields: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM fields %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		fieldColumns, where, argPos, argPos+1,
	)
	offset := (req.Page - 1) * req.Limit
	args = append(args, req.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []field.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, *f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate fields: %w", err)
	}

	return fields, total, nil
}

func (r *postgresFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*field.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = $1`
	return scanField(r.pool.QueryRow(ctx, query, id))
}
