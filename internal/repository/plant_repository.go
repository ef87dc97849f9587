package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// PlantRepository encapsulates catalog persistence.
type PlantRepository interface {
	Create(ctx context.Context, plant *domain.Plant) error
	Update(ctx context.Context, plant *domain.Plant) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Plant, error)
	ListInStock(ctx context.Context) ([]domain.Plant, error)
	ListAll(ctx context.Context) ([]domain.Plant, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Plant, error)
	Search(ctx context.Context, term string) ([]domain.Plant, error)
}

type plantRepository struct {
	pool *pgxpool.Pool
}

// NewPlantRepository instantiates the repository.
func NewPlantRepository(pool *pgxpool.Pool) PlantRepository {
	return &plantRepository{pool: pool}
}

const plantColumns = `id, name, description, price, stock_quantity, category, care_instructions, image_url, created_at`

func (r *plantRepository) Create(ctx context.Context, plant *domain.Plant) error {
	const query = `
        INSERT INTO plants (name, description, price, stock_quantity, category, care_instructions, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		plant.Name,
		plant.Description,
		plant.Price,
		plant.StockQuantity,
		plant.Category,
		plant.CareInstructions,
		plant.ImageURL,
	).Scan(&plant.ID, &plant.CreatedAt)
}

func (r *plantRepository) Update(ctx context.Context, plant *domain.Plant) error {
	const query = `
        UPDATE plants SET name=$1, description=$2, price=$3, stock_quantity=$4,
            category=$5, care_instructions=$6, image_url=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		plant.Name,
		plant.Description,
		plant.Price,
		plant.StockQuantity,
		plant.Category,
		plant.CareInstructions,
		plant.ImageURL,
		plant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *plantRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM plants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *plantRepository) GetByID(ctx context.Context, id int64) (*domain.Plant, error) {
	var plant domain.Plant
	if err := r.pool.QueryRow(ctx, `SELECT `+plantColumns+` FROM plants WHERE id=$1`, id).Scan(
		&plant.ID,
		&plant.Name,
		&plant.Description,
		&plant.Price,
		&plant.StockQuantity,
		&plant.Category,
		&plant.CareInstructions,
		&plant.ImageURL,
		&plant.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &plant, nil
}

// ListInStock returns the customer-facing catalog; sold-out plants are hidden.
func (r *plantRepository) ListInStock(ctx context.Context) ([]domain.Plant, error) {
	return r.list(ctx, `SELECT `+plantColumns+` FROM plants WHERE stock_quantity > 0 ORDER BY name`)
}

// ListAll returns every plant including out-of-stock, for the back office.
func (r *plantRepository) ListAll(ctx context.Context) ([]domain.Plant, error) {
	return r.list(ctx, `SELECT `+plantColumns+` FROM plants ORDER BY name`)
}

func (r *plantRepository) ListByCategory(ctx context.Context, category string) ([]domain.Plant, error) {
	return r.list(ctx, `SELECT `+plantColumns+` FROM plants WHERE category=$1 AND stock_quantity > 0 ORDER BY name`, category)
}

func (r *plantRepository) Search(ctx context.Context, term string) ([]domain.Plant, error) {
	pattern := "%" + term + "%"
	const query = `
        SELECT ` + plantColumns + ` FROM plants
        WHERE (name ILIKE $1 OR description ILIKE $1) AND stock_quantity > 0
        ORDER BY name`
	return r.list(ctx, query, pattern)
}

func (r *plantRepository) list(ctx context.Context, query string, args ...any) ([]domain.Plant, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Plant
	for rows.Next() {
		var plant domain.Plant
		if err := rows.Scan(
			&plant.ID,
			&plant.Name,
			&plant.Description,
			&plant.Price,
			&plant.StockQuantity,
			&plant.Category,
			&plant.CareInstructions,
			&plant.ImageURL,
			&plant.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plant)
	}
	return result, rows.Err()
}
