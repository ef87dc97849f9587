package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// CartRepository manages the per-user cart rows. The (user_id, plant_id)
// pair is unique; AddItem is a single atomic upsert so concurrent first-adds
// for the same pair cannot both insert or lose an increment.
type CartRepository interface {
	AddItem(ctx context.Context, userID, plantID int64, quantity int) error
	GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error)
	GetCartTotal(ctx context.Context, userID int64) (float64, error)
	UpdateQuantity(ctx context.Context, userID, plantID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, plantID int64) error
	ClearCart(ctx context.Context, userID int64) error
	Count(ctx context.Context, userID int64) (int, error)
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository instantiates the repository.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

func (r *cartRepository) AddItem(ctx context.Context, userID, plantID int64, quantity int) error {
	const query = `
        INSERT INTO cart (user_id, plant_id, quantity)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, plant_id)
        DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity`
	_, err := r.pool.Exec(ctx, query, userID, plantID, quantity)
	return err
}

// GetCart joins cart rows with the plant's current name, price, image and
// stock. Line totals reflect current prices; snapshotting happens only at
// order placement.
func (r *cartRepository) GetCart(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	const query = `
        SELECT c.user_id, c.plant_id, c.quantity, p.name, p.price, p.image_url, p.stock_quantity
        FROM cart c
        JOIN plants p ON c.plant_id = p.id
        WHERE c.user_id = $1
        ORDER BY p.name`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.UserID,
			&line.PlantID,
			&line.Quantity,
			&line.PlantName,
			&line.Price,
			&line.ImageURL,
			&line.StockQuantity,
		); err != nil {
			return nil, err
		}
		result = append(result, line)
	}
	return result, rows.Err()
}

// GetCartTotal returns 0 for an empty cart, never NULL.
func (r *cartRepository) GetCartTotal(ctx context.Context, userID int64) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(c.quantity * p.price), 0)
        FROM cart c
        JOIN plants p ON c.plant_id = p.id
        WHERE c.user_id = $1`
	var total float64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateQuantity overwrites the quantity; zero or negative removes the row.
func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, plantID int64, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, plantID)
	}
	const query = `UPDATE cart SET quantity=$1 WHERE user_id=$2 AND plant_id=$3`
	_, err := r.pool.Exec(ctx, query, quantity, userID, plantID)
	return err
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, plantID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE user_id=$1 AND plant_id=$2`, userID, plantID)
	return err
}

func (r *cartRepository) ClearCart(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart WHERE user_id=$1`, userID)
	return err
}

// Count returns the summed quantity across the user's cart, shown as the
// cart badge on rendered pages.
func (r *cartRepository) Count(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM cart WHERE user_id=$1`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
