package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// WishlistRepository manages saved plants.
type WishlistRepository interface {
	// Add inserts the pair if absent and reports whether a row was created.
	Add(ctx context.Context, userID, plantID int64) (bool, error)
	// Remove deletes the pair and reports whether a row existed.
	Remove(ctx context.Context, userID, plantID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]domain.WishlistEntry, error)
}

type wishlistRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository instantiates the repository.
func NewWishlistRepository(pool *pgxpool.Pool) WishlistRepository {
	return &wishlistRepository{pool: pool}
}

func (r *wishlistRepository) Add(ctx context.Context, userID, plantID int64) (bool, error) {
	const query = `
        INSERT INTO wishlist (user_id, plant_id)
        VALUES ($1,$2)
        ON CONFLICT (user_id, plant_id) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query, userID, plantID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, plantID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wishlist WHERE user_id=$1 AND plant_id=$2`, userID, plantID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *wishlistRepository) List(ctx context.Context, userID int64) ([]domain.WishlistEntry, error) {
	const query = `
        SELECT w.user_id, w.added_date,
               p.id, p.name, p.description, p.price, p.stock_quantity, p.category,
               p.care_instructions, p.image_url, p.created_at
        FROM wishlist w
        JOIN plants p ON w.plant_id = p.id
        WHERE w.user_id = $1
        ORDER BY w.added_date DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.WishlistEntry
	for rows.Next() {
		var entry domain.WishlistEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.AddedDate,
			&entry.Plant.ID,
			&entry.Plant.Name,
			&entry.Plant.Description,
			&entry.Plant.Price,
			&entry.Plant.StockQuantity,
			&entry.Plant.Category,
			&entry.Plant.CareInstructions,
			&entry.Plant.ImageURL,
			&entry.Plant.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
