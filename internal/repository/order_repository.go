package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// ErrEmptyCart is the normal empty-state outcome of placing an order with no
// cart lines; handlers redirect rather than render an error.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientStock aborts placement when a cart line exceeds the plant's
// remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository persists orders and their immutable line items.
type OrderRepository interface {
	// PlaceOrder converts the user's cart into a durable order inside one
	// transaction: lock cart lines with current prices, create the order,
	// insert line items, decrement stock, clear the cart. A fault at any
	// step leaves either no order or a complete order with a cleared cart.
	PlaceOrder(ctx context.Context, customerID int64, deliveryAddress string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	GetByIDAndCustomer(ctx context.Context, orderID, customerID int64) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	GetDetails(ctx context.Context, orderID int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	ItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) PlaceOrder(ctx context.Context, customerID int64, deliveryAddress string) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the cart lines and their plants so prices and stock cannot move
	// between the snapshot and the commit.
	const snapshotQuery = `
        SELECT c.plant_id, c.quantity, p.price
        FROM cart c
        JOIN plants p ON c.plant_id = p.id
        WHERE c.user_id = $1
        ORDER BY c.plant_id
        FOR UPDATE`
	rows, err := tx.Query(ctx, snapshotQuery, customerID)
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	var total float64
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.PlantID, &item.Quantity, &item.Price); err != nil {
			rows.Close()
			return nil, err
		}
		total += float64(item.Quantity) * item.Price
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		CustomerID:      customerID,
		TotalAmount:     total,
		DeliveryAddress: deliveryAddress,
	}
	const insertOrder = `
        INSERT INTO orders (customer_id, total_amount, delivery_address)
        VALUES ($1,$2,$3)
        RETURNING id, status, order_date`
	if err := tx.QueryRow(ctx, insertOrder, customerID, total, deliveryAddress).Scan(
		&order.ID, &order.Status, &order.OrderDate,
	); err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for i := range items {
		items[i].OrderID = order.ID
		batch.Queue(`INSERT INTO order_items (order_id, plant_id, quantity, price) VALUES ($1,$2,$3,$4)`,
			order.ID, items[i].PlantID, items[i].Quantity, items[i].Price)
	}
	for _, item := range items {
		batch.Queue(`UPDATE plants SET stock_quantity = stock_quantity - $1 WHERE id = $2 AND stock_quantity >= $1`,
			item.Quantity, item.PlantID)
	}
	batch.Queue(`DELETE FROM cart WHERE user_id = $1`, customerID)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, err
		}
	}
	for i := 0; i < len(items); i++ {
		cmd, err := results.Exec()
		if err != nil {
			results.Close()
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			results.Close()
			return nil, ErrInsufficientStock
		}
	}
	if _, err := results.Exec(); err != nil {
		results.Close()
		return nil, err
	}
	if err := results.Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.ItemCount = len(items)
	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	const query = `
        SELECT o.id, o.customer_id, o.total_amount, o.delivery_address, o.status, o.order_date,
               COUNT(oi.id) AS item_count,
               COALESCE(STRING_AGG(p.name, ', '), '') AS plant_names
        FROM orders o
        LEFT JOIN order_items oi ON o.id = oi.order_id
        LEFT JOIN plants p ON oi.plant_id = p.id
        WHERE o.customer_id = $1
        GROUP BY o.id
        ORDER BY o.order_date DESC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.TotalAmount,
			&order.DeliveryAddress,
			&order.Status,
			&order.OrderDate,
			&order.ItemCount,
			&order.PlantNames,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetByIDAndCustomer(ctx context.Context, orderID, customerID int64) (*domain.Order, error) {
	const query = `
        SELECT id, customer_id, total_amount, delivery_address, status, order_date
        FROM orders WHERE id=$1 AND customer_id=$2`
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, orderID, customerID).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalAmount,
		&order.DeliveryAddress,
		&order.Status,
		&order.OrderDate,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT o.id, o.customer_id, o.total_amount, o.delivery_address, o.status, o.order_date,
               COUNT(oi.id) AS item_count,
               u.username, u.email, u.first_name, u.last_name
        FROM orders o
        JOIN users u ON o.customer_id = u.id
        LEFT JOIN order_items oi ON o.id = oi.order_id
        GROUP BY o.id, u.username, u.email, u.first_name, u.last_name
        ORDER BY o.order_date DESC`
	return r.listWithCustomer(ctx, query)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	const query = `
        SELECT o.id, o.customer_id, o.total_amount, o.delivery_address, o.status, o.order_date,
               COUNT(oi.id) AS item_count,
               u.username, u.email, u.first_name, u.last_name
        FROM orders o
        JOIN users u ON o.customer_id = u.id
        LEFT JOIN order_items oi ON o.id = oi.order_id
        WHERE o.status = $1
        GROUP BY o.id, u.username, u.email, u.first_name, u.last_name
        ORDER BY o.order_date DESC`
	return r.listWithCustomer(ctx, query, status)
}

func (r *orderRepository) listWithCustomer(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		var customer domain.Identity
		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.TotalAmount,
			&order.DeliveryAddress,
			&order.Status,
			&order.OrderDate,
			&order.ItemCount,
			&customer.Username,
			&customer.Email,
			&customer.FirstName,
			&customer.LastName,
		); err != nil {
			return nil, err
		}
		customer.ID = order.CustomerID
		customer.Role = domain.RoleCustomer
		order.Customer = &customer
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetDetails(ctx context.Context, orderID int64) (*domain.Order, error) {
	const query = `
        SELECT o.id, o.customer_id, o.total_amount, o.delivery_address, o.status, o.order_date,
               u.username, u.email, u.first_name, u.last_name
        FROM orders o
        JOIN users u ON o.customer_id = u.id
        WHERE o.id = $1`
	var order domain.Order
	var customer domain.Identity
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalAmount,
		&order.DeliveryAddress,
		&order.Status,
		&order.OrderDate,
		&customer.Username,
		&customer.Email,
		&customer.FirstName,
		&customer.LastName,
	); err != nil {
		return nil, err
	}
	customer.ID = order.CustomerID
	customer.Role = domain.RoleCustomer
	order.Customer = &customer
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) ItemsByOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const query = `
        SELECT oi.id, oi.order_id, oi.plant_id, oi.quantity, oi.price, p.name, p.image_url
        FROM order_items oi
        JOIN plants p ON oi.plant_id = p.id
        WHERE oi.order_id = $1
        ORDER BY oi.id`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.PlantID,
			&item.Quantity,
			&item.Price,
			&item.PlantName,
			&item.ImageURL,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
