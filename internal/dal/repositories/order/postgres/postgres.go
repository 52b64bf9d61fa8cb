package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iorderrepo"
	"github.com/webshop-labs/checkout/internal/service/models/order"
	"github.com/webshop-labs/checkout/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id         int64     `db:"id"`
	UserId     int64     `db:"user_id"`
	PaymentId  int64     `db:"payment_id"`
	ShipmentId int64     `db:"shipment_id"`
	Status     string    `db:"status"`
	Cancelled  bool      `db:"cancelled"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:         o.Id,
		UserID:     o.UserId,
		PaymentID:  o.PaymentId,
		ShipmentID: o.ShipmentId,
		Status:     status,
		Cancelled:  o.Cancelled,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      []orderitem.OrderItem{},
	}, nil
}

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id        int64     `db:"id"`
	OrderId   int64     `db:"order_id"`
	ProductId int64     `db:"product_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		ProductID: oi.ProductId,
		Quantity:  oi.Quantity,
		CreatedAt: oi.CreatedAt,
		UpdatedAt: oi.UpdatedAt,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts the order row and its item rows in one transaction and
// returns the stored order with identifiers assigned. Attached payment and
// shipment objects are carried over untouched.
func (r *PostgresOrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()

	sql, args, err := r.sb.
		Insert("orders").
		Columns("user_id", "payment_id", "shipment_id", "status", "cancelled", "created_at", "updated_at").
		Values(o.UserID, o.PaymentID, o.ShipmentID, o.Status.String(), o.Cancelled, o.CreatedAt, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert order query: %w", err)
	}

	stored := *o
	stored.UpdatedAt = now
	if err := tx.QueryRow(ctx, sql, args...).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if len(o.Items) > 0 {
		insert := r.sb.
			Insert("order_items").
			Columns("order_id", "product_id", "quantity", "created_at", "updated_at")
		for _, item := range o.Items {
			insert = insert.Values(stored.ID, item.ProductID, item.Quantity, now, now)
		}

		sql, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert order items query: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order items: %w", err)
		}

		items := make([]orderitem.OrderItem, 0, len(o.Items))
		i := 0
		for rows.Next() {
			item := o.Items[i]
			if err := rows.Scan(&item.ID); err != nil {
				rows.Close()

				return nil, fmt.Errorf("failed to scan order item id: %w", err)
			}
			item.OrderID = stored.ID
			item.CreatedAt = now
			item.UpdatedAt = now
			items = append(items, item)
			i++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		stored.Items = items
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &stored, nil
}

// GetByID retrieves an order and its items. Products, payment, and shipment
// references are left unresolved; hydration belongs to the service layer.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "payment_id", "shipment_id", "status", "cancelled", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select order query: %w", err)
	}

	var dal OrderDal
	err = r.pool.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.UserId,
		&dal.PaymentId,
		&dal.ShipmentId,
		&dal.Status,
		&dal.Cancelled,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iorderrepo.ErrOrderNotFound
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	items, err := r.queryItems(ctx, []int64{model.ID})
	if err != nil {
		return nil, err
	}
	model.Items = items

	return model, nil
}

// GetByUserID retrieves all orders of a user with their items.
func (r *PostgresOrderRepository) GetByUserID(ctx context.Context, userID int64) ([]order.Order, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "payment_id", "shipment_id", "status", "cancelled", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select orders query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	var orderIds []int64
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.PaymentId,
			&dal.ShipmentId,
			&dal.Status,
			&dal.Cancelled,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
		orderIds = append(orderIds, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if len(result) == 0 {
		return []order.Order{}, nil
	}

	items, err := r.queryItems(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	for i := range result {
		for _, item := range items {
			if item.OrderID == result[i].ID {
				result[i].Items = append(result[i].Items, item)
			}
		}
	}

	return result, nil
}

// Update writes back the mutable order fields.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	sql, args, err := r.sb.
		Update("orders").
		Set("payment_id", o.PaymentID).
		Set("shipment_id", o.ShipmentID).
		Set("status", o.Status.String()).
		Set("cancelled", o.Cancelled).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update order query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return iorderrepo.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order and its items.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := r.sb.Delete("order_items").Where(sq.Eq{"order_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete order items query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	sql, args, err = r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete order query: %w", err)
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return iorderrepo.ErrOrderNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresOrderRepository) queryItems(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	sql, args, err := r.sb.
		Select("id", "order_id", "product_id", "quantity", "created_at", "updated_at").
		From("order_items").
		Where(sq.Eq{"order_id": orderIds}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select order items query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, *dal.ToModel())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
