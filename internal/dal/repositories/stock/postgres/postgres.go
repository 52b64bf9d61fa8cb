package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStockRepository reads and writes catalogue stock levels. The read
// (GetSnapshot) and the write (UpdateQuantity) are plain, independent
// statements; callers that need stronger guarantees under contention have to
// bring their own locking.
type PostgresStockRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresStockRepository creates a new Postgres stock repository.
func NewPostgresStockRepository(pool *pgxpool.Pool) *PostgresStockRepository {
	return &PostgresStockRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetSnapshot returns the available quantity per product for the given
// product ids. Products missing from the catalogue are absent from the map.
func (r *PostgresStockRepository) GetSnapshot(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	sqlStr, args, err := r.sb.
		Select("id", "quantity").
		From("products").
		Where(sq.Eq{"id": productIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock snapshot query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[int64]int, len(productIDs))
	for rows.Next() {
		var id int64
		var quantity int
		if err := rows.Scan(&id, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		snapshot[id] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return snapshot, nil
}

// UpdateQuantity overwrites the available quantity of a product.
func (r *PostgresStockRepository) UpdateQuantity(ctx context.Context, productID int64, newQuantity int) error {
	sqlStr, args, err := r.sb.
		Update("products").
		Set("quantity", newQuantity).
		Where(sq.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update quantity query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to update quantity of product %d: %w", productID, err)
	}

	return nil
}
