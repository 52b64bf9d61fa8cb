package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iproductrepo"
	"github.com/webshop-labs/checkout/internal/service/models/currency"
	"github.com/webshop-labs/checkout/internal/service/models/product"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id            int64     `db:"id"`
	Title         string    `db:"title"`
	Url           string    `db:"url"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	Quantity      int       `db:"quantity"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &product.Product{
		ID:            p.Id,
		Title:         p.Title,
		URL:           p.Url,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		Quantity:      p.Quantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get retrieves a product by its identifier.
func (r *PostgresProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	sqlStr, args, err := r.sb.
		Select("id", "title", "url", "price_cents", "price_currency", "quantity", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select product query: %w", err)
	}

	var dal ProductDal
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&dal.Id,
		&dal.Title,
		&dal.Url,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.Quantity,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iproductrepo.ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
	}

	return model, nil
}
