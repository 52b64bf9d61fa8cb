package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ishipmentrepo"
	"github.com/webshop-labs/checkout/internal/service/models/shipment"
)

// ShipmentDal represents the shipment data access layer model.
type ShipmentDal struct {
	Id        int64     `db:"id"`
	Kind      string    `db:"kind"`
	FeeCents  int64     `db:"fee_cents"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts ShipmentDal to the service layer Shipment model.
func (s *ShipmentDal) ToModel() *shipment.Shipment {
	return &shipment.Shipment{
		ID:        s.Id,
		Kind:      shipment.Kind(s.Kind),
		FeeCents:  s.FeeCents,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}

// PostgresShipmentRepository represents a Postgres shipment repository.
type PostgresShipmentRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresShipmentRepository creates a new Postgres shipment repository.
func NewPostgresShipmentRepository(pool *pgxpool.Pool) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Store persists an unsaved shipment and returns it with its identifier.
func (r *PostgresShipmentRepository) Store(ctx context.Context, s *shipment.Shipment) (*shipment.Shipment, error) {
	sqlStr, args, err := r.sb.
		Insert("shipments").
		Columns("kind", "fee_cents", "address", "created_at").
		Values(s.Kind, s.FeeCents, s.Address, s.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert shipment query: %w", err)
	}

	stored := *s
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("failed to insert shipment: %w", err)
	}

	return &stored, nil
}

// GetByID retrieves a shipment by its identifier.
func (r *PostgresShipmentRepository) GetByID(ctx context.Context, id int64) (*shipment.Shipment, error) {
	sqlStr, args, err := r.sb.
		Select("id", "kind", "fee_cents", "address", "created_at").
		From("shipments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select shipment query: %w", err)
	}

	var dal ShipmentDal
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&dal.Id,
		&dal.Kind,
		&dal.FeeCents,
		&dal.Address,
		&dal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ishipmentrepo.ErrShipmentNotFound
		}

		return nil, fmt.Errorf("failed to query shipment: %w", err)
	}

	return dal.ToModel(), nil
}
