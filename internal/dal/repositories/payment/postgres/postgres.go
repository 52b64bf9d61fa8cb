package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/ipaymentrepo"
	"github.com/webshop-labs/checkout/internal/service/models/currency"
	"github.com/webshop-labs/checkout/internal/service/models/payment"
)

// PaymentDal represents the payment data access layer model. Card attributes
// are stored flat and nullable; only card payments populate them.
type PaymentDal struct {
	Id          int64          `db:"id"`
	Method      string         `db:"method"`
	AmountCents int64          `db:"amount_cents"`
	Currency    string         `db:"currency"`
	Date        time.Time      `db:"date"`
	Status      string         `db:"status"`
	CardNumber  sql.NullString `db:"card_number"`
	CardExpiry  sql.NullTime   `db:"card_expiry"`
	CardGateway sql.NullString `db:"card_gateway"`
}

// ToModel converts PaymentDal to the service layer Payment model.
func (p *PaymentDal) ToModel() (*payment.Payment, error) {
	cur, err := currency.ParseCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	model := &payment.Payment{
		ID:          p.Id,
		Method:      payment.Method(p.Method),
		AmountCents: p.AmountCents,
		Currency:    cur,
		Date:        p.Date,
		Status:      payment.Status(p.Status),
	}

	if model.Method == payment.MethodCard {
		model.Card = &payment.CardDetails{
			Number:     p.CardNumber.String,
			ExpiryDate: p.CardExpiry.Time,
			Gateway:    p.CardGateway.String,
		}
	}

	return model, nil
}

// PostgresPaymentRepository represents a Postgres payment repository.
type PostgresPaymentRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresPaymentRepository creates a new Postgres payment repository.
func NewPostgresPaymentRepository(pool *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Store persists an unsaved payment and returns it with its identifier.
func (r *PostgresPaymentRepository) Store(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	var cardNumber, cardGateway sql.NullString
	var cardExpiry sql.NullTime
	if p.Card != nil {
		cardNumber = sql.NullString{String: p.Card.Number, Valid: true}
		cardExpiry = sql.NullTime{Time: p.Card.ExpiryDate, Valid: true}
		cardGateway = sql.NullString{String: p.Card.Gateway, Valid: true}
	}

	sqlStr, args, err := r.sb.
		Insert("payments").
		Columns("method", "amount_cents", "currency", "date", "status", "card_number", "card_expiry", "card_gateway").
		Values(p.Method, p.AmountCents, p.Currency.String(), p.Date, p.Status, cardNumber, cardExpiry, cardGateway).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert payment query: %w", err)
	}

	stored := *p
	if p.Card != nil {
		card := *p.Card
		stored.Card = &card
	}
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	return &stored, nil
}

// GetByID retrieves a payment by its identifier.
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	sqlStr, args, err := r.sb.
		Select("id", "method", "amount_cents", "currency", "date", "status", "card_number", "card_expiry", "card_gateway").
		From("payments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select payment query: %w", err)
	}

	var dal PaymentDal
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&dal.Id,
		&dal.Method,
		&dal.AmountCents,
		&dal.Currency,
		&dal.Date,
		&dal.Status,
		&dal.CardNumber,
		&dal.CardExpiry,
		&dal.CardGateway,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ipaymentrepo.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("failed to query payment: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert payment dal to model: %w", err)
	}

	return model, nil
}
