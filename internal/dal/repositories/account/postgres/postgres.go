package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop-labs/checkout/internal/dal/interfaces/iaccountrepo"
	"github.com/webshop-labs/checkout/internal/service/models/account"
)

// AccountDal represents the account data access layer model.
type AccountDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts AccountDal to the service layer Account model.
func (a *AccountDal) ToModel() *account.Account {
	return &account.Account{
		ID:        a.Id,
		Name:      a.Name,
		Email:     a.Email,
		Address:   a.Address,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// PostgresAccountRepository represents a Postgres account repository.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewPostgresAccountRepository creates a new Postgres account repository.
func NewPostgresAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetAccount retrieves an account by user identifier.
func (r *PostgresAccountRepository) GetAccount(ctx context.Context, userID int64) (*account.Account, error) {
	sqlStr, args, err := r.sb.
		Select("id", "name", "email", "address", "created_at", "updated_at").
		From("accounts").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select account query: %w", err)
	}

	var dal AccountDal
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.Address,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iaccountrepo.ErrAccountNotFound
		}

		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	return dal.ToModel(), nil
}
