package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/news-gateway/internal/domain"
)

// ErrDuplicateToken signals a collision on the unique token value. The store
// constraint is the only arbiter; the insert fails rather than overwriting.
var ErrDuplicateToken = errors.New("duplicate token value")

// AdminTokenRepository manages bearer-secret persistence. Records are never
// deleted; revocation flips the active flag and retains the row for audit.
type AdminTokenRepository interface {
	Create(ctx context.Context, token *domain.AdminToken) error
	ListAll(ctx context.Context) ([]domain.AdminToken, error)
	GetByID(ctx context.Context, id string) (*domain.AdminToken, error)
	FindActiveByToken(ctx context.Context, tokenValue string) (*domain.AdminToken, error)
	Revoke(ctx context.Context, id string) error
	MarkUsed(ctx context.Context, id string) error
}

type adminTokenRepository struct {
	pool *pgxpool.Pool
}

// NewAdminTokenRepository constructs repository.
func NewAdminTokenRepository(pool *pgxpool.Pool) AdminTokenRepository {
	return &adminTokenRepository{pool: pool}
}

const adminTokenColumns = `t.id, t.token, t.description, t.created_by, u.username,
               t.active, t.expires_at, t.last_used_at, t.created_at`

func (r *adminTokenRepository) Create(ctx context.Context, token *domain.AdminToken) error {
	const query = `
        INSERT INTO admin_tokens (id, token, description, created_by, active, expires_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		token.ID,
		token.Token,
		token.Description,
		token.CreatedBy,
		token.Active,
		token.ExpiresAt,
	).Scan(&token.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToken
		}
		return err
	}
	return nil
}

func (r *adminTokenRepository) ListAll(ctx context.Context) ([]domain.AdminToken, error) {
	query := `
        SELECT ` + adminTokenColumns + `
        FROM admin_tokens t JOIN users u ON u.id = t.created_by
        ORDER BY t.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdminToken
	for rows.Next() {
		token, err := scanAdminToken(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *token)
	}
	return result, rows.Err()
}

func (r *adminTokenRepository) GetByID(ctx context.Context, id string) (*domain.AdminToken, error) {
	query := `
        SELECT ` + adminTokenColumns + `
        FROM admin_tokens t JOIN users u ON u.id = t.created_by
        WHERE t.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adminTokenRepository) FindActiveByToken(ctx context.Context, tokenValue string) (*domain.AdminToken, error) {
	query := `
        SELECT ` + adminTokenColumns + `
        FROM admin_tokens t JOIN users u ON u.id = t.created_by
        WHERE t.token=$1 AND t.active=TRUE`
	return r.fetchSingle(ctx, query, tokenValue)
}

func (r *adminTokenRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdminToken, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanAdminToken(row)
}

func (r *adminTokenRepository) Revoke(ctx context.Context, id string) error {
	const query = `UPDATE admin_tokens SET active=FALSE WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminTokenRepository) MarkUsed(ctx context.Context, id string) error {
	// Last writer wins on concurrent validations; GREATEST keeps the
	// timestamp monotonically non-decreasing.
	const query = `
        UPDATE admin_tokens
        SET last_used_at = GREATEST(COALESCE(last_used_at, NOW()), NOW())
        WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func scanAdminToken(row pgx.Row) (*domain.AdminToken, error) {
	var token domain.AdminToken
	if err := row.Scan(
		&token.ID,
		&token.Token,
		&token.Description,
		&token.CreatedBy,
		&token.CreatorUsername,
		&token.Active,
		&token.ExpiresAt,
		&token.LastUsedAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}
