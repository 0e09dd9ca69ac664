package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/news-gateway/internal/domain"
)

// ArticleFilter captures the read-surface query parameters. CategoryID and
// SearchTerm combine with logical AND when both are present.
type ArticleFilter struct {
	CategoryID *int64
	SearchTerm *string
	Limit      int
	Offset     int
}

// ArticleRepository defines read access to published content.
type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, int64, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository returns a Postgres-backed implementation.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `a.id, a.title, a.content, a.category_id, c.name, a.author_id,
               a.image_url, a.video_url, a.media_type, a.created_at, a.updated_at`

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE a.id=$1`, articleColumns)

	var article domain.Article
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.CategoryID,
		&article.CategoryName,
		&article.AuthorID,
		&article.ImageURL,
		&article.VideoURL,
		&article.MediaType,
		&article.CreatedAt,
		&article.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ListWithFilter(ctx context.Context, filter ArticleFilter) ([]domain.Article, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("a.category_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		args = append(args, "%"+*filter.SearchTerm+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(a.title LIKE %s OR a.content LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	countQuery := fmt.Sprintf(`
        SELECT COUNT(*)
        FROM articles a
        WHERE %s`, where)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM articles a JOIN categories c ON c.id = a.category_id
        WHERE %s
        ORDER BY a.created_at DESC
        LIMIT %d OFFSET %d`, articleColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var result []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Content,
			&article.CategoryID,
			&article.CategoryName,
			&article.AuthorID,
			&article.ImageURL,
			&article.VideoURL,
			&article.MediaType,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
