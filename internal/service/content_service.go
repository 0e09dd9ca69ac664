package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/persistence"
	"github.com/spec-kit/news-gateway/internal/repository"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// CategoryGroup pairs a category with one page of its articles. ArticleCount
// reflects the number of items in this page, not the category total.
type CategoryGroup struct {
	Category     domain.Category
	Articles     []domain.Article
	ArticleCount int
}

// ContentService orchestrates the public read surface: paginated, filterable
// article reads handed to the format-negotiation layer. All operations are
// pure reads and require no authorization.
type ContentService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewContentService builds the service. cache may be nil to disable caching.
func NewContentService(articles repository.ArticleRepository, categories repository.CategoryRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *ContentService {
	return &ContentService{
		articles:   articles,
		categories: categories,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// ListArticles returns one page of articles plus the full filtered count.
// Category and search filters combine with logical AND when both are set.
func (s *ContentService) ListArticles(ctx context.Context, page, limit int, categoryID *int64, search *string) ([]domain.Article, int64, error) {
	page, limit = normalizePage(page, limit)

	filter := repository.ArticleFilter{
		CategoryID: categoryID,
		SearchTerm: search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	articles, total, err := s.articles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return articles, total, nil
}

// ListGroupedByCategory attaches a page of articles to every category,
// ordered by category name ascending.
func (s *ContentService) ListGroupedByCategory(ctx context.Context, page, limit int) ([]CategoryGroup, error) {
	page, limit = normalizePage(page, limit)

	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, category := range categories {
		categoryID := category.ID
		filter := repository.ArticleFilter{
			CategoryID: &categoryID,
			Limit:      limit,
			Offset:     (page - 1) * limit,
		}
		articles, _, err := s.articles.ListWithFilter(ctx, filter)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		groups = append(groups, CategoryGroup{
			Category:     category,
			Articles:     articles,
			ArticleCount: len(articles),
		})
	}
	return groups, nil
}

// ListByCategory returns one page of a single category's articles.
func (s *ContentService) ListByCategory(ctx context.Context, categoryID int64, page, limit int) (*domain.Category, []domain.Article, int64, error) {
	page, limit = normalizePage(page, limit)

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, 0, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
		}
		return nil, nil, 0, apperrors.MapError(err)
	}

	filter := repository.ArticleFilter{
		CategoryID: &categoryID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	articles, total, err := s.articles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, nil, 0, apperrors.MapError(err)
	}
	return category, articles, total, nil
}

// GetArticle fetches a single article, cache-aside through Redis.
func (s *ContentService) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	cacheKey := fmt.Sprintf("article:%d", id)

	if s.cacheTTL > 0 {
		if cached, ok, err := s.cache.GetString(ctx, cacheKey); err != nil {
			s.logger.Warn("article cache read", zap.Error(err))
		} else if ok {
			var article domain.Article
			if err := json.Unmarshal([]byte(cached), &article); err == nil {
				return &article, nil
			}
		}
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("article", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if s.cacheTTL > 0 {
		if encoded, err := json.Marshal(article); err == nil {
			if err := s.cache.SetString(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil {
				s.logger.Warn("article cache write", zap.Error(err))
			}
		}
	}
	return article, nil
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
