package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/repository"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

type fakeArticleRepo struct {
	articles []domain.Article
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id {
			copied := r.articles[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeArticleRepo) ListWithFilter(_ context.Context, filter repository.ArticleFilter) ([]domain.Article, int64, error) {
	var matched []domain.Article
	for _, article := range r.articles {
		if filter.CategoryID != nil && article.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.SearchTerm != nil && *filter.SearchTerm != "" {
			term := *filter.SearchTerm
			if !strings.Contains(article.Title, term) && !strings.Contains(article.Content, term) {
				continue
			}
		}
		matched = append(matched, article)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			copied := r.categories[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	sorted := append([]domain.Category{}, r.categories...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted, nil
}

func testContent() (*fakeArticleRepo, *fakeCategoryRepo) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	articles := &fakeArticleRepo{articles: []domain.Article{
		{ID: 1, Title: "budget season opens", Content: "city hall", CategoryID: 3, CreatedAt: base.Add(1 * time.Hour)},
		{ID: 2, Title: "sports roundup", Content: "local budget cuts hit stadiums", CategoryID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, Title: "budget analysis", Content: "opinion", CategoryID: 5, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 4, Title: "weather", Content: "sunny", CategoryID: 3, CreatedAt: base.Add(4 * time.Hour)},
		{ID: 5, Title: "election recap", Content: "results", CategoryID: 5, CreatedAt: base.Add(5 * time.Hour)},
	}}
	categories := &fakeCategoryRepo{categories: []domain.Category{
		{ID: 5, Name: "opinion"},
		{ID: 3, Name: "news"},
	}}
	return articles, categories
}

func newContentService(articles repository.ArticleRepository, categories repository.CategoryRepository) *ContentService {
	return NewContentService(articles, categories, nil, 0, zap.NewNop())
}

func TestListArticlesCombinedFilters(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	categoryID := int64(3)
	search := "budget"
	items, total, err := svc.ListArticles(context.Background(), 1, 10, &categoryID, &search)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Newest first.
	if items[0].ID != 2 || items[1].ID != 1 {
		t.Fatalf("unexpected order: %d, %d", items[0].ID, items[1].ID)
	}
}

func TestListArticlesTotalCoversAllPages(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	items, total, err := svc.ListArticles(context.Background(), 2, 2, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected full count 5, got %d", total)
	}
	if len(items) != 2 {
		t.Fatalf("expected page of 2, got %d", len(items))
	}
	if items[0].ID != 3 || items[1].ID != 2 {
		t.Fatalf("unexpected page content: %d, %d", items[0].ID, items[1].ID)
	}
}

func TestListGroupedByCategory(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	groups, err := svc.ListGroupedByCategory(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Categories are ordered by name ascending.
	if groups[0].Category.Name != "news" || groups[1].Category.Name != "opinion" {
		t.Fatalf("unexpected category order")
	}
	// The count reflects this page's items, not the category total:
	// "news" holds 3 articles but the page is capped at 2.
	if groups[0].ArticleCount != 2 || len(groups[0].Articles) != 2 {
		t.Fatalf("expected page-bound count 2, got %d", groups[0].ArticleCount)
	}
}

func TestListByCategoryUnknown(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	_, _, _, err := svc.ListByCategory(context.Background(), 99, 1, 10)
	if err == nil {
		t.Fatalf("expected error")
	}
	if apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListByCategory(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	category, items, total, err := svc.ListByCategory(context.Background(), 5, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if category.Name != "opinion" {
		t.Fatalf("unexpected category: %+v", category)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected both opinion articles, got total=%d items=%d", total, len(items))
	}
}

func TestGetArticleNotFound(t *testing.T) {
	articles, categories := testContent()
	svc := newContentService(articles, categories)

	_, err := svc.GetArticle(context.Background(), 99)
	if err == nil {
		t.Fatalf("expected error")
	}
	if apperrors.ToDomainError(err).Code != "NOT_FOUND" {
		t.Fatalf("expected not-found, got %v", err)
	}
}
