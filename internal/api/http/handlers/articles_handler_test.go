package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/news-gateway/internal/domain"
	"github.com/spec-kit/news-gateway/internal/repository"
	"github.com/spec-kit/news-gateway/internal/service"
)

type stubArticleRepo struct {
	articles []domain.Article
}

func (r *stubArticleRepo) GetByID(_ context.Context, id int64) (*domain.Article, error) {
	for i := range r.articles {
		if r.articles[i].ID == id {
			copied := r.articles[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubArticleRepo) ListWithFilter(_ context.Context, filter repository.ArticleFilter) ([]domain.Article, int64, error) {
	var matched []domain.Article
	for _, article := range r.articles {
		if filter.CategoryID != nil && article.CategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, article)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if filter.Offset < len(matched) {
		matched = matched[filter.Offset:]
	} else {
		matched = nil
	}
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			copied := r.categories[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, r.categories...), nil
}

func articlesApp() *fiber.App {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	articles := &stubArticleRepo{articles: []domain.Article{
		{ID: 1, Title: "first", Content: "a", CategoryID: 1, CategoryName: "news", CreatedAt: base},
		{ID: 2, Title: "second", Content: "b", CategoryID: 1, CategoryName: "news", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "third", Content: "c", CategoryID: 2, CategoryName: "opinion", CreatedAt: base.Add(2 * time.Hour)},
	}}
	categories := &stubCategoryRepo{categories: []domain.Category{
		{ID: 1, Name: "news"},
		{ID: 2, Name: "opinion"},
	}}
	content := service.NewContentService(articles, categories, nil, 0, zap.NewNop())
	handler := NewArticlesHandler(content)

	app := fiber.New()
	group := app.Group("/api/rest")
	group.Get("/articles", handler.List)
	group.Get("/articles/categories", handler.ListGrouped)
	group.Get("/articles/category/:categoryId", handler.ListByCategory)
	group.Get("/articles/:id", handler.GetByID)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s: %v\n%s", path, err, raw)
		}
	}
	return resp
}

func TestListArticlesEndpoint(t *testing.T) {
	app := articlesApp()

	var body struct {
		Success    bool `json:"success"`
		Data       []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"totalPages"`
		} `json:"pagination"`
	}
	resp := getJSON(t, app, "/api/rest/articles?page=1&limit=2", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !body.Success || len(body.Data) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Data[0].ID != 3 {
		t.Fatalf("expected newest first, got %d", body.Data[0].ID)
	}
	if body.Pagination.Total != 3 || body.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListByCategoryEndpoint(t *testing.T) {
	app := articlesApp()

	var body struct {
		Success  bool `json:"success"`
		Category struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"category"`
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	resp := getJSON(t, app, "/api/rest/articles/category/1", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if body.Category.Name != "news" || len(body.Data) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}

	resp = getJSON(t, app, "/api/rest/articles/category/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category should 404, got %d", resp.StatusCode)
	}
}

func TestGetArticleEndpoint(t *testing.T) {
	app := articlesApp()

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	resp := getJSON(t, app, "/api/rest/articles/2", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if body.Data.Title != "second" {
		t.Fatalf("unexpected body: %+v", body)
	}

	resp = getJSON(t, app, "/api/rest/articles/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown article should 404, got %d", resp.StatusCode)
	}

	resp = getJSON(t, app, "/api/rest/articles/not-a-number", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id should 400, got %d", resp.StatusCode)
	}
}

func TestGetArticleXML(t *testing.T) {
	app := articlesApp()

	req := httptest.NewRequest(http.MethodGet, "/api/rest/articles/2", nil)
	req.Header.Set("Accept", "application/xml")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	if !strings.Contains(body, "<title>second</title>") {
		t.Fatalf("unexpected xml body:\n%s", body)
	}
}
