package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-gateway/internal/api/dto"
	"github.com/spec-kit/news-gateway/internal/api/render"
	"github.com/spec-kit/news-gateway/internal/service"
	apperrors "github.com/spec-kit/news-gateway/pkg/util"
)

// ArticlesHandler exposes the public, format-negotiated read surface.
type ArticlesHandler struct {
	content *service.ContentService
}

// NewArticlesHandler constructs handler.
func NewArticlesHandler(contentService *service.ContentService) *ArticlesHandler {
	return &ArticlesHandler{content: contentService}
}

// List handles GET /api/rest/articles.
func (h *ArticlesHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	var categoryID *int64
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return render.Error(c, apperrors.NewValidationError("invalid category", nil))
		}
		categoryID = &parsed
	}
	var search *string
	if raw := c.Query("search"); raw != "" {
		search = &raw
	}

	articles, total, err := h.content.ListArticles(c.UserContext(), page, limit, categoryID, search)
	if err != nil {
		return render.Error(c, err)
	}

	return render.Negotiate(c, http.StatusOK, dto.ArticleListResponse{
		Success:    true,
		Data:       dto.NewArticleResponses(articles),
		Pagination: pagination(page, limit, total),
	})
}

// ListGrouped handles GET /api/rest/articles/categories.
func (h *ArticlesHandler) ListGrouped(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	groups, err := h.content.ListGroupedByCategory(c.UserContext(), page, limit)
	if err != nil {
		return render.Error(c, err)
	}

	data := make([]dto.CategoryGroupResponse, 0, len(groups))
	for _, group := range groups {
		data = append(data, dto.CategoryGroupResponse{
			ID:            group.Category.ID,
			Name:          group.Category.Name,
			ArticlesCount: group.ArticleCount,
			Articles:      dto.NewArticleResponses(group.Articles),
		})
	}

	return render.Negotiate(c, http.StatusOK, dto.GroupedArticlesResponse{
		Success:    true,
		Data:       data,
		Pagination: dto.Pagination{Page: page, Limit: limit},
	})
}

// ListByCategory handles GET /api/rest/articles/category/:categoryId.
func (h *ArticlesHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseInt(c.Params("categoryId"), 10, 64)
	if err != nil {
		return render.Error(c, apperrors.NewValidationError("invalid category id", nil))
	}
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	category, articles, total, err := h.content.ListByCategory(c.UserContext(), categoryID, page, limit)
	if err != nil {
		return render.Error(c, err)
	}

	return render.Negotiate(c, http.StatusOK, dto.CategoryArticlesResponse{
		Success:    true,
		Data:       dto.NewArticleResponses(articles),
		Category:   dto.CategoryRef{ID: category.ID, Name: category.Name},
		Pagination: pagination(page, limit, total),
	})
}

// GetByID handles GET /api/rest/articles/:id.
func (h *ArticlesHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return render.Error(c, apperrors.NewValidationError("invalid article id", nil))
	}

	article, err := h.content.GetArticle(c.UserContext(), id)
	if err != nil {
		return render.Error(c, err)
	}

	return render.Negotiate(c, http.StatusOK, dto.SingleArticleResponse{
		Success: true,
		Data:    dto.NewArticleResponse(article),
	})
}

func pagination(page, limit int, total int64) dto.Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return dto.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
