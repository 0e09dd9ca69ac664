package dto

import (
	"encoding/xml"
	"time"

	"github.com/spec-kit/news-gateway/internal/domain"
)

// CategoryRef is the embedded category metadata on article payloads.
type CategoryRef struct {
	ID   int64  `xml:"id" json:"id"`
	Name string `xml:"name" json:"name"`
}

// ArticleResponse is the wire shape of a single article.
type ArticleResponse struct {
	ID        int64            `xml:"id" json:"id"`
	Title     string           `xml:"title" json:"title"`
	Content   string           `xml:"content" json:"content"`
	Category  CategoryRef      `xml:"category" json:"category"`
	AuthorID  int64            `xml:"authorId" json:"authorId"`
	ImageURL  *string          `xml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VideoURL  *string          `xml:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	MediaType domain.MediaType `xml:"mediaType" json:"mediaType"`
	CreatedAt time.Time        `xml:"createdAt" json:"createdAt"`
	UpdatedAt time.Time        `xml:"updatedAt" json:"updatedAt"`
}

// Pagination describes the returned page of a list response.
type Pagination struct {
	Page       int   `xml:"page" json:"page"`
	Limit      int   `xml:"limit" json:"limit"`
	Total      int64 `xml:"total,omitempty" json:"total,omitempty"`
	TotalPages int64 `xml:"totalPages,omitempty" json:"totalPages,omitempty"`
}

// ArticleListResponse is the payload of the flat article listing.
type ArticleListResponse struct {
	XMLName    xml.Name          `xml:"response" json:"-"`
	Success    bool              `xml:"success" json:"success"`
	Data       []ArticleResponse `xml:"data>article" json:"data"`
	Pagination Pagination        `xml:"pagination" json:"pagination"`
}

// CategoryGroupResponse is one category with a page of its articles.
// ArticlesCount counts the items in this page only.
type CategoryGroupResponse struct {
	ID            int64             `xml:"id" json:"id"`
	Name          string            `xml:"name" json:"name"`
	ArticlesCount int               `xml:"articlesCount" json:"articlesCount"`
	Articles      []ArticleResponse `xml:"articles>article" json:"articles"`
}

// GroupedArticlesResponse is the payload of the grouped listing.
type GroupedArticlesResponse struct {
	XMLName    xml.Name                `xml:"response" json:"-"`
	Success    bool                    `xml:"success" json:"success"`
	Data       []CategoryGroupResponse `xml:"data>category" json:"data"`
	Pagination Pagination              `xml:"pagination" json:"pagination"`
}

// CategoryArticlesResponse is the payload of the per-category listing.
type CategoryArticlesResponse struct {
	XMLName    xml.Name          `xml:"response" json:"-"`
	Success    bool              `xml:"success" json:"success"`
	Data       []ArticleResponse `xml:"data>article" json:"data"`
	Category   CategoryRef       `xml:"category" json:"category"`
	Pagination Pagination        `xml:"pagination" json:"pagination"`
}

// SingleArticleResponse is the payload of the by-id read.
type SingleArticleResponse struct {
	XMLName xml.Name        `xml:"response" json:"-"`
	Success bool            `xml:"success" json:"success"`
	Data    ArticleResponse `xml:"data" json:"data"`
}

// NewArticleResponse converts the domain model.
func NewArticleResponse(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:      article.ID,
		Title:   article.Title,
		Content: article.Content,
		Category: CategoryRef{
			ID:   article.CategoryID,
			Name: article.CategoryName,
		},
		AuthorID:  article.AuthorID,
		ImageURL:  article.ImageURL,
		VideoURL:  article.VideoURL,
		MediaType: article.MediaType,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

// NewArticleResponses converts a slice of domain models.
func NewArticleResponses(articles []domain.Article) []ArticleResponse {
	result := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		result = append(result, NewArticleResponse(&articles[i]))
	}
	return result
}
