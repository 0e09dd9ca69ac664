package domain

import "time"

// MediaType describes the optional media attached to an article.
type MediaType string

const (
	MediaTypeNone  MediaType = "none"
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Category groups articles under a named taxonomy entry.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Article is the content model served by the resource read surface.
type Article struct {
	ID           int64
	Title        string
	Content      string
	CategoryID   int64
	CategoryName string
	AuthorID     int64
	ImageURL     *string
	VideoURL     *string
	MediaType    MediaType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
