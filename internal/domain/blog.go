package domain

import "time"

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool { return s == PostDraft || s == PostPublished }

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=120"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=120"`
}

type BlogPost struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title" validate:"required,max=200"`
	Slug          string     `json:"slug" validate:"max=255"`
	AuthorID      int64      `json:"author_id"`
	AuthorName    string     `json:"author_name,omitempty"`
	CategoryID    *int64     `json:"category_id,omitempty"`
	Category      *Category  `json:"category,omitempty"`
	Tags          []Tag      `json:"tags,omitempty"`
	TagIDs        []int64    `json:"tag_ids,omitempty"` // nil leaves the stored set untouched on update
	Content       string     `json:"content" validate:"required"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage *string    `json:"featured_image,omitempty" validate:"omitempty,max=255"`
	Status        PostStatus `json:"status"`
	PublishedAt   time.Time  `json:"published_at"`
	Views         int64      `json:"views"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// VisibleAt reports whether the post may be shown publicly at now.
func (p BlogPost) VisibleAt(now time.Time) bool {
	return p.Status == PostPublished && !p.PublishedAt.After(now)
}
