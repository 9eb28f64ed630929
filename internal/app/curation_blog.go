package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_agency/internal/domain"
)

/********** categories & tags **********/

func (s *CurationService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CurationService) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := mergeErr(check(s.validate, c), assignSlug(&c.Slug, c.Name, domain.ShortSlugMaxLen)); err != nil {
		return err
	}
	return s.repo.CreateCategory(ctx, c)
}

func (s *CurationService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := check(s.validate, c); err != nil {
		return err
	}
	return s.repo.UpdateCategory(ctx, c)
}

// DeleteCategory keeps the posts; they lose their category.
func (s *CurationService) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *CurationService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *CurationService) CreateTag(ctx context.Context, t *domain.Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	if err := mergeErr(check(s.validate, t), assignSlug(&t.Slug, t.Name, domain.ShortSlugMaxLen)); err != nil {
		return err
	}
	return s.repo.CreateTag(ctx, t)
}

func (s *CurationService) UpdateTag(ctx context.Context, t *domain.Tag) error {
	t.Name = strings.TrimSpace(t.Name)
	if err := check(s.validate, t); err != nil {
		return err
	}
	return s.repo.UpdateTag(ctx, t)
}

func (s *CurationService) DeleteTag(ctx context.Context, id int64) error {
	return s.repo.DeleteTag(ctx, id)
}

/********** posts **********/

// ListPosts is the staff view: drafts and scheduled posts included.
func (s *CurationService) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.BlogPost, error) {
	f.VisibleAt = nil
	return s.repo.ListPosts(ctx, f)
}

func (s *CurationService) GetPost(ctx context.Context, id int64) (domain.BlogPost, error) {
	return s.repo.GetPost(ctx, id)
}

// CreatePost stores a post authored by actorID. Status defaults to draft and
// published_at to now.
func (s *CurationService) CreatePost(ctx context.Context, actorID int64, p *domain.BlogPost) error {
	now := s.now().UTC()
	p.Title = strings.TrimSpace(p.Title)
	p.AuthorID = actorID
	if p.Status == "" {
		p.Status = domain.PostDraft
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}
	p.CreatedAt, p.UpdatedAt = now, now
	p.Views = 0

	problems := joinProblems(assignSlug(&p.Slug, p.Title, domain.SlugMaxLen), checkPostStatus(p.Status))
	if err := mergeErr(check(s.validate, p), problems); err != nil {
		return err
	}
	if err := s.repo.CreatePost(ctx, p); err != nil {
		return fmt.Errorf("create post %q: %w", p.Title, err)
	}
	log.Info().Int64("post_id", p.ID).Str("slug", p.Slug).Str("status", string(p.Status)).Msg("post created")
	return s.reload(ctx, p)
}

// UpdatePost keeps slug, author, views and created_at from the stored row.
func (s *CurationService) UpdatePost(ctx context.Context, p *domain.BlogPost) error {
	cur, err := s.repo.GetPost(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Slug, p.AuthorID, p.Views, p.CreatedAt = cur.Slug, cur.AuthorID, cur.Views, cur.CreatedAt
	if p.Status == "" {
		p.Status = cur.Status
	}
	if p.PublishedAt.IsZero() {
		p.PublishedAt = cur.PublishedAt
	}
	p.UpdatedAt = s.now().UTC()

	if err := mergeErr(check(s.validate, p), checkPostStatus(p.Status)); err != nil {
		return err
	}
	if err := s.repo.UpdatePost(ctx, p); err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return s.reload(ctx, p)
}

func (s *CurationService) DeletePost(ctx context.Context, id int64) error {
	return s.repo.DeletePost(ctx, id)
}

// PublishPosts flips status only. Visibility still waits for published_at.
func (s *CurationService) PublishPosts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "select at least one post")
	}
	n, err := s.repo.PublishPosts(ctx, dedupe(ids))
	if err != nil {
		return 0, err
	}
	log.Info().Int64("changed", n).Int("requested", len(ids)).Msg("posts published")
	return n, nil
}

func (s *CurationService) reload(ctx context.Context, p *domain.BlogPost) error {
	fresh, err := s.repo.GetPost(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

func checkPostStatus(st domain.PostStatus) *domain.ValidationError {
	if st.Valid() {
		return nil
	}
	return domain.NewValidationError("status", "must be draft or published")
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
