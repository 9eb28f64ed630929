package mysql

import (
	"context"
	"database/sql"
	"time"

	"travel_agency/internal/domain"
)

func scanPost(s scanner) (domain.BlogPost, error) {
	var p domain.BlogPost
	var catID sql.NullInt64
	var catName, catSlug, image sql.NullString
	var status string
	err := s.Scan(
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.AuthorName,
		&catID, &catName, &catSlug,
		&p.Content, &p.Excerpt, &image, &status,
		&p.PublishedAt, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.BlogPost{}, err
	}
	p.Status = domain.PostStatus(status)
	p.FeaturedImage = ptrStr(image)
	if catID.Valid {
		p.CategoryID = &catID.Int64
		p.Category = &domain.Category{ID: catID.Int64, Name: catName.String, Slug: catSlug.String}
	}
	return p, nil
}

func (r *Repo) ListPosts(ctx context.Context, f domain.PostFilter) ([]domain.BlogPost, error) {
	var w where
	if f.VisibleAt != nil {
		w.add("p.status = 'published' AND p.published_at <= ?", utc(*f.VisibleAt))
	}
	if f.Status != "" {
		w.add("p.status = ?", string(f.Status))
	}
	if f.CategorySlug != "" {
		w.add("c.slug = ?", f.CategorySlug)
	}
	if f.TagSlug != "" {
		w.add(`EXISTS (SELECT 1 FROM blog_post_tags bt JOIN tags t ON t.id = bt.tag_id
		         WHERE bt.post_id = p.id AND t.slug = ?)`, f.TagSlug)
	}
	if f.Q != "" {
		w.add("(p.title LIKE ? OR p.excerpt LIKE ?)", like(f.Q), like(f.Q))
	}
	lim, largs := page(f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, postSelect+w.String()+postOrder+lim, append(w.args, largs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BlogPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, r.attachTags(ctx, out)
}

func (r *Repo) GetPost(ctx context.Context, id int64) (domain.BlogPost, error) {
	return r.getPost(ctx, postSelect+" WHERE p.id = ?", id)
}

// GetVisiblePostBySlug returns the newest visible post when the slug is
// reused on different days.
func (r *Repo) GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (domain.BlogPost, error) {
	return r.getPost(ctx,
		postSelect+" WHERE p.slug = ? AND p.status = 'published' AND p.published_at <= ?"+postOrder+" LIMIT 1",
		slug, utc(now))
}

func (r *Repo) getPost(ctx context.Context, q string, args ...any) (domain.BlogPost, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return domain.BlogPost{}, mapErr(err)
	}
	posts := []domain.BlogPost{p}
	if err := r.attachTags(ctx, posts); err != nil {
		return domain.BlogPost{}, err
	}
	return posts[0], nil
}

// attachTags loads tags for all posts in one query.
func (r *Repo) attachTags(ctx context.Context, posts []domain.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	idx := make(map[int64]int, len(posts))
	ids := make([]int64, 0, len(posts))
	for i := range posts {
		idx[posts[i].ID] = i
		ids = append(ids, posts[i].ID)
		posts[i].Tags = []domain.Tag{}
		posts[i].TagIDs = []int64{}
	}
	in, args := inClause(ids)
	rows, err := r.db.QueryContext(ctx, postTagsPrefix+in+" ORDER BY t.name, t.id", args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var t domain.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		if i, ok := idx[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, t)
			posts[i].TagIDs = append(posts[i].TagIDs, t.ID)
		}
	}
	return rows.Err()
}

func (r *Repo) CreatePost(ctx context.Context, p *domain.BlogPost) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		id, err := insertID(tx.ExecContext(ctx, insertPostSQL,
			p.Title, p.Slug, p.AuthorID, valInt64(p.CategoryID), p.Content, p.Excerpt,
			valStr(p.FeaturedImage), string(p.Status),
			utc(p.PublishedAt), utc(p.CreatedAt), utc(p.UpdatedAt),
		))
		if err != nil {
			return err
		}
		p.ID = id
		return writePostTags(ctx, tx, p.ID, p.TagIDs)
	})
}

func (r *Repo) UpdatePost(ctx context.Context, p *domain.BlogPost) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "blog_posts", p.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, updatePostSQL,
			p.Title, p.AuthorID, valInt64(p.CategoryID), p.Content, p.Excerpt,
			valStr(p.FeaturedImage), string(p.Status), utc(p.PublishedAt), utc(p.UpdatedAt),
			p.ID,
		); err != nil {
			return err
		}
		if p.TagIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM blog_post_tags WHERE post_id = ?", p.ID); err != nil {
			return err
		}
		return writePostTags(ctx, tx, p.ID, p.TagIDs)
	})
}

func writePostTags(ctx context.Context, tx *sql.Tx, postID int64, ids []int64) error {
	for _, tid := range ids {
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO blog_post_tags (post_id, tag_id) VALUES (?, ?)", postID, tid); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) DeletePost(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "blog_posts", id)
}

// PublishPosts flips status only; published_at is left as scheduled.
func (r *Repo) PublishPosts(ctx context.Context, ids []int64) (int64, error) {
	return r.execIDs(ctx, publishPostsPrefix, ids)
}

func (r *Repo) IncrementPostViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, incrementViewsSQL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

/********** categories & tags **********/

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM categories ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CreateCategory(ctx context.Context, c *domain.Category) error {
	id, err := insertID(r.db.ExecContext(ctx, "INSERT INTO categories (name, slug) VALUES (?, ?)", c.Name, c.Slug))
	if err != nil {
		return mapErr(err)
	}
	c.ID = id
	return nil
}

func (r *Repo) UpdateCategory(ctx context.Context, c *domain.Category) error {
	return r.execUpdate(ctx, "categories", c.ID, "UPDATE categories SET name = ? WHERE id = ?", c.Name, c.ID)
}

// DeleteCategory leaves posts in place; the FK sets their category_id to NULL.
func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "categories", id)
}

func (r *Repo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM tags ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) CreateTag(ctx context.Context, t *domain.Tag) error {
	id, err := insertID(r.db.ExecContext(ctx, "INSERT INTO tags (name, slug) VALUES (?, ?)", t.Name, t.Slug))
	if err != nil {
		return mapErr(err)
	}
	t.ID = id
	return nil
}

func (r *Repo) UpdateTag(ctx context.Context, t *domain.Tag) error {
	return r.execUpdate(ctx, "tags", t.ID, "UPDATE tags SET name = ? WHERE id = ?", t.Name, t.ID)
}

func (r *Repo) DeleteTag(ctx context.Context, id int64) error {
	return r.execDelete(ctx, "tags", id)
}
