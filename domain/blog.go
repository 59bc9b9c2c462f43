package domain

import (
	"context"
	"time"
)

// Blog is representing the Blog data struct
type Blog struct {
	ID         int64      // Unique identifier for the blog
	Title      string     // Blog title
	Content    string     // Blog body content
	CoverImage string     // Cover image URL
	Published  bool       // Draft or published
	Slug       string     // Human-readable unique identifier
	Author     User       // Author information
	Categories []Category // Attached categories
	UpdatedAt  time.Time  // Last update timestamp
	CreatedAt  time.Time  // Creation timestamp
}

// BlogView is a blog annotated with everything one read request needs:
// the flat comment list as delivered by the store (oldest first), the
// aggregate counts and the per-viewer like flag. The blog usecase turns
// the flat comments into the two-level forest before the view leaves
// the service layer.
type BlogView struct {
	Blog
	Comments      []*Comment // flat from the repository, forest after assembly
	CommentsCount int64      // top-level comments only
	LikesCount    int64
	LikedByViewer bool // always false for an anonymous viewer
}

// BlogStats is a blog summary annotated with counts, used by the
// back-office list and the analytics screen.
type BlogStats struct {
	Blog
	CommentsCount int64
	LikesCount    int64
}

// AdminBlogQuery extends the page query with the back-office filters.
type AdminBlogQuery struct {
	PageQuery
	// Status filters on the published flag: "published", "draft" or
	// empty for both.
	Status string
	// CategoryID filters blogs carrying the category, 0 for no filter.
	CategoryID int64
}

// BlogRepository defines the contract for blog data persistence.
type BlogRepository interface {
	// Fetch retrieves all blogs annotated with their relations,
	// newest first.
	Fetch(ctx context.Context) ([]BlogView, error)

	// GetBySlug retrieves a single annotated blog. The like probe for
	// viewerID is only issued when viewerID is non-zero.
	// Returns ErrNotFound if the blog doesn't exist.
	GetBySlug(ctx context.Context, slug string, viewerID int64) (BlogView, error)

	// GetByID retrieves a single annotated blog by its internal ID.
	GetByID(ctx context.Context, id int64) (BlogView, error)

	// ResolveSlug maps a slug to the internal blog ID.
	// Returns ErrNotFound if no blog matches.
	ResolveSlug(ctx context.Context, slug string) (int64, error)

	// SlugExists reports whether any blog already owns the slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Store creates a new blog together with its category links.
	Store(ctx context.Context, b *Blog) error

	// Update modifies an existing blog.
	Update(ctx context.Context, b *Blog) error

	// DeleteCascade removes a blog and its comments, likes and category
	// links in a single transaction.
	DeleteCascade(ctx context.Context, id int64) error

	// Search matches the query against title, content and category
	// names, case-insensitively.
	Search(ctx context.Context, query string) ([]BlogView, error)

	// FetchLatest returns up to limit newest published blogs.
	FetchLatest(ctx context.Context, limit int64) ([]BlogView, error)

	// FetchTrending returns up to limit published blogs ordered by like
	// count, then comment count.
	FetchTrending(ctx context.Context, limit int64) ([]BlogView, error)

	// FetchRelated returns published blogs sharing at least one
	// category with the blog behind slug, excluding that blog itself.
	FetchRelated(ctx context.Context, slug string) ([]BlogView, error)

	// FetchByAuthor returns all blogs written by the author.
	FetchByAuthor(ctx context.Context, authorID int64) ([]BlogView, error)

	// FetchByCategory returns blogs tagged with the named category.
	FetchByCategory(ctx context.Context, name string) ([]BlogView, error)

	// ListAdmin returns one back-office page of blog summaries and the
	// total match count.
	ListAdmin(ctx context.Context, q AdminBlogQuery) ([]BlogStats, int64, error)

	// TogglePublish flips the published flag and returns the new state.
	TogglePublish(ctx context.Context, id int64) (Blog, error)

	// Count returns the total number of blogs.
	Count(ctx context.Context) (int64, error)

	// TopByLikes returns up to limit blogs ordered by like count.
	TopByLikes(ctx context.Context, limit int64) ([]BlogStats, error)
}

// BlogCache holds assembled read-side payloads. Cached views are
// viewer-neutral: LikedByViewer is always stored false and the live
// per-viewer probe happens on top of a hit.
type BlogCache interface {
	// GetHome returns the cached home list.
	// Returns ErrCacheMiss when absent.
	GetHome(ctx context.Context) ([]BlogView, error)
	SetHome(ctx context.Context, views []BlogView) error
	DeleteHome(ctx context.Context) error

	// GetBlog returns the cached single-blog view for a slug.
	// Returns ErrCacheMiss when absent.
	GetBlog(ctx context.Context, slug string) (BlogView, error)
	SetBlog(ctx context.Context, view BlogView) error
	DeleteBlog(ctx context.Context, slug string) error
}

// BlogPatch carries the optional fields of a blog update request.
type BlogPatch struct {
	Title      string
	Content    string
	CoverImage string
	Published  *bool
}

// BlogUsecase is the business logic contract for the public blog surface.
type BlogUsecase interface {
	Fetch(ctx context.Context) ([]BlogView, error)
	GetBySlug(ctx context.Context, slug string, viewerID int64) (BlogView, error)
	Search(ctx context.Context, query string) ([]BlogView, error)
	Latest(ctx context.Context) ([]BlogView, error)
	Trending(ctx context.Context) ([]BlogView, error)
	Related(ctx context.Context, slug string) ([]BlogView, error)
	ByAuthor(ctx context.Context, authorID int64) ([]BlogView, error)
	ByCategory(ctx context.Context, name string) ([]BlogView, error)

	// Store creates a blog for authorID, generating a unique slug and
	// upserting the named categories.
	Store(ctx context.Context, b *Blog, categories []string) error

	// Update applies patch to the blog behind slug. Only the author may
	// update; the slug is regenerated when the title changes.
	Update(ctx context.Context, slug string, actorID int64, patch BlogPatch) (Blog, error)

	// Delete removes the blog and everything attached to it. Allowed
	// for the author and for admins.
	Delete(ctx context.Context, slug string, actorID int64) error

	// ToggleLike flips the like state of (userID, blog behind slug).
	ToggleLike(ctx context.Context, userID int64, slug string) (LikeResult, error)

	// LikeStatus reports the current like state for userID.
	LikeStatus(ctx context.Context, userID int64, slug string) (LikeResult, error)
}
