package domain

import "context"

// AnalyticsTotals are the entity counts shown on the back-office
// dashboard.
type AnalyticsTotals struct {
	Users      int64 `json:"users"`
	Blogs      int64 `json:"blogs"`
	Comments   int64 `json:"comments"`
	Likes      int64 `json:"likes"`
	Categories int64 `json:"categories"`
}

// Analytics is the full dashboard payload.
type Analytics struct {
	Totals         AnalyticsTotals
	PopularBlogs   []BlogStats
	ActiveUsers    []UserStats
	RecentComments []CommentDetail
}

// AdminUserPatch carries the optional fields of a back-office user
// update.
type AdminUserPatch struct {
	Name  string
	Email string
	Role  Role
}

// AdminUsecase is the business logic contract for the back-office.
// Every operation assumes the caller was already gated to ADMIN.
type AdminUsecase interface {
	ListUsers(ctx context.Context, q PageQuery) ([]UserStats, PageMeta, error)
	GetUser(ctx context.Context, id int64) (UserStats, error)
	UpdateUser(ctx context.Context, id int64, patch AdminUserPatch) (User, error)
	// DeleteUser removes the account and everything it owns. Deleting
	// the acting admin itself is rejected with ErrBadParamInput.
	DeleteUser(ctx context.Context, id, actorID int64) error

	ListBlogs(ctx context.Context, q AdminBlogQuery) ([]BlogStats, PageMeta, error)
	GetBlog(ctx context.Context, id int64) (BlogView, error)
	ToggleBlogPublish(ctx context.Context, id int64) (Blog, error)
	DeleteBlog(ctx context.Context, id int64) error

	ListCategories(ctx context.Context, q PageQuery) ([]CategoryStats, PageMeta, error)
	GetCategory(ctx context.Context, id int64) (CategoryStats, error)
	// CreateCategory rejects names already taken, compared
	// case-insensitively, with ErrConflict.
	CreateCategory(ctx context.Context, name string) (Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListComments(ctx context.Context, q PageQuery) ([]CommentDetail, PageMeta, error)
	GetComment(ctx context.Context, id int64) (CommentDetail, error)
	DeleteComment(ctx context.Context, id int64) error

	Analytics(ctx context.Context) (Analytics, error)
}
