package domain

import "context"

// Category is a content tag attached to blogs.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryStats is a category annotated with the number of blogs
// carrying it.
type CategoryStats struct {
	Category
	BlogsCount int64
}

// CategoryRepository defines the contract for category persistence.
type CategoryRepository interface {
	// Fetch returns all categories.
	Fetch(ctx context.Context) ([]Category, error)

	// GetByID returns one category.
	// Returns ErrNotFound if it doesn't exist.
	GetByID(ctx context.Context, id int64) (Category, error)

	// GetByNameFold returns the category with the given name,
	// matched case-insensitively.
	GetByNameFold(ctx context.Context, name string) (Category, error)

	// UpsertByNames creates the categories that don't exist yet and
	// returns the full records for every given name.
	UpsertByNames(ctx context.Context, names []string) ([]Category, error)

	// Store creates a new category.
	Store(ctx context.Context, c *Category) error

	// Update renames an existing category.
	Update(ctx context.Context, c *Category) error

	// DeleteCascade removes a category and its blog links in a single
	// transaction.
	DeleteCascade(ctx context.Context, id int64) error

	// List returns one back-office page of categories with blog counts
	// and the total match count.
	List(ctx context.Context, q PageQuery) ([]CategoryStats, int64, error)

	// Count returns the total number of categories.
	Count(ctx context.Context) (int64, error)
}
