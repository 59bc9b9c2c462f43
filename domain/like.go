package domain

import (
	"context"
	"time"
)

// Like is a membership record: user has favorited blog. Its existence
// is a two-state machine per (user, blog) pair, flipped by ToggleLike.
type Like struct {
	ID        int64
	UserID    int64
	BlogID    int64
	CreatedAt time.Time
}

// LikeResult is what a toggle or status read reports back to the viewer.
type LikeResult struct {
	// Liked is the state after the operation: true when the toggle
	// added the like (or the probe found one).
	Liked bool
	// LikesCount is a fresh count for the blog, read after the toggle
	// completed. It may already include concurrent toggles from other
	// users; only the per-user uniqueness is exact.
	LikesCount int64
}

// LikeRepository defines the contract for like persistence.
type LikeRepository interface {
	// Toggle atomically flips the like state for (userID, blogID):
	// the existence check and the insert/delete run in one
	// transaction so concurrent toggles from the same user cannot
	// both insert. Returns true when a like was added, false when one
	// was removed. A duplicate-row conflict surfaces as ErrConflict.
	Toggle(ctx context.Context, userID, blogID int64) (bool, error)

	// IsLiked reports whether a like row exists for (userID, blogID).
	IsLiked(ctx context.Context, userID, blogID int64) (bool, error)

	// CountByBlog returns the number of likes for one blog.
	CountByBlog(ctx context.Context, blogID int64) (int64, error)

	// Count returns the total number of like rows.
	Count(ctx context.Context) (int64, error)
}
