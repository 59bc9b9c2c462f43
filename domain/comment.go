package domain

import (
	"context"
	"time"
)

// Comment domain model. A comment with ParentID == 0 is top-level; any
// other value points at the top-level comment it replies to.
type Comment struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	ParentID  int64     `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`

	// Author 评论作者信息
	Author *User `json:"author,omitempty"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies,omitempty"`
}

// BuildCommentTree restructures a flat, creation-ordered comment list
// into a two-level forest: top-level comments carrying their replies.
//
// The first pass indexes every comment by ID, initializes its Replies
// to an empty list and collects top-level comments in first-seen order.
// The second pass appends each reply (the original value, no copy) to
// whichever node owns its ParentID in the index. A reply whose ParentID
// resolves to nothing in the input set is dropped from the result
// entirely; that is deliberate, the store is expected to reject such
// writes up front.
func BuildCommentTree(comments []*Comment) []*Comment {
	index := make(map[int64]*Comment, len(comments))
	roots := make([]*Comment, 0, len(comments))

	for _, c := range comments {
		c.Replies = []*Comment{}
		index[c.ID] = c
		if c.ParentID == 0 {
			roots = append(roots, c)
		}
	}

	for _, c := range comments {
		if c.ParentID == 0 {
			continue
		}
		if parent, ok := index[c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	return roots
}

// CommentDetail is a comment annotated with its blog summary, used by
// the back-office.
type CommentDetail struct {
	Comment
	BlogTitle string
	BlogSlug  string
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// Create stores a comment on the blog behind slug. A non-zero
	// ParentID must reference a top-level comment of the same blog.
	Create(ctx context.Context, slug string, c *Comment) error

	// Delete removes a comment and its replies. Allowed for the
	// comment author and for admins.
	Delete(ctx context.Context, commentID, actorID int64) error

	// FetchReplies returns the flat, oldest-first replies of a comment.
	FetchReplies(ctx context.Context, commentID int64) ([]*Comment, error)
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// FetchReplies 获取指定评论的所有子回复，按创建时间升序
	FetchReplies(ctx context.Context, parentID int64) ([]*Comment, error)

	// DeleteCascade removes the comment and its replies in a single
	// transaction.
	DeleteCascade(ctx context.Context, id int64) error

	// List returns one back-office page of comments matched on content,
	// newest first, with the total match count.
	List(ctx context.Context, q PageQuery) ([]CommentDetail, int64, error)

	// GetDetail returns one comment with author and blog summary.
	GetDetail(ctx context.Context, id int64) (CommentDetail, error)

	// FetchRecent returns up to limit newest comments with author and
	// blog summary.
	FetchRecent(ctx context.Context, limit int64) ([]CommentDetail, error)

	// Count returns the total number of comments.
	Count(ctx context.Context) (int64, error)
}
