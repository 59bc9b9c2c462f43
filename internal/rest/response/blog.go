package response

import "github.com/inkpress/inkpress/domain"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewCategoryFromDomain(c domain.Category) Category {
	return Category{ID: c.ID, Name: c.Name}
}

// Comment is one node of the rendered comment forest. Replies is always
// present, an empty array on leaves, so clients never branch on null.
type Comment struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	ParentID  int64     `json:"parent_id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	Author    *User     `json:"author,omitempty"`
	Replies   []Comment `json:"replies"`
}

func NewCommentFromDomain(c *domain.Comment) Comment {
	out := Comment{
		ID:        c.ID,
		BlogID:    c.BlogID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(dateTimeFormat),
		Replies:   make([]Comment, 0, len(c.Replies)),
	}
	if c.Author != nil {
		author := NewUserFromDomain(c.Author)
		out.Author = &author
	}
	for _, reply := range c.Replies {
		out.Replies = append(out.Replies, NewCommentFromDomain(reply))
	}
	return out
}

func NewCommentsFromDomain(comments []*domain.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentFromDomain(c))
	}
	return out
}

type Blog struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CoverImage string     `json:"coverImage"`
	Published  bool       `json:"published"`
	Slug       string     `json:"slug"`
	Author     User       `json:"author"`
	Categories []Category `json:"categories"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
}

// FromDomain: Domain -> Response
func NewBlogFromDomain(b *domain.Blog) Blog {
	categories := make([]Category, 0, len(b.Categories))
	for _, c := range b.Categories {
		categories = append(categories, NewCategoryFromDomain(c))
	}
	return Blog{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		CoverImage: b.CoverImage,
		Published:  b.Published,
		Slug:       b.Slug,
		Author:     NewUserFromDomain(&b.Author),
		Categories: categories,
		CreatedAt:  b.CreatedAt.Format(dateTimeFormat),
		UpdatedAt:  b.UpdatedAt.Format(dateTimeFormat),
	}
}

// BlogView is the full read payload of one blog: the blog itself, its
// comment forest and the aggregate counts.
type BlogView struct {
	Blog
	Comments      []Comment `json:"comments"`
	CommentsCount int64     `json:"commentsCount"`
	LikesCount    int64     `json:"likesCount"`
	LikedByViewer bool      `json:"likedByViewer"`
}

func NewBlogViewFromDomain(v *domain.BlogView) BlogView {
	return BlogView{
		Blog:          NewBlogFromDomain(&v.Blog),
		Comments:      NewCommentsFromDomain(v.Comments),
		CommentsCount: v.CommentsCount,
		LikesCount:    v.LikesCount,
		LikedByViewer: v.LikedByViewer,
	}
}

func NewBlogViewsFromDomain(views []domain.BlogView) []BlogView {
	out := make([]BlogView, 0, len(views))
	for i := range views {
		out = append(out, NewBlogViewFromDomain(&views[i]))
	}
	return out
}

// Like reports the state after a toggle or a status probe.
type Like struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

func NewLikeFromDomain(r domain.LikeResult) Like {
	return Like{Liked: r.Liked, LikesCount: r.LikesCount}
}
