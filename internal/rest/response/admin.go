package response

import "github.com/inkpress/inkpress/domain"

// Paged wraps one back-office page in the {data, meta} envelope.
type Paged struct {
	Data any             `json:"data"`
	Meta domain.PageMeta `json:"meta"`
}

func NewPaged(data any, meta domain.PageMeta) Paged {
	return Paged{Data: data, Meta: meta}
}

// UserStats is a user row of the back-office list.
type UserStats struct {
	User
	BlogsCount    int64 `json:"blogsCount"`
	CommentsCount int64 `json:"commentsCount"`
	LikesCount    int64 `json:"likesCount"`
}

func NewUserStatsFromDomain(s *domain.UserStats) UserStats {
	return UserStats{
		User:          NewUserFromDomain(&s.User),
		BlogsCount:    s.BlogsCount,
		CommentsCount: s.CommentsCount,
		LikesCount:    s.LikesCount,
	}
}

func NewUserStatsListFromDomain(stats []domain.UserStats) []UserStats {
	out := make([]UserStats, 0, len(stats))
	for i := range stats {
		out = append(out, NewUserStatsFromDomain(&stats[i]))
	}
	return out
}

// BlogStats is a blog row of the back-office list.
type BlogStats struct {
	Blog
	CommentsCount int64 `json:"commentsCount"`
	LikesCount    int64 `json:"likesCount"`
}

func NewBlogStatsFromDomain(s *domain.BlogStats) BlogStats {
	return BlogStats{
		Blog:          NewBlogFromDomain(&s.Blog),
		CommentsCount: s.CommentsCount,
		LikesCount:    s.LikesCount,
	}
}

func NewBlogStatsListFromDomain(stats []domain.BlogStats) []BlogStats {
	out := make([]BlogStats, 0, len(stats))
	for i := range stats {
		out = append(out, NewBlogStatsFromDomain(&stats[i]))
	}
	return out
}

// CategoryStats is a category row with its blog count.
type CategoryStats struct {
	Category
	BlogsCount int64 `json:"blogsCount"`
}

func NewCategoryStatsFromDomain(s *domain.CategoryStats) CategoryStats {
	return CategoryStats{
		Category:   NewCategoryFromDomain(s.Category),
		BlogsCount: s.BlogsCount,
	}
}

func NewCategoryStatsListFromDomain(stats []domain.CategoryStats) []CategoryStats {
	out := make([]CategoryStats, 0, len(stats))
	for i := range stats {
		out = append(out, NewCategoryStatsFromDomain(&stats[i]))
	}
	return out
}

// CommentDetail is a comment row annotated with the blog it sits on.
type CommentDetail struct {
	Comment
	BlogTitle string `json:"blogTitle"`
	BlogSlug  string `json:"blogSlug"`
}

func NewCommentDetailFromDomain(d *domain.CommentDetail) CommentDetail {
	return CommentDetail{
		Comment:   NewCommentFromDomain(&d.Comment),
		BlogTitle: d.BlogTitle,
		BlogSlug:  d.BlogSlug,
	}
}

func NewCommentDetailListFromDomain(details []domain.CommentDetail) []CommentDetail {
	out := make([]CommentDetail, 0, len(details))
	for i := range details {
		out = append(out, NewCommentDetailFromDomain(&details[i]))
	}
	return out
}

// Analytics is the dashboard payload.
type Analytics struct {
	Totals         domain.AnalyticsTotals `json:"totals"`
	PopularBlogs   []BlogStats            `json:"popularBlogs"`
	ActiveUsers    []UserStats            `json:"activeUsers"`
	RecentComments []CommentDetail        `json:"recentComments"`
}

func NewAnalyticsFromDomain(a *domain.Analytics) Analytics {
	return Analytics{
		Totals:         a.Totals,
		PopularBlogs:   NewBlogStatsListFromDomain(a.PopularBlogs),
		ActiveUsers:    NewUserStatsListFromDomain(a.ActiveUsers),
		RecentComments: NewCommentDetailListFromDomain(a.RecentComments),
	}
}
