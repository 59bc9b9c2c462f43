package request

import "github.com/inkpress/inkpress/domain"

type Comment struct {
	Content  string `json:"content" binding:"required"`
	ParentID int64  `json:"parent_id"` // 0 表示顶层评论
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		Content:  r.Content,
		ParentID: r.ParentID,
	}
}
