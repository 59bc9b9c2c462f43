package request

import "github.com/inkpress/inkpress/domain"

type Blog struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	CoverImage string   `json:"coverImage"`
	Published  bool     `json:"published"`
	Categories []string `json:"categories"`
}

// ToDomain: Request -> Domain
func (r *Blog) ToDomain() domain.Blog {
	return domain.Blog{
		Title:      r.Title,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Published:  r.Published,
	}
}

// BlogUpdate carries the optional fields of an update. Absent fields
// leave the stored value untouched; published needs the pointer so an
// explicit false still counts as a change.
type BlogUpdate struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CoverImage string `json:"coverImage"`
	Published  *bool  `json:"published"`
}

func (r *BlogUpdate) ToPatch() domain.BlogPatch {
	return domain.BlogPatch{
		Title:      r.Title,
		Content:    r.Content,
		CoverImage: r.CoverImage,
		Published:  r.Published,
	}
}
