package model

import (
	"time"

	"github.com/inkpress/inkpress/domain"
)

type Blog struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Content    string     `gorm:"type:longtext;not null"`
	CoverImage string     `gorm:"column:cover_image;type:varchar(512)"`
	Published  bool       `gorm:"default:false"`
	Slug       string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	AuthorID   int64      `gorm:"column:author_id;not null;index"`
	Author     *User      `gorm:"foreignKey:AuthorID"`
	Categories []Category `gorm:"many2many:blog_categories"`
	Comments   []Comment  `gorm:"foreignKey:BlogID"`
	UpdatedAt  time.Time  `gorm:"type:datetime"`
	CreatedAt  time.Time  `gorm:"type:datetime"`
}

func (Blog) TableName() string {
	return "blog"
}

func (m *Blog) ToDomain() domain.Blog {
	b := domain.Blog{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		CoverImage: m.CoverImage,
		Published:  m.Published,
		Slug:       m.Slug,
		Author: domain.User{
			ID: m.AuthorID,
		},
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
	if m.Author != nil {
		b.Author = m.Author.ToDomain()
	}
	for _, c := range m.Categories {
		b.Categories = append(b.Categories, c.ToDomain())
	}
	return b
}

func NewBlogFromDomain(b *domain.Blog) *Blog {
	blog := &Blog{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		CoverImage: b.CoverImage,
		Published:  b.Published,
		Slug:       b.Slug,
		AuthorID:   b.Author.ID,
		UpdatedAt:  b.UpdatedAt,
		CreatedAt:  b.CreatedAt,
	}
	for _, c := range b.Categories {
		blog.Categories = append(blog.Categories, NewCategoryFromDomain(c))
	}
	return blog
}
