package model

import (
	"time"

	"github.com/inkpress/inkpress/domain"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	BlogID    int64     `gorm:"column:blog_id;not null;index"`
	AuthorID  int64     `gorm:"column:author_id;not null"`
	Content   string    `gorm:"type:text;not null"`
	ParentID  int64     `gorm:"column:parent_id;default:0;index"`
	Author    *User     `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		BlogID:    c.BlogID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	c := domain.Comment{
		ID:        m.ID,
		BlogID:    m.BlogID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
	}
	if m.Author != nil {
		author := m.Author.ToDomain()
		c.Author = &author
	}
	return c
}
