package model

import (
	"time"

	"github.com/inkpress/inkpress/domain"
)

// Like rows are unique per (user_id, blog_id); the index is what backs
// the toggle's one-like-per-user invariant at the storage level.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_blog"`
	BlogID    int64     `gorm:"column:blog_id;not null;uniqueIndex:idx_user_blog;index"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (Like) TableName() string {
	return "likes"
}

func (m *Like) ToDomain() domain.Like {
	return domain.Like{
		ID:        m.ID,
		UserID:    m.UserID,
		BlogID:    m.BlogID,
		CreatedAt: m.CreatedAt,
	}
}

func NewLikeFromDomain(l domain.Like) Like {
	return Like{
		ID:        l.ID,
		UserID:    l.UserID,
		BlogID:    l.BlogID,
		CreatedAt: l.CreatedAt,
	}
}
