package model

import (
	"time"

	"github.com/inkpress/inkpress/domain"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `gorm:"type:varchar(100)"`
	Image     string    `gorm:"type:varchar(512)"`
	Bio       string    `gorm:"type:text"`
	Role      string    `gorm:"type:varchar(10);default:USER"`
	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Image:     m.Image,
		Bio:       m.Bio,
		Role:      domain.Role(m.Role),
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Image:     u.Image,
		Bio:       u.Bio,
		Role:      string(u.Role),
		UpdatedAt: u.UpdatedAt,
		CreatedAt: u.CreatedAt,
	}
}
