package model

import "github.com/inkpress/inkpress/domain"

type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "category"
}

func (m *Category) ToDomain() domain.Category {
	return domain.Category{
		ID:   m.ID,
		Name: m.Name,
	}
}

func NewCategoryFromDomain(c domain.Category) Category {
	return Category{
		ID:   c.ID,
		Name: c.Name,
	}
}
