package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/repository/mysql/model"
)

type categoryRepository struct {
	DB *gorm.DB
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *categoryRepository {
	return &categoryRepository{
		DB: db,
	}
}

func (m *categoryRepository) Fetch(ctx context.Context) ([]domain.Category, error) {
	var categories []model.Category
	err := m.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Category, len(categories))
	for i := range categories {
		res[i] = categories[i].ToDomain()
	}
	return res, nil
}

func (m *categoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var category model.Category
	err := m.DB.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	return category.ToDomain(), nil
}

// GetByNameFold matches the name with the default case-insensitive
// MySQL collation, which is what the conflict checks need.
func (m *categoryRepository) GetByNameFold(ctx context.Context, name string) (domain.Category, error) {
	var category model.Category
	err := m.DB.WithContext(ctx).First(&category, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, err
	}
	return category.ToDomain(), nil
}

func (m *categoryRepository) UpsertByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows := make([]model.Category, len(names))
	for i, name := range names {
		rows[i] = model.Category{Name: name}
	}
	err := m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return nil, err
	}

	var categories []model.Category
	err = m.DB.WithContext(ctx).Where("name IN ?", names).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Category, len(categories))
	for i := range categories {
		res[i] = categories[i].ToDomain()
	}
	return res, nil
}

func (m *categoryRepository) Store(ctx context.Context, c *domain.Category) error {
	categoryModel := model.NewCategoryFromDomain(*c)
	result := m.DB.WithContext(ctx).Create(&categoryModel)
	if result.Error != nil {
		return result.Error
	}
	c.ID = categoryModel.ID
	return nil
}

func (m *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	result := m.DB.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *categoryRepository) DeleteCascade(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM blog_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

type categoryCountRow struct {
	CategoryID int64
	N          int64
}

func (m *categoryRepository) List(ctx context.Context, q domain.PageQuery) ([]domain.CategoryStats, int64, error) {
	base := m.DB.WithContext(ctx).Model(&model.Category{})
	if q.Search != "" {
		base = base.Where("name LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.Category
	err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Offset(int(q.Offset())).
		Limit(int(q.Limit)).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	counts := make(map[int64]int64, len(ids))
	if len(ids) > 0 {
		var rows []categoryCountRow
		err = m.DB.WithContext(ctx).
			Table("blog_categories").
			Select("category_id, COUNT(*) AS n").
			Where("category_id IN ?", ids).
			Group("category_id").
			Scan(&rows).Error
		if err != nil {
			return nil, 0, err
		}
		for _, r := range rows {
			counts[r.CategoryID] = r.N
		}
	}

	res := make([]domain.CategoryStats, len(categories))
	for i := range categories {
		res[i] = domain.CategoryStats{
			Category:   categories[i].ToDomain(),
			BlogsCount: counts[categories[i].ID],
		}
	}
	return res, total, nil
}

func (m *categoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.DB.WithContext(ctx).Model(&model.Category{}).Count(&n).Error
	return n, err
}
