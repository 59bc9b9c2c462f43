package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/repository/mysql/model"
)

type userRepository struct {
	DB *gorm.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository will create an implementation of domain.UserRepository
func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{
		DB: db,
	}
}

func (m *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	return user.ToDomain(), nil
}

func (m *userRepository) GetStats(ctx context.Context, id int64) (domain.UserStats, error) {
	var user model.User
	if err := m.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserStats{}, domain.ErrNotFound
		}
		return domain.UserStats{}, err
	}

	stats, err := m.fillContentCounts(ctx, []model.User{user})
	if err != nil {
		return domain.UserStats{}, err
	}
	return stats[0], nil
}

func (m *userRepository) Insert(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	result := m.DB.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return result.Error
	}

	u.ID = userModel.ID
	u.CreatedAt = userModel.CreatedAt

	return nil
}

func (m *userRepository) Update(ctx context.Context, u *domain.User) error {
	userModel := model.NewUserFromDomain(u)

	err := m.DB.WithContext(ctx).Model(&userModel).Updates(&userModel).Error
	return err
}

func (m *userRepository) List(ctx context.Context, q domain.PageQuery) ([]domain.UserStats, int64, error) {
	base := m.DB.WithContext(ctx).Model(&model.User{})
	if q.Search != "" {
		s := "%" + q.Search + "%"
		base = base.Where("name LIKE ? OR email LIKE ?", s, s)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(int(q.Offset())).
		Limit(int(q.Limit)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	res, err := m.fillContentCounts(ctx, users)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (m *userRepository) DeleteCascade(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}

		var blogIDs []int64
		err := tx.Model(&model.Blog{}).
			Select("id").
			Where("author_id = ?", id).
			Find(&blogIDs).Error
		if err != nil {
			return err
		}
		if len(blogIDs) > 0 {
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM blog_categories WHERE blog_id IN ?", blogIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", blogIDs).Delete(&model.Blog{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (m *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.DB.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func (m *userRepository) MostActive(ctx context.Context, limit int64) ([]domain.UserStats, error) {
	var ids []int64
	err := m.DB.WithContext(ctx).
		Model(&model.User{}).
		Select("user.id").
		Joins("LEFT JOIN blog b ON b.author_id = user.id").
		Joins("LEFT JOIN comment c ON c.author_id = user.id").
		Group("user.id").
		Order("COUNT(DISTINCT b.id) DESC, COUNT(DISTINCT c.id) DESC").
		Limit(int(limit)).
		Find(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var users []model.User
	if err := m.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	stats, err := m.fillContentCounts(ctx, users)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.UserStats, len(stats))
	for _, s := range stats {
		byID[s.ID] = s
	}
	res := make([]domain.UserStats, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			res = append(res, s)
		}
	}
	return res, nil
}

type userCountRow struct {
	AuthorID int64
	N        int64
}

// fillContentCounts batch-loads the blog, comment and like counts of
// each user.
func (m *userRepository) fillContentCounts(ctx context.Context, users []model.User) ([]domain.UserStats, error) {
	ids := make([]int64, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}

	blogs := make(map[int64]int64, len(ids))
	comments := make(map[int64]int64, len(ids))
	likes := make(map[int64]int64, len(ids))

	if len(ids) > 0 {
		var rows []userCountRow
		err := m.DB.WithContext(ctx).
			Model(&model.Blog{}).
			Select("author_id, COUNT(*) AS n").
			Where("author_id IN ?", ids).
			Group("author_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			blogs[r.AuthorID] = r.N
		}

		rows = rows[:0]
		err = m.DB.WithContext(ctx).
			Model(&model.Comment{}).
			Select("author_id, COUNT(*) AS n").
			Where("author_id IN ?", ids).
			Group("author_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			comments[r.AuthorID] = r.N
		}

		rows = rows[:0]
		err = m.DB.WithContext(ctx).
			Model(&model.Like{}).
			Select("user_id AS author_id, COUNT(*) AS n").
			Where("user_id IN ?", ids).
			Group("user_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			likes[r.AuthorID] = r.N
		}
	}

	res := make([]domain.UserStats, len(users))
	for i := range users {
		res[i] = domain.UserStats{
			User:          users[i].ToDomain(),
			BlogsCount:    blogs[users[i].ID],
			CommentsCount: comments[users[i].ID],
			LikesCount:    likes[users[i].ID],
		}
	}
	return res, nil
}
