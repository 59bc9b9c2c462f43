package mysql

import (
	"context"
	"errors"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/repository/mysql/model"
)

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *driver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// Toggle runs the check-then-act of a like flip as one transaction.
// The existing row is locked so a concurrent toggle from the same user
// serializes behind this one instead of observing the same state; the
// unique (user_id, blog_id) index catches whatever slips through and
// surfaces as ErrConflict for the caller to retry.
func (m *likeRepository) Toggle(ctx context.Context, userID, blogID int64) (bool, error) {
	added := false
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like model.Like
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND blog_id = ?", userID, blogID).
			First(&like).Error

		if err == nil {
			added = false
			return tx.Delete(&model.Like{}, like.ID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		added = true
		create := model.Like{UserID: userID, BlogID: blogID}
		if err := tx.Create(&create).Error; err != nil {
			if isDuplicateKey(err) {
				return domain.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (m *likeRepository) IsLiked(ctx context.Context, userID, blogID int64) (bool, error) {
	var n int64
	err := m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&n).Error
	return n > 0, err
}

func (m *likeRepository) CountByBlog(ctx context.Context, blogID int64) (int64, error) {
	var n int64
	err := m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("blog_id = ?", blogID).
		Count(&n).Error
	return n, err
}

func (m *likeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.DB.WithContext(ctx).Model(&model.Like{}).Count(&n).Error
	return n, err
}
