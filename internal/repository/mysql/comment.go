package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Create(commentModel).Error
	if err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentID int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Comment, 0, len(comments))
	for _, comment := range comments {
		domainComment := comment.ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

// DeleteCascade removes a comment and its replies together, so a
// deleted thread never leaves orphans behind.
func (c *commentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (c *commentRepository) List(ctx context.Context, q domain.PageQuery) ([]domain.CommentDetail, int64, error) {
	base := c.DB.WithContext(ctx).Model(&model.Comment{})
	if q.Search != "" {
		base = base.Where("content LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := base.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Offset(int(q.Offset())).
		Limit(int(q.Limit)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	res, err := c.fillBlogSummaries(ctx, comments)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (c *commentRepository) GetDetail(ctx context.Context, id int64) (domain.CommentDetail, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentDetail{}, domain.ErrNotFound
		}
		return domain.CommentDetail{}, err
	}

	res, err := c.fillBlogSummaries(ctx, []model.Comment{comment})
	if err != nil {
		return domain.CommentDetail{}, err
	}
	return res[0], nil
}

func (c *commentRepository) FetchRecent(ctx context.Context, limit int64) ([]domain.CommentDetail, error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return c.fillBlogSummaries(ctx, comments)
}

func (c *commentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := c.DB.WithContext(ctx).Model(&model.Comment{}).Count(&n).Error
	return n, err
}

type blogSummary struct {
	ID    int64
	Title string
	Slug  string
}

// fillBlogSummaries batch-loads the blog title and slug each comment
// belongs to.
func (c *commentRepository) fillBlogSummaries(ctx context.Context, comments []model.Comment) ([]domain.CommentDetail, error) {
	ids := make([]int64, 0, len(comments))
	seen := make(map[int64]bool, len(comments))
	for _, comment := range comments {
		if !seen[comment.BlogID] {
			ids = append(ids, comment.BlogID)
			seen[comment.BlogID] = true
		}
	}

	summaries := make(map[int64]blogSummary, len(ids))
	if len(ids) > 0 {
		var rows []blogSummary
		err := c.DB.WithContext(ctx).
			Model(&model.Blog{}).
			Select("id, title, slug").
			Where("id IN ?", ids).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			summaries[r.ID] = r
		}
	}

	res := make([]domain.CommentDetail, len(comments))
	for i, comment := range comments {
		s := summaries[comment.BlogID]
		res[i] = domain.CommentDetail{
			Comment:   comment.ToDomain(),
			BlogTitle: s.Title,
			BlogSlug:  s.Slug,
		}
	}
	return res, nil
}
