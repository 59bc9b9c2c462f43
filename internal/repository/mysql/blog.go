package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/domain"
	"github.com/inkpress/inkpress/internal/repository/mysql/model"
)

type blogRepository struct {
	DB *gorm.DB
}

var _ domain.BlogRepository = (*blogRepository)(nil)

// NewBlogRepository 创建博客数据库操作层
func NewBlogRepository(db *gorm.DB) *blogRepository {
	return &blogRepository{db}
}

// withRelations preloads everything a view assembly needs: author,
// categories and the flat comment list in creation order.
func (m *blogRepository) withRelations(ctx context.Context) *gorm.DB {
	return m.DB.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author")
}

type countRow struct {
	BlogID int64
	N      int64
}

// countsFor batch-loads like and top-level-comment counts for a set of
// blog IDs.
func (m *blogRepository) countsFor(ctx context.Context, ids []int64) (likes, comments map[int64]int64, err error) {
	likes = make(map[int64]int64, len(ids))
	comments = make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return likes, comments, nil
	}

	var rows []countRow
	err = m.DB.WithContext(ctx).
		Model(&model.Like{}).
		Select("blog_id, COUNT(*) AS n").
		Where("blog_id IN ?", ids).
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		likes[r.BlogID] = r.N
	}

	rows = rows[:0]
	err = m.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Select("blog_id, COUNT(*) AS n").
		Where("blog_id IN ? AND parent_id = 0", ids).
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		comments[r.BlogID] = r.N
	}

	return likes, comments, nil
}

// annotate turns loaded rows into BlogViews with their aggregate counts.
func (m *blogRepository) annotate(ctx context.Context, blogs []model.Blog) ([]domain.BlogView, error) {
	ids := make([]int64, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
	}
	likes, comments, err := m.countsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.BlogView, len(blogs))
	for i := range blogs {
		view := domain.BlogView{
			Blog:          blogs[i].ToDomain(),
			CommentsCount: comments[blogs[i].ID],
			LikesCount:    likes[blogs[i].ID],
		}
		for j := range blogs[i].Comments {
			c := blogs[i].Comments[j].ToDomain()
			view.Comments = append(view.Comments, &c)
		}
		res[i] = view
	}
	return res, nil
}

func (m *blogRepository) Fetch(ctx context.Context) ([]domain.BlogView, error) {
	var blogs []model.Blog
	err := m.withRelations(ctx).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) GetBySlug(ctx context.Context, slug string, viewerID int64) (domain.BlogView, error) {
	var blog model.Blog
	err := m.withRelations(ctx).First(&blog, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BlogView{}, domain.ErrNotFound
		}
		return domain.BlogView{}, err
	}

	views, err := m.annotate(ctx, []model.Blog{blog})
	if err != nil {
		return domain.BlogView{}, err
	}
	view := views[0]

	// The like probe is only issued for a known viewer; anonymous
	// viewers never see a liked state.
	if viewerID != 0 {
		var n int64
		err = m.DB.WithContext(ctx).
			Model(&model.Like{}).
			Where("user_id = ? AND blog_id = ?", viewerID, blog.ID).
			Count(&n).Error
		if err != nil {
			return domain.BlogView{}, err
		}
		view.LikedByViewer = n > 0
	}

	return view, nil
}

func (m *blogRepository) GetByID(ctx context.Context, id int64) (domain.BlogView, error) {
	var blog model.Blog
	err := m.withRelations(ctx).First(&blog, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BlogView{}, domain.ErrNotFound
		}
		return domain.BlogView{}, err
	}
	views, err := m.annotate(ctx, []model.Blog{blog})
	if err != nil {
		return domain.BlogView{}, err
	}
	return views[0], nil
}

func (m *blogRepository) ResolveSlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Select("id").
		Where("slug = ?", slug).
		Take(&id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (m *blogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

func (m *blogRepository) Store(ctx context.Context, b *domain.Blog) error {
	blogModel := model.NewBlogFromDomain(b)
	result := m.DB.WithContext(ctx).Create(blogModel)
	if result.Error != nil {
		return result.Error
	}
	b.ID = blogModel.ID
	b.CreatedAt = blogModel.CreatedAt
	b.UpdatedAt = blogModel.UpdatedAt
	return nil
}

func (m *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	blogModel := model.NewBlogFromDomain(b)
	result := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Where("id = ?", blogModel.ID).
		Select("title", "content", "cover_image", "published", "slug", "updated_at").
		Updates(blogModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *blogRepository) DeleteCascade(ctx context.Context, id int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_categories WHERE blog_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Blog{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (m *blogRepository) Search(ctx context.Context, query string) ([]domain.BlogView, error) {
	q := "%" + query + "%"
	tagged := m.DB.Table("blog_categories bc").
		Select("bc.blog_id").
		Joins("JOIN category c ON c.id = bc.category_id").
		Where("c.name LIKE ?", q)

	var blogs []model.Blog
	err := m.withRelations(ctx).
		Where("title LIKE ? OR content LIKE ? OR id IN (?)", q, q, tagged).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) FetchLatest(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	var blogs []model.Blog
	err := m.withRelations(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(int(limit)).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) FetchTrending(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	// Rank IDs first, then load the full rows in rank order.
	var ids []int64
	err := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Select("blog.id").
		Joins("LEFT JOIN likes l ON l.blog_id = blog.id").
		Joins("LEFT JOIN comment c ON c.blog_id = blog.id").
		Where("blog.published = ?", true).
		Group("blog.id").
		Order("COUNT(DISTINCT l.id) DESC, COUNT(DISTINCT c.id) DESC").
		Limit(int(limit)).
		Find(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var blogs []model.Blog
	err = m.withRelations(ctx).Where("id IN ?", ids).Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Blog, len(blogs))
	for _, b := range blogs {
		byID[b.ID] = b
	}
	ordered := make([]model.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return m.annotate(ctx, ordered)
}

func (m *blogRepository) FetchRelated(ctx context.Context, slug string) ([]domain.BlogView, error) {
	var blog model.Blog
	err := m.DB.WithContext(ctx).
		Preload("Categories").
		First(&blog, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	categoryIDs := make([]int64, len(blog.Categories))
	for i, c := range blog.Categories {
		categoryIDs[i] = c.ID
	}
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	sharing := m.DB.Table("blog_categories").
		Select("blog_id").
		Where("category_id IN ?", categoryIDs)

	var blogs []model.Blog
	err = m.withRelations(ctx).
		Where("id IN (?) AND id <> ? AND published = ?", sharing, blog.ID, true).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.BlogView, error) {
	var blogs []model.Blog
	err := m.withRelations(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) FetchByCategory(ctx context.Context, name string) ([]domain.BlogView, error) {
	tagged := m.DB.Table("blog_categories bc").
		Select("bc.blog_id").
		Joins("JOIN category c ON c.id = bc.category_id").
		Where("c.name = ?", name)

	var blogs []model.Blog
	err := m.withRelations(ctx).
		Where("id IN (?)", tagged).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return m.annotate(ctx, blogs)
}

func (m *blogRepository) ListAdmin(ctx context.Context, q domain.AdminBlogQuery) ([]domain.BlogStats, int64, error) {
	base := m.DB.WithContext(ctx).Model(&model.Blog{})
	switch q.Status {
	case "published":
		base = base.Where("published = ?", true)
	case "draft":
		base = base.Where("published = ?", false)
	}
	if q.CategoryID != 0 {
		tagged := m.DB.Table("blog_categories").
			Select("blog_id").
			Where("category_id = ?", q.CategoryID)
		base = base.Where("id IN (?)", tagged)
	}
	if q.Search != "" {
		base = base.Where("title LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	err := base.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Categories").
		Order("created_at DESC").
		Offset(int(q.Offset())).
		Limit(int(q.Limit)).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
	}
	likes, comments, err := m.countsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.BlogStats, len(blogs))
	for i := range blogs {
		res[i] = domain.BlogStats{
			Blog:          blogs[i].ToDomain(),
			CommentsCount: comments[blogs[i].ID],
			LikesCount:    likes[blogs[i].ID],
		}
	}
	return res, total, nil
}

func (m *blogRepository) TogglePublish(ctx context.Context, id int64) (domain.Blog, error) {
	var blog model.Blog
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&blog, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		blog.Published = !blog.Published
		return tx.Model(&model.Blog{}).
			Where("id = ?", id).
			Update("published", blog.Published).Error
	})
	if err != nil {
		return domain.Blog{}, err
	}
	return blog.ToDomain(), nil
}

func (m *blogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := m.DB.WithContext(ctx).Model(&model.Blog{}).Count(&n).Error
	return n, err
}

func (m *blogRepository) TopByLikes(ctx context.Context, limit int64) ([]domain.BlogStats, error) {
	var ids []int64
	err := m.DB.WithContext(ctx).
		Model(&model.Blog{}).
		Select("blog.id").
		Joins("LEFT JOIN likes l ON l.blog_id = blog.id").
		Group("blog.id").
		Order("COUNT(l.id) DESC").
		Limit(int(limit)).
		Find(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var blogs []model.Blog
	err = m.DB.WithContext(ctx).Where("id IN ?", ids).Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	likes, comments, err := m.countsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Blog, len(blogs))
	for _, b := range blogs {
		byID[b.ID] = b
	}
	res := make([]domain.BlogStats, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			continue
		}
		res = append(res, domain.BlogStats{
			Blog:          b.ToDomain(),
			CommentsCount: comments[id],
			LikesCount:    likes[id],
		})
	}
	return res, nil
}
