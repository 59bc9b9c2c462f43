package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/inkpress/inkpress/domain"
)

// blogRepository 协调层，协调缓存和数据库
type blogRepository struct {
	db    domain.BlogRepository
	likes domain.LikeRepository
	cache domain.BlogCache
	group singleflight.Group
}

var _ domain.BlogRepository = (*blogRepository)(nil)

// NewBlogRepository 创建协调层repository
func NewBlogRepository(db domain.BlogRepository, likes domain.LikeRepository, cache domain.BlogCache) *blogRepository {
	return &blogRepository{
		db:    db,
		likes: likes,
		cache: cache,
	}
}

// Fetch 获取博客列表，首页走缓存
func (r *blogRepository) Fetch(ctx context.Context) ([]domain.BlogView, error) {
	views, err := r.cache.GetHome(ctx)
	if err == nil {
		return views, nil
	}
	if err != domain.ErrCacheMiss {
		logrus.Warnf("home cache get error: %v", err)
	}

	// singleflight避免缓存击穿
	result, err, _ := r.group.Do("home", func() (any, error) {
		views, err := r.db.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetHome(ctx, views); err != nil {
			logrus.Warnf("failed to set home cache: %v", err)
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return copyViews(result.([]domain.BlogView)), nil
}

// GetBySlug 获取单篇博客。缓存只保存与访问者无关的视图，
// 每次命中后再查当前访问者的点赞状态。
func (r *blogRepository) GetBySlug(ctx context.Context, slug string, viewerID int64) (domain.BlogView, error) {
	view, err := r.cache.GetBlog(ctx, slug)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logrus.Warnf("blog cache get error: %v", err)
		}

		result, err, _ := r.group.Do("blog:"+slug, func() (any, error) {
			view, err := r.db.GetBySlug(ctx, slug, 0)
			if err != nil {
				return nil, err
			}
			if err := r.cache.SetBlog(ctx, view); err != nil {
				logrus.Warnf("failed to set blog cache: %v", err)
			}
			return view, nil
		})
		if err != nil {
			return domain.BlogView{}, err
		}
		view = copyView(result.(domain.BlogView))
	}

	if viewerID != 0 {
		liked, err := r.likes.IsLiked(ctx, viewerID, view.ID)
		if err != nil {
			return domain.BlogView{}, err
		}
		view.LikedByViewer = liked
	}

	return view, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id int64) (domain.BlogView, error) {
	return r.db.GetByID(ctx, id)
}

func (r *blogRepository) ResolveSlug(ctx context.Context, slug string) (int64, error) {
	return r.db.ResolveSlug(ctx, slug)
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.db.SlugExists(ctx, slug)
}

func (r *blogRepository) Store(ctx context.Context, b *domain.Blog) error {
	if err := r.db.Store(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.Slug)
	return nil
}

func (r *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	if err := r.db.Update(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.Slug)
	return nil
}

func (r *blogRepository) DeleteCascade(ctx context.Context, id int64) error {
	view, err := r.db.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.DeleteCascade(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, view.Slug)
	return nil
}

func (r *blogRepository) Search(ctx context.Context, query string) ([]domain.BlogView, error) {
	return r.db.Search(ctx, query)
}

func (r *blogRepository) FetchLatest(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	return r.db.FetchLatest(ctx, limit)
}

func (r *blogRepository) FetchTrending(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	return r.db.FetchTrending(ctx, limit)
}

func (r *blogRepository) FetchRelated(ctx context.Context, slug string) ([]domain.BlogView, error) {
	return r.db.FetchRelated(ctx, slug)
}

func (r *blogRepository) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.BlogView, error) {
	return r.db.FetchByAuthor(ctx, authorID)
}

func (r *blogRepository) FetchByCategory(ctx context.Context, name string) ([]domain.BlogView, error) {
	return r.db.FetchByCategory(ctx, name)
}

func (r *blogRepository) ListAdmin(ctx context.Context, q domain.AdminBlogQuery) ([]domain.BlogStats, int64, error) {
	return r.db.ListAdmin(ctx, q)
}

func (r *blogRepository) TogglePublish(ctx context.Context, id int64) (domain.Blog, error) {
	blog, err := r.db.TogglePublish(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}
	r.invalidate(ctx, blog.Slug)
	return blog, nil
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	return r.db.Count(ctx)
}

func (r *blogRepository) TopByLikes(ctx context.Context, limit int64) ([]domain.BlogStats, error) {
	return r.db.TopByLikes(ctx, limit)
}

// copyView clones the view's comment nodes. singleflight hands the
// same result to every waiting caller, and the comment nodes get
// mutated later when the flat list is folded into the reply forest,
// so each caller must leave with its own nodes. 缓存命中走
// json.Unmarshal，天然就是新对象，只有singleflight的结果需要拷贝。
func copyView(view domain.BlogView) domain.BlogView {
	view.Comments = copyComments(view.Comments)
	return view
}

func copyViews(views []domain.BlogView) []domain.BlogView {
	out := make([]domain.BlogView, len(views))
	for i := range views {
		out[i] = copyView(views[i])
	}
	return out
}

func copyComments(comments []*domain.Comment) []*domain.Comment {
	if comments == nil {
		return nil
	}
	out := make([]*domain.Comment, len(comments))
	for i, c := range comments {
		cc := *c
		if c.Author != nil {
			author := *c.Author
			cc.Author = &author
		}
		cc.Replies = copyComments(c.Replies)
		out[i] = &cc
	}
	return out
}

// invalidate drops every cached payload a mutation may have staled.
func (r *blogRepository) invalidate(ctx context.Context, slug string) {
	if err := r.cache.DeleteBlog(ctx, slug); err != nil {
		logrus.Warnf("failed to invalidate blog cache for %s: %v", slug, err)
	}
	if err := r.cache.DeleteHome(ctx); err != nil {
		logrus.Warnf("failed to invalidate home cache: %v", err)
	}
}
