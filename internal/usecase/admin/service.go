package admin

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/inkpress/inkpress/domain"
)

const (
	// 仪表盘各榜单的条数
	topLimit = 5
)

type Service struct {
	userRepo     domain.UserRepository
	blogRepo     domain.BlogRepository
	categoryRepo domain.CategoryRepository
	commentRepo  domain.CommentRepository
	likeRepo     domain.LikeRepository
}

var _ domain.AdminUsecase = (*Service)(nil)

// NewService will create a new admin service object
func NewService(
	userRepo domain.UserRepository,
	blogRepo domain.BlogRepository,
	categoryRepo domain.CategoryRepository,
	commentRepo domain.CommentRepository,
	likeRepo domain.LikeRepository,
) *Service {
	return &Service{
		userRepo:     userRepo,
		blogRepo:     blogRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
	}
}

func (s *Service) ListUsers(ctx context.Context, q domain.PageQuery) ([]domain.UserStats, domain.PageMeta, error) {
	users, total, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, domain.NewPageMeta(total, q), nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (domain.UserStats, error) {
	stats, err := s.userRepo.GetStats(ctx, id)
	if err != nil {
		return domain.UserStats{}, err
	}
	stats.Password = ""
	return stats, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int64, patch domain.AdminUserPatch) (domain.User, error) {
	if patch.Role != "" && !patch.Role.Valid() {
		return domain.User{}, domain.ErrBadParamInput
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.Role != "" {
		u.Role = patch.Role
	}

	if err := s.userRepo.Update(ctx, &u); err != nil {
		return domain.User{}, err
	}
	u.Password = ""
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id, actorID int64) error {
	// Admins cannot remove their own account from inside the
	// back-office.
	if id == actorID {
		return domain.ErrBadParamInput
	}
	return s.userRepo.DeleteCascade(ctx, id)
}

func (s *Service) ListBlogs(ctx context.Context, q domain.AdminBlogQuery) ([]domain.BlogStats, domain.PageMeta, error) {
	blogs, total, err := s.blogRepo.ListAdmin(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	return blogs, domain.NewPageMeta(total, q.PageQuery), nil
}

func (s *Service) GetBlog(ctx context.Context, id int64) (domain.BlogView, error) {
	view, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return domain.BlogView{}, err
	}
	view.Comments = domain.BuildCommentTree(view.Comments)
	return view, nil
}

func (s *Service) ToggleBlogPublish(ctx context.Context, id int64) (domain.Blog, error) {
	return s.blogRepo.TogglePublish(ctx, id)
}

func (s *Service) DeleteBlog(ctx context.Context, id int64) error {
	return s.blogRepo.DeleteCascade(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, q domain.PageQuery) ([]domain.CategoryStats, domain.PageMeta, error) {
	categories, total, err := s.categoryRepo.List(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	return categories, domain.NewPageMeta(total, q), nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (domain.CategoryStats, error) {
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return domain.CategoryStats{}, err
	}

	views, err := s.blogRepo.FetchByCategory(ctx, c.Name)
	if err != nil {
		return domain.CategoryStats{}, err
	}
	return domain.CategoryStats{
		Category:   c,
		BlogsCount: int64(len(views)),
	}, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.ErrBadParamInput
	}

	_, err := s.categoryRepo.GetByNameFold(ctx, name)
	if err == nil {
		return domain.Category{}, domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Category{}, err
	}

	c := domain.Category{Name: name}
	if err := s.categoryRepo.Store(ctx, &c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.ErrBadParamInput
	}

	existing, err := s.categoryRepo.GetByNameFold(ctx, name)
	if err == nil && existing.ID != id {
		return domain.Category{}, domain.ErrConflict
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Category{}, err
	}

	c := domain.Category{ID: id, Name: name}
	if err := s.categoryRepo.Update(ctx, &c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.DeleteCascade(ctx, id)
}

func (s *Service) ListComments(ctx context.Context, q domain.PageQuery) ([]domain.CommentDetail, domain.PageMeta, error) {
	comments, total, err := s.commentRepo.List(ctx, q)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}
	return comments, domain.NewPageMeta(total, q), nil
}

func (s *Service) GetComment(ctx context.Context, id int64) (domain.CommentDetail, error) {
	return s.commentRepo.GetDetail(ctx, id)
}

func (s *Service) DeleteComment(ctx context.Context, id int64) error {
	return s.commentRepo.DeleteCascade(ctx, id)
}

// Analytics gathers the dashboard payload. The independent reads fan
// out on an errgroup and the first failure cancels the rest.
func (s *Service) Analytics(ctx context.Context) (domain.Analytics, error) {
	var res domain.Analytics

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Totals.Users, err = s.userRepo.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		res.Totals.Blogs, err = s.blogRepo.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		res.Totals.Comments, err = s.commentRepo.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		res.Totals.Likes, err = s.likeRepo.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		res.Totals.Categories, err = s.categoryRepo.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		res.PopularBlogs, err = s.blogRepo.TopByLikes(ctx, topLimit)
		return
	})
	g.Go(func() (err error) {
		res.ActiveUsers, err = s.userRepo.MostActive(ctx, topLimit)
		return
	})
	g.Go(func() (err error) {
		res.RecentComments, err = s.commentRepo.FetchRecent(ctx, topLimit)
		return
	})

	if err := g.Wait(); err != nil {
		return domain.Analytics{}, err
	}

	for i := range res.ActiveUsers {
		res.ActiveUsers[i].Password = ""
	}
	return res, nil
}
