package comment

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inkpress/inkpress/domain"
)

type service struct {
	commentRepo domain.CommentRepository
	blogRepo    domain.BlogRepository
	userRepo    domain.UserRepository
	cache       domain.BlogCache
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(
	commentRepo domain.CommentRepository,
	blogRepo domain.BlogRepository,
	userRepo domain.UserRepository,
	cache domain.BlogCache,
) *service {
	return &service{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

func (s *service) Create(ctx context.Context, slug string, c *domain.Comment) error {
	if strings.TrimSpace(c.Content) == "" {
		return domain.ErrBadParamInput
	}

	blogID, err := s.blogRepo.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	c.BlogID = blogID

	if c.ParentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, c.ParentID)
		if err != nil {
			// 父评论不存在，按参数错误处理
			return domain.ErrBadParamInput
		}
		if parent.BlogID != blogID {
			return domain.ErrBadParamInput
		}
		// Replies stay one level deep: replying to a reply is rejected
		// up front instead of letting the tree collapse it later.
		if parent.ParentID != 0 {
			return domain.ErrBadParamInput
		}
	}

	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	author, err := s.userRepo.GetByID(ctx, c.AuthorID)
	if err == nil {
		c.Author = &author
	} else {
		logrus.Warnf("failed to load comment author %d: %v", c.AuthorID, err)
	}

	s.invalidate(ctx, slug)
	return nil
}

func (s *service) Delete(ctx context.Context, commentID, actorID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	// Need the slug before the row is gone, for cache invalidation.
	view, err := s.blogRepo.GetByID(ctx, comment.BlogID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.DeleteCascade(ctx, commentID); err != nil {
		return err
	}

	s.invalidate(ctx, view.Slug)
	return nil
}

func (s *service) FetchReplies(ctx context.Context, commentID int64) ([]*domain.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.FetchReplies(ctx, commentID)
}

func (s *service) invalidate(ctx context.Context, slug string) {
	if err := s.cache.DeleteBlog(ctx, slug); err != nil {
		logrus.Warnf("failed to invalidate blog cache for %s: %v", slug, err)
	}
	if err := s.cache.DeleteHome(ctx); err != nil {
		logrus.Warnf("failed to invalidate home cache: %v", err)
	}
}
