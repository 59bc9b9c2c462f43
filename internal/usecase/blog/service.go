package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/inkpress/inkpress/domain"
)

const (
	// 首页精选数量，与原前端一致
	HighlightLimit = 3
)

type Service struct {
	blogRepo     domain.BlogRepository
	categoryRepo domain.CategoryRepository
	likeRepo     domain.LikeRepository
	userRepo     domain.UserRepository
	cache        domain.BlogCache
}

var _ domain.BlogUsecase = (*Service)(nil)

// NewService will create a new blog service object
func NewService(
	blogRepo domain.BlogRepository,
	categoryRepo domain.CategoryRepository,
	likeRepo domain.LikeRepository,
	userRepo domain.UserRepository,
	cache domain.BlogCache,
) *Service {
	return &Service{
		blogRepo:     blogRepo,
		categoryRepo: categoryRepo,
		likeRepo:     likeRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

// assemble finishes a repository view for one viewer: the flat comment
// list becomes the two-level forest and the like flag is forced to
// false for anonymous viewers, no matter what the repository reported.
func assemble(view domain.BlogView, viewerID int64) domain.BlogView {
	view.Comments = domain.BuildCommentTree(view.Comments)
	if viewerID == 0 {
		view.LikedByViewer = false
	}
	return view
}

// assembleAll assembles a list for an anonymous viewer.
func assembleAll(views []domain.BlogView) []domain.BlogView {
	for i := range views {
		views[i] = assemble(views[i], 0)
	}
	return views
}

func (s *Service) Fetch(ctx context.Context) ([]domain.BlogView, error) {
	views, err := s.blogRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	return assembleAll(views), nil
}

func (s *Service) GetBySlug(ctx context.Context, slugParam string, viewerID int64) (domain.BlogView, error) {
	view, err := s.blogRepo.GetBySlug(ctx, slugParam, viewerID)
	if err != nil {
		return domain.BlogView{}, err
	}
	return assemble(view, viewerID), nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.BlogView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrBadParamInput
	}
	views, err := s.blogRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	return assembleAll(views), nil
}

func (s *Service) Latest(ctx context.Context) ([]domain.BlogView, error) {
	views, err := s.blogRepo.FetchLatest(ctx, HighlightLimit)
	if err != nil {
		return nil, err
	}
	return assembleAll(views), nil
}

func (s *Service) Trending(ctx context.Context) ([]domain.BlogView, error) {
	views, err := s.blogRepo.FetchTrending(ctx, HighlightLimit)
	if err != nil {
		return nil, err
	}
	return assembleAll(views), nil
}

func (s *Service) Related(ctx context.Context, slugParam string) ([]domain.BlogView, error) {
	views, err := s.blogRepo.FetchRelated(ctx, slugParam)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	return assembleAll(views), nil
}

func (s *Service) ByAuthor(ctx context.Context, authorID int64) ([]domain.BlogView, error) {
	views, err := s.blogRepo.FetchByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return assembleAll(views), nil
}

func (s *Service) ByCategory(ctx context.Context, name string) ([]domain.BlogView, error) {
	views, err := s.blogRepo.FetchByCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	return assembleAll(views), nil
}

// uniqueSlug derives a slug from the title and suffixes a counter until
// no other blog owns it. current is the slug the blog already holds
// (empty for a new blog); reusing it is never a collision.
func (s *Service) uniqueSlug(ctx context.Context, title, current string) (string, error) {
	base := slug.Make(title)
	candidate := base
	for counter := 1; ; counter++ {
		if candidate == current {
			return candidate, nil
		}
		exists, err := s.blogRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *Service) Store(ctx context.Context, b *domain.Blog, categories []string) error {
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Content) == "" || len(categories) == 0 {
		return domain.ErrBadParamInput
	}

	newSlug, err := s.uniqueSlug(ctx, b.Title, "")
	if err != nil {
		return err
	}
	b.Slug = newSlug

	cats, err := s.categoryRepo.UpsertByNames(ctx, categories)
	if err != nil {
		return err
	}
	b.Categories = cats

	if err := s.blogRepo.Store(ctx, b); err != nil {
		return err
	}

	author, err := s.userRepo.GetByID(ctx, b.Author.ID)
	if err != nil {
		return err
	}
	b.Author = author
	return nil
}

func (s *Service) Update(ctx context.Context, slugParam string, actorID int64, patch domain.BlogPatch) (domain.Blog, error) {
	view, err := s.blogRepo.GetBySlug(ctx, slugParam, 0)
	if err != nil {
		return domain.Blog{}, err
	}
	if view.Author.ID != actorID {
		return domain.Blog{}, domain.ErrForbidden
	}

	updated := view.Blog
	if patch.Title != "" && patch.Title != updated.Title {
		updated.Title = patch.Title
		newSlug, err := s.uniqueSlug(ctx, patch.Title, updated.Slug)
		if err != nil {
			return domain.Blog{}, err
		}
		updated.Slug = newSlug
	}
	if patch.Content != "" {
		updated.Content = patch.Content
	}
	if patch.CoverImage != "" {
		updated.CoverImage = patch.CoverImage
	}
	if patch.Published != nil {
		updated.Published = *patch.Published
	}
	updated.UpdatedAt = time.Now()

	if err := s.blogRepo.Update(ctx, &updated); err != nil {
		return domain.Blog{}, err
	}
	// Drop the stale entry under the old slug as well when it changed.
	if updated.Slug != slugParam {
		if err := s.cache.DeleteBlog(ctx, slugParam); err != nil {
			logrus.Warnf("failed to invalidate blog cache for %s: %v", slugParam, err)
		}
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, slugParam string, actorID int64) error {
	view, err := s.blogRepo.GetBySlug(ctx, slugParam, 0)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if view.Author.ID != actorID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return s.blogRepo.DeleteCascade(ctx, view.ID)
}

// ToggleLike flips the like state for (userID, blog behind slug). The
// check-then-act runs inside the repository transaction; a duplicate
// conflict means a concurrent toggle won the race, which is transient,
// so the flip is retried exactly once. The returned count is read
// fresh after the toggle and may already include other users' toggles.
func (s *Service) ToggleLike(ctx context.Context, userID int64, slugParam string) (domain.LikeResult, error) {
	blogID, err := s.blogRepo.ResolveSlug(ctx, slugParam)
	if err != nil {
		return domain.LikeResult{}, err
	}

	added, err := s.likeRepo.Toggle(ctx, userID, blogID)
	if errors.Is(err, domain.ErrConflict) {
		logrus.Warnf("like toggle conflict for user %d on blog %d, retrying", userID, blogID)
		added, err = s.likeRepo.Toggle(ctx, userID, blogID)
	}
	if err != nil {
		return domain.LikeResult{}, err
	}

	count, err := s.likeRepo.CountByBlog(ctx, blogID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	s.invalidate(ctx, slugParam)

	return domain.LikeResult{
		Liked:      added,
		LikesCount: count,
	}, nil
}

func (s *Service) LikeStatus(ctx context.Context, userID int64, slugParam string) (domain.LikeResult, error) {
	blogID, err := s.blogRepo.ResolveSlug(ctx, slugParam)
	if err != nil {
		return domain.LikeResult{}, err
	}

	liked, err := s.likeRepo.IsLiked(ctx, userID, blogID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	count, err := s.likeRepo.CountByBlog(ctx, blogID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	return domain.LikeResult{
		Liked:      liked,
		LikesCount: count,
	}, nil
}

func (s *Service) invalidate(ctx context.Context, slugParam string) {
	if err := s.cache.DeleteBlog(ctx, slugParam); err != nil {
		logrus.Warnf("failed to invalidate blog cache for %s: %v", slugParam, err)
	}
	if err := s.cache.DeleteHome(ctx); err != nil {
		logrus.Warnf("failed to invalidate home cache: %v", err)
	}
}
