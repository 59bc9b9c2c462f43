package blog

import (
	"context"

	"github.com/inkpress/inkpress/domain"
)

// Function-backed stubs shared by the service tests. A nil field means
// the call is unexpected and answers ErrInternalServerError so the test
// fails loudly.

type blogRepoStub struct {
	fetchFn         func(ctx context.Context) ([]domain.BlogView, error)
	getBySlugFn     func(ctx context.Context, slug string, viewerID int64) (domain.BlogView, error)
	getByIDFn       func(ctx context.Context, id int64) (domain.BlogView, error)
	resolveSlugFn   func(ctx context.Context, slug string) (int64, error)
	slugExistsFn    func(ctx context.Context, slug string) (bool, error)
	storeFn         func(ctx context.Context, b *domain.Blog) error
	updateFn        func(ctx context.Context, b *domain.Blog) error
	deleteFn        func(ctx context.Context, id int64) error
	searchFn        func(ctx context.Context, query string) ([]domain.BlogView, error)
	fetchLatestFn   func(ctx context.Context, limit int64) ([]domain.BlogView, error)
	fetchTrendingFn func(ctx context.Context, limit int64) ([]domain.BlogView, error)
	fetchRelatedFn  func(ctx context.Context, slug string) ([]domain.BlogView, error)
	fetchByAuthorFn func(ctx context.Context, authorID int64) ([]domain.BlogView, error)
	byCategoryFn    func(ctx context.Context, name string) ([]domain.BlogView, error)
	listAdminFn     func(ctx context.Context, q domain.AdminBlogQuery) ([]domain.BlogStats, int64, error)
	togglePubFn     func(ctx context.Context, id int64) (domain.Blog, error)
	countFn         func(ctx context.Context) (int64, error)
	topByLikesFn    func(ctx context.Context, limit int64) ([]domain.BlogStats, error)
}

var _ domain.BlogRepository = (*blogRepoStub)(nil)

func (s *blogRepoStub) Fetch(ctx context.Context) ([]domain.BlogView, error) {
	if s.fetchFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchFn(ctx)
}

func (s *blogRepoStub) GetBySlug(ctx context.Context, slug string, viewerID int64) (domain.BlogView, error) {
	if s.getBySlugFn == nil {
		return domain.BlogView{}, domain.ErrInternalServerError
	}
	return s.getBySlugFn(ctx, slug, viewerID)
}

func (s *blogRepoStub) GetByID(ctx context.Context, id int64) (domain.BlogView, error) {
	if s.getByIDFn == nil {
		return domain.BlogView{}, domain.ErrInternalServerError
	}
	return s.getByIDFn(ctx, id)
}

func (s *blogRepoStub) ResolveSlug(ctx context.Context, slug string) (int64, error) {
	if s.resolveSlugFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.resolveSlugFn(ctx, slug)
}

func (s *blogRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	if s.slugExistsFn == nil {
		return false, domain.ErrInternalServerError
	}
	return s.slugExistsFn(ctx, slug)
}

func (s *blogRepoStub) Store(ctx context.Context, b *domain.Blog) error {
	if s.storeFn == nil {
		return domain.ErrInternalServerError
	}
	return s.storeFn(ctx, b)
}

func (s *blogRepoStub) Update(ctx context.Context, b *domain.Blog) error {
	if s.updateFn == nil {
		return domain.ErrInternalServerError
	}
	return s.updateFn(ctx, b)
}

func (s *blogRepoStub) DeleteCascade(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return domain.ErrInternalServerError
	}
	return s.deleteFn(ctx, id)
}

func (s *blogRepoStub) Search(ctx context.Context, query string) ([]domain.BlogView, error) {
	if s.searchFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.searchFn(ctx, query)
}

func (s *blogRepoStub) FetchLatest(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	if s.fetchLatestFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchLatestFn(ctx, limit)
}

func (s *blogRepoStub) FetchTrending(ctx context.Context, limit int64) ([]domain.BlogView, error) {
	if s.fetchTrendingFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchTrendingFn(ctx, limit)
}

func (s *blogRepoStub) FetchRelated(ctx context.Context, slug string) ([]domain.BlogView, error) {
	if s.fetchRelatedFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchRelatedFn(ctx, slug)
}

func (s *blogRepoStub) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.BlogView, error) {
	if s.fetchByAuthorFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchByAuthorFn(ctx, authorID)
}

func (s *blogRepoStub) FetchByCategory(ctx context.Context, name string) ([]domain.BlogView, error) {
	if s.byCategoryFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.byCategoryFn(ctx, name)
}

func (s *blogRepoStub) ListAdmin(ctx context.Context, q domain.AdminBlogQuery) ([]domain.BlogStats, int64, error) {
	if s.listAdminFn == nil {
		return nil, 0, domain.ErrInternalServerError
	}
	return s.listAdminFn(ctx, q)
}

func (s *blogRepoStub) TogglePublish(ctx context.Context, id int64) (domain.Blog, error) {
	if s.togglePubFn == nil {
		return domain.Blog{}, domain.ErrInternalServerError
	}
	return s.togglePubFn(ctx, id)
}

func (s *blogRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.countFn(ctx)
}

func (s *blogRepoStub) TopByLikes(ctx context.Context, limit int64) ([]domain.BlogStats, error) {
	if s.topByLikesFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.topByLikesFn(ctx, limit)
}

type categoryRepoStub struct {
	fetchFn         func(ctx context.Context) ([]domain.Category, error)
	getByIDFn       func(ctx context.Context, id int64) (domain.Category, error)
	getByNameFoldFn func(ctx context.Context, name string) (domain.Category, error)
	upsertFn        func(ctx context.Context, names []string) ([]domain.Category, error)
	storeFn         func(ctx context.Context, c *domain.Category) error
	updateFn        func(ctx context.Context, c *domain.Category) error
	deleteFn        func(ctx context.Context, id int64) error
	listFn          func(ctx context.Context, q domain.PageQuery) ([]domain.CategoryStats, int64, error)
	countFn         func(ctx context.Context) (int64, error)
}

var _ domain.CategoryRepository = (*categoryRepoStub)(nil)

func (s *categoryRepoStub) Fetch(ctx context.Context) ([]domain.Category, error) {
	if s.fetchFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.fetchFn(ctx)
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	if s.getByIDFn == nil {
		return domain.Category{}, domain.ErrInternalServerError
	}
	return s.getByIDFn(ctx, id)
}

func (s *categoryRepoStub) GetByNameFold(ctx context.Context, name string) (domain.Category, error) {
	if s.getByNameFoldFn == nil {
		return domain.Category{}, domain.ErrInternalServerError
	}
	return s.getByNameFoldFn(ctx, name)
}

func (s *categoryRepoStub) UpsertByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	if s.upsertFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.upsertFn(ctx, names)
}

func (s *categoryRepoStub) Store(ctx context.Context, c *domain.Category) error {
	if s.storeFn == nil {
		return domain.ErrInternalServerError
	}
	return s.storeFn(ctx, c)
}

func (s *categoryRepoStub) Update(ctx context.Context, c *domain.Category) error {
	if s.updateFn == nil {
		return domain.ErrInternalServerError
	}
	return s.updateFn(ctx, c)
}

func (s *categoryRepoStub) DeleteCascade(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return domain.ErrInternalServerError
	}
	return s.deleteFn(ctx, id)
}

func (s *categoryRepoStub) List(ctx context.Context, q domain.PageQuery) ([]domain.CategoryStats, int64, error) {
	if s.listFn == nil {
		return nil, 0, domain.ErrInternalServerError
	}
	return s.listFn(ctx, q)
}

func (s *categoryRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.countFn(ctx)
}

type likeRepoStub struct {
	toggleFn      func(ctx context.Context, userID, blogID int64) (bool, error)
	isLikedFn     func(ctx context.Context, userID, blogID int64) (bool, error)
	countByBlogFn func(ctx context.Context, blogID int64) (int64, error)
	countFn       func(ctx context.Context) (int64, error)
}

var _ domain.LikeRepository = (*likeRepoStub)(nil)

func (s *likeRepoStub) Toggle(ctx context.Context, userID, blogID int64) (bool, error) {
	if s.toggleFn == nil {
		return false, domain.ErrInternalServerError
	}
	return s.toggleFn(ctx, userID, blogID)
}

func (s *likeRepoStub) IsLiked(ctx context.Context, userID, blogID int64) (bool, error) {
	if s.isLikedFn == nil {
		return false, domain.ErrInternalServerError
	}
	return s.isLikedFn(ctx, userID, blogID)
}

func (s *likeRepoStub) CountByBlog(ctx context.Context, blogID int64) (int64, error) {
	if s.countByBlogFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.countByBlogFn(ctx, blogID)
}

func (s *likeRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.countFn(ctx)
}

// memLikeRepo is an in-memory like store for round-trip tests.
type memLikeRepo struct {
	likes map[[2]int64]bool
}

var _ domain.LikeRepository = (*memLikeRepo)(nil)

func newMemLikeRepo() *memLikeRepo {
	return &memLikeRepo{likes: map[[2]int64]bool{}}
}

func (m *memLikeRepo) Toggle(_ context.Context, userID, blogID int64) (bool, error) {
	key := [2]int64{userID, blogID}
	if m.likes[key] {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = true
	return true, nil
}

func (m *memLikeRepo) IsLiked(_ context.Context, userID, blogID int64) (bool, error) {
	return m.likes[[2]int64{userID, blogID}], nil
}

func (m *memLikeRepo) CountByBlog(_ context.Context, blogID int64) (int64, error) {
	var n int64
	for key := range m.likes {
		if key[1] == blogID {
			n++
		}
	}
	return n, nil
}

func (m *memLikeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.likes)), nil
}

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id int64) (domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (domain.User, error)
	getStatsFn   func(ctx context.Context, id int64) (domain.UserStats, error)
	insertFn     func(ctx context.Context, u *domain.User) error
	updateFn     func(ctx context.Context, u *domain.User) error
	listFn       func(ctx context.Context, q domain.PageQuery) ([]domain.UserStats, int64, error)
	deleteFn     func(ctx context.Context, id int64) error
	countFn      func(ctx context.Context) (int64, error)
	mostActiveFn func(ctx context.Context, limit int64) ([]domain.UserStats, error)
}

var _ domain.UserRepository = (*userRepoStub)(nil)

func (s *userRepoStub) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if s.getByIDFn == nil {
		return domain.User{}, domain.ErrInternalServerError
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if s.getByEmailFn == nil {
		return domain.User{}, domain.ErrInternalServerError
	}
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) GetStats(ctx context.Context, id int64) (domain.UserStats, error) {
	if s.getStatsFn == nil {
		return domain.UserStats{}, domain.ErrInternalServerError
	}
	return s.getStatsFn(ctx, id)
}

func (s *userRepoStub) Insert(ctx context.Context, u *domain.User) error {
	if s.insertFn == nil {
		return domain.ErrInternalServerError
	}
	return s.insertFn(ctx, u)
}

func (s *userRepoStub) Update(ctx context.Context, u *domain.User) error {
	if s.updateFn == nil {
		return domain.ErrInternalServerError
	}
	return s.updateFn(ctx, u)
}

func (s *userRepoStub) List(ctx context.Context, q domain.PageQuery) ([]domain.UserStats, int64, error) {
	if s.listFn == nil {
		return nil, 0, domain.ErrInternalServerError
	}
	return s.listFn(ctx, q)
}

func (s *userRepoStub) DeleteCascade(ctx context.Context, id int64) error {
	if s.deleteFn == nil {
		return domain.ErrInternalServerError
	}
	return s.deleteFn(ctx, id)
}

func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, domain.ErrInternalServerError
	}
	return s.countFn(ctx)
}

func (s *userRepoStub) MostActive(ctx context.Context, limit int64) ([]domain.UserStats, error) {
	if s.mostActiveFn == nil {
		return nil, domain.ErrInternalServerError
	}
	return s.mostActiveFn(ctx, limit)
}

// noopCache satisfies domain.BlogCache without storing anything.
type noopCache struct{}

var _ domain.BlogCache = (*noopCache)(nil)

func (noopCache) GetHome(context.Context) ([]domain.BlogView, error) {
	return nil, domain.ErrCacheMiss
}
func (noopCache) SetHome(context.Context, []domain.BlogView) error { return nil }
func (noopCache) DeleteHome(context.Context) error                 { return nil }
func (noopCache) GetBlog(context.Context, string) (domain.BlogView, error) {
	return domain.BlogView{}, domain.ErrCacheMiss
}
func (noopCache) SetBlog(context.Context, domain.BlogView) error { return nil }
func (noopCache) DeleteBlog(context.Context, string) error       { return nil }
