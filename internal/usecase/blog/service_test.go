package blog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/domain"
)

func flatView(liked bool) domain.BlogView {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return domain.BlogView{
		Blog: domain.Blog{
			ID:     7,
			Title:  "Hello",
			Slug:   "hello",
			Author: domain.User{ID: 1, Name: "ada"},
		},
		Comments: []*domain.Comment{
			{ID: 1, BlogID: 7, Content: "top", CreatedAt: base},
			{ID: 2, BlogID: 7, ParentID: 1, Content: "reply", CreatedAt: base.Add(time.Minute)},
		},
		CommentsCount: 1,
		LikesCount:    3,
		LikedByViewer: liked,
	}
}

func TestGetBySlug_AssemblesCommentForest(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, slug string, viewerID int64) (domain.BlogView, error) {
			assert.Equal(t, "hello", slug)
			assert.Equal(t, int64(42), viewerID)
			return flatView(true), nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	view, err := svc.GetBySlug(context.Background(), "hello", 42)
	require.NoError(t, err)

	require.Len(t, view.Comments, 1)
	assert.Equal(t, int64(1), view.Comments[0].ID)
	require.Len(t, view.Comments[0].Replies, 1)
	assert.Equal(t, int64(2), view.Comments[0].Replies[0].ID)
	assert.True(t, view.LikedByViewer)
}

func TestGetBySlug_Deterministic(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
			return flatView(false), nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	first, err := svc.GetBySlug(context.Background(), "hello", 0)
	require.NoError(t, err)
	second, err := svc.GetBySlug(context.Background(), "hello", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetBySlug_AnonymousViewerNeverLiked(t *testing.T) {
	t.Parallel()

	// Even a repository that wrongly reports a like must not leak it to
	// an anonymous viewer.
	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
			return flatView(true), nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	view, err := svc.GetBySlug(context.Background(), "hello", 0)
	require.NoError(t, err)
	assert.False(t, view.LikedByViewer)
}

func TestGetBySlug_NotFoundPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
			return domain.BlogView{}, domain.ErrNotFound
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	_, err := svc.GetBySlug(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch_EmptyIsNotFound(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		fetchFn: func(context.Context) ([]domain.BlogView, error) {
			return []domain.BlogView{}, nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	_, err := svc.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_BlankQueryRejected(t *testing.T) {
	t.Parallel()

	svc := NewService(&blogRepoStub{}, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	_, err := svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestToggleLike_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		resolveSlugFn: func(_ context.Context, slug string) (int64, error) {
			require.Equal(t, "hello", slug)
			return 7, nil
		},
	}
	likes := newMemLikeRepo()
	svc := NewService(repo, &categoryRepoStub{}, likes, &userRepoStub{}, noopCache{})

	first, err := svc.ToggleLike(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, int64(1), first.LikesCount)

	second, err := svc.ToggleLike(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, int64(0), second.LikesCount)
}

func TestToggleLike_CountsEveryUserOnce(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		resolveSlugFn: func(_ context.Context, _ string) (int64, error) { return 7, nil },
	}
	likes := newMemLikeRepo()
	svc := NewService(repo, &categoryRepoStub{}, likes, &userRepoStub{}, noopCache{})

	for _, userID := range []int64{1, 2, 3} {
		res, err := svc.ToggleLike(context.Background(), userID, "hello")
		require.NoError(t, err)
		assert.True(t, res.Liked)
	}

	res, err := svc.LikeStatus(context.Background(), 2, "hello")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(3), res.LikesCount)

	// A repeated toggle by one user never double-counts.
	res, err = svc.ToggleLike(context.Background(), 2, "hello")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(2), res.LikesCount)
}

func TestToggleLike_RetriesOnceOnConflict(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		resolveSlugFn: func(_ context.Context, _ string) (int64, error) { return 7, nil },
	}
	calls := 0
	likes := &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ int64) (bool, error) {
			calls++
			if calls == 1 {
				return false, domain.ErrConflict
			}
			return false, nil
		},
		countByBlogFn: func(_ context.Context, _ int64) (int64, error) { return 1, nil },
	}
	svc := NewService(repo, &categoryRepoStub{}, likes, &userRepoStub{}, noopCache{})

	res, err := svc.ToggleLike(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, res.Liked)
}

func TestToggleLike_SecondConflictSurfaces(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		resolveSlugFn: func(_ context.Context, _ string) (int64, error) { return 7, nil },
	}
	calls := 0
	likes := &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ int64) (bool, error) {
			calls++
			return false, domain.ErrConflict
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, likes, &userRepoStub{}, noopCache{})

	_, err := svc.ToggleLike(context.Background(), 42, "hello")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 2, calls)
}

func TestStore_GeneratesUniqueSlug(t *testing.T) {
	t.Parallel()

	taken := map[string]bool{"my-first-post": true, "my-first-post-1": true}
	var stored *domain.Blog
	repo := &blogRepoStub{
		slugExistsFn: func(_ context.Context, slug string) (bool, error) {
			return taken[slug], nil
		},
		storeFn: func(_ context.Context, b *domain.Blog) error {
			stored = b
			return nil
		},
	}
	categories := &categoryRepoStub{
		upsertFn: func(_ context.Context, names []string) ([]domain.Category, error) {
			out := make([]domain.Category, len(names))
			for i, name := range names {
				out[i] = domain.Category{ID: int64(i + 1), Name: name}
			}
			return out, nil
		},
	}
	users := &userRepoStub{
		getByIDFn: func(_ context.Context, id int64) (domain.User, error) {
			return domain.User{ID: id, Name: "ada"}, nil
		},
	}
	svc := NewService(repo, categories, &likeRepoStub{}, users, noopCache{})

	b := domain.Blog{Title: "My First Post!", Content: "hi", Author: domain.User{ID: 1}}
	err := svc.Store(context.Background(), &b, []string{"go", "web"})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "my-first-post-2", stored.Slug)
	assert.Len(t, stored.Categories, 2)
	assert.Equal(t, "ada", b.Author.Name)
}

func TestStore_RequiresTitleContentAndCategories(t *testing.T) {
	t.Parallel()

	svc := NewService(&blogRepoStub{}, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	b := domain.Blog{Title: " ", Content: "hi"}
	assert.ErrorIs(t, svc.Store(context.Background(), &b, []string{"go"}), domain.ErrBadParamInput)

	b = domain.Blog{Title: "ok", Content: "hi"}
	assert.ErrorIs(t, svc.Store(context.Background(), &b, nil), domain.ErrBadParamInput)
}

func TestUpdate_OnlyAuthorMayUpdate(t *testing.T) {
	t.Parallel()

	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
			return flatView(false), nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	_, err := svc.Update(context.Background(), "hello", 999, domain.BlogPatch{Content: "new"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_TitleChangeRegeneratesSlug(t *testing.T) {
	t.Parallel()

	var updated *domain.Blog
	repo := &blogRepoStub{
		getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
			return flatView(false), nil
		},
		slugExistsFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		updateFn: func(_ context.Context, b *domain.Blog) error {
			updated = b
			return nil
		},
	}
	svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, &userRepoStub{}, noopCache{})

	blog, err := svc.Update(context.Background(), "hello", 1, domain.BlogPatch{Title: "Fresh Title"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "fresh-title", blog.Slug)
}

func TestDelete_AuthorOrAdminOnly(t *testing.T) {
	t.Parallel()

	t.Run("stranger is rejected", func(t *testing.T) {
		t.Parallel()
		repo := &blogRepoStub{
			getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
				return flatView(false), nil
			},
		}
		users := &userRepoStub{
			getByIDFn: func(_ context.Context, id int64) (domain.User, error) {
				return domain.User{ID: id, Role: domain.RoleUser}, nil
			},
		}
		svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, users, noopCache{})

		err := svc.Delete(context.Background(), "hello", 999)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may delete any blog", func(t *testing.T) {
		t.Parallel()
		deleted := false
		repo := &blogRepoStub{
			getBySlugFn: func(_ context.Context, _ string, _ int64) (domain.BlogView, error) {
				return flatView(false), nil
			},
			deleteFn: func(_ context.Context, id int64) error {
				assert.Equal(t, int64(7), id)
				deleted = true
				return nil
			},
		}
		users := &userRepoStub{
			getByIDFn: func(_ context.Context, id int64) (domain.User, error) {
				return domain.User{ID: id, Role: domain.RoleAdmin}, nil
			},
		}
		svc := NewService(repo, &categoryRepoStub{}, &likeRepoStub{}, users, noopCache{})

		require.NoError(t, svc.Delete(context.Background(), "hello", 999))
		assert.True(t, deleted)
	})
}
