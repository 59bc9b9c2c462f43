package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/domain"
)

func flatComments() []*domain.Comment {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return []*domain.Comment{
		{ID: 1, BlogID: 7, Content: "first", CreatedAt: base},
		{ID: 2, BlogID: 7, Content: "second", CreatedAt: base.Add(time.Minute)},
		{ID: 3, BlogID: 7, ParentID: 1, Content: "reply to first", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, BlogID: 7, ParentID: 2, Content: "reply to second", CreatedAt: base.Add(3 * time.Minute)},
		{ID: 5, BlogID: 7, ParentID: 1, Content: "another reply to first", CreatedAt: base.Add(4 * time.Minute)},
	}
}

func TestBuildCommentTree_Forest(t *testing.T) {
	t.Parallel()

	roots := domain.BuildCommentTree(flatComments())

	require.Len(t, roots, 2)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Equal(t, int64(2), roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, int64(3), roots[0].Replies[0].ID)
	assert.Equal(t, int64(5), roots[0].Replies[1].ID)

	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, int64(4), roots[1].Replies[0].ID)
}

func TestBuildCommentTree_EveryInputNodeAppearsOnce(t *testing.T) {
	t.Parallel()

	input := flatComments()
	roots := domain.BuildCommentTree(input)

	seen := map[int64]int{}
	for _, root := range roots {
		seen[root.ID]++
		for _, reply := range root.Replies {
			seen[reply.ID]++
		}
	}

	require.Len(t, seen, len(input))
	for _, c := range input {
		assert.Equal(t, 1, seen[c.ID], "comment %d should appear exactly once", c.ID)
	}
}

func TestBuildCommentTree_RepliesNeverNil(t *testing.T) {
	t.Parallel()

	roots := domain.BuildCommentTree(flatComments())
	for _, root := range roots {
		require.NotNil(t, root.Replies)
		for _, reply := range root.Replies {
			require.NotNil(t, reply.Replies)
			assert.Empty(t, reply.Replies)
		}
	}
}

func TestBuildCommentTree_TopLevelKeepsInputOrder(t *testing.T) {
	t.Parallel()

	comments := []*domain.Comment{
		{ID: 30, Content: "c"},
		{ID: 10, Content: "a"},
		{ID: 20, Content: "b"},
	}
	roots := domain.BuildCommentTree(comments)

	require.Len(t, roots, 3)
	assert.Equal(t, int64(30), roots[0].ID)
	assert.Equal(t, int64(10), roots[1].ID)
	assert.Equal(t, int64(20), roots[2].ID)
}

func TestBuildCommentTree_OrphanDropped(t *testing.T) {
	t.Parallel()

	comments := []*domain.Comment{
		{ID: 1, Content: "top"},
		{ID: 2, ParentID: 99, Content: "orphan, parent not in set"},
	}
	roots := domain.BuildCommentTree(comments)

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	t.Parallel()

	roots := domain.BuildCommentTree(nil)
	require.NotNil(t, roots)
	assert.Empty(t, roots)

	roots = domain.BuildCommentTree([]*domain.Comment{})
	require.NotNil(t, roots)
	assert.Empty(t, roots)
}
