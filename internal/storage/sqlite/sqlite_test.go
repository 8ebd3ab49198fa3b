package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestUsers(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveUser(ctx, "alice", []byte("hash"), true)
	require.NoError(t, err)
	assert.NotZero(t, id)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.SaveUser(ctx, "alice", []byte("other"), false)
		assert.ErrorIs(t, err, storage.ErrUserExists)
	})

	t.Run("lookup by name and id", func(t *testing.T) {
		byName, err := s.User(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, id, byName.ID)
		assert.True(t, byName.IsStaff)
		assert.Equal(t, []byte("hash"), byName.PassHash)

		byID, err := s.UserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := s.User(ctx, "nobody")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)

		_, err = s.UserByID(ctx, 9999)
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		_, err := s.SaveUser(ctx, "bob", []byte("hash"), false)
		require.NoError(t, err)

		users, err := s.Users(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})
}

func TestArticlesAndComments(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	alice, err := s.SaveUser(ctx, "alice", []byte("hash"), false)
	require.NoError(t, err)
	bob, err := s.SaveUser(ctx, "bob", []byte("hash"), false)
	require.NoError(t, err)

	first, err := s.SaveArticle(ctx, alice, "Hello", "World", time.Now())
	require.NoError(t, err)
	second, err := s.SaveArticle(ctx, bob, "Second", "Post", time.Now())
	require.NoError(t, err)

	t.Run("unknown author", func(t *testing.T) {
		_, err := s.SaveArticle(ctx, 9999, "x", "y", time.Now())
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})

	t.Run("list in insertion order with author names", func(t *testing.T) {
		arts, err := s.Articles(ctx)
		require.NoError(t, err)
		require.Len(t, arts, 2)
		assert.Equal(t, first, arts[0].ID)
		assert.Equal(t, "alice", arts[0].Author)
		assert.Equal(t, second, arts[1].ID)
		assert.Equal(t, "bob", arts[1].Author)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, s.UpdateArticle(ctx, first, "Hello!", "World!", alice))

		art, err := s.Article(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "Hello!", art.Title)
		assert.Equal(t, "World!", art.Body)
		assert.Equal(t, alice, art.AuthorID)

		err = s.UpdateArticle(ctx, 9999, "a", "b", alice)
		assert.ErrorIs(t, err, storage.ErrArticleNotFound)
	})

	t.Run("comments", func(t *testing.T) {
		cid, err := s.SaveComment(ctx, first, bob, "Nice!", time.Now())
		require.NoError(t, err)
		_, err = s.SaveComment(ctx, second, alice, "Other", time.Now())
		require.NoError(t, err)

		comments, err := s.CommentsByArticle(ctx, first)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, cid, comments[0].ID)
		assert.Equal(t, "bob", comments[0].Author)
		assert.Equal(t, first, comments[0].ArticleID)

		_, err = s.SaveComment(ctx, 9999, bob, "orphan", time.Now())
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		require.NoError(t, s.UpdateComment(ctx, cid, first, alice, "Edited"))
		c, err := s.Comment(ctx, cid)
		require.NoError(t, err)
		assert.Equal(t, "Edited", c.Body)
		assert.Equal(t, "alice", c.Author)

		all, err := s.Comments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("remove cascades to comments", func(t *testing.T) {
		require.NoError(t, s.RemoveArticle(ctx, first))

		_, err := s.Article(ctx, first)
		assert.ErrorIs(t, err, storage.ErrArticleNotFound)

		comments, err := s.CommentsByArticle(ctx, first)
		require.NoError(t, err)
		assert.Empty(t, comments)

		err = s.RemoveArticle(ctx, first)
		assert.ErrorIs(t, err, storage.ErrArticleNotFound)
	})

	t.Run("remove comment", func(t *testing.T) {
		comments, err := s.CommentsByArticle(ctx, second)
		require.NoError(t, err)
		require.Len(t, comments, 1)

		require.NoError(t, s.RemoveComment(ctx, comments[0].ID))
		_, err = s.Comment(ctx, comments[0].ID)
		assert.ErrorIs(t, err, storage.ErrCommentNotFound)
	})
}

func TestChangeArticle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	alice, err := s.SaveUser(ctx, "alice", []byte("hash"), false)
	require.NoError(t, err)
	id, err := s.SaveArticle(ctx, alice, "Hello", "World", time.Now())
	require.NoError(t, err)
	keep, err := s.SaveComment(ctx, id, alice, "keep", time.Now())
	require.NoError(t, err)
	drop, err := s.SaveComment(ctx, id, alice, "drop", time.Now())
	require.NoError(t, err)

	t.Run("rolls back on failure", func(t *testing.T) {
		err := s.ChangeArticle(ctx, id, "Changed", "World", alice, []storage.CommentChange{
			{ID: keep, AuthorID: alice, Body: "edited"},
			{ID: 9999, Delete: true},
		})
		assert.ErrorIs(t, err, storage.ErrCommentNotFound)

		art, err := s.Article(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Hello", art.Title)

		c, err := s.Comment(ctx, keep)
		require.NoError(t, err)
		assert.Equal(t, "keep", c.Body)
	})

	t.Run("applies every change", func(t *testing.T) {
		err := s.ChangeArticle(ctx, id, "Changed", "World", alice, []storage.CommentChange{
			{ID: keep, AuthorID: alice, Body: "edited"},
			{ID: drop, Delete: true},
			{AuthorID: alice, Body: "new", PublishDate: time.Now()},
		})
		require.NoError(t, err)

		art, err := s.Article(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Changed", art.Title)

		comments, err := s.CommentsByArticle(ctx, id)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "edited", comments[0].Body)
		assert.Equal(t, "new", comments[1].Body)
	})
}
