package admin_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/lib/logger/slogdiscard"
	"newspaper/internal/service/admin"
	"newspaper/internal/storage/sqlite"
)

func setup(t *testing.T) (*admin.Service, *sqlite.Storage) {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return admin.New(slogdiscard.NewDiscardLogger(), st), st
}

func TestArticleWithInlineComments(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()

	alice, err := st.SaveUser(ctx, "alice", []byte("x"), true)
	require.NoError(t, err)
	bob, err := st.SaveUser(ctx, "bob", []byte("x"), false)
	require.NoError(t, err)

	id, err := svc.CreateArticle(ctx, alice, "Hello", "World")
	require.NoError(t, err)

	other, err := svc.CreateArticle(ctx, bob, "Other", "Post")
	require.NoError(t, err)

	keep, err := st.SaveComment(ctx, id, bob, "keep me", time.Now())
	require.NoError(t, err)
	drop, err := st.SaveComment(ctx, id, bob, "drop me", time.Now())
	require.NoError(t, err)
	foreign, err := st.SaveComment(ctx, other, alice, "not yours", time.Now())
	require.NoError(t, err)

	err = svc.UpdateArticle(ctx, id, bob, "Hello!", "World!", []admin.InlineComment{
		{ID: keep, Body: "kept"},
		{ID: drop, Body: "drop me", Delete: true},
		{ID: foreign, Body: "hijacked"},
		{Body: "added inline"},
		{Body: ""},
	}, alice)
	require.NoError(t, err)

	art, err := svc.Article(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", art.Title)
	assert.Equal(t, bob, art.AuthorID)
	require.Len(t, art.Comments, 2)
	assert.Equal(t, "kept", art.Comments[0].Body)
	assert.Equal(t, bob, art.Comments[0].AuthorID)
	assert.Equal(t, "added inline", art.Comments[1].Body)
	assert.Equal(t, alice, art.Comments[1].AuthorID)

	c, err := svc.Comment(ctx, foreign)
	require.NoError(t, err)
	assert.Equal(t, "not yours", c.Body)
	assert.Equal(t, other, c.ArticleID)

	require.NoError(t, svc.RemoveArticle(ctx, id))
	_, err = svc.Article(ctx, id)
	assert.ErrorIs(t, err, admin.ErrNotFound)
}

func TestUpdateArticleIsAllOrNothing(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()

	alice, err := st.SaveUser(ctx, "alice", []byte("x"), true)
	require.NoError(t, err)

	id, err := svc.CreateArticle(ctx, alice, "Hello", "World")
	require.NoError(t, err)
	keep, err := st.SaveComment(ctx, id, alice, "first", time.Now())
	require.NoError(t, err)

	// The new row is written by an editor that does not exist, after the
	// existing row was already changed.
	err = svc.UpdateArticle(ctx, id, alice, "Changed", "World", []admin.InlineComment{
		{ID: keep, Body: "edited"},
		{Body: "by nobody"},
	}, 999)
	assert.ErrorIs(t, err, admin.ErrInvalidReference)

	art, err := svc.Article(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hello", art.Title)
	require.Len(t, art.Comments, 1)
	assert.Equal(t, "first", art.Comments[0].Body)
}

func TestCommentCRUD(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()

	alice, err := st.SaveUser(ctx, "alice", []byte("x"), true)
	require.NoError(t, err)
	art, err := svc.CreateArticle(ctx, alice, "Hello", "World")
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, art+1, alice, "orphan")
	assert.ErrorIs(t, err, admin.ErrInvalidReference)

	id, err := svc.CreateComment(ctx, art, alice, "first")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateComment(ctx, id, art, alice, "edited"))

	comments, err := svc.Comments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "edited", comments[0].String())

	require.NoError(t, svc.RemoveComment(ctx, id))
	assert.ErrorIs(t, svc.RemoveComment(ctx, id), admin.ErrNotFound)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
