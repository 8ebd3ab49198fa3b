package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleOwnedBy(t *testing.T) {
	art := &Article{ID: 1, AuthorID: 7}

	assert.True(t, art.OwnedBy(7))
	assert.False(t, art.OwnedBy(8))
	assert.False(t, art.OwnedBy(0))

	var missing *Article
	assert.False(t, missing.OwnedBy(7))
}
