package form

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `form:"id"`
	Body string `form:"body" validate:"required,max=5"`
}

type sample struct {
	Title string `form:"title" validate:"required,max=10"`
	Rows  []row  `form:"rows" validate:"dive"`
}

func (s *sample) Clean() {
	s.Title = strings.TrimSpace(s.Title)
}

func post(vals url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	var s sample
	err := Decode(post(url.Values{
		"title":       {"Hello"},
		"author":      {"42"},
		"rows.0.id":   {"7"},
		"rows.0.body": {"hi"},
	}), &s)
	require.NoError(t, err)

	assert.Equal(t, "Hello", s.Title)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, int64(7), s.Rows[0].ID)
	assert.Equal(t, "hi", s.Rows[0].Body)
}

func TestDecodeMalformed(t *testing.T) {
	var s sample
	err := Decode(post(url.Values{"rows.0.id": {"seven"}}), &s)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want Errors
	}{
		{
			name: "valid",
			in:   sample{Title: "Hello"},
			want: Errors{},
		},
		{
			name: "blank after trim",
			in:   sample{Title: "   "},
			want: Errors{"title": "This field is required."},
		},
		{
			name: "too long",
			in:   sample{Title: "01234567890"},
			want: Errors{"title": "Ensure this value has at most 10 characters."},
		},
		{
			name: "nested row",
			in:   sample{Title: "ok", Rows: []row{{ID: 1, Body: "fine"}, {ID: 2, Body: "too long"}}},
			want: Errors{"rows.1.body": "Ensure this value has at most 5 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(&tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestErrorsKeepFirstMessage(t *testing.T) {
	errs := Errors{}
	errs.Add("title", "first")
	errs.Add("title", "second")

	assert.Equal(t, "first", errs.Get("title"))
	assert.Empty(t, errs.Get("body"))
}
