package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilgore5/slate/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Store:       "example.myshopify.com",
		Password:    config.Secret("shppa_test"),
		ThemeID:     "123456",
		Environment: "development",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(testConfig(), WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestFetchMainThemeID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/themes.json", r.URL.Path)
		assert.Equal(t, "shppa_test", r.Header.Get("X-Shopify-Access-Token"))

		user, _, ok := r.BasicAuth()
		assert.True(t, ok, "basic-auth field must be present")
		assert.Equal(t, "slate", user)

		w.Write([]byte(`{"themes":[{"id":1,"role":"unpublished"},{"id":2,"role":"main"}]}`))
	})

	id, err := client.FetchMainThemeID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestFetchMainThemeIDFirstMatchWins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"themes":[{"id":7,"role":"main"},{"id":8,"role":"main"}]}`))
	})

	id, err := client.FetchMainThemeID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestFetchMainThemeIDNoMainTheme(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"themes":[{"id":1,"role":"unpublished"}]}`))
	})

	_, err := client.FetchMainThemeID(context.Background())
	require.ErrorIs(t, err, ErrNoMainTheme)
}

func TestFetchMainThemeIDAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":"invalid token"}`))
	})

	_, err := client.FetchMainThemeID(context.Background())
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.Contains(t, err.Error(), "invalid token")
}

func TestFetchMainThemeIDMalformedThemes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"themes not a list", `{"themes":"not-an-array"}`},
		{"themes missing", `{}`},
		{"themes null", `{"themes":null}`},
		{"body not JSON", `<html>502 Bad Gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchMainThemeID(context.Background())
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestParseMainThemeIDErrorsFieldWinsOverThemes(t *testing.T) {
	_, err := parseMainThemeID([]byte(`{"errors":{"base":["bad"]},"themes":[{"id":2,"role":"main"}]}`))
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
}
