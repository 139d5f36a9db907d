package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("ETag", `"abc"`)
		_, _ = w.Write([]byte("<html>" + strings.Repeat("x", 100) + "</html>"))
	}))
	defer srv.Close()

	f, err := NewFetcher(5*time.Second, "TestAgent/1.0", 20, "", "")
	require.NoError(t, err)

	res, err := f.Fetch(context.Background(), srv.URL+"/wiki/Some_Page")
	require.NoError(t, err)
	assert.Len(t, res.HTML, 20, "body is cut at maxBytes")
	assert.Equal(t, 200, res.Meta.StatusCode)
	assert.Equal(t, `"abc"`, res.Meta.ETag)
	assert.Equal(t, "text/html; charset=utf-8", res.Meta.ContentType)
	assert.Equal(t, "Some Page", res.Subject)
}

func TestFetcher_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/wiki/New_Page", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/wiki/New_Page", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f, err := NewFetcher(5*time.Second, "t", 1024, "", "")
	require.NoError(t, err)

	res, err := f.Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/wiki/New_Page", res.FinalURL)
	assert.Equal(t, "New Page", res.Subject)
}

func TestFetcher_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f, err := NewFetcher(5*time.Second, "t", 1024, "", "")
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f, err := NewFetcher(5*time.Second, "t", 1024, "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestExtractSubject(t *testing.T) {
	tests := map[string]string{
		"https://en.wikipedia.org/wiki/List_of_prime_ministers_of_Australia": "List of prime ministers of Australia",
		"https://en.wikipedia.org/":                                          "en.wikipedia.org",
		"https://example.org/people/famous-people.html":                      "famous people",
		"https://en.wikipedia.org/wiki/Andr%C3%A9_Smith":                     "André Smith",
	}
	for in, want := range tests {
		assert.Equal(t, want, extractSubject(in), in)
	}
}
