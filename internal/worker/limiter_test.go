package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestLimiter_Defaults(t *testing.T) {
	l := NewLimiter(10, -1)
	assert.Equal(t, 1, l.burst)

	unlimited := NewLimiter(0, 1)
	assert.Equal(t, rate.Inf, unlimited.rate)
	for i := 0; i < 5; i++ {
		assert.True(t, unlimited.Allow("https://example.org"))
	}
}

func TestLimiter_PerHost(t *testing.T) {
	l := NewLimiter(1, 1)
	require.NoError(t, l.Wait(context.Background(), "https://en.wikipedia.org/wiki/A"))

	assert.False(t, l.Allow("https://en.wikipedia.org/wiki/B"), "token for this host is spent")
	assert.True(t, l.Allow("https://example.org/"), "other hosts are independent")
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)
	require.True(t, l.Allow("https://example.org"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "https://example.org"))
}

func TestLimiter_SetCrawlDelay(t *testing.T) {
	l := NewLimiter(100, 5)
	require.NoError(t, l.SetCrawlDelay("https://slow.example/", 2*time.Second))

	lim := l.get("slow.example")
	assert.Equal(t, rate.Every(2*time.Second), lim.Limit())
	assert.Equal(t, 1, lim.Burst())

	// A looser delay never speeds a host up
	require.NoError(t, l.SetCrawlDelay("https://slow.example/", time.Millisecond))
	assert.Equal(t, rate.Every(2*time.Second), lim.Limit())

	require.NoError(t, l.SetCrawlDelay("https://slow.example/", 0))
	assert.Error(t, l.SetCrawlDelay("://bad", time.Second))
}
