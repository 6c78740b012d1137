package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Go Time</title>
    <link>https://example.com/gotime</link>
    <item>
      <title>Episode Two</title>
      <enclosure url="https://example.com/ep2.mp3" type="audio/mpeg" length="100"/>
    </item>
    <item>
      <title>Episode One</title>
      <enclosure url="https://example.com/ep1.m4a" type="audio/mp4" length="100"/>
    </item>
    <item>
      <title>No Enclosure</title>
    </item>
  </channel>
</rss>`

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	podcast, err := NewClient().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Go Time", podcast.Title)
	require.Len(t, podcast.Episodes, 3)

	assert.Equal(t, "Episode Two", podcast.Episodes[0].Title)
	assert.Equal(t, "https://example.com/ep2.mp3", podcast.Episodes[0].EnclosureURL)
	assert.Equal(t, "audio/mpeg", podcast.Episodes[0].MIMEType)

	assert.Equal(t, "Episode One", podcast.Episodes[1].Title)
	assert.Equal(t, "audio/mp4", podcast.Episodes[1].MIMEType)

	assert.Equal(t, "No Enclosure", podcast.Episodes[2].Title)
	assert.Empty(t, podcast.Episodes[2].EnclosureURL)
	assert.Empty(t, podcast.Episodes[2].MIMEType)
}

func TestClient_FetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestClient_FetchBadContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	_, err := NewClient().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
