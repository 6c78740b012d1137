package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podcatch/podcatch/pkg/model"
)

func TestParseEpisodeNumbers(t *testing.T) {
	numbers, err := parseEpisodeNumbers("1")
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, numbers)

	numbers, err = parseEpisodeNumbers("3, 1,8")
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 1, 8}, numbers)

	_, err = parseEpisodeNumbers("1,x,,4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `invalid episode number "x"`)
	assert.Contains(t, err.Error(), `invalid episode number ""`)
}

func TestResolveFeedURL(t *testing.T) {
	subs := []model.Subscription{
		{Title: "Go Time", URL: "http://feeds.test/gotime", NumEpisodes: 2},
	}

	url, err := resolveFeedURL(subs, "Go Time")
	assert.NoError(t, err)
	assert.Equal(t, "http://feeds.test/gotime", url)

	url, err = resolveFeedURL(subs, "https://feeds.test/other")
	assert.NoError(t, err)
	assert.Equal(t, "https://feeds.test/other", url)

	_, err = resolveFeedURL(subs, "Unknown Show")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
