package library

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcatch/podcatch/pkg/fs"
)

func testStorage(t *testing.T) *fs.Local {
	t.Helper()

	stor, err := fs.NewLocal(t.TempDir())
	require.NoError(t, err)
	return stor
}

func TestScanner_Downloaded(t *testing.T) {
	ctx := context.Background()
	stor := testStorage(t)

	for _, name := range []string{"Episode One.mp3", "Episode Two.m4a", "Show Notes.ogg"} {
		_, err := stor.Create(ctx, "Go Time", name, bytes.NewBufferString("x"))
		require.NoError(t, err)
	}

	downloaded, err := NewScanner(stor).Downloaded(ctx, "Go Time")
	assert.NoError(t, err)

	assert.Len(t, downloaded, 3)
	assert.Contains(t, downloaded, "Episode One")
	assert.Contains(t, downloaded, "Episode Two")
	assert.Contains(t, downloaded, "Show Notes")
}

func TestScanner_DownloadedMissingDir(t *testing.T) {
	stor := testStorage(t)

	downloaded, err := NewScanner(stor).Downloaded(context.Background(), "Never Subscribed")
	assert.NoError(t, err)
	assert.Empty(t, downloaded)
}
