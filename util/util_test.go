package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendlyLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	prev := SetOutput(buf)
	t.Cleanup(func() { SetOutput(prev) })

	LogStart("generating features")
	LogDone("generated 4 flags")
	LogFail("no manifest")
	LogWarn("stale cache")
	LogInfo("necrosis v0.3.0")

	assert.Equal(t, "⏩ START: generating features\n✅ DONE: generated 4 flags\n🚫 FAILED: no manifest\n⚠️ WARNING: stale cache\nℹ️ necrosis v0.3.0\n", buf.String())
}

func TestCacheDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	t.Setenv("HOME", base)

	got, err := CacheDir("release")
	require.NoError(t, err)

	info, err := os.Stat(got)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, CacheBaseDir, filepath.Base(filepath.Dir(got)))
	assert.Equal(t, "release", filepath.Base(got))

	// a second call finds the existing directory
	again, err := CacheDir("release")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
