package release

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-github/v41/github"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suborbital/necrosis/util"
)

type fakeFetcher struct {
	tag   string
	err   error
	calls int
}

func (f *fakeFetcher) GetLatestRelease(context.Context, string, string) (*github.RepositoryRelease, *github.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}

	return &github.RepositoryRelease{TagName: github.String(f.tag)}, nil, nil
}

func useFakes(t *testing.T, f *fakeFetcher, current string) {
	t.Helper()

	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Setenv("HOME", cache)

	prevFetcher, prevVersion := fetcher, DotVersion
	fetcher, DotVersion = f, current

	t.Cleanup(func() {
		fetcher, DotVersion = prevFetcher, prevVersion
	})
}

func TestVersion(t *testing.T) {
	prevCommit, prevTime := CommitHash, BuildTime
	t.Cleanup(func() { CommitHash, BuildTime = prevCommit, prevTime })

	CommitHash, BuildTime = "", ""
	assert.Equal(t, DotVersion, Version())

	CommitHash, BuildTime = "abc1234", "2024-01-01T00:00:00Z"
	assert.Equal(t, DotVersion+" abc1234 (Built at 2024-01-01T00:00:00Z)", Version())
}

func TestCheckForLatestVersion(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		fetchErr error
		want     string
		wantErr  assert.ErrorAssertionFunc
	}{
		{
			name:    "newer release available",
			current: "0.3.0",
			latest:  "v0.4.1",
			want:    "An upgrade for necrosis is available: 0.3.0 → 0.4.1. See https://github.com/suborbital/necrosis/releases for details.",
			wantErr: assert.NoError,
		},
		{
			name:    "already on the latest release",
			current: "0.4.1",
			latest:  "v0.4.1",
			want:    "",
			wantErr: assert.NoError,
		},
		{
			name:    "ahead of the latest release",
			current: "0.5.0",
			latest:  "v0.4.1",
			want:    "",
			wantErr: assert.NoError,
		},
		{
			name:    "unparseable release tag",
			current: "0.3.0",
			latest:  "nightly",
			want:    "",
			wantErr: assert.Error,
		},
		{
			name:     "github unreachable",
			current:  "0.3.0",
			fetchErr: errors.New("dial tcp: no route to host"),
			want:     "",
			wantErr:  assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{tag: tt.latest, err: tt.fetchErr}
			useFakes(t, f, tt.current)

			got, err := CheckForLatestVersion(context.Background())

			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckForLatestVersion_UsesCache(t *testing.T) {
	f := &fakeFetcher{tag: "v9.0.0"}
	useFakes(t, f, "0.3.0")

	first, err := CheckForLatestVersion(context.Background())
	require.NoError(t, err)

	second, err := CheckForLatestVersion(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.calls, "the second check must be served from cache")
}

func TestGetLatestReleaseCache_Expired(t *testing.T) {
	f := &fakeFetcher{tag: "v9.0.0"}
	useFakes(t, f, "0.3.0")

	past := time.Now().UTC().Add(-2 * checkInterval)
	require.NoError(t, cacheLatestRelease(&github.RepositoryRelease{TagName: github.String("v1.0.0")}, past))

	cached, err := getLatestReleaseCache(time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, cached, "a stale cache must not be used")
}

func TestGetTimestampCache_Corrupt(t *testing.T) {
	useFakes(t, &fakeFetcher{}, "0.3.0")

	require.NoError(t, cacheTimestamp(time.Now()))

	dir, err := util.CacheDir(cacheSubdir)
	require.NoError(t, err)

	cachePath := filepath.Join(dir, lastCheckedFilename)
	require.NoError(t, os.WriteFile(cachePath, []byte("yesterday-ish"), 0644))

	_, err = getTimestampCache()
	assert.Error(t, err)

	_, statErr := os.Stat(cachePath)
	assert.True(t, os.IsNotExist(statErr), "a corrupt timestamp is removed")
}
