package release

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/go-github/v41/github"
	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"

	"github.com/suborbital/necrosis/util"
)

const (
	cacheSubdir           = "release"
	lastCheckedFilename   = "last_checked"
	latestReleaseFilename = "latest_release"
	checkInterval         = time.Hour
)

// releaseFetcher is the part of the GitHub client the check needs.
type releaseFetcher interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

var fetcher releaseFetcher = github.NewClient(nil).Repositories

func getTimestampCache() (time.Time, error) {
	cachePath, err := util.CacheDir(cacheSubdir)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to CacheDir")
	}

	filePath := filepath.Join(cachePath, lastCheckedFilename)

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return time.Time{}, nil
	} else if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to ReadFile")
	}

	cachedTimestamp, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		if errRemove := os.Remove(filePath); errRemove != nil {
			return time.Time{}, errors.Wrap(err, "failed to Remove bad cached timestamp")
		}

		return time.Time{}, errors.Wrap(err, "failed to parse cached timestamp")
	}

	return cachedTimestamp, nil
}

func cacheTimestamp(timestamp time.Time) error {
	cachePath, err := util.CacheDir(cacheSubdir)
	if err != nil {
		return errors.Wrap(err, "failed to CacheDir")
	}

	filePath := filepath.Join(cachePath, lastCheckedFilename)
	if err := os.WriteFile(filePath, []byte(timestamp.Format(time.RFC3339)), util.PermFile); err != nil {
		return errors.Wrap(err, "failed to WriteFile")
	}

	return nil
}

// getLatestReleaseCache returns the cached release, or nil when the cache is
// missing or older than checkInterval.
func getLatestReleaseCache(now time.Time) (*github.RepositoryRelease, error) {
	cachedTimestamp, err := getTimestampCache()
	if err != nil {
		return nil, errors.Wrap(err, "failed to getTimestampCache")
	}

	if cachedTimestamp.IsZero() || now.After(cachedTimestamp.Add(checkInterval)) {
		return nil, nil
	}

	cachePath, err := util.CacheDir(cacheSubdir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to CacheDir")
	}

	filePath := filepath.Join(cachePath, latestReleaseFilename)

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to ReadFile")
	}

	var latestRepoRelease *github.RepositoryRelease
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&latestRepoRelease); err != nil {
		if errRemove := os.Remove(filePath); errRemove != nil {
			return nil, errors.Wrap(err, "failed to Remove bad cached RepositoryRelease")
		}

		return nil, errors.Wrap(err, "failed to Decode cached RepositoryRelease")
	}

	return latestRepoRelease, nil
}

func cacheLatestRelease(latestRepoRelease *github.RepositoryRelease, now time.Time) error {
	cachePath, err := util.CacheDir(cacheSubdir)
	if err != nil {
		return errors.Wrap(err, "failed to CacheDir")
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(latestRepoRelease); err != nil {
		return errors.Wrap(err, "failed to Encode RepositoryRelease")
	}

	if err := os.WriteFile(filepath.Join(cachePath, latestReleaseFilename), buffer.Bytes(), util.PermFile); err != nil {
		return errors.Wrap(err, "failed to WriteFile")
	}

	return cacheTimestamp(now)
}

func getLatestVersion(ctx context.Context) (*version.Version, error) {
	now := time.Now().UTC()

	latestRepoRelease, err := getLatestReleaseCache(now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to getLatestReleaseCache")
	}

	if latestRepoRelease == nil {
		latestRepoRelease, _, err = fetcher.GetLatestRelease(ctx, RepoOwner, RepoName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch latest necrosis release")
		}

		if err := cacheLatestRelease(latestRepoRelease, now); err != nil {
			return nil, errors.Wrap(err, "failed to cacheLatestRelease")
		}
	}

	latestVersion, err := version.NewVersion(latestRepoRelease.GetTagName())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse latest necrosis version")
	}

	return latestVersion, nil
}

// CheckForLatestVersion returns an upgrade notice when DotVersion is older than the latest GitHub release, and an
// empty string when it is current. Release lookups are cached for an hour.
func CheckForLatestVersion(ctx context.Context) (string, error) {
	latestVersion, err := getLatestVersion(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to getLatestVersion")
	}

	currentVersion, err := version.NewVersion(DotVersion)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse current necrosis version")
	}

	if currentVersion.LessThan(latestVersion) {
		return fmt.Sprintf("An upgrade for necrosis is available: %s → %s. "+
			"See https://github.com/%s/%s/releases for details.",
			currentVersion, latestVersion, RepoOwner, RepoName), nil
	}

	return "", nil
}
