package release

// DotVersion is the dot version of necrosis.
var DotVersion = "0.3.0"

// Repository coordinates used by the latest release check.
const (
	RepoOwner = "suborbital"
	RepoName  = "necrosis"
)
