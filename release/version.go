package release

import "fmt"

// These variables are set at buildtime with -ldflags "-X ...".
var CommitHash = ""
var BuildTime = ""

// Version returns the dot version, with the commit and build time when they were set.
func Version() string {
	if CommitHash != "" && BuildTime != "" {
		return fmt.Sprintf(`%s %s (Built at %s)`, DotVersion, CommitHash, BuildTime)
	}

	return DotVersion
}
