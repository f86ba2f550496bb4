// Package version identifies the build that scored a run. The variables are
// set at link time with -ldflags "-X".
package version

var (
	// Version is the release version.
	Version = "dev"
	// GitSHA is the git commit SHA.
	GitSHA = "unknown"
)

// String returns "Version (GitSHA)".
func String() string {
	return Version + " (" + GitSHA + ")"
}
