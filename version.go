package vault

// version is the release of this module. Builds that are not tagged carry a
// suffix.
const version = "v0.1.0-dev"

// GitCommit is set at build time with
//   -ldflags "-X github.com/iov-one/vault.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release, followed by the commit it was built from when
// known.
func Version() string {
	if GitCommit == "" {
		return version
	}
	return version + " " + GitCommit
}
