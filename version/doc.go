// Package version exposes build metadata embedded at link time:
//
//	go build -ldflags "-X github.com/kbukum/servicekit/version.Version=1.0.0"
//
// Binaries built without ldflags fall back to the Go VCS build info.
package version
