// internal/version/version.go
package version

// Version is stamped into --version output and usage headers.
// Release builds override it via -ldflags "-X circanno/internal/version.Version=...".
var Version = "dev"
