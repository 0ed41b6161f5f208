// Package version holds build-time version information.
package version

// Version is the application version. Overridden at build time with
// -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "1.0.0"

// APIVersion is the version reported by the API root endpoint.
const APIVersion = "1.0"
