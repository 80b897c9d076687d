package download

import "errors"

// Typed failures shared by the downloader and the version resolvers. Callers
// translate these into user-facing messages; anything else that comes out of
// this package is a plain transport or filesystem error.
var (
	// ErrVersionNotFound covers both a version missing from an upstream
	// catalog and an artifact URL answering 404.
	ErrVersionNotFound = errors.New("version not found")

	// ErrNoBuildsAvailable means the upstream lists the version but has no
	// builds for it.
	ErrNoBuildsAvailable = errors.New("no builds available")

	// ErrUnsupportedKind means no resolver exists for the requested kind.
	ErrUnsupportedKind = errors.New("unsupported server type")

	// ErrDestinationNotFound means the destination's parent directory does
	// not exist. Checked before any network traffic.
	ErrDestinationNotFound = errors.New("destination directory not found")
)
