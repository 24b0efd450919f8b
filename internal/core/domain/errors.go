package domain

import "go.trai.ch/zerr"

var (
	// ErrCompileFailed is returned when the external stylesheet compiler fails.
	ErrCompileFailed = zerr.New("failed to compile stylesheet")

	// ErrTransformFailed is returned when a document transform fails.
	ErrTransformFailed = zerr.New("failed to transform document")

	// ErrNoStylesheets is returned when the configuration lists no stylesheet sources.
	ErrNoStylesheets = zerr.New("no stylesheet sources configured")

	// ErrEmptyCommand is returned when a compiler or transformer command has no executable.
	ErrEmptyCommand = zerr.New("command is empty")

	// ErrInvalidDocumentName is returned when an entry or output document name is not a plain file name.
	ErrInvalidDocumentName = zerr.New("document name must be a plain file name")

	// ErrInvalidJobs is returned when the concurrency limit is negative.
	ErrInvalidJobs = zerr.New("jobs must not be negative")

	// ErrOutputDirNotFound is returned when the output directory does not exist.
	ErrOutputDirNotFound = zerr.New("output directory not found")

	// ErrOutputDirNotDirectory is returned when the output path is not a directory.
	ErrOutputDirNotDirectory = zerr.New("output path is not a directory")

	// ErrFailedToGetOutputDir is returned when the output directory cannot be made absolute.
	ErrFailedToGetOutputDir = zerr.New("failed to get absolute path of output directory")

	// ErrDiscoveryFailed is returned when the output directory cannot be scanned for documents.
	ErrDiscoveryFailed = zerr.New("failed to discover documents")

	// ErrFingerprintFailed is returned when a stylesheet source cannot be read for fingerprinting.
	ErrFingerprintFailed = zerr.New("failed to compute stylesheet fingerprint")

	// ErrStoreReadFailed is returned when the cached artifact or fingerprint cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stylesheet cache")

	// ErrStoreWriteFailed is returned when the cached artifact or fingerprint cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write stylesheet cache")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create stylesheet cache directory")

	// ErrLockFailed is returned when the cache lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to lock stylesheet cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrFileWriteFailed is returned when an output or working file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrFileRemoveFailed is returned when a working file cannot be removed.
	ErrFileRemoveFailed = zerr.New("failed to remove file")
)
