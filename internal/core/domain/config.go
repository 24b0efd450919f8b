package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// ConfigFileName is the config file picked up from the working directory when present.
	ConfigFileName = "prerender.yaml"

	// DefaultEntryDocument is the per-directory source document.
	DefaultEntryDocument = "index.xml"

	// DefaultOutputDocument is the per-directory result document.
	DefaultOutputDocument = "index.html"

	// DefaultCacheDir is the cache directory relative to the output directory.
	// The build tree above the output directory survives output cleans.
	DefaultCacheDir = ".."

	// DefaultArtifactFile is the name of the cached compiled stylesheet.
	DefaultArtifactFile = ".sef-cache.json"

	// DefaultHashFile is the name of the cached stylesheet fingerprint.
	DefaultHashFile = ".sef-cache.hash"

	// DefaultLockFile is the name of the lock guarding the cache files.
	DefaultLockFile = ".sef-cache.lock"

	// DefaultToolPath is prepended to PATH so a locally installed xslt3 wins.
	DefaultToolPath = "node_modules/.bin"
)

// Placeholders substituted in compiler and transformer argv.
const (
	PlaceholderStylesheet = "{stylesheet}"
	PlaceholderExport     = "{export}"
	PlaceholderArtifact   = "{artifact}"
	PlaceholderSource     = "{source}"
)

// DefaultStylesheets returns the stylesheet sources in fingerprint order.
// The first entry is the one handed to the compiler.
func DefaultStylesheets() []string {
	return []string{"default.xsl", "core.xsl", "metadata.xsl", "links.xsl", "tree.xsl"}
}

// DefaultCompilerCmd returns the argv used to compile the entry stylesheet.
func DefaultCompilerCmd() []string {
	return []string{"xslt3", "-xsl:" + PlaceholderStylesheet, "-export:" + PlaceholderExport, "-nogo"}
}

// DefaultTransformerCmd returns the argv used to apply the compiled stylesheet to a document.
func DefaultTransformerCmd() []string {
	return []string{"xslt3", "-xsl:" + PlaceholderArtifact, "-s:" + PlaceholderSource}
}

// Config holds the resolved settings for a run.
type Config struct {
	// Stylesheets lists the stylesheet sources, relative to the output directory.
	Stylesheets []string
	// EntryDocument is the file name that marks a directory as eligible.
	EntryDocument string
	// OutputDocument is the file name written next to the entry document.
	OutputDocument string
	// CacheDir holds the cache files. Relative paths resolve against the output directory.
	CacheDir string
	// ArtifactFile and HashFile name the two cache files inside CacheDir.
	ArtifactFile string
	HashFile     string
	// CompilerCmd and TransformerCmd are argv templates.
	CompilerCmd    []string
	TransformerCmd []string
	// Path entries are prepended to PATH for both commands.
	// Relative entries resolve against BaseDir, or CacheDir when BaseDir is empty.
	Path []string
	// Environment overrides process environment variables for both commands.
	Environment map[string]string
	// Jobs limits concurrent transforms. Zero runs every document at once.
	Jobs int
	// SkipUnchanged leaves output files alone when their content would not change.
	SkipUnchanged bool
	// BaseDir is the directory of the config file, empty when running on defaults.
	BaseDir string
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Stylesheets:    DefaultStylesheets(),
		EntryDocument:  DefaultEntryDocument,
		OutputDocument: DefaultOutputDocument,
		CacheDir:       DefaultCacheDir,
		ArtifactFile:   DefaultArtifactFile,
		HashFile:       DefaultHashFile,
		CompilerCmd:    DefaultCompilerCmd(),
		TransformerCmd: DefaultTransformerCmd(),
		Path:           []string{DefaultToolPath},
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if len(c.Stylesheets) == 0 {
		return zerr.Wrap(ErrNoStylesheets, "invalid configuration")
	}
	if len(c.CompilerCmd) == 0 || c.CompilerCmd[0] == "" {
		return zerr.With(zerr.Wrap(ErrEmptyCommand, "invalid compiler command"), "command", "compiler")
	}
	if len(c.TransformerCmd) == 0 || c.TransformerCmd[0] == "" {
		return zerr.With(zerr.Wrap(ErrEmptyCommand, "invalid transformer command"), "command", "transformer")
	}
	for _, name := range []string{c.EntryDocument, c.OutputDocument, c.ArtifactFile, c.HashFile} {
		if !isPlainFileName(name) {
			return zerr.With(zerr.Wrap(ErrInvalidDocumentName, "invalid configuration"), "name", name)
		}
	}
	if c.Jobs < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidJobs, "invalid configuration"), "jobs", c.Jobs)
	}
	return nil
}

func isPlainFileName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`) &&
		filepath.Base(name) == name
}

// ExpandArgs substitutes placeholders in argv.
// Unknown placeholders are left as they are.
func ExpandArgs(argv []string, vars map[string]string) []string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = r.Replace(arg)
	}
	return out
}
