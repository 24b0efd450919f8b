package domain

import (
	"path/filepath"
	"strings"
)

const (
	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	transientPrefix = ".tmp-"
	activePrefix    = ".active-"
	artifactSuffix  = ".sef.json"
)

// Layout holds every path a run touches, derived from the output directory and the config.
// All paths are absolute.
type Layout struct {
	OutputDir string
	CacheDir  string

	ArtifactPath string
	HashPath     string
	LockPath     string

	// TransientPath receives the compiler export before it is read into memory.
	TransientPath string
	// ActivePath holds the artifact while the batch transform runs.
	ActivePath string

	Stylesheets    []string
	EntryDocument  string
	OutputDocument string

	Tools Toolchain
}

// Toolchain describes how the external compiler and transform engine are invoked.
type Toolchain struct {
	CompilerCmd    []string
	TransformerCmd []string
	// Path entries are absolute and prepended to PATH.
	Path        []string
	Environment map[string]string
}

// NewLayout resolves the layout for outputDir, which must be absolute.
func NewLayout(outputDir string, cfg *Config) Layout {
	outputDir = filepath.Clean(outputDir)

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = DefaultCacheDir
	}
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(outputDir, cacheDir)
	}

	base := cfg.BaseDir
	if base == "" {
		base = cacheDir
	}
	toolPath := make([]string, 0, len(cfg.Path))
	for _, p := range cfg.Path {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		toolPath = append(toolPath, p)
	}

	stem := stylesheetStem(cfg.Stylesheets)

	return Layout{
		OutputDir:      outputDir,
		CacheDir:       cacheDir,
		ArtifactPath:   filepath.Join(cacheDir, cfg.ArtifactFile),
		HashPath:       filepath.Join(cacheDir, cfg.HashFile),
		LockPath:       filepath.Join(cacheDir, DefaultLockFile),
		TransientPath:  filepath.Join(outputDir, transientPrefix+stem+artifactSuffix),
		ActivePath:     filepath.Join(outputDir, activePrefix+stem+artifactSuffix),
		Stylesheets:    cfg.Stylesheets,
		EntryDocument:  cfg.EntryDocument,
		OutputDocument: cfg.OutputDocument,
		Tools: Toolchain{
			CompilerCmd:    cfg.CompilerCmd,
			TransformerCmd: cfg.TransformerCmd,
			Path:           toolPath,
			Environment:    cfg.Environment,
		},
	}
}

// EntryStylesheet returns the stylesheet handed to the compiler, relative to OutputDir.
func (l Layout) EntryStylesheet() string {
	if len(l.Stylesheets) == 0 {
		return ""
	}
	return l.Stylesheets[0]
}

// Document returns the document rooted at the named child directory of OutputDir.
func (l Layout) Document(name string) Document {
	dir := filepath.Join(l.OutputDir, name)
	return Document{
		Name:       name,
		SourcePath: filepath.Join(dir, l.EntryDocument),
		OutputPath: filepath.Join(dir, l.OutputDocument),
	}
}

func stylesheetStem(stylesheets []string) string {
	if len(stylesheets) == 0 {
		return "stylesheet"
	}
	base := filepath.Base(stylesheets[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}
