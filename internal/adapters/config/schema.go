package config

// Prerenderfile represents the structure of the prerender.yaml configuration file.
// Omitted fields keep their defaults.
type Prerenderfile struct {
	Stylesheets    []string          `yaml:"stylesheets"`
	EntryDocument  string            `yaml:"entry_document"`
	OutputDocument string            `yaml:"output_document"`
	CacheDir       string            `yaml:"cache_dir"`
	Cache          CacheDTO          `yaml:"cache"`
	Compiler       CommandDTO        `yaml:"compiler"`
	Transformer    CommandDTO        `yaml:"transformer"`
	Path           []string          `yaml:"path"`
	Environment    map[string]string `yaml:"environment"`
	Jobs           *int              `yaml:"jobs"`
	SkipUnchanged  *bool             `yaml:"skip_unchanged"`
}

// CacheDTO names the cache files inside the cache directory.
type CacheDTO struct {
	Artifact string `yaml:"artifact"`
	Hash     string `yaml:"hash"`
}

// CommandDTO is an argv template for an external tool.
type CommandDTO struct {
	Cmd []string `yaml:"cmd"`
}
