package matrix

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// BunchFile is one declarative YAML bunch-file: a named set of test bunches
// plus the optional id naming, identity keys, defaults and stage list that go
// with it. Omitted sections fall back to the conventional defaults, so a
// minimal file only needs a name and its bunches.
//
// A loaded BunchFile implements ParameterSource and can back a Helper
// directly.
type BunchFile struct {
	// Name identifies the suite the file parametrizes.
	Name string `yaml:"name"`
	// Description provides a human-readable summary.
	Description string `yaml:"description,omitempty"`
	// Bunches is the ordered list of declarative test bunches.
	Bunches []TestBunch `yaml:"bunches"`
	// Naming overrides the id naming map when present.
	Naming []IDNamingEntry `yaml:"id_naming,omitempty"`
	// IdentityKeys overrides the case identity keys when present.
	IdentityKeys []string `yaml:"identity_keys,omitempty"`
	// Defaults overrides the default parameter values when present.
	Defaults map[string]interface{} `yaml:"defaults,omitempty"`
	// Stages is the ordered stage list used when expanding the file from
	// the CLI, where no real case class is linked in.
	Stages []string `yaml:"stages,omitempty"`
}

func (f *BunchFile) TestBunches() []TestBunch { return f.Bunches }

func (f *BunchFile) IDNaming() []IDNamingEntry {
	if len(f.Naming) == 0 {
		return DefaultIDNaming()
	}
	return f.Naming
}

func (f *BunchFile) CaseIdentityKeys() []string {
	if len(f.IdentityKeys) == 0 {
		return DefaultIdentityKeys()
	}
	return f.IdentityKeys
}

func (f *BunchFile) DefaultValues() map[string]interface{} {
	if f.Defaults == nil {
		return DefaultValues()
	}
	return f.Defaults
}

// StageList returns the file's declared stages, or the conventional
// train/eval/export triple when the file does not declare any.
func (f *BunchFile) StageList() []string {
	if len(f.Stages) == 0 {
		return []string{"train", "eval", "export"}
	}
	return f.Stages
}

// BunchLoader loads bunch files from disk.
type BunchLoader struct {
	debug  bool
	logger Logger
}

// NewBunchLoader creates a loader writing status output to stdout.
func NewBunchLoader(debug bool) *BunchLoader {
	return &BunchLoader{
		debug:  debug,
		logger: NewStdoutLogger(false, debug),
	}
}

// NewBunchLoaderWithLogger creates a loader with a custom logger.
func NewBunchLoaderWithLogger(debug bool, logger Logger) *BunchLoader {
	return &BunchLoader{
		debug:  debug,
		logger: logger,
	}
}

// Load loads bunch files from the given path. A directory is walked
// recursively for YAML files; a plain file is loaded on its own.
func (l *BunchLoader) Load(configPath string) ([]*BunchFile, error) {
	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("bunch file path does not exist: %s", configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat bunch file path: %w", err)
	}

	var files []*BunchFile
	if info.IsDir() {
		files, err = l.loadFromDirectory(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load bunch files from directory: %w", err)
		}
	} else {
		file, err := l.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if l.debug {
		l.logger.Debug("📋 Loaded %d bunch files from %s\n", len(files), configPath)
		for _, f := range files {
			l.logger.Debug("  • %s - %d bunches\n", f.Name, len(f.Bunches))
		}
	}

	return files, nil
}

// loadFromDirectory loads every YAML bunch file below dirPath.
func (l *BunchLoader) loadFromDirectory(dirPath string) ([]*BunchFile, error) {
	var files []*BunchFile

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		if l.debug {
			l.logger.Debug("📄 Loading bunch file: %s\n", path)
		}

		file, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// LoadFile loads and validates a single bunch file.
func (l *BunchLoader) LoadFile(filePath string) (*BunchFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	var file BunchFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", filePath, err)
	}

	if err := validateBunchFile(&file); err != nil {
		return nil, fmt.Errorf("invalid bunch file %s: %w", filePath, err)
	}

	return &file, nil
}

// validateBunchFile checks the fields the loader itself is responsible for.
// Structural id-naming and identity-key invariants are enforced again by
// Helper construction; the checks here give file-level error context.
func validateBunchFile(file *BunchFile) error {
	if file.Name == "" {
		return fmt.Errorf("bunch file name is required")
	}

	if len(file.Bunches) == 0 {
		return fmt.Errorf("bunch file must declare at least one bunch")
	}

	for i, bunch := range file.Bunches {
		if bunch == nil {
			return fmt.Errorf("bunch %d: must be a mapping", i+1)
		}
		if _, ok := bunch[KeyModelName]; !ok {
			return fmt.Errorf("bunch %d: model_name is required", i+1)
		}
		if _, ok := bunch[KeyDatasetName]; !ok {
			return fmt.Errorf("bunch %d: dataset_name is required", i+1)
		}
	}

	for i, stage := range file.Stages {
		if stage == "" {
			return fmt.Errorf("stage %d: name must not be empty", i+1)
		}
	}

	return nil
}

// FilterByUsecase returns the files that declare at least one bunch with the
// given usecase tag. An empty filter keeps every file.
func FilterByUsecase(files []*BunchFile, usecase string) []*BunchFile {
	if usecase == "" {
		return files
	}

	var filtered []*BunchFile
	for _, file := range files {
		for _, bunch := range file.Bunches {
			if uc, _ := bunch[KeyUsecase].(string); uc == usecase {
				filtered = append(filtered, file)
				break
			}
		}
	}
	return filtered
}

// isYAMLFile checks if a file has a YAML extension.
func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
