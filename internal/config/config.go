// Package config loads bread.toml project settings.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml"

	"bread/internal/exec"
	"bread/internal/ir"
)

// FileName is the name of the project configuration file
const FileName = "bread.toml"

// Output formats
const (
	FormatIR   = "ir"
	FormatLLVM = "llvm"
)

// Config is the full set of project settings
type Config struct {
	Lowering Lowering `toml:"lowering"`
	Output   Output   `toml:"output"`
	Exec     Exec     `toml:"exec"`

	// Path is the file the config was loaded from, empty for defaults
	Path string `toml:"-"`
}

// Lowering controls the AST to IR pass
type Lowering struct {
	DuplicateFunctions string `toml:"duplicate-functions"`
	Verify             bool   `toml:"verify"`
}

// Output controls what the CLI prints
type Output struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// Exec controls the interpreter
type Exec struct {
	Entry        string `toml:"entry"`
	MaxCallDepth int    `toml:"max-call-depth"`
}

// known lists every accepted key per table
var known = map[string][]string{
	"lowering": {"duplicate-functions", "verify"},
	"output":   {"format", "color"},
	"exec":     {"entry", "max-call-depth"},
}

// Default returns the settings used when no bread.toml exists
func Default() *Config {
	return &Config{
		Lowering: Lowering{DuplicateFunctions: ir.DuplicateError.String(), Verify: true},
		Output:   Output{Format: FormatIR, Color: true},
		Exec:     Exec{Entry: "main", MaxCallDepth: exec.DefaultMaxCallDepth},
	}
}

// Load reads and validates the config file at path
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse reads config text. Keys that are missing keep their defaults.
func Parse(buff []byte) (*Config, error) {
	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(tree); err != nil {
		return nil, err
	}

	cfg := Default()
	if cfg.Lowering.DuplicateFunctions, err = getString(tree, "lowering.duplicate-functions", cfg.Lowering.DuplicateFunctions); err != nil {
		return nil, err
	}
	if cfg.Lowering.Verify, err = getBool(tree, "lowering.verify", cfg.Lowering.Verify); err != nil {
		return nil, err
	}
	if cfg.Output.Format, err = getString(tree, "output.format", cfg.Output.Format); err != nil {
		return nil, err
	}
	if cfg.Output.Color, err = getBool(tree, "output.color", cfg.Output.Color); err != nil {
		return nil, err
	}
	if cfg.Exec.Entry, err = getString(tree, "exec.entry", cfg.Exec.Entry); err != nil {
		return nil, err
	}
	if cfg.Exec.MaxCallDepth, err = getInt(tree, "exec.max-call-depth", cfg.Exec.MaxCallDepth); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find looks for bread.toml in dir and its parents
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadNearest loads the closest bread.toml above dir, or the defaults
func LoadNearest(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects values no component can use
func (c *Config) Validate() error {
	if _, ok := ir.ParseDuplicatePolicy(c.Lowering.DuplicateFunctions); !ok {
		return fmt.Errorf("lowering.duplicate-functions: unknown policy %q (want \"error\" or \"replace\")", c.Lowering.DuplicateFunctions)
	}
	if c.Output.Format != FormatIR && c.Output.Format != FormatLLVM {
		return fmt.Errorf("output.format: unknown format %q (want %q or %q)", c.Output.Format, FormatIR, FormatLLVM)
	}
	if c.Exec.Entry == "" {
		return fmt.Errorf("exec.entry: must not be empty")
	}
	if c.Exec.MaxCallDepth <= 0 {
		return fmt.Errorf("exec.max-call-depth: must be positive, got %d", c.Exec.MaxCallDepth)
	}
	return nil
}

// LoweringOptions converts the [lowering] table for the IR builder
func (c *Config) LoweringOptions() ir.Options {
	policy, _ := ir.ParseDuplicatePolicy(c.Lowering.DuplicateFunctions)
	return ir.Options{Duplicates: policy, Verify: c.Lowering.Verify}
}

// ExecOptions converts the [exec] table for the interpreter
func (c *Config) ExecOptions() exec.Options {
	return exec.Options{MaxCallDepth: c.Exec.MaxCallDepth}
}

// Write encodes the config as TOML
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func checkKeys(tree *toml.Tree) error {
	for _, table := range tree.Keys() {
		keys, ok := known[table]
		if !ok {
			return fmt.Errorf("unknown table [%s]", table)
		}
		sub, ok := tree.Get(table).(*toml.Tree)
		if !ok {
			return fmt.Errorf("%s: expected a table", table)
		}
		for _, key := range sub.Keys() {
			if !slices.Contains(keys, key) {
				return fmt.Errorf("unknown key %s.%s", table, key)
			}
		}
	}
	return nil
}

func getString(tree *toml.Tree, key, def string) (string, error) {
	switch v := tree.GetDefault(key, def).(type) {
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s: expected a string, got %T", key, v)
	}
}

func getBool(tree *toml.Tree, key string, def bool) (bool, error) {
	switch v := tree.GetDefault(key, def).(type) {
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("%s: expected a boolean, got %T", key, v)
	}
}

func getInt(tree *toml.Tree, key string, def int) (int, error) {
	switch v := tree.GetDefault(key, int64(def)).(type) {
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: expected an integer, got %T", key, v)
	}
}
