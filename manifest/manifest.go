// Package manifest loads flag definitions from YAML or TOML files and turns
// them into parsers.
//
// A manifest in YAML:
//
//	program: backup
//	flags:
//	  - long: --target
//	    short: -t
//	    description: destination directory
//	    required: true
//	    value: {name: DIR, needed: true}
//	  - long: --compress
//	    value: {name: LEVEL, default: "6"}
//
// The same in TOML:
//
//	program = "backup"
//
//	[[flags]]
//	long = "--target"
//	short = "-t"
//	description = "destination directory"
//	required = true
//	value = { name = "DIR", needed = true }
//
//	[[flags]]
//	long = "--compress"
//	value = { name = "LEVEL", default = "6" }
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/jpvetterli/argparse"
)

// Format is the encoding of a manifest.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned by Load for a file name without a known
// extension.
var ErrUnknownFormat = errors.New("unknown manifest format")

// DefaultProgram is the program name used when a manifest has none.
const DefaultProgram = "program"

// Manifest is a set of flag definitions with an optional syntax.
type Manifest struct {
	Program string      `yaml:"program" toml:"program"`
	Syntax  *SyntaxSpec `yaml:"syntax"  toml:"syntax"`
	Flags   []FlagSpec  `yaml:"flags"   toml:"flags"`
}

// SyntaxSpec overrides the default syntax. Empty fields keep their default.
// Terminator "none" disables the terminator.
type SyntaxSpec struct {
	Long       string `yaml:"long"       toml:"long"`
	Short      string `yaml:"short"      toml:"short"`
	Separator  string `yaml:"separator"  toml:"separator"`
	Terminator string `yaml:"terminator" toml:"terminator"`
}

// FlagSpec is the serialized form of argparse.Flag.
type FlagSpec struct {
	Long        string     `yaml:"long"        toml:"long"`
	Short       string     `yaml:"short"       toml:"short"`
	Description string     `yaml:"description" toml:"description"`
	Required    bool       `yaml:"required"    toml:"required"`
	Value       *ValueSpec `yaml:"value"       toml:"value"`
}

// ValueSpec is the serialized form of argparse.ValueSpec.
type ValueSpec struct {
	Name    string `yaml:"name"    toml:"name"`
	Default string `yaml:"default" toml:"default"`
	Needed  bool   `yaml:"needed"  toml:"needed"`
}

// FormatOf returns the format corresponding to the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf(`%w: "%s"`, ErrUnknownFormat, path)
}

// Load reads the manifest in path. The format depends on the extension:
// ".yaml" or ".yml" for YAML, ".toml" for TOML.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads a manifest from r. Unknown fields are errors.
func Decode(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&m)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown field %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return &m, nil
}

// ProgramName returns the program name of the manifest, or DefaultProgram.
func (m *Manifest) ProgramName() string {
	if len(m.Program) == 0 {
		return DefaultProgram
	}
	return m.Program
}

// Definitions returns the flag definitions of the manifest.
func (m *Manifest) Definitions() []argparse.Flag {
	flags := make([]argparse.Flag, len(m.Flags))
	for i, fs := range m.Flags {
		flags[i] = fs.Flag()
	}
	return flags
}

// Flag converts the specification into a flag definition.
func (fs FlagSpec) Flag() argparse.Flag {
	var opts []argparse.Option
	if fs.Value != nil {
		opts = append(opts, argparse.WithValue(argparse.ValueSpec{
			Name:    fs.Value.Name,
			Default: fs.Value.Default,
			Needed:  fs.Value.Needed,
		}))
	}
	if fs.Required {
		opts = append(opts, argparse.AsRequired())
	}
	return argparse.NewFlag(fs.Long, fs.Short, fs.Description, opts...)
}

// Parser returns a parser with the syntax and the flags of the manifest. All
// definition errors are reported, joined.
func (m *Manifest) Parser() (*argparse.Parser, error) {
	syntax, err := m.syntax()
	if err != nil {
		return nil, err
	}
	a := argparse.CustomParser(syntax)

	var errs []error
	for i, f := range m.Definitions() {
		if err := a.Add(f); err != nil {
			errs = append(errs, fmt.Errorf("flag %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return a, nil
}

// syntax builds the syntax of the manifest. NewSyntax panics on invalid
// markers; the panic is turned into an error since manifests are input.
func (m *Manifest) syntax() (s *argparse.Syntax, err error) {
	def := argparse.DefaultSyntax()
	if m.Syntax == nil {
		return def, nil
	}
	long := orDefault(m.Syntax.Long, def.LongPrefix())
	short := orDefault(m.Syntax.Short, def.ShortPrefix())
	terminator := orDefault(m.Syntax.Terminator, def.Terminator())
	if terminator == "none" {
		terminator = ""
	}
	separator := def.Separator()
	if len(m.Syntax.Separator) > 0 {
		r, size := utf8.DecodeRuneInString(m.Syntax.Separator)
		if size != len(m.Syntax.Separator) {
			return nil, fmt.Errorf(`separator "%s" is not a single character`, m.Syntax.Separator)
		}
		separator = r
	}

	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("invalid syntax: %v", r)
		}
	}()
	return argparse.NewSyntax(long, short, separator, terminator), nil
}

func orDefault(s, def string) string {
	if len(s) == 0 {
		return def
	}
	return s
}
