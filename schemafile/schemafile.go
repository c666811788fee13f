// Package schemafile reads option schemas for package cmdline from TOML
// or YAML files.
//
// Both formats describe a list named "options". In TOML:
//
//	[[options]]
//	prefix = "--"
//	name = "output"
//	short_prefix = "-"
//	short_name = "o"
//	args = 1
//
// and in YAML:
//
//	options:
//	  - prefix: "--"
//	    name: output
//	    short_prefix: "-"
//	    short_name: o
//	    args: 1
package schemafile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/janert/cmdline"
	"gopkg.in/yaml.v3"
)

type file struct {
	Options []entry `toml:"options" yaml:"options"`
}

type entry struct {
	Prefix      string `toml:"prefix" yaml:"prefix"`
	Name        string `toml:"name" yaml:"name"`
	ShortPrefix string `toml:"short_prefix" yaml:"short_prefix"`
	ShortName   string `toml:"short_name" yaml:"short_name"`
	Args        int    `toml:"args" yaml:"args"`
}

// Load reads the schema in the file at path. The format is chosen by the
// file extension: ".toml", ".yaml", or ".yml".
func Load(path string) ([]cmdline.Option, error) {
	var decode func(io.Reader) ([]cmdline.Option, error)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		decode = DecodeTOML
	case ".yaml", ".yml":
		decode = DecodeYAML
	default:
		return nil, fmt.Errorf("%s: unsupported schema format %q", path, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// DecodeTOML reads a TOML schema from r.
func DecodeTOML(r io.Reader) ([]cmdline.Option, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}
	return f.options()
}

// DecodeYAML reads a YAML schema from r.
func DecodeYAML(r io.Reader) ([]cmdline.Option, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return f.options()
}

func (f file) options() ([]cmdline.Option, error) {
	out := make([]cmdline.Option, 0, len(f.Options))
	for i, e := range f.Options {
		o := cmdline.NewPrefixedOption(e.Prefix, e.Name,
			e.ShortPrefix, e.ShortName, e.Args)
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}
