package cmdline

import (
	"fmt"
	"strings"
)

// Option describes one recognizable command-line option: its name, an
// optional short name, and the fixed number of tokens it consumes as
// arguments. Both names may carry a prefix (such as "--" or "-") that is
// kept apart from the bare name; options without a prefix simply leave
// it empty.
//
// Options are plain values. They are never modified by the parser.
type Option struct {
	Prefix      string
	Name        string
	ShortPrefix string
	ShortName   string
	ArgCount    int
}

// NewOption returns an option without prefixes. The name and short name
// are matched verbatim against the command-line tokens, so they should
// include any leading dashes. The short name may be empty.
func NewOption(name, shortName string, argCount int) Option {
	return Option{Name: name, ShortName: shortName, ArgCount: argCount}
}

// NewPrefixedOption returns an option whose names are composed of a
// prefix and a bare name, eg NewPrefixedOption("--", "out", "-", "o", 1)
// matches both "--out" and "-o".
func NewPrefixedOption(prefix, name, shortPrefix, shortName string,
	argCount int) Option {
	return Option{
		Prefix:      prefix,
		Name:        name,
		ShortPrefix: shortPrefix,
		ShortName:   shortName,
		ArgCount:    argCount,
	}
}

// Flag returns an option that takes no arguments and has no short name.
func Flag(name string) Option {
	return Option{Name: name}
}

// RealName returns the full name of the option, prefix included.
func (o Option) RealName() string {
	return o.Prefix + o.Name
}

// RealShortName returns the full short name of the option, prefix
// included. Empty if the option has no short name, even if it has a
// short prefix: a bare prefix such as "-" is not a name.
func (o Option) RealShortName() string {
	if o.ShortName == "" {
		return ""
	}
	return o.ShortPrefix + o.ShortName
}

// Matches reports whether token equals the real name or the real short
// name of the option. An empty short name matches nothing.
func (o Option) Matches(token string) bool {
	if token == "" {
		return false
	}
	return token == o.RealName() || token == o.RealShortName()
}

// Validate returns a SchemaError if the option cannot be matched (empty
// name) or declares a negative number of arguments.
func (o Option) Validate() error {
	switch {
	case o.RealName() == "":
		return &SchemaError{Option: o, Reason: "empty name"}
	case o.ArgCount < 0:
		return &SchemaError{Option: o,
			Reason: fmt.Sprintf("negative argument count %d", o.ArgCount)}
	case strings.ContainsAny(o.RealName()+o.RealShortName(), " \t\n"):
		// Tokens never contain whitespace after the shell split them
		return &SchemaError{Option: o, Reason: "name contains whitespace"}
	}
	return nil
}

// String returns the real name, followed by the real short name (if
// any), separated by "|".
func (o Option) String() string {
	if short := o.RealShortName(); short != "" {
		return o.RealName() + "|" + short
	}
	return o.RealName()
}

// -----

// findOption returns the index of the first option in schema that
// matches token, or -1. Schema order is the tie-break when several
// options match.
func findOption(token string, schema []Option) int {
	for i, o := range schema {
		if o.Matches(token) {
			return i
		}
	}
	return -1
}

// validateSchema checks every option on its own, then, unless
// allowShared is set, checks that no real name or short name is used
// twice across the schema.
func validateSchema(schema []Option, allowShared bool) error {
	seen := map[string]Option{}

	for _, o := range schema {
		if err := o.Validate(); err != nil {
			return err
		}
		if allowShared {
			continue
		}

		names := []string{o.RealName()}
		if short := o.RealShortName(); short != "" && short != o.RealName() {
			names = append(names, short)
		}

		for _, n := range names {
			if prev, ok := seen[n]; ok {
				return &SchemaError{Option: o,
					Reason: fmt.Sprintf("name %s already used by %s", n, prev)}
			}
			seen[n] = o
		}
	}

	return nil
}
