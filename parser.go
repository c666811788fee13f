package cmdline

import (
	"os"
	"slices"

	"go.uber.org/zap"
)

// Entry pairs a recognized option with the argument tokens captured
// after it.
type Entry struct {
	Option Option
	Args   []string
}

// Parser holds the result of scanning a command line against a schema.
// It is built by Parse and never modified afterwards; all its methods
// are safe for concurrent use.
type Parser struct {
	entries      []Entry
	unrecognized []string
}

// scanState is the accumulator of the single pass over the tokens. It
// is local to Parse; only the final entries and unrecognized tokens are
// kept in the Parser.
type scanState struct {
	cfg    config
	schema []Option

	entries      []Entry
	unrecognized []string

	slot  map[int]int // schema index -> index into entries
	first map[int]int // schema index -> token position of first occurrence
}

// Parse takes a slice of tokens, as found in os.Args, and a schema of
// options, and scans the tokens once, left to right. The first token is
// the program name and is skipped.
//
// A token that matches an option in the schema (by real name or real
// short name) is followed by up to Option.ArgCount argument tokens. The
// arguments are taken greedily, but collection stops early at the end
// of the input or at a token that matches an option in the schema; that
// token is not consumed, and is processed as an option in its own right.
// Tokens that match no option are ignored, and can be retrieved with
// Unrecognized().
//
// Returns a SchemaError if the schema is malformed, or a
// DuplicateOptionError if an option occurs twice and the duplicate
// policy is RejectDuplicates (the default).
func Parse(args []string, schema []Option, opts ...ParserOption) (*Parser, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateSchema(schema, cfg.allowShared); err != nil {
		return nil, err
	}

	s := &scanState{
		cfg:    cfg,
		schema: schema,
		slot:   map[int]int{},
		first:  map[int]int{},
	}

	for i := 1; i < len(args); i++ {
		idx := findOption(args[i], schema)

		// Not an option: remember, and move on
		if idx < 0 {
			cfg.logger.Debug("ignoring token",
				zap.Int("pos", i), zap.String("token", args[i]))
			s.unrecognized = append(s.unrecognized, args[i])
			continue
		}

		values := s.collect(args, i, schema[idx])

		if err := s.record(idx, i, args[i], values); err != nil {
			return nil, err
		}

		// Skip over the consumed arguments
		i += len(values)
	}

	return &Parser{entries: s.entries, unrecognized: s.unrecognized}, nil
}

// FromCommandLine scans the command-line arguments of the running
// program (os.Args) against the schema. See Parse.
func FromCommandLine(schema []Option, opts ...ParserOption) (*Parser, error) {
	return Parse(os.Args, schema, opts...)
}

// Collect returns the arguments for option o, found at position pos:
// at most o.ArgCount tokens following pos, stopping before the first
// token that is itself an option.
func (s *scanState) collect(args []string, pos int, o Option) []string {
	// Compare before adding: ArgCount may be as large as math.MaxInt
	end := len(args)
	if o.ArgCount < end-pos-1 {
		end = pos + 1 + o.ArgCount
	}

	values := []string{}
	for j := pos + 1; j < end; j++ {
		if findOption(args[j], s.schema) >= 0 {
			s.cfg.logger.Debug("argument collection stopped by option",
				zap.String("option", args[pos]), zap.String("stop", args[j]),
				zap.Int("want", o.ArgCount), zap.Int("got", len(values)))
			break
		}
		values = append(values, args[j])
	}

	s.cfg.logger.Debug("matched option",
		zap.Int("pos", pos), zap.String("token", args[pos]),
		zap.Strings("args", values))

	return values
}

// Record adds the values for the option with schema index idx, found at
// token position pos, to the entries, applying the duplicate policy if
// the option has been seen before.
func (s *scanState) record(idx, pos int, token string, values []string) error {
	slot, seen := s.slot[idx]
	if !seen {
		s.slot[idx] = len(s.entries)
		s.first[idx] = pos
		s.entries = append(s.entries, Entry{Option: s.schema[idx], Args: values})
		return nil
	}

	s.cfg.logger.Debug("repeated option",
		zap.String("token", token), zap.Int("first", s.first[idx]),
		zap.Int("pos", pos), zap.Stringer("policy", s.cfg.duplicates))

	switch s.cfg.duplicates {
	case KeepFirst:
		// Discard

	case KeepLast:
		s.entries[slot].Args = values

	case Accumulate:
		s.entries[slot].Args = append(s.entries[slot].Args, values...)

	default:
		return &DuplicateOptionError{
			Option: s.schema[idx],
			Token:  token,
			First:  s.first[idx],
			Second: pos,
		}
	}

	return nil
}

// -----

// find returns the entry whose option matches name, by real name or
// real short name.
func (p *Parser) find(name string) (Entry, bool) {
	for _, e := range p.entries {
		if e.Option.Matches(name) {
			return e, true
		}
	}
	return Entry{}, false
}

// HasOption reports whether the option with the given real name or real
// short name was present on the command line.
func (p *Parser) HasOption(name string) bool {
	_, ok := p.find(name)
	return ok
}

// Arguments returns the arguments captured for the option with the
// given real name or real short name. The slice is empty (not nil) if
// the option was present without arguments.
// Returns a NotFoundError if the option was not present.
func (p *Parser) Arguments(name string) ([]string, error) {
	e, ok := p.find(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return slices.Clone(e.Args), nil
}

// ArgumentSize returns the number of arguments captured for the option
// with the given real name or real short name.
// Returns a NotFoundError if the option was not present.
func (p *Parser) ArgumentSize(name string) (int, error) {
	e, ok := p.find(name)
	if !ok {
		return 0, &NotFoundError{Name: name}
	}
	return len(e.Args), nil
}

// Entries returns all parsed entries, in the order in which their
// options first occurred on the command line.
func (p *Parser) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		out[i] = Entry{Option: e.Option, Args: slices.Clone(e.Args)}
	}
	return out
}

// Unrecognized returns the tokens (after the program name) that were
// neither an option nor an option argument, in order.
func (p *Parser) Unrecognized() []string {
	return slices.Clone(p.unrecognized)
}

// Len returns the number of distinct options found.
func (p *Parser) Len() int {
	return len(p.entries)
}
