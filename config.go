package cmdline

import (
	"fmt"

	"go.uber.org/zap"
)

// DuplicatePolicy selects what Parse does when an option occurs more than
// once on the command line. The long and the short name of an option
// count as the same option.
type DuplicatePolicy int

const (
	// RejectDuplicates makes Parse fail with a DuplicateOptionError.
	RejectDuplicates DuplicatePolicy = iota

	// KeepFirst retains the arguments of the first occurrence. Later
	// occurrences still consume their arguments, which are discarded.
	KeepFirst

	// KeepLast retains the arguments of the last occurrence. The entry
	// keeps the position of the first occurrence in Entries().
	KeepLast

	// Accumulate appends the arguments of every occurrence to a single
	// entry.
	Accumulate
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case KeepFirst:
		return "keep-first"
	case KeepLast:
		return "keep-last"
	case Accumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParsePolicy converts the output of DuplicatePolicy.String() back into
// a policy.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	for p := RejectDuplicates; p <= Accumulate; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown duplicate policy: %s", s)
}

// -----

type config struct {
	duplicates  DuplicatePolicy
	allowShared bool
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		duplicates: RejectDuplicates,
		logger:     zap.NewNop(),
	}
}

// ParserOption configures Parse.
type ParserOption func(*config)

// WithDuplicatePolicy sets the policy for repeated options. The default
// is RejectDuplicates.
func WithDuplicatePolicy(p DuplicatePolicy) ParserOption {
	return func(c *config) {
		c.duplicates = p
	}
}

// WithLogger makes Parse log the progress of the scan at debug level.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) ParserOption {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// AllowSharedNames permits several options in the schema to share a
// name or short name. A token then matches the first such option in
// schema order; the others can never be matched by that name.
//
// Repeats are detected per schema option, not per name. Two options that
// share a name are distinct, so the result may hold two entries with the
// same name; queries by that name return the entry found first on the
// command line.
func AllowSharedNames() ParserOption {
	return func(c *config) {
		c.allowShared = true
	}
}
