package cmdline

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	optA       = NewOption("--a", "", 2)
	optB       = NewOption("--b", "", 0)
	optVerbose = NewOption("--verbose", "-v", 0)
	optOut     = NewOption("--out", "-o", 1)

	optRest    = NewOption("--rest", "", math.MaxInt)

	testSchema = []Option{optA, optB, optVerbose, optOut, optRest}
)

// entry is short-hand for building expected entries
func entry(o Option, args ...string) Entry {
	return Entry{Option: o, Args: args}
}

func Test_ParseScan(t *testing.T) {
	tests := []struct {
		text  string
		args  []string
		want  []Entry
		unrec []string
	}{
		{"empty", []string{"prog"}, nil, nil},
		{"no program name", []string{}, nil, nil},
		{"program name skipped", []string{"--a", "x"}, nil, []string{"x"}},
		{"early stop",
			[]string{"prog", "--a", "x", "--b"},
			[]Entry{entry(optA, "x"), entry(optB)}, nil},
		{"end of input",
			[]string{"prog", "--a", "x"},
			[]Entry{entry(optA, "x")}, nil},
		{"full window",
			[]string{"prog", "--a", "x", "y", "z"},
			[]Entry{entry(optA, "x", "y")}, []string{"z"}},
		{"unrecognized tolerated",
			[]string{"prog", "pos1", "--b", "pos2"},
			[]Entry{entry(optB)}, []string{"pos1", "pos2"}},
		{"short names",
			[]string{"prog", "-v", "-o", "f"},
			[]Entry{entry(optVerbose), entry(optOut, "f")}, nil},
		{"option stops option",
			[]string{"prog", "--out", "--a", "1", "2", "3"},
			[]Entry{entry(optOut), entry(optA, "1", "2")}, []string{"3"}},
		{"unknown dashes are not options",
			[]string{"prog", "--c", "--out", "--c"},
			[]Entry{entry(optOut, "--c")}, []string{"--c"}},
		{"unbounded count takes the rest",
			[]string{"prog", "--rest", "a", "b"},
			[]Entry{entry(optRest, "a", "b")}, nil},
		{"unbounded count stops at option",
			[]string{"prog", "x", "--rest", "a", "-v", "b"},
			[]Entry{entry(optRest, "a"), entry(optVerbose)}, []string{"x", "b"}},
		{"unbounded count at end of input",
			[]string{"prog", "--rest"},
			[]Entry{entry(optRest)}, nil},
		{"empty token",
			[]string{"prog", "", "--out", ""},
			[]Entry{entry(optOut, "")}, []string{""}},
	}

	for _, test := range tests {
		p, err := Parse(test.args, testSchema)
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.text, err)
			continue
		}

		if diff := cmp.Diff(test.want, p.Entries(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s: entries mismatch (-want +got):\n%s", test.text, diff)
		}
		if diff := cmp.Diff(test.unrec, p.Unrecognized(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%s: unrecognized mismatch (-want +got):\n%s", test.text, diff)
		}
		if p.Len() != len(test.want) {
			t.Errorf("%s: Len() = %d, want %d", test.text, p.Len(), len(test.want))
		}
	}
}

func Test_Queries(t *testing.T) {
	p, err := Parse([]string{"prog", "-v", "--a", "x", "--out", "f"}, testSchema)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	tests := []struct {
		name string
		has  bool
		args []string
	}{
		{"--verbose", true, []string{}},
		{"-v", true, []string{}},
		{"--a", true, []string{"x"}},
		{"--out", true, []string{"f"}},
		{"-o", true, []string{"f"}},
		{"--b", false, nil},
		{"--z", false, nil},
		{"", false, nil},
		{"x", false, nil},
	}

	// Twice: queries must not change anything
	for round := 0; round < 2; round++ {
		for _, test := range tests {
			if got := p.HasOption(test.name); got != test.has {
				t.Errorf("HasOption(%q) = %v, want %v", test.name, got, test.has)
			}

			args, err := p.Arguments(test.name)
			size, serr := p.ArgumentSize(test.name)

			if !test.has {
				var nf *NotFoundError
				if !errors.As(err, &nf) || nf.Name != test.name {
					t.Errorf("Arguments(%q): got error %v, want NotFoundError", test.name, err)
				}
				if !errors.Is(serr, ErrNotFound) {
					t.Errorf("ArgumentSize(%q): got error %v, want ErrNotFound", test.name, serr)
				}
				continue
			}

			if err != nil || serr != nil {
				t.Errorf("%q: unexpected errors %v, %v", test.name, err, serr)
				continue
			}
			if diff := cmp.Diff(test.args, args); diff != "" {
				t.Errorf("Arguments(%q) mismatch (-want +got):\n%s", test.name, diff)
			}
			if size != len(test.args) {
				t.Errorf("ArgumentSize(%q) = %d, want %d", test.name, size, len(test.args))
			}
		}
	}
}

func Test_NotFoundMessage(t *testing.T) {
	p, _ := Parse([]string{"prog"}, testSchema)

	_, err := p.Arguments("--z")
	if err == nil || err.Error() != "option not found: --z" {
		t.Errorf("got %v", err)
	}
}

func Test_ResultsAreCopies(t *testing.T) {
	p, err := Parse([]string{"prog", "--a", "x", "y", "pos"}, testSchema)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	args, _ := p.Arguments("--a")
	args[0] = "changed"

	entries := p.Entries()
	entries[0].Args[1] = "changed"

	unrec := p.Unrecognized()
	unrec[0] = "changed"

	got, _ := p.Arguments("--a")
	if diff := cmp.Diff([]string{"x", "y"}, got); diff != "" {
		t.Errorf("arguments modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pos"}, p.Unrecognized()); diff != "" {
		t.Errorf("unrecognized modified (-want +got):\n%s", diff)
	}
}

func Test_DuplicatePolicies(t *testing.T) {
	args := []string{"prog", "--a", "x", "--b", "--a", "y"}

	tests := []struct {
		policy DuplicatePolicy
		want   []Entry
	}{
		{KeepFirst, []Entry{entry(optA, "x"), entry(optB)}},
		{KeepLast, []Entry{entry(optA, "y"), entry(optB)}},
		{Accumulate, []Entry{entry(optA, "x", "y"), entry(optB)}},
	}

	for _, test := range tests {
		p, err := Parse(args, testSchema, WithDuplicatePolicy(test.policy))
		if err != nil {
			t.Errorf("%v: unexpected error %v", test.policy, err)
			continue
		}
		if diff := cmp.Diff(test.want, p.Entries(), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("%v: entries mismatch (-want +got):\n%s", test.policy, diff)
		}
	}
}

func Test_DuplicateRejected(t *testing.T) {
	tests := []struct {
		args          []string
		token         string
		first, second int
	}{
		{[]string{"prog", "--a", "x", "--a", "y"}, "--a", 1, 3},
		{[]string{"prog", "--verbose", "pos", "-v"}, "-v", 1, 3},
		{[]string{"prog", "-o", "f", "-o"}, "-o", 1, 3},
	}

	for _, test := range tests {
		// Default policy, and explicitly requested
		for _, opts := range [][]ParserOption{nil, {WithDuplicatePolicy(RejectDuplicates)}} {
			p, err := Parse(test.args, testSchema, opts...)
			if p != nil {
				t.Errorf("%v: expected nil parser", test.args)
			}

			var dup *DuplicateOptionError
			if !errors.As(err, &dup) {
				t.Errorf("%v: got error %v, want DuplicateOptionError", test.args, err)
				continue
			}
			if !errors.Is(err, ErrDuplicateOption) {
				t.Errorf("%v: error does not match ErrDuplicateOption", test.args)
			}
			if dup.Token != test.token || dup.First != test.first || dup.Second != test.second {
				t.Errorf("%v: got %+v", test.args, dup)
			}
		}
	}
}

func Test_SchemaValidation(t *testing.T) {
	tests := []struct {
		text   string
		schema []Option
		shared bool
		ok     bool
	}{
		{"empty schema", nil, false, true},
		{"valid", testSchema, false, true},
		{"negative count", []Option{NewOption("--a", "", -1)}, false, false},
		{"empty name", []Option{NewOption("", "-a", 0)}, false, false},
		{"empty prefixed name", []Option{NewPrefixedOption("", "", "-", "a", 0)}, false, false},
		{"whitespace", []Option{Flag("--a b")}, false, false},
		{"same name", []Option{Flag("--a"), Flag("--a")}, false, false},
		{"name is short name",
			[]Option{NewOption("--a", "-a", 0), NewOption("-a", "", 0)}, false, false},
		{"same short name",
			[]Option{NewOption("--x", "-x", 0), NewOption("--y", "-x", 0)}, false, false},
		{"same short name allowed",
			[]Option{NewOption("--x", "-x", 0), NewOption("--y", "-x", 0)}, true, true},
		{"negative count still rejected",
			[]Option{NewOption("--a", "", -2)}, true, false},
		{"own short name equals name", []Option{NewOption("-a", "-a", 0)}, false, true},
	}

	for _, test := range tests {
		opts := []ParserOption{}
		if test.shared {
			opts = append(opts, AllowSharedNames())
		}

		_, err := Parse([]string{"prog"}, test.schema, opts...)
		if (err == nil) != test.ok {
			t.Errorf("%s: got error %v", test.text, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidSchema) {
			t.Errorf("%s: error %v does not match ErrInvalidSchema", test.text, err)
		}
	}
}

func Test_SharedNamesFirstWins(t *testing.T) {
	x := NewOption("--x", "-s", 1)
	y := NewOption("--y", "-s", 0)

	p, err := Parse([]string{"prog", "-s", "val", "--y"}, []Option{x, y},
		AllowSharedNames())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	want := []Entry{entry(x, "val"), entry(y)}
	if diff := cmp.Diff(want, p.Entries(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func Test_SharedNamesAreDistinct(t *testing.T) {
	x := Flag("--x")
	b := NewOption("--x", "-b", 0)

	// -b reaches the second option; --x only ever reaches the first
	p, err := Parse([]string{"prog", "-b", "--x"}, []Option{x, b},
		AllowSharedNames())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	want := []Entry{entry(b), entry(x)}
	if diff := cmp.Diff(want, p.Entries(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	n, err := p.ArgumentSize("--x")
	if err != nil || n != 0 {
		t.Errorf("ArgumentSize(--x) = %d, %v", n, err)
	}
}

func Test_PrefixedOptions(t *testing.T) {
	out := NewPrefixedOption("--", "out", "-", "o", 1)
	dry := NewPrefixedOption("--", "dry-run", "", "", 0)

	p, err := Parse([]string{"prog", "-o", "f", "out", "--dry-run"},
		[]Option{out, dry})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	for _, name := range []string{"--out", "-o", "--dry-run"} {
		if !p.HasOption(name) {
			t.Errorf("HasOption(%q) = false", name)
		}
	}
	for _, name := range []string{"out", "o", "dry-run", "-", ""} {
		if p.HasOption(name) {
			t.Errorf("HasOption(%q) = true", name)
		}
	}

	got, _ := p.Arguments("-o")
	if diff := cmp.Diff([]string{"f"}, got); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"out"}, p.Unrecognized()); diff != "" {
		t.Errorf("unrecognized mismatch (-want +got):\n%s", diff)
	}
}

// For random command lines, every entry holds at most ArgCount arguments
// per occurrence, and every option token reached by the scan is found.
func Test_ArgumentCeiling(t *testing.T) {
	pool := []string{"--a", "--b", "-v", "--verbose", "-o", "--out", "x", "y", "z", ""}
	rnd := rand.New(rand.NewSource(1))

	for n := 0; n < 500; n++ {
		args := []string{"prog"}
		for k := rnd.Intn(12); k > 0; k-- {
			args = append(args, pool[rnd.Intn(len(pool))])
		}

		p, err := Parse(args, testSchema, WithDuplicatePolicy(KeepFirst))
		if err != nil {
			t.Fatalf("%v: unexpected error %v", args, err)
		}

		for _, e := range p.Entries() {
			if len(e.Args) > e.Option.ArgCount {
				t.Errorf("%v: %s has %d args, ceiling %d",
					args, e.Option, len(e.Args), e.Option.ArgCount)
			}
		}

		// Options are never swallowed as arguments, so each one is found
		for _, a := range args[1:] {
			if findOption(a, testSchema) >= 0 && !p.HasOption(a) {
				t.Errorf("%v: %s not found", args, a)
			}
		}
	}
}

func Test_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Parse([]string{"prog", "pos", "--a", "x", "--b", "--b"}, testSchema,
		WithLogger(zap.New(core)), WithDuplicatePolicy(KeepFirst))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	counts := map[string]int{}
	for _, le := range logs.All() {
		counts[le.Message]++
	}

	want := map[string]int{
		"ignoring token":                       1,
		"matched option":                       3,
		"argument collection stopped by option": 1,
		"repeated option":                      1,
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("log messages mismatch (-want +got):\n%s", diff)
	}
}

func Test_WithNilLogger(t *testing.T) {
	if _, err := Parse([]string{"prog", "--b"}, testSchema, WithLogger(nil)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func Test_WriteEntries(t *testing.T) {
	p, err := Parse([]string{"prog", "--out", "f", "-v"}, testSchema)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	var buf bytes.Buffer
	if err := p.WriteEntries(&buf); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	want := "--out       -o   1   [f]\n--verbose   -v   0   []\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
