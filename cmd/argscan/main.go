// Command argscan scans a list of tokens against an option schema read
// from a file, and shows which options were found and which arguments
// they captured.
//
// Usage:
//
//	argscan --schema FILE [--json] [--verbose] [--no-color]
//	        [--duplicates reject|keep-first|keep-last|accumulate] -- TOKENS...
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/janert/cmdline"
	"github.com/janert/cmdline/schemafile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	progName      = "argscan"
	endOwnOptions = "--"
)

var ownSchema = []cmdline.Option{
	cmdline.NewOption("--schema", "-s", 1),
	cmdline.NewOption("--json", "-j", 0),
	cmdline.NewOption("--verbose", "-v", 0),
	cmdline.NewOption("--duplicates", "-d", 1),
	cmdline.Flag("--no-color"),
}

type settings struct {
	schema  string
	json    bool
	verbose bool
	noColor bool
	policy  cmdline.DuplicatePolicy
	tokens  []string
}

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	s, err := parseSettings(args)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if s.verbose {
		logger = newLogger(stderr)
	}
	defer logger.Sync()

	schema, err := schemafile.Load(s.schema)
	if err != nil {
		return err
	}
	logger.Debug("loaded schema",
		zap.String("path", s.schema), zap.Int("options", len(schema)))

	// Tokens are scanned as if they were a command line of their own
	p, err := cmdline.Parse(append([]string{progName}, s.tokens...), schema,
		cmdline.WithDuplicatePolicy(s.policy), cmdline.WithLogger(logger))
	if err != nil {
		return err
	}

	if s.json {
		return writeJSON(stdout, p)
	}
	return writeTable(stdout, p, s.noColor)
}

// ParseSettings splits args on the first "--": the part before holds the
// options of argscan itself, the part after the tokens to scan.
func parseSettings(args []string) (settings, error) {
	own, tokens := args, []string{}
	if k := slices.Index(args, endOwnOptions); k >= 0 {
		own, tokens = args[:k], args[k+1:]
	}

	p, err := cmdline.Parse(own, ownSchema)
	if err != nil {
		return settings{}, err
	}
	if extra := p.Unrecognized(); len(extra) > 0 {
		return settings{}, fmt.Errorf("unexpected argument %q", extra[0])
	}

	s := settings{
		json:    p.HasOption("--json"),
		verbose: p.HasOption("--verbose"),
		noColor: p.HasOption("--no-color"),
		tokens:  tokens,
	}

	s.schema, err = singleValue(p, "--schema")
	if errors.Is(err, cmdline.ErrNotFound) {
		return settings{}, errors.New("missing required option --schema")
	}
	if err != nil {
		return settings{}, err
	}

	if p.HasOption("--duplicates") {
		v, err := singleValue(p, "--duplicates")
		if err != nil {
			return settings{}, err
		}
		if s.policy, err = cmdline.ParsePolicy(v); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}

// singleValue returns the one argument of a one-argument option. Returns
// an error if the option is absent or its argument is missing.
func singleValue(p *cmdline.Parser, name string) (string, error) {
	vals, err := p.Arguments(name)
	if err != nil {
		return "", err
	}
	if len(vals) != 1 {
		return "", fmt.Errorf("option %s requires a value", name)
	}
	return vals[0], nil
}

func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core).Named(progName)
}

// -----

type jsonOption struct {
	Name      string   `json:"name"`
	ShortName string   `json:"short_name,omitempty"`
	Args      []string `json:"args"`
}

type jsonResult struct {
	Options      []jsonOption `json:"options"`
	Unrecognized []string     `json:"unrecognized"`
}

func writeJSON(w io.Writer, p *cmdline.Parser) error {
	res := jsonResult{
		Options:      []jsonOption{},
		Unrecognized: []string{},
	}
	for _, e := range p.Entries() {
		res.Options = append(res.Options, jsonOption{
			Name:      e.Option.RealName(),
			ShortName: e.Option.RealShortName(),
			Args:      e.Args,
		})
	}
	res.Unrecognized = append(res.Unrecognized, p.Unrecognized()...)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeTable(w io.Writer, p *cmdline.Parser, noColor bool) error {
	nameColor := color.New(color.FgCyan, color.Bold)
	argColor := color.New(color.FgGreen)
	warnColor := color.New(color.FgYellow)
	if noColor {
		nameColor.DisableColor()
		argColor.DisableColor()
		warnColor.DisableColor()
	}

	width := 0
	for _, e := range p.Entries() {
		width = max(width, len(e.Option.String()))
	}

	for _, e := range p.Entries() {
		name := fmt.Sprintf("%-*s", width, e.Option.String())
		if _, err := fmt.Fprintf(w, "%s  %d/%d  %s\n", nameColor.Sprint(name),
			len(e.Args), e.Option.ArgCount,
			argColor.Sprint(strings.Join(e.Args, " "))); err != nil {
			return err
		}
	}

	if extra := p.Unrecognized(); len(extra) > 0 {
		if _, err := fmt.Fprintf(w, "%s %s\n", warnColor.Sprint("unrecognized:"),
			strings.Join(extra, " ")); err != nil {
			return err
		}
	}

	return nil
}
