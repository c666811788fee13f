/*
Package cmdline implements a minimal command-line parser. Given a list
of option descriptions, each naming an option and the number of
arguments it takes, the package scans the command line once and records,
for each option found, the arguments that follow it.


# Options

An Option has a name, an optional short name, and a fixed argument
count:

  verbose := cmdline.NewOption("--verbose", "-v", 0)
  output  := cmdline.NewOption("--output", "-o", 1)

Names are compared verbatim with the command-line tokens: there is no
notion of a "flag format", and any string without whitespace may serve
as a name. If it is convenient to keep the leading dashes apart from the
name proper, use the prefixed form:

  output := cmdline.NewPrefixedOption("--", "output", "-", "o", 1)

The option then matches both "--output" and "-o"; RealName() and
RealShortName() return these composite names.


# Command-Line Processing

  p, err := cmdline.FromCommandLine([]cmdline.Option{verbose, output})
  if err != nil {
      log.Fatal(err)
  }
  if p.HasOption("-v") {
      ...
  }
  args, err := p.Arguments("--output")

The first token (the program name) is skipped. Each following token is
compared with the options, in the order in which they were given; the
first option that matches wins. A matched option consumes up to
ArgCount following tokens as its arguments. Consumption stops early at
the end of the command line, or as soon as a token is itself a known
option; that token is not consumed, but processed as an option.
Therefore an option may end up with fewer arguments than declared, but
never with more.

Tokens that are neither options nor option arguments are skipped, and
are available from Unrecognized(). This makes it possible to mix
options with positional arguments, or with options the program does not
know about.

An option can be queried by its name or by its short name: both refer
to the same entry. Querying an option that was not on the command line
returns a *NotFoundError, which satisfies errors.Is(err, ErrNotFound).

Not supported: compound short flags ("-abc"), values attached with an
equal sign ("--output=file"), and the "--" end-of-options marker.


# Repeated Options

By default, an option that appears more than once on the command line
(under either of its names) makes Parse fail with a
*DuplicateOptionError. Use WithDuplicatePolicy to keep the first or the
last occurrence instead, or to accumulate the arguments of all
occurrences.


# Schema Validation

Parse rejects, with a *SchemaError, options with an empty name or a
negative argument count, as well as two options that share a name or
short name. AllowSharedNames lifts the last restriction; the first
matching option in schema order then takes precedence.
*/
package cmdline
