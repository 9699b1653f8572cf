/*

Package argparse parses command line flags. A program declares its flags,
each with a long spelling like "--output", a short spelling like "-o", or both,
and lets the parser find out which flags are present in the argument vector
and which values they carry. Problems with the input are collected as
structured errors, so that a single parse reports everything wrong with a
command line.

A first example defines a flag without value:

    package main

    import (
    	"fmt"
    	"os"

    	"github.com/jpvetterli/argparse"
    )

    func main() {
    	a := argparse.NewParser()
    	a.MustAdd(argparse.NewFlag("--verbose", "-v", "print more"))
    	if err := a.Parse(os.Args); err != nil {
    		fmt.Fprintln(os.Stderr, err)
    		os.Exit(1)
    	}
    	if a.Get("-v").IsSet {
    		fmt.Println("verbose")
    	}
    }

Parse skips the first element of the argument vector, which is the program
name, so os.Args can be passed as is.

Spellings and results

Both spellings of a flag designate the same logical flag, and give access to
the same *Result. Setting a flag with "-v" and asking for "--verbose" works,
and so does the reverse. A Result tells whether the flag was set, whether a
value was captured, and the value itself.

Lookup returns an error wrapping ErrNotFound for a spelling which was never
defined, and Get panics in that case. Asking for an undefined flag is a bug
in the program, not a user error.

Values

A flag takes a value if it is defined with WithValue. The value is either
needed or optional:

    a.MustAdd(argparse.NewFlag("--output", "-o", "output file",
    	argparse.WithValue(argparse.NeededValue("FILE"))))
    a.MustAdd(argparse.NewFlag("--color", "", "colorize output",
    	argparse.WithValue(argparse.OptionalValue("WHEN", "auto"))))

The user can write the value of a long flag inline, after a separator:

    --output=result.txt

or as the next argument, for long and short flags alike:

    --output result.txt
    -o result.txt

An inline value is always taken, whatever it looks like: "--output=--x"
gives the value "--x". Short flags never take inline values: "-o=x" is an
unknown flag. The next argument is taken as the value unless it is itself a
defined flag, in any of its forms, or the terminator. So "-o -x" gives the
value "-x" if no flag is spelled "-x".

When no value can be taken, a needed value produces a MissingValue error, and
an optional value produces nothing: HasValue is false and the value is the
default specified with OptionalValue.

A flag defined without value never takes the next argument, but it accepts an
inline value when the user writes one explicitly.

Required flags

A flag defined with AsRequired must be present. After scanning all arguments,
the parser records a RequiredFlagNotSet error for each required flag which was
not seen.

Errors

Parse does not stop at the first error. All errors are recorded in the order
they are detected, and Parse returns them as an Errors value, or nil if there
is none. The same list is available from the Errors method. Each *Error has a
Kind and unwraps to a sentinel error, so both of these work:

    var e *argparse.Error
    if errors.As(err, &e) && e.Kind == argparse.UnknownFlag { ... }
    if errors.Is(err, argparse.ErrMissingValue) { ... }

Arguments which are neither flags nor flag values are positional arguments.
An unrecognized argument starting with a flag prefix is an UnknownFlag error;
any other one, including a lone "-", is collected and returned by the
Positionals method. All arguments after the terminator "--" are positional.

Definition errors are detected when adding a flag. Add returns an error of
kind InvalidDefinition for a flag without spelling or with a spelling not
agreeing with the syntax, and DefinitionConflict for a spelling already in
use. The earlier definition is never replaced. MustAdd panics instead.

Syntax

The prefixes, the separator and the terminator are not hardcoded. They can be
changed with a custom Syntax:

    a := argparse.CustomParser(argparse.NewSyntax("//", "/", ':', ""))

defines a parser for flags like "//output:file" and "/o", without
terminator.

Parsing again

Each parse starts from scratch: results, errors and positional arguments of
the previous parse are discarded. Results keep their identity, so pointers
obtained with Lookup remain valid.

A Parser must not be used concurrently. Programs parsing in parallel must use
one parser per goroutine.

*/
package argparse
