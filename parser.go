package argparse

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// entry pairs a flag definition with its result.
type entry struct {
	flag   Flag
	result Result
}

// Parser methods define flags and parse command line arguments. A Parser is
// not safe for concurrent use; concurrent parses need separate parsers.
type Parser struct {
	syntax      *Syntax
	entries     []*entry
	index       map[string]int // spelling -> entries index
	errors      Errors
	positionals []string
	log         *slog.Logger
}

// CustomParser returns a new Parser with a specific syntax. The parser keeps
// a copy of the syntax.
func CustomParser(syntax *Syntax) *Parser {
	if syntax == nil {
		syntax = DefaultSyntax()
	}
	return &Parser{
		syntax:  syntax.copy(),
		entries: make([]*entry, 0),
		index:   make(map[string]int),
		log:     slog.New(slog.DiscardHandler),
	}
}

// NewParser returns a new Parser with the default syntax.
func NewParser() *Parser {
	return CustomParser(DefaultSyntax())
}

// SetLogger sets the logger receiving debug traces of parsing decisions.
// A nil logger disables tracing.
func (a *Parser) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	a.log = l
}

// Syntax returns a copy of the syntax used by the parser.
func (a *Parser) Syntax() *Syntax {
	return a.syntax.copy()
}

// Add defines a flag. It returns an *Error of kind InvalidDefinition if the
// flag has no spelling or a spelling which does not agree with the syntax,
// and an *Error of kind DefinitionConflict if a spelling is already used by
// another flag. The parser is unchanged when an error is returned.
func (a *Parser) Add(f Flag) error {
	if len(f.Long) == 0 && len(f.Short) == 0 {
		return &Error{Kind: InvalidDefinition, Pos: -1, Reason: "no long or short spelling"}
	}
	if len(f.Long) > 0 {
		if err := a.syntax.validateLong(f.Long); err != nil {
			return &Error{Kind: InvalidDefinition, Flag: f.Long, Pos: -1, Reason: "long spelling " + err.Error()}
		}
	}
	if len(f.Short) > 0 {
		if err := a.syntax.validateShort(f.Short); err != nil {
			return &Error{Kind: InvalidDefinition, Flag: f.Short, Pos: -1, Reason: "short spelling " + err.Error()}
		}
	}
	if f.Long == f.Short {
		return &Error{Kind: InvalidDefinition, Flag: f.Long, Pos: -1, Reason: "long and short spellings are equal"}
	}
	for _, s := range f.spellings() {
		if _, ok := a.index[s]; ok {
			return &Error{Kind: DefinitionConflict, Flag: s, Pos: -1}
		}
	}

	e := &entry{flag: f.clone()}
	e.result.reset(e.flag)
	a.entries = append(a.entries, e)
	for _, s := range e.flag.spellings() {
		a.index[s] = len(a.entries) - 1
	}
	return nil
}

// MustAdd is like Add but panics if the definition is invalid. Definition
// errors are bugs in the program, which cannot continue safely. MustAdd
// returns the parser, so definitions can be chained.
func (a *Parser) MustAdd(f Flag) *Parser {
	if err := a.Add(f); err != nil {
		panic(err)
	}
	return a
}

// Lookup returns the result of the flag with the given long or short
// spelling. Both spellings of a flag return the same *Result. The error
// wraps ErrNotFound if no flag has that spelling.
func (a *Parser) Lookup(spelling string) (*Result, error) {
	i, ok := a.index[spelling]
	if !ok {
		return nil, fmt.Errorf(`lookup "%s": %w`, spelling, ErrNotFound)
	}
	return &a.entries[i].result, nil
}

// Get is like Lookup but panics if no flag has the spelling.
func (a *Parser) Get(spelling string) *Result {
	r, err := a.Lookup(spelling)
	if err != nil {
		panic(err)
	}
	return r
}

// Flag returns the definition of the flag with the given spelling.
func (a *Parser) Flag(spelling string) (Flag, bool) {
	i, ok := a.index[spelling]
	if !ok {
		return Flag{}, false
	}
	return a.entries[i].flag.clone(), true
}

// Flags returns the flag definitions in definition sequence.
func (a *Parser) Flags() []Flag {
	flags := make([]Flag, len(a.entries))
	for i, e := range a.entries {
		flags[i] = e.flag.clone()
	}
	return flags
}

// All iterates over flag definitions and their results in definition
// sequence.
func (a *Parser) All() iter.Seq2[Flag, *Result] {
	return func(yield func(Flag, *Result) bool) {
		for _, e := range a.entries {
			if !yield(e.flag.clone(), &e.result) {
				return
			}
		}
	}
}

// Errors returns a copy of the errors recorded by the last parse, in the
// order they were detected.
func (a *Parser) Errors() Errors {
	return slices.Clone(a.errors)
}

// OK returns true if the last parse recorded no error.
func (a *Parser) OK() bool {
	return len(a.errors) == 0
}

// Positionals returns a copy of the arguments of the last parse which were
// neither flags nor flag values, in command line order.
func (a *Parser) Positionals() []string {
	return slices.Clone(a.positionals)
}

// Parse parses the argument vector argv. The first element of argv is the
// program name and is skipped, so os.Args can be passed as is. The result is
// nil unless an error was recorded, in which case it is a copy of the Errors
// value returned by the Errors method. Parsing does not stop at the first
// error. Each call starts from scratch: results of a previous parse are
// discarded. The input syntax is explained in the package documentation.
func (a *Parser) Parse(argv []string) error {
	a.reset()

	terminated := false
	for i := 1; i < len(argv); i++ {
		token := argv[i]

		if terminated {
			a.positionals = append(a.positionals, token)
			continue
		}
		if a.isTerminator(token) {
			a.log.Debug("terminator", slog.Int("pos", i))
			terminated = true
			continue
		}

		e, value, inline := a.match(token)
		if e == nil {
			if a.syntax.looksLikeFlag(token) {
				a.log.Debug("unknown flag", slog.String("token", token), slog.Int("pos", i))
				a.errors = append(a.errors, &Error{Kind: UnknownFlag, Token: token, Pos: i})
			} else {
				a.log.Debug("positional", slog.String("token", token), slog.Int("pos", i))
				a.positionals = append(a.positionals, token)
			}
			continue
		}

		r := &e.result
		r.IsSet = true
		r.Count++
		r.HasValue = false
		r.Value.Str = ""

		switch {
		case inline:
			r.HasValue = true
			r.Value.Str = value

		case e.flag.Value == nil:
			// takes no value: the next token is never consumed

		case i+1 < len(argv) && a.consumable(argv[i+1]):
			i++
			r.HasValue = true
			r.Value.Str = argv[i]

		case e.flag.Value.Needed:
			a.errors = append(a.errors, &Error{Kind: MissingValue, Flag: token, Token: token, Pos: i})

		default:
			r.Value.Str = e.flag.Value.Default
		}

		a.log.Debug("flag",
			slog.String("token", token),
			slog.String("flag", e.flag.Name()),
			slog.Int("pos", i),
			slog.Bool("value", r.HasValue),
		)
	}

	a.verify()

	if len(a.errors) > 0 {
		return a.Errors()
	}
	return nil
}

// ParseLine splits line into words, observing shell quoting rules, and calls
// Parse with the words. The first word is the program name.
func (a *Parser) ParseLine(line string) error {
	argv, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("cannot split command line: %w", err)
	}
	return a.Parse(argv)
}

// reset discards the state of a previous parse.
func (a *Parser) reset() {
	for _, e := range a.entries {
		e.result.reset(e.flag)
	}
	a.errors = nil
	a.positionals = nil
}

// match returns the entry designated by token, or nil. If token is a long
// spelling followed by the separator, the text after the separator is
// returned with inline set.
func (a *Parser) match(token string) (e *entry, value string, inline bool) {
	if i, ok := a.index[token]; ok {
		return a.entries[i], "", false
	}
	name, value, found := strings.Cut(token, string(a.syntax.separator))
	if !found {
		return nil, "", false
	}
	i, ok := a.index[name]
	if !ok || a.entries[i].flag.Long != name {
		// short spellings never take inline values
		return nil, "", false
	}
	return a.entries[i], value, true
}

// consumable returns true if token can be taken as the value of the
// preceding flag.
func (a *Parser) consumable(token string) bool {
	if a.isTerminator(token) {
		return false
	}
	e, _, _ := a.match(token)
	return e == nil
}

func (a *Parser) isTerminator(token string) bool {
	return len(a.syntax.terminator) > 0 && token == a.syntax.terminator
}

// verify records an error for each required flag which was not set.
func (a *Parser) verify() {
	for _, e := range a.entries {
		if e.flag.Required && !e.result.IsSet {
			a.errors = append(a.errors, &Error{Kind: RequiredFlagNotSet, Flag: e.flag.Name(), Pos: -1})
		}
	}
}
