package argparse

import (
	"fmt"
	"strings"
	"unicode"
)

// Syntax is the set of markers playing a special role when parsing command
// line arguments: the long and short flag prefixes, the separator between a
// long flag and an inline value, and the terminator after which all
// arguments are positional. The zero value behaves like DefaultSyntax.
type Syntax struct {
	long       string
	short      string
	separator  rune
	terminator string
}

// DefaultSyntax returns the conventional syntax: "--" for long flags, "-" for
// short flags, "=" as separator and "--" as terminator.
func DefaultSyntax() *Syntax {
	return &Syntax{long: "--", short: "-", separator: '=', terminator: "--"}
}

// NewSyntax returns a syntax with the given markers. The terminator can be
// empty, which disables it. Panics if a prefix is empty, if the prefixes are
// equal, if a marker contains white space, or if the separator is a letter,
// a digit, or occurs in a prefix.
func NewSyntax(long, short string, separator rune, terminator string) *Syntax {
	if len(long) == 0 || len(short) == 0 {
		panic(fmt.Errorf(`flag prefixes cannot be empty (long "%s", short "%s")`, long, short))
	}
	if long == short {
		panic(fmt.Errorf(`long and short flag prefixes are both "%s"`, long))
	}
	for _, s := range []string{long, short, terminator} {
		if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
			panic(fmt.Errorf(`"%s" cannot be used as a marker because it contains white space`, s))
		}
	}
	if !validSeparator(separator) {
		panic(fmt.Errorf("cannot use '%c' as separator", separator))
	}
	if strings.ContainsRune(long, separator) || strings.ContainsRune(short, separator) {
		panic(fmt.Errorf("separator '%c' occurs in a flag prefix", separator))
	}
	return &Syntax{long: long, short: short, separator: separator, terminator: terminator}
}

func (s *Syntax) check() {
	if len(s.long) == 0 {
		*s = *DefaultSyntax()
	}
}

func (s *Syntax) copy() *Syntax {
	s.check()
	c := *s
	return &c
}

func (s *Syntax) String() string {
	s.check()
	return fmt.Sprintf("%s %s %c %s", s.long, s.short, s.separator, s.terminator)
}

// LongPrefix returns the prefix of long flag spellings.
func (s *Syntax) LongPrefix() string {
	s.check()
	return s.long
}

// ShortPrefix returns the prefix of short flag spellings.
func (s *Syntax) ShortPrefix() string {
	s.check()
	return s.short
}

// Separator returns the character separating a long flag from an inline
// value.
func (s *Syntax) Separator() rune {
	s.check()
	return s.separator
}

// Terminator returns the argument ending flag parsing, or "" if there is
// none.
func (s *Syntax) Terminator() string {
	s.check()
	return s.terminator
}

// looksLikeFlag returns true if token starts with a flag prefix and is more
// than the bare prefix. A lone "-" is conventionally a file name.
func (s *Syntax) looksLikeFlag(token string) bool {
	for _, p := range []string{s.long, s.short} {
		if len(token) > len(p) && strings.HasPrefix(token, p) {
			return true
		}
	}
	return false
}

// validateLong verifies a long spelling.
func (s *Syntax) validateLong(name string) error {
	if err := s.validate(name, s.long); err != nil {
		return err
	}
	if strings.ContainsRune(name, s.separator) {
		return fmt.Errorf("contains the separator '%c'", s.separator)
	}
	return nil
}

// validateShort verifies a short spelling. A short spelling must not look
// like a long one, or the long prefix would be shadowed.
func (s *Syntax) validateShort(name string) error {
	if err := s.validate(name, s.short); err != nil {
		return err
	}
	if strings.HasPrefix(s.long, s.short) && strings.HasPrefix(name, s.long) {
		return fmt.Errorf(`starts with the long prefix "%s"`, s.long)
	}
	return nil
}

func (s *Syntax) validate(name, prefix string) error {
	if !strings.HasPrefix(name, prefix) {
		return fmt.Errorf(`does not start with "%s"`, prefix)
	}
	if len(name) == len(prefix) {
		return fmt.Errorf("is only a prefix")
	}
	if name == s.terminator {
		return fmt.Errorf("is the terminator")
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("includes the character %q", r)
		}
	}
	return nil
}

// validSeparator returns true iff char is valid as a separator.
// Valid separators are graphic, not white space, not a letter or a digit.
func validSeparator(char rune) bool {
	return !unicode.IsLetter(char) && !unicode.IsDigit(char) &&
		unicode.IsGraphic(char) && !unicode.IsSpace(char)
}
