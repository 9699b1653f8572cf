package argparse

// Flag is the definition of a command line flag. A flag has a long spelling,
// a short spelling, or both; both spellings designate the same logical flag.
// A Flag is a value: once added to a Parser it cannot be changed.
type Flag struct {
	Long        string
	Short       string
	Description string
	Value       *ValueSpec // nil if the flag takes no value
	Required    bool       // the flag must appear on the command line
}

// ValueSpec specifies the value taken by a flag.
type ValueSpec struct {
	Name    string // symbolic name, for documentation
	Default string // value reported when an optional value is absent
	Needed  bool   // the value is mandatory whenever the flag is given
}

// NeededValue returns a specification for a value which must follow the
// flag.
func NeededValue(name string) ValueSpec {
	return ValueSpec{Name: name, Needed: true}
}

// OptionalValue returns a specification for a value which can follow the
// flag. When it does not, the result takes the default value.
func OptionalValue(name, def string) ValueSpec {
	return ValueSpec{Name: name, Default: def}
}

// Option configures a Flag created by NewFlag.
type Option func(Flag) Flag

// NewFlag returns a flag definition. Either long or short can be empty, but
// not both; this is verified when the flag is added to a parser.
//
// Example:
//
//	argparse.NewFlag("--output", "-o", "write to file",
//		argparse.WithValue(argparse.NeededValue("FILE")),
//		argparse.AsRequired())
func NewFlag(long, short, description string, opts ...Option) Flag {
	f := Flag{Long: long, Short: short, Description: description}
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

// WithValue makes the flag take a value.
func WithValue(v ValueSpec) Option {
	return func(f Flag) Flag {
		f.Value = &v
		return f
	}
}

// AsRequired makes the flag mandatory on the command line.
func AsRequired() Option {
	return func(f Flag) Flag {
		f.Required = true
		return f
	}
}

// Name returns the long spelling of the flag, or the short one if there is
// no long spelling.
func (f Flag) Name() string {
	if len(f.Long) > 0 {
		return f.Long
	}
	return f.Short
}

// TakesValue returns true if the flag has a value specification.
func (f Flag) TakesValue() bool {
	return f.Value != nil
}

// spellings returns the non-empty spellings of the flag.
func (f Flag) spellings() []string {
	s := make([]string, 0, 2)
	if len(f.Long) > 0 {
		s = append(s, f.Long)
	}
	if len(f.Short) > 0 {
		s = append(s, f.Short)
	}
	return s
}

// clone returns a copy of f which shares no memory with f.
func (f Flag) clone() Flag {
	if f.Value != nil {
		v := *f.Value
		f.Value = &v
	}
	return f
}
