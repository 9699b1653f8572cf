package argparse

// Result records what the last parse found about a flag. There is exactly
// one Result per logical flag: both spellings of a flag give access to the
// same Result.
type Result struct {
	IsSet    bool  // the flag appeared on the command line
	HasValue bool  // a value was captured for the last occurrence
	Count    int   // number of occurrences
	Value    Value // the captured value
}

// Value is the value captured for a flag.
type Value struct {
	Str    string
	Needed bool // mirrors ValueSpec.Needed of the definition
}

// reset puts r back in the state it has before any parse.
func (r *Result) reset(f Flag) {
	*r = Result{}
	if f.Value != nil {
		r.Value.Needed = f.Value.Needed
	}
}

// Scan converts the captured value into target, which must be a pointer to
// a basic type. If no value was captured, the string of the value is
// scanned anyway; it is either empty or the default of an optional value.
func (r *Result) Scan(target interface{}) error {
	return Scan(r.Value.Str, target)
}
