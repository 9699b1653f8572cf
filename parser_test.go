package argparse_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jpvetterli/argparse"
)

const (
	shortFlag   = "-a"
	longFlag    = "--a"
	description = "Simple settable flag without value."
)

func simpleParser() *argparse.Parser {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag(longFlag, shortFlag, description))
	return a
}

func TestShortFlagNotSet(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(a.Errors()); n != 0 {
		t.Errorf("%d errors, expected none", n)
	}
	for _, s := range []string{shortFlag, longFlag} {
		r := a.Get(s)
		if r.IsSet || r.HasValue {
			t.Errorf("%s: unexpected result %+v", s, *r)
		}
	}
}

func TestShortFlagOnlySet(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program", "-a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Get(shortFlag).IsSet || !a.Get(longFlag).IsSet {
		t.Error("the flag is not set")
	}
	if a.Get(shortFlag).HasValue || a.Get(longFlag).HasValue {
		t.Error("wrong HasValue set to true")
	}
	if a.Get(shortFlag) != a.Get(longFlag) {
		t.Error("the short and long flag results are not the same")
	}
}

func TestLongFlagOnlySet(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program", "--a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Get(longFlag).IsSet || !a.Get(shortFlag).IsSet {
		t.Error("the flag is not set")
	}
	if a.Get(longFlag).HasValue {
		t.Error("wrong HasValue set to true")
	}
	if a.Get(shortFlag) != a.Get(longFlag) {
		t.Error("the short and long flag results are not the same")
	}
}

func TestAliasIdentitySurvivesParsing(t *testing.T) {
	a := simpleParser()
	before := a.Get(longFlag)
	if before != a.Get(shortFlag) {
		t.Fatal("spellings do not share a result before parsing")
	}
	for _, argv := range [][]string{{"program", "-a"}, {"program"}, {"program", "--a"}} {
		_ = a.Parse(argv)
		if a.Get(longFlag) != before || a.Get(shortFlag) != before {
			t.Errorf("%v: result identity changed", argv)
		}
	}
}

func TestFlagWithValueNotNeeded(t *testing.T) {
	value := "--v"

	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("", shortFlag, description,
		argparse.WithValue(argparse.OptionalValue("value", "w"))))
	a.MustAdd(argparse.NewFlag(longFlag, "", description,
		argparse.WithValue(argparse.OptionalValue("value", "w"))))

	tests := []struct {
		argv    []string
		defined string
		msg     string
	}{
		{[]string{"program", "--a", value}, longFlag, ""},
		// the inline value leaves the next token to stand alone
		{[]string{"program", "--a=" + value, value}, longFlag, `unknown flag "--v" at position 2`},
		{[]string{"program", "-a", value}, shortFlag, ""},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.argv[1:], " "), func(t *testing.T) {
			err := a.Parse(tt.argv)
			if len(tt.msg) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				if e := matchErrorMessage(err, tt.msg); e != nil {
					t.Fatal(e)
				}
				if n := a.Errors().Count(argparse.UnknownFlag); n != 1 {
					t.Errorf("%d unknown flag errors, expected 1", n)
				}
			}
			want := argparse.Result{
				IsSet:    true,
				HasValue: true,
				Count:    1,
				Value:    argparse.Value{Str: value},
			}
			if diff := cmp.Diff(want, *a.Get(tt.defined)); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagWithNeededValue(t *testing.T) {
	value := "-v"

	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("", shortFlag, description,
		argparse.WithValue(argparse.NeededValue("value"))))
	a.MustAdd(argparse.NewFlag(longFlag, "", description,
		argparse.WithValue(argparse.NeededValue("value"))))

	tests := []struct {
		argv        []string
		defined     string
		positionals []string
	}{
		{[]string{"program", "--a", value}, longFlag, nil},
		{[]string{"program", "--a=" + value, ""}, longFlag, []string{""}},
		{[]string{"program", "-a", value}, shortFlag, nil},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.argv[1:], " "), func(t *testing.T) {
			if err := a.Parse(tt.argv); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.positionals, a.Positionals()); diff != "" {
				t.Errorf("positionals mismatch (-want +got):\n%s", diff)
			}
			want := argparse.Result{
				IsSet:    true,
				HasValue: true,
				Count:    1,
				Value:    argparse.Value{Str: value, Needed: true},
			}
			if diff := cmp.Diff(want, *a.Get(tt.defined)); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInlineValueOnFlagWithoutValue(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program", "--a=x", "y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := a.Get(shortFlag)
	if !r.HasValue || r.Value.Str != "x" {
		t.Errorf("unexpected result %+v", *r)
	}
	if diff := cmp.Diff([]string{"y"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestFlagWithoutValueDoesNotConsume(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program", "-a", "file"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Get(longFlag).HasValue {
		t.Error("flag without value took a value")
	}
	if diff := cmp.Diff([]string{"file"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingNeededValue(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--out", "-o", "output",
		argparse.WithValue(argparse.NeededValue("FILE"))))
	a.MustAdd(argparse.NewFlag("--verbose", "-v", "verbose"))

	tests := []struct {
		name string
		argv []string
	}{
		{"last", []string{"program", "-o"}},
		{"before flag", []string{"program", "--out", "-v"}},
		{"before inline flag", []string{"program", "-o", "--verbose=yes"}},
		{"before terminator", []string{"program", "-o", "--", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Parse(tt.argv)
			if !errors.Is(err, argparse.ErrMissingValue) {
				t.Fatalf("expected missing value error, got %v", err)
			}
			if n := a.Errors().Count(argparse.MissingValue); n != 1 {
				t.Errorf("%d missing value errors, expected 1", n)
			}
			r := a.Get("--out")
			if !r.IsSet || r.HasValue {
				t.Errorf("unexpected result %+v", *r)
			}
			if a.OK() {
				t.Error("OK after error")
			}
		})
	}
}

func TestMissingOptionalValueIsSilent(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--color", "-c", "colorize",
		argparse.WithValue(argparse.OptionalValue("WHEN", "auto"))))
	a.MustAdd(argparse.NewFlag("--verbose", "-v", "verbose"))

	for _, argv := range [][]string{
		{"program", "--color"},
		{"program", "-c", "-v"},
	} {
		if err := a.Parse(argv); err != nil {
			t.Fatalf("%v: unexpected error: %v", argv, err)
		}
		want := argparse.Result{IsSet: true, Count: 1, Value: argparse.Value{Str: "auto"}}
		if diff := cmp.Diff(want, *a.Get("-c")); diff != "" {
			t.Errorf("%v: result mismatch (-want +got):\n%s", argv, diff)
		}
	}
}

func TestUnknownFlags(t *testing.T) {
	a := simpleParser()
	err := a.Parse([]string{"program", "-x", "-a", "--yes", "-", "plain", "-a=1"})
	if err == nil {
		t.Fatal("error expected")
	}
	if err := matchErrorMessage(err, `3 errors:
	unknown flag "-x" at position 1
	unknown flag "--yes" at position 3
	unknown flag "-a=1" at position 6`); err != nil {
		t.Error(err)
	}
	if !a.Get(longFlag).IsSet {
		t.Error("parsing stopped at the first error")
	}
	if diff := cmp.Diff([]string{"-", "plain"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
	var e *argparse.Error
	if !errors.As(err, &e) || e.Kind != argparse.UnknownFlag || e.Token != "-x" {
		t.Errorf("unexpected first error: %v", e)
	}
}

func TestRequiredFlags(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--in", "-i", "input",
		argparse.WithValue(argparse.NeededValue("FILE")), argparse.AsRequired()))
	a.MustAdd(argparse.NewFlag("", "-q", "quiet", argparse.AsRequired()))
	a.MustAdd(argparse.NewFlag("--dry-run", "", "do nothing"))

	err := a.Parse([]string{"program"})
	if err := matchErrorMessage(err, `2 errors:
	required flag "--in" not set
	required flag "-q" not set`); err != nil {
		t.Error(err)
	}
	if !errors.Is(err, argparse.ErrRequiredFlag) {
		t.Error("errors.Is does not find required flag error")
	}

	if err := a.Parse([]string{"program", "-q", "-i", "x"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// a missing value does not hide the required flag
	err = a.Parse([]string{"program", "--in"})
	if n := a.Errors().Count(argparse.MissingValue); n != 1 {
		t.Errorf("%d missing value errors, expected 1", n)
	}
	if n := a.Errors().Count(argparse.RequiredFlagNotSet); n != 1 {
		t.Errorf("%d required flag errors, expected 1 (%v)", n, err)
	}
}

func TestReparseResets(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--name", "-n", "name",
		argparse.WithValue(argparse.NeededValue("NAME"))))
	a.MustAdd(argparse.NewFlag("--force", "-f", "force"))

	if err := a.Parse([]string{"program", "-n", "x", "-f", "-z", "pos"}); err == nil {
		t.Fatal("error expected")
	}
	if err := a.Parse([]string{"program"}); err != nil {
		t.Fatalf("stale errors: %v", err)
	}
	want := argparse.Result{Value: argparse.Value{Needed: true}}
	if diff := cmp.Diff(want, *a.Get("--name")); diff != "" {
		t.Errorf("stale result (-want +got):\n%s", diff)
	}
	if a.Get("-f").IsSet {
		t.Error("stale IsSet")
	}
	if len(a.Positionals()) != 0 {
		t.Errorf("stale positionals: %v", a.Positionals())
	}
}

func TestRepeatedFlag(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--level", "-l", "level",
		argparse.WithValue(argparse.OptionalValue("N", "1"))))

	if err := a.Parse([]string{"program", "-l", "3", "--level=5", "-l"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := argparse.Result{IsSet: true, Count: 3, Value: argparse.Value{Str: "1"}}
	if diff := cmp.Diff(want, *a.Get("--level")); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	if err := a.Parse([]string{"program", "-l", "3", "--level=5"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = argparse.Result{IsSet: true, HasValue: true, Count: 2, Value: argparse.Value{Str: "5"}}
	if diff := cmp.Diff(want, *a.Get("-l")); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestTerminator(t *testing.T) {
	a := simpleParser()
	if err := a.Parse([]string{"program", "x", "--", "-a", "--b", "--"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Get(shortFlag).IsSet {
		t.Error("flag after terminator was parsed")
	}
	if diff := cmp.Diff([]string{"x", "-a", "--b", "--"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestValueNotTakenFromDefinedFlag(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--tag", "-t", "tag",
		argparse.WithValue(argparse.OptionalValue("TAG", ""))))
	a.MustAdd(argparse.NewFlag("--all", "", "all"))

	if err := a.Parse([]string{"program", "-t", "--all"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Get("-t").HasValue {
		t.Error("defined flag taken as value")
	}
	if !a.Get("--all").IsSet {
		t.Error("--all not set")
	}
}

func TestEmptyArgvAndEmptyToken(t *testing.T) {
	a := simpleParser()
	if err := a.Parse(nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := a.Parse([]string{"program", ""}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{""}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupNotFound(t *testing.T) {
	a := simpleParser()
	r, err := a.Lookup("--b")
	if r != nil || !errors.Is(err, argparse.ErrNotFound) {
		t.Errorf("unexpected lookup result: %v, %v", r, err)
	}
	if err := matchErrorMessage(err, `lookup "--b": flag not defined`); err != nil {
		t.Error(err)
	}
	defer panicHandler(`lookup "a": flag not defined`, t)
	a.Get("a")
}

func TestParseLine(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--message", "-m", "message",
		argparse.WithValue(argparse.NeededValue("TEXT"))))

	if err := a.ParseLine(`git -m "a quoted message" 'file name'`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := a.Get("--message").Value.Str; s != "a quoted message" {
		t.Errorf(`not "a quoted message", but "%s"`, s)
	}
	if diff := cmp.Diff([]string{"file name"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomSyntax(t *testing.T) {
	a := argparse.CustomParser(argparse.NewSyntax("//", "/", ':', ""))
	a.MustAdd(argparse.NewFlag("//out", "/o", "output",
		argparse.WithValue(argparse.NeededValue("FILE"))))
	a.MustAdd(argparse.NewFlag("//all", "/a", "all"))

	if err := a.Parse([]string{"program", "//out:x", "--", "/a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := a.Get("/o").Value.Str; s != "x" {
		t.Errorf(`not "x", but "%s"`, s)
	}
	if !a.Get("//all").IsSet {
		t.Error("//all not set")
	}
	if diff := cmp.Diff([]string{"--"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
	if err := a.Parse([]string{"program", "/o:x"}); !errors.Is(err, argparse.ErrUnknownFlag) {
		t.Errorf("expected unknown flag error, got %v", err)
	}
}

func TestParseLogging(t *testing.T) {
	var buf bytes.Buffer
	a := simpleParser()
	a.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	_ = a.Parse([]string{"program", "-a", "-z", "p"})

	for _, s := range []string{
		`msg=flag token=-a flag=--a pos=1`,
		`msg="unknown flag" token=-z pos=2`,
		`msg=positional token=p pos=3`,
	} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("log does not contain %q:\n%s", s, buf.String())
		}
	}

	buf.Reset()
	a.SetLogger(nil)
	_ = a.Parse([]string{"program", "-a"})
	if buf.Len() > 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestAllAndFlags(t *testing.T) {
	a := argparse.NewParser()
	a.MustAdd(argparse.NewFlag("--b", "", "b")).
		MustAdd(argparse.NewFlag("", "-a", "a", argparse.AsRequired()))
	_ = a.Parse([]string{"program", "-a"})

	var got []string
	for f, r := range a.All() {
		got = append(got, fmt.Sprintf("%s %v", f.Name(), r.IsSet))
	}
	if diff := cmp.Diff([]string{"--b false", "-a true"}, got); diff != "" {
		t.Errorf("iteration mismatch (-want +got):\n%s", diff)
	}

	flags := a.Flags()
	flags[1].Short = "-z"
	if f, ok := a.Flag("-a"); !ok || f.Short != "-a" || !f.Required {
		t.Errorf("definition changed through Flags: %+v", f)
	}
}

func TestParseStateNotShared(t *testing.T) {
	a := simpleParser()
	err := a.Parse([]string{"program", "-x", "p", "-y"})

	var returned argparse.Errors
	if !errors.As(err, &returned) || len(returned) != 2 {
		t.Fatalf("unexpected error: %v", err)
	}
	returned[0] = nil
	errs := a.Errors()
	errs[1] = nil
	positionals := a.Positionals()
	positionals[0] = "q"

	if got := a.Errors(); len(got) != 2 || got[0] == nil || got[1] == nil {
		t.Errorf("errors changed by caller: %v", got)
	}
	if diff := cmp.Diff([]string{"p"}, a.Positionals()); diff != "" {
		t.Errorf("positionals mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsAreImmutable(t *testing.T) {
	v := argparse.NeededValue("X")
	f := argparse.NewFlag("--x", "", "x", argparse.WithValue(v))
	a := argparse.NewParser()
	a.MustAdd(f)
	f.Value.Needed = false

	if err := a.Parse([]string{"program", "--x"}); !errors.Is(err, argparse.ErrMissingValue) {
		t.Errorf("definition changed after registration: %v", err)
	}
}

// panicHandler triggers a testing error if panic message differs from expected
func panicHandler(expected string, t *testing.T) {
	err := recover()
	if err == nil {
		if len(expected) > 0 {
			t.Errorf(`(recovery) no error caught, expected: "%s"`, expected)
		}
	} else {
		if e, ok := err.(error); !ok {
			t.Errorf("(recovery) unexpected error: %v", err)
		} else {
			if e.Error() != expected {
				t.Errorf(`(recovery) unexpected error message: "%s" expected: "%s"`, err, expected)
			}
		}
	}
}

// matchErrorMessage returns nil if the error message matches, else an error.
func matchErrorMessage(err error, expected string) error {
	if err == nil {
		return fmt.Errorf(`expected error message missing: "%s"`, expected)
	} else if err.Error() != expected {
		return fmt.Errorf(`unexpected error message: "%s", expected: "%s"`, err.Error(), expected)
	}
	return nil
}
