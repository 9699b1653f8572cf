package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/jpvetterli/argparse"
)

// report is what argcheck prints about a parse.
type report struct {
	Program     string        `json:"program"               yaml:"program"`
	OK          bool          `json:"ok"                    yaml:"ok"`
	Flags       []flagReport  `json:"flags"                 yaml:"flags"`
	Positionals []string      `json:"positionals,omitempty" yaml:"positionals,omitempty"`
	Errors      []errorReport `json:"errors,omitempty"      yaml:"errors,omitempty"`
}

type flagReport struct {
	Long     string `json:"long,omitempty"  yaml:"long,omitempty"`
	Short    string `json:"short,omitempty" yaml:"short,omitempty"`
	Set      bool   `json:"set"             yaml:"set"`
	Count    int    `json:"count"           yaml:"count"`
	HasValue bool   `json:"has_value"       yaml:"has_value"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
}

type errorReport struct {
	Kind    string `json:"kind"    yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func newReport(program string, a *argparse.Parser) *report {
	rep := &report{
		Program:     program,
		OK:          a.OK(),
		Flags:       make([]flagReport, 0),
		Positionals: a.Positionals(),
	}
	for f, r := range a.All() {
		rep.Flags = append(rep.Flags, flagReport{
			Long:     f.Long,
			Short:    f.Short,
			Set:      r.IsSet,
			Count:    r.Count,
			HasValue: r.HasValue,
			Value:    r.Value.Str,
		})
	}
	for _, e := range a.Errors() {
		rep.Errors = append(rep.Errors, errorReport{Kind: e.Kind.String(), Message: e.Error()})
	}
	return rep
}

func (rep *report) write(w io.Writer, format string, colorize bool) error {
	switch format {
	case "json", "yaml":
		var opts []yaml.EncodeOption
		if format == "json" {
			opts = append(opts, yaml.JSON())
		}
		b, err := yaml.MarshalWithOptions(rep, opts...)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "text", "":
		return rep.writeText(w, colorize)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func (rep *report) writeText(w io.Writer, colorize bool) error {
	set := color.New(color.FgGreen)
	unset := color.New(color.Faint)
	bad := color.New(color.FgRed)
	if !colorize {
		for _, c := range []*color.Color{set, unset, bad} {
			c.DisableColor()
		}
	}

	names := make([]string, len(rep.Flags))
	width := 0
	for i, f := range rep.Flags {
		names[i] = strings.Join(nonEmpty(f.Long, f.Short), ", ")
		width = max(width, len(names[i]))
	}

	fmt.Fprintf(w, "%s\n", rep.Program)
	for i, f := range rep.Flags {
		fmt.Fprintf(w, "  %-*s ", width, names[i])
		switch {
		case !f.Set:
			unset.Fprint(w, "unset")
		case f.HasValue:
			set.Fprintf(w, "set %q", f.Value)
		case len(f.Value) > 0:
			set.Fprintf(w, "set (default %q)", f.Value)
		default:
			set.Fprint(w, "set")
		}
		if f.Count > 1 {
			fmt.Fprintf(w, " x%d", f.Count)
		}
		fmt.Fprintln(w)
	}
	if len(rep.Positionals) > 0 {
		fmt.Fprintf(w, "positionals: %q\n", rep.Positionals)
	}
	for _, e := range rep.Errors {
		bad.Fprintf(w, "error: %s\n", e.Message)
	}
	return nil
}

func nonEmpty(s ...string) []string {
	r := make([]string, 0, len(s))
	for _, v := range s {
		if len(v) > 0 {
			r = append(r, v)
		}
	}
	return r
}
