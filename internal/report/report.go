// Package report prints reconciliation results for people.
//
// Success lines go to the output writer and only appear in verbose mode.
// Mismatches and failures always go to the error writer.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/jenquist/shared-agent-skills/internal/catalog"
	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
	"github.com/jenquist/shared-agent-skills/internal/hook"
	"github.com/jenquist/shared-agent-skills/internal/reconcile"
)

// ColorMode selects whether labels are colored.
type ColorMode int

const (
	// ColorAuto colors output when the terminal supports it.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// DetectColorMode returns ColorNever when NO_COLOR is set, ColorAuto otherwise.
func DetectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	return ColorAuto
}

// Printer writes entry lines and summaries.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	ok      *color.Color
	changed *color.Color
	warn    *color.Color
	fail    *color.Color
	bold    *color.Color
}

// New returns a Printer writing to out and errOut.
func New(out, errOut io.Writer, mode ColorMode, verbose bool) *Printer {
	p := &Printer{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		ok:      color.New(color.FgGreen),
		changed: color.New(color.FgCyan),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		bold:    color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.ok, p.changed, p.warn, p.fail, p.bold} {
		switch mode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}
	return p
}

// Verbose reports whether success lines are printed.
func (p *Printer) Verbose() bool {
	return p.verbose
}

// Entry prints the line for one result.
func (p *Printer) Entry(r reconcile.Result) {
	name := r.Entry.ID + catalog.LinkExt

	switch r.Outcome {
	case reconcile.OutcomeCreated:
		p.success(p.changed, "Created:", name)
	case reconcile.OutcomeUpdated:
		p.success(p.changed, "Updated:", name)
	case reconcile.OutcomeValid:
		p.success(p.ok, "OK:", name)
	case reconcile.OutcomeRemoved:
		p.success(p.changed, "Removed:", name)
	case reconcile.OutcomeAbsent:
		// Nothing to say about a link that was never there.
	case reconcile.OutcomeMismatch:
		fmt.Fprintf(p.errOut, "  %s %s\n", p.warn.Sprint("MISMATCH:"), name)
	case reconcile.OutcomeError:
		fmt.Fprintf(p.errOut, "  %s %s: %s\n", p.fail.Sprint("Error linking"), r.Entry.ID, causeText(r.Err))
	}
}

func (p *Printer) success(c *color.Color, label, name string) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, "  %s %s\n", c.Sprint(label), name)
}

// causeText returns the underlying failure without the error code prefix.
func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	var serr *skerrors.SkillError
	if errors.As(err, &serr) && serr.Cause != nil {
		return serr.Cause.Error()
	}
	return err.Error()
}

// Entries prints the line for every result in s.
func (p *Printer) Entries(s *reconcile.Summary) {
	for _, r := range s.Results {
		p.Entry(r)
	}
}

// CreatedTarget prints the note for a newly created target directory.
func (p *Printer) CreatedTarget(display string) {
	if p.verbose {
		fmt.Fprintf(p.out, "Created directory: %s/\n", display)
	}
}

// CleanStart prints the line shown before clean runs.
func (p *Printer) CleanStart(display string) {
	fmt.Fprintf(p.out, "Cleaning symlinks from %s/...\n", display)
}

// Summary prints the closing lines for s. display is the target directory
// as the user named it.
func (p *Printer) Summary(s *reconcile.Summary, display string) {
	switch s.Mode {
	case reconcile.ModeApply:
		fmt.Fprintf(p.out, "\nLinked %d skills to %s/\n", len(s.Results), display)
		p.count("Created", s.Count(reconcile.OutcomeCreated), p.changed)
		p.count("Updated", s.Count(reconcile.OutcomeUpdated), p.changed)
		p.count("Errors", s.Count(reconcile.OutcomeError), p.fail)
	case reconcile.ModeCheck:
		fmt.Fprintf(p.out, "\nSymlink check: %s valid, %s mismatched, %s errors\n",
			p.ok.Sprint(s.Count(reconcile.OutcomeValid)),
			p.warnIf(s.Count(reconcile.OutcomeMismatch)),
			p.failIf(s.Count(reconcile.OutcomeError)))
	case reconcile.ModeClean:
		if n := s.Count(reconcile.OutcomeError); n > 0 {
			fmt.Fprintf(p.out, "%s %d\n", p.fail.Sprint("Errors:"), n)
		}
		fmt.Fprintln(p.out, "Done.")
	}
}

func (p *Printer) count(label string, n int, c *color.Color) {
	if n > 0 {
		fmt.Fprintf(p.out, "  %s %d\n", c.Sprint(label+":"), n)
	}
}

func (p *Printer) warnIf(n int) string {
	if n == 0 {
		return "0"
	}
	return p.warn.Sprint(n)
}

func (p *Printer) failIf(n int) string {
	if n == 0 {
		return "0"
	}
	return p.fail.Sprint(n)
}

// ListItem is one skill in list output.
type ListItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}

// List prints the catalog in the human format.
func (p *Printer) List(items []ListItem) {
	fmt.Fprintln(p.out, p.bold.Sprint("Available skills:"))
	for _, it := range items {
		if p.verbose && it.Description != "" {
			fmt.Fprintf(p.out, "  - %s: %s\n", it.Name, it.Description)
			continue
		}
		fmt.Fprintf(p.out, "  - %s\n", it.Name)
	}
	fmt.Fprintf(p.out, "\nTotal: %d skills\n", len(items))
}

// Hook prints the outcome of a hook installation.
func (p *Printer) Hook(result hook.Result, path string) {
	switch result {
	case hook.AlreadyInstalled:
		fmt.Fprintln(p.out, "Hook already installed.")
		return
	case hook.Appended:
		fmt.Fprintf(p.out, "Backed up existing hook to: %s\n", path+hook.BackupSuffix)
		fmt.Fprintln(p.out, p.ok.Sprint("Appended skill update to existing post-merge hook."))
	default:
		fmt.Fprintln(p.out, p.ok.Sprint("Installed post-merge hook."))
	}
	fmt.Fprintln(p.out, "\nSkills will now auto-update on `git pull`.")
}

// Error prints a fatal error with a hint when one applies.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(p.errOut, "%s %v\n", p.fail.Sprint("Error:"), err)
	if skerrors.HasCode(err, skerrors.CodeCatalogUnavailable) {
		fmt.Fprintln(p.errOut, "Run: npm install @jenquist/shared-agent-skills")
	}
}
