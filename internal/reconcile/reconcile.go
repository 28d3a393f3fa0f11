// Package reconcile converges a target directory of skill links with a
// catalog.
//
// Every catalog entry maps to one link, <target>/<id>.md, pointing at the
// skill's SKILL.md through a path relative to the link's directory. Entries
// are reconciled one at a time in catalog order. A failure on one entry is
// recorded in its Result and never stops the run.
package reconcile

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jenquist/shared-agent-skills/internal/catalog"
	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
	"github.com/jenquist/shared-agent-skills/internal/logging"
)

// Mode selects what a run does to the target directory.
type Mode string

const (
	// ModeApply creates or replaces links so that every entry is valid.
	ModeApply Mode = "apply"
	// ModeCheck reports entries that are not valid without changing anything.
	ModeCheck Mode = "check"
	// ModeClean removes the link of every catalog entry.
	ModeClean Mode = "clean"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeApply, ModeCheck, ModeClean:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected apply, check or clean)", s)
}

// Outcome is the per-entry result kind.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeUpdated  Outcome = "updated"
	OutcomeValid    Outcome = "valid"
	OutcomeMismatch Outcome = "mismatch"
	OutcomeError    Outcome = "error"
	OutcomeRemoved  Outcome = "removed"
	OutcomeAbsent   Outcome = "absent"
)

// State is what exists at a link path before reconciliation.
type State int

const (
	StateAbsent State = iota
	StateSymlink
	StateRegular
	StateOther
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateSymlink:
		return "symlink"
	case StateRegular:
		return "regular file"
	case StateOther:
		return "other"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reconciler applies a Mode to a catalog and a target directory.
type Reconciler struct {
	fs     FS
	logger *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithFS sets the filesystem used by the reconciler.
func WithFS(fsys FS) Option {
	return func(r *Reconciler) {
		r.fs = fsys
	}
}

// WithLogger sets the logger used by the reconciler.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New returns a Reconciler backed by the real filesystem unless overridden.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		fs:     osFS{},
		logger: logging.NewDefault(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile runs mode over every entry of cat against targetDir. The
// returned error is fatal and means no entry was processed. Per-entry
// failures are reported through the Summary.
func (r *Reconciler) Reconcile(cat *catalog.Catalog, targetDir string, mode Mode) (*Summary, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	targetDir, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}

	logger := logging.WithMode(r.logger, string(mode))

	summary := &Summary{Mode: mode, TargetDir: targetDir}
	if mode == ModeApply {
		created, err := r.ensureDir(targetDir)
		if err != nil {
			return nil, err
		}
		summary.CreatedTarget = created
	}

	for _, entry := range cat.Entries(targetDir) {
		var res Result
		switch mode {
		case ModeApply:
			res = r.apply(entry)
		case ModeCheck:
			res = r.check(entry)
		case ModeClean:
			res = r.clean(entry)
		}

		elog := logging.WithSkill(logger, entry.ID, entry.Link)
		if res.Outcome == OutcomeError {
			elog.Warn("entry failed", "prior", res.Prior.String(), "error", res.Err)
		} else {
			elog.Debug("entry reconciled", "outcome", string(res.Outcome), "prior", res.Prior.String())
		}
		summary.Results = append(summary.Results, res)
	}

	return summary, nil
}

// ensureDir creates dir when missing and reports whether it did.
func (r *Reconciler) ensureDir(dir string) (bool, error) {
	info, err := r.fs.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, skerrors.TargetUnwritable(dir, fmt.Errorf("not a directory"))
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, skerrors.TargetUnwritable(dir, err)
	}
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return false, skerrors.TargetUnwritable(dir, err)
	}
	r.logger.Debug("created target directory", "path", dir)
	return true, nil
}

// inspect reads the state of the entry's link without following it.
func (r *Reconciler) inspect(link string) (State, string, error) {
	info, err := r.fs.Lstat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return StateAbsent, "", nil
		}
		return StateAbsent, "", err
	}

	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		dest, err := r.fs.Readlink(link)
		if err != nil {
			return StateSymlink, "", err
		}
		return StateSymlink, dest, nil
	case mode.IsRegular():
		return StateRegular, "", nil
	default:
		return StateOther, "", nil
	}
}

// inspectOp names the call that failed in inspect.
func inspectOp(s State) string {
	if s == StateSymlink {
		return "readlink"
	}
	return "lstat"
}

// PointsTo reports whether a link stored at link with target dest resolves
// to source. Relative targets are resolved against the link's directory and
// both sides are cleaned, so different spellings of one path compare equal.
func PointsTo(link, dest, source string) bool {
	if dest == "" {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest) == filepath.Clean(source)
}

// RelTarget returns the target to store in link so that it resolves to source.
func RelTarget(link, source string) (string, error) {
	return filepath.Rel(filepath.Dir(link), source)
}

func (r *Reconciler) apply(e catalog.Entry) Result {
	res := Result{Entry: e}

	state, dest, err := r.inspect(e.Link)
	res.Prior, res.Dest = state, dest
	if err != nil {
		return failed(res, inspectOp(state), err)
	}

	if state == StateSymlink && PointsTo(e.Link, dest, e.Source) {
		res.Outcome = OutcomeValid
		return res
	}

	target, err := RelTarget(e.Link, e.Source)
	if err != nil {
		return failed(res, "resolve", err)
	}

	switch state {
	case StateAbsent:
		if err := r.fs.Symlink(target, e.Link); err != nil {
			return failed(res, "symlink", err)
		}
		res.Outcome = OutcomeCreated
	case StateSymlink, StateRegular:
		if err := r.replace(target, e.Link); err != nil {
			return failed(res, "replace", err)
		}
		res.Outcome = OutcomeUpdated
	default:
		// Directories and special files cannot be renamed over.
		if err := r.fs.Remove(e.Link); err != nil {
			return failed(res, "remove", err)
		}
		if err := r.fs.Symlink(target, e.Link); err != nil {
			return failed(res, "symlink", err)
		}
		res.Outcome = OutcomeUpdated
	}
	return res
}

// replace swaps the entry at link for a symlink to target. The new link is
// created beside the old one and renamed over it, so link never goes missing.
func (r *Reconciler) replace(target, link string) error {
	tmp := filepath.Join(filepath.Dir(link),
		fmt.Sprintf(".%s.%d.tmp", filepath.Base(link), time.Now().UnixNano()))

	if err := r.fs.Symlink(target, tmp); err != nil {
		return err
	}
	if err := r.fs.Rename(tmp, link); err != nil {
		_ = r.fs.Remove(tmp)
		return err
	}
	return nil
}

func (r *Reconciler) check(e catalog.Entry) Result {
	res := Result{Entry: e}

	state, dest, err := r.inspect(e.Link)
	res.Prior, res.Dest = state, dest
	if err == nil && state == StateSymlink && PointsTo(e.Link, dest, e.Source) {
		res.Outcome = OutcomeValid
		return res
	}

	res.Outcome = OutcomeMismatch
	mismatch := skerrors.Mismatch(e.ID, e.Link)
	if err != nil {
		mismatch.WithCause(err)
	}
	res.Err = mismatch
	return res
}

func (r *Reconciler) clean(e catalog.Entry) Result {
	res := Result{Entry: e}

	state, dest, err := r.inspect(e.Link)
	res.Prior, res.Dest = state, dest
	if err != nil && state == StateAbsent {
		return failed(res, inspectOp(state), err)
	}
	if state == StateAbsent {
		res.Outcome = OutcomeAbsent
		return res
	}

	if err := r.fs.Remove(e.Link); err != nil {
		return failed(res, "remove", err)
	}
	res.Outcome = OutcomeRemoved
	return res
}

func failed(res Result, op string, err error) Result {
	res.Outcome = OutcomeError
	res.Err = skerrors.EntryOperationFailed(res.Entry.ID, op, res.Entry.Link, err)
	return res
}
