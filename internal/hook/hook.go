// Package hook installs the git post-merge hook that re-runs skill linking
// after a pull.
package hook

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rogpeppe/go-internal/lockedfile"

	skerrors "github.com/jenquist/shared-agent-skills/internal/errors"
)

const (
	// Name is the git hook this package manages.
	Name = "post-merge"

	// Marker is the text whose presence means the hook is already installed.
	Marker = "shared-agent-skills"

	// Separator is placed between an existing hook and the appended script.
	Separator = "\n\n# --- Added by @jenquist/shared-agent-skills ---\n"

	// BackupSuffix names the copy of a hook taken before appending to it.
	BackupSuffix = ".backup"
)

//go:embed templates/post-merge
var embeddedTemplates embed.FS

// Result describes what Install did.
type Result int

const (
	// Installed means no hook existed and the script was written.
	Installed Result = iota
	// AlreadyInstalled means the hook already carried the marker.
	AlreadyInstalled
	// Appended means the script was appended to a foreign hook.
	Appended
)

func (r Result) String() string {
	switch r {
	case Installed:
		return "installed"
	case AlreadyInstalled:
		return "already installed"
	case Appended:
		return "appended"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

type templateData struct {
	Command string
}

// Script renders the embedded post-merge template for command.
func Script(command string) (string, error) {
	text, err := embeddedTemplates.ReadFile("templates/" + Name)
	if err != nil {
		return "", skerrors.HookTemplateMissing("templates/"+Name, err)
	}
	return render(Name, string(text), command)
}

// LoadScript renders the template file at path for command. The file uses
// the same {{.Command}} placeholder as the embedded template.
func LoadScript(path, command string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", skerrors.HookTemplateMissing(path, err)
	}
	return render(filepath.Base(path), string(text), command)
}

func render(name, text, command string) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing hook template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Command: command}); err != nil {
		return "", fmt.Errorf("rendering hook template %s: %w", name, err)
	}
	return buf.String(), nil
}

// HooksDir returns the hooks directory of the work tree at gitRoot. When
// .git is a file, as in worktrees and submodules, the directory named by
// its gitdir line is used.
func HooksDir(gitRoot string) (string, error) {
	gitPath := filepath.Join(gitRoot, ".git")

	info, err := os.Stat(gitPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", gitPath, err)
	}
	if info.IsDir() {
		return filepath.Join(gitPath, "hooks"), nil
	}

	data, err := os.ReadFile(gitPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", gitPath, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "gitdir:")
		if !ok {
			continue
		}
		dir := strings.TrimSpace(rest)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(gitRoot, dir)
		}
		return filepath.Join(dir, "hooks"), nil
	}
	return "", fmt.Errorf("%s has no gitdir line", gitPath)
}

// Path returns the post-merge hook path inside hooksDir.
func Path(hooksDir string) string {
	return filepath.Join(hooksDir, Name)
}

// Install writes script as the post-merge hook in hooksDir. A hook that
// already mentions Marker is left alone. Any other existing hook is backed
// up and kept, with script appended after Separator. The hook is left
// executable.
func Install(hooksDir, script string) (Result, error) {
	path := Path(hooksDir)

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return 0, skerrors.HookWriteFailed(path, err)
	}

	_, statErr := os.Lstat(path)
	existed := statErr == nil

	result := Installed
	err := lockedfile.Transform(path, func(old []byte) ([]byte, error) {
		if !existed {
			result = Installed
			return []byte(script), nil
		}
		if bytes.Contains(old, []byte(Marker)) {
			result = AlreadyInstalled
			return old, nil
		}

		if err := lockedfile.Write(path+BackupSuffix, bytes.NewReader(old), 0755); err != nil {
			return nil, fmt.Errorf("backing up hook: %w", err)
		}
		result = Appended
		combined := make([]byte, 0, len(old)+len(Separator)+len(script))
		combined = append(combined, old...)
		combined = append(combined, Separator...)
		return append(combined, script...), nil
	})
	if err != nil {
		return 0, skerrors.HookWriteFailed(path, err)
	}

	if result != AlreadyInstalled {
		if err := os.Chmod(path, 0755); err != nil {
			return 0, skerrors.HookWriteFailed(path, err)
		}
	}
	return result, nil
}
