package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// HookName is the git hook this tool implements.
const HookName = "prepare-commit-msg"

const scriptMarker = "# installed by hookmsg"

// Status describes what currently occupies the hook slot.
type Status int

const (
	StatusAbsent Status = iota
	StatusInstalled
	StatusForeign
)

func (s Status) String() string {
	switch s {
	case StatusInstalled:
		return "installed"
	case StatusForeign:
		return "foreign hook present"
	default:
		return "not installed"
	}
}

var (
	ErrForeignHook  = errors.New("a different prepare-commit-msg hook is already installed")
	ErrNotInstalled = errors.New("hookmsg hook is not installed")
)

// Script renders the hook script that forwards git's arguments to executable.
func Script(executable string) string {
	escaped := strings.ReplaceAll(executable, "'", `'"'"'`)
	return fmt.Sprintf("#!/bin/sh\n%s\nexec '%s' %s \"$@\"\n", scriptMarker, escaped, HookName)
}

// HookPath is the location of the hook inside hooksDir.
func HookPath(hooksDir string) string {
	return filepath.Join(hooksDir, HookName)
}

// InspectHook reports whether hooksDir holds our hook, another one, or none.
func InspectHook(hooksDir string) (Status, error) {
	content, err := os.ReadFile(HookPath(hooksDir))
	if errors.Is(err, os.ErrNotExist) {
		return StatusAbsent, nil
	}
	if err != nil {
		return StatusAbsent, errors.Wrap(err, "cannot read existing hook")
	}
	if strings.Contains(string(content), scriptMarker) {
		return StatusInstalled, nil
	}
	return StatusForeign, nil
}

// Install writes the hook script into hooksDir. A foreign hook is only
// replaced when force is set.
func Install(hooksDir, executable string, force bool) (string, error) {
	status, err := InspectHook(hooksDir)
	if err != nil {
		return "", err
	}
	if status == StatusForeign && !force {
		return "", errors.WithHint(ErrForeignHook, "re-run with --force to replace it")
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", errors.Wrap(err, "cannot create hooks directory")
	}

	path := HookPath(hooksDir)
	if err := os.WriteFile(path, []byte(Script(executable)), 0o755); err != nil {
		return "", errors.Wrap(err, "cannot write hook")
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", errors.Wrap(err, "cannot make hook executable")
	}
	return path, nil
}

// Uninstall removes the hook if, and only if, it was installed by hookmsg.
func Uninstall(hooksDir string) error {
	status, err := InspectHook(hooksDir)
	if err != nil {
		return err
	}

	switch status {
	case StatusAbsent:
		return ErrNotInstalled
	case StatusForeign:
		return ErrForeignHook
	}

	if err := os.Remove(HookPath(hooksDir)); err != nil {
		return errors.Wrap(err, "cannot remove hook")
	}
	return nil
}
