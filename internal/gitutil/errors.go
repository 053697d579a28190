package gitutil

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samzong/hookmsg/internal/gitcmd"
)

// WrapGitError builds an error message that prefers git stderr output when present.
func WrapGitError(action string, result gitcmd.Result, err error) error {
	errMsg := strings.TrimSpace(string(result.Stderr))
	if errMsg != "" {
		return errors.Wrapf(err, "%s: %s", action, errMsg)
	}
	return errors.Wrap(err, action)
}
