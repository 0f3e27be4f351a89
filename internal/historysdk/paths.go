package historysdk

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	pathConfigs  = "/configs"
	pathBackup   = "/backup"
	pathSettings = "/settings"
	pathHealth   = "/health"
	pathVersion  = "/version"

	tmplConfig        = "/configs/%s/%s"
	tmplBackups       = "/configs/%s/%s/backups"
	tmplBackupFile    = "/configs/%s/%s/backups/%s"
	tmplBackupRestore = "/configs/%s/%s/backups/%s/restore"
	tmplBackupDiff    = "/configs/%s/%s/compare/%s/diff/%s"
)

// EscapeSegment percent-encodes s as a single path segment. Everything other than
// ASCII letters, digits and "-_.~" is escaped, so "/", "&", "?" and spaces never leak
// into the path structure.
func EscapeSegment(s string) string {
	// QueryEscape already turns a literal "+" into %2B, so the only "+" left are spaces.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// buildPath fills tmpl with the escaped segments. Empty, "." and ".." segments are
// rejected: they survive escaping and path normalization would fold them onto a
// different endpoint.
func buildPath(tmpl string, segments ...string) (string, error) {
	args := make([]any, len(segments))
	for i, seg := range segments {
		switch seg {
		case "":
			return "", fmt.Errorf("%w: segment %d is empty", ErrInvalidPathSegment, i+1)
		case ".", "..":
			return "", fmt.Errorf("%w: segment %d is a dot-segment %q", ErrInvalidPathSegment, i+1, seg)
		}
		args[i] = EscapeSegment(seg)
	}
	return fmt.Sprintf(tmpl, args...), nil
}
