package historysdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240101T120000.yaml", "20240101T120000.yaml"},
		{"a b.txt", "a%20b.txt"},
		{"c&d.txt", "c%26d.txt"},
		{"a+b", "a%2Bb"},
		{"dir/file", "dir%2Ffile"},
		{"q?x=1#f", "q%3Fx%3D1%23f"},
		{"100%", "100%25"},
		{"ü", "%C3%BC"},
		{"keep-_.~", "keep-_.~"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeSegment(tt.in))
		})
	}
}

func TestBuildPath(t *testing.T) {
	path, err := buildPath(tmplBackupDiff, "automations.yaml", "kitchen lights", "a b.txt", "c&d.txt")
	require.NoError(t, err)
	assert.Equal(t, "/configs/automations.yaml/kitchen%20lights/compare/a%20b.txt/diff/c%26d.txt", path)

	path, err = buildPath(tmplConfig, "scripts.yaml", "x/y")
	require.NoError(t, err)
	assert.Equal(t, "/configs/scripts.yaml/x%2Fy", path)

	_, err = buildPath(tmplBackupFile, "group", "", "file.yaml")
	assert.ErrorIs(t, err, ErrInvalidPathSegment)
	assert.Contains(t, err.Error(), "segment 2")

	dotSegments := []struct {
		name     string
		tmpl     string
		segments []string
	}{
		{"filename dot", tmplBackupFile, []string{"group", "id", "."}},
		{"filename dotdot", tmplBackupFile, []string{"group", "id", ".."}},
		{"group and id dotdot", tmplBackups, []string{"..", ".."}},
		{"diff right dotdot", tmplBackupDiff, []string{"group", "id", "a.yaml", ".."}},
	}
	for _, tt := range dotSegments {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildPath(tt.tmpl, tt.segments...)
			assert.ErrorIs(t, err, ErrInvalidPathSegment)
		})
	}

	// dots inside a name are ordinary characters
	path, err = buildPath(tmplBackupFile, "group", "id", "...yaml")
	require.NoError(t, err)
	assert.Equal(t, "/configs/group/id/backups/...yaml", path)
}
