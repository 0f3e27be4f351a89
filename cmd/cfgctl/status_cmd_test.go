package main

import (
	"testing"

	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/historysdk/historytest"
	"github.com/ha-config-history/cfgctl/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand(t *testing.T) {
	srv := historytest.New(t)

	out := mustExecute(t, srv, "status")
	assert.Contains(t, out, srv.URL)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, historytest.ServerVersion+" ("+historytest.ServerCommit+")")
	assert.Contains(t, out, version.Short())
}

func TestStatusCommand_VersionFailure(t *testing.T) {
	srv := historytest.New(t)
	srv.FailWith("GET", "/version", 404)

	_, err := execute(t, srv, "status")
	require.ErrorIs(t, err, historysdk.ErrRequestFailed)
	assert.EqualError(t, err, "Failed to fetch version: Not Found")
}

func TestBackupCommand(t *testing.T) {
	srv := historytest.New(t)

	out := mustExecute(t, srv, "backup")
	assert.Contains(t, out, "Backup: backup process completed")
	assert.Equal(t, 1, srv.BackupRuns())

	req := srv.LastRequest()
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/backup", req.Path)
	assert.Empty(t, req.Body)
}
