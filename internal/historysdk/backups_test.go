package historysdk_test

import (
	"net/http"
	"testing"

	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/historysdk/historytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	group = "automations.yaml"
	id    = "morning"
	older = "20260301T120000.yaml"
	newer = "20260302T120000.yaml"
)

func seeded(t *testing.T) (*historytest.Server, *historysdk.Client) {
	t.Helper()
	srv := historytest.New(t)
	srv.AddBackup(group, id, "Morning", older, historytest.Backup{Date: t0, Content: "alias: Morning\nmode: single\n"})
	srv.AddBackup(group, id, "Morning", newer, historytest.Backup{Date: t0.AddDate(0, 0, 1), Content: "alias: Morning\nmode: restart\n"})
	return srv, newClient(t, srv.URL)
}

func TestGetBackupContent(t *testing.T) {
	t.Run("returns the exact text", func(t *testing.T) {
		srv, c := seeded(t)

		content, err := c.GetBackupContent(t.Context(), group, id, older)
		require.NoError(t, err)
		assert.Equal(t, "alias: Morning\nmode: single\n", content)
		assert.Equal(t, "/configs/automations.yaml/morning/backups/20260301T120000.yaml", srv.LastRequest().Path)
	})

	t.Run("filename is encoded", func(t *testing.T) {
		srv, c := seeded(t)
		srv.AddBackup(group, id, "Morning", "old copy #2.yaml", historytest.Backup{Date: t0, Content: "x: y\n"})

		content, err := c.GetBackupContent(t.Context(), group, id, "old copy #2.yaml")
		require.NoError(t, err)
		assert.Equal(t, "x: y\n", content)
		assert.Equal(t, "/configs/automations.yaml/morning/backups/old%20copy%20%232.yaml", srv.LastRequest().Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, c := seeded(t)

		content, err := c.GetBackupContent(t.Context(), group, id, "nope.yaml")
		assert.Empty(t, content)
		assert.EqualError(t, err, "Failed to fetch backup content: Not Found")
	})
}

func TestCompareBackups(t *testing.T) {
	t.Run("filenames are percent encoded", func(t *testing.T) {
		srv := historytest.New(t)
		srv.AddBackup("grp", "id", "Thing", "a b.txt", historytest.Backup{Date: t0, Content: "one\n"})
		srv.AddBackup("grp", "id", "Thing", "c&d.txt", historytest.Backup{Date: t0, Content: "two\n"})
		c := newClient(t, srv.URL)

		diff, err := c.CompareBackups(t.Context(), "grp", "id", "a b.txt", "c&d.txt")
		require.NoError(t, err)

		assert.Equal(t, "/configs/grp/id/compare/a%20b.txt/diff/c%26d.txt", srv.LastRequest().Path)
		assert.Equal(t, &historysdk.BackupDiffResponse{
			LeftFilename:  "a b.txt",
			RightFilename: "c&d.txt",
			LeftContent:   "one\n",
			RightContent:  "two\n",
			Diff:          "-one\n+two\n",
		}, diff)
	})

	t.Run("server error", func(t *testing.T) {
		srv, c := seeded(t)
		srv.FailWith(http.MethodGet, "/configs/:group/:id/compare/:left/diff/:right", http.StatusBadGateway)

		diff, err := c.CompareBackups(t.Context(), group, id, older, newer)
		assert.Nil(t, diff)
		assert.EqualError(t, err, "Failed to fetch backup diff: Bad Gateway")
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Run("posts without a body", func(t *testing.T) {
		srv, c := seeded(t)

		resp, err := c.RestoreBackup(t.Context(), group, id, older)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Successfully restored backup to automations.yaml", resp.Message)

		req := srv.LastRequest()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/configs/automations.yaml/morning/backups/20260301T120000.yaml/restore", req.Path)
		assert.Empty(t, req.Body)
	})

	t.Run("not found", func(t *testing.T) {
		_, c := seeded(t)

		resp, err := c.RestoreBackup(t.Context(), group, id, "gone.yaml")
		assert.Nil(t, resp)
		assert.EqualError(t, err, "Failed to restore backup: Not Found")
	})
}

func TestTriggerBackup(t *testing.T) {
	t.Run("returns the status", func(t *testing.T) {
		srv := historytest.New(t)
		srv.RespondWith(http.MethodPost, "/backup", http.StatusOK, "application/json", `{"status":"ok"}`)
		c := newClient(t, srv.URL)

		resp, err := c.TriggerBackup(t.Context())
		require.NoError(t, err)
		assert.Equal(t, &historysdk.StatusResponse{Status: "ok"}, resp)

		req := srv.LastRequest()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/backup", req.Path)
		assert.Empty(t, req.Body)
	})

	t.Run("runs the backup", func(t *testing.T) {
		srv := historytest.New(t)
		c := newClient(t, srv.URL)

		resp, err := c.TriggerBackup(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "backup process completed", resp.Status)
		assert.Equal(t, 1, srv.BackupRuns())
	})

	t.Run("server error", func(t *testing.T) {
		srv := historytest.New(t)
		srv.FailWith(http.MethodPost, "/backup", http.StatusInternalServerError)
		c := newClient(t, srv.URL)

		_, err := c.TriggerBackup(t.Context())
		assert.EqualError(t, err, "Failed to trigger backup: Internal Server Error")
	})
}

func TestDeleteBackup(t *testing.T) {
	t.Run("deletes one file", func(t *testing.T) {
		srv, c := seeded(t)

		resp, err := c.DeleteBackup(t.Context(), group, id, older)
		require.NoError(t, err)
		assert.Equal(t, "backup deleted successfully", resp.Status)
		assert.False(t, srv.HasBackup(group, id, older))
		assert.True(t, srv.HasBackup(group, id, newer))

		req := srv.LastRequest()
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/configs/automations.yaml/morning/backups/20260301T120000.yaml", req.Path)
	})

	t.Run("encoded filename", func(t *testing.T) {
		srv, c := seeded(t)
		srv.AddBackup(group, id, "Morning", "a&b c.yaml", historytest.Backup{Date: t0, Content: "k: v\n"})

		_, err := c.DeleteBackup(t.Context(), group, id, "a&b c.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/configs/automations.yaml/morning/backups/a%26b%20c.yaml", srv.LastRequest().Path)
		assert.False(t, srv.HasBackup(group, id, "a&b c.yaml"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, c := seeded(t)

		_, err := c.DeleteBackup(t.Context(), group, id, "nope.yaml")
		assert.EqualError(t, err, "Failed to delete backup: Internal Server Error")
	})
}

func TestDeleteAllBackups(t *testing.T) {
	t.Run("removes the config", func(t *testing.T) {
		srv, c := seeded(t)

		resp, err := c.DeleteAllBackups(t.Context(), group, id)
		require.NoError(t, err)
		assert.Equal(t, "all backups deleted successfully", resp.Status)

		req := srv.LastRequest()
		assert.Equal(t, http.MethodDelete, req.Method)
		assert.Equal(t, "/configs/automations.yaml/morning", req.Path)

		configs, err := c.GetConfigs(t.Context())
		require.NoError(t, err)
		assert.Empty(t, configs)
	})

	t.Run("unknown config", func(t *testing.T) {
		_, c := seeded(t)

		_, err := c.DeleteAllBackups(t.Context(), group, "other")
		assert.EqualError(t, err, "Failed to delete all backups: Not Found")
	})
}

func TestDotSegmentsAreRejected(t *testing.T) {
	srv, c := seeded(t)

	_, err := c.DeleteBackup(t.Context(), group, id, "..")
	assert.ErrorIs(t, err, historysdk.ErrInvalidPathSegment)

	_, err = c.GetConfigBackups(t.Context(), "..", "..")
	assert.ErrorIs(t, err, historysdk.ErrInvalidPathSegment)

	_, err = c.GetBackupContent(t.Context(), group, id, ".")
	assert.ErrorIs(t, err, historysdk.ErrInvalidPathSegment)

	assert.Empty(t, srv.Requests())
	assert.True(t, srv.HasBackup(group, id, older))
}
