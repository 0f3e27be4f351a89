package historysdk_test

import (
	"net/http"
	"testing"

	"github.com/ha-config-history/cfgctl/internal/historysdk"
	"github.com/ha-config-history/cfgctl/internal/historysdk/historytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndVersion(t *testing.T) {
	srv := historytest.New(t)
	c := newClient(t, srv.URL)

	health, err := c.Health(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Uptime)

	ver, err := c.Version(t.Context())
	require.NoError(t, err)
	assert.Equal(t, historytest.ServerVersion, ver.Version)
	assert.Equal(t, historytest.ServerCommit, ver.Commit)

	srv.FailWith(http.MethodGet, "/health", http.StatusServiceUnavailable)
	_, err = c.Health(t.Context())
	assert.EqualError(t, err, "Failed to fetch health: Service Unavailable")

	srv.FailWith(http.MethodGet, "/version", http.StatusNotFound)
	ver, err = c.Version(t.Context())
	assert.Nil(t, ver)
	require.ErrorIs(t, err, historysdk.ErrRequestFailed)
	assert.EqualError(t, err, "Failed to fetch version: Not Found")
}
