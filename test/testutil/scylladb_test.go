package testutil

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkAIOAvailability checks if the system has available AIO slots.
// ScyllaDB requires Linux AIO even with --reactor-backend=epoll.
func checkAIOAvailability(t *testing.T) {
	t.Helper()

	aioNrData, err := os.ReadFile("/proc/sys/fs/aio-nr")
	if err != nil {
		t.Skipf("Cannot read /proc/sys/fs/aio-nr: %v (not on Linux?)", err)
	}

	aioMaxNrData, err := os.ReadFile("/proc/sys/fs/aio-max-nr")
	if err != nil {
		t.Skipf("Cannot read /proc/sys/fs/aio-max-nr: %v", err)
	}

	aioNr, _ := strconv.ParseInt(strings.TrimSpace(string(aioNrData)), 10, 64)
	aioMaxNr, _ := strconv.ParseInt(strings.TrimSpace(string(aioMaxNrData)), 10, 64)

	// ScyllaDB needs at least some AIO slots available
	if aioNr >= aioMaxNr {
		t.Skipf("No AIO slots available: aio-nr=%d >= aio-max-nr=%d. "+
			"Fix with: sudo sysctl -w fs.aio-max-nr=1048576", aioNr, aioMaxNr)
	}

	t.Logf("AIO slots available: aio-nr=%d, aio-max-nr=%d (free=%d)",
		aioNr, aioMaxNr, aioMaxNr-aioNr)
}

func TestStartScyllaDBContainer(t *testing.T) {
	// This test is only for debugging
	t.Skip()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	// Check if AIO is available before attempting to start ScyllaDB
	checkAIOAvailability(t)

	ctx := t.Context()

	container, err := StartScyllaDB(ctx, t, nil)
	require.NoError(t, err, "failed to start ScyllaDB container")
	require.NotNil(t, container, "container should not be nil")
	require.NotNil(t, container.Session, "session should not be nil")
	require.NotEmpty(t, container.Host, "host should not be empty")

	// Execute a simple query to verify the session works
	var releaseVersion string
	err = container.Session.Query("SELECT release_version FROM system.local").Scan(&releaseVersion)
	require.NoError(t, err, "failed to query cluster")
	require.NotEmpty(t, releaseVersion, "release version should not be empty")

	t.Logf("ScyllaDB container: host=%s, version=%s", container.Host, releaseVersion)
}
