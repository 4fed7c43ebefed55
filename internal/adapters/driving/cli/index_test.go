package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_PrintsStats(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Indexed 3 files in /mem")
	assert.Contains(t, out, "(1 skipped)")
	assert.Contains(t, out, "(2 stale entries pruned)")
}

func TestIndexCmd_FailurePropagates(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexerService = &mockIndexer{reindexErr: errors.New("store unavailable")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"index"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "recall version 1.2.3")
}
