package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCmd_Use(t *testing.T) {
	assert.Equal(t, "connect", connectCmd.Use)
	assert.NotEmpty(t, connectCmd.Short)
	assert.True(t, connectCmd.HasSubCommands())
}

func TestConnectGoogleCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "google"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Opening your browser to authorize Google Drive access...")
	assert.Contains(t, buf.String(), "Google account connected.")
}

func TestConnectGoogleCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	connectService = &mockConnectServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "google"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect Google account")
}

func TestConnectGoogleCmd_ServiceNotConfigured(t *testing.T) {
	old := connectService
	connectService = nil
	defer func() { connectService = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "google"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect service not configured")
}

func TestConnectGitHubCmd_WithTokenFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { connectGitHubToken = "" }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "github", "--token", "ghp_testtoken"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GitHub token stored.")
}

func TestConnectGitHubCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	connectService = &mockConnectServiceError{}
	defer func() { connectGitHubToken = "" }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "github", "--token", "ghp_testtoken"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect GitHub account")
}

func TestConnectStatusCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"connect", "status"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Google Drive: connected")
	assert.Contains(t, buf.String(), "GitHub:       not connected")
}

func TestConnectedLabel(t *testing.T) {
	assert.Equal(t, "connected", connectedLabel(true))
	assert.Equal(t, "not connected", connectedLabel(false))
}
