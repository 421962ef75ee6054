package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
	assert.NotEmpty(t, settingsCmd.Short)
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	subcommands := settingsCmd.Commands()

	names := make([]string, 0, len(subcommands))
	for _, sub := range subcommands {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "wizard")
	assert.Contains(t, names, "embedding")
	assert.Contains(t, names, "llm")
	assert.Contains(t, names, "ask")
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Current Settings")
	assert.Contains(t, buf.String(), "[Embedding]")
	assert.Contains(t, buf.String(), "Provider: Ollama (local)")
	assert.Contains(t, buf.String(), "Model: nomic-embed-text")
	assert.Contains(t, buf.String(), "Base URL: http://localhost:11434")
	assert.Contains(t, buf.String(), "[LLM]")
	assert.Contains(t, buf.String(), "Model: llama3.2")
	assert.Contains(t, buf.String(), "[Ask]")
	assert.Contains(t, buf.String(), "Top K: 5")
	assert.Contains(t, buf.String(), "Min score: 0.50")
	assert.Contains(t, buf.String(), "Configuration is valid.")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Current Settings")
}

func TestSettingsShowCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = &mockSettingsServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get settings")
}

func TestSettingsShowCmd_ServiceNotConfigured(t *testing.T) {
	old := settingsService
	settingsService = nil
	defer func() { settingsService = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "empty uses default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "valid choice", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "max choice", input: "3", maxVal: 3, defaultVal: 1, expected: 3},
		{name: "over max uses default", input: "4", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "zero uses default", input: "0", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "negative uses default", input: "-1", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "non-numeric uses default", input: "abc", maxVal: 3, defaultVal: 2, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal float64
		expected   float64
	}{
		{name: "empty uses default", input: "", defaultVal: 0.5, expected: 0.5},
		{name: "valid score", input: "0.7", defaultVal: 0.5, expected: 0.7},
		{name: "zero is allowed", input: "0", defaultVal: 0.5, expected: 0},
		{name: "one is allowed", input: "1", defaultVal: 0.5, expected: 1},
		{name: "over one uses default", input: "1.5", defaultVal: 0.5, expected: 0.5},
		{name: "negative uses default", input: "-0.2", defaultVal: 0.5, expected: 0.5},
		{name: "non-numeric uses default", input: "high", defaultVal: 0.5, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, parseScore(tt.input, tt.defaultVal), 0.0001)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "short key fully masked", key: "sk-12345", expected: "****"},
		{name: "empty key", key: "", expected: "****"},
		{name: "long key shows ends", key: "sk-proj-abcdef123456", expected: "sk-p...3456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.key))
		})
	}
}
