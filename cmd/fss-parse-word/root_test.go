package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetCommand() {
	createConfig = ""
	cfgFile = ""
	verbose = false
	rootCmd.SetArgs(nil)
}

func TestCreateConfigFlag(t *testing.T) {
	defer resetCommand()

	path := filepath.Join(t.TempDir(), "style.yaml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--create-config", path})

	require.NoError(t, rootCmd.Execute())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, out.String(), path)
}

func TestMissingInputFails(t *testing.T) {
	defer resetCommand()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{})

	assert.Error(t, rootCmd.Execute())
}

func TestVersionTemplate(t *testing.T) {
	defer resetCommand()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	rootCmd.SetArgs([]string{"--version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "version")
}
