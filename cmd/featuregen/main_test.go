package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suborbital/necrosis/util"
)

func TestRootCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "features.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[[features]]\nname = \"fog\"\ndescription = \"volumetric fog.\"\n"), 0600))

	friendly := new(bytes.Buffer)
	prev := util.SetOutput(friendly)
	defer util.SetOutput(prev)

	cmd := rootCommand()
	cmd.SetArgs([]string{"--manifest", manifest, "--out", dir})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "fog_on.go"))
	assert.FileExists(t, filepath.Join(dir, "fog_off.go"))
	assert.FileExists(t, filepath.Join(dir, "flags_gen.go"))
	assert.Contains(t, friendly.String(), "⏩ START: generating features from "+manifest)
	assert.Contains(t, friendly.String(), "generated 3 files for 1 features")
}

func TestRootCommand_BadManifest(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{"--manifest", filepath.Join(t.TempDir(), "features.ini")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.Error(t, cmd.Execute())
}
