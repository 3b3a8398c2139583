package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suborbital/necrosis/features"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := rootCommand()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range []string{"start", "features", "overlay", "version"} {
		assert.True(t, names[name], name)
	}

	assert.Equal(t, features.CheatSystemEnabled, names["cheat"])
}
