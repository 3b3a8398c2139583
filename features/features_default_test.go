//go:build !necrosis_cheat_system && !necrosis_debug_overlay && !necrosis_console_commands && !necrosis_performance_metrics

package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// With no build tags every switch is absent and must resolve to false.
func TestAbsentTagsResolveToFalse(t *testing.T) {
	assert.False(t, CheatSystemEnabled)
	assert.False(t, DebugOverlayEnabled)
	assert.False(t, ConsoleCommandsEnabled)
	assert.False(t, PerformanceMetricsEnabled)

	for _, s := range Snapshot() {
		assert.False(t, s.Enabled, s.Name)
	}
}
