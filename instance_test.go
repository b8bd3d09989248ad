package vkg

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestDebugReportLevel(t *testing.T) {
	tests := []struct {
		flags vk.DebugReportFlagBits
		want  slog.Level
	}{
		{vk.DebugReportErrorBit, slog.LevelError},
		{vk.DebugReportErrorBit | vk.DebugReportWarningBit, slog.LevelError},
		{vk.DebugReportWarningBit, slog.LevelWarn},
		{vk.DebugReportPerformanceWarningBit, slog.LevelWarn},
		{vk.DebugReportDebugBit, slog.LevelDebug},
		{vk.DebugReportInformationBit, slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, debugReportLevel(vk.DebugReportFlags(tt.flags)), "flags %#x", tt.flags)
	}
}

func TestVersion(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}
	assert.Equal(t, "1.2.3", v.String())
	assert.Equal(t, vk.MakeVersion(1, 2, 3), v.VKVersion())
}

func TestEnableExtensionOnce(t *testing.T) {
	a := &App{}
	a.EnableExtension("VK_KHR_surface").EnableExtension("VK_KHR_surface")
	assert.Equal(t, []string{"VK_KHR_surface"}, a.EnabledExtensions)
}
