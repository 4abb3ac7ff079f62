package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spravado/domovnik/internal/ui/components"
)

func TestSplitLinesSplitsOnNewlines(t *testing.T) {
	lines := splitLines("a\nb\nc")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestRenderBannerIncludesSubtitleAndNoOSC(t *testing.T) {
	out := RenderBanner()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Evidence nemovitostí a nájmů")
	assert.Contains(t, clean, "terminálová kancelář")
	assert.True(t, strings.Contains(clean, "─"))
}
