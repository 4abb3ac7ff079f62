package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spravado/domovnik/internal/nav"
)

func TestPrintLinkHelpExamplesParse(t *testing.T) {
	var b strings.Builder
	PrintLinkHelp(&b)
	out := b.String()

	assert.Contains(t, out, "--link")
	assert.Contains(t, out, "040.units")

	// Every printed example must round-trip through the link parser.
	for _, line := range strings.Split(out, "\n") {
		start := strings.Index(line, `"`)
		if start < 0 {
			continue
		}
		end := strings.Index(line[start+1:], `"`)
		require.Greater(t, end, 0, "unterminated example in %q", line)
		link := line[start+1 : start+1+end]

		state, err := nav.ParseLink(link)
		require.NoError(t, err, "example %q", link)
		assert.NotEmpty(t, state.TileID)
	}
}

func TestLinkCmdRuns(t *testing.T) {
	c := LinkCmd()
	assert.Equal(t, "link", c.Use)
	assert.NotPanics(t, func() { c.Run(c, nil) })
}
