package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	out := Markdown("- Rename `f` to `add`\n- Add a docstring", "notty", 60)

	assert.Contains(t, out, "Rename")
	assert.Contains(t, out, "docstring")
	assert.NotContains(t, out, "\x1b[")
}

func TestMarkdown_DefaultWidth(t *testing.T) {
	out := Markdown("plain feedback", "notty", 0)
	assert.Contains(t, out, "plain feedback")
}
