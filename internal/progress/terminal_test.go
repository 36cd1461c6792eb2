package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_BarTicks(t *testing.T) {
	var buf bytes.Buffer
	terminal := NewTerminal(&buf)

	terminal.Start("repositories", 3)
	terminal.Advance()
	terminal.Advance()

	output := buf.String()
	assert.Contains(t, output, "repositories")
	assert.Contains(t, output, "0/3")
	assert.Contains(t, output, "1/3")
	assert.Contains(t, output, "2/3")

	terminal.Finish()
	terminal.Advance() // no bar running, must be a no-op
	assert.NotContains(t, buf.String(), "3/3")
}

func TestTerminal_Messages(t *testing.T) {
	var buf bytes.Buffer
	terminal := NewTerminal(&buf)

	terminal.Statusf("listing %s", "acme")
	terminal.Warnf("nothing to do")
	terminal.Successf("wrote %d users", 7)

	output := buf.String()
	assert.Contains(t, output, "listing acme")
	assert.Contains(t, output, "nothing to do")
	assert.Contains(t, output, "wrote 7 users")
}

func TestDiscardImplementsReporter(t *testing.T) {
	var _ Reporter = Discard{}
	var _ Reporter = NewTerminal(&bytes.Buffer{})
}
