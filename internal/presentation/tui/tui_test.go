package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/catalog"
)

func TestTapeView_Plain(t *testing.T) {
	var buf bytes.Buffer
	// A bytes.Buffer is never a terminal.
	v := tui.NewTapeView(&buf)

	assert.Equal(t, "01[1]1", v.Render([]string{"0", "1", "1", "1"}, 2))
	assert.Equal(t, "[_]", v.Render([]string{"_"}, 0))
	assert.Equal(t, "01", v.Render([]string{"0", "1"}, 7))

	v.Line(3, "Do", []string{"1", "0"}, 0)
	assert.Equal(t, "    3  Do       [1]0\n", buf.String())
}

func TestTapeView_Cells(t *testing.T) {
	cells, err := catalog.ParseTape("1_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "_", "0"}, tui.Cells(cells, "_"))
	assert.Equal(t, []string{"1", " ", "0"}, tui.Cells(cells, " "))
}

func TestRuleSheet(t *testing.T) {
	prog := catalog.BinaryIncrement()
	md := tui.RuleSheet(prog.Name, prog.Description, prog.Table.Rules())

	assert.True(t, strings.HasPrefix(md, "# binary-increment\n"))
	assert.Contains(t, md, prog.Description)
	assert.Contains(t, md, "| 1 | Do | `1` | `0` | L | Do |  |")
	assert.Contains(t, md, "| 2 | Do | `0` | `1` | S | Stop | yes |")
	assert.Contains(t, md, "| 3 | Do | `_` | `1` | S | Stop | yes |")

	out, err := tui.NewRenderer()(md)
	require.NoError(t, err)
	assert.Contains(t, out, "binary-increment")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}
