package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/debug"
)

// Describe renders a panel and its folders as indented text, one controller per line.
//
// Parameters:
//   - gui: the panel
//
// Returns:
//   - string: the listing, ending in a newline
func Describe(gui debug.GUI) string {
	var b strings.Builder
	describe(&b, gui, 0)
	return b.String()
}

func describe(b *strings.Builder, gui debug.GUI, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(gui.Title())
	switch {
	case gui.Hidden():
		b.WriteString(" (hidden)")
	case gui.Closed():
		b.WriteString(" (closed)")
	}
	b.WriteByte('\n')
	for _, c := range gui.Controllers() {
		fmt.Fprintf(b, "%s  %s\n", indent, describeController(c))
	}
	for _, f := range gui.Folders() {
		describe(b, f, depth+1)
	}
}

func describeController(c debug.Controller) string {
	if c.Kind() == debug.KindFunction {
		return c.Label() + " [button]"
	}
	line := c.Label() + " = " + formatValue(c.Value())
	minV, maxV, step, hasMin, hasMax, hasStep := c.Bounds()
	if hasMin || hasMax {
		lo, hi := "", ""
		if hasMin {
			lo = formatFloat(minV)
		}
		if hasMax {
			hi = formatFloat(maxV)
		}
		line += " [" + lo + ".." + hi + "]"
	}
	if hasStep {
		line += " step " + formatFloat(step)
	}
	return line
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x)
	case common.Color:
		return x.HexString()
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
