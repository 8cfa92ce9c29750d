package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Meter renders a bar of met out of total steps.
func Meter(met, total, width int) string {
	if width < 5 {
		width = 5
	}
	filled := 0
	if total > 0 {
		filled = met * width / total
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %d/%d", met, total)
}

// Badge is the cart count shown next to titles. Zero renders nothing.
func Badge(count int) string {
	if count <= 0 {
		return ""
	}
	return C(current.Accent, fmt.Sprintf("%s %d", current.SymCart, count))
}

// Radio renders one choice of an option group.
func Radio(label string, selected bool) string {
	if selected {
		return C(current.Accent, current.RadioOn+" "+label)
	}
	return C(current.Muted, current.RadioOff) + " " + label
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := current
	maxw := 0
	for _, ln := range lines {
		if vw := lipgloss.Width(ln); vw > maxw {
			maxw = vw
		}
	}
	pad := func(s string) string {
		if vis := lipgloss.Width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
