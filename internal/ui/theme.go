package ui

import "strings"

// Theme bundles palette, symbols and box borders.
// All helpers read from current.
type Theme struct {
	Name                                                string
	Title, Muted, Accent, Success, Error, Warning, Price string
	RadioOff, RadioOn                                   string
	CornerTL, CornerTR, CornerBL, CornerBR              string
	H, V                                                string
	SymOK, SymFail, SymWarn, SymCart                    string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Warning: fgYellow, Price: fgYellow,
		RadioOff: "○", RadioOn: "●",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymOK: "✔", SymFail: "✖", SymWarn: "!", SymCart: "🛒",
	}
}

// SetTheme selects classic, neon or mono. "auto" and unknown names fall
// back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: fgMagenta, Muted: fgGray, Accent: fgCyan,
			Success: fgGreen, Error: fgRed, Warning: "\033[93m", Price: fgCyan,
			RadioOff: "◇", RadioOn: "◆",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymOK: "✔", SymFail: "✖", SymWarn: "▲", SymCart: "🛒",
		}
	case "mono":
		disableColor = true
		current = Theme{
			Name:     "mono",
			RadioOff: "( )", RadioOn: "(*)",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymOK: "ok", SymFail: "error:", SymWarn: "warning:", SymCart: "cart",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
