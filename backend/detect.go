package backend

import (
	"os"
	"strings"

	"github.com/lixenwraith/termforge/color"
)

// detectColorMode determines 24-bit vs 256-color capability from
// environment variables.
func detectColorMode() ColorMode {
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		return ColorModeTrueColor
	}

	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "",
		os.Getenv("KONSOLE_VERSION") != "",
		os.Getenv("ITERM_SESSION_ID") != "",
		os.Getenv("ALACRITTY_WINDOW_ID") != "",
		os.Getenv("ALACRITTY_LOG") != "",
		os.Getenv("WEZTERM_PANE") != "":
		return ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") || strings.Contains(term, "24bit") || strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// detectBackgroundColor answers "what should source-over blending treat as
// the bottom of the stack" from the COLORFGBG convention (set by rxvt, many
// multiplexers, and some terminal-emulator profiles), which directly
// encodes a background index. It reads no other environment variable.
// Falls back to black, the universal safe default for dark-themed
// terminals (the overwhelming majority in practice).
func detectBackgroundColor() color.Color {
	if fgbg := os.Getenv("COLORFGBG"); fgbg != "" {
		parts := strings.Split(fgbg, ";")
		if len(parts) >= 2 {
			if idx, ok := parseAnsiIndex(parts[len(parts)-1]); ok {
				return ansi16Color(idx)
			}
		}
	}
	return color.Opaque(0, 0, 0)
}

func parseAnsiIndex(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ansi16Color maps a standard 16-color palette index to an RGB value, for
// the COLORFGBG sniffing path above. Only light backgrounds are told apart:
// 7 and 15 give white, 8 gives gray, and every other index gives black.
func ansi16Color(idx int) color.Color {
	switch idx {
	case 0:
		return color.Opaque(0, 0, 0)
	case 7, 15:
		return color.Opaque(255, 255, 255)
	case 8:
		return color.Opaque(128, 128, 128)
	default:
		return color.Opaque(0, 0, 0)
	}
}
