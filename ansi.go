package img2skel

import (
	"fmt"
	"strings"
)

const (
	ESC = "\u001b"

	// upperHalf shows the top pixel of a cell pair as foreground and the
	// bottom pixel as background.
	upperHalf = "▀"
)

// RenderToAnsi renders a color matrix for a 24-bit color terminal. Each
// character cell shows two vertically stacked pixels, so an image of
// height h takes (h+1)/2 lines. Runs of identical cells share one escape
// sequence.
func RenderToAnsi(m Matrix[RGB]) string {
	return CompressANSI(renderToAnsi(m))
}

// renderToAnsi renders a matrix with a full escape sequence in front of
// every cell. It does not perform any compression or optimization.
func renderToAnsi(m Matrix[RGB]) string {
	var sb strings.Builder
	for y := 0; y < m.height; y += 2 {
		for x := 0; x < m.width; x++ {
			top := m.at(x, y)
			fg := fgCode(top)
			switch {
			case y+1 >= m.height:
				// Odd height: the lower half shows the terminal default.
				fmt.Fprintf(&sb, "%s[%s;49m%s", ESC, fg, upperHalf)
			case m.at(x, y+1) == top:
				fmt.Fprintf(&sb, "%s[%s;%sm ", ESC, fg, bgCode(top))
			default:
				fmt.Fprintf(&sb, "%s[%s;%sm%s", ESC, fg, bgCode(m.at(x, y+1)), upperHalf)
			}
		}
		// Reset colors at the end of each line and add a newline
		sb.WriteString(ESC + "[0m\n")
	}
	return sb.String()
}

func fgCode(c RGB) string { return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B) }
func bgCode(c RGB) string { return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B) }

// CompressANSI compresses an ANSI image by combining adjacent cells with
// the same foreground, background and character into one escape
// sequence. Cells drawn as a space ignore their foreground color.
func CompressANSI(ansiImage string) string {
	if ansiImage == "" {
		return ""
	}
	var compressed strings.Builder
	var currentFg, currentBg, currentBlock string
	var count int

	lines := strings.Split(strings.TrimSuffix(ansiImage, "\n"), "\n")
	for _, line := range lines {
		segments := strings.Split(line, ESC+"[")
		for _, segment := range segments {
			if segment == "" {
				continue
			}
			parts := strings.SplitN(segment, "m", 2)
			if len(parts) != 2 || parts[1] == "" {
				continue
			}
			colorCode, block := parts[0], parts[1]
			fg, bg := extractColors(colorCode)
			if block == " " {
				fg = ""
			}

			// If any color or block changes, write the current run
			// and start a new one
			if fg != currentFg || bg != currentBg || block != currentBlock {
				if count > 0 {
					compressed.WriteString(
						formatANSICode(currentFg, currentBg, currentBlock, count))
				}
				currentFg, currentBg, currentBlock = fg, bg, block
				count = 1
			} else {
				count++
			}
		}
		// Write the last run of the line
		if count > 0 {
			compressed.WriteString(
				formatANSICode(currentFg, currentBg, currentBlock, count))
		}
		compressed.WriteString(ESC + "[0m\n")
		count = 0
		currentFg, currentBg, currentBlock = "", "", ""
	}

	return compressed.String()
}

// formatANSICode formats one run: the escape sequence for fg and bg
// followed by block repeated count times.
func formatANSICode(fg, bg, block string, count int) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	if fg != "" {
		code.WriteString(fg)
		if bg != "" {
			code.WriteByte(';')
		}
	}
	if bg != "" {
		code.WriteString(bg)
	}
	code.WriteByte('m')
	code.WriteString(strings.Repeat(block, count))
	return code.String()
}

// extractColors splits an SGR parameter list into its foreground and
// background parts, understanding 24-bit (38;2;r;g;b), 256-color
// (38;5;n) and basic codes.
func extractColors(colorCodes string) (fg string, bg string) {
	colors := strings.Split(colorCodes, ";")
	for i := 0; i < len(colors); i++ {
		switch {
		case (colors[i] == "38" || colors[i] == "48") &&
			i+4 < len(colors) && colors[i+1] == "2":
			code := strings.Join(colors[i:i+5], ";")
			if colors[i] == "38" {
				fg = code
			} else {
				bg = code
			}
			i += 4
		case (colors[i] == "38" || colors[i] == "48") &&
			i+2 < len(colors) && colors[i+1] == "5":
			code := strings.Join(colors[i:i+3], ";")
			if colors[i] == "38" {
				fg = code
			} else {
				bg = code
			}
			i += 2
		case colorIsForeground(colors[i]):
			fg = colors[i]
		case colorIsBackground(colors[i]):
			bg = colors[i]
		}
	}
	return fg, bg
}

// colorIsForeground reports whether a basic SGR code sets the foreground.
func colorIsForeground(color string) bool {
	return strings.HasPrefix(color, "3") || strings.HasPrefix(color, "9")
}

// colorIsBackground reports whether a basic SGR code sets the background.
func colorIsBackground(color string) bool {
	return strings.HasPrefix(color, "4") || strings.HasPrefix(color, "10")
}
