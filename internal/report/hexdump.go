package report

import (
	"fmt"
	"strings"
)

const bytesPerRow = 16

// HexDump writes rows of 16 bytes around the match at offset, with contextBytes of
// surrounding data on each side. Match bytes are highlighted.
func (p *Printer) HexDump(data []byte, offset int, patternLength int, contextBytes int) {
	start := max(offset-contextBytes, 0)
	end := min(offset+patternLength+contextBytes, len(data))

	inPattern := func(position int) bool {
		return position >= offset && position < offset+patternLength
	}

	for row := start; row < end; row += bytesPerRow {
		var hexColumn strings.Builder
		var asciiColumn strings.Builder

		for i := 0; i < bytesPerRow; i++ {
			position := row + i

			if position >= end {
				hexColumn.WriteString("   ")
				asciiColumn.WriteString(" ")
			} else {
				value := data[position]
				hexText := fmt.Sprintf("%02x", value)
				asciiText := "."

				// Print printable ASCII characters, replace others with a dot
				if value >= 32 && value <= 126 {
					asciiText = string(rune(value))
				}

				if inPattern(position) {
					hexText = p.matchStyle.Render(hexText)
					asciiText = p.matchStyle.Render(asciiText)
				}

				hexColumn.WriteString(hexText + " ")
				asciiColumn.WriteString(asciiText)
			}

			// Add extra space in the middle
			if i == 7 {
				hexColumn.WriteString(" ")
			}
		}

		fmt.Fprintf(p.writer, "%08x: %s |%s|\n", row, hexColumn.String(), asciiColumn.String())
	}
}
