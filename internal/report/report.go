// Package report renders disambiguation results and hex dumps for the terminal
package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/timmattison/safefr/internal/contexts"
)

type Printer struct {
	writer       io.Writer
	indexStyle   lipgloss.Style
	matchStyle   lipgloss.Style
	offsetStyle  lipgloss.Style
	replaceStyle lipgloss.Style
}

// New returns a printer that writes to w. Colors are only used when w is a terminal.
func New(w io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(w)

	return &Printer{
		writer:       w,
		indexStyle:   renderer.NewStyle().Foreground(lipgloss.Color("241")),
		matchStyle:   renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		offsetStyle:  renderer.NewStyle().Foreground(lipgloss.Color("241")),
		replaceStyle: renderer.NewStyle().Bold(true),
	}
}

// Line is one row of the context report
type Line struct {
	Index  int
	Offset int
	// Sequence is the refined prefix/find/replace/suffix to pass on the next run
	Sequence string
	parts    [4]string
}

// Lines sorts triples and turns them into report rows. Prefixes are left padded to the
// widest prefix so the matches line up.
func Lines(triples []contexts.Triple, replace []byte) []Line {
	contexts.Sort(triples)

	width := 0

	for _, triple := range triples {
		width = max(width, len(triple.Prefix)*2)
	}

	lines := make([]Line, 0, len(triples))

	for i, triple := range triples {
		parts := [4]string{
			fmt.Sprintf("%*s", width, hex.EncodeToString(triple.Prefix)),
			hex.EncodeToString(triple.Find),
			hex.EncodeToString(replace),
			hex.EncodeToString(triple.Suffix),
		}

		lines = append(lines, Line{
			Index:    i,
			Offset:   triple.Offset,
			Sequence: triple.Spec(replace).String(),
			parts:    parts,
		})
	}

	return lines
}

// String renders the row without styling
func (l Line) String() string {
	return fmt.Sprintf("%2d: %s", l.Index, strings.Join(l.parts[:], "/"))
}

// Contexts writes one row per triple, sorted, followed by the offset of the occurrence
func (p *Printer) Contexts(triples []contexts.Triple, replace []byte) {
	for _, line := range Lines(triples, replace) {
		fmt.Fprintf(p.writer, "%s %s/%s/%s/%s  %s\n",
			p.indexStyle.Render(fmt.Sprintf("%2d:", line.Index)),
			line.parts[0],
			p.matchStyle.Render(line.parts[1]),
			p.replaceStyle.Render(line.parts[2]),
			line.parts[3],
			p.offsetStyle.Render(fmt.Sprintf("@ 0x%08x", line.Offset)))
	}
}
