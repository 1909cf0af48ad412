// Package roster formats student records as fixed-width text columns.
// Widths are measured in terminal cells, so CJK names line up.
package roster

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/message"

	"github.com/studiowebux/gradebook/internal/types"
)

const (
	idWidth    = 10
	nameWidth  = 10
	scoreWidth = 8
)

// Width is the total cell width of a row
const Width = idWidth + nameWidth + 5*scoreWidth

// Header returns the column titles in the printer's language
func Header(p *message.Printer) string {
	return cell(p.Sprintf("ID"), idWidth) +
		cell(p.Sprintf("Name"), nameWidth) +
		cell(p.Sprintf("Chinese"), scoreWidth) +
		cell(p.Sprintf("Math"), scoreWidth) +
		cell(p.Sprintf("English"), scoreWidth) +
		cell(p.Sprintf("Total"), scoreWidth) +
		cell(p.Sprintf("Average"), scoreWidth)
}

// Separator returns the rule drawn under the header
func Separator() string {
	return strings.Repeat("-", Width)
}

// Row formats one record. Scores show one decimal, the average two.
func Row(e types.StudentEntry) string {
	return cell(e.ID, idWidth) +
		cell(e.Name, nameWidth) +
		cell(fmt.Sprintf("%.1f", e.Chinese), scoreWidth) +
		cell(fmt.Sprintf("%.1f", e.Math), scoreWidth) +
		cell(fmt.Sprintf("%.1f", e.English), scoreWidth) +
		cell(fmt.Sprintf("%.1f", e.Total), scoreWidth) +
		cell(fmt.Sprintf("%.2f", e.Average), scoreWidth)
}

// Rows formats every entry
func Rows(entries []types.StudentEntry) []string {
	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = Row(e)
	}
	return rows
}

// cell left-aligns s in width cells. Text that would fill the column is cut
// short so neighbouring columns never touch. Control characters become
// spaces, a row is always one terminal line.
func cell(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	if runewidth.StringWidth(s) >= width {
		s = runewidth.Truncate(s, width-1, "…")
	}
	return runewidth.FillRight(s, width)
}
