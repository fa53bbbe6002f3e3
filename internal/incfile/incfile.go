// Package incfile renders keyword tables back to simulator deck
// text, right-aligning columns so wide decks stay readable.
package incfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Header returns the comment block written at the top of generated
// include files.
func Header(tool string) string {
	var b strings.Builder

	b.WriteString("-- File generated by " + tool + "\n")
	b.WriteString("-- at " + time.Now().Format("2006-01-02 15:04:05") + "\n")

	return b.String()
}

// DatesBlock renders a DATES keyword for a single date.
func DatesBlock(date time.Time) string {
	month := strings.ToUpper(date.Month().String()[:3])

	var b strings.Builder

	b.WriteString("DATES\n")
	b.WriteString("  " + strconv.Itoa(date.Day()) + " '" + month + "' " + strconv.Itoa(date.Year()))

	if date.Hour() != 0 || date.Minute() != 0 || date.Second() != 0 {
		b.WriteString(" " + date.Format("15:04:05"))
	}

	b.WriteString(" /\n/\n")

	return b.String()
}

// Keyword renders one keyword with its record rows. Cells are
// right-aligned per column by display width. Each record line is
// slash-terminated, and the keyword closes with a lone slash.
func Keyword(name string, rows [][]string) string {
	widths := columnWidths(rows)

	var b strings.Builder

	b.WriteString(name + "\n")

	for _, row := range rows {
		// Trailing defaulted cells are dropped; the record slash
		// defaults them implicitly.
		last := len(row) - 1
		for last > 0 && row[last] == "1*" {
			last--
		}

		b.WriteString(" ")

		for i := 0; i <= last; i++ {
			b.WriteString(" ")
			b.WriteString(pad(row[i], widths[i]))
		}

		b.WriteString(" /\n")
	}

	b.WriteString("/\n")

	return b.String()
}

func columnWidths(rows [][]string) []int {
	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}

			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	return widths
}

func pad(cell string, width int) string {
	return runewidth.FillLeft(cell, width)
}
