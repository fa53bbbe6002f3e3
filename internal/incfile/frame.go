package incfile

import (
	"time"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
)

// FrameKeyword renders the given frame rows as one keyword block. The
// keyword's schema decides item order and which cells get quoted;
// schema items missing from the frame render as defaults, and columns
// past the last one present in the frame are dropped entirely.
func FrameKeyword(name string, f *frame.Frame, rows []int) string {
	def := deck.Lookup(name)
	if def == nil {
		return Keyword(name, nil)
	}

	items := def.Items

	last := -1
	for i, item := range items {
		if f.HasColumn(item.Name) {
			last = i
		}
	}

	items = items[:last+1]

	cellRows := make([][]string, 0, len(rows))

	for _, row := range rows {
		cells := make([]string, len(items))

		for i, item := range items {
			if !f.HasColumn(item.Name) {
				cells[i] = "1*"

				continue
			}

			cells[i] = deckCell(item, f.Value(row, item.Name))
		}

		cellRows = append(cellRows, cells)
	}

	return Keyword(name, cellRows)
}

func deckCell(item deck.ItemDef, v any) string {
	if v == nil {
		return "1*"
	}

	s := frame.FormatCell(v)
	if s == "" {
		return "1*"
	}

	if item.Type == deck.TypeString {
		return "'" + s + "'"
	}

	return s
}

// CellDate normalizes a DATE cell, which may hold a time.Time from
// extraction or a string after a CSV roundtrip.
func CellDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{
			"2006-01-02",
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
		} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}

	return time.Time{}, false
}
