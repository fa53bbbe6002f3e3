// Package equil extracts initial equilibration data: one row per
// EQLNUM region with datum depth, datum pressure and fluid contacts.
package equil

import (
	"sort"
	"strconv"
	"strings"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/incfile"
	"github.com/berland/res2df/internal/resfiles"
)

var columns = append([]string{"EQLNUM"}, deck.ItemNames("EQUIL")...)

// DeckToFrame builds the EQUIL frame from a parsed deck. EQLNUM is the
// 1-based record index.
func DeckToFrame(d *deck.Deck) (*frame.Frame, error) {
	out := frame.New(columns...)

	eqlnum := 0

	for _, kw := range d.Find("EQUIL") {
		for _, rec := range kw.Records {
			if rec.Empty() {
				continue
			}

			values, err := deck.RecordMap("EQUIL", rec)
			if err != nil {
				return nil, err
			}

			eqlnum++
			values["EQLNUM"] = eqlnum

			if err := out.AppendMap(values); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Df extracts the EQUIL frame for a simulator case.
func Df(files *resfiles.ResdataFiles) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	return DeckToFrame(parsed)
}

// WriteInclude renders an EQUIL frame back to deck text, one record
// per region in EQLNUM order.
func WriteInclude(f *frame.Frame) string {
	rows := make([]int, f.Len())
	for i := range rows {
		rows[i] = i
	}

	if f.HasColumn("EQLNUM") {
		sort.SliceStable(rows, func(a, b int) bool {
			return regionOf(f, rows[a]) < regionOf(f, rows[b])
		})
	}

	var b strings.Builder

	b.WriteString(incfile.Header("res2df"))
	b.WriteString("\n")
	b.WriteString(incfile.FrameKeyword("EQUIL", f, rows))

	return b.String()
}

func regionOf(f *frame.Frame, row int) float64 {
	switch v := f.Value(row, "EQLNUM").(type) {
	case int:
		return float64(v)
	case float64:
		return v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}

		return parsed
	default:
		return 0
	}
}
