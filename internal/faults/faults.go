// Package faults extracts the FAULTS keyword, unrolling each record's
// I/J/K ranges to one row per cell face.
package faults

import (
	"fmt"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resfiles"
)

var columns = []string{"NAME", "I", "J", "K", "FACE"}

// DeckToFrame builds the fault cell frame from a parsed deck.
func DeckToFrame(d *deck.Deck) (*frame.Frame, error) {
	out := frame.New(columns...)

	for _, kw := range d.Find("FAULTS") {
		for _, rec := range kw.Records {
			if rec.Empty() {
				continue
			}

			values, err := deck.RecordMap("FAULTS", rec)
			if err != nil {
				return nil, err
			}

			name, _ := values["NAME"].(string)
			face, _ := values["FACE"].(string)

			ix1, ix2, err := rangeOf(values, "IX1", "IX2")
			if err != nil {
				return nil, err
			}

			iy1, iy2, err := rangeOf(values, "IY1", "IY2")
			if err != nil {
				return nil, err
			}

			iz1, iz2, err := rangeOf(values, "IZ1", "IZ2")
			if err != nil {
				return nil, err
			}

			for i := ix1; i <= ix2; i++ {
				for j := iy1; j <= iy2; j++ {
					for k := iz1; k <= iz2; k++ {
						if err := out.Append(name, i, j, k, face); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}

	return out, nil
}

func rangeOf(values map[string]any, from, to string) (int, int, error) {
	start, okStart := values[from].(int)
	end, okEnd := values[to].(int)

	if !okStart || !okEnd || start > end {
		return 0, 0, fmt.Errorf("%w: FAULTS items %s, %s", deck.ErrInvalidItem, from, to)
	}

	return start, end, nil
}

// Df extracts the fault cell frame for a simulator case.
func Df(files *resfiles.ResdataFiles) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	return DeckToFrame(parsed)
}
