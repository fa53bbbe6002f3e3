// Package satfunc extracts saturation function tables (SWOF, SGOF and
// friends) into one row per saturation point, tagged with SATNUM and
// the originating KEYWORD.
package satfunc

import (
	"errors"
	"fmt"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resfiles"
)

// ErrRaggedTable flags a table record whose value count does not
// divide evenly into table rows.
var ErrRaggedTable = errors.New("table record length does not match column count")

// tableColumns names the value columns of each supported keyword, in
// record order.
var tableColumns = map[string][]string{
	"SWOF":  {"SW", "KRW", "KROW", "PCOW"},
	"SGOF":  {"SG", "KRG", "KROG", "PCOG"},
	"SLGOF": {"SL", "KRG", "KRO", "PCOG"},
	"SWFN":  {"SW", "KRW", "PCOW"},
	"SGFN":  {"SG", "KRG", "PCOG"},
	"SOF2":  {"SO", "KRO"},
	"SOF3":  {"SO", "KROW", "KROG"},
}

// keywordOrder fixes the keyword processing order so output is stable
// regardless of map iteration.
var keywordOrder = []string{"SWOF", "SGOF", "SLGOF", "SWFN", "SGFN", "SOF2", "SOF3"}

var columns = []string{
	"KEYWORD", "SATNUM", "SW", "SG", "SL", "SO",
	"KRW", "KRG", "KRO", "KROW", "KROG", "PCOW", "PCOG",
}

// DeckToFrame builds the saturation function frame from a parsed
// deck. Each record of a keyword is one SATNUM table; SATNUM counts
// from 1 per keyword.
func DeckToFrame(d *deck.Deck) (*frame.Frame, error) {
	out := frame.New(columns...)

	for _, name := range keywordOrder {
		names := tableColumns[name]

		satnum := 0

		for _, kw := range d.Find(name) {
			for _, rec := range kw.Records {
				if rec.Empty() {
					continue
				}

				values, err := rec.Floats()
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}

				if len(values)%len(names) != 0 {
					return nil, fmt.Errorf("%w: %s record with %d values, %d columns",
						ErrRaggedTable, name, len(values), len(names))
				}

				satnum++

				for offset := 0; offset < len(values); offset += len(names) {
					row := map[string]any{
						"KEYWORD": name,
						"SATNUM":  satnum,
					}

					for i, col := range names {
						row[col] = values[offset+i]
					}

					if err := out.AppendMap(row); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return out, nil
}

// Df extracts the saturation function frame for a simulator case.
func Df(files *resfiles.ResdataFiles) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	return DeckToFrame(parsed)
}
