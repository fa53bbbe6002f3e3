// Package wcon extracts well control and constraint data from the
// WCONHIST, WCONPROD, WCONINJE and WCONINJH keywords.
package wcon

import (
	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resfiles"
)

var keywords = []string{"WCONHIST", "WCONPROD", "WCONINJE", "WCONINJH"}

// columns is the union of the four keyword schemas, prefixed with
// WELL and suffixed with DATE and KEYWORD.
var columns = buildColumns()

func buildColumns() []string {
	seen := map[string]bool{"WELL": true}
	out := []string{"WELL"}

	for _, kw := range keywords {
		for _, name := range deck.ItemNames(kw) {
			if seen[name] {
				continue
			}

			seen[name] = true
			out = append(out, name)
		}
	}

	return append(out, "DATE", "KEYWORD")
}

// DeckToFrame builds one row per well control record, with DATE and
// the originating KEYWORD.
func DeckToFrame(d *deck.Deck) (*frame.Frame, error) {
	steps, err := deck.Schedule(d)
	if err != nil {
		return nil, err
	}

	out := frame.New(columns...)

	for _, step := range steps {
		for _, kw := range step.Keywords {
			switch kw.Name {
			case "WCONHIST", "WCONPROD", "WCONINJE", "WCONINJH":
				for _, rec := range kw.Records {
					values, err := deck.RecordMap(kw.Name, rec)
					if err != nil {
						return nil, err
					}

					if step.Date != nil {
						values["DATE"] = *step.Date
					}

					values["KEYWORD"] = kw.Name

					if err := out.AppendMap(values); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return out, nil
}

// Df extracts the well control frame for a simulator case.
func Df(files *resfiles.ResdataFiles) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	return DeckToFrame(parsed)
}
