// Package gruptree extracts the group tree from GRUPTREE and
// WELSPECS keywords. The tree state carries forward through the
// schedule; whenever an edge is added or re-parented the complete
// tree at that date is emitted.
package gruptree

import (
	"sort"
	"time"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resfiles"
)

var columns = []string{"DATE", "CHILD", "PARENT", "KEYWORD"}

type edge struct {
	parent  string
	keyword string
}

type dateGroup struct {
	date  any
	edges []dateEdge
}

type dateEdge struct {
	child string
	edge  edge
}

// DeckToFrame builds the dated group tree frame from a parsed deck.
func DeckToFrame(d *deck.Deck) (*frame.Frame, error) {
	groups, err := collect(d)
	if err != nil {
		return nil, err
	}

	out := frame.New(columns...)

	state := make(map[string]edge)

	for _, group := range groups {
		changed := false

		for _, de := range group.edges {
			if state[de.child] != de.edge {
				state[de.child] = de.edge
				changed = true
			}
		}

		if !changed {
			continue
		}

		children := make([]string, 0, len(state))
		for child := range state {
			children = append(children, child)
		}

		sort.Strings(children)

		for _, child := range children {
			e := state[child]
			if err := out.Append(group.date, child, e.parent, e.keyword); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// collect walks the schedule and buckets tree edges by date.
func collect(d *deck.Deck) ([]dateGroup, error) {
	steps, err := deck.Schedule(d)
	if err != nil {
		return nil, err
	}

	var groups []dateGroup

	for _, step := range steps {
		group := dateGroup{date: dateCell(step.Date)}

		for _, kw := range step.Keywords {
			switch kw.Name {
			case "GRUPTREE":
				for _, rec := range kw.Records {
					values, err := deck.RecordMap("GRUPTREE", rec)
					if err != nil {
						return nil, err
					}

					child, _ := values["CHILD"].(string)
					parent, _ := values["PARENT"].(string)

					group.edges = append(group.edges, dateEdge{
						child: child,
						edge:  edge{parent: parent, keyword: "GRUPTREE"},
					})
				}
			case "WELSPECS":
				for _, rec := range kw.Records {
					values, err := deck.RecordMap("WELSPECS", rec)
					if err != nil {
						return nil, err
					}

					well, _ := values["WELL"].(string)
					groupName, _ := values["GROUP"].(string)

					group.edges = append(group.edges, dateEdge{
						child: well,
						edge:  edge{parent: groupName, keyword: "WELSPECS"},
					})
				}
			}
		}

		if len(group.edges) > 0 {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

func dateCell(date *time.Time) any {
	if date == nil {
		return nil
	}

	return *date
}

// Df extracts the group tree frame for a simulator case.
func Df(files *resfiles.ResdataFiles) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	return DeckToFrame(parsed)
}
