package compdat

import (
	"sort"
	"strings"
	"time"

	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/incfile"
)

// WriteInclude renders a COMPDAT frame back to deck text. Rows
// without a date come first, dated rows follow grouped under DATES
// blocks in chronological order. The text parses back to the same
// connections.
func WriteInclude(f *frame.Frame) string {
	var b strings.Builder

	b.WriteString(incfile.Header("res2df"))
	b.WriteString("\n")

	undated, groups, order := groupByDate(f)

	if len(undated) > 0 {
		b.WriteString(incfile.FrameKeyword("COMPDAT", f, undated))
		b.WriteString("\n")
	}

	for _, date := range order {
		b.WriteString(incfile.DatesBlock(date))
		b.WriteString("\n")
		b.WriteString(incfile.FrameKeyword("COMPDAT", f, groups[date]))
		b.WriteString("\n")
	}

	return b.String()
}

// groupByDate splits row indices on the DATE column. Rows keep their
// input order within each group.
func groupByDate(f *frame.Frame) ([]int, map[time.Time][]int, []time.Time) {
	var undated []int

	groups := make(map[time.Time][]int)

	for i := 0; i < f.Len(); i++ {
		var cell any
		if f.HasColumn("DATE") {
			cell = f.Value(i, "DATE")
		}

		date, ok := incfile.CellDate(cell)
		if !ok {
			undated = append(undated, i)

			continue
		}

		groups[date] = append(groups[date], i)
	}

	order := make([]time.Time, 0, len(groups))
	for date := range groups {
		order = append(order, date)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	return undated, groups, order
}
