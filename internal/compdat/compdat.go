// Package compdat extracts well completion data from the schedule
// section of a deck: COMPDAT connections, multisegment well keywords
// (WELSEGS, COMPSEGS, WSEGAICD, WSEGSICD, WSEGVALV) and the WELOPEN
// state changes applied to them. Every output row carries WELL and
// DATE columns.
package compdat

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resfiles"
	"github.com/berland/res2df/internal/zonemap"
)

// Extraction errors.
var (
	ErrWelspecsRequired = errors.New("WELSPECS must be provided when I or J is defaulted")
	ErrWelopenWell      = errors.New("WELOPEN refers to a well with no completions")
	ErrWelopenStatus    = errors.New("WELOPEN status not supported")
)

// Options controls the extraction.
type Options struct {
	// StartDate dates rows occurring before the first DATES keyword.
	StartDate time.Time
	// NoUnroll keeps K1-K2 and segment ranges as single rows.
	NoUnroll bool
	// ZoneMap adds a ZONE column to COMPDAT rows when set.
	ZoneMap zonemap.ZoneMap
}

// Frames holds one frame per extracted keyword, keyed by keyword
// name. Keywords not present in the deck are absent from the map.
type Frames map[string]*frame.Frame

var compdatColumns = []string{
	"WELL", "I", "J", "K1", "K2", "OP/SH", "SATN", "TRAN", "DIAM",
	"KH", "SKIN", "DFACT", "DIR", "RO", "DATE",
}

var welsegsHeaderItems = []deck.ItemDef{
	deck.StringItem("WELL", nil),
	deck.FloatItem("DEPTH", nil),
	deck.FloatItem("LENGTH", nil),
	deck.FloatItem("WBVOLUME", nil),
	deck.StringItem("INFO_TYPE", "INC"),
	deck.StringItem("PRESSURE_COMPONENTS", "HFA"),
	deck.StringItem("FLOW_MODEL", "HO"),
	deck.FloatItem("TOP_X", nil),
	deck.FloatItem("TOP_Y", nil),
}

var compsegsHeaderItems = []deck.ItemDef{
	deck.StringItem("WELL", nil),
}

type welspec struct {
	i int
	j int
}

type accumulator struct {
	opts Options

	date *time.Time

	welspecs map[string]welspec

	compdat  []map[string]any
	welsegs  []map[string]any
	compsegs []map[string]any
	wsegaicd []map[string]any
	wsegsicd []map[string]any
	wsegvalv []map[string]any

	// Latest COMPDAT row per well and cell, for WELOPEN.
	connections map[string]map[string]int

	hasAbsSegments bool
	hasIncSegments bool
}

// DeckToFrames walks the deck and builds one frame per completion
// keyword found.
func DeckToFrames(d *deck.Deck, opts Options) (Frames, error) {
	acc := &accumulator{
		opts:        opts,
		welspecs:    make(map[string]welspec),
		connections: make(map[string]map[string]int),
	}

	if !opts.StartDate.IsZero() {
		start := opts.StartDate
		acc.date = &start
	}

	steps, err := deck.Schedule(d)
	if err != nil {
		return nil, err
	}

	for _, step := range steps {
		if step.Date != nil {
			date := *step.Date
			acc.date = &date
		}

		for _, kw := range step.Keywords {
			var err error

			switch kw.Name {
			case "WELSPECS":
				err = acc.handleWelspecs(kw)
			case "COMPDAT":
				err = acc.handleCompdat(kw)
			case "WELSEGS":
				err = acc.handleWelsegs(kw)
			case "COMPSEGS":
				err = acc.handleCompsegs(kw)
			case "WSEGAICD", "WSEGSICD", "WSEGVALV":
				err = acc.handleSegmentKeyword(kw)
			case "WELOPEN":
				err = acc.handleWelopen(kw)
			}

			if err != nil {
				return nil, err
			}
		}
	}

	return acc.frames()
}

// Df extracts the COMPDAT frame for a simulator case, with the zone
// map merged in when one is found next to the DATA file.
func Df(files *resfiles.ResdataFiles, opts Options) (*frame.Frame, error) {
	parsed, err := files.Deck()
	if err != nil {
		return nil, err
	}

	if opts.ZoneMap == nil {
		zones, err := files.ZoneMap()
		if err != nil {
			return nil, err
		}

		opts.ZoneMap = zones
	}

	frames, err := DeckToFrames(parsed, opts)
	if err != nil {
		return nil, err
	}

	compdatFrame := frames["COMPDAT"]
	if compdatFrame == nil {
		return frame.New(compdatColumns...), nil
	}

	if opts.ZoneMap != nil {
		mergeZones(compdatFrame, opts.ZoneMap)
	}

	return compdatFrame, nil
}

func mergeZones(f *frame.Frame, zones zonemap.ZoneMap) {
	f.AddColumn("ZONE")

	for i := 0; i < f.Len(); i++ {
		k1, ok1 := asInt(f.Value(i, "K1"))
		k2, ok2 := asInt(f.Value(i, "K2"))

		// Only single-layer connections map cleanly to a zone.
		if !ok1 || !ok2 || k1 != k2 {
			continue
		}

		if zone, ok := zones[k1]; ok {
			f.SetValue(i, "ZONE", zone)
		}
	}
}

func (a *accumulator) currentDate() any {
	if a.date == nil {
		return nil
	}

	return *a.date
}

func (a *accumulator) handleWelspecs(kw deck.Keyword) error {
	for _, rec := range kw.Records {
		values, err := deck.RecordMap("WELSPECS", rec)
		if err != nil {
			return err
		}

		well, _ := values["WELL"].(string)
		i, _ := values["I"].(int)
		j, _ := values["J"].(int)

		a.welspecs[well] = welspec{i: i, j: j}
	}

	return nil
}

func (a *accumulator) handleCompdat(kw deck.Keyword) error {
	for _, rec := range kw.Records {
		values, err := deck.RecordMap("COMPDAT", rec)
		if err != nil {
			return err
		}

		well, _ := values["WELL"].(string)

		// I or J of zero means defaulted, to be taken from the most
		// recent WELSPECS for the well.
		i, _ := values["I"].(int)
		if i == 0 {
			spec, ok := a.welspecs[well]
			if !ok || spec.i == 0 {
				return fmt.Errorf("%w: I defaulted for well %s", ErrWelspecsRequired, well)
			}

			values["I"] = spec.i
		}

		j, _ := values["J"].(int)
		if j == 0 {
			spec, ok := a.welspecs[well]
			if !ok || spec.j == 0 {
				return fmt.Errorf("%w: J defaulted for well %s", ErrWelspecsRequired, well)
			}

			values["J"] = spec.j
		}

		values["DATE"] = a.currentDate()

		idx := len(a.compdat)
		a.compdat = append(a.compdat, values)

		if a.connections[well] == nil {
			a.connections[well] = make(map[string]int)
		}

		a.connections[well][cellKey(values)] = idx
	}

	return nil
}

func cellKey(values map[string]any) string {
	return fmt.Sprintf("%v-%v-%v-%v", values["I"], values["J"], values["K1"], values["K2"])
}

func (a *accumulator) handleWelsegs(kw deck.Keyword) error {
	if len(kw.Records) == 0 {
		return nil
	}

	header, err := deck.MapRecord(welsegsHeaderItems, kw.Records[0])
	if err != nil {
		return err
	}

	infoType, _ := header["INFO_TYPE"].(string)

	lengthColumn := "SEGMENT_LENGTH"
	if infoType == "ABS" {
		lengthColumn = "SEGMENT_MD"
		a.hasAbsSegments = true
	} else {
		a.hasIncSegments = true
	}

	for _, rec := range kw.Records[1:] {
		values, err := deck.RecordMap("WELSEGS", rec)
		if err != nil {
			return err
		}

		row := make(map[string]any, len(header)+len(values)+1)
		for k, v := range header {
			row[k] = v
		}

		for k, v := range values {
			if k == "SEGMENT_LENGTH" {
				k = lengthColumn
			}

			row[k] = v
		}

		row["DATE"] = a.currentDate()
		a.welsegs = append(a.welsegs, row)
	}

	return nil
}

func (a *accumulator) handleCompsegs(kw deck.Keyword) error {
	if len(kw.Records) == 0 {
		return nil
	}

	header, err := deck.MapRecord(compsegsHeaderItems, kw.Records[0])
	if err != nil {
		return err
	}

	for _, rec := range kw.Records[1:] {
		values, err := deck.RecordMap("COMPSEGS", rec)
		if err != nil {
			return err
		}

		values["WELL"] = header["WELL"]
		values["DATE"] = a.currentDate()
		a.compsegs = append(a.compsegs, values)
	}

	return nil
}

func (a *accumulator) handleSegmentKeyword(kw deck.Keyword) error {
	for _, rec := range kw.Records {
		values, err := deck.RecordMap(kw.Name, rec)
		if err != nil {
			return err
		}

		values["DATE"] = a.currentDate()

		switch kw.Name {
		case "WSEGAICD":
			a.wsegaicd = append(a.wsegaicd, values)
		case "WSEGSICD":
			a.wsegsicd = append(a.wsegsicd, values)
		case "WSEGVALV":
			a.wsegvalv = append(a.wsegvalv, values)
		}
	}

	return nil
}

func (a *accumulator) handleWelopen(kw deck.Keyword) error {
	for _, rec := range kw.Records {
		values, err := deck.RecordMap("WELOPEN", rec)
		if err != nil {
			return err
		}

		pattern, _ := values["WELL"].(string)

		status, _ := values["STATUS"].(string)
		switch status {
		case "POPN":
			status = "OPEN"
		case "OPEN", "SHUT", "STOP", "AUTO":
		default:
			return fmt.Errorf("%w: %s", ErrWelopenStatus, status)
		}

		wells := a.matchWells(pattern)
		if len(wells) == 0 {
			return fmt.Errorf("%w: %s", ErrWelopenWell, pattern)
		}

		i, _ := values["I"].(int)
		j, _ := values["J"].(int)
		k, _ := values["K"].(int)

		for _, well := range wells {
			a.applyWelopen(well, status, i, j, k)
		}
	}

	return nil
}

// matchWells resolves a WELOPEN well item, supporting simple
// wildcards, against wells with registered connections.
func (a *accumulator) matchWells(pattern string) []string {
	var wells []string

	for well := range a.connections {
		if matched, _ := path.Match(pattern, well); matched || well == pattern {
			wells = append(wells, well)
		}
	}

	sort.Strings(wells)

	return wells
}

func (a *accumulator) applyWelopen(well, status string, i, j, k int) {
	conns := a.connections[well]

	keys := make([]string, 0, len(conns))
	for key := range conns {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		idx := conns[key]
		row := a.compdat[idx]

		if i > 0 || j > 0 || k > 0 {
			rowI, _ := asInt(row["I"])
			rowJ, _ := asInt(row["J"])
			rowK1, _ := asInt(row["K1"])
			rowK2, _ := asInt(row["K2"])

			if (i > 0 && rowI != i) || (j > 0 && rowJ != j) {
				continue
			}

			if k > 0 && (k < rowK1 || k > rowK2) {
				continue
			}
		}

		if sameDate(row["DATE"], a.currentDate()) {
			row["OP/SH"] = status

			continue
		}

		// State change at a later date: emit a fresh row copying the
		// connection with the new status.
		copied := make(map[string]any, len(row))
		for colName, value := range row {
			copied[colName] = value
		}

		copied["OP/SH"] = status
		copied["DATE"] = a.currentDate()

		newIdx := len(a.compdat)
		a.compdat = append(a.compdat, copied)
		conns[key] = newIdx
	}
}

func sameDate(a, b any) bool {
	at, aOK := a.(time.Time)
	bt, bOK := b.(time.Time)

	if !aOK || !bOK {
		return aOK == bOK
	}

	return at.Equal(bt)
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}

func (a *accumulator) frames() (Frames, error) {
	out := make(Frames)

	if len(a.compdat) > 0 {
		f, err := buildFrame(compdatColumns, a.compdat)
		if err != nil {
			return nil, err
		}

		if !a.opts.NoUnroll {
			f = Unroll(f, "K1", "K2")
		}

		out["COMPDAT"] = f
	}

	if len(a.welsegs) > 0 {
		f, err := buildFrame(a.welsegsColumns(), a.welsegs)
		if err != nil {
			return nil, err
		}

		if !a.opts.NoUnroll {
			f = Unroll(f, "SEGMENT1", "SEGMENT2")
		}

		out["WELSEGS"] = f
	}

	tables := []struct {
		name    string
		rows    []map[string]any
		columns []string
	}{
		{"COMPSEGS", a.compsegs, append([]string{"WELL"}, append(deck.ItemNames("COMPSEGS"), "DATE")...)},
		{"WSEGAICD", a.wsegaicd, append(deck.ItemNames("WSEGAICD"), "DATE")},
		{"WSEGSICD", a.wsegsicd, append(deck.ItemNames("WSEGSICD"), "DATE")},
		{"WSEGVALV", a.wsegvalv, append(deck.ItemNames("WSEGVALV"), "DATE")},
	}

	for _, table := range tables {
		if len(table.rows) == 0 {
			continue
		}

		f, err := buildFrame(table.columns, table.rows)
		if err != nil {
			return nil, err
		}

		out[table.name] = f
	}

	return out, nil
}

func (a *accumulator) welsegsColumns() []string {
	columns := []string{
		"WELL", "DEPTH", "LENGTH", "WBVOLUME", "INFO_TYPE",
		"PRESSURE_COMPONENTS", "FLOW_MODEL", "TOP_X", "TOP_Y",
		"SEGMENT1", "SEGMENT2", "BRANCH", "JOIN_SEGMENT",
	}

	if a.hasAbsSegments {
		columns = append(columns, "SEGMENT_MD")
	}

	if a.hasIncSegments {
		columns = append(columns, "SEGMENT_LENGTH")
	}

	return append(columns,
		"DEPTH_CHANGE", "DIAMETER", "ROUGHNESS", "AREA", "VOLUME",
		"LENGTH_X", "LENGTH_Y", "DATE")
}

func buildFrame(columns []string, rows []map[string]any) (*frame.Frame, error) {
	f := frame.New(columns...)

	for _, row := range rows {
		if err := f.AppendMap(row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Unroll expands rows where the start and end columns span a range
// into one row per value, with both columns set to the single value.
// Frames missing either column are returned unchanged.
func Unroll(f *frame.Frame, startColumn, endColumn string) *frame.Frame {
	if !f.HasColumn(startColumn) || !f.HasColumn(endColumn) {
		return f
	}

	out := frame.New(f.Columns()...)

	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)

		start, okStart := asInt(row[startColumn])
		end, okEnd := asInt(row[endColumn])

		if !okStart || !okEnd || start >= end {
			_ = out.AppendMap(row)

			continue
		}

		for k := start; k <= end; k++ {
			copied := make(map[string]any, len(row))
			for colName, value := range row {
				copied[colName] = value
			}

			copied[startColumn] = k
			copied[endColumn] = k
			_ = out.AppendMap(copied)
		}
	}

	return out
}
