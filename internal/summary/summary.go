// Package summary extracts time series from binary summary files
// (SMSPEC/UNSMRY) into a frame with one row per report time and one
// column per summary vector.
package summary

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/resdata"
	"github.com/berland/res2df/internal/resfiles"
)

// Summary errors.
var (
	ErrNoTimeVector   = errors.New("summary case has no TIME vector")
	ErrNoStartDate    = errors.New("summary case has no STARTDAT")
	ErrRestartCycle   = errors.New("restart chain contains a cycle")
	ErrVectorMismatch = errors.New("PARAMS length does not match vector count")
)

// The WGNAMES placeholder for vectors without a well or group.
const dummyName = ":+:+:+:+"

// Options controls the extraction.
type Options struct {
	// IncludeRestart prepends history rows from the restart chain
	// referenced in the SMSPEC file.
	IncludeRestart bool
}

// vector is one summary vector and the column name it maps to.
type vector struct {
	keyword string
	wgname  string
	num     int32
	column  string
}

// columnName builds the exported column name for a vector. Well,
// group and similar vectors get KEYWORD:NAME, region and block
// vectors KEYWORD:NUM, field and miscellaneous vectors the bare
// keyword.
func columnName(keyword, wgname string, num int32) string {
	if wgname != "" && wgname != dummyName {
		return keyword + ":" + wgname
	}

	switch {
	case keyword == "":
		return ""
	case strings.HasPrefix(keyword, "R") || strings.HasPrefix(keyword, "B"):
		if num > 0 {
			return fmt.Sprintf("%s:%d", keyword, num)
		}
	}

	return keyword
}

type caseData struct {
	start   time.Time
	restart string
	columns []string
	rows    []caseRow
}

type caseRow struct {
	date   time.Time
	values map[string]float64
}

// Df extracts the summary time series of a case. With IncludeRestart
// the restart chain is followed recursively, prepending parent rows
// strictly older than this case's first report time.
func Df(files *resfiles.ResdataFiles, opts Options) (*frame.Frame, error) {
	visited := make(map[string]bool)

	data, err := loadChain(files, opts.IncludeRestart, visited)
	if err != nil {
		return nil, err
	}

	columns := append([]string{"DATE"}, data.columns...)
	out := frame.New(columns...)

	for _, row := range data.rows {
		cells := make([]any, len(columns))
		cells[0] = row.date

		for i, col := range data.columns {
			if value, ok := row.values[col]; ok {
				cells[i+1] = value
			}
		}

		if err := out.Append(cells...); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func loadChain(files *resfiles.ResdataFiles, includeRestart bool, visited map[string]bool) (*caseData, error) {
	key, err := filepath.Abs(files.Base())
	if err != nil {
		key = files.Base()
	}

	if visited[key] {
		return nil, fmt.Errorf("%w: %s", ErrRestartCycle, files.Base())
	}

	visited[key] = true

	data, err := loadCase(files)
	if err != nil {
		return nil, err
	}

	if !includeRestart || data.restart == "" {
		return data, nil
	}

	parentFiles := files.Sibling(data.restart)

	parent, err := loadChain(parentFiles, true, visited)
	if err != nil {
		return nil, fmt.Errorf("restart case %s: %w", data.restart, err)
	}

	// Only parent rows strictly before our own first report time
	// survive; the restarted run re-reports its initial state.
	var cutoff time.Time
	if len(data.rows) > 0 {
		cutoff = data.rows[0].date
	}

	var merged []caseRow

	for _, row := range parent.rows {
		if len(data.rows) == 0 || row.date.Before(cutoff) {
			merged = append(merged, row)
		}
	}

	data.rows = append(merged, data.rows...)

	return data, nil
}

// loadCase reads SMSPEC and UNSMRY of a single case.
func loadCase(files *resfiles.ResdataFiles) (*caseData, error) {
	smspecPath, err := files.SmspecPath()
	if err != nil {
		return nil, err
	}

	arrays, err := resdata.ReadFile(smspecPath)
	if err != nil {
		return nil, err
	}

	var (
		keywords []string
		wgnames  []string
		nums     []int32
		startdat []int32
		restart  string
	)

	for _, arr := range arrays {
		switch arr.Keyword {
		case "KEYWORDS":
			keywords = arr.Strings
		case "WGNAMES", "NAMES":
			wgnames = arr.Strings
		case "NUMS":
			nums = arr.Ints
		case "STARTDAT":
			startdat = arr.Ints
		case "RESTART":
			restart = strings.TrimSpace(strings.Join(arr.Strings, ""))
		}
	}

	if len(startdat) < 3 {
		return nil, fmt.Errorf("%w: %s", ErrNoStartDate, smspecPath)
	}

	start := time.Date(int(startdat[2]), time.Month(startdat[1]), int(startdat[0]),
		0, 0, 0, 0, time.UTC)
	if len(startdat) >= 6 {
		start = start.Add(time.Duration(startdat[3])*time.Hour +
			time.Duration(startdat[4])*time.Minute +
			time.Duration(startdat[5])*time.Microsecond)
	}

	timeIndex := -1

	vectors := make([]vector, len(keywords))

	var columns []string

	seen := make(map[string]bool)

	for i, keyword := range keywords {
		v := vector{keyword: keyword}

		if i < len(wgnames) {
			v.wgname = wgnames[i]
		}

		if i < len(nums) {
			v.num = nums[i]
		}

		if keyword == "TIME" && timeIndex < 0 {
			timeIndex = i
			vectors[i] = v

			continue
		}

		v.column = columnName(v.keyword, v.wgname, v.num)
		if v.column != "" && !seen[v.column] {
			seen[v.column] = true
			columns = append(columns, v.column)
		}

		vectors[i] = v
	}

	if timeIndex < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTimeVector, smspecPath)
	}

	unsmryPath, err := files.UnsmryPath()
	if err != nil {
		return nil, err
	}

	dataArrays, err := resdata.ReadFile(unsmryPath)
	if err != nil {
		return nil, err
	}

	data := &caseData{
		start:   start,
		restart: restart,
		columns: columns,
	}

	for _, arr := range dataArrays {
		if arr.Keyword != "PARAMS" {
			continue
		}

		if len(arr.Floats) != len(vectors) {
			return nil, fmt.Errorf("%w: %d values, %d vectors in %s",
				ErrVectorMismatch, len(arr.Floats), len(vectors), unsmryPath)
		}

		days := float64(arr.Floats[timeIndex])

		row := caseRow{
			date:   start.Add(time.Duration(days * 24 * float64(time.Hour))),
			values: make(map[string]float64, len(vectors)),
		}

		for i, v := range vectors {
			if i == timeIndex || v.column == "" {
				continue
			}

			row.values[v.column] = float64(arr.Floats[i])
		}

		data.rows = append(data.rows, row)
	}

	return data, nil
}
