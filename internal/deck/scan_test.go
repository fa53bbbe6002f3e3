package deck

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_Schedule(t *testing.T) {
	input := `
-- a comment line
START
 1 JAN 2000 /

WELSPECS
 'OP1' 'OPWEST' 33 44 1800 /
/

COMPDAT
 'OP1' 33 44 10 11 'OPEN' 1* 6467.31299 0.216 506642.25 0 1* 'Y' 7.18 /
/
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(d.Keywords) != 3 {
		t.Fatalf("Expected 3 keywords, got %d", len(d.Keywords))
	}

	if !d.HasKeyword("COMPDAT") {
		t.Error("Expected COMPDAT keyword in deck")
	}

	compdats := d.Find("COMPDAT")
	if len(compdats) != 1 || len(compdats[0].Records) != 1 {
		t.Fatalf("Expected one COMPDAT with one record, got %+v", compdats)
	}

	values, err := RecordMap("COMPDAT", compdats[0].Records[0])
	if err != nil {
		t.Fatalf("RecordMap failed: %v", err)
	}

	if values["WELL"] != "OP1" {
		t.Errorf("Expected WELL OP1, got %v", values["WELL"])
	}

	if values["K2"] != 11 {
		t.Errorf("Expected K2 11, got %v", values["K2"])
	}

	// 1* for SATN resolves to the schema default.
	if values["SATN"] != 0 {
		t.Errorf("Expected defaulted SATN 0, got %v", values["SATN"])
	}

	if values["DIR"] != "Y" {
		t.Errorf("Expected DIR Y, got %v", values["DIR"])
	}

	if values["RO"] != 7.18 {
		t.Errorf("Expected RO 7.18, got %v", values["RO"])
	}
}

func TestParse_StarMultiplier(t *testing.T) {
	input := `
WELOPEN
 'OP1' 'SHUT' 3* /
/
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec := d.Find("WELOPEN")[0].Records[0]
	if len(rec.Items) != 5 {
		t.Fatalf("Expected 5 items after 3* expansion, got %d", len(rec.Items))
	}

	for i := 2; i < 5; i++ {
		if !rec.Items[i].Defaulted {
			t.Errorf("Expected item %d defaulted", i)
		}
	}
}

func TestParse_ValueMultiplier(t *testing.T) {
	input := `
TSTEP
 3*10 /
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	days, err := TstepDays(d.Find("TSTEP")[0].Records[0])
	if err != nil {
		t.Fatalf("TstepDays failed: %v", err)
	}

	if len(days) != 3 || days[0] != 10 || days[2] != 10 {
		t.Errorf("Expected three steps of 10 days, got %v", days)
	}
}

func TestParse_SlashInsideQuotes(t *testing.T) {
	input := `
WELSPECS
 'OP/1' 'GROUP' 1 1 1000 /
/
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	values, err := RecordMap("WELSPECS", d.Find("WELSPECS")[0].Records[0])
	if err != nil {
		t.Fatalf("RecordMap failed: %v", err)
	}

	if values["WELL"] != "OP/1" {
		t.Errorf("Expected quoted slash kept in well name, got %v", values["WELL"])
	}
}

func TestParse_CommentAfterSlash(t *testing.T) {
	input := `
GRUPTREE
 'OPWEST' 'FIELD' / trailing comment text
/
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(d.Find("GRUPTREE")[0].Records) != 1 {
		t.Errorf("Expected one GRUPTREE record")
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	_, err := Parse("WELSPECS\n 'OP1 /\n/\n")
	if !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("Expected ErrUnterminatedQuote, got %v", err)
	}
}

func TestParse_FortranExponent(t *testing.T) {
	input := `
TSTEP
 1.0D1 /
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	days, err := TstepDays(d.Find("TSTEP")[0].Records[0])
	if err != nil {
		t.Fatalf("TstepDays failed: %v", err)
	}

	if days[0] != 10 {
		t.Errorf("Expected D exponent to parse to 10, got %v", days[0])
	}
}

func TestParse_TableEndsAtKnownKeyword(t *testing.T) {
	// SWOF tables may be terminated by the next keyword without an
	// empty record.
	input := `
SWOF
 0.1 0 1 0
 0.9 1 0 0 /
EQUIL
 2000 200 2100 /
`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(d.Keywords) != 2 {
		t.Fatalf("Expected 2 keywords, got %d", len(d.Keywords))
	}

	if d.Keywords[1].Name != "EQUIL" {
		t.Errorf("Expected EQUIL after SWOF, got %s", d.Keywords[1].Name)
	}
}

func TestParseFile_Include(t *testing.T) {
	dir := t.TempDir()

	include := filepath.Join(dir, "sched.inc")
	if err := os.WriteFile(include, []byte("DATES\n 1 'MAY' 2001 /\n/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	datafile := filepath.Join(dir, "CASE.DATA")
	deckText := "START\n 1 JAN 2000 /\n\nINCLUDE\n 'sched.inc' /\n"

	if err := os.WriteFile(datafile, []byte(deckText), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := ParseFile(datafile)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if !d.HasKeyword("DATES") {
		t.Fatal("Expected DATES spliced in from include file")
	}

	date, err := ParseDateRecord("DATES", d.Find("DATES")[0].Records[0])
	if err != nil {
		t.Fatalf("ParseDateRecord failed: %v", err)
	}

	want := time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("Expected %v, got %v", want, date)
	}
}

func TestParseFile_MissingInclude(t *testing.T) {
	dir := t.TempDir()

	datafile := filepath.Join(dir, "CASE.DATA")
	if err := os.WriteFile(datafile, []byte("INCLUDE\n 'nosuchfile.inc' /\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseFile(datafile); err == nil {
		t.Error("Expected error for missing include file")
	}
}

func TestParseDateRecord_Months(t *testing.T) {
	d, err := Parse("DATES\n 1 'JLY' 2001 /\n/\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	date, err := ParseDateRecord("DATES", d.Find("DATES")[0].Records[0])
	if err != nil {
		t.Fatalf("ParseDateRecord failed: %v", err)
	}

	if date.Month() != time.July {
		t.Errorf("Expected JLY to mean July, got %v", date.Month())
	}

	if _, err := ParseDateRecord("DATES", Record{Items: []Item{
		{Token: "1"}, {Token: "XXX"}, {Token: "2001"},
	}}); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Expected ErrInvalidMonth, got %v", err)
	}
}

func TestAdvanceDate_FractionalDays(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	got := AdvanceDate(start, 1.5)
	want := time.Date(2000, 1, 2, 12, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestValue_UnknownKeyword(t *testing.T) {
	if _, err := Value("NOSUCHKW", Record{}, "WELL"); !errors.Is(err, ErrUnknownKeywordTable) {
		t.Errorf("Expected ErrUnknownKeywordTable, got %v", err)
	}
}
