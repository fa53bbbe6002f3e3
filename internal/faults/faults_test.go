package faults

import (
	"testing"

	"github.com/berland/res2df/internal/deck"
)

func TestDeckToFrame(t *testing.T) {
	d, err := deck.Parse(`
FAULTS
 'F1' 5 5 10 12 1 2 'X' /
 'F2' 7 7 8 8 1 1 'Y' /
/
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	f, err := DeckToFrame(d)
	if err != nil {
		t.Fatalf("DeckToFrame failed: %v", err)
	}

	// F1 spans 1x3x2 cells, F2 a single cell.
	if f.Len() != 7 {
		t.Fatalf("Expected 7 rows, got %d", f.Len())
	}

	if f.Value(0, "NAME") != "F1" || f.Value(0, "I") != 5 || f.Value(0, "J") != 10 || f.Value(0, "K") != 1 {
		t.Errorf("Unexpected first cell: %v", f.Row(0))
	}

	if f.Value(0, "FACE") != "X" {
		t.Errorf("Expected FACE X, got %v", f.Value(0, "FACE"))
	}

	last := f.Row(f.Len() - 1)
	if last["NAME"] != "F2" || last["I"] != 7 || last["J"] != 8 || last["K"] != 1 {
		t.Errorf("Unexpected last cell: %v", last)
	}
}

func TestDeckToFrame_InvalidRange(t *testing.T) {
	d, err := deck.Parse(`
FAULTS
 'F1' 5 4 10 10 1 1 'X' /
/
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if _, err := DeckToFrame(d); err == nil {
		t.Error("Expected error for descending I range")
	}
}
