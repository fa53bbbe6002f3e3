package gruptree

import (
	"testing"
	"time"

	"github.com/berland/res2df/internal/deck"
)

func parseDeck(t *testing.T, input string) *deck.Deck {
	t.Helper()

	d, err := deck.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return d
}

func TestDeckToFrame_Snapshots(t *testing.T) {
	d := parseDeck(t, `
START
 1 JAN 2000 /

GRUPTREE
 'OPEAST' 'FIELD' /
 'OPWEST' 'FIELD' /
/

DATES
 1 FEB 2000 /
/

GRUPTREE
 'OPEAST' 'OPWEST' /
/
`)

	f, err := DeckToFrame(d)
	if err != nil {
		t.Fatalf("DeckToFrame failed: %v", err)
	}

	// Two edges at the first date, full two-edge snapshot again after
	// the re-parenting.
	if f.Len() != 4 {
		t.Fatalf("Expected 4 rows, got %d", f.Len())
	}

	jan := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC)

	if date, _ := f.Value(0, "DATE").(time.Time); !date.Equal(jan) {
		t.Errorf("Expected first snapshot at %v, got %v", jan, f.Value(0, "DATE"))
	}

	if date, _ := f.Value(2, "DATE").(time.Time); !date.Equal(feb) {
		t.Errorf("Expected second snapshot at %v, got %v", feb, f.Value(2, "DATE"))
	}

	// Children sort alphabetically inside a snapshot.
	if f.Value(0, "CHILD") != "OPEAST" || f.Value(0, "PARENT") != "FIELD" {
		t.Errorf("Unexpected first edge: %v", f.Row(0))
	}

	if f.Value(2, "CHILD") != "OPEAST" || f.Value(2, "PARENT") != "OPWEST" {
		t.Errorf("Expected re-parented OPEAST under OPWEST, got %v", f.Row(2))
	}

	// OPWEST keeps its FIELD parent in the second snapshot.
	if f.Value(3, "CHILD") != "OPWEST" || f.Value(3, "PARENT") != "FIELD" {
		t.Errorf("Expected carried-forward OPWEST edge, got %v", f.Row(3))
	}
}

func TestDeckToFrame_NoChangeNoSnapshot(t *testing.T) {
	d := parseDeck(t, `
START
 1 JAN 2000 /

GRUPTREE
 'OPEAST' 'FIELD' /
/

DATES
 1 FEB 2000 /
/

GRUPTREE
 'OPEAST' 'FIELD' /
/
`)

	f, err := DeckToFrame(d)
	if err != nil {
		t.Fatalf("DeckToFrame failed: %v", err)
	}

	// Repeating an identical edge emits no new snapshot.
	if f.Len() != 1 {
		t.Errorf("Expected 1 row, got %d", f.Len())
	}
}

func TestDeckToFrame_Welspecs(t *testing.T) {
	d := parseDeck(t, `
START
 1 JAN 2000 /

GRUPTREE
 'OPWEST' 'FIELD' /
/

WELSPECS
 'OP1' 'OPWEST' 33 44 1800 /
/
`)

	f, err := DeckToFrame(d)
	if err != nil {
		t.Fatalf("DeckToFrame failed: %v", err)
	}

	if f.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", f.Len())
	}

	found := false

	for row := 0; row < f.Len(); row++ {
		if f.Value(row, "CHILD") == "OP1" {
			found = true

			if f.Value(row, "PARENT") != "OPWEST" || f.Value(row, "KEYWORD") != "WELSPECS" {
				t.Errorf("Unexpected well edge: %v", f.Row(row))
			}
		}
	}

	if !found {
		t.Error("Expected OP1 edge from WELSPECS")
	}
}

func TestDeckToFrame_DefaultParent(t *testing.T) {
	d := parseDeck(t, `
GRUPTREE
 'OPWEST' /
/
`)

	f, err := DeckToFrame(d)
	if err != nil {
		t.Fatalf("DeckToFrame failed: %v", err)
	}

	if f.Value(0, "PARENT") != "FIELD" {
		t.Errorf("Expected defaulted parent FIELD, got %v", f.Value(0, "PARENT"))
	}

	if f.Value(0, "DATE") != nil {
		t.Errorf("Expected nil date before any START, got %v", f.Value(0, "DATE"))
	}
}
