package resdata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestRoundtrip_AllTypes(t *testing.T) {
	arrays := []*Array{
		{Keyword: "KEYWORDS", Type: TypeChar, Strings: []string{"TIME", "FOPT", "WOPR"}},
		{Keyword: "NUMS", Type: TypeInte, Ints: []int32{0, 0, 5}},
		{Keyword: "PARAMS", Type: TypeReal, Floats: []float32{0, 1.5, 2.25}},
		{Keyword: "DOUBHEAD", Type: TypeDoub, Doubles: []float64{0.25}},
		{Keyword: "LOGIHEAD", Type: TypeLogi, Bools: []bool{true, false}},
	}

	var buf bytes.Buffer
	if err := WriteAll(&buf, arrays); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	got, err := ReadAll(&buf)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(got) != len(arrays) {
		t.Fatalf("Expected %d arrays, got %d", len(arrays), len(got))
	}

	if got[0].Keyword != "KEYWORDS" || got[0].Strings[2] != "WOPR" {
		t.Errorf("CHAR array mismatch: %+v", got[0])
	}

	if got[1].Ints[2] != 5 {
		t.Errorf("INTE array mismatch: %+v", got[1])
	}

	if got[2].Floats[1] != 1.5 {
		t.Errorf("REAL array mismatch: %+v", got[2])
	}

	if got[3].Doubles[0] != 0.25 {
		t.Errorf("DOUB array mismatch: %+v", got[3])
	}

	if !got[4].Bools[0] || got[4].Bools[1] {
		t.Errorf("LOGI array mismatch: %+v", got[4])
	}
}

func TestRoundtrip_BlockedArray(t *testing.T) {
	// Numeric data is blocked at 1000 elements per record.
	values := make([]float32, 2500)
	for i := range values {
		values[i] = float32(i)
	}

	var buf bytes.Buffer
	if err := WriteArray(&buf, &Array{Keyword: "PARAMS", Type: TypeReal, Floats: values}); err != nil {
		t.Fatalf("WriteArray failed: %v", err)
	}

	arr, err := ReadArray(&buf)
	if err != nil {
		t.Fatalf("ReadArray failed: %v", err)
	}

	if arr.Len() != 2500 {
		t.Fatalf("Expected 2500 elements, got %d", arr.Len())
	}

	if arr.Floats[2499] != 2499 {
		t.Errorf("Expected last element 2499, got %v", arr.Floats[2499])
	}
}

func TestReadArray_EOF(t *testing.T) {
	if _, err := ReadArray(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("Expected io.EOF on empty stream, got %v", err)
	}
}

func TestReadArray_BadMarkers(t *testing.T) {
	var buf bytes.Buffer

	// Header record with a mismatched tail marker.
	_ = binary.Write(&buf, binary.BigEndian, int32(16))
	buf.WriteString("KEYWORDS")
	_ = binary.Write(&buf, binary.BigEndian, int32(0))
	buf.WriteString("CHAR")
	_ = binary.Write(&buf, binary.BigEndian, int32(17))

	if _, err := ReadArray(&buf); !errors.Is(err, ErrRecordMarkers) {
		t.Errorf("Expected ErrRecordMarkers, got %v", err)
	}
}

func TestReadArray_UnknownType(t *testing.T) {
	var buf bytes.Buffer

	header := make([]byte, 16)
	copy(header[0:8], "BADTYPE ")
	binary.BigEndian.PutUint32(header[8:12], 1)
	copy(header[12:16], "XXXX")

	if err := writeRecord(&buf, header); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadArray(&buf); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
}
