// Package resdata reads and writes the binary array files emitted by
// reservoir simulators (SMSPEC, UNSMRY and friends). The files are
// Fortran unformatted sequential files: every record is framed by a
// big-endian int32 byte count before and after the payload. An array
// starts with a 16-byte header record (8-char keyword, element count,
// 4-char type) followed by data records blocked at 1000 elements, or
// 105 elements for CHAR data.
package resdata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Codec errors.
var (
	ErrRecordMarkers = errors.New("record framing markers do not match")
	ErrShortRecord   = errors.New("record shorter than its marker")
	ErrBadHeader     = errors.New("malformed array header record")
	ErrUnknownType   = errors.New("unknown array element type")
)

// Type is the four-character element type of an array.
type Type string

// Array element types.
const (
	TypeInte Type = "INTE"
	TypeReal Type = "REAL"
	TypeDoub Type = "DOUB"
	TypeChar Type = "CHAR"
	TypeLogi Type = "LOGI"
	TypeMess Type = "MESS"
)

const (
	headerBytes    = 16
	numericPerRec  = 1000
	charPerRec     = 105
	charWidth      = 8
	maxRecordBytes = 1 << 24
)

// Array is one named, typed array from a binary file. Only the slice
// matching Type is populated.
type Array struct {
	Keyword string
	Type    Type
	Ints    []int32
	Floats  []float32
	Doubles []float64
	Strings []string
	Bools   []bool
}

// Len returns the element count of the populated slice.
func (a *Array) Len() int {
	switch a.Type {
	case TypeInte:
		return len(a.Ints)
	case TypeReal:
		return len(a.Floats)
	case TypeDoub:
		return len(a.Doubles)
	case TypeChar:
		return len(a.Strings)
	case TypeLogi:
		return len(a.Bools)
	default:
		return 0
	}
}

func elementSize(t Type) (int, error) {
	switch t {
	case TypeInte, TypeReal, TypeLogi:
		return 4, nil
	case TypeDoub, TypeChar:
		return 8, nil
	case TypeMess:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
}

// readRecord reads one framed record payload.
func readRecord(r io.Reader) ([]byte, error) {
	var head int32
	if err := binary.Read(r, binary.BigEndian, &head); err != nil {
		return nil, err
	}

	if head < 0 || head > maxRecordBytes {
		return nil, fmt.Errorf("%w: length %d", ErrShortRecord, head)
	}

	payload := make([]byte, head)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortRecord, err)
	}

	var tail int32
	if err := binary.Read(r, binary.BigEndian, &tail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordMarkers, err)
	}

	if tail != head {
		return nil, fmt.Errorf("%w: head %d, tail %d", ErrRecordMarkers, head, tail)
	}

	return payload, nil
}

func writeRecord(w io.Writer, payload []byte) error {
	length := int32(len(payload))

	if err := binary.Write(w, binary.BigEndian, length); err != nil {
		return err
	}

	if _, err := w.Write(payload); err != nil {
		return err
	}

	return binary.Write(w, binary.BigEndian, length)
}

// ReadArray reads the next array from the stream. Returns io.EOF at
// clean end of file.
func ReadArray(r io.Reader) (*Array, error) {
	header, err := readRecord(r)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		return nil, err
	}

	if len(header) != headerBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadHeader, len(header))
	}

	keyword := strings.TrimRight(string(header[0:8]), " ")
	count := int(int32(binary.BigEndian.Uint32(header[8:12])))
	arrType := Type(header[12:16])

	size, err := elementSize(arrType)
	if err != nil {
		return nil, fmt.Errorf("array %s: %w", keyword, err)
	}

	arr := &Array{Keyword: keyword, Type: arrType}

	perRecord := numericPerRec
	if arrType == TypeChar {
		perRecord = charPerRec
	}

	remaining := count
	for remaining > 0 {
		block := remaining
		if block > perRecord {
			block = perRecord
		}

		payload, err := readRecord(r)
		if err != nil {
			return nil, fmt.Errorf("array %s: %w", keyword, err)
		}

		if len(payload) != block*size {
			return nil, fmt.Errorf("array %s: %w: %d bytes for %d elements",
				keyword, ErrShortRecord, len(payload), block)
		}

		if err := arr.decodeBlock(payload, block); err != nil {
			return nil, fmt.Errorf("array %s: %w", keyword, err)
		}

		remaining -= block
	}

	return arr, nil
}

func (a *Array) decodeBlock(payload []byte, count int) error {
	for i := 0; i < count; i++ {
		switch a.Type {
		case TypeInte:
			a.Ints = append(a.Ints, int32(binary.BigEndian.Uint32(payload[i*4:])))
		case TypeReal:
			bits := binary.BigEndian.Uint32(payload[i*4:])
			a.Floats = append(a.Floats, math.Float32frombits(bits))
		case TypeDoub:
			bits := binary.BigEndian.Uint64(payload[i*8:])
			a.Doubles = append(a.Doubles, math.Float64frombits(bits))
		case TypeChar:
			a.Strings = append(a.Strings, strings.TrimRight(string(payload[i*8:i*8+charWidth]), " "))
		case TypeLogi:
			a.Bools = append(a.Bools, binary.BigEndian.Uint32(payload[i*4:]) != 0)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownType, string(a.Type))
		}
	}

	return nil
}

// ReadAll reads every array from the stream until EOF.
func ReadAll(r io.Reader) ([]*Array, error) {
	var arrays []*Array

	for {
		arr, err := ReadArray(r)
		if err == io.EOF {
			return arrays, nil
		}

		if err != nil {
			return nil, err
		}

		arrays = append(arrays, arr)
	}
}

// ReadFile reads every array from a binary file.
func ReadFile(path string) ([]*Array, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open binary file: %w", err)
	}
	defer fh.Close()

	arrays, err := ReadAll(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return arrays, nil
}

// WriteArray writes one array with header and blocked data records.
func WriteArray(w io.Writer, arr *Array) error {
	size, err := elementSize(arr.Type)
	if err != nil {
		return fmt.Errorf("array %s: %w", arr.Keyword, err)
	}

	header := make([]byte, headerBytes)
	copy(header[0:8], fmt.Sprintf("%-8s", arr.Keyword))
	binary.BigEndian.PutUint32(header[8:12], uint32(arr.Len()))
	copy(header[12:16], string(arr.Type))

	if err := writeRecord(w, header); err != nil {
		return err
	}

	perRecord := numericPerRec
	if arr.Type == TypeChar {
		perRecord = charPerRec
	}

	count := arr.Len()

	for offset := 0; offset < count; offset += perRecord {
		block := count - offset
		if block > perRecord {
			block = perRecord
		}

		buf := bytes.NewBuffer(make([]byte, 0, block*size))
		arr.encodeBlock(buf, offset, block)

		if err := writeRecord(w, buf.Bytes()); err != nil {
			return err
		}
	}

	return nil
}

func (a *Array) encodeBlock(buf *bytes.Buffer, offset, count int) {
	scratch := make([]byte, 8)

	for i := offset; i < offset+count; i++ {
		switch a.Type {
		case TypeInte:
			binary.BigEndian.PutUint32(scratch, uint32(a.Ints[i]))
			buf.Write(scratch[:4])
		case TypeReal:
			binary.BigEndian.PutUint32(scratch, math.Float32bits(a.Floats[i]))
			buf.Write(scratch[:4])
		case TypeDoub:
			binary.BigEndian.PutUint64(scratch, math.Float64bits(a.Doubles[i]))
			buf.Write(scratch[:8])
		case TypeChar:
			buf.WriteString(fmt.Sprintf("%-8s", a.Strings[i]))
		case TypeLogi:
			var v uint32
			if a.Bools[i] {
				v = 0xFFFFFFFF
			}

			binary.BigEndian.PutUint32(scratch, v)
			buf.Write(scratch[:4])
		}
	}
}

// WriteAll writes a sequence of arrays.
func WriteAll(w io.Writer, arrays []*Array) error {
	for _, arr := range arrays {
		if err := WriteArray(w, arr); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes arrays to a binary file.
func WriteFile(path string, arrays []*Array) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create binary file: %w", err)
	}
	defer fh.Close()

	return WriteAll(fh, arrays)
}
