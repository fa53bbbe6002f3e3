// Package deck parses reservoir simulator input decks: the keyword
// and record text format used in DATA files and schedule include
// files. Keywords carry slash-terminated records of whitespace
// separated items, with quoted strings, star-multipliers and `--`
// comments.
package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrInvalidKeyword      = errors.New("invalid keyword")
	ErrUnterminatedRecord  = errors.New("record not terminated by slash")
	ErrUnterminatedQuote   = errors.New("unterminated quoted string")
	ErrIncludeDepth        = errors.New("INCLUDE nesting too deep")
	ErrMissingIncludeFile  = errors.New("INCLUDE keyword without file name")
	ErrInvalidMultiplier   = errors.New("invalid star multiplier")
	ErrInvalidItem         = errors.New("item cannot be parsed")
	ErrUnknownKeywordTable = errors.New("keyword has no schema")
)

// Item is a single deck record entry. Defaulted items come from
// star-defaults (1*, 3*) or from records shorter than the keyword
// schema.
type Item struct {
	Token     string
	Quoted    bool
	Defaulted bool
}

// Record is one slash-terminated line group of items.
type Record struct {
	Items []Item
}

// Empty reports whether the record has no items, i.e. was a lone
// terminating slash.
func (r Record) Empty() bool {
	return len(r.Items) == 0
}

// Keyword is a named keyword with its records.
type Keyword struct {
	Name    string
	Records []Record
}

// Deck is an ordered keyword sequence.
type Deck struct {
	Keywords []Keyword
}

// Find returns all keywords with the given name, in deck order.
func (d *Deck) Find(name string) []Keyword {
	var out []Keyword

	for _, kw := range d.Keywords {
		if kw.Name == name {
			out = append(out, kw)
		}
	}

	return out
}

// HasKeyword reports whether the deck contains the named keyword.
func (d *Deck) HasKeyword(name string) bool {
	for _, kw := range d.Keywords {
		if kw.Name == name {
			return true
		}
	}

	return false
}

// Item value access through the keyword schema.

// Value resolves the named item of a record to a typed value using
// the schema for the keyword. Defaulted items resolve to the schema
// default, which may be nil.
func Value(keyword string, rec Record, item string) (any, error) {
	def := Lookup(keyword)
	if def == nil || len(def.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeywordTable, keyword)
	}

	for i, itemDef := range def.Items {
		if itemDef.Name != item {
			continue
		}

		if i >= len(rec.Items) || rec.Items[i].Defaulted {
			return itemDef.Default, nil
		}

		return convertItem(rec.Items[i], itemDef)
	}

	return nil, fmt.Errorf("%w: %s has no item %s", ErrUnknownKeywordTable, keyword, item)
}

// RecordMap resolves a full record to a map of item name to typed
// value using the keyword schema.
func RecordMap(keyword string, rec Record) (map[string]any, error) {
	def := Lookup(keyword)
	if def == nil || len(def.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeywordTable, keyword)
	}

	out := make(map[string]any, len(def.Items))

	for i, itemDef := range def.Items {
		if i >= len(rec.Items) || rec.Items[i].Defaulted {
			out[itemDef.Name] = itemDef.Default

			continue
		}

		value, err := convertItem(rec.Items[i], itemDef)
		if err != nil {
			return nil, err
		}

		out[itemDef.Name] = value
	}

	return out, nil
}

// MapRecord resolves a record against an ad-hoc item list. Used for
// header records whose layout differs from the keyword's data
// records, like the first record of WELSEGS.
func MapRecord(items []ItemDef, rec Record) (map[string]any, error) {
	out := make(map[string]any, len(items))

	for i, itemDef := range items {
		if i >= len(rec.Items) || rec.Items[i].Defaulted {
			out[itemDef.Name] = itemDef.Default

			continue
		}

		value, err := convertItem(rec.Items[i], itemDef)
		if err != nil {
			return nil, err
		}

		out[itemDef.Name] = value
	}

	return out, nil
}

func convertItem(item Item, def ItemDef) (any, error) {
	token := item.Token

	switch def.Type {
	case TypeString:
		return token, nil
	case TypeInt:
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %s as integer for %s", ErrInvalidItem, token, def.Name)
		}

		return n, nil
	case TypeFloat:
		f, err := parseFloat(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %s as float for %s", ErrInvalidItem, token, def.Name)
		}

		return f, nil
	default:
		return token, nil
	}
}

// parseFloat parses a deck float, accepting the Fortran D exponent
// marker.
func parseFloat(token string) (float64, error) {
	token = strings.ReplaceAll(token, "D", "E")
	token = strings.ReplaceAll(token, "d", "e")

	return strconv.ParseFloat(token, 64)
}

// Floats returns all items of a record parsed as floats. Used for
// number-table keywords like SWOF or TSTEP.
func (r Record) Floats() ([]float64, error) {
	out := make([]float64, 0, len(r.Items))

	for _, item := range r.Items {
		if item.Defaulted {
			return nil, fmt.Errorf("%w: defaulted item in number table", ErrInvalidItem)
		}

		f, err := parseFloat(item.Token)
		if err != nil {
			return nil, fmt.Errorf("%w: %s as float", ErrInvalidItem, item.Token)
		}

		out = append(out, f)
	}

	return out, nil
}
