package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const maxIncludeDepth = 10

var (
	keywordPattern    = regexp.MustCompile(`^[A-Z][A-Z0-9_-]{0,7}$`)
	multiplierPattern = regexp.MustCompile(`^(\d+)\*(.*)$`)
)

type token struct {
	text   string
	quoted bool
}

// Parse parses deck text into a Deck. INCLUDE keywords are kept
// verbatim; use ParseFile to have them resolved.
func Parse(input string) (*Deck, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	return parseTokens(tokens)
}

// ParseFile parses a deck file and splices the contents of INCLUDE
// files in place, resolved relative to the including file.
func ParseFile(path string) (*Deck, error) {
	return parseFileDepth(path, 0)
}

func parseFileDepth(path string, depth int) (*Deck, error) {
	if depth > maxIncludeDepth {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepth, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := &Deck{}

	for _, kw := range parsed.Keywords {
		if kw.Name != "INCLUDE" {
			out.Keywords = append(out.Keywords, kw)

			continue
		}

		if len(kw.Records) == 0 || kw.Records[0].Empty() {
			return nil, fmt.Errorf("%w: in %s", ErrMissingIncludeFile, path)
		}

		name := kw.Records[0].Items[0].Token
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(path), name)
		}

		included, err := parseFileDepth(name, depth+1)
		if err != nil {
			return nil, err
		}

		out.Keywords = append(out.Keywords, included.Keywords...)
	}

	return out, nil
}

// tokenize splits deck text into word and slash tokens. Comments
// start with `--` outside quotes; everything after a record slash on
// the same line is also comment.
func tokenize(input string) ([]token, error) {
	var tokens []token

	for lineNo, line := range strings.Split(input, "\n") {
		i := 0

		lineDone := false

		for i < len(line) && !lineDone {
			c := line[i]

			switch {
			case c == ' ' || c == '\t' || c == '\r':
				i++
			case c == '-' && i+1 < len(line) && line[i+1] == '-':
				lineDone = true
			case c == '\'' || c == '"':
				end := strings.IndexByte(line[i+1:], c)
				if end < 0 {
					return nil, fmt.Errorf("%w: line %d", ErrUnterminatedQuote, lineNo+1)
				}

				tokens = append(tokens, token{text: line[i+1 : i+1+end], quoted: true})
				i += end + 2
			case c == '/':
				tokens = append(tokens, token{text: "/"})
				// Rest of the line after a slash is comment.
				lineDone = true
			default:
				end := i
				for end < len(line) && !strings.ContainsRune(" \t\r/'\"", rune(line[end])) {
					end++
				}

				tokens = append(tokens, token{text: line[i:end]})
				i = end
			}
		}
	}

	return tokens, nil
}

func parseTokens(tokens []token) (*Deck, error) {
	d := &Deck{}

	i := 0

	for i < len(tokens) {
		tok := tokens[i]
		if tok.text == "/" {
			// Stray terminator, skip.
			i++

			continue
		}

		name := strings.ToUpper(tok.text)
		if tok.quoted || !keywordPattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, tok.text)
		}

		i++

		kw := Keyword{Name: name}

		kind := KindUnknown
		if def := Lookup(name); def != nil {
			kind = def.Kind
		}

		switch kind {
		case KindFlag:
			// No records.
		case KindSingle:
			rec, next, err := readRecord(tokens, i)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}

			kw.Records = append(kw.Records, rec)
			i = next
		case KindList:
			for {
				rec, next, err := readRecord(tokens, i)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}

				i = next
				if rec.Empty() {
					break
				}

				kw.Records = append(kw.Records, rec)
			}
		case KindTable, KindUnknown:
			for i < len(tokens) {
				if atKeywordBoundary(tokens[i]) {
					break
				}

				rec, next, err := readRecord(tokens, i)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}

				i = next
				if rec.Empty() {
					break
				}

				kw.Records = append(kw.Records, rec)
			}
		}

		d.Keywords = append(d.Keywords, kw)
	}

	return d, nil
}

// atKeywordBoundary reports whether the token starts a known keyword,
// ending an open table or unknown keyword.
func atKeywordBoundary(tok token) bool {
	if tok.quoted || tok.text == "/" {
		return false
	}

	return Lookup(strings.ToUpper(tok.text)) != nil
}

// readRecord collects items until the next slash, expanding star
// multipliers.
func readRecord(tokens []token, start int) (Record, int, error) {
	var rec Record

	i := start

	for i < len(tokens) {
		tok := tokens[i]
		i++

		if tok.text == "/" && !tok.quoted {
			return rec, i, nil
		}

		if !tok.quoted {
			if m := multiplierPattern.FindStringSubmatch(tok.text); m != nil {
				count, err := strconv.Atoi(m[1])
				if err != nil || count < 1 {
					return rec, i, fmt.Errorf("%w: %s", ErrInvalidMultiplier, tok.text)
				}

				for n := 0; n < count; n++ {
					rec.Items = append(rec.Items, Item{
						Token:     m[2],
						Defaulted: m[2] == "",
					})
				}

				continue
			}
		}

		rec.Items = append(rec.Items, Item{Token: tok.text, Quoted: tok.quoted})
	}

	return rec, i, ErrUnterminatedRecord
}
