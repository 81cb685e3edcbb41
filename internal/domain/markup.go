package domain

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Link pattern for inline document references: [Label](doc:123).
// The first ']' always closes the label; nested brackets are not supported.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(doc:(\d+)\)`)

// docIDPattern extracts the numeric part of quick-jump input like "Doc 12".
var docIDPattern = regexp.MustCompile(`\d+`)

// Reference is a single inline link found in document text. All offsets are
// character (rune) indices into the exact text that was scanned. References
// are derived on every scan and never persisted.
type Reference struct {
	SourceID   int64 // filled by callers that know the scanned document
	Label      string
	TargetID   int64
	LabelStart int
	LabelEnd   int
	Start      int // opening '['
	End        int // one past the closing ')'
}

// Scan extracts all inline references from text, ordered by the position of
// the opening bracket. Malformed or unterminated markup is simply not
// matched; Scan never fails. Duplicate references to the same target are
// preserved as separate entries.
func Scan(text string) []Reference {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	conv := newRuneOffsets(text)
	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		// m holds byte offsets: full match, label group, id group.
		id, err := strconv.ParseInt(text[m[4]:m[5]], 10, 64)
		if err != nil {
			// Digit runs long enough to overflow int64 are not valid ids.
			continue
		}
		// Offsets are converted in ascending byte order; the walker only
		// moves forward.
		start := conv.runeIndex(m[0])
		labelStart := conv.runeIndex(m[2])
		labelEnd := conv.runeIndex(m[3])
		end := conv.runeIndex(m[1])
		refs = append(refs, Reference{
			Label:      text[m[2]:m[3]],
			TargetID:   id,
			LabelStart: labelStart,
			LabelEnd:   labelEnd,
			Start:      start,
			End:        end,
		})
	}
	return refs
}

// ParseDocID extracts a document id from free-form input such as "12",
// "Doc 12", or "Document 12". Returns false when no digits are present.
func ParseDocID(raw string) (int64, bool) {
	m := docIDPattern.FindString(raw)
	if m == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// runeOffsets converts byte offsets in a string to rune offsets. Queries
// must be made in ascending order, which matches regexp match order.
type runeOffsets struct {
	text    string
	byteIdx int
	runeIdx int
}

func newRuneOffsets(text string) *runeOffsets {
	return &runeOffsets{text: text}
}

func (c *runeOffsets) runeIndex(byteOffset int) int {
	for c.byteIdx < byteOffset {
		_, size := utf8.DecodeRuneInString(c.text[c.byteIdx:])
		c.byteIdx += size
		c.runeIdx++
	}
	return c.runeIdx
}
