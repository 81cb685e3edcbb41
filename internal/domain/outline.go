package domain

import (
	"encoding/xml"
	"io"
	"strings"
)

// OutlineNode is one node of an imported outline. It has no relation to
// store ids; only the tree controller's outline mode consumes it.
type OutlineNode struct {
	Text     string
	Children []OutlineNode
}

// NoTextLabel is the display text for outline nodes with no usable label.
const NoTextLabel = "[No Text]"

// Default parse bounds. Pathological inputs stop at these limits and the
// partial tree is returned with Truncated set.
const (
	DefaultMaxOutlineNodes = 50000
	DefaultMaxOutlineDepth = 64
)

// OutlineOptions bounds outline parsing. Zero values select the defaults.
type OutlineOptions struct {
	MaxNodes int
	MaxDepth int
}

// OutlineResult is the outcome of an outline import. Truncated is set when
// a parse bound was hit and Nodes holds the partial tree.
type OutlineResult struct {
	Nodes     []OutlineNode
	Truncated bool
}

// outline child element names, treated as synonyms (case-insensitive).
var outlineChildTags = map[string]bool{
	"outline": true,
	"node":    true,
	"item":    true,
}

type outlineElem struct {
	XMLName  xml.Name
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	Inline   string        `xml:",chardata"`
	Children []outlineElem `xml:",any"`
}

func (e *outlineElem) label() string {
	if e.Text != "" {
		return e.Text
	}
	if e.Title != "" {
		return e.Title
	}
	if inline := strings.TrimSpace(e.Inline); inline != "" {
		return inline
	}
	return NoTextLabel
}

// ImportOutline parses an OPML-style nested outline. Each node may supply
// its label via a text attribute, a title attribute, or inline content. A
// top-level container whose tag ends in "body" is expected but tolerated
// when absent, in which case all top-level children are treated as roots.
func ImportOutline(r io.Reader, opts OutlineOptions) (*OutlineResult, error) {
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxOutlineNodes
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxOutlineDepth
	}

	var root outlineElem
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}

	top := root.Children
	for _, child := range root.Children {
		if strings.HasSuffix(strings.ToLower(child.XMLName.Local), "body") {
			top = child.Children
			break
		}
	}

	res := &OutlineResult{}
	budget := opts.MaxNodes
	res.Nodes = convertOutline(top, 1, opts.MaxDepth, &budget, &res.Truncated)
	return res, nil
}

// ImportOutlineString parses an outline held in memory.
func ImportOutlineString(s string, opts OutlineOptions) (*OutlineResult, error) {
	return ImportOutline(strings.NewReader(s), opts)
}

func convertOutline(elems []outlineElem, depth, maxDepth int, budget *int, truncated *bool) []OutlineNode {
	if depth > maxDepth {
		if len(elems) > 0 {
			*truncated = true
		}
		return nil
	}

	var nodes []OutlineNode
	for _, e := range elems {
		if !outlineChildTags[strings.ToLower(e.XMLName.Local)] {
			continue
		}
		if *budget <= 0 {
			*truncated = true
			break
		}
		*budget--
		nodes = append(nodes, OutlineNode{
			Text:     e.label(),
			Children: convertOutline(e.Children, depth+1, maxDepth, budget, truncated),
		})
	}
	return nodes
}
