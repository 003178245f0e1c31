// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docmodel holds the span and block model shared by both sync
// directions: remote tab to Markdown (pull) and Markdown to remote edit
// requests (push).
package docmodel

import "unicode/utf16"

// Span is a run of text sharing one formatting state.
type Span struct {
	Text   string `json:"text" yaml:"text"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Link   string `json:"link,omitempty" yaml:"link,omitempty"`
}

// SameStyle reports whether s and o share the (bold, italic, link) triple.
func (s Span) SameStyle(o Span) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Link == o.Link
}

// Styled reports whether the span carries any formatting.
func (s Span) Styled() bool {
	return s.Bold || s.Italic || s.Link != ""
}

// Coalesce merges adjacent spans with identical formatting and drops empty
// spans. The input slice is not modified.
func Coalesce(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].SameStyle(s) {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// PlainText concatenates the text of all spans.
func PlainText(spans []Span) string {
	var n int
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// BlockKind classifies a Block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindListItem
	KindSeparator
)

// String returns the lowercase kind name.
func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindSeparator:
		return "separator"
	default:
		return "paragraph"
	}
}

// Block is one logical unit of document content. Level is non-zero only
// for headings; Ordered and Depth are meaningful only for list items.
type Block struct {
	Kind    BlockKind `json:"kind" yaml:"kind"`
	Level   int       `json:"level,omitempty" yaml:"level,omitempty"`
	Ordered bool      `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Depth   int       `json:"depth,omitempty" yaml:"depth,omitempty"`
	Spans   []Span    `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// Heading returns a heading block of the given level (clamped to 1-6).
func Heading(level int, spans []Span) Block {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Block{Kind: KindHeading, Level: level, Spans: Coalesce(spans)}
}

// Paragraph returns a plain paragraph block.
func Paragraph(spans []Span) Block {
	return Block{Kind: KindParagraph, Spans: Coalesce(spans)}
}

// ListItem returns a list-item block.
func ListItem(ordered bool, depth int, spans []Span) Block {
	if depth < 0 {
		depth = 0
	}
	return Block{Kind: KindListItem, Ordered: ordered, Depth: depth, Spans: Coalesce(spans)}
}

// Separator returns a separator block.
func Separator() Block {
	return Block{Kind: KindSeparator}
}

// IsSeparator reports whether b is a separator.
func (b Block) IsSeparator() bool { return b.Kind == KindSeparator }

// IsListItem reports whether b is a list item.
func (b Block) IsListItem() bool { return b.Kind == KindListItem }

// Text returns the plain text of the block.
func (b Block) Text() string { return PlainText(b.Spans) }

// HTMLFragment is a raw HTML block preserved from a local file. Anchor is
// the nearest preceding Markdown heading line; HasAnchor is false when the
// fragment sits above every heading.
type HTMLFragment struct {
	Anchor    string `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	HasAnchor bool   `json:"has_anchor" yaml:"has_anchor"`
	Body      string `json:"body" yaml:"body"`
}

// Document is the parsed form of a local Markdown file.
type Document struct {
	FrontMatter   map[string]string `json:"front_matter" yaml:"front_matter"`
	Blocks        []Block           `json:"blocks" yaml:"blocks"`
	HTMLFragments []HTMLFragment    `json:"html_fragments,omitempty" yaml:"html_fragments,omitempty"`
}

// UTF16Len returns the length of s in UTF-16 code units, the unit the
// remote document model uses for offsets.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
