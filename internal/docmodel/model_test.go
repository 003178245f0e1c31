// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name string
		in   []Span
		want []Span
	}{
		{
			name: "merges identical neighbours",
			in:   []Span{{Text: "a", Bold: true}, {Text: "b", Bold: true}, {Text: "c"}},
			want: []Span{{Text: "ab", Bold: true}, {Text: "c"}},
		},
		{
			name: "keeps differing links apart",
			in:   []Span{{Text: "a", Link: "/x"}, {Text: "b", Link: "/y"}},
			want: []Span{{Text: "a", Link: "/x"}, {Text: "b", Link: "/y"}},
		},
		{
			name: "drops empty spans so neighbours can merge",
			in:   []Span{{Text: "a", Italic: true}, {Text: ""}, {Text: "b", Italic: true}},
			want: []Span{{Text: "ab", Italic: true}},
		},
		{
			name: "empty input",
			in:   nil,
			want: []Span{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coalesce(tt.in)
			assert.Equal(t, tt.want, got)
			for i := 1; i < len(got); i++ {
				assert.False(t, got[i-1].SameStyle(got[i]), "adjacent spans %d and %d share a style", i-1, i)
			}
		})
	}
}

func TestCoalesceDoesNotMutateInput(t *testing.T) {
	in := []Span{{Text: "a"}, {Text: "b"}}
	_ = Coalesce(in)
	assert.Equal(t, []Span{{Text: "a"}, {Text: "b"}}, in)
}

func TestBlockConstructors(t *testing.T) {
	h := Heading(9, []Span{{Text: "T"}})
	assert.Equal(t, KindHeading, h.Kind)
	assert.Equal(t, 6, h.Level)

	p := Paragraph([]Span{{Text: "x"}, {Text: "y"}})
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, "xy", p.Text())
	assert.Len(t, p.Spans, 1)

	li := ListItem(true, -2, nil)
	assert.True(t, li.IsListItem())
	assert.True(t, li.Ordered)
	assert.Equal(t, 0, li.Depth)

	assert.True(t, Separator().IsSeparator())
	assert.Empty(t, Separator().Spans)
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 5, UTF16Len("hello"))
	assert.Equal(t, 1, UTF16Len("—"))
	assert.Equal(t, 1, UTF16Len("⿻"))
	assert.Equal(t, 2, UTF16Len("😀"))
}

func TestStripHTMLBlocks(t *testing.T) {
	body := "# Title\n\n<div class=\"audio\">\n  <div>\n    <audio src=\"a.mp3\"></audio>\n  </div>\n</div>\n\nText\n"
	assert.Equal(t, "# Title\n\n\nText\n", StripHTMLBlocks(body))
}

func TestExtractHTMLFragments(t *testing.T) {
	body := "<div id=\"top\">\nintro\n</div>\n\n## About\n\nText\n\n<section>\n<div>x</div>\n</section>\n\n## Next\n"
	frags := ExtractHTMLFragments(body)
	assert.Equal(t, []HTMLFragment{
		{Body: "<div id=\"top\">\nintro\n</div>"},
		{Anchor: "## About", HasAnchor: true, Body: "<section>\n<div>x</div>\n</section>"},
	}, frags)
}

func TestExtractHTMLFragmentsSingleLine(t *testing.T) {
	frags := ExtractHTMLFragments("# H\n<div>one line</div>\n")
	assert.Equal(t, []HTMLFragment{{Anchor: "# H", HasAnchor: true, Body: "<div>one line</div>"}}, frags)
}
