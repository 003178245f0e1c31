// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	docs "google.golang.org/api/docs/v1"
)

func tab(id string, children ...*docs.Tab) *docs.Tab {
	return &docs.Tab{TabProperties: &docs.TabProperties{TabId: id}, ChildTabs: children}
}

func TestFindTab(t *testing.T) {
	tabs := []*docs.Tab{
		tab("t.0"),
		tab("t.1", tab("t.1a"), tab("t.1b", tab("t.deep"))),
		nil,
		{},
	}
	tests := []struct {
		id   string
		want bool
	}{
		{"t.0", true},
		{"t.1b", true},
		{"t.deep", true},
		{"t.missing", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := FindTab(tabs, tt.id)
			if !tt.want {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.id, got.TabProperties.TabId)
			}
		})
	}
}

func TestAccessorsTolerateMissingFields(t *testing.T) {
	empty := &docs.Tab{}
	assert.Nil(t, TabBody(empty))
	assert.Nil(t, TabLists(empty))
	assert.Equal(t, int64(1), BodyEndIndex(empty))
	assert.Equal(t, int64(1), BodyEndIndex(nil))
	assert.Equal(t, "NORMAL_TEXT", NamedStyle(&docs.Paragraph{}))
	assert.Equal(t, "", ParagraphText(nil))

	full := &docs.Tab{DocumentTab: &docs.DocumentTab{Body: &docs.Body{Content: []*docs.StructuralElement{
		{StartIndex: 0, EndIndex: 1},
		{StartIndex: 1, EndIndex: 42},
	}}}}
	assert.Equal(t, int64(42), BodyEndIndex(full))
	assert.Len(t, TabBody(full), 2)
}

func TestHeadingLevelRoundTrip(t *testing.T) {
	for level := 1; level <= 6; level++ {
		assert.Equal(t, level, HeadingLevel(HeadingStyle(level)))
	}
	assert.Equal(t, 0, HeadingLevel("NORMAL_TEXT"))
	assert.Equal(t, "NORMAL_TEXT", HeadingStyle(0))
}

func TestParagraphText(t *testing.T) {
	p := &docs.Paragraph{Elements: []*docs.ParagraphElement{
		{TextRun: &docs.TextRun{Content: "Pack 1: "}},
		{},
		{TextRun: &docs.TextRun{Content: "Attentiveness\n"}},
	}}
	assert.Equal(t, "Pack 1: Attentiveness\n", ParagraphText(p))
}
