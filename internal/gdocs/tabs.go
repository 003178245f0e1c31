// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gdocs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// FindTab returns the tab with the given ID, searching child tabs depth
// first. It returns nil when no tab matches.
func FindTab(tabs []*docs.Tab, id string) *docs.Tab {
	for _, tab := range tabs {
		if tab == nil {
			continue
		}
		if tab.TabProperties != nil && tab.TabProperties.TabId == id {
			return tab
		}
		if found := FindTab(tab.ChildTabs, id); found != nil {
			return found
		}
	}
	return nil
}

// TabBody returns the structural elements of a tab's body, or nil.
func TabBody(tab *docs.Tab) []*docs.StructuralElement {
	if tab == nil || tab.DocumentTab == nil || tab.DocumentTab.Body == nil {
		return nil
	}
	return tab.DocumentTab.Body.Content
}

// TabLists returns the list metadata of a tab, or nil.
func TabLists(tab *docs.Tab) map[string]docs.List {
	if tab == nil || tab.DocumentTab == nil {
		return nil
	}
	return tab.DocumentTab.Lists
}

// BodyEndIndex returns the end index of the last body element, or 1 for an
// empty body.
func BodyEndIndex(tab *docs.Tab) int64 {
	content := TabBody(tab)
	if len(content) == 0 {
		return 1
	}
	if end := content[len(content)-1].EndIndex; end > 0 {
		return end
	}
	return 1
}

// ParagraphText concatenates the text runs of a paragraph.
func ParagraphText(p *docs.Paragraph) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, el := range p.Elements {
		if el != nil && el.TextRun != nil {
			b.WriteString(el.TextRun.Content)
		}
	}
	return b.String()
}

// NamedStyle returns the paragraph's named style, defaulting to NORMAL_TEXT.
func NamedStyle(p *docs.Paragraph) string {
	if p == nil || p.ParagraphStyle == nil || p.ParagraphStyle.NamedStyleType == "" {
		return "NORMAL_TEXT"
	}
	return p.ParagraphStyle.NamedStyleType
}

// HeadingLevel maps a named style to a heading level, or 0.
func HeadingLevel(named string) int {
	switch named {
	case "HEADING_1":
		return 1
	case "HEADING_2":
		return 2
	case "HEADING_3":
		return 3
	case "HEADING_4":
		return 4
	case "HEADING_5":
		return 5
	case "HEADING_6":
		return 6
	}
	return 0
}

// HeadingStyle maps a heading level to its named style.
func HeadingStyle(level int) string {
	if level < 1 || level > 6 {
		return "NORMAL_TEXT"
	}
	return "HEADING_" + string(rune('0'+level))
}
