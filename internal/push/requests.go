// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package push

import (
	"strings"

	docs "google.golang.org/api/docs/v1"

	"github.com/pdiddy/docsync/internal/docmodel"
	"github.com/pdiddy/docsync/internal/gdocs"
)

const (
	presetOrdered   = "NUMBERED_DECIMAL_ALPHA_ROMAN"
	presetUnordered = "BULLET_DISC_CIRCLE_SQUARE"
)

type styledRange struct {
	start, end int64
	span       docmodel.Span
}

type paraRange struct {
	start, end int64
	style      string
}

type bulletRange struct {
	start, end int64
	ordered    bool
}

// BuildRequests returns the batch that replaces the region [insertAt,
// endIndex-1) of a tab with title and blocks, plus the inserted text.
// Offsets are UTF-16 code units. List nesting is carried as leading tabs,
// which the bullet requests consume; those requests come last and run from
// the end of the document backwards so earlier offsets stay valid.
func BuildRequests(title string, blocks []docmodel.Block, tabID string, endIndex, insertAt int64) ([]*docs.Request, string) {
	var reqs []*docs.Request
	rng := func(start, end int64) *docs.Range {
		return &docs.Range{StartIndex: start + insertAt, EndIndex: end + insertAt, TabId: tabID}
	}

	if endIndex > insertAt+1 {
		reqs = append(reqs, &docs.Request{DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{StartIndex: insertAt, EndIndex: endIndex - 1, TabId: tabID},
		}})
	}

	var (
		text    strings.Builder
		cursor  int64
		paras   []paraRange
		styles  []styledRange
		bullets []bulletRange
	)
	write := func(s string) {
		text.WriteString(s)
		cursor += int64(docmodel.UTF16Len(s))
	}

	if title != "" {
		start := cursor
		write(title + "\n")
		paras = append(paras, paraRange{start, cursor, gdocs.HeadingStyle(1)})
		write("\n")
	}

	for _, b := range blocks {
		if b.IsSeparator() {
			write("\n")
			continue
		}
		start := cursor
		if b.IsListItem() {
			write(strings.Repeat("\t", b.Depth))
		}
		for _, s := range b.Spans {
			spanStart := cursor
			write(s.Text)
			if s.Styled() && cursor > spanStart {
				styles = append(styles, styledRange{spanStart, cursor, s})
			}
		}
		write("\n")

		switch b.Kind {
		case docmodel.KindHeading:
			paras = append(paras, paraRange{start, cursor, gdocs.HeadingStyle(b.Level)})
		case docmodel.KindListItem:
			bullets = append(bullets, bulletRange{start, cursor, b.Ordered})
		}
	}

	full := text.String()
	if full == "" {
		return reqs, full
	}

	reqs = append(reqs,
		&docs.Request{InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: insertAt, TabId: tabID},
			Text:     full,
		}},
		&docs.Request{UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     rng(0, cursor),
			TextStyle: &docs.TextStyle{ForceSendFields: []string{"Bold", "Italic"}},
			Fields:    "bold,italic",
		}},
		&docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          rng(0, cursor),
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: "NORMAL_TEXT"},
			Fields:         "namedStyleType",
		}},
	)

	for _, p := range paras {
		reqs = append(reqs, &docs.Request{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          rng(p.start, p.end),
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: p.style},
			Fields:         "namedStyleType",
		}})
	}

	for _, s := range styles {
		style := &docs.TextStyle{}
		var fields []string
		if s.span.Bold {
			style.Bold = true
			fields = append(fields, "bold")
		}
		if s.span.Italic {
			style.Italic = true
			fields = append(fields, "italic")
		}
		if s.span.Link != "" {
			style.Link = &docs.Link{Url: s.span.Link}
			fields = append(fields, "link")
		}
		reqs = append(reqs, &docs.Request{UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range:     rng(s.start, s.end),
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		}})
	}

	merged := mergeBullets(bullets)
	for i := len(merged) - 1; i >= 0; i-- {
		preset := presetUnordered
		if merged[i].ordered {
			preset = presetOrdered
		}
		reqs = append(reqs, &docs.Request{CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
			Range:        rng(merged[i].start, merged[i].end),
			BulletPreset: preset,
		}})
	}
	return reqs, full
}

// mergeBullets joins contiguous list items of the same ordering.
func mergeBullets(in []bulletRange) []bulletRange {
	var out []bulletRange
	for _, b := range in {
		if n := len(out); n > 0 && out[n-1].ordered == b.ordered && out[n-1].end == b.start {
			out[n-1].end = b.end
			continue
		}
		out = append(out, b)
	}
	return out
}

// FindContentStart returns the start index of the first heading whose text
// starts with prefix.
func FindContentStart(body []*docs.StructuralElement, prefix string) (int64, bool) {
	for _, el := range body {
		if el == nil || el.Paragraph == nil {
			continue
		}
		if gdocs.HeadingLevel(gdocs.NamedStyle(el.Paragraph)) == 0 {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(gdocs.ParagraphText(el.Paragraph)), prefix) {
			return el.StartIndex, true
		}
	}
	return 0, false
}

// InsertOffset returns where managed content begins in a tab: after the
// leading section break for a whole-tab sync, at the boundary heading for
// a partial one, or at the end of the body when the boundary is missing.
func InsertOffset(tab *docs.Tab, prefix string) int64 {
	if prefix == "" {
		return 1
	}
	if start, ok := FindContentStart(gdocs.TabBody(tab), prefix); ok {
		return start
	}
	if end := gdocs.BodyEndIndex(tab) - 1; end > 1 {
		return end
	}
	return 1
}
