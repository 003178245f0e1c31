// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pull converts Google Docs tabs into semantic Markdown and writes
// them over the local files, keeping front matter and raw HTML blocks that
// the remote model cannot carry.
package pull

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	docs "google.golang.org/api/docs/v1"

	"github.com/pdiddy/docsync/internal/docmodel"
	"github.com/pdiddy/docsync/internal/gdocs"
)

// Options controls the conversion of one tab.
type Options struct {
	// PagePath is the page's canonical path (e.g. "/faq/"). Links to the
	// same page become fragment links.
	PagePath string

	// SiteURL is the site origin without a trailing slash. Links under it
	// become site-relative.
	SiteURL string

	// SkipFirstH1 drops the first level-1 heading; its text lives in the
	// front matter title.
	SkipFirstH1 bool

	// ContentStart, when set, drops every element before the first heading
	// whose text starts with it. That heading counts as the first H1.
	ContentStart string
}

var orderedGlyphs = map[string]bool{
	"DECIMAL":      true,
	"ZERO_DECIMAL": true,
	"ALPHA":        true,
	"UPPER_ALPHA":  true,
	"ROMAN":        true,
	"UPPER_ROMAN":  true,
}

var numericGlyphFormatRe = regexp.MustCompile(`^%\d`)

// softBreak is the vertical tab Docs uses for a line break inside a
// paragraph (Shift+Enter).
const softBreak = "\v"

type elementKind int

const (
	kindNone elementKind = iota
	kindHeading
	kindList
	kindPara
)

// lineWriter accumulates output lines and owns blank-line collapsing.
type lineWriter struct {
	lines []string
	prev  elementKind
}

// blank ensures exactly one blank line before the next line. Leading
// blank lines are never emitted.
func (w *lineWriter) blank() {
	if n := len(w.lines); n > 0 && w.lines[n-1] != "" {
		w.lines = append(w.lines, "")
	}
}

func (w *lineWriter) add(kind elementKind, line string) {
	w.lines = append(w.lines, line)
	w.prev = kind
}

func (w *lineWriter) String() string {
	lines := w.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n"
}

// TabToMarkdown renders a tab's body as Markdown without front matter. The
// result has no leading blank lines and ends with exactly one newline.
func TabToMarkdown(tab *docs.Tab, opts Options) string {
	lists := gdocs.TabLists(tab)
	w := &lineWriter{}
	seenH1 := false
	capturing := opts.ContentStart == ""

	for _, el := range gdocs.TabBody(tab) {
		if el == nil || el.Paragraph == nil {
			continue
		}
		p := el.Paragraph
		level := gdocs.HeadingLevel(gdocs.NamedStyle(p))
		spans := collectSpans(p.Elements, opts, level > 0)

		if !capturing {
			plain := strings.TrimSpace(docmodel.PlainText(spans))
			if level > 0 && strings.HasPrefix(plain, opts.ContentStart) {
				capturing = true
				seenH1 = true
			}
			continue
		}

		text := strings.TrimRightFunc(RenderSpans(spans), unicode.IsSpace)
		if text == "" {
			w.blank()
			w.prev = kindNone
			continue
		}

		switch {
		case level > 0:
			if opts.SkipFirstH1 && level == 1 && !seenH1 {
				seenH1 = true
				continue
			}
			w.blank()
			w.add(kindHeading, strings.Repeat("#", level)+" "+strings.ReplaceAll(text, softBreak, " "))

		case p.Bullet != nil:
			nesting := int(p.Bullet.NestingLevel)
			marker := "-"
			if isOrdered(lists, p.Bullet.ListId, nesting) {
				marker = "1."
			}
			if w.prev != kindList {
				w.blank()
			}
			indent := strings.Repeat("  ", nesting)
			cont := "\n" + indent + strings.Repeat(" ", len(marker)+1)
			w.add(kindList, indent+marker+" "+strings.ReplaceAll(text, softBreak, cont))

		default:
			w.blank()
			w.add(kindPara, strings.ReplaceAll(text, softBreak, "\n"))
		}
	}
	return w.String()
}

// isOrdered reports whether a list nesting level renders with numbers. An
// unspecified glyph type counts as ordered when its format is numeric
// (e.g. "%0.") and it has no glyph symbol; Docs reports bullets as "%0"
// with a symbol such as "●".
func isOrdered(lists map[string]docs.List, listID string, nesting int) bool {
	list, ok := lists[listID]
	if !ok || list.ListProperties == nil {
		return false
	}
	levels := list.ListProperties.NestingLevels
	if nesting < 0 || nesting >= len(levels) || levels[nesting] == nil {
		return false
	}
	lvl := levels[nesting]
	if orderedGlyphs[lvl.GlyphType] {
		return true
	}
	if lvl.GlyphType == "" || lvl.GlyphType == "GLYPH_TYPE_UNSPECIFIED" {
		return lvl.GlyphSymbol == "" && numericGlyphFormatRe.MatchString(lvl.GlyphFormat)
	}
	return false
}

func collectSpans(elems []*docs.ParagraphElement, opts Options, inHeading bool) []docmodel.Span {
	var spans []docmodel.Span
	for _, el := range elems {
		if el == nil || el.TextRun == nil {
			continue
		}
		content := el.TextRun.Content
		if content == "" || content == "\n" {
			continue
		}
		s := docmodel.Span{Text: strings.TrimRight(content, "\n")}
		if st := el.TextRun.TextStyle; st != nil {
			s.Bold = st.Bold && !inHeading
			s.Italic = st.Italic
			if st.Link != nil && st.Link.Url != "" {
				s.Link = Relativize(st.Link.Url, opts.SiteURL, opts.PagePath)
			}
		}
		spans = append(spans, s)
	}
	return spans
}

// Relativize rewrites an absolute URL on the site to a site path, or to a
// bare fragment when it points into the current page.
func Relativize(url, siteURL, pagePath string) string {
	if siteURL == "" || !strings.HasPrefix(url, siteURL) {
		return url
	}
	path := url[len(siteURL):]
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "#") && !strings.HasPrefix(path, "?") {
		return url
	}
	if pagePath != "" && strings.HasPrefix(path, pagePath+"#") {
		return path[len(pagePath):]
	}
	return path
}

// RenderSpans renders coalesced spans as inline Markdown. Emphasis falls
// back to HTML tags wherever CommonMark would not recognise the delimiters.
func RenderSpans(spans []docmodel.Span) string {
	spans = docmodel.Coalesce(spans)
	var b strings.Builder
	for i, s := range spans {
		if !s.Bold && !s.Italic {
			b.WriteString(wrapLink(s.Text, s.Link))
			continue
		}

		core := strings.TrimFunc(s.Text, unicode.IsSpace)
		if core == "" {
			b.WriteString(s.Text)
			continue
		}
		lead := s.Text[:strings.Index(s.Text, core)]
		trail := s.Text[len(lead)+len(core):]
		b.WriteString(lead)

		prev, hasPrev := lastRune(b.String())
		next, hasNext := rune(0), false
		if trail != "" {
			next, hasNext = firstRune(trail)
		} else if i+1 < len(spans) {
			next, hasNext = renderedFirstRune(spans[i+1])
		}

		inner := wrapLink(core, s.Link)
		b.WriteString(emphasize(inner, s.Bold, s.Italic, prev, hasPrev, next, hasNext))
		b.WriteString(trail)
	}
	return b.String()
}

func wrapLink(text, link string) string {
	if link == "" {
		return text
	}
	return "[" + text + "](" + link + ")"
}

func emphasize(inner string, bold, italic bool, prev rune, hasPrev bool, next rune, hasNext bool) string {
	useHTML := needsHTMLEmphasis(inner, prev, hasPrev, next, hasNext)
	switch {
	case bold && italic:
		if useHTML {
			return "<b><i>" + inner + "</i></b>"
		}
		return "***" + inner + "***"
	case bold:
		if useHTML {
			return "<strong>" + inner + "</strong>"
		}
		return "**" + inner + "**"
	default:
		if useHTML {
			return "<em>" + inner + "</em>"
		}
		// Underscore emphasis cannot open or close inside a word.
		if (hasPrev && !isSpace(prev) && !isPunct(prev)) || (hasNext && !isSpace(next) && !isPunct(next)) {
			return "*" + inner + "*"
		}
		return "_" + inner + "_"
	}
}

// needsHTMLEmphasis reports whether delimiters around inner would fail to
// flank: a punctuation edge needs whitespace or punctuation on its outside.
// A neighbouring delimiter character also forces HTML, since adjacent runs
// of '*' or '_' merge.
func needsHTMLEmphasis(inner string, prev rune, hasPrev bool, next rune, hasNext bool) bool {
	if inner == "" {
		return false
	}
	if (hasPrev && isDelimiter(prev)) || (hasNext && isDelimiter(next)) {
		return true
	}
	first, _ := firstRune(inner)
	last, _ := lastRune(inner)
	if isPunct(first) && hasPrev && !isSpace(prev) && !isPunct(prev) {
		return true
	}
	if isPunct(last) && hasNext && !isSpace(next) && !isPunct(next) {
		return true
	}
	return false
}

// renderedFirstRune is the first character RenderSpans would emit for s.
func renderedFirstRune(s docmodel.Span) (rune, bool) {
	r, ok := firstRune(s.Text)
	if !ok || unicode.IsSpace(r) {
		return r, ok
	}
	switch {
	case s.Bold || s.Italic:
		return '*', true
	case s.Link != "":
		return '[', true
	}
	return r, true
}

func isDelimiter(r rune) bool { return r == '*' || r == '_' }

func isPunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }

func isSpace(r rune) bool { return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) }

func firstRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, true
}
