// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package push

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/docsync/internal/docmodel"
)

type emphasisTag struct {
	tag  string
	bold bool
	open bool
}

var emphasisTags = []emphasisTag{
	{"<strong>", true, true},
	{"</strong>", true, false},
	{"<b>", true, true},
	{"</b>", true, false},
	{"<em>", false, true},
	{"</em>", false, false},
	{"<i>", false, true},
	{"</i>", false, false},
}

// ParseInline splits text into formatted spans. "**" and "__" toggle bold,
// a lone "*" toggles italic, "_" toggles italic where it can open or close
// emphasis, and <strong>/<b>/<em>/<i> set emphasis explicitly. Links become
// linked spans with absolute URLs. An unterminated toggle applies to the
// rest of the text.
func (p Parser) ParseInline(text, pagePath string) []docmodel.Span {
	var (
		spans        []docmodel.Span
		buf          strings.Builder
		bold, italic bool
	)
	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, docmodel.Span{Text: buf.String(), Bold: bold, Italic: italic})
			buf.Reset()
		}
	}

	for i := 0; i < len(text); {
		rest := text[i:]
		switch {
		case strings.HasPrefix(rest, "**"):
			flush()
			bold = !bold
			i += 2
			continue

		case rest[0] == '*':
			flush()
			italic = !italic
			i++
			continue

		case rest[0] == '_':
			n := 1
			if strings.HasPrefix(rest, "__") {
				n = 2
			}
			prev, hasPrev := lastRune(text[:i])
			next, hasNext := firstRune(text[i+n:])
			canOpen, canClose := underscoreFlanking(prev, hasPrev, next, hasNext)
			on := italic
			if n == 2 {
				on = bold
			}
			if (on && canClose) || (!on && canOpen) {
				flush()
				if n == 2 {
					bold = !bold
				} else {
					italic = !italic
				}
				i += n
				continue
			}

		case rest[0] == '<':
			if t, ok := matchEmphasisTag(rest); ok {
				flush()
				if t.bold {
					bold = t.open
				} else {
					italic = t.open
				}
				i += len(t.tag)
				continue
			}

		case rest[0] == '[':
			if label, url, width, ok := matchLink(rest); ok {
				flush()
				spans = append(spans, docmodel.Span{
					Text:   label,
					Bold:   bold,
					Italic: italic,
					Link:   p.NormalizeURL(url, pagePath),
				})
				i += width
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(rest)
		buf.WriteString(rest[:size])
		i += size
	}
	flush()

	if out := docmodel.Coalesce(spans); len(out) > 0 {
		return out
	}
	return []docmodel.Span{{Text: text}}
}

func matchEmphasisTag(s string) (emphasisTag, bool) {
	for _, t := range emphasisTags {
		if strings.HasPrefix(s, t.tag) {
			return t, true
		}
	}
	return emphasisTag{}, false
}

// matchLink recognises "[label](url)" at the start of s and returns the
// number of bytes consumed.
func matchLink(s string) (label, url string, width int, ok bool) {
	bracket := strings.IndexByte(s[1:], ']')
	if bracket < 0 {
		return "", "", 0, false
	}
	bracket++
	if !strings.HasPrefix(s[bracket:], "](") {
		return "", "", 0, false
	}
	paren := strings.IndexByte(s[bracket+2:], ')')
	if paren < 0 {
		return "", "", 0, false
	}
	paren += bracket + 2
	return s[1:bracket], s[bracket+2 : paren], paren + 1, true
}

// underscoreFlanking applies the CommonMark rules for "_" delimiter runs.
// A missing neighbour counts as whitespace.
func underscoreFlanking(prev rune, hasPrev bool, next rune, hasNext bool) (canOpen, canClose bool) {
	prevSpace := !hasPrev || unicode.IsSpace(prev)
	nextSpace := !hasNext || unicode.IsSpace(next)
	prevPunct := hasPrev && isPunct(prev)
	nextPunct := hasNext && isPunct(next)

	left := !nextSpace && (!nextPunct || prevSpace || prevPunct)
	right := !prevSpace && (!prevPunct || nextSpace || nextPunct)
	canOpen = left && (!right || prevPunct)
	canClose = right && (!left || nextPunct)
	return canOpen, canClose
}

func isPunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }

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

// NormalizeURL makes a relative link absolute against the site: fragments
// resolve against pagePath, "../x" and "/x" against the site root.
func (p Parser) NormalizeURL(url, pagePath string) string {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case strings.HasPrefix(url, "#"):
		return p.SiteURL + pagePath + url
	case strings.HasPrefix(url, "../"):
		return p.SiteURL + "/" + url[3:]
	case strings.HasPrefix(url, "/"):
		return p.SiteURL + url
	}
	return url
}
