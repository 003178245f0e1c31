// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docmodel

import (
	"regexp"
	"strings"
)

var (
	htmlOpenRe    = regexp.MustCompile(`<(?:div|section|details|figure|aside)\b`)
	htmlCloseRe   = regexp.MustCompile(`</(?:div|section|details|figure|aside)>`)
	headingLineRe = regexp.MustCompile(`^#{1,6}\s`)
)

// HTMLScanner tracks open/close nesting of raw HTML block elements across
// lines. Feed it one line at a time.
type HTMLScanner struct {
	depth int
}

// Feed consumes one line and reports whether the line belongs to an HTML
// block and whether that block closed on this line.
func (s *HTMLScanner) Feed(line string) (inBlock, closed bool) {
	stripped := strings.TrimSpace(line)
	opens := len(htmlOpenRe.FindAllStringIndex(stripped, -1))
	closes := len(htmlCloseRe.FindAllStringIndex(stripped, -1))
	if s.depth == 0 && opens == 0 {
		return false, false
	}
	s.depth += opens - closes
	if s.depth < 0 {
		s.depth = 0
	}
	return true, s.depth == 0
}

// Depth returns the current nesting depth.
func (s *HTMLScanner) Depth() int { return s.depth }

// StripHTMLBlocks removes every multi-line HTML block element from body.
func StripHTMLBlocks(body string) string {
	var sc HTMLScanner
	lines := strings.Split(body, "\n")
	kept := lines[:0:0]
	for _, line := range lines {
		if in, _ := sc.Feed(line); in {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ExtractHTMLFragments returns every HTML block in body, each anchored to
// the closest preceding Markdown heading line.
func ExtractHTMLFragments(body string) []HTMLFragment {
	var (
		sc        HTMLScanner
		frags     []HTMLFragment
		current   []string
		anchor    string
		hasAnchor bool
	)
	for _, line := range strings.Split(body, "\n") {
		stripped := strings.TrimSpace(line)
		if sc.Depth() == 0 && headingLineRe.MatchString(stripped) {
			anchor, hasAnchor = stripped, true
		}
		in, closed := sc.Feed(line)
		if !in {
			continue
		}
		current = append(current, line)
		if closed {
			frags = append(frags, HTMLFragment{
				Anchor:    anchor,
				HasAnchor: hasAnchor,
				Body:      strings.Join(current, "\n"),
			})
			current = nil
		}
	}
	return frags
}
