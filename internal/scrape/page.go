// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape regenerates Markdown from a published ("Publish to web")
// Google Doc when the Docs API is unavailable.
package scrape

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/docsync/internal/docmodel"
	"github.com/pdiddy/docsync/internal/pull"
	"github.com/pdiddy/docsync/internal/syncconfig"
	"github.com/pdiddy/docsync/pkg/types"
)

var (
	styleRuleRe   = regexp.MustCompile(`\.([A-Za-z0-9_-]+)\s*\{([^}]*)\}`)
	boldDeclRe    = regexp.MustCompile(`font-weight:\s*(bold|[6-9]00)`)
	italicDeclRe  = regexp.MustCompile(`font-style:\s*italic`)
	listLevelRe   = regexp.MustCompile(`lst-kix_[A-Za-z0-9_]+-(\d+)`)
	packRe        = regexp.MustCompile(`^(?:\*\*)?Pack (\d+): (.+?)(?:\*\*)? — (.+)$`)
	chapterFileRe = regexp.MustCompile(`^(tw-)?\d+\.md$`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// sectionEnd is the heading text that closes the chapter run.
const sectionEnd = "manifesto"

// Section is the run of top-level elements that follows a marker line.
type Section struct {
	// Marker is the marker text, e.g. "ch1: attentiveness.md".
	Marker string
	// File is the local filename the section is written to.
	File string

	blocks []*goquery.Selection
}

// Len returns the number of elements in the section.
func (s Section) Len() int { return len(s.blocks) }

type classStyles struct {
	bold   map[string]bool
	italic map[string]bool
}

// Page is a parsed published document.
type Page struct {
	doc    *goquery.Document
	styles classStyles
}

// Parse reads a published document and indexes its CSS emphasis classes.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing published HTML: %w", err)
	}
	return &Page{doc: doc, styles: parseClassStyles(doc)}, nil
}

func parseClassStyles(doc *goquery.Document) classStyles {
	cs := classStyles{bold: map[string]bool{}, italic: map[string]bool{}}
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		for _, m := range styleRuleRe.FindAllStringSubmatch(s.Text(), -1) {
			if boldDeclRe.MatchString(m[2]) {
				cs.bold[m[1]] = true
			}
			if italicDeclRe.MatchString(m[2]) {
				cs.italic[m[1]] = true
			}
		}
	})
	return cs
}

// contents returns the element whose children are the document's blocks.
func (p *Page) contents() (*goquery.Selection, error) {
	c := p.doc.Find("div#contents").First()
	if c.Length() == 0 {
		return nil, fmt.Errorf("published HTML has no div#contents")
	}
	if inner := c.ChildrenFiltered("div.doc-content"); inner.Length() == 1 {
		return inner, nil
	}
	return c, nil
}

// Sections splits the document at its marker lines. A section ends at the
// next marker, at the closing heading, or at an element starting with one
// of cfg.StopPrefixes. Elements outside any section are ignored.
func (p *Page) Sections(cfg types.ScrapeConfig) ([]Section, error) {
	body, err := p.contents()
	if err != nil {
		return nil, err
	}

	var sections []Section
	var cur *Section
	body.Children().Each(func(_ int, el *goquery.Selection) {
		text := cleanText(el.Text())
		if isMarker(text) {
			if cur != nil {
				sections = append(sections, *cur)
			}
			cur = &Section{Marker: text, File: fileFor(text, cfg.Sections)}
			return
		}
		if cur == nil {
			return
		}
		r := renderer{styles: p.styles}
		if strings.EqualFold(text, sectionEnd) || stops(cfg.StopPrefixes, text, r.block(el, false)) {
			sections = append(sections, *cur)
			cur = nil
			return
		}
		cur.blocks = append(cur.blocks, el)
	})
	if cur != nil {
		sections = append(sections, *cur)
	}
	return sections, nil
}

// Render converts a section to Markdown. Chapter files drop their first
// H1; English sections turn "Pack N: title — body" paragraphs into
// bullets.
func (p *Page) Render(sec Section, siteURL string) string {
	r := renderer{
		styles:   p.styles,
		siteURL:  siteURL,
		pagePath: syncconfig.PagePath(sec.File),
	}
	skipH1 := chapterFileRe.MatchString(sec.File)
	english := !strings.HasPrefix(sec.File, "tw-")

	var b strings.Builder
	prevList := false
	for _, el := range sec.blocks {
		if skipH1 && goquery.NodeName(el) == "h1" {
			skipH1 = false
			continue
		}
		md := r.block(el, english)
		if md == "" {
			continue
		}
		isList := isListNode(el)
		if b.Len() > 0 {
			if isList && prevList {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(md)
		prevList = isList
	}
	out := strings.TrimSpace(blankRunRe.ReplaceAllString(b.String(), "\n\n"))
	if out == "" {
		return ""
	}
	return out + "\n"
}

func isMarker(text string) bool {
	return len(text) <= 80 && !strings.Contains(text, "\n") && strings.HasSuffix(strings.ToLower(text), ".md")
}

// fileFor maps a marker to its local filename. Unmapped markers use the
// name after their last colon.
func fileFor(marker string, sections map[string]string) string {
	if f, ok := sections[marker]; ok {
		return f
	}
	name := marker
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return filepath.Base(strings.TrimSpace(name))
}

func stops(prefixes []string, candidates ...string) bool {
	for _, p := range prefixes {
		for _, c := range candidates {
			if p != "" && strings.HasPrefix(c, p) {
				return true
			}
		}
	}
	return false
}

func isListNode(el *goquery.Selection) bool {
	name := goquery.NodeName(el)
	return name == "ul" || name == "ol"
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}

type renderer struct {
	styles   classStyles
	siteURL  string
	pagePath string
}

func (r renderer) block(el *goquery.Selection, english bool) string {
	switch name := goquery.NodeName(el); name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		spans := r.spans(el)
		for i := range spans {
			spans[i].Bold = false
		}
		text := strings.TrimSpace(pull.RenderSpans(spans))
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(name[1]-'0')) + " " + text

	case "p":
		text := strings.TrimSpace(pull.RenderSpans(r.spans(el)))
		if english {
			if m := packRe.FindStringSubmatch(text); m != nil {
				return fmt.Sprintf("- **Pack %s: %s** — %s", m[1], m[2], m[3])
			}
		}
		return text

	case "ul", "ol":
		marker := "-"
		if name == "ol" {
			marker = "1."
		}
		indent := strings.Repeat("  ", listLevel(el))
		var lines []string
		el.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(pull.RenderSpans(r.spans(li))); text != "" {
				lines = append(lines, indent+marker+" "+text)
			}
		})
		return strings.Join(lines, "\n")

	case "hr":
		return "---"

	case "style", "script":
		return ""
	}

	raw, err := goquery.OuterHtml(el)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(raw)
}

func listLevel(el *goquery.Selection) int {
	class, _ := el.Attr("class")
	if m := listLevelRe.FindStringSubmatch(class); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

// spans flattens an element's inline content into styled spans.
func (r renderer) spans(el *goquery.Selection) []docmodel.Span {
	var out []docmodel.Span
	var walk func(n *html.Node, st docmodel.Span)
	walk = func(n *html.Node, st docmodel.Span) {
		switch n.Type {
		case html.TextNode:
			st.Text = strings.ReplaceAll(n.Data, "\u00a0", " ")
			out = append(out, st)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				out = append(out, docmodel.Span{Text: "\n"})
				return
			case atom.Style, atom.Script:
				return
			case atom.B, atom.Strong:
				st.Bold = true
			case atom.I, atom.Em:
				st.Italic = true
			case atom.A:
				if href := attr(n, "href"); href != "" {
					st.Link = r.cleanLink(href)
				}
			}
			for _, c := range strings.Fields(attr(n, "class")) {
				st.Bold = st.Bold || r.styles.bold[c]
				st.Italic = st.Italic || r.styles.italic[c]
			}
			if style := attr(n, "style"); style != "" {
				st.Bold = st.Bold || boldDeclRe.MatchString(style)
				st.Italic = st.Italic || italicDeclRe.MatchString(style)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, st)
		}
	}
	for _, n := range el.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, docmodel.Span{})
		}
	}
	return out
}

// cleanLink unwraps Google redirect links and relativizes site URLs.
func (r renderer) cleanLink(href string) string {
	if u, err := url.Parse(href); err == nil && strings.HasSuffix(u.Host, "google.com") && u.Path == "/url" {
		if q := u.Query().Get("q"); q != "" {
			href = q
		}
	}
	return pull.Relativize(href, r.siteURL, r.pagePath)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
