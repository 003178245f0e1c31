// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package push parses local Markdown into blocks and builds the Google Docs
// batch requests that replace a tab's managed region with them.
package push

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/docsync/internal/docmodel"
)

// Parsed is a Markdown file split into front matter and blocks.
type Parsed struct {
	Title       string
	PagePath    string
	FrontMatter map[string]string
	Blocks      []docmodel.Block
}

// Document returns the parsed file as a docmodel.Document.
func (p Parsed) Document() docmodel.Document {
	return docmodel.Document{FrontMatter: p.FrontMatter, Blocks: p.Blocks}
}

// Parser turns Markdown into blocks. SiteURL is the origin used to make
// relative links absolute.
type Parser struct {
	SiteURL string
}

var (
	h4Re       = regexp.MustCompile(`(?s)^<h4[^>]*>(.*?)</h4>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	numListRe  = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	inlineTags = []string{"<strong>", "<b>", "<em>", "<i>"}
)

// ParseMarkdown parses text, deriving the page path from the permalink or,
// failing that, from filename.
func (p Parser) ParseMarkdown(text, filename string) Parsed {
	fm, body := ParseFrontMatter(text)
	permalink := fm["permalink"]
	if permalink == "" {
		base := filepath.Base(filename)
		permalink = "/" + strings.TrimSuffix(base, filepath.Ext(base)) + "/"
	}
	pagePath := strings.TrimRight(permalink, "/") + "/"

	b := &blockBuilder{parser: p, pagePath: pagePath}
	for _, line := range strings.Split(docmodel.StripHTMLBlocks(body), "\n") {
		b.line(line)
	}
	b.flush()

	blocks := b.blocks
	for len(blocks) > 0 && blocks[len(blocks)-1].IsSeparator() {
		blocks = blocks[:len(blocks)-1]
	}
	return Parsed{
		Title:       fm["title"],
		PagePath:    pagePath,
		FrontMatter: fm,
		Blocks:      blocks,
	}
}

type blockBuilder struct {
	parser   Parser
	pagePath string
	blocks   []docmodel.Block
	para     []string
}

func (b *blockBuilder) inline(s string) []docmodel.Span {
	return b.parser.ParseInline(s, b.pagePath)
}

func (b *blockBuilder) flush() {
	if len(b.para) == 0 {
		return
	}
	b.blocks = append(b.blocks, docmodel.Paragraph(b.inline(strings.Join(b.para, " "))))
	b.para = nil
}

func (b *blockBuilder) separator() {
	b.flush()
	if n := len(b.blocks); n > 0 && !b.blocks[n-1].IsSeparator() {
		b.blocks = append(b.blocks, docmodel.Separator())
	}
}

func (b *blockBuilder) line(line string) {
	stripped := strings.TrimSpace(line)
	if stripped == "" || stripped == "---" {
		b.separator()
		return
	}

	if m := h4Re.FindStringSubmatch(stripped); m != nil {
		b.flush()
		plain := strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
		b.blocks = append(b.blocks, docmodel.Heading(4, b.inline(plain)))
		return
	}
	if strings.HasPrefix(stripped, "<") && !startsWithInlineTag(stripped) {
		return
	}
	if m := headingRe.FindStringSubmatch(stripped); m != nil {
		b.flush()
		b.blocks = append(b.blocks, docmodel.Heading(len(m[1]), b.inline(m[2])))
		return
	}
	if m := numListRe.FindStringSubmatch(stripped); m != nil {
		b.flush()
		b.blocks = append(b.blocks, docmodel.ListItem(true, indentDepth(line), b.inline(m[2])))
		return
	}
	if strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* ") {
		b.flush()
		b.blocks = append(b.blocks, docmodel.ListItem(false, indentDepth(line), b.inline(stripped[2:])))
		return
	}

	// Indented continuation of the previous list item becomes a soft line
	// break inside the same paragraph.
	n := len(b.blocks)
	if line != strings.TrimLeft(line, " \t") && n > 0 && b.blocks[n-1].IsListItem() && len(b.para) == 0 {
		last := &b.blocks[n-1]
		spans := append(append(last.Spans, docmodel.Span{Text: "\v"}), b.inline(stripped)...)
		last.Spans = docmodel.Coalesce(spans)
		return
	}

	b.para = append(b.para, stripped)
}

func startsWithInlineTag(s string) bool {
	for _, t := range inlineTags {
		if strings.HasPrefix(s, t) {
			return true
		}
	}
	return false
}

// indentDepth is the list nesting depth of a line: two columns of leading
// indentation per level, a tab counting as four.
func indentDepth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width / 2
		}
	}
	return width / 2
}

// ParseFrontMatter splits text into its front matter and body. Values are
// flattened to strings. YAML that fails to parse falls back to a lenient
// "key: value" reading.
func ParseFrontMatter(text string) (map[string]string, string) {
	fm := map[string]string{}
	if !strings.HasPrefix(text, "---") {
		return fm, text
	}

	var meta map[string]any
	rest, err := frontmatter.Parse(bytes.NewReader([]byte(text)), &meta)
	if err == nil {
		for k, v := range meta {
			if v == nil {
				continue
			}
			fm[k] = fmt.Sprint(v)
		}
		return fm, strings.TrimSpace(string(rest))
	}

	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 3 {
		return fm, text
	}
	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(val), `"'`)
	}
	return fm, strings.TrimSpace(parts[2])
}
