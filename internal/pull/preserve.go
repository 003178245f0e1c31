// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pull

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/docsync/internal/docmodel"
)

// closingFenceRe matches a front matter delimiter on its own line.
var closingFenceRe = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)

// SplitFrontMatter separates a leading "---" delimited block from the body.
// The block closes at the first line consisting of "---" alone, so values
// containing "---" stay inside it. The returned front matter is normalised
// to end in "---\n\n"; it is empty when the text has none.
func SplitFrontMatter(text string) (front, body string) {
	if !strings.HasPrefix(text, "---") {
		return "", text
	}
	nl := strings.IndexByte(text, '\n')
	if nl < 0 {
		return "", text
	}
	loc := closingFenceRe.FindStringIndex(text[nl+1:])
	if loc == nil {
		return "", text
	}
	end := nl + 1 + loc[0] + len("---")
	return text[:end] + "\n\n", text[end:]
}

// ExtractFrontMatter returns the front matter block of an existing file,
// byte-identical up to its closing delimiter.
func ExtractFrontMatter(text string) string {
	front, _ := SplitFrontMatter(text)
	return front
}

// ExtractHTMLFragments returns the raw HTML blocks of an existing file,
// each anchored to its preceding heading.
func ExtractHTMLFragments(text string) []docmodel.HTMLFragment {
	_, body := SplitFrontMatter(text)
	return docmodel.ExtractHTMLFragments(body)
}

// ReinjectHTMLFragments inserts preserved fragments after their anchor
// heading line, or at the top of the body when unanchored. A fragment whose
// heading no longer exists is dropped.
func ReinjectHTMLFragments(md string, frags []docmodel.HTMLFragment) string {
	// Reverse order keeps fragments sharing an anchor in source order.
	for i := len(frags) - 1; i >= 0; i-- {
		f := frags[i]
		if !f.HasAnchor {
			md = f.Body + "\n\n" + strings.TrimLeft(md, "\n")
			continue
		}
		at := lineEnd(md, f.Anchor)
		if at < 0 {
			continue
		}
		if at == len(md) && !strings.HasSuffix(md, "\n") {
			md += "\n"
			at++
		}
		md = md[:at] + "\n" + f.Body + "\n\n" + strings.TrimLeft(md[at:], "\n")
	}
	return md
}

// lineEnd returns the offset just past the first line equal to heading, or -1.
func lineEnd(md, heading string) int {
	offset := 0
	for _, line := range strings.SplitAfter(md, "\n") {
		offset += len(line)
		if strings.TrimSpace(line) == heading {
			return offset
		}
	}
	return -1
}

var faqQuestionRe = regexp.MustCompile(`^####\s+(Q(\d+)\.\s+.+)$`)

// FAQPostprocess rebuilds the anchored question headings of an FAQ page:
// "#### Q3. text" becomes an <h4 id="faq-3"> with a self link, and a "---"
// rule separates consecutive questions.
func FAQPostprocess(md string) string {
	var out []string
	seen := false
	for _, line := range strings.Split(md, "\n") {
		m := faqQuestionRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		full, num := m[1], m[2]
		dot := strings.Index(full, ".")
		prefix := full[:dot+1]
		body := strings.TrimSpace(full[dot+1:])

		if seen {
			for len(out) > 0 && out[len(out)-1] == "" {
				out = out[:len(out)-1]
			}
			out = append(out, "", "---", "")
		}
		id := "faq-" + num
		out = append(out, fmt.Sprintf(`<h4 id="%s"><a href="#%s">%s</a> %s</h4>`, id, id, prefix, body))
		seen = true
	}
	return strings.Join(out, "\n")
}

// Assemble combines the preserved parts of an existing file with freshly
// converted Markdown.
func Assemble(existing, md string, faq bool) string {
	front := ExtractFrontMatter(existing)
	md = ReinjectHTMLFragments(md, ExtractHTMLFragments(existing))
	if faq {
		md = FAQPostprocess(md)
	}
	return front + strings.TrimLeft(md, "\n")
}
