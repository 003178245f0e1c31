// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package speech turns site Markdown into text a speech synthesizer reads
// cleanly, and sends it to ElevenLabs.
package speech

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule is one step of the Markdown-to-speech rewrite.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Transform rewrites Markdown into spoken-text-safe prose by applying
// Rules in order. The output is deterministic for identical input.
//
// Every numeric rule emits words only, so no later numeric rule can
// re-match text an earlier one produced.
func Transform(markdown string) string {
	text := markdown
	for _, r := range rules {
		text = r.Apply(text)
	}
	return strings.TrimSpace(text)
}

// Rules returns the ordered rewrite rules.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

func replace(name, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{Name: name, Apply: func(s string) string { return re.ReplaceAllString(s, repl) }}
}

// replaceSubmatch calls fn with the submatches of every match.
func replaceSubmatch(name, pattern string, fn func(m []string) string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{Name: name, Apply: func(s string) string {
		return re.ReplaceAllStringFunc(s, func(match string) string {
			return fn(re.FindStringSubmatch(match))
		})
	}}
}

func literal(name string, oldnew ...string) Rule {
	r := strings.NewReplacer(oldnew...)
	return Rule{Name: name, Apply: r.Replace}
}

func chain(name string, steps ...Rule) Rule {
	return Rule{Name: name, Apply: func(s string) string {
		for _, st := range steps {
			s = st.Apply(s)
		}
		return s
	}}
}

// abbreviations are spoken expansions, longest match first.
var abbreviations = [][2]string{
	{`\be\.g\.`, "for example"},
	{`\bi\.e\.`, "that is"},
	{`\betc\.`, "et cetera"},
	{`\bviz\.`, "namely"},
	{`\bcf\.`, "compare"},
	{`\bvs?\.`, "versus"},
	{`\bca\.`, "approximately"},
	{`\bDr\.`, "Doctor"},
	{`\bProf\.`, "Professor"},
	{`\bkami\b`, "kaami"},
	{`\bMr\.`, "Mister"},
	{`\bMrs\.`, "Misses"},
	{`\bMs\.`, "Ms"},
	{`\bSt\.`, "Saint"},
	{`\bCSAM\b`, "C-S-A-M"},
	{`\bPCA\b`, "P-C-A"},
	{`\bCDN\b`, "C-D-N"},
	{`\bSMS\b`, "S-M-S"},
	{`\bKYC\b`, "K-Y-C"},
	{`\bASI\b`, "A-S-I"},
	{`\bRLCF\b`, "R-L-C-F"},
	{`\bSSE\b`, "S-S-E"},
	{`\bVBR\b`, "V-B-R"},
	{`\bCBR\b`, "C-B-R"},
	{`\bd/acc\b`, "d slash a-c-c"},
	{`ROOST\.tools\b`, "ROOST tools"},
}

func abbreviationRule() Rule {
	steps := make([]Rule, len(abbreviations))
	for i, a := range abbreviations {
		steps[i] = replace(a[1], a[0], a[1])
	}
	return chain("abbreviations", steps...)
}

func currency(name, symbol, singular, plural string) Rule {
	return replaceSubmatch(name, regexp.QuoteMeta(symbol)+`([\d,]+(?:\.\d+)?)`, func(m []string) string {
		if !hasDigit(m[1]) {
			return m[0]
		}
		unit := plural
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && v == 1 {
			unit = singular
		}
		return NumberToWords(m[1]) + " " + unit
	})
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	return n
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

var rules = []Rule{
	replace("front matter", `(?s)^---.*?---\s*`, ""),
	chain("html",
		replace("div blocks", `(?s)<div[^>]*>.*?</div>`, ""),
		replace("tags", `<[^>]+>`, ""),
	),
	replace("links", `\[([^\]]+)\]\([^)]+\)`, "${1}"),
	replace("headings", `(?m)^#{1,6}\s+(.+)$`, "\n...... ${1} ...\n"),
	chain("emphasis",
		replace("asterisks", `\*{1,3}([^*\n]+)\*{1,3}`, `"${1}"`),
		replace("underscores", `_{1,2}([^_\n]+)_{1,2}`, `"${1}"`),
		literal("doubled quotes", `""`, `"`),
	),
	chain("list markers",
		replace("numbered", `(?m)^\s*\d+\.\s+`, ""),
		replace("bulleted", `(?m)^\s*[-*]\s+`, ""),
	),
	chain("symbols",
		replace("plurality mark", `⿻\s*`, ""),
		literal("ellipsis and middle dot", "…", "...", "·", ", "),
		replace("cjk parentheticals", `\s*\([^)]*[\x{3400}-\x{9fff}][^)]*\)`, ""),
	),
	literal("smart quotes", "“", `"`, "”", `"`, "‘", "'", "’", "'"),
	chain("dashes",
		replace("em dash", `\s*—\s*`, ", "),
		replace("en dash range", `(\w)–(\w)`, "${1} to ${2}"),
		replace("en dash", `\s*–\s*`, " to "),
	),
	replace("word slash word", `\b([A-Za-z]{2,})/([A-Za-z]{2,})\b`, "${1} or ${2}"),
	abbreviationRule(),
	replaceSubmatch("percentages", `([\d,]+(?:\.\d+)?)\s*%`, func(m []string) string {
		if !hasDigit(m[1]) {
			return m[0]
		}
		return NumberToWords(m[1]) + " percent"
	}),
	chain("currency",
		currency("dollars", "$", "dollar", "dollars"),
		currency("pounds", "£", "pound", "pounds"),
		currency("euros", "€", "euro", "euros"),
	),
	replaceSubmatch("plus sign", `\+(\d+)\b`, func(m []string) string {
		return "plus " + IntToWords(parseInt(m[1]))
	}),
	replaceSubmatch("ordinals", `\b(\d+)(?:st|nd|rd|th)\b`, func(m []string) string {
		return OrdinalToWords(parseInt(m[1]))
	}),
	replaceSubmatch("years", `\b(1[89]\d\d|20\d\d)\b`, func(m []string) string {
		return YearToWords(parseInt(m[1]))
	}),
	replaceSubmatch("grouped numbers", `\b\d{1,3}(?:,\d{3})+\b`, func(m []string) string {
		return NumberToWords(m[0])
	}),
	replaceSubmatch("decimals", `\b\d+\.\d+\b`, func(m []string) string {
		return NumberToWords(m[0])
	}),
	replaceSubmatch("small integers", `\b(\d{1,4})\b`, func(m []string) string {
		return IntToWords(parseInt(m[1]))
	}),
	replace("emoji", `[\x{1F000}-\x{1FFFF}\x{2600}-\x{27FF}\x{FE00}-\x{FE0F}]`, ""),
	literal("stray symbols", "@", " at ", "#", "", "*", "", "`", "", "~", "", "|", ", ", `\`, ""),
	chain("whitespace",
		replace("runs", `[ \t]+`, " "),
		replace("blank lines", `\n{3,}`, "\n\n"),
		replace("trailing", `(?m)[ \t]+$`, ""),
	),
}
