// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pull

import docs "google.golang.org/api/docs/v1"

func run(text string) *docs.ParagraphElement {
	return &docs.ParagraphElement{TextRun: &docs.TextRun{Content: text}}
}

func styled(text string, style docs.TextStyle) *docs.ParagraphElement {
	return &docs.ParagraphElement{TextRun: &docs.TextRun{Content: text, TextStyle: &style}}
}

func bold(text string) *docs.ParagraphElement {
	return styled(text, docs.TextStyle{Bold: true})
}

func link(text, url string) *docs.ParagraphElement {
	return styled(text, docs.TextStyle{Link: &docs.Link{Url: url}})
}

func para(named string, runs ...*docs.ParagraphElement) *docs.StructuralElement {
	return &docs.StructuralElement{Paragraph: &docs.Paragraph{
		Elements:       runs,
		ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: named},
	}}
}

func item(listID string, nesting int64, runs ...*docs.ParagraphElement) *docs.StructuralElement {
	el := para("NORMAL_TEXT", runs...)
	el.Paragraph.Bullet = &docs.Bullet{ListId: listID, NestingLevel: nesting}
	return el
}

func list(levels ...*docs.NestingLevel) docs.List {
	return docs.List{ListProperties: &docs.ListProperties{NestingLevels: levels}}
}

func tabOf(id string, lists map[string]docs.List, elems ...*docs.StructuralElement) *docs.Tab {
	return &docs.Tab{
		TabProperties: &docs.TabProperties{TabId: id},
		DocumentTab: &docs.DocumentTab{
			Body:  &docs.Body{Content: elems},
			Lists: lists,
		},
	}
}
