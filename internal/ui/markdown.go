package ui

import (
	_ "embed"
	"image"
	"image/color"
	"strconv"
	"strings"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	goldtext "github.com/yuin/goldmark/text"
)

// landing.md holds the landing screen copy. A thematic break (---) marks
// where the "Open File Explorer" button goes.
//
//go:embed landing.md
var landingMarkdown string

// MarkdownSpan represents a styled segment of markdown text
type MarkdownSpan struct {
	Text    string
	Bold    bool
	Italic  bool
	Code    bool
	NewLine bool // Force newline after this span
}

// MarkdownBlock represents a block of markdown content
type MarkdownBlock struct {
	Spans []MarkdownSpan
	Type  string // "paragraph", "heading", "list", "hr"
	Level int    // heading level
}

// ParseMarkdown parses markdown content and returns blocks for rendering
func ParseMarkdown(content string) []MarkdownBlock {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(goldtext.NewReader(source))

	var blocks []MarkdownBlock
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			blocks = append(blocks, MarkdownBlock{
				Type:  "heading",
				Level: n.Level,
				Spans: extractInlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			blocks = append(blocks, MarkdownBlock{
				Type:  "paragraph",
				Spans: extractInlineSpans(n, source, false, false),
			})
			return ast.WalkSkipChildren, nil

		case *ast.List:
			num := n.Start
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				item, ok := child.(*ast.ListItem)
				if !ok {
					continue
				}
				marker := "• "
				if n.IsOrdered() {
					marker = strconv.Itoa(num) + ". "
					num++
				}
				spans := []MarkdownSpan{{Text: marker}}
				for c := item.FirstChild(); c != nil; c = c.NextSibling() {
					spans = append(spans, extractInlineSpans(c, source, false, false)...)
				}
				blocks = append(blocks, MarkdownBlock{Type: "list", Spans: spans})
			}
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			blocks = append(blocks, MarkdownBlock{Type: "hr"})
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return blocks
}

// extractInlineSpans extracts styled spans from inline content
func extractInlineSpans(node ast.Node, source []byte, bold, italic bool) []MarkdownSpan {
	var spans []MarkdownSpan

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			if t := string(n.Segment.Value(source)); t != "" {
				spans = append(spans, MarkdownSpan{Text: t, Bold: bold, Italic: italic})
			}
			if n.HardLineBreak() {
				spans = append(spans, MarkdownSpan{NewLine: true})
			} else if n.SoftLineBreak() {
				spans = append(spans, MarkdownSpan{Text: " "})
			}

		case *ast.Emphasis:
			spans = append(spans, extractInlineSpans(n, source, bold || n.Level >= 2, italic || n.Level == 1)...)

		case *ast.CodeSpan:
			var code strings.Builder
			for seg := n.FirstChild(); seg != nil; seg = seg.NextSibling() {
				if t, ok := seg.(*ast.Text); ok {
					code.Write(t.Segment.Value(source))
				}
			}
			spans = append(spans, MarkdownSpan{Text: code.String(), Code: true})

		case *ast.String:
			spans = append(spans, MarkdownSpan{Text: string(n.Value), Bold: bold, Italic: italic})

		default:
			spans = append(spans, extractInlineSpans(child, source, bold, italic)...)
		}
	}

	return spans
}

// splitAtRule returns the blocks before and after the first "hr" block.
func splitAtRule(blocks []MarkdownBlock) (before, after []MarkdownBlock) {
	for i, b := range blocks {
		if b.Type == "hr" {
			return blocks[:i], blocks[i+1:]
		}
	}
	return blocks, nil
}

// spansText flattens spans into plain text.
func spansText(spans []MarkdownSpan) string {
	var sb strings.Builder
	for _, span := range spans {
		if span.NewLine {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// LayoutMarkdownBlock renders a single markdown block, centred
func (r *Renderer) LayoutMarkdownBlock(gtx layout.Context, block MarkdownBlock) layout.Dimensions {
	switch block.Type {
	case "heading":
		// H1=34sp, H2=20sp, the rest 16sp
		size := unit.Sp(16)
		switch block.Level {
		case 1:
			size = 34
		case 2:
			size = 20
		}
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutMarkdownSpans(gtx, block.Spans, size, colBlack)
		})
	case "hr":
		return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			height := gtx.Dp(1)
			paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, height)}.Op())
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, height)}
		})
	case "list":
		return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(2)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutMarkdownSpans(gtx, block.Spans, unit.Sp(14), colGray)
		})
	default:
		return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return r.layoutMarkdownSpans(gtx, block.Spans, unit.Sp(18), colGray)
		})
	}
}

// layoutMarkdownSpans renders a sequence of styled spans as one wrapped,
// centred label. Styling follows the first span.
func (r *Renderer) layoutMarkdownSpans(gtx layout.Context, spans []MarkdownSpan, size unit.Sp, fg color.NRGBA) layout.Dimensions {
	lbl := material.Body1(r.Theme, spansText(spans))
	lbl.TextSize = size
	lbl.Color = fg
	lbl.Alignment = text.Middle

	for _, span := range spans {
		if span.Code {
			lbl.Font.Typeface = "monospace"
		}
	}
	if len(spans) > 0 {
		if spans[0].Bold {
			lbl.Font.Weight = font.Bold
		}
		if spans[0].Italic {
			lbl.Font.Style = font.Italic
		}
	}
	if size >= 20 {
		lbl.Font.Weight = font.Bold
	}

	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return lbl.Layout(gtx)
}
