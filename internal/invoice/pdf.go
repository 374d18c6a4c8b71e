package invoice

import (
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pbkm/badminton-split/internal/calculator"
)

const (
	pdfRowHeight   = 6
	pdfBlankHeight = 4
	pdfFontSize    = 10
)

// ReceiptPDF renders the same receipt layout as Receipt into a PDF file.
func ReceiptPDF(inv calculator.Invoice) ([]byte, error) {
	m := maroto.New(config.NewBuilder().Build())

	base := props.Text{Family: fontfamily.Courier, Size: pdfFontSize}
	for _, l := range receiptLayout(inv) {
		switch l.kind {
		case lineBlank:
			m.AddRow(pdfBlankHeight)
		case lineSplit:
			right := base
			right.Align = align.Right
			m.AddRow(pdfRowHeight,
				text.NewCol(7, pdfSafe(l.text), base),
				text.NewCol(5, pdfSafe(l.right), right),
			)
		case lineCenter, lineRule, lineBold:
			p := base
			p.Align = align.Center
			if l.kind == lineBold {
				p.Style = fontstyle.Bold
			}
			m.AddRow(pdfRowHeight, text.NewCol(12, pdfSafe(l.text), p))
		default:
			m.AddRow(pdfRowHeight, text.NewCol(12, pdfSafe(l.text), base))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// pdfSafe drops runes the built-in PDF fonts cannot encode (emoji).
func pdfSafe(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r > 0xFF {
			return -1
		}
		return r
	}, s))
}
