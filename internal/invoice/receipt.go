package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pbkm/badminton-split/internal/calculator"
)

// ReceiptWidth is the column count of the thermal-style receipt.
const ReceiptWidth = 32

var (
	doubleRule = strings.Repeat("=", ReceiptWidth)
	singleRule = strings.Repeat("-", ReceiptWidth)
)

// placeholder stands in for selections a draft invoice does not have yet.
const placeholder = "-"

// receiptLine is one line of the layout shared by the text and PDF receipts.
type receiptLine struct {
	text  string
	kind  lineKind
	right string
}

type lineKind int

const (
	lineLeft lineKind = iota
	lineCenter
	lineRule
	lineBold
	lineSplit
	lineBlank
)

// Receipt renders inv as a fixed-width, monospace receipt.
func Receipt(inv calculator.Invoice) string {
	var b strings.Builder
	for _, l := range receiptLayout(inv) {
		switch l.kind {
		case lineCenter, lineBold:
			b.WriteString(center(l.text))
		case lineSplit:
			b.WriteString(split(l.text, l.right))
		case lineBlank:
		default:
			b.WriteString(l.text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func receiptLayout(inv calculator.Invoice) []receiptLine {
	lines := []receiptLine{
		{kind: lineRule, text: doubleRule},
		{kind: lineBold, text: "🏸 STRUK BADMINTON 🏸"},
		{kind: lineRule, text: doubleRule},
		{kind: lineBlank},
		{text: "Tanggal: " + orPlaceholder(FormatDate(inv.PlayDate))},
		{text: "Durasi : " + strconv.Itoa(inv.DurationHours) + " jam"},
		{text: "Court  : " + orPlaceholder(inv.CourtName())},
		{text: "Lokasi : " + orPlaceholder(inv.CourtLocation())},
		{kind: lineBlank},
		{kind: lineRule, text: singleRule},
		{kind: lineCenter, text: "RINCIAN BIAYA"},
		{kind: lineRule, text: singleRule},
		{text: fmt.Sprintf("Sewa Lapangan (%d jam)", inv.DurationHours)},
		{kind: lineSplit, text: "@ " + FormatRupiah(inv.CourtPrice), right: FormatRupiah(inv.CourtSubtotal())},
		{text: fmt.Sprintf("Shuttlecock (%d biji)", inv.ShuttlecockCount)},
		{text: orPlaceholder(inv.ShuttlecockName())},
		{kind: lineSplit, text: "@ " + FormatRupiah(inv.ShuttlecockPrice), right: FormatRupiah(inv.ShuttlecockSubtotal())},
		{kind: lineRule, text: singleRule},
		{kind: lineSplit, text: "TOTAL BIAYA:", right: FormatRupiah(inv.TotalCost)},
		{text: "JUMLAH ORANG: " + strconv.Itoa(inv.PlayerCount)},
		{kind: lineRule, text: doubleRule},
		{kind: lineBold, text: "BIAYA PER ORANG"},
		{kind: lineBold, text: FormatRupiah(inv.RoundedCostPerPerson())},
		{kind: lineRule, text: doubleRule},
	}

	if len(inv.BankAccounts) > 0 {
		lines = append(lines,
			receiptLine{kind: lineBlank},
			receiptLine{kind: lineCenter, text: "TRANSFER KE:"},
			receiptLine{kind: lineRule, text: singleRule},
		)
		for i, acc := range inv.BankAccounts {
			lines = append(lines,
				receiptLine{kind: lineLeft, text: fmt.Sprintf("%d. %s", i+1, acc.BankName)},
				receiptLine{text: "No. Rek: " + acc.AccountNumber},
				receiptLine{text: "A.n: " + acc.AccountName},
				receiptLine{kind: lineBlank},
			)
		}
	} else {
		lines = append(lines, receiptLine{kind: lineBlank})
	}

	return append(lines,
		receiptLine{kind: lineRule, text: singleRule},
		receiptLine{kind: lineCenter, text: "Terima Kasih Telah Bermain!"},
		receiptLine{kind: lineCenter, text: "Semoga Sehat Selalu 🏸"},
		receiptLine{kind: lineCenter, text: "Sampai Jumpa Lagi!"},
		receiptLine{kind: lineRule, text: doubleRule},
	)
}

// ReceiptFilename names a downloaded receipt after the play date.
func ReceiptFilename(inv calculator.Invoice, ext string) string {
	date := strings.TrimSpace(inv.PlayDate)
	if date == "" {
		date = "draft"
	}
	return "struk-badminton-" + date + "." + strings.TrimPrefix(ext, ".")
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= ReceiptWidth {
		return s
	}
	return strings.Repeat(" ", (ReceiptWidth-n)/2) + s
}

func split(left, right string) string {
	gap := ReceiptWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
