package invoice

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbkm/badminton-split/internal/calculator"
	"github.com/pbkm/badminton-split/internal/model"
)

func scenarioA(t *testing.T, accounts ...model.BankAccount) calculator.Invoice {
	t.Helper()
	inv, err := calculator.Calculate(calculator.SessionInput{
		PlayDate:         "2024-01-15",
		DurationHours:    2,
		Court:            &model.Court{Name: "Gor H.Wahyu", Location: "Gempol / Kunciran Induk", PricePerHour: 45000},
		CourtPrice:       45000,
		Shuttlecock:      &model.Shuttlecock{Name: "Gong 2000", PricePerPiece: 10000},
		ShuttlecockPrice: 10000,
		ShuttlecockCount: 3,
		PlayerCount:      4,
		BankAccounts:     accounts,
	})
	require.NoError(t, err)
	return inv
}

var twoAccounts = []model.BankAccount{
	{BankName: "BCA", AccountNumber: "1234567890", AccountName: "Budi"},
	{BankName: "Bank Jago", AccountNumber: "555000111", AccountName: "Sari"},
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-15":           "Senin, 15 Januari 2024",
		"2023-12-31":           "Minggu, 31 Desember 2023",
		"2024-02-29":           "Kamis, 29 Februari 2024",
		"2024-06-01":           "Sabtu, 1 Juni 2024",
		"2024-08-17T09:00:00Z": "Sabtu, 17 Agustus 2024",
		"":                     "",
		"not-a-date":           "not-a-date",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), "input %q", in)
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 45.000", FormatRupiah(45000))
	assert.Equal(t, "Rp 1.234.567", FormatRupiah(1234567))
}

func TestReceipt_Layout(t *testing.T) {
	out := Receipt(scenarioA(t))

	assert.Contains(t, out, "STRUK BADMINTON")
	assert.Contains(t, out, "Tanggal: Senin, 15 Januari 2024")
	assert.Contains(t, out, "Durasi : 2 jam")
	assert.Contains(t, out, "Court  : Gor H.Wahyu")
	assert.Contains(t, out, "Lokasi : Gempol / Kunciran Induk")
	assert.Contains(t, out, "Rp 90.000")
	assert.Contains(t, out, "Gong 2000")
	assert.Contains(t, out, "@ Rp 10.000")
	assert.Contains(t, out, "Rp 30.000")
	assert.Contains(t, out, "Rp 120.000")
	assert.Contains(t, out, "JUMLAH ORANG: 4")
	assert.NotContains(t, out, "TRANSFER KE")

	order := []string{"Tanggal:", "RINCIAN BIAYA", "Sewa Lapangan", "Shuttlecock (3 biji)", "TOTAL BIAYA:", "JUMLAH ORANG", "BIAYA PER ORANG", "Terima Kasih"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.Greater(t, idx, last, "marker %q out of order", marker)
		last = idx
	}
}

func TestReceipt_BankAccountsInOrder(t *testing.T) {
	out := Receipt(scenarioA(t, twoAccounts...))

	assert.Contains(t, out, "TRANSFER KE:")
	assert.Equal(t, 2, strings.Count(out, "No. Rek:"))
	assert.Equal(t, 2, strings.Count(out, "A.n:"))
	first := strings.Index(out, "1. BCA")
	second := strings.Index(out, "2. Bank Jago")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestReceipt_RoundsOnlyAtDisplay(t *testing.T) {
	inv, err := calculator.Calculate(calculator.SessionInput{
		PlayDate:         "2024-01-15",
		DurationHours:    1,
		Court:            &model.Court{Name: "Gor H.Wahyu"},
		CourtPrice:       45000,
		Shuttlecock:      &model.Shuttlecock{Name: "Gong 2000"},
		ShuttlecockPrice: 10000,
		ShuttlecockCount: 1,
		PlayerCount:      3,
	})
	require.NoError(t, err)

	assert.Contains(t, Receipt(inv), "Rp 18.333")
	assert.Contains(t, ShareMessage(inv), "Biaya per Orang: Rp 18.333")
	assert.NotEqual(t, float64(18333), inv.CostPerPerson)
}

func TestReceipt_Draft(t *testing.T) {
	draft, err := calculator.Calculate(calculator.SessionInput{DurationHours: 1, ShuttlecockCount: 1, PlayerCount: 1})
	require.NoError(t, err)
	require.False(t, draft.Complete)

	out := Receipt(draft)
	assert.Contains(t, out, "Court  : -")
	assert.Contains(t, out, "Tanggal: -")
	assert.Contains(t, out, "Rp 0")

	msg := ShareMessage(draft)
	assert.Contains(t, msg, "Gor: -")
	assert.Contains(t, msg, "Biaya per Orang: Rp 0")
}

func TestRenderers_Idempotent(t *testing.T) {
	inv := scenarioA(t, twoAccounts...)
	assert.Equal(t, Receipt(inv), Receipt(inv))
	assert.Equal(t, ShareMessage(inv), ShareMessage(inv))
	assert.Equal(t, ShareURL(inv), ShareURL(inv))
}

func TestShareMessage(t *testing.T) {
	msg := ShareMessage(scenarioA(t))
	assert.Contains(t, msg, "Tanggal: Senin, 15 Januari 2024")
	assert.Contains(t, msg, "Gor: Gor H.Wahyu")
	assert.Contains(t, msg, "Sewa Lapangan (2 jam x Rp 45.000): Rp 90.000")
	assert.Contains(t, msg, "Shuttlecock Gong 2000 (3 buah x Rp 10.000): Rp 30.000")
	assert.Contains(t, msg, "Total Biaya: Rp 120.000")
	assert.Contains(t, msg, "Jumlah Orang: 4 orang")
	assert.Contains(t, msg, "Biaya per Orang: Rp 30.000")
	assert.NotContains(t, msg, "Pembayaran")
}

func TestShareMessage_BankAccountsInOrder(t *testing.T) {
	msg := ShareMessage(scenarioA(t, twoAccounts...))
	assert.Contains(t, msg, "Pembayaran")
	assert.Equal(t, 2, strings.Count(msg, "No. Rek:"))
	assert.Less(t, strings.Index(msg, "No. Rek: 1234567890"), strings.Index(msg, "No. Rek: 555000111"))
}

func TestShareURL(t *testing.T) {
	inv := scenarioA(t, twoAccounts...)
	link := ShareURL(inv)

	require.True(t, strings.HasPrefix(link, ShareBaseURL))
	encoded := strings.TrimPrefix(link, ShareBaseURL)
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, " ")
	assert.Contains(t, encoded, "%20")
	// query escaping also covers characters encodeURIComponent keeps
	assert.Contains(t, encoded, "%21")
	assert.NotContains(t, encoded, "!")

	decoded, err := url.PathUnescape(encoded)
	require.NoError(t, err)
	assert.Equal(t, ShareMessage(inv), decoded)
}

func TestReceiptFilename(t *testing.T) {
	inv := scenarioA(t)
	assert.Equal(t, "struk-badminton-2024-01-15.txt", ReceiptFilename(inv, "txt"))
	assert.Equal(t, "struk-badminton-2024-01-15.pdf", ReceiptFilename(inv, ".pdf"))

	inv.PlayDate = ""
	assert.Equal(t, "struk-badminton-draft.png", ReceiptFilename(inv, "png"))
}

func TestReceiptPDF(t *testing.T) {
	doc, err := ReceiptPDF(scenarioA(t, twoAccounts...))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestPDFSafe(t *testing.T) {
	assert.Equal(t, "STRUK BADMINTON", pdfSafe("🏸 STRUK BADMINTON 🏸"))
	assert.Equal(t, "Rp 30.000", pdfSafe("Rp 30.000"))
}
