package invoice

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pbkm/badminton-split/internal/calculator"
)

// ShareBaseURL is the WhatsApp deep link the share message is appended to.
const ShareBaseURL = "https://wa.me/?text="

// ShareMessage renders inv as a single text block for a group chat.
func ShareMessage(inv calculator.Invoice) string {
	var b strings.Builder
	b.WriteString("🏸 Struk Pembayaran Badminton 🏸\n\n")
	b.WriteString("Halo teman-teman! 👋\n")
	b.WriteString("Berikut adalah rincian biaya main bulutangkis hari ini:\n\n")

	b.WriteString("Waktu & Lokasi 📍\n")
	fmt.Fprintf(&b, "Tanggal: %s\n", orPlaceholder(FormatDate(inv.PlayDate)))
	fmt.Fprintf(&b, "Durasi: %d jam\n", inv.DurationHours)
	fmt.Fprintf(&b, "Gor: %s\n", orPlaceholder(inv.CourtName()))
	fmt.Fprintf(&b, "Lokasi: %s\n\n", orPlaceholder(inv.CourtLocation()))

	b.WriteString("Rincian Biaya 💰\n")
	fmt.Fprintf(&b, "Sewa Lapangan (%d jam x %s): %s\n",
		inv.DurationHours, FormatRupiah(inv.CourtPrice), FormatRupiah(inv.CourtSubtotal()))
	fmt.Fprintf(&b, "Shuttlecock %s (%d buah x %s): %s\n",
		orPlaceholder(inv.ShuttlecockName()), inv.ShuttlecockCount, FormatRupiah(inv.ShuttlecockPrice), FormatRupiah(inv.ShuttlecockSubtotal()))
	fmt.Fprintf(&b, "Total Biaya: %s\n\n", FormatRupiah(inv.TotalCost))

	fmt.Fprintf(&b, "Jumlah Orang: %d orang\n", inv.PlayerCount)
	fmt.Fprintf(&b, "Biaya per Orang: %s ✨", FormatRupiah(inv.RoundedCostPerPerson()))

	if len(inv.BankAccounts) > 0 {
		b.WriteString("\n\nPembayaran 💳\n")
		b.WriteString("Silakan transfer sesuai dengan biaya per orang ke salah satu rekening di bawah ini.\n")
		for _, acc := range inv.BankAccounts {
			fmt.Fprintf(&b, "\n%s\nNo. Rek: %s\nA.n: %s\n", acc.BankName, acc.AccountNumber, acc.AccountName)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ShareURL returns the deep link that opens a chat with the share message
// prefilled. The message is query-escaped with spaces as %20 rather than +;
// QueryEscape also escapes characters such as ! and ( that a browser's
// encodeURIComponent leaves alone, which still decode to the same text.
func ShareURL(inv calculator.Invoice) string {
	return ShareBaseURL + strings.ReplaceAll(url.QueryEscape(ShareMessage(inv)), "+", "%20")
}
