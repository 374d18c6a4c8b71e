// Package invoice renders calculator invoices for people: a fixed-width
// receipt (plain text or PDF) and a message meant for chat apps. Renderers
// only read the invoice; they never recompute costs.
package invoice

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Weekday and month names are fixed so output does not depend on the
// locale configured on the host.
var (
	dayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

	monthNames = [12]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

var numberPrinter = message.NewPrinter(language.Indonesian)

// FormatDate turns an ISO calendar date ("2024-01-15") into its long
// Indonesian form ("Senin, 15 Januari 2024"). A full RFC 3339 timestamp is
// accepted too; only its date part is used. Empty input yields "" and
// anything unparseable is returned unchanged.
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}
	if len(iso) > len(time.DateOnly) {
		if ts, err := time.Parse(time.RFC3339, iso); err == nil {
			iso = ts.Format(time.DateOnly)
		}
	}
	d, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return dayNames[int(d.Weekday())] + ", " +
		strconv.Itoa(d.Day()) + " " +
		monthNames[int(d.Month())-1] + " " +
		strconv.Itoa(d.Year())
}

// FormatRupiah renders whole rupiah with Indonesian digit grouping,
// e.g. "Rp 120.000".
func FormatRupiah(amount int64) string {
	return "Rp " + numberPrinter.Sprintf("%d", amount)
}
