package report

import "strings"

// pdfReplacer maps typographic punctuation and a curated set of pictographic
// symbols to output-safe ASCII equivalents. The core PDF fonts only cover
// ASCII, so anything the table misses is dropped rather than rendered.
var pdfReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"•", "-", // bullet
	"…", "...", // ellipsis
	"⚡", "*",
	"✨", "*",
	"🔥", "*",
	"📊", "[Chart]",
	"📈", "[Graph]",
	"📉", "[Graph]",
	"✅", "[OK]",
	"❌", "[X]",
	"⚠️", "[Warning]",
	"⚠", "[Warning]",
)

// Sanitize makes text safe for the PDF encoding: mapped characters are
// substituted, every other non-ASCII rune is dropped. Never fails.
func Sanitize(text string) string {
	text = pdfReplacer.Replace(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
