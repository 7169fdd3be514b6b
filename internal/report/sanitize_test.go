package report

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"em dash", "a — b", "a - b"},
		{"en dash", "2019–2020", "2019-2020"},
		{"curly quotes", "“it’s”", `"it's"`},
		{"bullet", "• item", "- item"},
		{"ellipsis", "wait…", "wait..."},
		{"check", "done ✅", "done [OK]"},
		{"cross", "bad ❌", "bad [X]"},
		{"warning", "careful ⚠️ now", "careful [Warning] now"},
		{"chart", "see 📊", "see [Chart]"},
		{"graphs", "📈 and 📉", "[Graph] and [Graph]"},
		{"sparkles", "✨⚡🔥", "***"},
		{"plain ascii untouched", "hello, world! 123", "hello, world! 123"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeDropsUnmappedNonASCII(t *testing.T) {
	// Characters outside the substitution table must not survive or fail.
	if got := Sanitize("héllo 🦄 wörld"); got != "hllo  wrld" {
		t.Errorf("got %q", got)
	}
}
