package report

import (
	"strings"

	"github.com/datavista/datavista-cli/internal/insight"
	"github.com/datavista/datavista-cli/internal/summarize"
)

// genericTitle labels the single section produced when input matches no
// known structure. Parsing never fails.
const genericTitle = "Summary"

// Section is a titled block of text within a parsed report.
type Section struct {
	Title string
	Body  string
}

// ParsedReport is the ordered sequence of sections recovered from backend
// output, in order of appearance.
type ParsedReport struct {
	Sections []Section
}

// Parse splits backend output into sections, choosing the strategy by which
// backend produced the text: API output is heading-delimited with however
// many sections the model chose to emit; model and fallback output carries
// the four fixed narrative markers.
func Parse(res summarize.Result) ParsedReport {
	if res.Source == summarize.SourceAPI {
		return ParseHeadings(res.Text)
	}
	return ParseFixed(res.Text)
}

// fixedMarkers in narrative order. Titles are the markers without the colon.
var fixedMarkers = []string{
	insight.MarkerOverview,
	insight.MarkerNumeric,
	insight.MarkerCategorical,
	insight.MarkerHealth,
}

// ParseFixed locates each known marker and takes everything up to the next
// known marker (or end of text) as that section's body. A missing marker
// yields an empty body; text with no markers at all yields a single generic
// section holding the raw text verbatim.
func ParseFixed(text string) ParsedReport {
	starts := make([]int, len(fixedMarkers))
	found := false
	for i, m := range fixedMarkers {
		starts[i] = strings.Index(text, m)
		if starts[i] >= 0 {
			found = true
		}
	}
	if !found {
		return ParsedReport{Sections: []Section{{Title: genericTitle, Body: text}}}
	}

	var out ParsedReport
	for i, m := range fixedMarkers {
		title := strings.TrimSuffix(m, ":")
		if starts[i] < 0 {
			out.Sections = append(out.Sections, Section{Title: title})
			continue
		}
		begin := starts[i] + len(m)
		end := len(text)
		for j := i + 1; j < len(fixedMarkers); j++ {
			if starts[j] > starts[i] && starts[j] < end {
				end = starts[j]
			}
		}
		out.Sections = append(out.Sections, Section{
			Title: title,
			Body:  strings.TrimSpace(text[begin:end]),
		})
	}
	return out
}

// headingPrefix is the delimiter the remote backend is instructed to emit.
const headingPrefix = "## "

// ParseHeadings splits heading-delimited text into sections: each "## "
// line starts a section titled by that line (emphasis markers stripped),
// with the following lines as the body. Text before the first heading, or
// text with no headings at all, becomes a generic section.
func ParseHeadings(text string) ParsedReport {
	lines := strings.Split(text, "\n")
	var out ParsedReport
	title := ""
	var body []string

	flush := func() {
		b := strings.TrimSpace(strings.Join(body, "\n"))
		if title == "" {
			if b == "" {
				return
			}
			out.Sections = append(out.Sections, Section{Title: genericTitle, Body: b})
			return
		}
		out.Sections = append(out.Sections, Section{Title: title, Body: b})
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), headingPrefix) || isHeading(line) {
			flush()
			title = stripEmphasis(line)
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	flush()

	if len(out.Sections) == 0 {
		return ParsedReport{Sections: []Section{{Title: genericTitle, Body: text}}}
	}
	return out
}

func isHeading(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "#") && strings.TrimLeft(t, "#") != t
}

// stripEmphasis removes heading and decorative emphasis markers from a
// heading line, leaving the plain title.
func stripEmphasis(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimLeft(t, "#")
	t = strings.Trim(t, "*_ ")
	return strings.TrimSpace(t)
}
