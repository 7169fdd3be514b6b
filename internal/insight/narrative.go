package insight

import (
	"fmt"
	"strings"
)

// Section markers. The fixed-marker parser in internal/report keys on these
// exact strings, in this exact order.
const (
	MarkerOverview    = "Dataset Overview:"
	MarkerNumeric     = "Numeric Insights:"
	MarkerCategorical = "Categorical Insights:"
	MarkerHealth      = "Data Health:"
)

// columnListLimit bounds narrative length regardless of dataset width.
const columnListLimit = 5

// Narrative is the fixed-structure composition of a snapshot, one field per
// section. Text serializes it to the marker-delimited form backends consume.
type Narrative struct {
	Overview    string
	Numeric     string
	Categorical string
	Health      string
}

// Compose renders a snapshot into a Narrative. Deterministic: identical
// snapshots yield byte-identical text (no clock, no randomness).
func Compose(snap Snapshot) Narrative {
	var n Narrative

	n.Overview = fmt.Sprintf(
		"- The dataset has %d rows and %d columns.\n- Contains %d missing values (%.2f%% of data) and %d duplicate rows.",
		snap.RowCount, snap.ColumnCount, snap.MissingCount, snap.MissingRatio*100, snap.DuplicateCount)

	corrText := "No strong correlations detected."
	if c := snap.TopCorrelation; c != nil {
		corrText = fmt.Sprintf("The strongest relationship (r = %.2f) is between `%s` and `%s`.",
			c.Coefficient, c.ColumnA, c.ColumnB)
	}
	if len(snap.NumericColumns) > 0 {
		n.Numeric = fmt.Sprintf("- Numeric columns include %s.\n- %s",
			joinColumnNames(snap.NumericColumns), corrText)
	} else {
		n.Numeric = fmt.Sprintf("- No numeric columns detected.\n- %s", corrText)
	}

	if len(snap.CategoricalColumns) > 0 {
		n.Categorical = fmt.Sprintf("- Key categorical columns are %s.",
			joinColumnNames(snap.CategoricalColumns))
	} else {
		n.Categorical = "- No categorical columns detected."
	}

	dupText := "No duplicates detected."
	if snap.DuplicateCount > 0 {
		dupText = fmt.Sprintf("%d duplicate rows found.", snap.DuplicateCount)
	}
	n.Health = fmt.Sprintf("- %s\n- %d missing values need to be handled (%.2f%% of total data points).",
		dupText, snap.MissingCount, snap.MissingRatio*100)

	return n
}

// Text serializes the narrative with its four markers in fixed order.
func (n Narrative) Text() string {
	var b strings.Builder
	b.WriteString(MarkerOverview + "\n" + n.Overview + "\n\n")
	b.WriteString(MarkerNumeric + "\n" + n.Numeric + "\n\n")
	b.WriteString(MarkerCategorical + "\n" + n.Categorical + "\n\n")
	b.WriteString(MarkerHealth + "\n" + n.Health + "\n")
	return b.String()
}

// joinColumnNames lists up to columnListLimit names, flagging truncation.
func joinColumnNames(names []string) string {
	if len(names) <= columnListLimit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:columnListLimit], ", ") + " and more"
}
