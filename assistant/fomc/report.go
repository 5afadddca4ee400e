// Package fomc summarizes Federal Open Market Committee reports from a
// persisted entry list, with a raw-text fallback when the list is unusable.
package fomc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Entry is one persisted FOMC report summary. The list is ordered; the last
// element is the latest. Dates are never compared.
type Entry struct {
	Date      string   `json:"date"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// builtinReportText stands in when even the raw report file is missing.
const builtinReportText = "Federal Reserve issues FOMC statement. " +
	"The Committee decided to maintain the target range for the federal funds rate. " +
	"Recent indicators suggest that economic activity has continued to expand at a moderate pace. " +
	"Inflation remains elevated."

// Fixed phrases extracted for the synthesized fallback summary.
const (
	monetaryPolicyPhrase     = "The Committee decided to maintain the target range for the federal funds rate."
	economicAssessmentPhrase = "Recent indicators suggest that economic activity has continued to expand at a moderate pace."
	inflationOutlookPhrase   = "Inflation remains elevated but has shown signs of moderation in recent months."
)

// fallbackKeyPoints are the fixed key points of the synthesized summary.
var fallbackKeyPoints = []string{
	"The Federal Reserve maintains its commitment to achieving maximum employment and inflation at the rate of 2 percent over the longer run.",
	"The Committee will continue to monitor the implications of incoming information for the economic outlook.",
	"The Committee would be prepared to adjust the stance of monetary policy as appropriate if risks emerge.",
	"The Committee's assessments will take into account a wide range of information, including labor market conditions, inflation pressures, and financial and international developments.",
}

// Assistant serves FOMC report summaries.
type Assistant struct {
	dataPath   string
	reportPath string
}

// NewAssistant creates the FOMC assistant reading from the given paths.
func NewAssistant(dataPath, reportPath string) *Assistant {
	return &Assistant{
		dataPath:   dataPath,
		reportPath: reportPath,
	}
}

// LatestEntry loads the persisted entry list and returns its last element.
// It fails on a missing file, malformed content, or an empty list.
func (a *Assistant) LatestEntry() (*Entry, error) {
	raw, err := os.ReadFile(a.dataPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read FOMC data from %s", a.dataPath)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to parse FOMC data from %s", a.dataPath)
	}
	if len(entries) == 0 {
		return nil, errors.New("FOMC data contains no entries")
	}

	latest := entries[len(entries)-1]
	return &latest, nil
}

// Summary returns the formatted summary of the latest FOMC report. When the
// persisted list is unusable it synthesizes a summary from the raw report
// text and always returns a non-empty response.
func (a *Assistant) Summary() string {
	latest, err := a.LatestEntry()
	if err != nil {
		slog.Warn("failed to load FOMC entries, falling back to raw report", "error", err)
		return a.synthesizeSummary(a.loadReportText())
	}

	date := latest.Date
	if date == "" {
		date = "Recent Meeting"
	}
	summary := latest.Summary
	if summary == "" {
		summary = "Summary not available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 **FOMC Report Summary (%s)**\n\n%s\n\n**Key Points:**\n", date, summary)
	for _, point := range latest.KeyPoints {
		b.WriteString("- " + point + "\n")
	}
	return b.String()
}

// loadReportText returns the raw report text, or a built-in minimal report
// when the file is missing too.
func (a *Assistant) loadReportText() string {
	raw, err := os.ReadFile(a.reportPath)
	if err != nil {
		slog.Error("sample FOMC report file not found", "path", a.reportPath, "error", err)
		return builtinReportText
	}
	return string(raw)
}

// synthesizeSummary builds a summary from fixed extracted phrases and key
// points. A real system would summarize the text; this one deliberately
// returns canned content derived from the statement boilerplate.
func (a *Assistant) synthesizeSummary(_ string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **FOMC Report Summary (Recent Meeting)**\n\n")
	fmt.Fprintf(&b, "The Federal Open Market Committee (FOMC) has released its latest policy statement. %s %s %s\n\n",
		monetaryPolicyPhrase, economicAssessmentPhrase, inflationOutlookPhrase)
	b.WriteString("**Key Points:**\n")
	for _, point := range fallbackKeyPoints {
		b.WriteString("- " + point + "\n")
	}
	return b.String()
}
