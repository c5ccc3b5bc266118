package scribe

import "strings"

// requiredTopics are matched case-insensitively as substrings against the
// produced category names. A miss only warns; it never invalidates a result.
var requiredTopics = []string{
	"Chief Complaint",
	"History of Present Illness",
}

// Validate checks a Result for structural completeness. IsValid is false
// exactly when zero data points were extracted.
func Validate(result Result) Report {
	report := Report{
		IsValid:  true,
		Warnings: []string{},
		Errors:   []string{},
	}

	for _, topic := range requiredTopics {
		found := false
		for _, rec := range result.Categories {
			if strings.Contains(strings.ToLower(rec.Category), strings.ToLower(topic)) {
				found = true
				break
			}
		}
		if !found {
			report.Warnings = append(report.Warnings, "Missing expected category: "+topic)
		}
	}

	if result.Summary.TotalDataPoints == 0 {
		report.IsValid = false
		report.Errors = append(report.Errors, "No clinical data points extracted")
	}

	return report
}
