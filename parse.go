package scribe

import "strings"

// Markers the model is instructed to wrap its reply in. The parser only looks
// at the text between them.
const (
	openMarker  = "=== CLINICAL DATA EXTRACTION ==="
	closeMarker = "=== END OF EXTRACTION ==="
)

// ParseExtraction turns a raw model reply into ordered records. If the
// delimiting markers are absent it returns an empty slice rather than an
// error; downstream validation reports the degenerate case.
//
// Within the delimited section a small two-state line machine is applied:
// a "N." line opens a record, a "-" line appends a detail to the open record,
// anything else (including detail lines before the first record) is dropped.
func ParseExtraction(raw string) []Record {
	section, ok := extractionSection(raw)
	if !ok {
		return []Record{}
	}

	records := []Record{}
	var current *Record

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, ok := splitNumberedLine(line); ok {
			if current != nil {
				records = append(records, *current)
			}
			current = &Record{
				Category: strings.TrimRight(name, ":"),
				Details:  []string{},
			}
			continue
		}

		if strings.HasPrefix(line, "-") && current != nil {
			current.Details = append(current.Details, strings.TrimSpace(line[1:]))
		}
	}

	if current != nil {
		records = append(records, *current)
	}
	return records
}

// extractionSection returns the text between the first opening marker and the
// first closing marker after it.
func extractionSection(raw string) (string, bool) {
	start := strings.Index(raw, openMarker)
	if start < 0 {
		return "", false
	}
	rest := raw[start+len(openMarker):]
	end := strings.Index(rest, closeMarker)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// splitNumberedLine matches "digits followed by a period" and returns the
// remainder with the numeric prefix and surrounding space stripped.
func splitNumberedLine(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}
