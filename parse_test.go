package scribe

import "testing"

func TestParseExtraction_MockResponse(t *testing.T) {
	records := ParseExtraction(mockExtractionResponse)

	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	wantOrder := []string{
		"Chief Complaint/Reason for Visit",
		"History of Present Illness (HPI)",
		"Current Medications",
		"Past Medical History",
	}
	for i, want := range wantOrder {
		if records[i].Category != want {
			t.Errorf("record %d: got %q, want %q", i, records[i].Category, want)
		}
	}

	if len(records[1].Details) != 6 {
		t.Errorf("expected 6 HPI details, got %d", len(records[1].Details))
	}
	if records[0].Details[0] != "Patient presents with chest pain for 2 days" {
		t.Errorf("unexpected first detail: %q", records[0].Details[0])
	}
}

func TestParseExtraction_MissingMarkers(t *testing.T) {
	records := ParseExtraction("The model went off script and returned prose.")
	if records == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestParseExtraction_OrderPreserved(t *testing.T) {
	raw := `=== CLINICAL DATA EXTRACTION ===
3. Gamma:
- g1
1. Alpha:
2. Beta:
- b1
- b2
=== END OF EXTRACTION ===`

	records := ParseExtraction(raw)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// First-seen order wins, numeric prefixes are labels only.
	want := []string{"Gamma", "Alpha", "Beta"}
	for i, w := range want {
		if records[i].Category != w {
			t.Errorf("record %d: got %q, want %q", i, records[i].Category, w)
		}
	}
	if len(records[0].Details) != 1 || len(records[1].Details) != 0 || len(records[2].Details) != 2 {
		t.Errorf("unexpected detail counts: %d/%d/%d",
			len(records[0].Details), len(records[1].Details), len(records[2].Details))
	}
}

func TestParseExtraction_StrayLinesDropped(t *testing.T) {
	raw := `=== CLINICAL DATA EXTRACTION ===
- orphan bullet before any record
Some narration the model added.
1. Allergies:
- penicillin
Closing remark.
=== END OF EXTRACTION ===`

	records := ParseExtraction(raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Category != "Allergies" {
		t.Errorf("got %q", records[0].Category)
	}
	if len(records[0].Details) != 1 || records[0].Details[0] != "penicillin" {
		t.Errorf("unexpected details: %v", records[0].Details)
	}
}

func TestParseExtraction_TrailingColonsStripped(t *testing.T) {
	raw := "=== CLINICAL DATA EXTRACTION ===\n12. Laboratory Results:\n- HbA1c 7.2%\n14. Diagnosis::\n- Type 2 diabetes\n=== END OF EXTRACTION ==="
	records := ParseExtraction(raw)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Category != "Laboratory Results" {
		t.Errorf("trailing colon not stripped: %q", records[0].Category)
	}
	// Every trailing colon goes, not just the last one.
	if records[1].Category != "Diagnosis" {
		t.Errorf("trailing colons not stripped: %q", records[1].Category)
	}
}

func TestSplitNumberedLine(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"1. Chief Complaint:", "Chief Complaint:", true},
		{"12.Vital Signs", "Vital Signs", true},
		{"No leading digits", "", false},
		{"7 missing period", "", false},
		{"3.", "", true},
	}
	for _, tt := range tests {
		got, ok := splitNumberedLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("splitNumberedLine(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}
