package scribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ZeroDataPoints(t *testing.T) {
	report := Validate(buildResult([]Record{}))

	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors, "No clinical data points extracted")
	// Both required topics are also missing, but those only warn.
	assert.Len(t, report.Warnings, 2)
}

func TestValidate_RequiredCoverage(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		result := buildResult([]Record{
			{Category: "Chief Complaint/Reason for Visit", Details: []string{"chest pain"}},
			{Category: "History of Present Illness (HPI)", Details: []string{"2 days"}},
		})
		report := Validate(result)
		assert.True(t, report.IsValid)
		assert.Empty(t, report.Warnings)
		assert.Empty(t, report.Errors)
	})

	t.Run("match is case-insensitive substring", func(t *testing.T) {
		result := buildResult([]Record{
			{Category: "CHIEF COMPLAINT", Details: []string{"x"}},
			{Category: "history of present illness and context", Details: []string{"y"}},
		})
		report := Validate(result)
		assert.True(t, report.IsValid)
		assert.Empty(t, report.Warnings)
	})

	t.Run("missing topics warn but never invalidate", func(t *testing.T) {
		result := buildResult([]Record{
			{Category: "Allergies", Details: []string{"penicillin"}},
		})
		report := Validate(result)
		assert.True(t, report.IsValid)
		assert.Equal(t, []string{
			"Missing expected category: Chief Complaint",
			"Missing expected category: History of Present Illness",
		}, report.Warnings)
		assert.Empty(t, report.Errors)
	})
}

func TestBuildResult_Summary(t *testing.T) {
	result := buildResult([]Record{
		{Category: "Allergies", Details: []string{"penicillin"}},
		{Category: "Vital Signs", Details: []string{}},
		{Category: "Diagnosis", Details: []string{"costochondritis"}},
	})

	assert.Equal(t, 3, result.Summary.TotalDataPoints)
	// Only categories with at least one detail count as found.
	assert.Equal(t, []string{"Allergies", "Diagnosis"}, result.Summary.CategoriesFound)
	assert.Nil(t, result.Summary.ConfidenceScore)
}
