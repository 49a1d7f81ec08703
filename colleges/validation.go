package colleges

import (
	"strings"

	"gradbridge/models"
	"gradbridge/utils"
)

// validateCollege runs the comprehensive-form checks in a single pass
// and returns every violation found, not just the first. A submission
// failing any rule is rejected wholesale; a half-complete college
// record is never written.
func validateCollege(c *models.College) []string {
	var violations []string

	if strings.TrimSpace(c.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(c.CountryRef) == "" {
		violations = append(violations, "country is required")
	}
	if strings.TrimSpace(c.Duration) == "" {
		violations = append(violations, "duration is required")
	}
	if c.Overview == nil || strings.TrimSpace(c.Overview.Description) == "" {
		violations = append(violations, "overview description is required")
	}
	if c.KeyHighlights == nil || len(nonEmpty(c.KeyHighlights.Features)) == 0 {
		violations = append(violations, "at least one key highlight is required")
	}
	if c.WhyChooseUs == nil || len(c.WhyChooseUs.Features) == 0 {
		violations = append(violations, "at least one why-choose-us feature is required")
	}
	if c.Ranking.Detailed == nil ||
		(strings.TrimSpace(c.Ranking.Detailed.CountryRanking) == "" &&
			strings.TrimSpace(c.Ranking.Detailed.WorldRanking) == "") {
		violations = append(violations, "at least one of country ranking or world ranking is required")
	}
	if c.AdmissionProcess == nil || len(nonEmpty(c.AdmissionProcess.Steps)) == 0 {
		violations = append(violations, "at least one admission step is required")
	}
	if c.DocumentsRequired == nil || len(nonEmpty(c.DocumentsRequired.Documents)) == 0 {
		violations = append(violations, "at least one required document is required")
	}
	if c.FeesStructure == nil || !hasFeeCourse(c.FeesStructure.Courses) {
		violations = append(violations, "at least one fee-bearing course is required")
	}
	if c.CampusHighlights == nil || len(nonEmpty(c.CampusHighlights.Highlights)) == 0 {
		violations = append(violations, "at least one campus highlight is required")
	}
	if len(nonEmpty(c.Exams)) == 0 {
		violations = append(violations, "at least one accepted exam is required")
	}
	if c.BannerImage != "" && !utils.IsValidURL(c.BannerImage) {
		violations = append(violations, "banner image must be a valid URL")
	}

	return violations
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func hasFeeCourse(courses []models.CourseFee) bool {
	for _, c := range courses {
		if strings.TrimSpace(c.CourseName) != "" && strings.TrimSpace(c.AnnualTuitionFee) != "" {
			return true
		}
	}
	return false
}
