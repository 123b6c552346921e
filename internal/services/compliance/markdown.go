package compliance

import (
	"fmt"
	"strings"

	"CloudLab/internal/domain/models"
)

// Markdown renders rec as an implementation roadmap document.
func Markdown(rec models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Compliance roadmap: %s\n\n", rec.Input.Industry)
	fmt.Fprintf(&b, "- Deployment model: %s\n", rec.Input.Model)
	fmt.Fprintf(&b, "- Data sensitivity: %s\n", rec.Input.Sensitivity)
	fmt.Fprintf(&b, "- Risk level: **%s**\n", rec.RiskLevel)
	fmt.Fprintf(&b, "- Fit: **%s**\n\n", rec.Fit)
	fmt.Fprintf(&b, "%s\n\n", rec.Rationale)

	b.WriteString("## Security requirements\n\n")
	b.WriteString("| Control | Requirement |\n|---|---|\n")
	fmt.Fprintf(&b, "| Encryption | %s |\n", rec.Requirements.Encryption)
	fmt.Fprintf(&b, "| Access control | %s |\n", rec.Requirements.AccessControl)
	fmt.Fprintf(&b, "| Data residency | %s |\n", rec.Requirements.DataResidency)
	fmt.Fprintf(&b, "| Audit logging | %s |\n", rec.Requirements.AuditLogging)
	fmt.Fprintf(&b, "| Backup retention | %s |\n\n", rec.Requirements.BackupRetention)

	b.WriteString("## Industry profile\n\n")
	fmt.Fprintf(&b, "Recommended model: %s. %s.\n\n", rec.Industry.RecommendedModel, rec.Industry.Rationale)
	for _, r := range rec.Industry.TopRisks {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\n")

	if len(rec.Regulations) > 0 {
		b.WriteString("## Regulations\n\n")
		for _, d := range rec.Regulations {
			fmt.Fprintf(&b, "### %s (%s on %s)\n\n", d.Name, d.Impact[rec.Input.Model], rec.Input.Model)
			for _, k := range d.KeyRequirements {
				fmt.Fprintf(&b, "- %s\n", k)
			}
			b.WriteString("\nControls:\n\n")
			for _, c := range d.TechnicalControls {
				fmt.Fprintf(&b, "- %s\n", c)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "## Implementation plan (%s complexity, %s)\n\n", rec.Complexity, rec.Timeline)
	for i, p := range rec.Priorities {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}

	return b.String()
}
