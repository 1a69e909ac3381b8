package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/domain/repositories"
)

// ReportRepository prints branch reports to a terminal, styling headers and errors when the
// writer supports colors.
type ReportRepository struct {
	writer io.Writer
	header lipgloss.Style
	label  lipgloss.Style
	failed lipgloss.Style
}

var _ repositories.ReportRepository = (*ReportRepository)(nil)

// NewReportRepository creates a reporter writing to w.
func NewReportRepository(w io.Writer) *ReportRepository {
	renderer := lipgloss.NewRenderer(w)
	return &ReportRepository{
		writer: w,
		header: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		label:  renderer.NewStyle().Foreground(lipgloss.Color("8")),
		failed: renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Report prints one branch section followed by a blank line.
func (it *ReportRepository) Report(result entities.BranchResolutionResult) {
	fmt.Fprintln(it.writer, it.header.Render(result.Branch+":"))

	if result.Err != nil {
		fmt.Fprintln(it.writer, it.failed.Render("Error: "+result.Err.Error()))
		fmt.Fprintln(it.writer)
		return
	}

	version := result.PackageVersion
	if !result.HasVersion {
		version = "(not declared)"
	}
	it.line("Package Version", version)

	for _, entry := range result.Entries {
		it.line("Commit Sha", entry.Commit)
		it.line("Source Branch", entry.SourceBranch)
		it.line("Build", fmt.Sprintf("%s (#%d, %s/%s)",
			entry.BuildNumber, entry.BuildID, entry.Organization, entry.Definition))
	}
	fmt.Fprintln(it.writer)
}

func (it *ReportRepository) line(label, value string) {
	fmt.Fprintf(it.writer, "%s %s\n", it.label.Render(label+":"), value)
}
