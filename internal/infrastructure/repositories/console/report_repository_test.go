//go:build unit

package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/internal/infrastructure/repositories/console"
)

func TestReportRepositoryReport(t *testing.T) {
	t.Parallel()

	t.Run("should print the package version and one group per build", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		reporter := console.NewReportRepository(&out)
		result := entities.NewBranchSuccess("main", "9.9.9", true, []entities.BuildRecord{
			{ID: 1, SourceVersion: "abc123", SourceBranch: "refs/heads/main", BuildNumber: "9.9.9"},
			{ID: 2, SourceVersion: "def456", SourceBranch: "refs/heads/main", BuildNumber: "9.9.9"},
		})

		// when
		reporter.Report(result)

		// then
		text := out.String()
		assert.Contains(t, text, "main:")
		assert.Contains(t, text, "9.9.9")
		assert.Contains(t, text, "abc123")
		assert.Contains(t, text, "def456")
		assert.Less(t, strings.Index(text, "abc123"), strings.Index(text, "def456"))
		assert.NotContains(t, text, "refs/heads/")
	})

	t.Run("should mark an undeclared package version", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		reporter := console.NewReportRepository(&out)
		result := entities.NewBranchSuccess("main", "", false, []entities.BuildRecord{{ID: 1}})

		// when
		reporter.Report(result)

		// then
		assert.Contains(t, out.String(), "(not declared)")
	})

	t.Run("should print a single error line for a failed branch", func(t *testing.T) {
		t.Parallel()

		// given
		var out bytes.Buffer
		reporter := console.NewReportRepository(&out)
		result := entities.NewBranchFailure("rel/d16.9", errors.New("file not found: default.config"))

		// when
		reporter.Report(result)

		// then
		text := out.String()
		assert.Contains(t, text, "rel/d16.9:")
		assert.Contains(t, text, "Error: file not found: default.config")
		assert.NotContains(t, text, "Commit Sha")
	})
}
