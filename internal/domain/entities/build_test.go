//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/provenance/internal/domain/entities"
	"github.com/rios0rios0/provenance/test/domain/entitybuilders"
)

func TestNewBuildLookup(t *testing.T) {
	t.Parallel()

	source := entities.BuildCandidateSource{Organization: "devdiv", Project: "DevDiv", Definition: "Roslyn-Signed"}

	t.Run("should classify an error as failed", func(t *testing.T) {
		t.Parallel()

		// when
		lookup := entities.NewBuildLookup(source, nil, errors.New("unauthorized"))

		// then
		assert.Equal(t, entities.LookupFailed, lookup.Outcome)
	})

	t.Run("should classify no builds as empty", func(t *testing.T) {
		t.Parallel()

		// when
		lookup := entities.NewBuildLookup(source, nil, nil)

		// then
		assert.Equal(t, entities.LookupEmpty, lookup.Outcome)
	})

	t.Run("should classify builds as found", func(t *testing.T) {
		t.Parallel()

		// given
		builds := []entities.BuildRecord{entitybuilders.NewBuildRecordBuilder().BuildRecord()}

		// when
		lookup := entities.NewBuildLookup(source, builds, nil)

		// then
		assert.Equal(t, entities.LookupFound, lookup.Outcome)
		assert.Len(t, lookup.Builds, 1)
	})

	t.Run("should describe the source as organization, project and definition", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "devdiv/DevDiv/Roslyn-Signed", source.String())
	})
}
