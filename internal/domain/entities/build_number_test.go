//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/provenance/internal/domain/entities"
)

func TestDeriveBuildNumber(t *testing.T) {
	t.Parallel()

	t.Run("should return the last path segment", func(t *testing.T) {
		t.Parallel()

		// given
		artifactURL := "https://host/a/b/12345.67.8"

		// when
		number, err := entities.DeriveBuildNumber(artifactURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, "12345.67.8", number)
	})

	t.Run("should ignore the query string", func(t *testing.T) {
		t.Parallel()

		// given
		artifactURL := "https://host/drops/20210115.3?sv=1"

		// when
		number, err := entities.DeriveBuildNumber(artifactURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, "20210115.3", number)
	})

	t.Run("should reject a URL ending with a slash", func(t *testing.T) {
		t.Parallel()

		// given
		artifactURL := "https://host/a/b/"

		// when
		_, err := entities.DeriveBuildNumber(artifactURL)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidURL)
	})

	t.Run("should reject a relative reference", func(t *testing.T) {
		t.Parallel()

		// given
		artifactURL := "a/b/1.0"

		// when
		_, err := entities.DeriveBuildNumber(artifactURL)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidURL)
	})

	t.Run("should reject an unparsable URL", func(t *testing.T) {
		t.Parallel()

		// given
		artifactURL := "https://host/%zz"

		// when
		_, err := entities.DeriveBuildNumber(artifactURL)

		// then
		require.ErrorIs(t, err, entities.ErrInvalidURL)
	})

	t.Run("should keep percent escapes of the last segment", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"https://host/a/b%2Fc":          "b%2Fc",
			"https://host/drops/9.9%20beta": "9.9%20beta",
		}
		for artifactURL, want := range tests {
			// when
			number, err := entities.DeriveBuildNumber(artifactURL)

			// then
			require.NoError(t, err)
			assert.Equal(t, want, number, artifactURL)
		}
	})
}
