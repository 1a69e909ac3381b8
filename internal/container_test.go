//go:build unit

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/provenance/internal"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should wire the resolve controller into the app", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()

		// when
		err := internal.RegisterProviders(container)

		// then
		require.NoError(t, err)
		var app *internal.AppInternal
		require.NoError(t, container.Invoke(func(ai *internal.AppInternal) { app = ai }))
		require.Len(t, app.GetControllers(), 1)
		assert.Equal(t, "resolve [branch...]", app.GetControllers()[0].GetBind().Use)
	})
}
