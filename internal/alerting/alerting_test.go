package alerting

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("wrapped transport error", func(t *testing.T) {
		err := fmt.Errorf("generate: %w", Transport(errors.New("connection refused")))
		assert.Equal(t, ClassTransport, Classify(err))
	})

	t.Run("plain error is application", func(t *testing.T) {
		assert.Equal(t, ClassApplication, Classify(errors.New("failed to fetch")))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Transport(nil))
	})
}

func TestPolicy_Notify(t *testing.T) {
	ctx := context.Background()
	transportErr := Transport(errors.New("dial tcp: connection refused"))

	t.Run("suppresses transport failures when configured", func(t *testing.T) {
		p := NewPolicy(true)
		assert.Nil(t, p.Notify(ctx, "submit", transportErr))
	})

	t.Run("surfaces transport failures when not suppressed", func(t *testing.T) {
		p := NewPolicy(false)
		alert := p.Notify(ctx, "submit", transportErr)
		require.NotNil(t, alert)
		assert.Equal(t, ClassTransport, alert.Class)
		assert.Equal(t, "dial tcp: connection refused", alert.Message)
	})

	t.Run("never suppresses application failures", func(t *testing.T) {
		p := NewPolicy(true)
		alert := p.Notify(ctx, "submit", errors.New("network response was not valid json"))
		require.NotNil(t, alert)
		assert.Equal(t, ClassApplication, alert.Class)
	})

	t.Run("nil error yields no alert", func(t *testing.T) {
		assert.Nil(t, NewPolicy(false).Notify(ctx, "submit", nil))
	})
}
