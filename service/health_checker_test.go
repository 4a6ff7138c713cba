package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckerService_CheckClassifierHealth(t *testing.T) {
	t.Run("should pass when the classifier responds", func(t *testing.T) {
		svc := NewHealthCheckerService(&stubClassifierRepo{}, testLogger())

		assert.NoError(t, svc.CheckClassifierHealth(context.Background()))
	})

	t.Run("should fail when the classifier is down", func(t *testing.T) {
		svc := NewHealthCheckerService(&stubClassifierRepo{healthErr: errors.New("connection refused")}, testLogger())

		assert.Error(t, svc.CheckClassifierHealth(context.Background()))
	})
}

func TestHealthCheckerService_WaitForHealthy(t *testing.T) {
	t.Run("should return immediately when already healthy", func(t *testing.T) {
		svc := NewHealthCheckerService(&stubClassifierRepo{}, testLogger())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		assert.NoError(t, svc.WaitForHealthy(ctx))
	})

	t.Run("should give up when the context expires", func(t *testing.T) {
		svc := NewHealthCheckerService(&stubClassifierRepo{healthErr: errors.New("still down")}, testLogger())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := svc.WaitForHealthy(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
