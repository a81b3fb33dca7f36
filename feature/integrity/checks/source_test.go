package checks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckSource(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		report := CheckSource(context.Background(), pingFunc(func(context.Context) error { return nil }), time.Second)
		assert.True(t, report.Reachable)
		assert.Empty(t, report.Error)
	})

	t.Run("Unreachable", func(t *testing.T) {
		report := CheckSource(context.Background(), pingFunc(func(context.Context) error {
			return errors.New("401 unauthorized")
		}), time.Second)
		assert.False(t, report.Reachable)
		assert.Equal(t, "401 unauthorized", report.Error)
	})

	t.Run("Timeout", func(t *testing.T) {
		report := CheckSource(context.Background(), pingFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}), 10*time.Millisecond)
		assert.False(t, report.Reachable)
		assert.Contains(t, report.Error, "deadline exceeded")
	})

	t.Run("Not Configured", func(t *testing.T) {
		report := CheckSource(context.Background(), nil, time.Second)
		assert.False(t, report.Reachable)
	})
}
