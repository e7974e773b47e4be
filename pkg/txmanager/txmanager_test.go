package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure",
			err:  &pq.Error{Code: "40001"},
			want: true,
		},
		{
			name: "deadlock detected",
			err:  &pq.Error{Code: "40P01"},
			want: true,
		},
		{
			name: "wrapped commit error",
			err:  fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"}),
			want: true,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSerializationFailure(tt.err))
		})
	}
}

func TestWithSerializationRetry(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := withSerializationRetry(context.Background(), func() error {
			calls++
			if calls < 2 {
				return &pq.Error{Code: "40001"}
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := withSerializationRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
		})

		assert.True(t, isSerializationFailure(err))
		assert.Equal(t, maxSerializationRetries, calls)
	})

	t.Run("no retry on other errors", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("boom")
		err := withSerializationRetry(context.Background(), func() error {
			calls++
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := withSerializationRetry(ctx, func() error {
			calls++
			return &pq.Error{Code: "40001"}
		})

		assert.True(t, isSerializationFailure(err))
		assert.Equal(t, 1, calls)
	})
}
