package simpletxmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.True(t, isSerializationFailure(
		fmt.Errorf("simpletxmanager: commit transaction: %w", &pq.Error{Code: "40001"})))

	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("boom")))
	assert.False(t, isSerializationFailure(nil))
}

func TestWithSerializationRetry(t *testing.T) {
	t.Run("retries serialization failure", func(t *testing.T) {
		calls := 0
		err := withSerializationRetry(context.Background(), func() error {
			calls++
			if calls < maxSerializationRetries {
				return &pq.Error{Code: "40001"}
			}
			return nil
		})

		assert.NoError(t, err)
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
}
