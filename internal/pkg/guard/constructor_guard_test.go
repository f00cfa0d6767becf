package guard_test

import (
	"errors"
	"sync"
	"testing"

	"foodorder/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("PlaceOrderCommand must be created via NewPlaceOrderCommand")

	tests := []struct {
		name    string
		guard   guard.ConstructorGuard
		passErr error
		want    error
	}{
		{name: "constructed_guard_with_error", guard: guard.NewConstructorGuard(), passErr: errNotConstructed},
		{name: "constructed_guard_with_nil", guard: guard.NewConstructorGuard()},
		{name: "zero_guard_returns_custom_error", passErr: errNotConstructed, want: errNotConstructed},
		{name: "zero_guard_falls_back_to_default", want: guard.ErrDefaultConstructorGuard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When
			err := tt.guard.Validate(tt.passErr)

			// Then
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type cancelRequest struct {
		reason string
		guard  guard.ConstructorGuard
	}
	errRequestNotConstructed := errors.New("cancelRequest must be created via newCancelRequest")

	newCancelRequest := func(reason string) (cancelRequest, error) {
		if reason == "" {
			return cancelRequest{}, errors.New("reason is required")
		}
		return cancelRequest{reason: reason, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_marks_value", func(t *testing.T) {
		req, err := newCancelRequest("changed my mind")
		require.NoError(t, err)
		require.NoError(t, req.guard.Validate(errRequestNotConstructed))
	})

	t.Run("literal_is_rejected", func(t *testing.T) {
		req := cancelRequest{reason: "skipped constructor"}
		require.ErrorIs(t, req.guard.Validate(errRequestNotConstructed), errRequestNotConstructed)
	})

	t.Run("copy_keeps_state", func(t *testing.T) {
		req, err := newCancelRequest("late")
		require.NoError(t, err)
		cp := req
		require.NoError(t, cp.guard.Validate(errRequestNotConstructed))
	})
}

func TestConstructorGuard_DefaultErrorMessage(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	wg.Wait()
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
