//go:build !integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"premium-store/internal/domain"
)

func TestGetExecutor(t *testing.T) {
	t.Run("nil tx without pool", func(t *testing.T) {
		if _, err := getExecutor(nil, nil); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
	t.Run("foreign tx handle", func(t *testing.T) {
		if _, err := getExecutor(nil, "not-a-tx"); !errors.Is(err, errInvalidExecContext) {
			t.Fatalf("expected errInvalidExecContext, got %v", err)
		}
	})
}

func TestPostgresProviderWriter_RejectsForeignTx(t *testing.T) {
	w := NewPostgresProviderWriter(nil)
	if _, err := w.ReplaceAll(context.Background(), 42, nil); !errors.Is(err, errInvalidExecContext) {
		t.Fatalf("expected errInvalidExecContext, got %v", err)
	}
}
