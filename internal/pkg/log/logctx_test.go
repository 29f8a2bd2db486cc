package log

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// From без логгера в контексте возвращает slog.Default().
func TestFrom_Default(t *testing.T) {
	require.Equal(t, slog.Default(), From(context.Background()))
}

// Into/From — положенный логгер возвращается тем же экземпляром.
func TestIntoFrom_RoundTrip(t *testing.T) {
	l := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := Into(context.Background(), l)
	require.Same(t, l, From(ctx))
}

// Нулевой логгер в контексте игнорируется.
func TestFrom_NilLogger(t *testing.T) {
	ctx := Into(context.Background(), nil)
	require.Equal(t, slog.Default(), From(ctx))
}
