package ident

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/record"
	"github.com/zulandar/changetrack/internal/recstore"
)

func requestID(c models.ChangeRequest) int32 { return c.ID }

func openRequests(t *testing.T, path string) *recstore.Store[models.ChangeRequest] {
	t.Helper()
	s, err := recstore.Open(path, record.ChangeRequest{}, recstore.Options{})
	require.NoError(t, err)
	return s
}

func request(id int32) models.ChangeRequest {
	return models.ChangeRequest{
		ID:          id,
		RequestedBy: "Ada",
		Product:     models.Product{Name: "Widget"},
		Date:        "2024-01-01",
	}
}

func TestSequence_EmptyStore(t *testing.T) {
	s := openRequests(t, filepath.Join(t.TempDir(), "requests.dat"))
	seq, err := NewSequence(s, requestID)
	require.NoError(t, err)
	require.Equal(t, int32(0), seq.Peek())

	for want := int32(0); want < 5; want++ {
		id := seq.Next()
		require.Equal(t, want, id)
		_, err := s.Append(request(id))
		require.NoError(t, err)
	}
	require.Equal(t, int32(5), seq.Peek())
}

func TestSequence_AfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.dat")
	s := openRequests(t, path)
	for _, id := range []int32{0, 1, 2, 41} {
		_, err := s.Append(request(id))
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	s = openRequests(t, path)
	seq, err := NewSequence(s, requestID)
	require.NoError(t, err)
	require.Equal(t, int32(42), seq.Next())
	require.Equal(t, int32(43), seq.Next())
}

func TestSequence_IgnoresPartialTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.dat")
	s := openRequests(t, path)
	for _, id := range []int32{0, 1, 2} {
		_, err := s.Append(request(id))
		require.NoError(t, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte("junk!"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s = openRequests(t, path)
	seq, err := NewSequence(s, requestID)
	require.NoError(t, err)
	require.Equal(t, int32(3), seq.Peek())
}

func TestSequence_ClosedStore(t *testing.T) {
	s := openRequests(t, filepath.Join(t.TempDir(), "requests.dat"))
	require.NoError(t, s.Close())
	_, err := NewSequence(s, requestID)
	require.ErrorIs(t, err, recstore.ErrClosed)
}

func TestEnsureUnique(t *testing.T) {
	s, err := recstore.Open(filepath.Join(t.TempDir(), "products.dat"), record.Product{}, recstore.Options{})
	require.NoError(t, err)

	named := func(name string) func(models.Product) bool {
		return func(p models.Product) bool { return p.Name == name }
	}

	require.NoError(t, EnsureUnique(s, "Product: Widget", named("Widget")))
	_, err = s.Append(models.Product{Name: "Widget"})
	require.NoError(t, err)

	err = EnsureUnique(s, "Product: Widget", named("Widget"))
	require.ErrorIs(t, err, recstore.ErrDuplicateKey)
	var dup *recstore.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, "Product: Widget", dup.Key)

	// names are case-sensitive
	require.NoError(t, EnsureUnique(s, "Product: widget", named("widget")))
}
