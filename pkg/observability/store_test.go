package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/memory"
)

type note struct {
	Metadata extension.Metadata `json:"metadata"`
}

func (n *note) GetMetadata() *extension.Metadata { return &n.Metadata }

var noteType = &extension.Type[*note]{
	Kind: "Note",
	New:  func() *note { return &note{} },
}

type observation struct {
	operation string
	err       error
}

type recordingObserver struct {
	observations []observation
}

func (r *recordingObserver) ObserveStoreOperation(operation, backend, kind string, _ time.Duration, err error) {
	r.observations = append(r.observations, observation{operation: operation, err: err})
}

type readOnly struct {
	extension.Client[*note]
}

func TestInstrumentedStore(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	store := InstrumentStore[*note](memory.NewStore(noteType), "memory", "Note", observer)

	require.NoError(t, store.Create(ctx, &note{Metadata: extension.Metadata{Name: "a"}}))
	_, err := store.Fetch(ctx, "a")
	require.NoError(t, err)
	_, err = store.Fetch(ctx, "missing")
	require.Error(t, err)
	_, err = store.ListAll(ctx, extension.ListOptions{}, nil)
	require.NoError(t, err)
	_, err = store.ListBy(ctx, extension.ListOptions{}, extension.PageRequestOf(1, 10, nil))
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, &note{Metadata: extension.Metadata{Name: "a"}}))
	require.NoError(t, store.Delete(ctx, "a"))

	ops := make([]string, len(observer.observations))
	for i, o := range observer.observations {
		ops[i] = o.operation
	}
	assert.Equal(t, []string{"create", "fetch", "fetch", "list_all", "list_by", "update", "delete"}, ops)
	assert.True(t, errors.Is(observer.observations[2].err, extension.ErrNotFound))
}

func TestInstrumentedStore_ReadOnly(t *testing.T) {
	observer := &recordingObserver{}
	store := InstrumentStore[*note](readOnly{memory.NewStore(noteType)}, "file", "Note", observer)

	err := store.Create(context.Background(), &note{Metadata: extension.Metadata{Name: "a"}})
	assert.ErrorIs(t, err, extension.ErrReadOnly)
	require.Len(t, observer.observations, 1)
	assert.ErrorIs(t, observer.observations[0].err, extension.ErrReadOnly)
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{extension.NotFound("Note", "a"), "not_found"},
		{extension.AlreadyExists("Note", "a"), "already_exists"},
		{extension.Conflict("Note", "a", 1, 2), "conflict"},
		{extension.ErrUnknownField, "unknown_field"},
		{extension.ErrReadOnly, "read_only"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, errorType(tt.err), tt.err.Error())
	}
}

func TestRecoverPanic(t *testing.T) {
	var recovered interface{}
	func() {
		defer RecoverPanicWithCallback(NewLogger("error", nil), "test", func(r interface{}) { recovered = r })
		panic("boom")
	}()
	assert.Equal(t, "boom", recovered)

	assert.NoError(t, MustRecover(nil))
	assert.EqualError(t, MustRecover("bad"), "panic: bad")
}
