package repository_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/repository"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	getErr  error
	setErr  error
	setCall int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.setCall++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func newStore(kv repository.KVRepository) *repository.RecordStore {
	return repository.NewRecordStore(kv, "employees", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func emp(name string) domain.Employee {
	return domain.Employee{Name: name, Phone: "1234567890"}
}

func names(list []domain.Employee) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}

func TestRecordStore_LoadFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		getErr error
	}{
		{name: "missing key"},
		{name: "not json", stored: ptr("{{not json")},
		{name: "object instead of list", stored: ptr(`{"name":"Jane"}`)},
		{name: "list of scalars", stored: ptr(`[1,2,3]`)},
		{name: "null", stored: ptr("null")},
		{name: "list of nulls", stored: ptr("[null,null]")},
		{name: "read error", getErr: errors.New("disk gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFakeKV()
			kv.getErr = tt.getErr
			if tt.stored != nil {
				kv.data["employees"] = *tt.stored
			}

			store := newStore(kv)
			store.Load(context.Background())

			assert.NotNil(t, store.Records())
			assert.Empty(t, store.Records())
		})
	}
}

func TestRecordStore_LoadToleratesMissingOptionalFields(t *testing.T) {
	kv := newFakeKV()
	kv.data["employees"] = `[{"name":"Jane","phone":"1234567890","email":null,"documents":null}]`

	store := newStore(kv)
	store.Load(context.Background())

	require.Equal(t, 1, store.Len())
	got, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, "", got.Email)
	assert.Nil(t, got.Documents)
}

func TestRecordStore_LoadSkipsNullEntries(t *testing.T) {
	kv := newFakeKV()
	kv.data["employees"] = `[null,{"name":"Jane","phone":"1234567890"},null]`

	store := newStore(kv)
	store.Load(context.Background())

	require.Equal(t, 1, store.Len())
	got, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
}

func TestRecordStore_PrependPersistsNewestFirst(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := newStore(kv)
	store.Load(ctx)

	require.NoError(t, store.Prepend(ctx, emp("first")))
	require.NoError(t, store.Prepend(ctx, emp("second")))

	assert.Equal(t, []string{"second", "first"}, names(store.Records()))

	reloaded := newStore(kv)
	reloaded.Load(ctx)
	if diff := cmp.Diff(store.Records(), reloaded.Records()); diff != "" {
		t.Errorf("persisted list differs (-memory +stored):\n%s", diff)
	}
}

func TestRecordStore_UpdateAt(t *testing.T) {
	ctx := context.Background()
	store := newStore(newFakeKV())
	require.NoError(t, store.ReplaceAll(ctx, []domain.Employee{emp("a"), emp("b"), emp("c")}))

	require.NoError(t, store.UpdateAt(ctx, 1, emp("B")))
	assert.Equal(t, []string{"a", "B", "c"}, names(store.Records()))

	err := store.UpdateAt(ctx, 3, emp("x"))
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	err = store.UpdateAt(ctx, -1, emp("x"))
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, []string{"a", "B", "c"}, names(store.Records()))
}

func TestRecordStore_RemoveAtShiftsFollowing(t *testing.T) {
	ctx := context.Background()
	store := newStore(newFakeKV())
	require.NoError(t, store.ReplaceAll(ctx, []domain.Employee{emp("a"), emp("b"), emp("c")}))

	require.NoError(t, store.RemoveAt(ctx, 0))
	assert.Equal(t, []string{"b", "c"}, names(store.Records()))

	assert.ErrorIs(t, store.RemoveAt(ctx, 2), domain.ErrRecordNotFound)
	assert.Equal(t, 2, store.Len())
}

func TestRecordStore_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	store := newStore(kv)
	store.Load(ctx)

	kv.setErr = errors.New("quota exceeded")
	err := store.Prepend(ctx, emp("unsaved"))

	assert.ErrorIs(t, err, domain.ErrPersistFailed)
	assert.Equal(t, []string{"unsaved"}, names(store.Records()))
	assert.True(t, store.Pending())
	_, stored := kv.data["employees"]
	assert.False(t, stored)

	kv.setErr = nil
	require.NoError(t, store.Flush(ctx))
	assert.False(t, store.Pending())
	assert.Contains(t, kv.data["employees"], "unsaved")
}

func TestRecordStore_SanitizesNegativeNumbers(t *testing.T) {
	ctx := context.Background()
	store := newStore(newFakeKV())

	bad := emp("neg")
	bad.Salary = -10
	bad.Experience = -1
	require.NoError(t, store.Prepend(ctx, bad))

	got, err := store.At(0)
	require.NoError(t, err)
	assert.Zero(t, got.Salary)
	assert.Zero(t, got.Experience)
}

func TestRecordStore_NotifiesObservers(t *testing.T) {
	ctx := context.Background()
	store := newStore(newFakeKV())

	var seen [][]string
	store.Observe().Subscribe(func(list []domain.Employee) {
		seen = append(seen, names(list))
	})

	require.NoError(t, store.Prepend(ctx, emp("a")))
	require.NoError(t, store.RemoveAt(ctx, 0))
	_ = store.RemoveAt(ctx, 0)

	assert.Equal(t, [][]string{{"a"}, {}}, seen)
}

func TestRecordStore_RecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := newStore(newFakeKV())
	withDocs := emp("a")
	withDocs.Documents = []domain.Document{{Name: "x", Size: 1}}
	require.NoError(t, store.Prepend(ctx, withDocs))

	list := store.Records()
	list[0].Documents[0].Name = "changed"

	got, err := store.At(0)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Documents[0].Name)
}

func ptr(s string) *string { return &s }
