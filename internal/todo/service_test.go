package todo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/storage"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("JST", 9*60*60))

func newTestService(t *testing.T) (*TodoService, *storage.MemoryTable[Todo]) {
	t.Helper()
	table := storage.NewMemoryTable[Todo]("todos", AttrID)
	seq := 0
	svc := NewService(table,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return svc, table
}

func ptr[T any](v T) *T { return &v }

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Title: "  Buy milk  ", Description: "**2 litres**"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "**2 litres**", created.Description)
	assert.False(t, created.Completed)
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
	assert.True(t, fixedNow.Equal(created.CreatedAt))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateDefaultsWithRealGenerators(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemoryTable[Todo]("todos", AttrID))

	before := time.Now()
	a, err := svc.Create(ctx, CreateInput{Title: "a"})
	require.NoError(t, err)
	assert.False(t, a.CreatedAt.Before(before.UTC()), "created_at %s precedes call time %s", a.CreatedAt, before)
	assert.False(t, a.CreatedAt.After(time.Now()))
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
	b, err := svc.Create(ctx, CreateInput{Title: "b"})
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "", a.Description)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			svc, _ := newTestService(t)

			_, err := svc.Create(ctx, CreateInput{Title: title})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), "title")

			todos, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, todos, "nothing is persisted on validation failure")
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		patch Patch
		want  func(orig Todo) Todo
	}{
		{
			name:  "toggle completed leaves other fields",
			patch: Patch{Completed: ptr(true)},
			want: func(orig Todo) Todo {
				orig.Completed = true
				return orig
			},
		},
		{
			name:  "title is trimmed",
			patch: Patch{Title: ptr("  Walk dog ")},
			want: func(orig Todo) Todo {
				orig.Title = "Walk dog"
				return orig
			},
		},
		{
			name:  "description can be cleared",
			patch: Patch{Description: ptr("")},
			want: func(orig Todo) Todo {
				orig.Description = ""
				return orig
			},
		},
		{
			name:  "all fields",
			patch: Patch{Title: ptr("t"), Description: ptr("d"), Completed: ptr(true)},
			want: func(orig Todo) Todo {
				orig.Title, orig.Description, orig.Completed = "t", "d", true
				return orig
			},
		},
		{
			name:  "empty patch returns current",
			patch: Patch{},
			want:  func(orig Todo) Todo { return orig },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			orig, err := svc.Create(ctx, CreateInput{Title: "Feed cat", Description: "twice"})
			require.NoError(t, err)

			got, err := svc.Update(ctx, orig.ID, tt.patch)
			require.NoError(t, err)

			want := tt.want(orig)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Description, got.Description)
			assert.Equal(t, want.Completed, got.Completed)
			assert.True(t, orig.CreatedAt.Equal(got.CreatedAt), "created_at never changes")

			stored, err := svc.Get(ctx, orig.ID)
			require.NoError(t, err)
			assert.Equal(t, got.Title, stored.Title)
			assert.Equal(t, got.Completed, stored.Completed)
		})
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	orig, err := svc.Create(ctx, CreateInput{Title: "keep"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, orig.ID, Patch{Title: ptr("  "), Completed: ptr(true)})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	stored, err := svc.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", stored.Title)
	assert.False(t, stored.Completed, "rejected patch applies nothing")
}

func TestMissingIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Get(ctx, "nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), `todo "nope"`)

	_, err = svc.Update(ctx, "nope", Patch{Completed: ptr(true)})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = svc.Update(ctx, "nope", Patch{})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = svc.Delete(ctx, "nope")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos, "update of a missing id does not create it")
}

func TestBlankIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Get(ctx, " ")
	assert.True(t, errors.Is(err, errors.ErrValidation))
	_, err = svc.Update(ctx, "", Patch{})
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.True(t, errors.Is(svc.Delete(ctx, ""), errors.ErrValidation))
}

func TestListCountAfterCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	const n, m = 7, 3
	ids := make([]string, 0, n)
	for i := range n {
		created, err := svc.Create(ctx, CreateInput{Title: fmt.Sprintf("todo %d", i)})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	for _, id := range ids[:m] {
		require.NoError(t, svc.Delete(ctx, id))
	}

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, n-m)

	_, err = svc.Get(ctx, ids[0])
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = svc.Delete(ctx, ids[0])
	assert.True(t, errors.Is(err, errors.ErrNotFound), "second delete is not idempotent")
}

func TestStoreFailurePassesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc, _ := newTestService(t)

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, errors.ErrNotFound))
}
