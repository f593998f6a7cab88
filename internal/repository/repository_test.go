package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

func contactAt(name string, at time.Time) model.ContactSubmission {
	c := model.NewContactSubmission(name, "a@b.co", "1234567890")
	c.SubmittedAt = at
	return c
}

func TestMemoryContactRepo_ListRecentSortsDescending(t *testing.T) {
	repo := NewMemoryContactRepo()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, offset := range []int{3, 0, 5, 1, 4, 2} {
		c := contactAt(fmt.Sprintf("c%d", offset), base.Add(time.Duration(offset)*time.Minute))
		require.NoError(t, repo.Insert(ctx, &c))
	}

	got, err := repo.ListRecent(ctx, ContactListLimit)
	require.NoError(t, err)
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].SubmittedAt.After(got[i].SubmittedAt), "index %d not strictly descending", i)
	}
	assert.Equal(t, "c5", got[0].Name)
	assert.Equal(t, "c0", got[5].Name)
}

func TestMemoryContactRepo_CapsAt100(t *testing.T) {
	repo := NewMemoryContactRepo()
	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 130; i++ {
		c := contactAt("x", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Insert(ctx, &c))
	}

	got, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, ContactListLimit)
	assert.Equal(t, base.Add(129*time.Second), got[0].SubmittedAt)

	got, err = repo.ListRecent(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, got, ContactListLimit)
}

func TestMemoryStatusRepo_ListKeepsInsertionOrderAndCap(t *testing.T) {
	repo := NewMemoryStatusRepo()
	ctx := context.Background()
	for i := 0; i < 1005; i++ {
		s := model.NewStatusCheck(fmt.Sprintf("client-%d", i))
		require.NoError(t, repo.Insert(ctx, &s))
	}

	got, err := repo.List(ctx, StatusListLimit)
	require.NoError(t, err)
	assert.Len(t, got, StatusListLimit)
	assert.Equal(t, "client-0", got[0].ClientName)
	assert.Equal(t, "client-999", got[999].ClientName)
}

func TestMemoryRepos_ConcurrentInserts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := model.NewContactSubmission("A", "a@b.co", "1234567890")
			_ = store.Contacts.Insert(ctx, &c)
			s := model.NewStatusCheck("c")
			_ = store.Status.Insert(ctx, &s)
		}()
	}
	wg.Wait()

	contacts, err := store.Contacts.ListRecent(ctx, ContactListLimit)
	require.NoError(t, err)
	statuses, err := store.Status.List(ctx, StatusListLimit)
	require.NoError(t, err)
	assert.Len(t, contacts, 50)
	assert.Len(t, statuses, 50)
}

func TestMemoryRepos_CancelledContext(t *testing.T) {
	repo := NewMemoryContactRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := model.NewContactSubmission("A", "a@b.co", "1234567890")
	assert.ErrorIs(t, repo.Insert(ctx, &c), context.Canceled)
	_, err := repo.ListRecent(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_CloseWithoutHandle(t *testing.T) {
	var nilStore *Store
	assert.NoError(t, nilStore.Close(context.Background()))
	assert.NoError(t, NewMemoryStore().Close(context.Background()))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 100, clampLimit(0, 100))
	assert.Equal(t, 100, clampLimit(-3, 100))
	assert.Equal(t, 100, clampLimit(101, 100))
	assert.Equal(t, 7, clampLimit(7, 100))
}

type fakeResult struct {
	n   int64
	err error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.n, f.err }

func TestExecResult(t *testing.T) {
	assert.NoError(t, execResult(fakeResult{n: 1}, nil, "x"))
	assert.ErrorIs(t, execResult(fakeResult{n: 0}, nil, "x"), ErrNotAcknowledged)
	assert.ErrorIs(t, execResult(fakeResult{err: errors.New("driver")}, nil, "x"), ErrNotAcknowledged)

	boom := errors.New("connection refused")
	err := execResult(nil, boom, "contact submission")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotAcknowledged)
}
