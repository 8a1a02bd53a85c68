package reconciler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testReconciler struct {
	lock           sync.Mutex
	resyncCount    int
	reconciledIds  []string
	resyncSignalAt int
	resyncSignal   chan bool
}

func (t *testReconciler) Name() string {
	return "test"
}

func (t *testReconciler) Resync(_ context.Context, queue *ReconcileQueue[string]) {
	t.lock.Lock()
	t.resyncCount++
	count := t.resyncCount
	t.lock.Unlock()

	queue.Add("alpha")
	queue.Add("beta")

	if count == t.resyncSignalAt {
		t.resyncSignal <- true
	}
}

func (t *testReconciler) Reconcile(_ context.Context, items []ReconcileItem[string]) {
	t.lock.Lock()
	defer t.lock.Unlock()
	for _, item := range items {
		t.reconciledIds = append(t.reconciledIds, item.ID)
		item.Callback(nil)
	}
}

var _ Reconciler[string] = &testReconciler{}

func TestManagerStartFinish(t *testing.T) {
	config, err := NewConfig(10*time.Millisecond, 1, 2)
	assert.NoError(t, err)

	r := &testReconciler{
		resyncSignal:   make(chan bool),
		resyncSignalAt: 5,
	}
	manager := NewManager(context.Background(), config, r)
	manager.Start()
	<-r.resyncSignal
	manager.Finish()

	r.lock.Lock()
	defer r.lock.Unlock()
	assert.GreaterOrEqual(t, r.resyncCount, 5)
	assert.Contains(t, r.reconciledIds, "alpha")
	assert.Contains(t, r.reconciledIds, "beta")
}

func TestQueueDeduplicatesPendingIds(t *testing.T) {
	q := NewReconcileQueue[string]()
	defer func() { q.shutdown <- true }()

	q.Add("alpha")
	q.Add("alpha")
	q.Add("beta")

	assert.Len(t, q.Pending, 2)

	items := q.Pop(10)
	assert.Len(t, items, 2)
	assert.Empty(t, q.Pending)
}

func TestQueueRetriesFailedItems(t *testing.T) {
	q := NewReconcileQueue[string]()
	defer func() { q.shutdown <- true }()

	q.Add("alpha")
	items := q.Pop(1)
	assert.Len(t, items, 1)

	// A failed item moves to the retry set, not back to Pending
	items[0].Callback(assert.AnError)
	q.lock.Lock()
	assert.Empty(t, q.Pending)
	assert.Len(t, q.toRetry, 1)
	q.lock.Unlock()
}
