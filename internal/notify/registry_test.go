package notify

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestRegistry_PublishAssignsIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Publish(Success("Saved", "all good"))
	b := r.Publish(Notification{Message: "plain"})

	require.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(string(a))
	assert.NoError(t, err)

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, TypeSuccess, active[0].Type)
	assert.Equal(t, TypeStandard, active[1].Type, "type defaults to standard")
}

func TestRegistry_RepublishReplaces(t *testing.T) {
	r := NewRegistry()
	id := r.Publish(Notification{ID: "fixed", Message: "one"})
	r.Publish(Notification{ID: id, Message: "two"})

	active := r.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)
}

func TestRegistry_SubscribersSeeEveryChange(t *testing.T) {
	r := NewRegistry()
	var first, second []Event
	r.Subscribe(func(e Event) { first = append(first, e) })
	unsub := r.Subscribe(func(e Event) { second = append(second, e) })

	id := r.Publish(Warning("Careful", ""))
	require.True(t, r.Remove(id))
	assert.False(t, r.Remove(id), "already gone")

	require.Len(t, first, 2)
	assert.Equal(t, EventAdded, first[0].Kind)
	assert.Len(t, first[0].Active, 1)
	assert.Equal(t, EventRemoved, first[1].Kind)
	assert.Equal(t, id, first[1].Notification.ID)
	assert.Empty(t, first[1].Active)
	assert.Equal(t, first, second)

	unsub()
	unsub()
	r.Publish(Error("Broken", ""))
	assert.Len(t, first, 3)
	assert.Len(t, second, 2, "unsubscribed observers get nothing")
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	r := NewRegistry()
	var got Event
	r.Subscribe(func(e Event) { got = e })
	r.Publish(Notification{Message: "x"})

	got.Active[0].Message = "changed"
	assert.Equal(t, "x", r.Active()[0].Message)
}

func TestRegistry_ObserverMayCallBack(t *testing.T) {
	r := NewRegistry()
	r.Subscribe(func(e Event) {
		if e.Kind == EventAdded && e.Notification.Type == TypeError {
			r.Remove(e.Notification.ID)
		}
	})

	r.Publish(Error("gone", ""))
	r.Publish(Success("kept", ""))

	active := r.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "kept", active[0].Title)
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Subscribe(func(Event) { calls++ })

	r.Close()
	r.Close()
	assert.Equal(t, ID(""), r.Publish(Notification{Message: "late"}))
	assert.Empty(t, r.Active())
	assert.Equal(t, 0, calls)

	unsub := r.Subscribe(func(Event) { calls++ })
	unsub()
}

func TestRegistry_ConcurrentPublish(t *testing.T) {
	r := NewRegistry()
	var seen atomic.Int64
	r.Subscribe(func(Event) { seen.Inc() })

	const n = 50
	var wg sync.WaitGroup
	ids := make([]ID, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = r.Publish(Notification{Message: "hi"})
		}()
	}
	wg.Wait()

	assert.Len(t, r.Active(), n)
	assert.Equal(t, int64(n), seen.Load())

	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Remove(id)
		}()
	}
	wg.Wait()
	assert.Empty(t, r.Active())
}
