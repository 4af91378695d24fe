package conversation

import (
	"sync"
	"testing"
)

func TestConsumePendingRemoves(t *testing.T) {
	r := NewRegistry()
	r.SetPending(42, &State{Command: "addNote", Step: 1, Name: "groceries"})

	st, ok := r.ConsumePending(42)
	if !ok {
		t.Fatal("expected pending state")
	}
	if st.Command != "addNote" || st.Step != 1 || st.Name != "groceries" {
		t.Fatalf("unexpected state: %+v", st)
	}

	if _, ok := r.ConsumePending(42); ok {
		t.Fatal("state should be consumed exactly once")
	}
}

func TestConsumePendingMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.ConsumePending(7); ok {
		t.Fatal("no state was set")
	}
}

func TestSetPendingReplaces(t *testing.T) {
	r := NewRegistry()
	r.SetPending(1, &State{Command: "addOnceReminder"})
	r.SetPending(1, &State{Command: "removeNote"})

	st, ok := r.ConsumePending(1)
	if !ok || st.Command != "removeNote" {
		t.Fatalf("expected latest state, got %+v ok=%v", st, ok)
	}
}

func TestPendingIsPerChat(t *testing.T) {
	r := NewRegistry()
	r.SetPending(1, &State{Command: "a"})
	r.SetPending(2, &State{Command: "b"})

	if st, _ := r.ConsumePending(2); st == nil || st.Command != "b" {
		t.Fatalf("chat 2 got %+v", st)
	}
	if st, _ := r.ConsumePending(1); st == nil || st.Command != "a" {
		t.Fatalf("chat 1 got %+v", st)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		chat := int64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.SetPending(chat, &State{Command: "x", Step: int(chat)})
			st, ok := r.ConsumePending(chat)
			if !ok || st.Step != int(chat) {
				t.Errorf("chat %d: got %+v ok=%v", chat, st, ok)
			}
		}()
	}
	wg.Wait()
}
