package session

import (
	"sync"
	"testing"

	"github.com/m3rciful/taskbot/internal/tasks"
)

func TestGetReturnsMainMenuForUnknownUser(t *testing.T) {
	store := NewMemoryStore()
	sess := store.Get(1)
	if sess.Step != StepMainMenu {
		t.Errorf("step = %s, want %s", sess.Step, StepMainMenu)
	}
	if sess.Draft != nil || sess.EditingTaskID != 0 {
		t.Errorf("fresh session carries data: %+v", sess)
	}
}

func TestPutGetRemove(t *testing.T) {
	store := NewMemoryStore()
	store.Put(1, Session{
		Step:  StepAddingDescription,
		Draft: &tasks.Draft{Name: "groceries"},
	})

	sess := store.Get(1)
	if sess.Step != StepAddingDescription {
		t.Errorf("step = %s, want %s", sess.Step, StepAddingDescription)
	}
	if sess.Draft == nil || sess.Draft.Name != "groceries" {
		t.Errorf("draft = %+v, want name groceries", sess.Draft)
	}

	store.Remove(1)
	if got := store.Get(1).Step; got != StepMainMenu {
		t.Errorf("after remove step = %s, want %s", got, StepMainMenu)
	}
}

func TestInProgress(t *testing.T) {
	store := NewMemoryStore()
	if store.InProgress(1) {
		t.Error("unknown user reported in progress")
	}
	store.Put(1, Session{Step: StepMainMenu})
	if store.InProgress(1) {
		t.Error("main menu reported in progress")
	}
	store.Put(1, Session{Step: StepEditingDeadline, EditingTaskID: 5})
	if !store.InProgress(1) {
		t.Error("editing step not reported in progress")
	}
}

func TestCount(t *testing.T) {
	store := NewMemoryStore()
	if store.Count() != 0 {
		t.Errorf("empty store count = %d", store.Count())
	}
	store.Put(1, Session{Step: StepAddingName})
	store.Put(2, Session{Step: StepMainMenu})
	if store.Count() != 2 {
		t.Errorf("count = %d, want 2", store.Count())
	}
	store.Remove(1)
	if store.Count() != 1 {
		t.Errorf("count = %d, want 1", store.Count())
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Put(id, Session{Step: StepAddingName, Draft: &tasks.Draft{}})
			_ = store.Get(id)
			_ = store.InProgress(id)
			store.Remove(id)
		}(int64(i))
	}
	wg.Wait()
}
