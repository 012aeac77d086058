package trail

import "testing"

func TestCheckpointRestoreReverts(t *testing.T) {
	tr := New()
	a := tr.NewCell(1)
	b := tr.NewCell(2)

	tr.Checkpoint()
	tr.Set(a, 10)
	tr.Set(b, 20)
	if tr.Get(a) != 10 || tr.Get(b) != 20 {
		t.Fatalf("writes did not apply: a=%d b=%d", tr.Get(a), tr.Get(b))
	}
	tr.Restore()
	if tr.Get(a) != 1 || tr.Get(b) != 2 {
		t.Fatalf("restore did not revert: a=%d b=%d", tr.Get(a), tr.Get(b))
	}
}

func TestNestedCheckpoints(t *testing.T) {
	tr := New()
	a := tr.NewCell(0)

	tr.Checkpoint() // frame 1
	tr.Set(a, 1)
	tr.Checkpoint() // frame 2
	tr.Set(a, 2)
	tr.Set(a, 3)
	if tr.Get(a) != 3 {
		t.Fatalf("expected 3, got %d", tr.Get(a))
	}
	tr.Restore() // undo frame 2
	if tr.Get(a) != 1 {
		t.Fatalf("expected 1 after inner restore, got %d", tr.Get(a))
	}
	tr.Restore() // undo frame 1
	if tr.Get(a) != 0 {
		t.Fatalf("expected 0 after outer restore, got %d", tr.Get(a))
	}
}

func TestSetRecordsAtMostOnePriorPerFramePerCell(t *testing.T) {
	tr := New()
	a := tr.NewCell(5)

	tr.Checkpoint()
	for i := 0; i < 50; i++ {
		tr.Set(a, i)
	}
	if len(tr.log) != 1 {
		t.Fatalf("expected exactly one log entry for repeated writes in one frame, got %d", len(tr.log))
	}
	tr.Restore()
	if tr.Get(a) != 5 {
		t.Fatalf("expected restore to original value 5, got %d", tr.Get(a))
	}
}

func TestCheckpointRestoreReuseAtSameDepth(t *testing.T) {
	tr := New()
	a := tr.NewCell(1)

	tr.Checkpoint()
	tr.Set(a, 10)
	tr.Restore()
	if tr.Get(a) != 1 {
		t.Fatalf("expected 1 after first restore, got %d", tr.Get(a))
	}

	tr.Checkpoint() // reopens at the same depth as the frame just popped
	tr.Set(a, 30)
	tr.Restore()
	if tr.Get(a) != 1 {
		t.Fatalf("expected 1 after second restore at reused depth, got %d", tr.Get(a))
	}
}

func TestRestoreWithoutCheckpointPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unbalanced restore")
		}
	}()
	New().Restore()
}

func TestSetSameValueIsNoop(t *testing.T) {
	tr := New()
	a := tr.NewCell(7)
	tr.Checkpoint()
	tr.Set(a, 7)
	if len(tr.log) != 0 {
		t.Fatalf("expected no log entry for a no-op write, got %d", len(tr.log))
	}
	tr.Restore()
}
