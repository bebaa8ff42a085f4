package domain_test

import (
	"testing"

	"zenith/internal/modules/task/domain"
)

func TestBoardKeepsOrderWithinColumns(t *testing.T) {
	t.Parallel()
	tasks := []domain.Task{
		{ID: "3", Status: domain.StatusDone},
		{ID: "2", Status: domain.StatusTodo},
		{ID: "1", Status: domain.StatusTodo},
		{ID: "0", Status: "Archived"},
	}
	cols := domain.Board(tasks)
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	todo := cols[0].Tasks
	if len(todo) != 3 || todo[0].ID != "2" || todo[1].ID != "1" || todo[2].ID != "0" {
		t.Fatalf("unexpected todo column: %+v", todo)
	}
	if len(cols[1].Tasks) != 0 || len(cols[2].Tasks) != 1 {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}

func TestRecordFocus(t *testing.T) {
	t.Parallel()
	task := domain.Task{PomodorosDone: 2, TotalTimeSpent: 3000}.RecordFocus(1500)
	if task.PomodorosDone != 3 || task.TotalTimeSpent != 4500 {
		t.Fatalf("unexpected counters: %+v", task)
	}
}

func TestParsePriorityDefaultsToMedium(t *testing.T) {
	t.Parallel()
	p, err := domain.ParsePriority("")
	if err != nil || p != domain.PriorityMedium {
		t.Fatalf("expected Medium, got %q (%v)", p, err)
	}
}
