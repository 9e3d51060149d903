package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/branch-roster/internal/roster"
	"github.com/example/branch-roster/internal/testfixtures"
)

func TestAssignmentService_Assign(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine := roster.NewEngine(testfixtures.FirstRand{})

	t.Run("validates start date and day count", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		svc := NewAssignmentService(store, store, engine, nil)

		var vErr *ValidationError
		if _, err := svc.Assign(ctx, AssignParams{Start: "01-08-2025", Days: 7}); !errors.As(err, &vErr) {
			t.Errorf("expected validation error for start, got %v", err)
		}
		if _, err := svc.Assign(ctx, AssignParams{Start: "2025-08-01", Days: 0}); !errors.As(err, &vErr) {
			t.Errorf("expected validation error for days, got %v", err)
		}
	})

	t.Run("refuses to run against an empty registry", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		svc := NewAssignmentService(store, store, engine, nil)

		_, err := svc.Assign(ctx, AssignParams{Start: "2025-08-01", Days: 7})
		if !errors.Is(err, ErrNoEmployees) {
			t.Fatalf("expected ErrNoEmployees, got %v", err)
		}
		if store.ScheduleCount() != 0 {
			t.Errorf("nothing should be saved, found %d schedules", store.ScheduleCount())
		}
	})

	t.Run("assigns and persists every requested day", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		seedRegistry(t, store)
		svc := NewAssignmentService(store, store, engine, nil)

		result, err := svc.Assign(ctx, AssignParams{Start: "2025-08-01", Days: 7})
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if result.End != "2025-08-07" || result.Days != 7 || result.Employees != 4 {
			t.Errorf("unexpected result: %+v", result)
		}
		if store.ScheduleCount() != 7 {
			t.Fatalf("expected 7 saved days, got %d", store.ScheduleCount())
		}

		day, err := store.GetSchedule(ctx, "2025-08-01")
		if err != nil {
			t.Fatalf("get schedule: %v", err)
		}
		if got := len(day.AssignedIDs()) + len(day.Holidays); got != 4 {
			t.Errorf("every employee needs a daily status, covered %d of 4", got)
		}
	})

	t.Run("keeps manual pins when overwrite is off", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		emps := seedRegistry(t, store)
		svc := NewAssignmentService(store, store, engine, nil)

		pinned := roster.NewDaySchedule("2025-08-01")
		pinned.Working[roster.BranchB] = []int{emps[0].ID, emps[1].ID}
		if err := store.PutSchedule(ctx, pinned); err != nil {
			t.Fatalf("pin: %v", err)
		}

		if _, err := svc.Assign(ctx, AssignParams{Start: "2025-08-01", Days: 1}); err != nil {
			t.Fatalf("assign: %v", err)
		}

		day, err := store.GetSchedule(ctx, "2025-08-01")
		if err != nil {
			t.Fatalf("get schedule: %v", err)
		}
		if day.Working[roster.BranchB][0] != emps[0].ID || day.Working[roster.BranchB][1] != emps[1].ID {
			t.Errorf("pinned roster disturbed: %v", day.Working[roster.BranchB])
		}
	})

	t.Run("skips closed days without touching them", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		seedRegistry(t, store)
		svc := NewAssignmentService(store, store, engine, nil)

		closed := roster.NewDaySchedule("2025-08-02")
		closed.Closed = true
		closed.Memo = "building maintenance"
		if err := store.PutSchedule(ctx, closed); err != nil {
			t.Fatalf("store closed day: %v", err)
		}

		if _, err := svc.Assign(ctx, AssignParams{Start: "2025-08-01", Days: 3}); err != nil {
			t.Fatalf("assign: %v", err)
		}

		day, err := store.GetSchedule(ctx, "2025-08-02")
		if err != nil {
			t.Fatalf("get schedule: %v", err)
		}
		if !day.Closed || len(day.AssignedIDs()) != 0 || len(day.Holidays) != 0 || day.Memo != "building maintenance" {
			t.Errorf("closed day was modified: %+v", day)
		}
	})
}
