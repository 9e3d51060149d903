package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/branch-roster/internal/testfixtures"
)

func TestAttendanceService_Punch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stamps the wall clock on punch in and out", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		emps := seedRegistry(t, store)
		clock := testfixtures.NewClock(time.Date(2025, time.August, 1, 9, 12, 0, 0, time.UTC))
		svc := NewAttendanceService(store, store, clock.NowFunc(), nil)

		rec, err := svc.PunchIn(ctx, emps[0].ID)
		if err != nil {
			t.Fatalf("punch in: %v", err)
		}
		if rec.Date != "2025-08-01" || rec.ClockIn != "09:12" {
			t.Errorf("unexpected record: %+v", rec)
		}

		clock.Advance(9 * time.Hour)
		rec, err = svc.PunchOut(ctx, emps[0].ID)
		if err != nil {
			t.Fatalf("punch out: %v", err)
		}
		if rec.ClockIn != "09:12" || rec.ClockOut != "18:12" {
			t.Errorf("unexpected record: %+v", rec)
		}
	})

	t.Run("keeps the first punch of the day", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		emps := seedRegistry(t, store)
		clock := testfixtures.NewClock(time.Date(2025, time.August, 1, 8, 55, 0, 0, time.UTC))
		svc := NewAttendanceService(store, store, clock.NowFunc(), nil)

		if _, err := svc.PunchIn(ctx, emps[0].ID); err != nil {
			t.Fatalf("punch in: %v", err)
		}
		clock.Advance(30 * time.Minute)
		rec, err := svc.PunchIn(ctx, emps[0].ID)
		if err != nil {
			t.Fatalf("second punch in: %v", err)
		}
		if rec.ClockIn != "08:55" {
			t.Errorf("second punch overwrote the first: %+v", rec)
		}
	})

	t.Run("rejects punches from unknown employees", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		svc := NewAttendanceService(store, store, nil, nil)

		if _, err := svc.PunchIn(ctx, 404); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAttendanceService_Adjust(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("validates override times", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		emps := seedRegistry(t, store)
		svc := NewAttendanceService(store, store, nil, nil)

		bad := "9am"
		var vErr *ValidationError
		err := svc.Adjust(ctx, "2025-08-01", emps[0].ID, AttendanceAdjustment{ClockIn: &bad})
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("overrides stored punches and clears records", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		emps := seedRegistry(t, store)
		clock := testfixtures.NewClock(time.Date(2025, time.August, 1, 9, 0, 0, 0, time.UTC))
		svc := NewAttendanceService(store, store, clock.NowFunc(), nil)

		if _, err := svc.PunchIn(ctx, emps[0].ID); err != nil {
			t.Fatalf("punch in: %v", err)
		}

		in := "08:45"
		if err := svc.Adjust(ctx, "2025-08-01", emps[0].ID, AttendanceAdjustment{ClockIn: &in}); err != nil {
			t.Fatalf("adjust: %v", err)
		}
		records, err := svc.ListDay(ctx, "2025-08-01")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 1 || records[0].ClockIn != "08:45" {
			t.Errorf("adjust not applied: %+v", records)
		}

		empty := ""
		if err := svc.Adjust(ctx, "2025-08-01", emps[0].ID, AttendanceAdjustment{ClockIn: &empty, ClockOut: &empty}); err != nil {
			t.Fatalf("clear: %v", err)
		}
		records, err = svc.ListDay(ctx, "2025-08-01")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("cleared record still present: %+v", records)
		}
	})
}
