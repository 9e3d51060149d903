package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/branch-roster/internal/roster"
	"github.com/example/branch-roster/internal/testfixtures"
)

func validEmployeeInput() EmployeeInput {
	return EmployeeInput{
		Name:             "Aiko",
		Skill:            roster.SkillCook,
		HomeBranch:       roster.BranchA,
		MaxShiftsPerWeek: 6,
	}
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists valid input and returns the assigned id", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		svc := NewEmployeeService(store, nil)

		created, err := svc.CreateEmployee(ctx, validEmployeeInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == 0 {
			t.Errorf("expected assigned id, got %d", created.ID)
		}

		got, err := svc.GetEmployee(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Aiko" || got.Skill != roster.SkillCook {
			t.Errorf("attributes lost: %+v", got)
		}
	})

	t.Run("collects field errors for invalid input", func(t *testing.T) {
		t.Parallel()
		svc := NewEmployeeService(testfixtures.NewMemoryStore(), nil)

		input := EmployeeInput{
			Name:             "   ",
			Skill:            "wizard",
			HomeBranch:       "C",
			MinShiftsPerWeek: 5,
			MaxShiftsPerWeek: 2,
			HolidayRequests:  []string{"not-a-date"},
		}
		_, err := svc.CreateEmployee(ctx, input)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		for _, field := range []string{"name", "skill", "home_branch", "min_shifts_per_week", "holiday_requests"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("missing field error for %s: %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("trims whitespace from name and role", func(t *testing.T) {
		t.Parallel()
		svc := NewEmployeeService(testfixtures.NewMemoryStore(), nil)

		input := validEmployeeInput()
		input.Name = "  Aiko  "
		input.Role = " manager "
		created, err := svc.CreateEmployee(ctx, input)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Name != "Aiko" || created.Role != "manager" {
			t.Errorf("expected trimmed fields, got %q / %q", created.Name, created.Role)
		}
	})
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("propagates ErrNotFound for a missing employee", func(t *testing.T) {
		t.Parallel()
		svc := NewEmployeeService(testfixtures.NewMemoryStore(), nil)

		_, err := svc.UpdateEmployee(ctx, 42, validEmployeeInput())
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("replaces stored attributes", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		svc := NewEmployeeService(store, nil)

		created, err := svc.CreateEmployee(ctx, validEmployeeInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		input := validEmployeeInput()
		input.HomeBranch = roster.BranchB
		input.FixedHolidays = []time.Weekday{time.Monday}
		if _, err := svc.UpdateEmployee(ctx, created.ID, input); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := svc.GetEmployee(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.HomeBranch != roster.BranchB || len(got.FixedHolidays) != 1 {
			t.Errorf("update not applied: %+v", got)
		}
	})
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("propagates ErrNotFound for a missing employee", func(t *testing.T) {
		t.Parallel()
		svc := NewEmployeeService(testfixtures.NewMemoryStore(), nil)
		if err := svc.DeleteEmployee(ctx, 7); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("removes the employee from stored schedules", func(t *testing.T) {
		t.Parallel()
		store := testfixtures.NewMemoryStore()
		employees := NewEmployeeService(store, nil)
		schedules := NewScheduleService(store, store, store, nil)

		created, err := employees.CreateEmployee(ctx, validEmployeeInput())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := schedules.PutDay(ctx, "2025-08-01", DayInput{Holidays: []int{created.ID}}); err != nil {
			t.Fatalf("put day: %v", err)
		}

		if err := employees.DeleteEmployee(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		day, err := schedules.GetDay(ctx, "2025-08-01")
		if err != nil {
			t.Fatalf("get day: %v", err)
		}
		if day.Contains(created.ID) {
			t.Errorf("deleted employee still scheduled: %+v", day)
		}
	})
}
