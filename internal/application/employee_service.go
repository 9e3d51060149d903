package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/branch-roster/internal/persistence"
	"github.com/example/branch-roster/internal/roster"
)

// EmployeeRepository captures the persistence interactions needed by the service.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, emp roster.Employee) (roster.Employee, error)
	UpdateEmployee(ctx context.Context, emp roster.Employee) error
	GetEmployee(ctx context.Context, id int) (roster.Employee, error)
	ListEmployees(ctx context.Context) ([]roster.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// EmployeeService orchestrates validation and persistence for registry operations.
type EmployeeService struct {
	employees EmployeeRepository
	logger    *slog.Logger
}

// NewEmployeeService wires dependencies for registry operations.
func NewEmployeeService(employees EmployeeRepository, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, logger: defaultLogger(logger)}
}

// CreateEmployee validates the input before delegating to persistence.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input EmployeeInput) (roster.Employee, error) {
	if s == nil || s.employees == nil {
		return roster.Employee{}, fmt.Errorf("employee repository not configured")
	}

	vErr := &ValidationError{}
	validateEmployeeInput(input, vErr)
	if vErr.HasErrors() {
		return roster.Employee{}, vErr
	}

	created, err := s.employees.CreateEmployee(ctx, employeeFromInput(0, input))
	if err != nil {
		return roster.Employee{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "employee", "create").InfoContext(ctx, "employee created",
		"employee_id", created.ID, "home_branch", string(created.HomeBranch))
	return created, nil
}

// UpdateEmployee replaces the attributes of an existing employee.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int, input EmployeeInput) (roster.Employee, error) {
	if s == nil || s.employees == nil {
		return roster.Employee{}, fmt.Errorf("employee repository not configured")
	}

	vErr := &ValidationError{}
	validateEmployeeInput(input, vErr)
	if vErr.HasErrors() {
		return roster.Employee{}, vErr
	}

	emp := employeeFromInput(id, input)
	if err := s.employees.UpdateEmployee(ctx, emp); err != nil {
		return roster.Employee{}, mapRepoError(err)
	}

	serviceLogger(ctx, s.logger, "employee", "update").InfoContext(ctx, "employee updated", "employee_id", id)
	return emp, nil
}

// GetEmployee retrieves one employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int) (roster.Employee, error) {
	if s == nil || s.employees == nil {
		return roster.Employee{}, fmt.Errorf("employee repository not configured")
	}
	emp, err := s.employees.GetEmployee(ctx, id)
	if err != nil {
		return roster.Employee{}, mapRepoError(err)
	}
	return emp, nil
}

// ListEmployees returns the registry ordered by id.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	if s == nil || s.employees == nil {
		return nil, fmt.Errorf("employee repository not configured")
	}
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return employees, nil
}

// DeleteEmployee removes the employee; stored schedules drop the id as well.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int) error {
	if s == nil || s.employees == nil {
		return fmt.Errorf("employee repository not configured")
	}
	if err := s.employees.DeleteEmployee(ctx, id); err != nil {
		return mapRepoError(err)
	}
	serviceLogger(ctx, s.logger, "employee", "delete").InfoContext(ctx, "employee deleted", "employee_id", id)
	return nil
}

func employeeFromInput(id int, input EmployeeInput) roster.Employee {
	return roster.Employee{
		ID:               id,
		Name:             strings.TrimSpace(input.Name),
		Role:             strings.TrimSpace(input.Role),
		Skill:            input.Skill,
		HomeBranch:       input.HomeBranch,
		FixedHolidays:    input.FixedHolidays,
		HolidayRequests:  input.HolidayRequests,
		MinShiftsPerWeek: input.MinShiftsPerWeek,
		MaxShiftsPerWeek: input.MaxShiftsPerWeek,
	}
}

func validateEmployeeInput(input EmployeeInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if !roster.ValidSkill(input.Skill) {
		vErr.add("skill", "skill must be cook or floor")
	}
	if !roster.ValidBranch(input.HomeBranch) {
		vErr.add("home_branch", "home branch must be A or B")
	}
	if input.MinShiftsPerWeek < 0 {
		vErr.add("min_shifts_per_week", "must not be negative")
	}
	if input.MaxShiftsPerWeek < 1 {
		vErr.add("max_shifts_per_week", "must be at least 1")
	} else if input.MinShiftsPerWeek > input.MaxShiftsPerWeek {
		vErr.add("min_shifts_per_week", "must not exceed max shifts per week")
	}
	for _, d := range input.FixedHolidays {
		if d < time.Sunday || d > time.Saturday {
			vErr.add("fixed_holidays", "weekdays must be between 0 (Sunday) and 6 (Saturday)")
			break
		}
	}
	for _, date := range input.HolidayRequests {
		if _, err := time.Parse(roster.DateLayout, date); err != nil {
			vErr.add("holiday_requests", fmt.Sprintf("%s is not a YYYY-MM-DD date", date))
			break
		}
	}
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) || errors.Is(err, persistence.ErrForeignKeyViolation) {
		vErr := &ValidationError{}
		vErr.add("input", "stored constraints rejected the input")
		return vErr
	}
	return err
}
