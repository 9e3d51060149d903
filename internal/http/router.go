package http

import (
	"net/http"
	"strconv"
	"strings"
)

type RouterConfig struct {
	Employees   *EmployeeHandler
	Schedules   *ScheduleHandler
	Assignments *AssignmentHandler
	Attendance  *AttendanceHandler
	Middleware  []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Employees != nil {
		mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.List(w, r)
			case http.MethodPost:
				cfg.Employees.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/employees/", func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/employees/"))
			if err != nil {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithEmployeeID(r.Context(), id))
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.Get(w, r)
			case http.MethodPut:
				cfg.Employees.Update(w, r)
			case http.MethodDelete:
				cfg.Employees.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Schedules != nil {
		mux.HandleFunc("/schedules/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/schedules/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			date, sub, _ := strings.Cut(rest, "/")
			r = r.WithContext(ContextWithDate(r.Context(), date))

			switch sub {
			case "":
				switch r.Method {
				case http.MethodGet:
					cfg.Schedules.GetDay(w, r)
				case http.MethodPut:
					cfg.Schedules.PutDay(w, r)
				case http.MethodDelete:
					cfg.Schedules.DeleteDay(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case "memo":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Schedules.UpdateMemo(w, r)
			case "closed":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Schedules.SetClosed(w, r)
			default:
				http.NotFound(w, r)
			}
		})
		mux.HandleFunc("/months/", func(w http.ResponseWriter, r *http.Request) {
			yearMonth := strings.TrimPrefix(r.URL.Path, "/months/")
			if yearMonth == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Schedules.Month(w, r, yearMonth)
		})
		mux.HandleFunc("/note", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Schedules.GetNote(w, r)
			case http.MethodPut:
				cfg.Schedules.SaveNote(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Assignments != nil {
		mux.HandleFunc("/assignments", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Assignments.Assign(w, r)
		})
	}

	if cfg.Attendance != nil {
		mux.HandleFunc("/attendance/punch-in", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Attendance.PunchIn(w, r)
		})
		mux.HandleFunc("/attendance/punch-out", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Attendance.PunchOut(w, r)
		})
		mux.HandleFunc("/attendance/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/attendance/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}
			date, sub, _ := strings.Cut(rest, "/")
			r = r.WithContext(ContextWithDate(r.Context(), date))

			if sub == "" {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Attendance.ListDay(w, r)
				return
			}

			employeeID, err := strconv.Atoi(sub)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithEmployeeID(r.Context(), employeeID))
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			cfg.Attendance.Adjust(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
