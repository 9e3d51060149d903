// Package http provides HTTP handlers and middleware for the roster API.
//
// The router exposes the following endpoints:
//   - GET /employees, POST /employees, GET /employees/{id}, PUT /employees/{id},
//     DELETE /employees/{id}: registry management exchanging the `employeeDTO`
//     payload defined in employee_handler.go. Deleting an employee also purges
//     the id from stored schedules.
//   - GET /schedules/{date}, PUT /schedules/{date}, DELETE /schedules/{date}:
//     one day of the shift board. GET returns an empty open day for dates that
//     were never stored. PUT /schedules/{date}/memo and
//     PUT /schedules/{date}/closed update one field each; closing a day clears
//     its assignments.
//   - GET /months/{YYYY-MM}: every stored day of the month in date order, each
//     carrying its Sunday-start calendar week ordinal.
//   - POST /assignments: runs the auto-assignment engine over a date range.
//     Body: {"start","days","overwrite","weekly_off_cap"}.
//   - POST /attendance/punch-in, POST /attendance/punch-out: stamp the server
//     clock for the employee in the body. GET /attendance/{date} lists a day's
//     punches, PUT /attendance/{date}/{employee_id} overrides them.
//   - GET /note, PUT /note: the shared free-form note.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
