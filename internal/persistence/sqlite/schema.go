package sqlite

// schema is applied idempotently on every Open.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	skill TEXT NOT NULL CHECK (skill IN ('cook', 'floor')),
	home_branch TEXT NOT NULL CHECK (home_branch IN ('A', 'B')),
	fixed_holidays TEXT NOT NULL DEFAULT '',
	holiday_requests TEXT NOT NULL DEFAULT '',
	min_shifts_per_week INTEGER NOT NULL DEFAULT 0,
	max_shifts_per_week INTEGER NOT NULL DEFAULT 6,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	CHECK (min_shifts_per_week <= max_shifts_per_week)
);

CREATE TABLE IF NOT EXISTS schedules (
	date TEXT PRIMARY KEY,
	memo TEXT NOT NULL DEFAULT '',
	closed INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_shifts (
	date TEXT NOT NULL REFERENCES schedules(date) ON DELETE CASCADE,
	branch TEXT NOT NULL CHECK (branch IN ('A', 'B')),
	position INTEGER NOT NULL,
	employee_id INTEGER NOT NULL,
	PRIMARY KEY (date, branch, position),
	UNIQUE (date, employee_id)
);

CREATE TABLE IF NOT EXISTS schedule_holidays (
	date TEXT NOT NULL REFERENCES schedules(date) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	employee_id INTEGER NOT NULL,
	PRIMARY KEY (date, employee_id)
);

CREATE INDEX IF NOT EXISTS ix_schedule_shifts_employee ON schedule_shifts(employee_id);
CREATE INDEX IF NOT EXISTS ix_schedule_holidays_employee ON schedule_holidays(employee_id);

CREATE TABLE IF NOT EXISTS attendance (
	date TEXT NOT NULL,
	employee_id INTEGER NOT NULL,
	clock_in TEXT NOT NULL DEFAULT '',
	clock_out TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (date, employee_id)
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	body TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);
`
