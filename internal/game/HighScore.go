package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const runsTableName = "run_reports"

// RunHistory keeps run summaries in SQLite. It never stores map state.
type RunHistory struct {
	db *sql.DB
}

func OpenRunHistory(dbPath string) (*RunHistory, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history %s: %w", dbPath, err)
	}

	history := &RunHistory{db: db}
	if err := history.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return history, nil
}

func (h *RunHistory) Close() error {
	return h.db.Close()
}

// createTable creates the run_reports table if it does not exist.
func (h *RunHistory) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + runsTableName + ` (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		robot TEXT NOT NULL,
		strategy TEXT NOT NULL,
		start_x INTEGER NOT NULL,
		start_y INTEGER NOT NULL,
		end_x INTEGER NOT NULL,
		end_y INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		attempts INTEGER NOT NULL,
		cleaned INTEGER NOT NULL,
		dirt_remaining INTEGER NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);`

	if _, err := h.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Run history table ensured.")
	return nil
}

func (h *RunHistory) Save(report RunReport) error {
	const insertSQL = `
	INSERT INTO ` + runsTableName + ` (id, scenario, robot, strategy, start_x, start_y, end_x, end_y,
		moves, attempts, cleaned, dirt_remaining, started_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := h.db.Exec(insertSQL,
		report.ID.String(),
		report.Scenario,
		report.Robot,
		report.Strategy,
		report.Start.X, report.Start.Y,
		report.End.X, report.End.Y,
		report.Stats.Moves,
		report.Stats.Attempts,
		report.Stats.Cleaned,
		report.DirtRemaining,
		report.StartedAt.UnixNano(),
		report.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run report for %s: %w", report.Robot, err)
	}
	return nil
}

// Recent returns a page of reports, newest first. Reports started at the
// same instant come back in reverse save order.
func (h *RunHistory) Recent(limit, offset int) ([]RunReport, error) {
	const selectSQL = `
	SELECT id, scenario, robot, strategy, start_x, start_y, end_x, end_y,
		moves, attempts, cleaned, dirt_remaining, started_at, duration_ms
	FROM ` + runsTableName + `
	ORDER BY started_at DESC, rowid DESC
	LIMIT ? OFFSET ?;`

	rows, err := h.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query run reports: %w", err)
	}
	defer rows.Close()

	var reports []RunReport
	for rows.Next() {
		var (
			report     RunReport
			id         string
			startedAt  int64
			durationMs int64
		)
		err := rows.Scan(&id, &report.Scenario, &report.Robot, &report.Strategy,
			&report.Start.X, &report.Start.Y, &report.End.X, &report.End.Y,
			&report.Stats.Moves, &report.Stats.Attempts, &report.Stats.Cleaned,
			&report.DirtRemaining, &startedAt, &durationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if report.ID, err = uuid.Parse(id); err != nil {
			log.Warn("Run report has a malformed id", "id", id, "error", err)
		}
		report.StartedAt = time.Unix(0, startedAt).UTC()
		report.Duration = time.Duration(durationMs) * time.Millisecond
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return reports, nil
}

func (h *RunHistory) Count() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + runsTableName + `;`
	var count int
	if err := h.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get run report count: %w", err)
	}
	return count, nil
}
