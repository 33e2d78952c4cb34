package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"kanban-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "kanban.sqlite"

// Backend persists whole-state snapshots and the activity log. The state engine never calls it;
// callers load a snapshot at startup and save after each successful mutation.
type Backend interface {
	Load(ctx context.Context) (model.State, error)
	Save(ctx context.Context, st model.State) error
	AppendActivity(ctx context.Context, a model.Activity) error
	ListActivity(ctx context.Context, limit int) ([]model.Activity, error)
}

// Store is the SQLite-backed workspace store rooted at Dir.
type Store struct {
	Dir string
	Log *log.Logger
}

var _ Backend = Store{}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("missing store dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Exists reports whether the workspace database has been created.
func (s Store) Exists() bool {
	_, err := os.Stat(s.sqlitePath())
	return err == nil
}

func (s Store) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.StandardLogger()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness
	// when the TUI and a CLI command touch the same workspace.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	// Positions are the primary keys so that a caller-side duplicate id can still round-trip.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS boards (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			board_pos INTEGER NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (board_pos, position)
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			board_pos INTEGER NOT NULL,
			list_pos INTEGER NOT NULL,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			owner TEXT NOT NULL,
			PRIMARY KEY (board_pos, list_pos, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_id ON tasks(id);`,
		`CREATE TABLE IF NOT EXISTS activity (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the whole-state snapshot. A fresh workspace yields an empty state.
func (s Store) Load(ctx context.Context) (model.State, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.State{}, err
	}
	defer db.Close()

	st := model.State{Boards: []*model.Board{}}

	var modal string
	err = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = 'modal_active'`).Scan(&modal)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.State{}, err
	}
	st.ModalActive = modal == "1"

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM boards ORDER BY position`)
	if err != nil {
		return model.State{}, err
	}
	for rows.Next() {
		b := &model.Board{Lists: []*model.List{}}
		if err := rows.Scan(&b.BoardID, &b.BoardName); err != nil {
			rows.Close()
			return model.State{}, err
		}
		st.Boards = append(st.Boards, b)
	}
	if err := closeRows(rows); err != nil {
		return model.State{}, err
	}

	rows, err = db.QueryContext(ctx, `SELECT board_pos, id, name FROM lists ORDER BY board_pos, position`)
	if err != nil {
		return model.State{}, err
	}
	for rows.Next() {
		var bp int
		l := &model.List{Tasks: []*model.Task{}}
		if err := rows.Scan(&bp, &l.ListID, &l.ListName); err != nil {
			rows.Close()
			return model.State{}, err
		}
		if bp < 0 || bp >= len(st.Boards) {
			rows.Close()
			return model.State{}, fmt.Errorf("list %s references missing board position %d", l.ListID, bp)
		}
		st.Boards[bp].Lists = append(st.Boards[bp].Lists, l)
	}
	if err := closeRows(rows); err != nil {
		return model.State{}, err
	}

	rows, err = db.QueryContext(ctx, `SELECT board_pos, list_pos, id, name, description, owner FROM tasks ORDER BY board_pos, list_pos, position`)
	if err != nil {
		return model.State{}, err
	}
	for rows.Next() {
		var bp, lp int
		t := &model.Task{}
		if err := rows.Scan(&bp, &lp, &t.TaskID, &t.TaskName, &t.TaskDescription, &t.TaskOwner); err != nil {
			rows.Close()
			return model.State{}, err
		}
		if bp < 0 || bp >= len(st.Boards) || lp < 0 || lp >= len(st.Boards[bp].Lists) {
			rows.Close()
			return model.State{}, fmt.Errorf("task %s references missing list position %d/%d", t.TaskID, bp, lp)
		}
		l := st.Boards[bp].Lists[lp]
		l.Tasks = append(l.Tasks, t)
	}
	if err := closeRows(rows); err != nil {
		return model.State{}, err
	}

	s.logger().WithFields(log.Fields{"dir": s.Dir, "boards": len(st.Boards)}).Debug("loaded snapshot")
	return st, nil
}

// Save replaces the stored snapshot with st in one transaction.
func (s Store) Save(ctx context.Context, st model.State) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all strategy: snapshots are small and this keeps positions trivially consistent.
	for _, t := range []string{"boards", "lists", "tasks"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES('modal_active', ?)`, boolToStr(st.ModalActive)); err != nil {
		return err
	}

	tasks := 0
	for bp, b := range st.Boards {
		if _, err := tx.ExecContext(ctx, `INSERT INTO boards(position, id, name) VALUES(?, ?, ?)`, bp, b.BoardID, b.BoardName); err != nil {
			return err
		}
		for lp, l := range b.Lists {
			if _, err := tx.ExecContext(ctx, `INSERT INTO lists(board_pos, position, id, name) VALUES(?, ?, ?, ?)`, bp, lp, l.ListID, l.ListName); err != nil {
				return err
			}
			for tp, t := range l.Tasks {
				if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(board_pos, list_pos, position, id, name, description, owner) VALUES(?, ?, ?, ?, ?, ?, ?)`,
					bp, lp, tp, t.TaskID, t.TaskName, t.TaskDescription, t.TaskOwner); err != nil {
					return err
				}
				tasks++
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger().WithFields(log.Fields{"dir": s.Dir, "boards": len(st.Boards), "tasks": tasks}).Debug("saved snapshot")
	return nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func boolToStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
