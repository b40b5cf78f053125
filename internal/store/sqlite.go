package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore keeps the ledger in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite opens or creates the database at dbPath and applies migrations.
func OpenSQLite(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging ledger db: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:     db,
		path:   dbPath,
		logger: applog.WithComponent(logger, applog.ComponentStore),
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the ledger rows.
func (s *SQLiteStore) Load(ctx context.Context) (model.State, error) {
	st, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("ledger database unreadable, starting empty", "path", s.path, "error", err)
		s.quarantine(ctx)
		return model.State{}, fmt.Errorf("%w: %s: %v", model.ErrPersistenceCorrupt, s.path, err)
	}
	return st, nil
}

func (s *SQLiteStore) load(ctx context.Context) (model.State, error) {
	var st model.State

	var goalName string
	var goalAmount int64
	err := s.db.QueryRowContext(ctx,
		"SELECT balance, goal_name, goal_amount FROM ledger_meta WHERE id = 1",
	).Scan(&st.Balance, &goalName, &goalAmount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// fresh database
	case err != nil:
		return model.State{}, fmt.Errorf("reading ledger meta: %w", err)
	}
	if goalAmount != 0 {
		st.Goal = &model.Goal{Name: goalName, Amount: goalAmount}
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, amount, category, timestamp FROM transactions ORDER BY seq")
	if err != nil {
		return model.State{}, fmt.Errorf("reading transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var t model.Transaction
		var kind, ts string
		if err := rows.Scan(&t.ID, &kind, &t.Amount, &t.Category, &ts); err != nil {
			return model.State{}, err
		}
		t.Kind = model.Kind(kind)
		t.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return model.State{}, fmt.Errorf("transaction %s: %w", t.ID, err)
		}
		st.Transactions = append(st.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return model.State{}, err
	}

	if err := st.Validate(); err != nil {
		return model.State{}, err
	}
	return st, nil
}

// Save replaces the stored state inside a single SQL transaction.
func (s *SQLiteStore) Save(ctx context.Context, st model.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(id, seq, kind, amount, category, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range st.Transactions {
		_, err := stmt.ExecContext(ctx,
			t.ID, i, string(t.Kind), t.Amount, t.Category, t.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	var goalName string
	var goalAmount int64
	if st.Goal != nil {
		goalName, goalAmount = st.Goal.Name, st.Goal.Amount
	}
	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO ledger_meta
		(id, balance, goal_name, goal_amount) VALUES (1, ?, ?, ?)`,
		st.Balance, goalName, goalAmount)
	if err != nil {
		return fmt.Errorf("writing ledger meta: %w", err)
	}

	return tx.Commit()
}

// quarantine copies the database aside before the next save rewrites it.
func (s *SQLiteStore) quarantine(ctx context.Context) {
	dst := s.path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		s.logger.Warn("could not copy corrupt database aside", "path", s.path, "error", err)
		return
	}
	s.logger.Warn("corrupt database copied aside", "path", s.path, "copied_to", dst)
}
