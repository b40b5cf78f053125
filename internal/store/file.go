package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	applog "github.com/theirongolddev/saku/internal/log"
	"github.com/theirongolddev/saku/internal/model"
)

// Layouts accepted for persisted timestamps. Zone-less values are read as local time.
const (
	timestampLayout      = time.RFC3339Nano
	naiveTimestampLayout = "2006-01-02T15:04:05.999999999"
)

// FileStore keeps the ledger in a single JSON document.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore returns a JSON file store at path. The file need not exist yet.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: applog.WithComponent(logger, applog.ComponentStore),
	}
}

// fileState is the on-disk record. Balance is a pointer so a file written
// without it can be told apart from a zero balance.
type fileState struct {
	Balance           *int64            `json:"balance"`
	Transactions      []fileTransaction `json:"transactions"`
	SavingsGoalAmount int64             `json:"savingsGoalAmount"`
	SavingsGoalName   string            `json:"savingsGoalName"`
}

type fileTransaction struct {
	ID        string `json:"id,omitempty"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
	Category  string `json:"category,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Load reads the JSON file.
func (f *FileStore) Load(_ context.Context) (model.State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.State{}, nil
		}
		return model.State{}, fmt.Errorf("%w: reading %s: %v", model.ErrPersistenceCorrupt, f.path, err)
	}

	st, err := decodeState(data)
	if err != nil {
		f.quarantine()
		return model.State{}, fmt.Errorf("%w: %s: %v", model.ErrPersistenceCorrupt, f.path, err)
	}
	return st, nil
}

// Save writes the state to a temp file beside the target and renames it into place.
func (f *FileStore) Save(_ context.Context, st model.State) error {
	data, err := json.MarshalIndent(encodeState(st), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }() // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (f *FileStore) Close() error { return nil }

// quarantine moves a corrupt file aside so the next save cannot destroy it.
func (f *FileStore) quarantine() {
	dst := f.path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	if err := os.Rename(f.path, dst); err != nil {
		f.logger.Warn("could not quarantine corrupt data file", "path", f.path, "error", err)
		return
	}
	f.logger.Warn("corrupt data file moved aside", "path", f.path, "moved_to", dst)
}

func decodeState(data []byte) (model.State, error) {
	var raw fileState
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.State{}, fmt.Errorf("parsing json: %w", err)
	}

	st := model.State{
		Transactions: make([]model.Transaction, 0, len(raw.Transactions)),
	}
	for i, rt := range raw.Transactions {
		ts, err := parseTimestamp(rt.Timestamp)
		if err != nil {
			return model.State{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		id := rt.ID
		if id == "" {
			id = uuid.NewString()
		}
		st.Transactions = append(st.Transactions, model.Transaction{
			ID:        id,
			Kind:      model.Kind(rt.Kind),
			Amount:    rt.Amount,
			Category:  rt.Category,
			Timestamp: ts,
		})
	}

	if raw.Balance != nil {
		st.Balance = *raw.Balance
	} else {
		st.Balance = st.SignedSum()
	}
	if raw.SavingsGoalAmount != 0 {
		st.Goal = &model.Goal{Name: raw.SavingsGoalName, Amount: raw.SavingsGoalAmount}
	}

	if err := st.Validate(); err != nil {
		return model.State{}, err
	}
	return st, nil
}

func encodeState(st model.State) fileState {
	balance := st.Balance
	out := fileState{
		Balance:      &balance,
		Transactions: make([]fileTransaction, 0, len(st.Transactions)),
	}
	for _, t := range st.Transactions {
		out.Transactions = append(out.Transactions, fileTransaction{
			ID:        t.ID,
			Kind:      string(t.Kind),
			Amount:    t.Amount,
			Category:  t.Category,
			Timestamp: t.Timestamp.Format(timestampLayout),
		})
	}
	if st.Goal != nil {
		out.SavingsGoalAmount = st.Goal.Amount
		out.SavingsGoalName = st.Goal.Name
	}
	return out
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveTimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return t, nil
}
