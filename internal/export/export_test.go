package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/saku/internal/model"
)

func sample() []model.Transaction {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return []model.Transaction{
		{ID: "a", Kind: model.Income, Amount: 1000, Timestamp: at},
		{ID: "b", Kind: model.Expense, Amount: 250, Category: "Food", Timestamp: at.Add(time.Hour)},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"csv":   CSV,
		" JSON": JSON,
		"yaml":  YAML,
		"yml":   YAML,
		"XLSX":  XLSX,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.True(t, errors.Is(err, model.ErrInvalidFormat))
	assert.Contains(t, err.Error(), "csv, json, yaml, xlsx")

	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "kind", "amount", "category", "timestamp"}, rows[0])
	assert.Equal(t, []string{"b", "expense", "250", "Food", "2024-03-15T11:00:00Z"}, rows[1])
	assert.Equal(t, []string{"a", "income", "1000", "", "2024-03-15T10:00:00Z"}, rows[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, sample()))

	var got []model.Transaction
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, int64(1000), got[1].Amount)
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, sample()))

	var got []model.Transaction
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, model.Expense, got[0].Kind)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, got[1].Timestamp.Equal(sample()[0].Timestamp))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "timestamp", rows[0][4])
	assert.Equal(t, []string{"b", "expense", "250", "Food", "2024-03-15T11:00:00Z"}, rows[1])
	assert.Equal(t, "1000", rows[2][2])
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("pdf"), sample())
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}
