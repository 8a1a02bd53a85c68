package cache

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/atlasml/alignsync/internal/align"
)

// Key identifies one source's cached aligned table.
type Key struct {
	Source string
	Path   string
}

// Store gates the fetch/densify/merge pipeline: a hit replays the snapshot
// instead of re-fetching. The cache is never invalidated automatically.
type Store interface {
	Lookup(key Key) (*align.Table, bool, error)
	Store(key Key, table *align.Table) error
}

type CSVStore struct {
	fs afero.Fs
}

var _ Store = &CSVStore{}

func NewCSVStore(fs afero.Fs) *CSVStore {
	return &CSVStore{fs: fs}
}

func (s *CSVStore) Lookup(key Key) (*align.Table, bool, error) {
	exists, err := afero.Exists(s.fs, key.Path)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}

	file, err := s.fs.Open(key.Path)
	if err != nil {
		return nil, false, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return align.NewTable(), true, nil
	}

	header := records[0]
	table := align.NewTable()
	for _, column := range header[1:] {
		table.AddColumn(column)
	}

	for _, record := range records[1:] {
		step, ok := align.CoerceStep(record[0])
		if !ok {
			log.Debugf("skipping cached row with unparseable step %q in %s", record[0], key.Path)
			continue
		}
		for i, field := range record[1:] {
			if i >= len(header)-1 {
				break
			}
			table.Set(step, header[i+1], decodeCell(field))
		}
	}

	return table, true, nil
}

func (s *CSVStore) Store(key Key, table *align.Table) error {
	if dir := filepath.Dir(key.Path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := s.fs.Create(key.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := table.Columns()

	header := append([]string{"step"}, columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, step := range table.Steps() {
		record := make([]string, 0, len(header))
		record = append(record, strconv.FormatInt(step, 10))
		for _, column := range columns {
			record = append(record, encodeCell(table.Cell(step, column)))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// encodeCell flattens a cell to one CSV field: empty cells to the empty
// field, collided cells to a JSON array, scalars verbatim.
func encodeCell(cell align.Cell) string {
	if cell.IsEmpty() {
		return ""
	}
	if cell.IsMany() {
		encoded, err := json.Marshal(cell.Values())
		if err != nil {
			return ""
		}
		return string(encoded)
	}

	value, _ := cell.Value()
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func decodeCell(field string) align.Cell {
	if field == "" {
		return align.EmptyCell()
	}
	if strings.HasPrefix(field, "[") {
		var values []interface{}
		if err := json.Unmarshal([]byte(field), &values); err == nil {
			return align.NewCell(values)
		}
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return align.SingleCell(f)
	}
	return align.SingleCell(field)
}
