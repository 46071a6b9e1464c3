package parser

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/KimGeorgy/bird-migration/geo"
	"github.com/KimGeorgy/bird-migration/structs"
	. "github.com/KimGeorgy/bird-migration/util"
	"golang.org/x/exp/slog"
	_ "modernc.org/sqlite"
)

const DEFAULT_ROUTE_TABLE = "routes"

//*******************************************
// sqlite route table
//*******************************************

func _OpenSQLite(file string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", file+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Loads all routes of a table in insertion order.
//
// Every column besides departure_cell, destination_cell and path is carried
// as metadata.
func LoadRoutesSQLite(ctx context.Context, file string, table string) ([]structs.RouteRecord, error) {
	if table == "" {
		table = DEFAULT_ROUTE_TABLE
	}
	if !_IsIdentifier(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := os.Stat(file); err != nil {
		return nil, fmt.Errorf("route db: %w", err)
	}
	db, err := _OpenSQLite(file)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY rowid", table))
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if err := _CheckRouteColumns(columns); err != nil {
		return nil, err
	}

	records := NewList[structs.RouteRecord](1000)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		record, err := _RecordFromColumns(columns, values)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", records.Length()+1, err)
		}
		records.Add(record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("loaded %v routes from %s", records.Length(), file))
	return records, nil
}

// Writes routes into a new table of the sqlite file, replacing an existing
// table of the same name. Metadata columns are the union over all records.
func WriteRoutesSQLite(ctx context.Context, file string, table string, records []structs.RouteRecord) error {
	if table == "" {
		table = DEFAULT_ROUTE_TABLE
	}
	if !_IsIdentifier(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	meta_set := NewSet[string](10)
	for _, record := range records {
		for name := range record.Metadata {
			if !_IsIdentifier(name) {
				return fmt.Errorf("invalid metadata column %q", name)
			}
			meta_set.Add(name)
		}
	}
	meta_columns := SortedValues(meta_set)

	db, err := _OpenSQLite(file)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	columns := append([]string{COL_DEPARTURE, COL_DESTINATION, COL_PATH}, meta_columns...)
	defs := slices.Clone(columns)
	defs[0] += " TEXT NOT NULL"
	defs[1] += " TEXT NOT NULL"
	defs[2] += " TEXT NOT NULL"
	stmts := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", table),
		fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", ")),
		fmt.Sprintf("CREATE INDEX idx_%s_key ON %s(%s, %s)", table, table, COL_DEPARTURE, COL_DESTINATION),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create route table: %w", err)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, record := range records {
		path, err := json.Marshal(record.Path)
		if err != nil {
			return err
		}
		args := make([]any, 0, len(columns))
		args = append(args, string(record.Departure), string(record.Destination), string(path))
		for _, name := range meta_columns {
			args = append(args, record.Metadata[name])
		}
		if _, err := insert.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert route %s-%s: %w", record.Departure, record.Destination, err)
		}
	}
	return tx.Commit()
}

//*******************************************
// json route table
//*******************************************

// Loads routes from a JSON array of flat objects.
func LoadRoutesJSON(file string) ([]structs.RouteRecord, error) {
	rows, err := ReadJSONFromFile[[]map[string]json.RawMessage](file)
	if err != nil {
		return nil, err
	}
	records := NewList[structs.RouteRecord](len(rows))
	for i, row := range rows {
		record, err := _RecordFromJSON(row)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i+1, err)
		}
		records.Add(record)
	}
	slog.Info(fmt.Sprintf("loaded %v routes from %s", records.Length(), file))
	return records, nil
}

func _RecordFromJSON(row map[string]json.RawMessage) (structs.RouteRecord, error) {
	values := make([]any, 0, len(row))
	columns := make([]string, 0, len(row))
	for name, raw := range row {
		var value any
		if name == COL_PATH && !bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
			value = []byte(raw)
		} else {
			// numbers keep their literal text, cell ids exceed float64 precision
			decoder := json.NewDecoder(bytes.NewReader(raw))
			decoder.UseNumber()
			if err := decoder.Decode(&value); err != nil {
				return structs.RouteRecord{}, fmt.Errorf("column %s: %w", name, err)
			}
		}
		columns = append(columns, name)
		values = append(values, value)
	}
	if err := _CheckRouteColumns(columns); err != nil {
		return structs.RouteRecord{}, err
	}
	return _RecordFromColumns(columns, values)
}

//*******************************************
// utility methods
//*******************************************

func _CheckRouteColumns(columns []string) error {
	found := NewSet[string](len(columns))
	for _, name := range columns {
		found.Add(name)
	}
	for _, name := range []string{COL_DEPARTURE, COL_DESTINATION, COL_PATH} {
		if !found.Contains(name) {
			return fmt.Errorf("missing column %q", name)
		}
	}
	return nil
}

func _RecordFromColumns(columns []string, values []any) (structs.RouteRecord, error) {
	record := structs.RouteRecord{}
	meta := NewDict[string, any](len(columns))
	for i, name := range columns {
		value := values[i]
		switch name {
		case COL_DEPARTURE:
			id, err := _CellIDFromValue(value)
			if err != nil {
				return record, fmt.Errorf("%s: %w", name, err)
			}
			record.Departure = id
		case COL_DESTINATION:
			id, err := _CellIDFromValue(value)
			if err != nil {
				return record, fmt.Errorf("%s: %w", name, err)
			}
			record.Destination = id
		case COL_PATH:
			path, err := _PathFromValue(value)
			if err != nil {
				return record, fmt.Errorf("%s: %w", name, err)
			}
			record.Path = path
		default:
			switch v := value.(type) {
			case []byte:
				value = string(v)
			case json.Number:
				value = _NumberValue(v)
			}
			meta[name] = value
		}
	}
	if len(meta) > 0 {
		record.Metadata = meta
	}
	return record, nil
}

func _CellIDFromValue(value any) (structs.CellID, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty cell id")
		}
		return structs.CellID(v), nil
	case []byte:
		return _CellIDFromValue(string(v))
	case int64:
		return structs.CellID(strconv.FormatInt(v, 10)), nil
	case json.Number:
		text := v.String()
		if !_IsIntegerLiteral(text) {
			return "", fmt.Errorf("cell id %s is not integral", text)
		}
		return structs.CellID(text), nil
	case float64:
		if v != math.Trunc(v) {
			return "", fmt.Errorf("cell id %v is not integral", v)
		}
		return structs.CellID(strconv.FormatInt(int64(v), 10)), nil
	default:
		return "", fmt.Errorf("unsupported cell id %v", value)
	}
}

func _IsIntegerLiteral(text string) bool {
	text = strings.TrimPrefix(text, "-")
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// metadata numbers become int64 when integral, float64 otherwise
func _NumberValue(num json.Number) any {
	if i, err := num.Int64(); err == nil {
		return i
	}
	if f, err := num.Float64(); err == nil {
		return f
	}
	return num.String()
}

// paths are stored as JSON [[lat, lon], ...]
func _PathFromValue(value any) ([]geo.LatLon, error) {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("unsupported path value %v", value)
	}
	var path []geo.LatLon
	if err := json.Unmarshal(data, &path); err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("path has %d points, need at least 2", len(path))
	}
	return path, nil
}

func _IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}
