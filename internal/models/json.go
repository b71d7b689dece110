package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap maps a Postgres jsonb column onto a plain map.
type JSONMap map[string]interface{}

// Value implements driver.Valuer. The value is sent as text so lib/pq does
// not encode it as bytea.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}

	return json.Unmarshal(data, m)
}
