package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineItems holds raw JSON exactly as the client sent it. It is written to
// a text column and echoed back as embedded JSON, never re-encoded.
type LineItems json.RawMessage

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "null", nil
	}
	return string(l), nil
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
	case string:
		*l = LineItems(v)
	case []byte:
		*l = append((*l)[:0], v...)
	default:
		return fmt.Errorf("line items: unsupported column type %T", src)
	}
	return nil
}

func (l LineItems) MarshalJSON() ([]byte, error) {
	if len(l) == 0 {
		return []byte("null"), nil
	}
	return []byte(l), nil
}

func (l *LineItems) UnmarshalJSON(data []byte) error {
	*l = append((*l)[:0], data...)
	return nil
}
