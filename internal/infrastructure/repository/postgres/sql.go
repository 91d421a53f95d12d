package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Documents are stored whole as JSONB; filterable fields get their own
// columns and stay authoritative over the blob on read.
func marshalDocument(v any) ([]byte, error) {
	out, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return out, nil
}

func unmarshalDocument(data []byte, v any) error {
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}
