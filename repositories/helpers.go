package repositories

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
)

// RemoteAPI: часть apiclient.Client, которой пользуются удаленные репозитории.
type RemoteAPI interface {
	Get(ctx context.Context, path string, query url.Values, dst any) error
	Post(ctx context.Context, path string, body, dst any) error
	Put(ctx context.Context, path string, body, dst any) error
	Delete(ctx context.Context, path string, dst any) error
	Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
}

// SQLExecutor позволяет выполнять запросы архива на *sql.DB или внутри *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

func tournamentPath(tournamentID int, suffix string) string {
	return fmt.Sprintf("/tournaments/%d%s", tournamentID, suffix)
}

func matchPath(matchID int, suffix string) string {
	return fmt.Sprintf("/matches/%d%s", matchID, suffix)
}

// isJSONArray reports whether payload is a JSON array.
func isJSONArray(payload json.RawMessage) bool {
	payload = bytes.TrimSpace(payload)
	return len(payload) > 0 && payload[0] == '['
}

// decodeList декодирует payload в срез; не-массив превращается в пустой список.
// Элементы разбираются по одному, ошибка называет индекс.
func decodeList[T any](payload json.RawMessage) ([]T, error) {
	if !isJSONArray(payload) {
		return []T{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	items := make([]T, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal(item, &items[i]); err != nil {
			return nil, fmt.Errorf("decode list item %d: %w", i, err)
		}
	}
	return items, nil
}
