// Package schema reads column metadata of the SQL Server staging table that
// holds the tabular source a load plan is written against.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const defaultSchema = "dbo"

const columnsQuery = `SELECT COLUMN_NAME
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
ORDER BY ORDINAL_POSITION`

// Inspector reads table metadata from SQL Server.
type Inspector struct {
	DB *sql.DB
}

func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{DB: db}
}

// SplitTableName splits "schema.table" into its parts; a bare table name
// is in the dbo schema. Square brackets are stripped.
func SplitTableName(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("table name is required")
	}
	parts := strings.Split(name, ".")
	for i := range parts {
		parts[i] = strings.Trim(strings.TrimSpace(parts[i]), "[]")
	}
	switch len(parts) {
	case 1:
		return defaultSchema, parts[0], nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid table name %q", name)
		}
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("invalid table name %q (want schema.table)", name)
	}
}

// TableColumns returns the column names of table in ordinal order.
func (i *Inspector) TableColumns(ctx context.Context, table string) ([]string, error) {
	schemaName, tableName, err := SplitTableName(table)
	if err != nil {
		return nil, err
	}

	rows, err := i.DB.QueryContext(ctx, columnsQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s.%s: %w", schemaName, tableName, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s.%s not found or has no columns", schemaName, tableName)
	}
	return cols, nil
}
