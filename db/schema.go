package db

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema holds the DDL for every table the tools load into.
//
//go:embed schema.sql
var Schema string

// InitSchema creates any missing tables and indexes. It is idempotent.
func InitSchema(ctx context.Context, conn DBTX) error {
	if _, err := conn.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}
