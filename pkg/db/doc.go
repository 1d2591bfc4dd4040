// Package db manages the PostgreSQL connection pool and schema migrations.
//
// Connect retries with linear backoff so app startup survives a database
// that comes up a few seconds later. Migrate and Rollback wrap goose and
// accept any fs.FS, typically an embed.FS holding .sql files.
package db
