// Copyright (c) 2026 Mangabay. All rights reserved.

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/database/schema"
	"github.com/tranquochuy/mangabay/internal/platform/dberr"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// # PostgreSQL Repository

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed account store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var accountColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	schema.UsersAccount.ID,
	schema.UsersAccount.Username,
	schema.UsersAccount.Email,
	schema.UsersAccount.PasswordHash,
	schema.UsersAccount.Role,
	schema.UsersAccount.CreatedAt,
)

func scanAccount(row pgx.Row) (*Account, error) {
	account := &Account{}
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
	}
	return account, nil
}

/*
FindByID returns the account with the given ID.
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns, schema.UsersAccount.Table, schema.UsersAccount.ID)

	return scanAccount(repository.pool.QueryRow(context, query, id))
}

/*
UpdateEmail changes an account's email address.
*/
func (repository *postgresRepository) UpdateEmail(context context.Context, id int64, email string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.UsersAccount.Table, schema.UsersAccount.Email, schema.UsersAccount.ID)

	tag, err := repository.pool.Exec(context, query, email, id)
	if err != nil {
		return dberr.Wrap(err, "This email is already registered")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdatePasswordHash replaces an account's stored password hash.
*/
func (repository *postgresRepository) UpdatePasswordHash(context context.Context, id int64, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.UsersAccount.Table, schema.UsersAccount.PasswordHash, schema.UsersAccount.ID)

	tag, err := repository.pool.Exec(context, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
List returns accounts ordered by username, optionally filtered by a
case-insensitive substring over username and email.
*/
func (repository *postgresRepository) List(context context.Context, search string, limit, offset int) ([]*Account, int, error) {
	var builder strings.Builder
	args := []interface{}{}

	fmt.Fprintf(&builder, `
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s`,
		accountColumns, schema.UsersAccount.Table)

	if search != "" {
		args = append(args, "%"+search+"%")
		fmt.Fprintf(&builder, `
		WHERE %s ILIKE $1 OR %s ILIKE $1`,
			schema.UsersAccount.Username, schema.UsersAccount.Email)
	}

	fmt.Fprintf(&builder, `
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		schema.UsersAccount.Username, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	total := 0
	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, total, rows.Err()
}

/*
SetRole overwrites an account's role.
*/
func (repository *postgresRepository) SetRole(context context.Context, id int64, role sec.UserRole) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.UsersAccount.Table, schema.UsersAccount.Role, schema.UsersAccount.ID)

	tag, err := repository.pool.Exec(context, query, role, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_role_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
DeleteCascade removes an account and everything it owns in one transaction.
The foreign keys carry ON DELETE CASCADE as a backstop, but the ordering
here keeps the removal explicit and observable.
*/
func (repository *postgresRepository) DeleteCascade(context context.Context, id int64) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	children := []struct{ table, column string }{
		{schema.SocialComment.Table, schema.SocialComment.UserID},
		{schema.LibraryBookmark.Table, schema.LibraryBookmark.UserID},
		{schema.LibraryReadingHistory.Table, schema.LibraryReadingHistory.UserID},
	}
	for _, child := range children {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, child.table, child.column)
		if _, err := tx.Exec(context, query, id); err != nil {
			return fmt.Errorf("postgres_account_repo_delete_children_failed: %w", err)
		}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UsersAccount.Table, schema.UsersAccount.ID)
	tag, err := tx.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres_account_repo_delete_commit_failed: %w", err)
	}

	return nil
}

/*
Stats returns catalog and account totals plus the newest accounts.
*/
func (repository *postgresRepository) Stats(context context.Context, newestCount int) (*Stats, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s)`,
		schema.CoreManga.Table,
		schema.CoreChapter.Table,
		schema.UsersAccount.Table,
	)

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query).Scan(
		&stats.MangaCount,
		&stats.ChapterCount,
		&stats.UserCount,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_stats_failed: %w", err)
	}

	newestQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY %s DESC
		LIMIT $1`,
		accountColumns, schema.UsersAccount.Table, schema.UsersAccount.CreatedAt)

	rows, err := repository.pool.Query(context, newestQuery, newestCount)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_stats_newest_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.Email,
			&account.PasswordHash,
			&account.Role,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_account_repo_stats_scan_failed: %w", err)
		}
		stats.NewestUsers = append(stats.NewestUsers, account)
	}

	return stats, rows.Err()
}
