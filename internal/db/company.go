package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"minitwit/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// CreateCompany inserts a company. A name that already exists yields
// ErrCompanyNameTaken; the unique index decides, not a prior read.
func (s *Store) CreateCompany(ctx context.Context, name string) (*models.Company, error) {
	company := models.Company{Name: name}
	if err := s.gdb.WithContext(ctx).Create(&company).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCompanyNameTaken
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return &company, nil
}

// CompanyByName looks a company up by its display name.
func (s *Store) CompanyByName(ctx context.Context, name string) (*models.Company, error) {
	row, err := s.QueryOne(ctx, `select * from company where company_name = ?`, name)
	if err != nil {
		return nil, fmt.Errorf("company by name: %w", err)
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return &models.Company{
		ID:   row.Int64("company_id"),
		Name: row.String("company_name"),
	}, nil
}

// CompanyNames lists every company name in id order.
func (s *Store) CompanyNames(ctx context.Context) ([]string, error) {
	rows, err := s.Query(ctx, `select company_name from company order by company_id`)
	if err != nil {
		return nil, fmt.Errorf("company names: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.String("company_name"))
	}
	return names, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
