package mysql

import (
	"database/sql"
	"errors"

	mysqldrv "github.com/go-sql-driver/mysql"

	"travel_agency/internal/domain"
)

// MySQL server error numbers we translate.
const (
	errDupEntry        = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errCheckViolated   = 3819
)

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *mysqldrv.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case errDupEntry:
		return &domain.IntegrityError{Kind: domain.IntegrityUnique, Message: me.Message, Err: err}
	case errRowIsReferenced, errNoReferencedRow:
		return &domain.IntegrityError{Kind: domain.IntegrityForeignKey, Message: me.Message, Err: err}
	case errCheckViolated:
		return &domain.IntegrityError{Kind: domain.IntegrityCheck, Message: me.Message, Err: err}
	}
	return err
}
