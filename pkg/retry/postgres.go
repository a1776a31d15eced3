package retry

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"
)

// Классы и коды ошибок PostgreSQL, после которых повтор имеет смысл
const (
	pgClassConnectionException  pq.ErrorClass = "08"
	pgClassInsufficientResource pq.ErrorClass = "53"
	pgSerializationFailure      pq.ErrorCode  = "40001"
	pgDeadlockDetected          pq.ErrorCode  = "40P01"
	pgAdminShutdown             pq.ErrorCode  = "57P01"
	pgCannotConnectNow          pq.ErrorCode  = "57P03"
)

// IsTransientPostgres определяет временные ошибки PostgreSQL:
// потеря соединения, нехватка ресурсов, конфликт сериализации, дедлок
func IsTransientPostgres(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgAdminShutdown, pgCannotConnectNow:
		return true
	}

	switch pqErr.Code.Class() {
	case pgClassConnectionException, pgClassInsufficientResource:
		return true
	}

	return false
}
