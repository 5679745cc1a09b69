package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/studydesk/internal/store"
)

// PostgreSQL error codes
const (
	// diskFullCode is raised when the server runs out of disk space.
	diskFullCode = "53100"

	// readOnlyTransactionCode is raised when writing to a hot standby.
	readOnlyTransactionCode = "25006"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and returns nil for
// errors it has no specific mapping for.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == diskFullCode:
			return fmt.Errorf("%w: %v", store.ErrQuotaExceeded, err)
		case pgErr.Code == readOnlyTransactionCode,
			// Class 08: connection exception, class 57: operator intervention.
			strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "57"):
			return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
		}
		return nil
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", store.ErrStorageUnavailable, err)
	}

	return nil
}
