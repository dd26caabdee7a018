package repository

import "strings"

// The helpers below classify driver errors from both PostgreSQL and the
// sqlite driver used in tests, so constraint failures map to the same
// application error codes in either environment.

// isUniqueViolation checks if a DB error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports
	// "UNIQUE constraint failed".
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isCheckViolation checks if a DB error is a CHECK constraint violation.
func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL check violation SQLSTATE 23514; sqlite reports
	// "CHECK constraint failed".
	return strings.Contains(msg, "check constraint") ||
		strings.Contains(msg, "23514")
}

// isForeignKeyViolation checks if a DB error is a foreign key violation.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL FK violation SQLSTATE 23503; sqlite reports
	// "FOREIGN KEY constraint failed".
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "23503")
}

// isNotNullViolation checks if a DB error is a NOT NULL violation.
func isNotNullViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL not-null violation SQLSTATE 23502; sqlite reports
	// "NOT NULL constraint failed".
	return strings.Contains(msg, "not null constraint") ||
		strings.Contains(msg, "not-null constraint") ||
		strings.Contains(msg, "23502")
}
