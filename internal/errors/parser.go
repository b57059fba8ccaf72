package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the parser distinguishes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is the code and human-readable message for a failure.
type ErrorInfo struct {
	Code    string // see codes.go
	Message string // printed to the console
}

// ParseError converts err into a message the console can print.
// Driver details are hidden; the message says what went wrong in terms of the
// action named by context ("place order", "update product", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred.",
		}
	}

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL errors carry a SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := pgErr.ConstraintName + " " + pgErr.ColumnName + " " + pgErr.Message
		switch pgErr.Code {
		case pgUniqueViolation:
			return parseDuplicateKeyError(detail, context)
		case pgForeignKeyViolation:
			return parseForeignKeyError(pgErr.Message+" "+pgErr.Detail, context)
		case pgNotNullViolation:
			return parseNotNullError(detail, context)
		case pgCheckViolation:
			return parseCheckConstraintError(detail, context)
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 3. Message matching covers the SQLite test driver and wrapped errors
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "not null constraint") || strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr, context)
	}
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr, context)
	}

	// 4. Business errors raised by the service layer
	switch {
	case strings.Contains(errStrLower, "insufficient stock"):
		return ErrorInfo{Code: ProductInsufficientStock, Message: "Not enough units are available for this order."}
	case strings.Contains(errStrLower, "unrecognized username"):
		return ErrorInfo{Code: AuthInvalidCredentials, Message: "Unrecognized username or incorrect password entered."}
	case strings.Contains(errStrLower, "nearby radius"):
		return ErrorInfo{Code: StoreNotNear, Message: "That store is not within 30 miles of your location."}
	case strings.Contains(errStrLower, "not the manager"):
		return ErrorInfo{Code: AuthzManagerOnly, Message: "You do not manage this store."}
	case strings.Contains(errStrLower, "store not found"):
		return ErrorInfo{Code: StoreNotFound, Message: "Store not found."}
	case strings.Contains(errStrLower, "product not found"):
		return ErrorInfo{Code: ProductNotFound, Message: "Product not found at this store."}
	case strings.Contains(errStrLower, "warehouse not found"):
		return ErrorInfo{Code: WarehouseNotFound, Message: "Warehouse not found."}
	case strings.Contains(errStrLower, "permission denied"):
		return ErrorInfo{Code: AuthzForbidden, Message: "You are not allowed to do that."}
	}

	// 5. Network and connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") ||
		strings.Contains(errStrLower, "database is closed") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Lost connection to the database. Please try again later.",
		}
	}

	// 6. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError handles unique constraint violations.
func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "users.name") || strings.Contains(errLower, "idx_users_name") {
		return ErrorInfo{
			Code:    AuthNameExists,
			Message: "That user name is already taken.",
		}
	}

	if strings.Contains(errLower, "products.") || strings.Contains(errLower, "products_pkey") {
		return ErrorInfo{
			Code:    ProductNameExists,
			Message: "A product with that name already exists at this store.",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "That record already exists. Please try again.",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "That record already exists.",
	}
}

// parseForeignKeyError handles references to missing or still-referenced rows.
func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Other records still refer to this one.",
		}
	}

	if strings.Contains(errLower, "manager_id") || strings.Contains(errLower, "customer_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{Code: ResourceNotFound, Message: "That user does not exist."}
	}
	if strings.Contains(errLower, "store_id") || strings.Contains(errLower, "fk_stores") {
		return ErrorInfo{Code: StoreNotFound, Message: "That store does not exist."}
	}
	if strings.Contains(errLower, "warehouse_id") {
		return ErrorInfo{Code: WarehouseNotFound, Message: "That warehouse does not exist."}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found.",
	}
}

// parseNotNullError handles missing required columns.
func parseNotNullError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A password is required."}
	}
	if strings.Contains(errLower, "product_name") {
		return ErrorInfo{Code: ValidationRequired, Message: "A product name is required."}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "A name is required."}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing.",
	}
}

// parseCheckConstraintError handles range checks declared on the schema.
func parseCheckConstraintError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "units") {
		return ErrorInfo{
			Code:    ProductInsufficientStock,
			Message: "Unit counts cannot go below zero.",
		}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "Prices cannot be negative.",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "The value entered is not valid.",
	}
}

// getNotFoundMessage picks a not-found message for the action.
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "store"):
		return "Store not found."
	case strings.Contains(contextLower, "user"):
		return "User not found."
	case strings.Contains(contextLower, "product"):
		return "Product not found."
	case strings.Contains(contextLower, "warehouse"):
		return "Warehouse not found."
	}

	return "The requested record could not be found."
}

// getDefaultErrorMessage picks a generic failure message for the action.
func getDefaultErrorMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later."
	}
	return "Could not " + context + ". Please try again later."
}
