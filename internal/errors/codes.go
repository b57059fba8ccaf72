package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// The console maps these codes to the diagnostic shown after a failed workflow.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // unknown name or wrong password
	AuthNameExists         = "AUTH_NAME_EXISTS"         // user name taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden   = "AUTHZ_FORBIDDEN"    // role may not run this action
	AuthzManagerOnly = "AUTHZ_MANAGER_ONLY" // store belongs to another manager

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed input
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // out of range
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing value

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // no such row
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate key
	ResourceConflict      = "RESOURCE_CONFLICT"       // still referenced

	// ==================== Stores (STORE_) ====================
	StoreNotFound = "STORE_NOT_FOUND" // no such store
	StoreNotNear  = "STORE_NOT_NEAR"  // outside the nearby radius

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound          = "PRODUCT_NOT_FOUND"          // store does not carry it
	ProductNameExists        = "PRODUCT_NAME_EXISTS"        // rename collides at the store
	ProductInsufficientStock = "PRODUCT_INSUFFICIENT_STOCK" // order exceeds units

	// ==================== Warehouses (WAREHOUSE_) ====================
	WarehouseNotFound = "WAREHOUSE_NOT_FOUND" // no such warehouse

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // storage failure
)
