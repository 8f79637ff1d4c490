package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldEndpoint  = "endpoint"
	FieldMethod    = "method"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldEntryID   = "entry_id"
	FieldVehicleNo = "vehicle_no"
	FieldUserID    = "user_id"
	FieldEmail     = "email"
	FieldFY        = "financial_year"
	FieldCacheAge  = "cache_age"
	FieldRowCount  = "row_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentAPI     = "api"
	ComponentSession = "session"
	ComponentStore   = "store"
	ComponentGuard   = "guard"
	ComponentEntries = "entries"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpLogin      = "login"
	OpRegister   = "register"
	OpLogout     = "logout"
	OpRefresh    = "refresh"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpList       = "list"
	OpExport     = "export"
	OpRevalidate = "revalidate"
)
