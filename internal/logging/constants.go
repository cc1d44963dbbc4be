package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldRunID      = "run_id"
	FieldEngine     = "engine"
	FieldRow        = "row"
	FieldHeaderRow  = "header_row"
	FieldColumn     = "column"
	FieldRole       = "role"
	FieldCategory   = "category"
	FieldMerchant   = "merchant"
	FieldNarration  = "narration"
	FieldAmount     = "amount"
	FieldCount      = "count"
	FieldStoreKey   = "store_key"
	FieldBackend    = "backend"
	FieldFormat     = "format"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)
