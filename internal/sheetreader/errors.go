package sheetreader

import (
	"fjacquet/stmt-categorizer/internal/parsererror"
)

func decodeError(format Format, err error) error {
	return &parsererror.DecodeError{Format: string(format), Err: err}
}
