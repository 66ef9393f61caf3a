// Package common defines shared sentinel errors used across taskpad
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Import/export errors. Imported content must be a JSON array of tasks.
	ErrImportFormat = errors.New("invalid file format")
)
