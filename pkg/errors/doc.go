// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidConfig,
//	    "failed to load constraints",
//	    cause,
//	    map[string]any{
//	        "catalogueType": "continuum-island",
//	        "path": path,
//	    },
//	)
//
// CodeOf classifies any error, including VOTABLE validation errors that
// report MALFORMED_TABLE or INVALID_VALUE through the Coder interface.
package errors
