// Package validation provides input validation utilities for scribe handlers.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used by HTTP request schemas and websocket config payloads.
//
// # Struct Tag Validation
//
//	type ConfigPayload struct {
//	    ChunkLengthMS *int `json:"chunk_length_ms" validate:"omitempty,gt=0"`
//	}
//	err := validation.Validate(payload)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("blob", req.Blob)
//	err := v.Validate()
package validation
