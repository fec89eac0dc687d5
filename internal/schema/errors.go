package schema

// schemaError reports a malformed flag catalog. Load failures are fatal for
// the caller; a registry is never partially constructed.
type schemaError struct{ msg string }

func (e schemaError) Error() string { return "schema: " + e.msg }

func errSchema(msg string) error { return schemaError{msg: msg} }

// IsSchemaError reports whether err indicates a malformed flag catalog.
func IsSchemaError(err error) bool {
	_, ok := err.(schemaError)
	return ok
}
