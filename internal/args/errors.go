package args

// validationError reports configuration that cannot produce a valid
// invocation. The HTTP layer maps it to 400.
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a validationError.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidation reports whether err indicates bad or missing configuration.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}
