package core

// FieldError is a validation failure on one request field, keyed by its JSON name.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a client input error that the validator tags cannot express,
// like a missing upload or a taken username. It renders as a 400 with one message per field.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err *ValidationError) Error() string {
	switch {
	case err.Err != nil:
		return err.Err.Error()
	case len(err.Fields) > 0:
		return err.Fields[0].Field + ": " + err.Fields[0].Error
	default:
		return "invalid input"
	}
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}
