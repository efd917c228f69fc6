package domain

import "fmt"

// TransportError means the document could not be retrieved: the connection
// failed, the body could not be read, or the server answered with an error status.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means the body was retrieved but is not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError means a required field of the root or category document is
// missing or has the wrong shape.
type SchemaError struct {
	URL   string
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema error in %s: field %q: %v", e.URL, e.Field, e.Err)
	}
	return fmt.Sprintf("schema error in %s: field %q missing", e.URL, e.Field)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
