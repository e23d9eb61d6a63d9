package validate

import "fmt"

// Outcome is the result of an orchestrator call: Valid, LocalError or Redirect.
type Outcome interface {
	// Kind is a short label for logs and metrics: valid, local_error or redirect
	Kind() string

	sealed()
}

// Valid means the request may proceed
type Valid struct{}

// LocalError is answered directly with an HTTP status and a plain text body (see Body).
type LocalError struct {
	Code    ErrorCode
	Status  int
	Message string
}

// Field is an extra query parameter appended to a redirect URL
type Field struct {
	Name  string
	Value string
}

// Redirect sends the error back to the wallet's return URL.
// Fields are appended to the URL after the error code, in order.
type Redirect struct {
	Version   string
	ReturnURL string
	Code      ErrorCode
	Fields    []Field
}

func (Valid) Kind() string      { return "valid" }
func (LocalError) Kind() string { return "local_error" }
func (Redirect) Kind() string   { return "redirect" }

func (Valid) sealed()      {}
func (LocalError) sealed() {}
func (Redirect) sealed()   {}

// Body is the response text, e.g. "Error 15: Query with no device_publickey."
func (e LocalError) Body() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}

// Field returns the value of the named extra field
func (r Redirect) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Code returns the error code of o, or 0 for Valid
func Code(o Outcome) ErrorCode {
	switch v := o.(type) {
	case LocalError:
		return v.Code
	case Redirect:
		return v.Code
	default:
		return 0
	}
}
