// Package redirect turns a validate.Redirect into the URL the wallet is sent back to.
package redirect

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/information-sharing-networks/pid-validate/internal/validate"
)

// MessageFunc returns the default text for an error code, e.g. (*policy.Policy).Message
type MessageFunc func(code int) string

// BuildURL appends error=<code> and error_str=<message> to the redirect's return URL, keeping any query
// parameters it already has. An error_str field on the redirect replaces the default message; other
// fields are added as extra parameters.
func BuildURL(r validate.Redirect, messages MessageFunc) (string, error) {
	if r.ReturnURL == "" {
		return "", fmt.Errorf("redirect has no return URL")
	}

	u, err := url.Parse(r.ReturnURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse return URL: %w", err)
	}

	q := u.Query()
	q.Set(validate.ParamError, strconv.Itoa(int(r.Code)))

	if messages != nil {
		q.Set(validate.ParamErrorStr, messages(int(r.Code)))
	}
	for _, f := range r.Fields {
		q.Set(f.Name, f.Value)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
