package validate

// errors.go defines the error codes returned to the wallet

import "net/http"

// ErrorCode identifies a validation failure.
//
// Codes below 100 are integrity errors: the request cannot be answered through the wallet's return URL
// and is rejected with a local HTTP error.
// Codes from 101 are business errors and are reported by redirecting to the return URL.
type ErrorCode int

const (
	// ErrCodeNoReturnURL is used when the returnURL parameter is missing
	ErrCodeNoReturnURL ErrorCode = 11

	// ErrCodeMalformedReturnURL is used when returnURL is neither a well formed URL nor has a scheme
	ErrCodeMalformedReturnURL ErrorCode = 14

	// ErrCodeNoDevicePublicKey is used when the device_publickey parameter is missing
	ErrCodeNoDevicePublicKey ErrorCode = 15

	// ErrCodeInvalidDevicePublicKey is used when device_publickey is not a base64url encoded PEM public key
	ErrCodeInvalidDevicePublicKey ErrorCode = 16

	// ErrCodeMissingFields is used when mandatory parameters are missing
	ErrCodeMissingFields ErrorCode = 101

	// ErrCodeUnsupportedCountry is used when the country is not in the supported set
	ErrCodeUnsupportedCountry ErrorCode = 102

	// ErrCodeCertificateEncoding is used when the certificate is missing or not base64url encoded
	ErrCodeCertificateEncoding ErrorCode = 103

	// ErrCodeCertificateAlgorithm is used when the certificate cannot be parsed or its signature
	// algorithm / curve is not in the allow-list
	ErrCodeCertificateAlgorithm ErrorCode = 104
)

// IsLocal reports whether the code is answered with a local HTTP error rather than a redirect
func (c ErrorCode) IsLocal() bool {
	return c < ErrCodeMissingFields
}

// HTTP statuses used for local errors
const (
	StatusIntegrityError = http.StatusBadRequest           // issue routes, codes 11-16
	StatusShowMissing    = http.StatusPartialContent       // show route, missing fields
	StatusShowError      = http.StatusNonAuthoritativeInfo // show route, issuer reported an error
)
