package crypto

import "errors"

// Error is implemented by every error returned from this package
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

// ErrorCode classifies a CryptoError so callers can pick an outcome without matching on text.
type ErrorCode string

const (
	// ErrCodeValidation: empty, oversized or badly encoded input
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeCertificate: the wallet certificate could not be decoded or parsed
	ErrCodeCertificate ErrorCode = "certificate"

	// ErrCodeKeyManagement: a public or private key is missing, malformed or on the wrong curve
	ErrCodeKeyManagement ErrorCode = "key_management"

	// ErrCodeDecryption: authenticated decryption failed
	ErrCodeDecryption ErrorCode = "decryption"

	// ErrCodeInternal: failures of the underlying crypto primitives or the random source
	ErrCodeInternal ErrorCode = "internal"
)

// CryptoError carries a code, a message and optionally the error that caused it.
type CryptoError struct {
	code    ErrorCode
	message string
	wrapped error
}

func (e *CryptoError) Error() string {
	if e.wrapped == nil {
		return e.message
	}
	return e.message + ": " + e.wrapped.Error()
}

func (e *CryptoError) Code() ErrorCode { return e.code }
func (e *CryptoError) Unwrap() error   { return e.wrapped }

// CodeOf returns the code of the first CryptoError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var cryptoErr *CryptoError
	if errors.As(err, &cryptoErr) {
		return cryptoErr.code
	}
	return ""
}

func newError(code ErrorCode, err error, msg string) error {
	return &CryptoError{code: code, message: msg, wrapped: err}
}

func NewValidationError(msg string) error {
	return newError(ErrCodeValidation, nil, msg)
}

func WrapValidationError(err error, msg string) error {
	return newError(ErrCodeValidation, err, msg)
}

func NewCertificateError(msg string) error {
	return newError(ErrCodeCertificate, nil, msg)
}

func WrapCertificateError(err error, msg string) error {
	return newError(ErrCodeCertificate, err, msg)
}

func NewKeyManagementError(msg string) error {
	return newError(ErrCodeKeyManagement, nil, msg)
}

func WrapKeyManagementError(err error, msg string) error {
	return newError(ErrCodeKeyManagement, err, msg)
}

// NewDecryptionError is for AEAD failures: bad tag, nonce or key
func NewDecryptionError(msg string) error {
	return newError(ErrCodeDecryption, nil, msg)
}

func WrapDecryptionError(err error, msg string) error {
	return newError(ErrCodeDecryption, err, msg)
}

// NewInternalError is for failures that should not happen with valid input, e.g. the random source failing
func NewInternalError(msg string) error {
	return newError(ErrCodeInternal, nil, msg)
}

func WrapInternalError(err error, msg string) error {
	return newError(ErrCodeInternal, err, msg)
}
