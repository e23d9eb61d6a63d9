package crypto

// MaxParameterSize is the maximum allowed size of a base64url encoded request parameter (certificate or public key) before decoding.
var MaxParameterSize int64 = 64 * 1024 // 64KB
