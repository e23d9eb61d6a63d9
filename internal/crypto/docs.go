// crypto package provides the cryptographic checks used when validating PID issuer requests.
//
// these are low level functions - certificate algorithm/curve checks, PEM public key parsing and the ECC hybrid decryption self-test.
// See the validate package for the request level orchestration.
package crypto
