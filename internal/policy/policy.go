// Package policy holds the configurable inputs of request validation: the certificate algorithm/curve allow-list,
// the set of supported issuing countries and the error message table.
//
// A Policy is immutable once loaded and is safe to share between goroutines.
package policy

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/information-sharing-networks/pid-validate/internal/crypto"
	"gopkg.in/yaml.v3"
)

// Policy is the effective validation policy
type Policy struct {
	AllowList crypto.AllowList `json:"cert_algorithms"`
	Countries []string         `json:"supported_countries"`
	Messages  map[int]string   `json:"error_messages"`
}

// file mirrors the raw policy YAML file. Sections left out of the file fall back to the defaults.
type file struct {
	CertAlgorithms     map[string][]string `yaml:"cert_algorithms"`
	SupportedCountries []string            `yaml:"supported_countries"`
	ErrorMessages      map[int]string      `yaml:"error_messages"`
}

// Default returns the built-in policy
func Default() *Policy {
	return &Policy{
		AllowList: crypto.AllowList{
			"ecdsa-with-SHA256": {"secp256r1"},
			"ecdsa-with-SHA384": {"secp384r1"},
			"ecdsa-with-SHA512": {"secp521r1"},
		},
		Countries: []string{"FC", "PT", "EE", "CZ", "NL", "LU"},
		Messages: map[int]string{
			11:  "Query with no returnURL.",
			14:  "returnURL not well formed.",
			15:  "Query with no device_publickey.",
			16:  "The device_publickey is not in the correct format.",
			101: "Missing mandatory fields.",
			102: "Country is not supported.",
			103: "Certificate not correctly encoded.",
			104: "Certificate algorithm or curve not supported.",
		},
	}
}

// Load reads a YAML policy file. Sections missing from the file keep their default values;
// error messages are merged per code.
func Load(path string, logger *slog.Logger) (*Policy, error) {
	logger.Debug("Loading policy from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file at %s: %w", path, err)
	}

	return Parse(data)
}

// Parse builds a policy from YAML content (see Load)
func Parse(data []byte) (*Policy, error) {
	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	p := Default()

	if raw.CertAlgorithms != nil {
		p.AllowList = crypto.AllowList(raw.CertAlgorithms)
	}
	if raw.SupportedCountries != nil {
		p.Countries = raw.SupportedCountries
	}
	maps.Copy(p.Messages, raw.ErrorMessages)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the policy is usable
func (p *Policy) Validate() error {
	if len(p.AllowList) == 0 {
		return fmt.Errorf("cert_algorithms must not be empty")
	}
	for algorithm, curves := range p.AllowList {
		if algorithm == "" {
			return fmt.Errorf("cert_algorithms contains an empty algorithm name")
		}
		if len(curves) == 0 {
			return fmt.Errorf("cert_algorithms: algorithm %s has no curves", algorithm)
		}
		if slices.Contains(curves, "") {
			return fmt.Errorf("cert_algorithms: algorithm %s has an empty curve name", algorithm)
		}
	}
	if slices.Contains(p.Countries, "") {
		return fmt.Errorf("supported_countries contains an empty country code")
	}
	return nil
}

// SupportsCountry reports whether credentials can be issued for the country code (exact match)
func (p *Policy) SupportsCountry(code string) bool {
	return slices.Contains(p.Countries, code)
}

// Message returns the error text for code, or an empty string if the code has no entry.
func (p *Policy) Message(code int) string {
	return p.Messages[code]
}

// Fingerprint identifies the effective policy: the SHA-256 of its RFC 8785 canonical JSON form.
func (p *Policy) Fingerprint() (string, error) {
	return crypto.Fingerprint(p)
}

// Encode returns the policy as YAML in the format read by Load
func (p *Policy) Encode() ([]byte, error) {
	out, err := yaml.Marshal(file{
		CertAlgorithms:     p.AllowList,
		SupportedCountries: p.Countries,
		ErrorMessages:      p.Messages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy: %w", err)
	}
	return out, nil
}
