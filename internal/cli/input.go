package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	pidcrypto "github.com/information-sharing-networks/pid-validate/internal/crypto"
)

// readInput reads a file, or stdin when path is "-". With base64url set the content is decoded
// the way the wallet sends it as a query parameter.
func readInput(path string, stdin io.Reader, base64url bool, maxSize int64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !base64url {
		return data, nil
	}
	decoded, err := pidcrypto.DecodeBase64URL(strings.TrimSpace(string(data)), maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return decoded, nil
}
