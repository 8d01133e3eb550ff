package errors

import (
	"net"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied filesystem path for safety before it
// is handed to the layout reader or the report writer.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateListenAddr validates a host:port listen address for the API server.
// An empty host (":8080") is accepted and means all interfaces.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidAddr, "listen address cannot be empty")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidAddr, err, "invalid listen address %q", addr)
	}
	if port == "" {
		return New(ErrCodeInvalidAddr, "listen address %q has no port", addr)
	}

	return nil
}

// ValidateRedisAddr validates a host:port Redis address. Unlike listen
// addresses, the host part is required.
func ValidateRedisAddr(addr string) error {
	if err := ValidateListenAddr(addr); err != nil {
		return New(ErrCodeInvalidAddr, "invalid redis address %q", addr)
	}
	if strings.HasPrefix(addr, ":") {
		return New(ErrCodeInvalidAddr, "redis address %q has no host", addr)
	}
	return nil
}
