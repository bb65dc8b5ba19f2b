package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys whose values are device secrets. Matching is by
// case-insensitive substring, so "password", "dog_password" and
// "PasswordHex" are all caught.
var sensitiveKeyPatterns = []string{
	"password",
	"passwd",
	"secret",
	"credential",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive replaces the value of a sensitive attribute, whatever
// its kind, and walks groups recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if !IsSensitiveKey(a.Key) {
		return a
	}

	// empty strings carry nothing worth hiding
	if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
		return a
	}
	return slog.String(a.Key, redactedValue)
}

// MaskHex partially masks a hex rendering of device data, keeping the
// first and last four digits. Short values are fully redacted.
func MaskHex(value string) string {
	if len(value) <= 12 {
		return redactedValue
	}
	return value[:4] + "..." + value[len(value)-4:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
