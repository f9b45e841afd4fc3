package tracing

import (
	"errors"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var blockedKeys = map[attribute.Key]struct{}{
	"tin":          {},
	"buyer.tin":    {},
	"buyer.name":   {},
	"http.url":     {},
	"http.request": {},
}

// tinPattern matches every LHDN TIN shape so identifiers never reach span data.
var tinPattern = regexp.MustCompile(`(?i)\b[CGN]\d{10}\b|\b\d{12}\b`)

// SafeAttributes drops attributes that may carry taxpayer identity.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, blocked := blockedKeys[attr.Key]; blocked {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// SafeError returns err with TINs masked in its message, or nil.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	msg := tinPattern.ReplaceAllString(err.Error(), "[tin]")
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return errors.New(msg)
}
