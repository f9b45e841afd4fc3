// Package context carries correlation identifiers through request handling.
package context

import (
	"context"
	"strings"
)

type requestIDKey struct{}
type invoiceNumberKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithInvoiceNumber tags the context with the invoice under evaluation.
func WithInvoiceNumber(ctx context.Context, number string) context.Context {
	number = strings.TrimSpace(number)
	if number == "" {
		return ctx
	}
	return context.WithValue(ctx, invoiceNumberKey{}, number)
}

func InvoiceNumberFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(invoiceNumberKey{}).(string)
	return v
}
