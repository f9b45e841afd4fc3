package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributes(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/compliance/tin/validate"),
		attribute.String("tin", "C2581473690"),
		attribute.String("buyer.name", "Ali"),
	)
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeError(t *testing.T) {
	assert.Nil(t, SafeError(nil))

	err := SafeError(errors.New("supplier C2581473690 and buyer 880101145678 rejected"))
	require.Error(t, err)
	assert.Equal(t, "supplier [tin] and buyer [tin] rejected", err.Error())
}
