package requestcontext

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, ctx, WithRequestID(ctx, ""))

	ctx = WithRequestID(ctx, "req-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "req-1", RequestIDOrNew(ctx))
}

func TestRequestIDOrNew_Generates(t *testing.T) {
	first := RequestIDOrNew(context.Background())
	second := RequestIDOrNew(context.Background())

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
