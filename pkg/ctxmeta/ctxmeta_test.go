package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manish-env/shopify-order-tracking/pkg/ctxmeta"
)

func TestWithRequestID_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	got, ok := ctxmeta.RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-123", got)

	_, parentOk := ctxmeta.RequestIDFromContext(parent)
	assert.False(t, parentOk, "родитель не должен получить request_id")
}

func TestWithClientID_IndependentFromRequestID(t *testing.T) {
	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")
	ctx = ctxmeta.WithClientID(ctx, "203.0.113.7")

	cid, ok := ctxmeta.ClientIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "203.0.113.7", cid)

	rid, ok := ctxmeta.RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", rid)
}

func TestWith_EmptyValue_NoChange(t *testing.T) {
	parent := context.Background()
	assert.Equal(t, parent, ctxmeta.WithRequestID(parent, ""))
	assert.Equal(t, parent, ctxmeta.WithClientID(parent, ""))
}

func TestWith_NilCtx(t *testing.T) {
	var nilCtx context.Context
	assert.Nil(t, ctxmeta.WithClientID(nilCtx, "c-1"))

	id, ok := ctxmeta.ClientIDFromContext(nilCtx)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestFromContext_EmptyStoredValue(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxmeta.KeyClientID, "")
	id, ok := ctxmeta.ClientIDFromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestFromContext_ForeignKeyIgnored(t *testing.T) {
	type otherKey struct{}
	ctx := context.WithValue(context.Background(), otherKey{}, "req-xyz")

	_, ok := ctxmeta.RequestIDFromContext(ctx)
	assert.False(t, ok)
	_, ok = ctxmeta.ClientIDFromContext(ctx)
	assert.False(t, ok)
}
