package fsops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_BeginAndRelease(t *testing.T) {
	r := NewRegistry()

	ctx, release := r.Begin(context.Background(), "scan")
	assert.True(t, r.Active("scan"))
	assert.NoError(t, ctx.Err())

	release()
	assert.False(t, r.Active("scan"))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestRegistry_CancelLiveOperation(t *testing.T) {
	r := NewRegistry()
	ctx, release := r.Begin(context.Background(), "apply")
	defer release()

	r.Cancel("apply")

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, r.Active("apply"))
}

func TestRegistry_CancelBeforeBegin(t *testing.T) {
	r := NewRegistry()

	r.Cancel("scan")
	ctx, release := r.Begin(context.Background(), "scan")
	defer release()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, r.Active("scan"))
}

func TestRegistry_ReleaseOfReplacedOperationKeepsCurrent(t *testing.T) {
	r := NewRegistry()
	_, firstRelease := r.Begin(context.Background(), "scan")
	ctx, secondRelease := r.Begin(context.Background(), "scan")
	defer secondRelease()

	// releasing the superseded operation must not evict the live one
	firstRelease()

	assert.True(t, r.Active("scan"))
	assert.NoError(t, ctx.Err())
}

func TestRegistry_CancelIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Cancel("ghost")
	r.Cancel("ghost")

	ctx, release := r.Begin(context.Background(), "ghost")
	defer release()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
