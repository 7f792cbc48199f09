package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTitleCache_DisabledIsNoOp(t *testing.T) {
	c, err := NewTitleCache("", "", time.Minute)
	assert.NoError(t, err)
	assert.NotNil(t, c)

	ctx := context.Background()

	cached, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, cached)

	assert.NoError(t, c.Invalidate(ctx, 1))
	assert.NoError(t, c.Close())
}

func TestTitleCache_NilReceiverIsSafe(t *testing.T) {
	var c *TitleCache
	ctx := context.Background()

	cached, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, cached)

	assert.NoError(t, c.Set(ctx, nil))
	assert.NoError(t, c.Invalidate(ctx, 1))
	assert.NoError(t, c.Close())
}

func TestTitleKey(t *testing.T) {
	assert.Equal(t, "title:42", titleKey(42))
}
