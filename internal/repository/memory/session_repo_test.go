package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_GetCreatesAndReuses(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	a, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	a.Update("diet", "vegan")

	again, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.True(t, again.HasDiet("vegan"))

	b, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, b.HasDiet("vegan"))
	assert.NotSame(t, a, b)
}

func TestSessionRepo_Reset(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	a, _ := repo.Get(ctx, "a")
	a.Update("likes", "spicy")

	require.NoError(t, repo.Reset(ctx, "a"))
	require.NoError(t, repo.Reset(ctx, "unknown"))

	fresh, _ := repo.Get(ctx, "a")
	assert.Empty(t, fresh.Likes())
}

func TestSessionRepo_Concurrent(t *testing.T) {
	repo := NewSessionRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc, err := repo.Get(ctx, "shared")
			assert.NoError(t, err)
			uc.Update("likes", "sweet")
		}()
	}
	wg.Wait()

	uc, _ := repo.Get(ctx, "shared")
	assert.Equal(t, []string{"sweet"}, uc.Likes())
}
