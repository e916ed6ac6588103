package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext_Update(t *testing.T) {
	uc := NewUserContext()

	assert.True(t, uc.Update("diet", "vegan"))
	assert.False(t, uc.Update("diet", "vegan"))
	assert.False(t, uc.Update("diet", " Vegan "))
	assert.True(t, uc.Update("likes", "spicy"))
	assert.True(t, uc.Update("DIET", "gluten-free"))

	assert.Equal(t, []string{"vegan", "gluten-free"}, uc.Diet())
	assert.Equal(t, []string{"spicy"}, uc.Likes())
	assert.True(t, uc.HasDiet("VEGAN"))
}

func TestUserContext_UnknownKeyIsNoop(t *testing.T) {
	uc := NewUserContext()

	assert.False(t, uc.Update("allergies", "nuts"))
	assert.False(t, uc.Update("diet", "   "))
	assert.Empty(t, uc.Diet())
	assert.Empty(t, uc.Likes())
}

func TestUserContext_Reset(t *testing.T) {
	uc := NewUserContext()
	uc.Update("diet", "vegan")
	uc.Reset()

	assert.False(t, uc.HasDiet("vegan"))
	assert.Empty(t, uc.Diet())
}

func TestUserContext_ConcurrentUpdates(t *testing.T) {
	uc := NewUserContext()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc.Update("likes", "sweet")
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"sweet"}, uc.Likes())
}
