package domain

import (
	"slices"
	"strings"
	"sync"
)

// Ключи контекста, которые умеет обновлять UpdateContext.
const (
	ContextKeyDiet  = "diet"
	ContextKeyLikes = "likes"
)

// DietVegan — значение diet, включающее фильтрацию молочных и хлебных товаров.
const DietVegan = "vegan"

// UserContext хранит накопленные предпочтения пользователя в рамках одной сессии.
// Значения внутри ключа не повторяются и хранятся в порядке добавления.
type UserContext struct {
	mu    sync.RWMutex
	diet  []string
	likes []string
}

func NewUserContext() *UserContext {
	return &UserContext{}
}

// Update добавляет value к ключу key. Неизвестные ключи молча игнорируются.
// Возвращает true, если контекст изменился.
func (u *UserContext) Update(key, value string) bool {
	value = normalizePreference(value)
	if value == "" {
		return false
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	var target *[]string
	switch strings.ToLower(strings.TrimSpace(key)) {
	case ContextKeyDiet:
		target = &u.diet
	case ContextKeyLikes:
		target = &u.likes
	default:
		return false
	}

	if slices.Contains(*target, value) {
		return false
	}
	*target = append(*target, value)

	return true
}

// HasDiet проверяет наличие значения в diet.
func (u *UserContext) HasDiet(value string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Contains(u.diet, normalizePreference(value))
}

// Diet возвращает копию значений diet.
func (u *UserContext) Diet() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.diet)
}

// Likes возвращает копию значений likes.
func (u *UserContext) Likes() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.likes)
}

// Reset очищает все предпочтения.
func (u *UserContext) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.diet = nil
	u.likes = nil
}

func normalizePreference(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
