// Package jitter вычисляет интервалы повторов с экспоненциальным ростом и случайным разбросом.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	f := globalRand.Float64()
	randMutex.Unlock()
	return d + time.Duration(f*jitterFactor*float64(d))
}

// Backoff описывает политику повторов.
type Backoff struct {
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

// Next возвращает паузу перед попыткой attempt (нумерация с нуля).
func (b Backoff) Next(attempt int) time.Duration {
	return ExponentialBackoff(b.Base, b.Max, attempt, b.JitterFactor)
}

// Sleep ждет паузу перед попыткой attempt или отмену ctx.
func (b Backoff) Sleep(ctx context.Context, attempt int) bool {
	t := time.NewTimer(b.Next(attempt))
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// ExponentialBackoff удваивает base на каждую попытку, не превышая max, и добавляет джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}
