package utils

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/rand"
	"sync"
)

// GenerateID создает случайный hex-идентификатор (используется для сессий клиентов).
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := crand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Random - общий источник случайных чисел для генератора карт и пространственных запросов.
// Доступ к генератору сериализуется мьютексом.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Intn возвращает число в [0, n). n <= 0 дает 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// IntRange возвращает равномерное целое в [min, max] включительно.
func (r *Random) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.Intn(max-min+1)
}

// Float64 возвращает число в [0.0, 1.0).
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Reseed перезапускает последовательность.
func (r *Random) Reseed(seed int64) {
	r.mu.Lock()
	r.rng.Seed(seed)
	r.mu.Unlock()
}
