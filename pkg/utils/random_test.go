package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestRandom_IntRangeBounds(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(1, 100)
		if v < 1 || v > 100 {
			t.Fatalf("IntRange(1,100) = %d", v)
		}
	}
	assert.Equal(t, 5, r.IntRange(5, 5))
	assert.Equal(t, 0, r.Intn(0))
}

func TestRandom_Deterministic(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}

	a.Reseed(7)
	b.Reseed(7)
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestRandom_ConcurrentAccess(t *testing.T) {
	r := NewRandom(3)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = r.IntRange(0, 10)
			}
		}()
	}
	wg.Wait()
}
