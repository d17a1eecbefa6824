package region

import "math/bits"

const (
	mtN       = 624
	mtM       = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// mt19937 is the 32-bit Mersenne Twister with array seeding, so that window
// order matches other tools shuffling the same plan with the same seed.
type mt19937 struct {
	mt  [mtN]uint32
	mti int
}

func newMT19937(key ...uint32) *mt19937 {
	m := &mt19937{}
	m.seedByArray(key)
	return m
}

func (m *mt19937) seed(s uint32) {
	m.mt[0] = s
	for m.mti = 1; m.mti < mtN; m.mti++ {
		prev := m.mt[m.mti-1]
		m.mt[m.mti] = 1812433253*(prev^(prev>>30)) + uint32(m.mti)
	}
}

func (m *mt19937) seedByArray(key []uint32) {
	m.seed(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.mt[i-1]
		m.mt[i] = (m.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.mt[0] = m.mt[mtN-1]
			i = 1
		}
	}
	m.mt[0] = upperMask
}

func (m *mt19937) Uint32() uint32 {
	if m.mti >= mtN {
		for k := 0; k < mtN; k++ {
			y := (m.mt[k] & upperMask) | (m.mt[(k+1)%mtN] & lowerMask)
			next := m.mt[(k+mtM)%mtN] ^ (y >> 1)
			if y&1 != 0 {
				next ^= matrixA
			}
			m.mt[k] = next
		}
		m.mti = 0
	}
	y := m.mt[m.mti]
	m.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// below returns a uniform value in [0, n) by rejection sampling on the
// bit length of n. n must be in [1, 2^32).
func (m *mt19937) below(n int) int {
	k := bits.Len(uint(n))
	r := int(m.Uint32() >> (32 - k))
	for r >= n {
		r = int(m.Uint32() >> (32 - k))
	}
	return r
}

// Shuffle permutes n elements with swap, walking from the last element down.
func (m *mt19937) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, m.below(i+1))
	}
}
