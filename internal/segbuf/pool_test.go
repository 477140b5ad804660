package segbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_GetReturnsEmptyWithRequestedCapacity(t *testing.T) {
	p := New[int]()
	buf := p.Get(10)
	require.Len(t, buf, 0)
	require.GreaterOrEqual(t, cap(buf), 10)
}

func TestPool_PutThenGetReturnsEmptyBuffer(t *testing.T) {
	p := New[int]()
	buf := p.Get(100)
	buf = append(buf, 1, 2, 3)
	p.Put(buf)

	reused := p.Get(100)
	require.Len(t, reused, 0)
	require.GreaterOrEqual(t, cap(reused), 100)
}

func TestPool_PutClearsValues(t *testing.T) {
	p := New[*int]()
	v := 42
	buf := p.Get(64)
	buf = append(buf, &v)
	p.Put(buf)

	full := buf[:cap(buf)]
	for _, elem := range full[:1] {
		require.Nil(t, elem)
	}
}

func TestPool_OversizedRequestFallsThroughToPlainAllocation(t *testing.T) {
	p := New[int]()
	huge := p.Get(10_000_000)
	require.Len(t, huge, 0)
	require.GreaterOrEqual(t, cap(huge), 10_000_000)
}
