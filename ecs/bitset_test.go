package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelitheprogrammer/Arch/internal/testutils"
)

func TestBitSet_SetClearTest(t *testing.T) {
	t.Parallel()

	b := NewBitSet()
	assert.True(t, b.IsEmpty())
	assert.False(t, b.Test(5))

	b.Set(5)
	assert.True(t, b.Test(5))
	assert.Equal(t, 1, b.Count())

	b.Set(130)
	assert.True(t, b.Test(130))
	assert.Equal(t, 2, b.Count())

	b.Clear(5)
	assert.False(t, b.Test(5))
	assert.True(t, b.Test(130))
	assert.Equal(t, 1, b.Count())
}

func TestBitSet_SpanNoAllocBuffer(t *testing.T) {
	t.Parallel()

	buf := make([]uint64, RequiredWords(200))
	b := NewSpanBitSet(buf)
	b.Set(3)
	b.Set(190)
	assert.True(t, b.Test(3))
	assert.True(t, b.Test(190))
	assert.Equal(t, 2, b.Count())
}

func TestBitSet_EqualsIgnoresBackingCapacity(t *testing.T) {
	t.Parallel()

	a := NewBitSet()
	a.Set(1)
	a.Set(64)

	buf := make([]uint64, RequiredWords(200))
	b := NewSpanBitSet(buf)
	b.Set(1)
	b.Set(64)

	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestBitSet_HashStableAcrossGrowth(t *testing.T) {
	t.Parallel()

	a := NewBitSet()
	a.Set(1)
	h1 := a.Hash()

	a.Set(500) // forces the backing slice to grow
	a.Clear(500)
	h2 := a.Hash()

	assert.Equal(t, h1, h2)
}

func TestBitSet_ContainsAndIntersects(t *testing.T) {
	t.Parallel()

	super := NewBitSet()
	super.Set(1)
	super.Set(2)
	super.Set(3)

	sub := NewBitSet()
	sub.Set(1)
	sub.Set(2)

	assert.True(t, super.Contains(sub))
	assert.False(t, sub.Contains(super))

	disjoint := NewBitSet()
	disjoint.Set(9)
	assert.False(t, super.Intersects(disjoint))
	assert.True(t, super.Intersects(sub))
}

func TestBitSet_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	a := NewBitSet()
	a.Set(1)
	b := a.Clone()
	b.Set(2)

	assert.False(t, a.Test(2))
	assert.True(t, b.Test(2))
}

func TestBitSet_ForEachAscending(t *testing.T) {
	t.Parallel()

	b := NewBitSet()
	for _, id := range []ComponentID{7, 1, 64, 3} {
		b.Set(id)
	}

	var got []ComponentID
	b.ForEach(func(id ComponentID) { got = append(got, id) })
	require.Equal(t, []ComponentID{1, 3, 7, 64}, got)
}

// bitSetOp is a fuzz op whose own value is used as its selection weight.
type bitSetOp uint8

const (
	opSet bitSetOp = iota + 1
	opClear
)

func TestBitSet_FuzzAgainstMapModel(t *testing.T) {
	t.Parallel()
	r := testutils.NewRand(t)

	model := make(map[ComponentID]bool)
	b := NewBitSet()
	ops := []bitSetOp{opSet, opSet, opClear}

	for i := 0; i < 2000; i++ {
		id := ComponentID(r.IntN(300))
		switch testutils.RandWeightedOp(r, ops) {
		case opSet:
			b.Set(id)
			model[id] = true
		case opClear:
			b.Clear(id)
			model[id] = false
		}
	}

	want := 0
	for id, present := range model {
		if present {
			want++
			require.True(t, b.Test(id), "id %d should be set", id)
		} else {
			require.False(t, b.Test(id), "id %d should be clear", id)
		}
	}
	require.Equal(t, want, b.Count())
}
