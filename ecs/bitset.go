package ecs

import (
	"github.com/cespare/xxhash/v2"
	"github.com/kelindar/bitmap"
)

// wordBits is the number of bits packed into each underlying bitmap word.
const wordBits = 64

// BitSet is a dense bit vector over ComponentID (§4.2), used both as an archetype's signature
// and as scratch storage while computing a transition's destination signature. It is backed by
// kelindar/bitmap, whose Bitmap type is itself just a []uint64 — which is what lets the "span"
// constructor below borrow a caller-provided buffer instead of allocating.
type BitSet struct {
	words bitmap.Bitmap
}

// NewBitSet returns an empty, heap-backed BitSet that grows as components are set.
func NewBitSet() BitSet {
	return BitSet{}
}

// NewSpanBitSet returns a BitSet backed directly by buf, with no allocation. The caller owns
// buf's lifetime; the BitSet must not be retained past the buffer's reuse. buf is zeroed first.
// Use RequiredWords to size buf for every currently registered ComponentID.
func NewSpanBitSet(buf []uint64) BitSet {
	for i := range buf {
		buf[i] = 0
	}
	return BitSet{words: bitmap.Bitmap(buf)}
}

// RequiredWords returns the number of uint64 words needed to hold every ComponentID up to and
// including maxID (§4.2).
func RequiredWords(maxID ComponentID) int {
	return int(maxID)/wordBits + 1
}

// Set marks id as present. O(1), may grow the backing slice if heap-backed.
func (b *BitSet) Set(id ComponentID) {
	b.words.Set(uint32(id))
}

// Clear marks id as absent. O(1); a no-op if id is beyond the current backing storage.
func (b *BitSet) Clear(id ComponentID) {
	word, bit := int(id)/wordBits, uint(id)%wordBits
	if word >= len(b.words) {
		return
	}
	b.words[word] &^= 1 << bit
}

// Test reports whether id is present. O(1).
func (b BitSet) Test(id ComponentID) bool {
	word, bit := int(id)/wordBits, uint(id)%wordBits
	if word >= len(b.words) {
		return false
	}
	return b.words[word]&(1<<bit) != 0
}

// Count returns the number of set bits.
func (b BitSet) Count() int {
	return b.words.Count()
}

// IsEmpty reports whether no bit is set.
func (b BitSet) IsEmpty() bool {
	return b.Count() == 0
}

// Clone returns an independent copy of b.
func (b BitSet) Clone() BitSet {
	return BitSet{words: b.words.Clone(nil)}
}

// Contains reports whether b is a superset of other (every bit set in other is also set in b).
func (b BitSet) Contains(other BitSet) bool {
	if other.IsEmpty() {
		return true
	}
	// And is applied to equal-length operands only; bits of other past b's last word can never
	// be in b, so they simply make the counts differ.
	n := min(len(b.words), len(other.words))
	intersect := other.words[:n].Clone(nil)
	intersect.And(b.words[:n])
	return intersect.Count() == other.Count()
}

// Intersects reports whether b and other share at least one set bit.
func (b BitSet) Intersects(other BitSet) bool {
	n := min(len(b.words), len(other.words))
	intersect := b.words[:n].Clone(nil)
	intersect.And(other.words[:n])
	return intersect.Count() > 0
}

// trimmedWords returns the word slice with trailing all-zero words dropped, so that two BitSets
// representing the same logical set always hash and compare equal regardless of how much
// backing storage either happened to grow.
func (b BitSet) trimmedWords() bitmap.Bitmap {
	n := len(b.words)
	for n > 0 && b.words[n-1] == 0 {
		n--
	}
	return b.words[:n]
}

// Equals is content equality: two BitSets with the same set bits are equal regardless of
// backing capacity.
func (b BitSet) Equals(other BitSet) bool {
	a, o := b.trimmedWords(), other.trimmedWords()
	if len(a) != len(o) {
		return false
	}
	for i := range a {
		if a[i] != o[i] {
			return false
		}
	}
	return true
}

// Hash returns a content hash stable across equal sets (§4.2), used as the archetype graph's
// fingerprint. It is not an identity: callers must still compare signatures on collision (§9).
func (b BitSet) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, w := range b.trimmedWords() {
		buf[0] = byte(w)
		buf[1] = byte(w >> 8)
		buf[2] = byte(w >> 16)
		buf[3] = byte(w >> 24)
		buf[4] = byte(w >> 32)
		buf[5] = byte(w >> 40)
		buf[6] = byte(w >> 48)
		buf[7] = byte(w >> 56)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// ForEach calls fn once per set bit, in ascending order.
func (b BitSet) ForEach(fn func(id ComponentID)) {
	b.words.Range(func(x uint32) bool {
		fn(ComponentID(x))
		return true
	})
}

// ToSlice returns the set bits as a sorted slice of ComponentIDs.
func (b BitSet) ToSlice() []ComponentID {
	out := make([]ComponentID, 0, b.Count())
	b.ForEach(func(id ComponentID) { out = append(out, id) })
	return out
}
