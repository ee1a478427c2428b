package ecs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Family is an immutable predicate over component presence: entities must
// carry all of `all`, at least one of `one` (when non-empty) and none of
// `exclude`. Structurally equal descriptors resolve to the same canonical
// Family instance, which carries a process-stable index used as the entity's
// family bit position.
type Family struct {
	all     *bitset.BitSet
	one     *bitset.BitSet
	exclude *bitset.BitSet
	index   uint
}

var families = struct {
	sync.Mutex
	byKey map[string]*Family
}{
	byKey: make(map[string]*Family),
}

// Index returns the bit position assigned to this family.
func (f *Family) Index() uint {
	return f.index
}

// Matches reports whether the entity's current component set satisfies the
// family predicate.
func (f *Family) Matches(entity *Entity) bool {
	if !entity.componentBits.IsSuperSet(f.all) {
		return false
	}
	if f.one.Any() && entity.componentBits.IntersectionCardinality(f.one) == 0 {
		return false
	}
	if entity.componentBits.IntersectionCardinality(f.exclude) > 0 {
		return false
	}
	return true
}

func (f *Family) String() string {
	return fmt.Sprintf("Family[all=%v one=%v exclude=%v]", f.all, f.one, f.exclude)
}

// FamilyBuilder accumulates the all/one/exclude constraints of a family
// descriptor. Get resolves it to the canonical Family.
type FamilyBuilder struct {
	all     *bitset.BitSet
	one     *bitset.BitSet
	exclude *bitset.BitSet
}

// Require starts a family descriptor with component types that must all be
// present. Require() with no arguments starts the empty descriptor, whose
// family matches every entity.
func Require(types ...*ComponentType) *FamilyBuilder {
	b := &FamilyBuilder{
		all:     bitset.New(0),
		one:     bitset.New(0),
		exclude: bitset.New(0),
	}
	return b.All(types...)
}

// All adds component types that must all be present.
func (b *FamilyBuilder) All(types ...*ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.all.Set(t.Index())
	}
	return b
}

// One adds component types of which at least one must be present.
func (b *FamilyBuilder) One(types ...*ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.one.Set(t.Index())
	}
	return b
}

// Exclude adds component types that must not be present.
func (b *FamilyBuilder) Exclude(types ...*ComponentType) *FamilyBuilder {
	for _, t := range types {
		b.exclude.Set(t.Index())
	}
	return b
}

// Get returns the canonical Family for the accumulated descriptor, assigning
// the next free family index on first registration.
func (b *FamilyBuilder) Get() *Family {
	key := familyKey(b.all, b.one, b.exclude)

	families.Lock()
	defer families.Unlock()

	family, ok := families.byKey[key]
	if !ok {
		family = &Family{
			all:     b.all.Clone(),
			one:     b.one.Clone(),
			exclude: b.exclude.Clone(),
			index:   uint(len(families.byKey)),
		}
		families.byKey[key] = family
	}
	return family
}

// familyKey renders the three bitsets as a structural identity string.
func familyKey(all, one, exclude *bitset.BitSet) string {
	var sb strings.Builder
	appendBits(&sb, "a", all)
	appendBits(&sb, "o", one)
	appendBits(&sb, "x", exclude)
	return sb.String()
}

func appendBits(sb *strings.Builder, tag string, bits *bitset.BitSet) {
	sb.WriteString(tag)
	sb.WriteByte(':')
	for index, ok := bits.NextSet(0); ok; index, ok = bits.NextSet(index + 1) {
		fmt.Fprintf(sb, "%d,", index)
	}
	sb.WriteByte(';')
}
