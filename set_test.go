// set_test.go -- test suite for Set
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package pthash

import "testing"

func TestSetBasic(t *testing.T) {
	assert := newAsserter(t)

	s, err := BuildSet[string](keyw)
	assert(err == nil, "BuildSet failed: %s", err)
	assert(s.Len() == len(keyw), "Len() = %d, want %d", s.Len(), len(keyw))

	for _, k := range keyw {
		assert(s.Contains(k), "Contains(%q) = false", k)
	}
	assert(!s.Contains("not a member"), "Contains on a non-member returned true")
}

func TestSetAlgebra(t *testing.T) {
	assert := newAsserter(t)

	half := len(keyw) / 2
	a, err := BuildSet[string](keyw[:half+2])
	assert(err == nil, "BuildSet(a) failed: %s", err)
	b, err := BuildSet[string](keyw[half-2:])
	assert(err == nil, "BuildSet(b) failed: %s", err)

	overlap := make(map[string]bool)
	for _, k := range keyw[half-2 : half+2] {
		overlap[k] = true
	}

	inter := collect(a.Intersection(b))
	for k := range inter {
		assert(overlap[k], "intersection contained %q, not in the overlap region", k)
	}
	for k := range overlap {
		assert(inter[k], "intersection missing overlap member %q", k)
	}

	diff := collect(a.Difference(b))
	for k := range diff {
		assert(!b.Contains(k), "difference a-b contained %q, which is in b", k)
	}

	union := collect(a.Union(b))
	for _, k := range keyw {
		assert(union[k], "union missing %q", k)
	}

	assert(!a.IsDisjoint(b), "a and b share keys but IsDisjoint reported true")

	c, err := BuildSet[string]([]string{"totally", "unrelated", "words"})
	assert(err == nil, "BuildSet(c) failed: %s", err)
	assert(a.IsDisjoint(c), "a and c share no keys but IsDisjoint reported false")

	sym := collect(a.SymmetricDifference(b))
	for k := range sym {
		assert(!(a.Contains(k) && b.Contains(k)), "symmetric difference contained %q, present in both", k)
	}
}

func TestSetSubsetSuperset(t *testing.T) {
	assert := newAsserter(t)

	all, err := BuildSet[string](keyw)
	assert(err == nil, "BuildSet(all) failed: %s", err)
	sub, err := BuildSet[string](keyw[:5])
	assert(err == nil, "BuildSet(sub) failed: %s", err)

	assert(sub.IsSubset(all), "sub is not reported as a subset of all")
	assert(all.IsSuperset(sub), "all is not reported as a superset of sub")
	assert(!all.IsSubset(sub), "all incorrectly reported as a subset of sub")
}

func TestSetEqual(t *testing.T) {
	assert := newAsserter(t)

	a, err := BuildSet[string](keyw)
	assert(err == nil, "BuildSet(a) failed: %s", err)
	b, err := BuildSet[string](keyw)
	assert(err == nil, "BuildSet(b) failed: %s", err)

	assert(a.Equal(b), "two sets built from identical input were not Equal")

	c, err := BuildSet[string](keyw[:len(keyw)-1])
	assert(err == nil, "BuildSet(c) failed: %s", err)
	assert(!a.Equal(c), "sets of differing size were reported Equal")
}

func collect(it func(func(string) bool)) map[string]bool {
	out := make(map[string]bool)
	for k := range it {
		out[k] = true
	}
	return out
}
