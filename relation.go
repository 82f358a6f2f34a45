package eqtest

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/pp"
)

// The expectation messages name both involved values.
// %s renders a member with its group and item coordinates.
const (
	msgUnequalToNil     = "%s must be unequal to nil"
	msgUnequalToForeign = "%s must be unequal to an arbitrary value of another type"
	msgEqualToItself    = "%s must be equal to itself"
	msgHashConsistent   = "the hash of %s must be consistent"
	msgEqualTo          = "%s must be equal to %s"
	msgHashEqualTo      = "the hash (%d) of %s must be equal to the hash (%d) of %s"
	msgUnequalTo        = "%s must be unequal to %s"
)

// notAnInstance is the foreign sentinel every checked value must be unequal to.
// The type is package private, so no caller supplied value can be an instance of it.
type notAnInstance struct{}

// relation holds the flattened equality groups and knows which members
// are expected to relate and which are not.
// Every expectation is delegated to the assertion collaborator
// with a ready substituted message.
type relation struct {
	groups [][]member
}

// member is a single checked value together with its 1-based coordinates.
type member struct {
	value any
	group int
	index int
}

func (m member) String() string {
	return fmt.Sprintf("%s [group %d, item %d]", pp.Format(m.value), m.group, m.index)
}

// verifyItems checks the expectations every value must meet on its own,
// regardless of what groups it relates to.
func (r relation) verifyItems(tb testing.TB, conf Config) {
	tb.Helper()
	for _, group := range r.groups {
		for _, m := range group {
			assert.True(tb, !conf.Equal(m.value, nil),
				assert.MessageF(msgUnequalToNil, m))
			assert.True(tb, !conf.Equal(m.value, notAnInstance{}),
				assert.MessageF(msgUnequalToForeign, m))
			assert.True(tb, conf.Equal(m.value, m.value),
				assert.MessageF(msgEqualToItself, m))
			assert.Equal(tb, conf.Hash(m.value), conf.Hash(m.value),
				assert.MessageF(msgHashConsistent, m))
		}
	}
}

// verifyRelationships checks every ordered pair of members.
// Pairs within a group must be equal with equal hashes, self pairs included,
// and pairs across groups must be unequal.
// The iteration order is fixed, so the first reported failure
// is the same on every run.
func (r relation) verifyRelationships(tb testing.TB, conf Config) {
	tb.Helper()
	for gi, group := range r.groups {
		for _, item := range group {
			r.verifyRelated(tb, conf, item, group)
			for oi, oth := range r.groups {
				if oi == gi {
					continue
				}
				r.verifyUnrelated(tb, conf, item, oth)
			}
		}
	}
}

func (r relation) verifyRelated(tb testing.TB, conf Config, item member, group []member) {
	tb.Helper()
	for _, related := range group {
		assert.True(tb, conf.Equal(item.value, related.value),
			assert.MessageF(msgEqualTo, item, related))
		h1, h2 := conf.Hash(item.value), conf.Hash(related.value)
		assert.True(tb, h1 == h2,
			assert.MessageF(msgHashEqualTo, h1, item, h2, related))
	}
}

func (r relation) verifyUnrelated(tb testing.TB, conf Config, item member, group []member) {
	tb.Helper()
	for _, unrelated := range group {
		assert.True(tb, !conf.Equal(item.value, unrelated.value),
			assert.MessageF(msgUnequalTo, item, unrelated))
	}
}
