// Package eqtest verifies that the equality and hash operations of a type
// uphold the equivalence contract:
//
//   - equality is reflexive, symmetric and transitive
//   - values are unequal to nil and to values of foreign types
//   - equal values report equal hashes
//   - both operations answer the same on repeated calls
//
// Values under test are organized into equality groups.
// Values within a group are expected to be equal to each other,
// and values from different groups are expected to be unequal.
//
//	eqtest.New().
//		AddEqualityGroup(MyType{V: 1}, MyType{V: 1}).
//		AddEqualityGroup(MyType{V: 2}).
//		Verify(t)
//
// By default the values are checked against their own operations,
// as resolved by the eqkit package: a registered function, an Equal or IsEqual method,
// a Cmp method, or deep equality as the last resort, with hashing resolved the same way.
// WithEquivalence swaps in a custom equality and hash pair instead.
package eqtest

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase"

	"go.llib.dev/eqtest/internal/option"
	"go.llib.dev/eqtest/pkg/eqkit"
)

// DefaultRepetitions is how many times Verify runs the whole check protocol.
// Repetition surfaces consistency bugs, such as a hash that changes between calls.
const DefaultRepetitions = 3

// Error is the constant error type of this package.
type Error string

func (err Error) Error() string { return string(err) }

// ErrNilValue is raised as a panic when a nil value is passed to an equality group.
// A nil value cannot carry the operations under test.
const ErrNilValue Error = "eqtest: nil value is not a valid equality group member"

// ErrNilEquivalence is raised as a panic when WithEquivalence is called with a nil function.
const ErrNilEquivalence Error = "eqtest: WithEquivalence requires both an equality and a hash function"

// Option configures the Tester.
type Option interface{ option.Option[Config] }

// Config holds the Tester settings. Config itself is usable as an Option.
type Config struct {
	// Repetitions is how many times Verify runs the whole check protocol.
	//
	// Default: DefaultRepetitions
	Repetitions int
	// Equal is the equivalence that the collected values are verified against.
	//
	// Default: eqkit.Equal, the equality operation of the values' own type.
	Equal func(x, y any) bool
	// Hash is the hash operation belonging to Equal.
	//
	// Default: eqkit.Hash, the hash operation of the values' own type.
	Hash func(v any) uint64
}

func (c *Config) Init() {
	c.Repetitions = DefaultRepetitions
	c.Equal = eqkit.Equal
	c.Hash = eqkit.Hash
}

func (c Config) Configure(oth *Config) {
	if c.Repetitions != 0 {
		oth.Repetitions = c.Repetitions
	}
	if c.Equal != nil {
		oth.Equal = c.Equal
	}
	if c.Hash != nil {
		oth.Hash = c.Hash
	}
}

// WithRepetitions sets how many times Verify runs the whole check protocol.
// Values below one behave as one.
func WithRepetitions(n int) Option {
	return option.Func[Config](func(c *Config) {
		c.Repetitions = n
	})
}

// WithEquivalence verifies the values against the given equality and hash pair
// instead of the operations of their own types.
// The hash law is checked relative to the given equality.
//
// Both functions are required; a nil function raises an ErrNilEquivalence panic.
func WithEquivalence(equal func(x, y any) bool, hash func(v any) uint64) Option {
	if equal == nil || hash == nil {
		panic(ErrNilEquivalence)
	}
	return option.Func[Config](func(c *Config) {
		c.Equal = equal
		c.Hash = hash
	})
}

// Tester collects equality groups and verifies the equality and hash contract over them.
// The zero value is usable; New and NewFor are the idiomatic constructors.
//
// Tester is not safe for concurrent use.
type Tester struct {
	opts []Option

	defaultGroup []any
	groups       [][]any
}

// New returns an empty Tester.
func New(opts ...Option) *Tester {
	return &Tester{opts: opts}
}

// NewFor returns a Tester whose default group is seeded with the given values,
// for the common case of verifying a reference value against its variants.
func NewFor(reference any, others ...any) *Tester {
	return New().AddEqualObject(reference).AddEqualObject(others...)
}

// AddEqualityGroup registers a group of values that are expected to be equal to each other,
// and unequal to the values of every other group.
// The group keeps the insertion order, and later changes to the passed slice are not observed.
// Calling it without values registers an inert empty group.
//
// A nil value raises an ErrNilValue panic.
func (t *Tester) AddEqualityGroup(values ...any) *Tester {
	ensureNoNilValue(values)
	t.groups = append(t.groups, append([]any(nil), values...))
	return t
}

// AddEqualObject appends the given values to the default group,
// the single implicit group a Tester maintains for its simplest use-case.
// When the default group is not empty, it is verified as group 1,
// and the groups made with AddEqualityGroup are numbered from 2.
//
// A nil value raises an ErrNilValue panic.
func (t *Tester) AddEqualObject(values ...any) *Tester {
	ensureNoNilValue(values)
	t.defaultGroup = append(t.defaultGroup, values...)
	return t
}

func ensureNoNilValue(values []any) {
	for i, v := range values {
		if v == nil {
			panic(fmt.Errorf("%w (value #%d)", ErrNilValue, i+1))
		}
	}
}

// Verify runs the whole equality and hash contract over the collected groups.
// The first failed expectation fails tb immediately,
// with a message naming the values involved by their group and item position.
// It returns the Tester, so further groups can be added and verified again.
func (t *Tester) Verify(tb testing.TB) *Tester {
	tb.Helper()
	conf := option.ToConfig[Config](t.opts)
	if conf.Repetitions < 1 {
		conf.Repetitions = 1
	}
	rel := t.relation()
	for i := 0; i < conf.Repetitions; i++ {
		rel.verifyItems(tb, conf)
		rel.verifyRelationships(tb, conf)
	}
	return t
}

// Test runs Verify as a named subtest of tt.
func (t *Tester) Test(tt *testing.T) { t.toSuite().Test(tt) }

// Benchmark measures the verification of the collected groups.
func (t *Tester) Benchmark(b *testing.B) { t.toSuite().Benchmark(b) }

// Spec registers the verification into the given testcase spec,
// which lets a Tester run as part of a larger suite.
func (t *Tester) Spec(s *testcase.Spec) { t.toSuite().Spec(s) }

func (t *Tester) toSuite() testcase.SpecSuite {
	s := testcase.NewSpec(nil)
	s.Test("equality and hash contract", func(tc *testcase.T) {
		t.Verify(tc)
	})
	return s.AsSuite("Equality")
}

// relation flattens the groups into coordinate labeled members.
// The default group, when non empty, takes the first group number.
// Empty groups keep their number, so coordinates stay stable across a session.
func (t *Tester) relation() relation {
	var (
		groups [][]member
		number int
	)
	addGroup := func(values []any) {
		number++
		ms := make([]member, 0, len(values))
		for i, v := range values {
			ms = append(ms, member{value: v, group: number, index: i + 1})
		}
		groups = append(groups, ms)
	}
	if 0 < len(t.defaultGroup) {
		addGroup(t.defaultGroup)
	}
	for _, g := range t.groups {
		addGroup(g)
	}
	return relation{groups: groups}
}
