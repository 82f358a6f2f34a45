package eqtest_test

import (
	"strings"
	"testing"

	"go.llib.dev/testcase"

	"go.llib.dev/eqtest"
)

// Coordinate treats Label as display metadata, its identity is the X and Y pair.
type Coordinate struct {
	X, Y  int
	Label string
}

func (c Coordinate) Equal(oth Coordinate) bool { return c.X == oth.X && c.Y == oth.Y }

func (c Coordinate) Hash() uint64 { return uint64(c.X)*31 + uint64(c.Y) }

func ExampleTester() {
	var tb testing.TB

	eqtest.New().
		AddEqualityGroup(
			Coordinate{X: 1, Y: 2, Label: "home"},
			Coordinate{X: 1, Y: 2, Label: "work"},
		).
		AddEqualityGroup(Coordinate{X: 2, Y: 1}).
		Verify(tb)
}

func ExampleNew() {
	var tb testing.TB

	eqtest.New().
		AddEqualityGroup("foo", "foo").
		AddEqualityGroup("bar").
		Verify(tb)
}

func ExampleNewFor() {
	var tb testing.TB

	eqtest.NewFor(
		Coordinate{X: 7, Y: 7, Label: "lucky"},
		Coordinate{X: 7, Y: 7},
	).Verify(tb)
}

func ExampleWithEquivalence() {
	var tb testing.TB

	equal := func(x, y any) bool {
		s1, ok1 := x.(string)
		s2, ok2 := y.(string)
		return ok1 && ok2 && strings.EqualFold(s1, s2)
	}
	hash := func(v any) uint64 {
		var h uint64
		for _, r := range strings.ToLower(v.(string)) {
			h = h*31 + uint64(r)
		}
		return h
	}

	eqtest.New(eqtest.WithEquivalence(equal, hash)).
		AddEqualityGroup("ack", "ACK").
		AddEqualityGroup("nack", "NACK").
		Verify(tb)
}

func ExampleWithRepetitions() {
	var tb testing.TB

	eqtest.New(eqtest.WithRepetitions(10)).
		AddEqualityGroup(Coordinate{X: 1, Y: 1}).
		Verify(tb)
}

func ExampleTester_Test() {
	var t *testing.T

	eqtest.New().
		AddEqualityGroup(1).
		AddEqualityGroup(2).
		Test(t)
}

func ExampleTester_Spec() {
	var t *testing.T

	s := testcase.NewSpec(t)

	eqtest.New().
		AddEqualityGroup(Coordinate{X: 1, Y: 2}).
		AddEqualityGroup(Coordinate{X: 2, Y: 1}).
		Spec(s)
}
