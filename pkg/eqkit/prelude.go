package eqkit

import (
	"encoding/binary"
	"math/big"
	"net"
	"time"
)

// Standard library types whose meaningful equality hides behind methods
// and unexported fields are registered here, so that both Equal and Hash
// treat them by value out of the box.
var _ = RegisterEqual[time.Time](func(v1, v2 time.Time) bool {
	return v1.Equal(v2)
})

var _ = RegisterHash[time.Time](func(v time.Time) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v.UnixNano()))
	return HashBytes(buf[:])
})

var _ = RegisterEqual[net.IP](func(v1, v2 net.IP) bool {
	return v1.Equal(v2)
})

var _ = RegisterHash[net.IP](func(v net.IP) uint64 {
	// the 16 byte form makes a v4 address and its v4 in v6 counterpart digest the same
	if canonical := v.To16(); canonical != nil {
		return HashBytes(canonical)
	}
	return HashBytes(v)
})

var _ = RegisterEqual[big.Int](func(v1, v2 big.Int) bool {
	return v1.Cmp(&v2) == 0
})

var _ = RegisterHash[big.Int](func(v big.Int) uint64 {
	return HashBytes([]byte{byte(v.Sign())}, v.Bytes())
})

var _ = RegisterEqual[big.Rat](func(v1, v2 big.Rat) bool {
	return v1.Cmp(&v2) == 0
})

var _ = RegisterHash[big.Rat](func(v big.Rat) uint64 {
	return HashBytes([]byte(v.RatString()))
})

var _ = RegisterEqual[big.Float](func(v1, v2 big.Float) bool {
	return v1.Cmp(&v2) == 0
})

var _ = RegisterHash[big.Float](func(v big.Float) uint64 {
	if v.Sign() == 0 {
		// Cmp considers negative and positive zero equal
		return HashBytes([]byte("0"))
	}
	// the 'p' format is exact, equal values print the same regardless of precision
	return HashBytes([]byte(v.Text('p', -1)))
})
