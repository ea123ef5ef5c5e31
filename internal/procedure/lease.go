// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

// Lease is a scoped, read-only view over a buffer of plaintext secret
// bytes. It is created by a Runner immediately before a primitive runs and
// released on every exit path from that primitive — success, recoverable
// failure, or fatal failure.
//
// A Lease must never be stored in a struct field, channel, or any container
// that outlives the call to Runner.WithLease that produced it. Bytes
// returned by Bytes must not be copied into a result that is returned from
// the primitive; only Products.Secret and Products.Output may cross that
// boundary.
type Lease struct {
	data []byte
	open bool
}

// NewLease takes ownership of data, which must not be referenced by the
// caller after this point. Runner implementations are the only intended
// caller — variant code never constructs a Lease itself.
func NewLease(data []byte) *Lease {
	return &Lease{data: data, open: true}
}

// Bytes returns the leased plaintext. The returned slice aliases the
// lease's internal buffer and becomes invalid the moment Release runs;
// callers must finish using it before returning from their closure.
func (l *Lease) Bytes() []byte {
	if !l.open {
		panic("procedure: lease accessed after release")
	}
	return l.data
}

// Len reports the length of the leased secret without requiring a Bytes
// call, for callers that only need to validate size.
func (l *Lease) Len() int {
	return len(l.data)
}

// Release zeroises the backing buffer on a best-effort basis and marks the
// lease closed. It is safe to call more than once; only the first call has
// an effect. Runner implementations must call Release on every exit path.
func (l *Lease) Release() {
	if !l.open {
		return
	}
	for i := range l.data {
		l.data[i] = 0
	}
	l.open = false
}
