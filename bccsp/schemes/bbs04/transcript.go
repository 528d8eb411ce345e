/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"crypto/sha256"

	math "github.com/IBM/mathlib"
)

// Transcript accumulates the canonical encodings of the elements a
// Fiat-Shamir challenge is bound to, in the order they are appended.
type Transcript struct {
	data []byte
}

// AppendG1 appends the encodings of the given G1 elements.
func (t *Transcript) AppendG1(points ...*math.G1) {
	for _, p := range points {
		t.data = append(t.data, p.Bytes()...)
	}
}

// AppendGt appends the encoding of a target group element.
func (t *Transcript) AppendGt(e *math.Gt) {
	t.data = append(t.data, e.Bytes()...)
}

// AppendBytes appends raw bytes, e.g. the message being signed.
func (t *Transcript) AppendBytes(b []byte) {
	t.data = append(t.data, b...)
}

// Bytes returns the transcript accumulated so far.
func (t *Transcript) Bytes() []byte {
	return t.data
}

// Challenge hashes the transcript into a scalar.
func (t *Transcript) Challenge(curve *math.Curve) *math.Zr {
	return HashModOrder(curve, t.data)
}

// HashModOrder hashes data with SHA-256, reads the digest as a big-endian
// integer and reduces it modulo the group order.
func HashModOrder(curve *math.Curve, data []byte) *math.Zr {
	digest := sha256.Sum256(data)
	c := curve.NewZrFromBytes(digest[:])
	c.Mod(curve.GroupOrder)
	return c
}
