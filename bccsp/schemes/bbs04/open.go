/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

// Open recovers the A element of the credential that produced sig. The
// result is only meaningful for signatures that verified under the public
// key matching gsk; callers must verify before opening.
func (g *GroupSig) Open(sig *Signature, gsk *GroupSecretKey) (*math.G1, error) {
	if !sig.complete() || !gsk.complete() {
		return nil, errors.New("cannot open group signature: received nil input")
	}

	// A = T3 - (T1^xi2 + T2^xi1)
	A := sig.T3.Copy()
	A.Sub(sig.T1.Mul2(gsk.Xi2, sig.T2, gsk.Xi1))

	return A, nil
}

// IsSignedBy reports whether sig was produced with cred.
func (g *GroupSig) IsSignedBy(cred *MemberCredential, sig *Signature, gsk *GroupSecretKey) bool {
	if !cred.complete() {
		return false
	}

	A, err := g.Open(sig, gsk)
	if err != nil {
		return false
	}

	return A.Equals(cred.A)
}
