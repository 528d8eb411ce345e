/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package bbs04 implements the short group signatures of Boneh, Boyen and
// Shacham (http://crypto.stanford.edu/~dabo/papers/groupsigs.pdf).
//
// Members of a group hold a credential (x, A) with A = g1^(1/(gamma+x)) and
// sign by proving knowledge of such a credential in zero knowledge. A
// signature verifies against the group public key alone and does not reveal
// which member produced it. The holder of the group secret key can open a
// signature and recover the A element of the signer's credential.
package bbs04

import (
	math "github.com/IBM/mathlib"
)

// GroupSig binds the scheme to a pairing-friendly curve. It carries no other
// state and is safe for concurrent use.
type GroupSig struct {
	Curve *math.Curve
}

// GroupPublicKey is the public key of a group
type GroupPublicKey struct {
	H  *math.G1
	U  *math.G1
	V  *math.G1
	W  *math.G2
	G1 *math.G1
	G2 *math.G2
}

// GroupSecretKey is held by the group manager. Xi1 and Xi2 open signatures,
// Gamma issues credentials.
type GroupSecretKey struct {
	Xi1   *math.Zr
	Xi2   *math.Zr
	Gamma *math.Zr
}

// MemberCredential is the secret signing key of a group member.
type MemberCredential struct {
	X *math.Zr
	A *math.G1
}

// Signature is a group signature: the commitments T1, T2, T3, the
// Fiat-Shamir challenge C and the five responses of the proof of knowledge.
type Signature struct {
	T1      *math.G1
	T2      *math.G1
	T3      *math.G1
	C       *math.Zr
	SAlpha  *math.Zr
	SBeta   *math.Zr
	SX      *math.Zr
	SDelta1 *math.Zr
	SDelta2 *math.Zr
}

func (sig *Signature) complete() bool {
	return sig != nil &&
		sig.T1 != nil && sig.T2 != nil && sig.T3 != nil &&
		sig.C != nil && sig.SAlpha != nil && sig.SBeta != nil &&
		sig.SX != nil && sig.SDelta1 != nil && sig.SDelta2 != nil
}

func (gpk *GroupPublicKey) complete() bool {
	return gpk != nil &&
		gpk.H != nil && gpk.U != nil && gpk.V != nil &&
		gpk.W != nil && gpk.G1 != nil && gpk.G2 != nil
}

func (gsk *GroupSecretKey) complete() bool {
	return gsk != nil && gsk.Xi1 != nil && gsk.Xi2 != nil && gsk.Gamma != nil
}

func (cred *MemberCredential) complete() bool {
	return cred != nil && cred.X != nil && cred.A != nil
}

// pairingProduct returns e(p, q) * e(r, s) after final exponentiation.
func (g *GroupSig) pairingProduct(p *math.G1, q *math.G2, r *math.G1, s *math.G2) *math.Gt {
	qa := q.Copy()
	qa.Affine()
	sa := s.Copy()
	sa.Affine()

	return g.Curve.FExp(g.Curve.Pairing2(qa, p, sa, r))
}
