/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"io"

	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

// maxIssueAttempts bounds how many times Issue resamples x when gamma + x is
// zero.
const maxIssueAttempts = 8

// Issue creates the credential of a new group member: a fresh secret
// exponent x and the weak Boneh-Boyen signature A = g1^(1/(gamma + x)).
func (g *GroupSig) Issue(gsk *GroupSecretKey, gpk *GroupPublicKey, rng io.Reader) (*MemberCredential, error) {
	if !gsk.complete() || !gpk.complete() || rng == nil {
		return nil, errors.New("cannot issue credential: received nil input")
	}

	return g.issue(gsk, gpk, func() *math.Zr {
		return g.Curve.NewRandomZr(rng)
	})
}

func (g *GroupSig) issue(gsk *GroupSecretKey, gpk *GroupPublicKey, sample func() *math.Zr) (*MemberCredential, error) {
	curve := g.Curve
	zero := curve.NewZrFromInt(0)

	for i := 0; i < maxIssueAttempts; i++ {
		x := sample()

		// exp = 1/(gamma + x) mod q
		exp := curve.ModAdd(gsk.Gamma, x, curve.GroupOrder)
		if exp.Equals(zero) {
			continue
		}
		exp.InvModP(curve.GroupOrder)

		return &MemberCredential{
			X: x,
			A: gpk.G1.Mul(exp),
		}, nil
	}

	return nil, errors.WithMessagef(ErrDegenerateCredential, "no usable exponent after %d attempts", maxIssueAttempts)
}

// VerifyCredential checks that cred was issued under gpk, that is
// e(A, W * G2^x) = e(G1, G2).
func (g *GroupSig) VerifyCredential(cred *MemberCredential, gpk *GroupPublicKey) error {
	if !cred.complete() || !gpk.complete() {
		return errors.New("cannot verify credential: received nil input")
	}

	curve := g.Curve

	// P = W * G2^x
	P := gpk.W.Copy()
	P.Add(gpk.G2.Mul(cred.X))
	P.Affine()

	g2 := gpk.G2.Copy()
	g2.Affine()

	if !curve.FExp(curve.Pairing(P, cred.A)).Equals(curve.FExp(curve.Pairing(g2, gpk.G1))) {
		return ErrInvalidCredential
	}

	return nil
}
