/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"github.com/pkg/errors"
)

// Verify checks that sig is a group signature on msg under gpk. It returns
// nil if the signature is valid and an error wrapping ErrInvalidSignature
// otherwise.
func (g *GroupSig) Verify(sig *Signature, gpk *GroupPublicKey, msg []byte) error {
	if !sig.complete() || !gpk.complete() {
		return errors.WithMessage(ErrInvalidSignature, "received nil input")
	}

	curve := g.Curve
	q := curve.GroupOrder

	negC := curve.ModNeg(sig.C, q)

	// recompute t-values using the s-values

	// R1 = U^sAlpha * T1^-c
	R1 := gpk.U.Mul2(sig.SAlpha, sig.T1, negC)
	// R2 = V^sBeta * T2^-c
	R2 := gpk.V.Mul2(sig.SBeta, sig.T2, negC)

	// R3 = e(T3,G2)^sx * e(H,W)^-(sAlpha+sBeta) * e(H,G2)^-(sDelta1+sDelta2) * (e(T3,W)/e(G1,G2))^c
	//    = e(T3^sx * H^-(sDelta1+sDelta2) * G1^-c, G2) * e(T3^c * H^-(sAlpha+sBeta), W)
	P := sig.T3.Mul2(sig.SX, gpk.H, curve.ModNeg(curve.ModAdd(sig.SDelta1, sig.SDelta2, q), q))
	P.Add(gpk.G1.Mul(negC))
	Q := sig.T3.Mul2(sig.C, gpk.H, curve.ModNeg(curve.ModAdd(sig.SAlpha, sig.SBeta, q), q))
	R3 := g.pairingProduct(P, gpk.G2, Q, gpk.W)

	// R4 = T1^sx * U^-sDelta1
	R4 := sig.T1.Mul2(sig.SX, gpk.U, curve.ModNeg(sig.SDelta1, q))
	// R5 = T2^sx * V^-sDelta2
	R5 := sig.T2.Mul2(sig.SX, gpk.V, curve.ModNeg(sig.SDelta2, q))

	// recompute challenge
	t := &Transcript{}
	t.AppendG1(sig.T1, sig.T2, sig.T3, R1, R2)
	t.AppendGt(R3)
	t.AppendG1(R4, R5)
	t.AppendBytes(msg)

	if !t.Challenge(curve).Equals(sig.C) {
		return errors.WithMessage(ErrInvalidSignature, "zero-knowledge proof is invalid")
	}

	return nil
}

// VerifyBytes decodes raw and verifies it as a group signature on msg.
// Signatures that cannot be decoded are reported as invalid.
func (g *GroupSig) VerifyBytes(raw []byte, gpk *GroupPublicKey, msg []byte) error {
	sig, err := g.NewSignatureFromBytes(raw)
	if err != nil {
		return errors.WithMessage(ErrInvalidSignature, err.Error())
	}

	return g.Verify(sig, gpk, msg)
}
