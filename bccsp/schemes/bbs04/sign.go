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

// blindedCommitment is the first move of the proof of knowledge of alpha and
// delta = alpha * x with respect to a single base.
type blindedCommitment struct {
	alpha  *math.Zr
	delta  *math.Zr
	rAlpha *math.Zr
	rDelta *math.Zr

	T  *math.G1 // base^alpha
	R1 *math.G1 // base^rAlpha
	R2 *math.G1 // T^rx * base^-rDelta
}

type blindedResponse struct {
	sAlpha *math.Zr
	sDelta *math.Zr
}

// blindedCommit runs the commitment step against base. rx is the blinding of
// x and must be shared by every invocation that belongs to one signature.
func (g *GroupSig) blindedCommit(base *math.G1, x, rx *math.Zr, rng io.Reader) blindedCommitment {
	curve := g.Curve

	alpha := curve.NewRandomZr(rng)
	rAlpha := curve.NewRandomZr(rng)
	rDelta := curve.NewRandomZr(rng)

	T := base.Mul(alpha)

	R2 := T.Mul(rx)
	R2.Sub(base.Mul(rDelta))

	return blindedCommitment{
		alpha:  alpha,
		delta:  curve.ModMul(alpha, x, curve.GroupOrder),
		rAlpha: rAlpha,
		rDelta: rDelta,
		T:      T,
		R1:     base.Mul(rAlpha),
		R2:     R2,
	}
}

func (b blindedCommitment) respond(curve *math.Curve, c *math.Zr) blindedResponse {
	return blindedResponse{
		sAlpha: curve.ModAdd(b.rAlpha, curve.ModMul(c, b.alpha, curve.GroupOrder), curve.GroupOrder), // s = r + c*alpha
		sDelta: curve.ModAdd(b.rDelta, curve.ModMul(c, b.delta, curve.GroupOrder), curve.GroupOrder), // s_delta = r_delta + c*delta
	}
}

// Commitment is the first move of a group signature. It carries the secret
// randomness needed to answer exactly one challenge.
type Commitment struct {
	curve *math.Curve

	x  *math.Zr
	rx *math.Zr

	u blindedCommitment
	v blindedCommitment

	T3 *math.G1
	R3 *math.Gt
}

// Commit performs the commitment phase of signing with cred.
func (g *GroupSig) Commit(cred *MemberCredential, gpk *GroupPublicKey, rng io.Reader) (*Commitment, error) {
	if !cred.complete() || !gpk.complete() || rng == nil {
		return nil, errors.New("cannot create group signature: received nil input")
	}

	curve := g.Curve
	q := curve.GroupOrder

	rx := curve.NewRandomZr(rng)

	u := g.blindedCommit(gpk.U, cred.X, rx, rng)
	v := g.blindedCommit(gpk.V, cred.X, rx, rng)

	// T3 = A * H^(alpha + beta)
	T3 := cred.A.Copy()
	T3.Add(gpk.H.Mul(curve.ModAdd(u.alpha, v.alpha, q)))

	// R3 = e(T3,G2)^rx * e(H,W)^-(rAlpha+rBeta) * e(H,G2)^-(rDelta1+rDelta2)
	//    = e(T3^rx * H^-(rDelta1+rDelta2), G2) * e(H^-(rAlpha+rBeta), W)
	P := T3.Mul(rx)
	P.Sub(gpk.H.Mul(curve.ModAdd(u.rDelta, v.rDelta, q)))
	Q := gpk.H.Mul(curve.ModNeg(curve.ModAdd(u.rAlpha, v.rAlpha, q), q))

	return &Commitment{
		curve: curve,
		x:     cred.X,
		rx:    rx,
		u:     u,
		v:     v,
		T3:    T3,
		R3:    g.pairingProduct(P, gpk.G2, Q, gpk.W),
	}, nil
}

// T1 returns the commitment U^alpha.
func (c *Commitment) T1() *math.G1 {
	return c.u.T
}

// T2 returns the commitment V^beta.
func (c *Commitment) T2() *math.G1 {
	return c.v.T
}

// Transcript returns the data the challenge is computed over: T1, T2, T3,
// R1, R2, R3, R4, R5 in this order, followed by msg.
func (c *Commitment) Transcript(msg []byte) *Transcript {
	t := &Transcript{}
	t.AppendG1(c.u.T, c.v.T, c.T3, c.u.R1, c.v.R1)
	t.AppendGt(c.R3)
	t.AppendG1(c.u.R2, c.v.R2)
	t.AppendBytes(msg)
	return t
}

// Challenge derives the Fiat-Shamir challenge for this commitment.
func (c *Commitment) Challenge(msg []byte) *math.Zr {
	return c.Transcript(msg).Challenge(c.curve)
}

// Respond completes the signature for challenge ch. The commitment is taken
// by value and must not be answered twice: two responses to different
// challenges reveal x.
func (g *GroupSig) Respond(c Commitment, ch *math.Zr) (*Signature, error) {
	if c.curve == nil || ch == nil {
		return nil, errors.New("cannot respond to challenge: received nil input")
	}

	curve := g.Curve
	q := curve.GroupOrder

	ru := c.u.respond(curve, ch)
	rv := c.v.respond(curve, ch)

	return &Signature{
		T1:      c.u.T,
		T2:      c.v.T,
		T3:      c.T3,
		C:       ch.Copy(),
		SAlpha:  ru.sAlpha,
		SBeta:   rv.sAlpha,
		SX:      curve.ModAdd(c.rx, curve.ModMul(ch, c.x, q), q), // s_x = r_x + c*x
		SDelta1: ru.sDelta,
		SDelta2: rv.sDelta,
	}, nil
}

// Sign produces a group signature on msg with cred. msg may be empty, in
// which case the signature only proves membership.
func (g *GroupSig) Sign(cred *MemberCredential, gpk *GroupPublicKey, msg []byte, rng io.Reader) (*Signature, error) {
	// Step 1: first message (t-values)
	commitment, err := g.Commit(cred, gpk, rng)
	if err != nil {
		return nil, err
	}

	// Step 2: compute the Fiat-Shamir hash, forming the challenge of the ZKP
	ch := commitment.Challenge(msg)

	// Step 3: reply to the challenge message (s-values)
	return g.Respond(*commitment, ch)
}
