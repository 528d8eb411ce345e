/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"io"

	"github.com/pkg/errors"
)

// Setup generates a fresh group: the public key shared with every member and
// verifier, and the secret key kept by the group manager.
func (g *GroupSig) Setup(rng io.Reader) (*GroupPublicKey, *GroupSecretKey, error) {
	if rng == nil {
		return nil, nil, errors.New("cannot run setup: received nil input")
	}

	curve := g.Curve

	xi1 := curve.NewRandomZr(rng)
	xi2 := curve.NewRandomZr(rng)

	// tmp = g1^r is a uniformly random element of G1
	tmp := curve.GenG1.Mul(curve.NewRandomZr(rng))

	u := tmp.Mul(xi1)
	v := tmp.Mul(xi2)

	// h = u^xi2 = v^xi1
	h := u.Mul(xi2)

	gamma := curve.NewRandomZr(rng)
	w := curve.GenG2.Mul(gamma)

	gpk := &GroupPublicKey{
		H:  h,
		U:  u,
		V:  v,
		W:  w,
		G1: curve.GenG1.Copy(),
		G2: curve.GenG2.Copy(),
	}
	gsk := &GroupSecretKey{
		Xi1:   xi1,
		Xi2:   xi2,
		Gamma: gamma,
	}

	return gpk, gsk, nil
}
