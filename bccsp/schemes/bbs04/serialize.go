/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"bytes"

	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
)

// Every structure is encoded as the concatenation of the canonical
// fixed-width encodings of its fields, in declaration order.

// Bytes returns the encoding of gpk: H, U, V, W, G1, G2.
func (gpk *GroupPublicKey) Bytes() []byte {
	out := make([]byte, 0, 4*len(gpk.H.Bytes())+2*len(gpk.W.Bytes()))
	out = append(out, gpk.H.Bytes()...)
	out = append(out, gpk.U.Bytes()...)
	out = append(out, gpk.V.Bytes()...)
	out = append(out, gpk.W.Bytes()...)
	out = append(out, gpk.G1.Bytes()...)
	out = append(out, gpk.G2.Bytes()...)
	return out
}

// Bytes returns the encoding of gsk: Xi1, Xi2, Gamma.
func (gsk *GroupSecretKey) Bytes() []byte {
	out := make([]byte, 0, 3*len(gsk.Xi1.Bytes()))
	out = append(out, gsk.Xi1.Bytes()...)
	out = append(out, gsk.Xi2.Bytes()...)
	out = append(out, gsk.Gamma.Bytes()...)
	return out
}

// Bytes returns the encoding of cred: X, A.
func (cred *MemberCredential) Bytes() []byte {
	out := make([]byte, 0, len(cred.X.Bytes())+len(cred.A.Bytes()))
	out = append(out, cred.X.Bytes()...)
	out = append(out, cred.A.Bytes()...)
	return out
}

// Bytes returns the encoding of sig: T1, T2, T3, C, SAlpha, SBeta, SX,
// SDelta1, SDelta2.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, 3*len(sig.T1.Bytes())+6*len(sig.C.Bytes()))
	out = append(out, sig.T1.Bytes()...)
	out = append(out, sig.T2.Bytes()...)
	out = append(out, sig.T3.Bytes()...)
	out = append(out, sig.C.Bytes()...)
	out = append(out, sig.SAlpha.Bytes()...)
	out = append(out, sig.SBeta.Bytes()...)
	out = append(out, sig.SX.Bytes()...)
	out = append(out, sig.SDelta1.Bytes()...)
	out = append(out, sig.SDelta2.Bytes()...)
	return out
}

// G1Size returns the length of an encoded G1 element.
func (g *GroupSig) G1Size() int {
	return len(g.Curve.GenG1.Bytes())
}

// G2Size returns the length of an encoded G2 element.
func (g *GroupSig) G2Size() int {
	return len(g.Curve.GenG2.Bytes())
}

// ScalarSize returns the length of an encoded scalar.
func (g *GroupSig) ScalarSize() int {
	// the largest scalar, q-1, has the full width
	return len(g.Curve.ModNeg(g.Curve.NewZrFromInt(1), g.Curve.GroupOrder).Bytes())
}

// GroupPublicKeySize returns the length of an encoded GroupPublicKey.
func (g *GroupSig) GroupPublicKeySize() int {
	return 4*g.G1Size() + 2*g.G2Size()
}

// GroupSecretKeySize returns the length of an encoded GroupSecretKey.
func (g *GroupSig) GroupSecretKeySize() int {
	return 3 * g.ScalarSize()
}

// MemberCredentialSize returns the length of an encoded MemberCredential.
func (g *GroupSig) MemberCredentialSize() int {
	return g.ScalarSize() + g.G1Size()
}

// SignatureSize returns the length of an encoded Signature.
func (g *GroupSig) SignatureSize() int {
	return 3*g.G1Size() + 6*g.ScalarSize()
}

// NewGroupPublicKeyFromBytes decodes a GroupPublicKey.
func (g *GroupSig) NewGroupPublicKeyFromBytes(raw []byte) (*GroupPublicKey, error) {
	if len(raw) != g.GroupPublicKeySize() {
		return nil, errors.Errorf("invalid group public key length: expected %d bytes, got %d", g.GroupPublicKeySize(), len(raw))
	}

	d := g.newDecoder(raw)
	gpk := &GroupPublicKey{
		H:  d.g1("H"),
		U:  d.g1("U"),
		V:  d.g1("V"),
		W:  d.g2("W"),
		G1: d.g1("G1"),
		G2: d.g2("G2"),
	}
	if d.err != nil {
		return nil, errors.WithMessage(d.err, "invalid group public key")
	}

	return gpk, nil
}

// NewGroupSecretKeyFromBytes decodes a GroupSecretKey.
func (g *GroupSig) NewGroupSecretKeyFromBytes(raw []byte) (*GroupSecretKey, error) {
	if len(raw) != g.GroupSecretKeySize() {
		return nil, errors.Errorf("invalid group secret key length: expected %d bytes, got %d", g.GroupSecretKeySize(), len(raw))
	}

	d := g.newDecoder(raw)
	gsk := &GroupSecretKey{
		Xi1:   d.zr("Xi1"),
		Xi2:   d.zr("Xi2"),
		Gamma: d.zr("Gamma"),
	}
	if d.err != nil {
		return nil, errors.WithMessage(d.err, "invalid group secret key")
	}

	return gsk, nil
}

// NewMemberCredentialFromBytes decodes a MemberCredential.
func (g *GroupSig) NewMemberCredentialFromBytes(raw []byte) (*MemberCredential, error) {
	if len(raw) != g.MemberCredentialSize() {
		return nil, errors.Errorf("invalid member credential length: expected %d bytes, got %d", g.MemberCredentialSize(), len(raw))
	}

	d := g.newDecoder(raw)
	cred := &MemberCredential{
		X: d.zr("X"),
		A: d.g1("A"),
	}
	if d.err != nil {
		return nil, errors.WithMessage(d.err, "invalid member credential")
	}

	return cred, nil
}

// NewSignatureFromBytes decodes a Signature.
func (g *GroupSig) NewSignatureFromBytes(raw []byte) (*Signature, error) {
	if len(raw) != g.SignatureSize() {
		return nil, errors.Errorf("invalid signature length: expected %d bytes, got %d", g.SignatureSize(), len(raw))
	}

	d := g.newDecoder(raw)
	sig := &Signature{
		T1:      d.g1("T1"),
		T2:      d.g1("T2"),
		T3:      d.g1("T3"),
		C:       d.zr("C"),
		SAlpha:  d.zr("SAlpha"),
		SBeta:   d.zr("SBeta"),
		SX:      d.zr("SX"),
		SDelta1: d.zr("SDelta1"),
		SDelta2: d.zr("SDelta2"),
	}
	if d.err != nil {
		return nil, errors.WithMessage(d.err, "invalid signature")
	}

	return sig, nil
}

// decoder reads consecutive fixed-width elements from a buffer. After the
// first failure every read returns nil and err holds the cause.
type decoder struct {
	curve *math.Curve
	raw   []byte

	g1Size, g2Size, zrSize int

	err error
}

func (g *GroupSig) newDecoder(raw []byte) *decoder {
	return &decoder{
		curve:  g.Curve,
		raw:    raw,
		g1Size: g.G1Size(),
		g2Size: g.G2Size(),
		zrSize: g.ScalarSize(),
	}
}

func (d *decoder) next(n int) []byte {
	b := d.raw[:n]
	d.raw = d.raw[n:]
	return b
}

// g1 decodes a G1 element. Only the canonical encoding of a point other
// than the identity is accepted.
func (d *decoder) g1(name string) *math.G1 {
	if d.err != nil {
		return nil
	}

	b := d.next(d.g1Size)
	p, err := d.curve.NewG1FromBytes(b)
	if err != nil {
		d.err = errors.Wrapf(err, "could not decode %s", name)
		return nil
	}
	if !bytes.Equal(p.Bytes(), b) {
		d.err = errors.Errorf("could not decode %s: not a canonical point encoding", name)
		return nil
	}
	if p.IsInfinity() {
		d.err = errors.Errorf("could not decode %s: point at infinity", name)
		return nil
	}

	return p
}

// g2 decodes a G2 element with the same restrictions as g1.
func (d *decoder) g2(name string) *math.G2 {
	if d.err != nil {
		return nil
	}

	b := d.next(d.g2Size)
	p, err := d.curve.NewG2FromBytes(b)
	if err != nil {
		d.err = errors.Wrapf(err, "could not decode %s", name)
		return nil
	}
	if !bytes.Equal(p.Bytes(), b) {
		d.err = errors.Errorf("could not decode %s: not a canonical point encoding", name)
		return nil
	}

	// the identity is the only element with P + P = P
	twice := p.Copy()
	twice.Add(p)
	if twice.Equals(p) {
		d.err = errors.Errorf("could not decode %s: point at infinity", name)
		return nil
	}

	return p
}

// zr decodes a scalar and rejects encodings that are not reduced modulo the
// group order, so that every scalar has exactly one accepted encoding.
func (d *decoder) zr(name string) *math.Zr {
	if d.err != nil {
		return nil
	}

	b := d.next(d.zrSize)
	z := d.curve.NewZrFromBytes(b)
	reduced := z.Copy()
	reduced.Mod(d.curve.GroupOrder)
	if !bytes.Equal(reduced.Bytes(), b) {
		d.err = errors.Errorf("could not decode %s: scalar is not reduced modulo the group order", name)
		return nil
	}

	return reduced
}
