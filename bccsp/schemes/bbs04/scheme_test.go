/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package bbs04_test

import (
	"fmt"
	"io"

	"github.com/IBM/groupsig/bccsp/schemes/bbs04"
	math "github.com/IBM/mathlib"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("BBS04 group signatures", func() {
	testWithCurve(math.FP256BN_AMCL)
	testWithCurve(math.BN254)
	testWithCurve(math.BLS12_381)
})

func curveName(id math.CurveID) string {
	switch id {
	case math.FP256BN_AMCL:
		return "FP256BN_AMCL"
	case math.BN254:
		return "BN254"
	case math.BLS12_381:
		return "BLS12_381"
	default:
		panic(fmt.Sprintf("unknown curve %d", id))
	}
}

func testWithCurve(id math.CurveID) {
	Describe(fmt.Sprintf("setting up a group with two members with curve %s", curveName(id)), func() {
		var (
			gs    *bbs04.GroupSig
			rng   io.Reader
			gpk   *bbs04.GroupPublicKey
			gsk   *bbs04.GroupSecretKey
			alice *bbs04.MemberCredential
			bob   *bbs04.MemberCredential
		)

		BeforeEach(func() {
			var err error
			gs = &bbs04.GroupSig{Curve: math.Curves[id]}

			rng, err = gs.Curve.Rand()
			Expect(err).NotTo(HaveOccurred())

			gpk, gsk, err = gs.Setup(rng)
			Expect(err).NotTo(HaveOccurred())

			alice, err = gs.Issue(gsk, gpk, rng)
			Expect(err).NotTo(HaveOccurred())

			bob, err = gs.Issue(gsk, gpk, rng)
			Expect(err).NotTo(HaveOccurred())
		})

		It("issues valid credentials", func() {
			Expect(gs.VerifyCredential(alice, gpk)).To(Succeed())
			Expect(gs.VerifyCredential(bob, gpk)).To(Succeed())
		})

		Describe("signing a message", func() {
			var (
				msg []byte
				sig *bbs04.Signature
			)

			BeforeEach(func() {
				var err error
				msg = []byte("Lost forever, now and ever")
				sig, err = gs.Sign(alice, gpk, msg, rng)
				Expect(err).NotTo(HaveOccurred())
			})

			It("verifies under the group public key", func() {
				Expect(gs.Verify(sig, gpk, msg)).To(Succeed())
			})

			It("verifies after a round trip through bytes", func() {
				Expect(gs.VerifyBytes(sig.Bytes(), gpk, msg)).To(Succeed())
			})

			It("does not verify on a different message", func() {
				err := gs.Verify(sig, gpk, []byte("To this magical sound that I hear"))
				Expect(err).To(MatchError(ContainSubstring("zero-knowledge proof is invalid")))
			})

			It("does not verify with an altered challenge", func() {
				sig.C = gs.Curve.ModAdd(sig.C, gs.Curve.NewZrFromInt(1), gs.Curve.GroupOrder)
				Expect(gs.Verify(sig, gpk, msg)).NotTo(Succeed())
			})

			It("does not verify under another group", func() {
				otherGpk, _, err := gs.Setup(rng)
				Expect(err).NotTo(HaveOccurred())
				Expect(gs.Verify(sig, otherGpk, msg)).NotTo(Succeed())
			})

			It("opens to the signer", func() {
				A, err := gs.Open(sig, gsk)
				Expect(err).NotTo(HaveOccurred())
				Expect(A.Bytes()).To(Equal(alice.A.Bytes()))
				Expect(A.Bytes()).NotTo(Equal(bob.A.Bytes()))
			})

			It("keeps signatures of the same member unlinkable on their face", func() {
				sig2, err := gs.Sign(alice, gpk, msg, rng)
				Expect(err).NotTo(HaveOccurred())
				Expect(sig2.Bytes()).NotTo(Equal(sig.Bytes()))
				Expect(gs.IsSignedBy(alice, sig2, gsk)).To(BeTrue())
			})
		})

		Describe("signing without a message", func() {
			It("proves membership only", func() {
				sig, err := gs.Sign(bob, gpk, nil, rng)
				Expect(err).NotTo(HaveOccurred())
				Expect(gs.Verify(sig, gpk, nil)).To(Succeed())
				Expect(gs.IsSignedBy(bob, sig, gsk)).To(BeTrue())
				Expect(gs.IsSignedBy(alice, sig, gsk)).To(BeFalse())
			})
		})
	})
}
