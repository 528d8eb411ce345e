/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import "github.com/pkg/errors"

var (
	// ErrDegenerateCredential is returned by Issue when gamma + x is zero and
	// the credential element 1/(gamma + x) is undefined.
	ErrDegenerateCredential = errors.New("degenerate credential: gamma + x is zero")

	// ErrInvalidSignature is returned when a group signature does not verify.
	ErrInvalidSignature = errors.New("group signature invalid")

	// ErrInvalidCredential is returned when a member credential does not
	// satisfy e(A, W * G2^x) = e(G1, G2).
	ErrInvalidCredential = errors.New("member credential invalid")
)
