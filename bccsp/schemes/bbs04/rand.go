/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs04

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// NewSeededReader returns a deterministic stream of bytes derived from seed
// with SHAKE256. It is meant for reproducible test vectors only; keys and
// signatures produced from it are as predictable as the seed.
func NewSeededReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	return h
}
