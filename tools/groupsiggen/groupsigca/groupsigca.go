/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package groupsigca

import (
	"os"
	"path/filepath"

	"github.com/IBM/groupsig/bccsp/keystore"
	"github.com/IBM/groupsig/bccsp/schemes/bbs04"
	"github.com/pkg/errors"
)

// GenerateGroupKey runs the group setup and returns the serialized group
// secret key and group public key.
func GenerateGroupKey(gs *bbs04.GroupSig) ([]byte, []byte, error) {
	rng, err := gs.Curve.Rand()
	if err != nil {
		return nil, nil, errors.WithMessage(err, "Error getting PRNG")
	}

	gpk, gsk, err := gs.Setup(rng)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "cannot generate group key")
	}

	return gsk.Bytes(), gpk.Bytes(), nil
}

// IssueMember issues a fresh member credential under the group manager's key
// and records it in the registry against enrollmentID.
func IssueMember(gs *bbs04.GroupSig, enrollmentID string, gskBytes, gpkBytes []byte, registry *keystore.Registry) ([]byte, error) {
	if enrollmentID == "" {
		return nil, errors.Errorf("the enrollment id value is empty")
	}

	gsk, err := gs.NewGroupSecretKeyFromBytes(gskBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode group secret key")
	}
	gpk, err := gs.NewGroupPublicKeyFromBytes(gpkBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode group public key")
	}

	rng, err := gs.Curve.Rand()
	if err != nil {
		return nil, errors.WithMessage(err, "Error getting PRNG")
	}
	cred, err := gs.Issue(gsk, gpk, rng)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to issue member credential")
	}

	if err := registry.Register(enrollmentID, cred.A); err != nil {
		return nil, err
	}

	return cred.Bytes(), nil
}

// EnrollMember issues a credential to enrollmentID and stores it in the file
// name under dir. dir must not exist yet; it and the credential file are
// created before the member is registered, and removed again if issuance
// fails, so a registered member always has a credential on disk.
func EnrollMember(gs *bbs04.GroupSig, enrollmentID, dir, name string, gskBytes, gpkBytes []byte, registry *keystore.Registry) error {
	if _, err := os.Stat(dir); err == nil {
		return errors.Errorf("directory %s already exists", dir)
	}

	if err := os.MkdirAll(dir, 0770); err != nil {
		return errors.Wrapf(err, "could not create directory [%s]", dir)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		os.RemoveAll(dir)
		return errors.Wrapf(err, "could not create credential file [%s]", path)
	}
	defer f.Close()

	cred, err := IssueMember(gs, enrollmentID, gskBytes, gpkBytes, registry)
	if err != nil {
		f.Close()
		os.RemoveAll(dir)
		return err
	}

	if _, err := f.Write(cred); err != nil {
		return errors.Wrapf(err, "could not write credential file [%s]", path)
	}

	return errors.Wrapf(f.Sync(), "could not write credential file [%s]", path)
}

// SignMessage loads a member credential, checks it against the group public
// key and signs msg with it.
func SignMessage(gs *bbs04.GroupSig, credBytes, gpkBytes, msg []byte) ([]byte, error) {
	cred, err := gs.NewMemberCredentialFromBytes(credBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode member credential")
	}
	gpk, err := gs.NewGroupPublicKeyFromBytes(gpkBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode group public key")
	}
	if err := gs.VerifyCredential(cred, gpk); err != nil {
		return nil, err
	}

	rng, err := gs.Curve.Rand()
	if err != nil {
		return nil, errors.WithMessage(err, "Error getting PRNG")
	}
	sig, err := gs.Sign(cred, gpk, msg, rng)
	if err != nil {
		return nil, err
	}

	return sig.Bytes(), nil
}

// VerifySignature checks a serialized group signature on msg.
func VerifySignature(gs *bbs04.GroupSig, sigBytes, gpkBytes, msg []byte) error {
	gpk, err := gs.NewGroupPublicKeyFromBytes(gpkBytes)
	if err != nil {
		return errors.WithMessage(err, "failed to decode group public key")
	}

	return gs.VerifyBytes(sigBytes, gpk, msg)
}

// OpenSignature verifies a serialized group signature on msg and returns the
// issuance record of the member who produced it.
func OpenSignature(gs *bbs04.GroupSig, sigBytes, gpkBytes, gskBytes, msg []byte, registry *keystore.Registry) (*keystore.MemberRecord, error) {
	if err := VerifySignature(gs, sigBytes, gpkBytes, msg); err != nil {
		return nil, err
	}

	sig, err := gs.NewSignatureFromBytes(sigBytes)
	if err != nil {
		return nil, err
	}
	gsk, err := gs.NewGroupSecretKeyFromBytes(gskBytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to decode group secret key")
	}

	A, err := gs.Open(sig, gsk)
	if err != nil {
		return nil, err
	}

	return registry.Lookup(A)
}
