/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package groupsigca

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/IBM/groupsig/bccsp/keystore"
	"github.com/IBM/groupsig/bccsp/schemes/bbs04"
	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var testDir = filepath.Join(os.TempDir(), "groupsigca-test")

func TestGroupSigCa(t *testing.T) {
	require.NoError(t, cleanup())
	defer os.RemoveAll(testDir)

	gs := &bbs04.GroupSig{Curve: math.Curves[math.FP256BN_AMCL]}

	gskBytes, gpkBytes, err := GenerateGroupKey(gs)
	require.NoError(t, err)
	require.Len(t, gskBytes, gs.GroupSecretKeySize())
	require.Len(t, gpkBytes, gs.GroupPublicKeySize())

	registry, err := keystore.NewRegistry(filepath.Join(testDir, "registry"), nil)
	require.NoError(t, err)

	aliceCred, err := IssueMember(gs, "alice", gskBytes, gpkBytes, registry)
	require.NoError(t, err)
	bobCred, err := IssueMember(gs, "bob", gskBytes, gpkBytes, registry)
	require.NoError(t, err)

	_, err = IssueMember(gs, "alice", gskBytes, gpkBytes, registry)
	require.True(t, errors.Is(err, keystore.ErrAlreadyRegistered))

	_, err = IssueMember(gs, "", gskBytes, gpkBytes, registry)
	require.EqualError(t, err, "the enrollment id value is empty")

	msg := []byte("hello group")

	sig, err := SignMessage(gs, aliceCred, gpkBytes, msg)
	require.NoError(t, err)
	require.NoError(t, VerifySignature(gs, sig, gpkBytes, msg))

	record, err := OpenSignature(gs, sig, gpkBytes, gskBytes, msg, registry)
	require.NoError(t, err)
	require.Equal(t, "alice", record.EnrollmentID)

	sig, err = SignMessage(gs, bobCred, gpkBytes, msg)
	require.NoError(t, err)
	record, err = OpenSignature(gs, sig, gpkBytes, gskBytes, msg, registry)
	require.NoError(t, err)
	require.Equal(t, "bob", record.EnrollmentID)

	// a signature on a different message is not opened
	err = VerifySignature(gs, sig, gpkBytes, []byte("other"))
	require.True(t, errors.Is(err, bbs04.ErrInvalidSignature))
	_, err = OpenSignature(gs, sig, gpkBytes, gskBytes, []byte("other"), registry)
	require.True(t, errors.Is(err, bbs04.ErrInvalidSignature))

	// a credential from another group is refused before signing
	otherSk, otherPk, err := GenerateGroupKey(gs)
	require.NoError(t, err)
	otherRegistry, err := keystore.NewRegistry(filepath.Join(testDir, "other-registry"), nil)
	require.NoError(t, err)
	otherCred, err := IssueMember(gs, "mallory", otherSk, otherPk, otherRegistry)
	require.NoError(t, err)
	_, err = SignMessage(gs, otherCred, gpkBytes, msg)
	require.True(t, errors.Is(err, bbs04.ErrInvalidCredential))

	// opened under the wrong registry the member is unknown
	sig, err = SignMessage(gs, otherCred, otherPk, msg)
	require.NoError(t, err)
	_, err = OpenSignature(gs, sig, otherPk, otherSk, msg, registry)
	require.True(t, errors.Is(err, keystore.ErrNotRegistered))

	_, err = SignMessage(gs, aliceCred[1:], gpkBytes, msg)
	require.Error(t, err)
	require.Error(t, VerifySignature(gs, sig, gpkBytes[1:], msg))
}

func TestConfig(t *testing.T) {
	require.NoError(t, cleanup())
	defer os.RemoveAll(testDir)

	path := filepath.Join(testDir, "config.yaml")
	require.NoError(t, WriteConfig(path, &Config{Version: ConfigVersion, Curve: BLS12_381}))

	conf, err := ReadConfig(path)
	require.NoError(t, err)
	require.Equal(t, BLS12_381, conf.Curve)

	for _, name := range CurveNames {
		curve, err := CurveByName(name)
		require.NoError(t, err)
		require.NotNil(t, curve)
	}
	_, err = CurveByName("P256")
	require.EqualError(t, err, "invalid curve [P256]")

	require.NoError(t, ioutil.WriteFile(path, []byte("version: 2\ncurve: BN254\n"), 0640))
	_, err = ReadConfig(path)
	require.EqualError(t, err, "unsupported group config version [2]")

	require.NoError(t, ioutil.WriteFile(path, []byte("version: 1\ncurve: P256\n"), 0640))
	_, err = ReadConfig(path)
	require.EqualError(t, err, "invalid curve [P256]")

	require.NoError(t, ioutil.WriteFile(path, []byte("version: 1\ncurve: BN254\nextra: 1\n"), 0640))
	_, err = ReadConfig(path)
	require.Error(t, err)

	_, err = ReadConfig(filepath.Join(testDir, "missing.yaml"))
	require.Error(t, err)
}

func cleanup() error {
	// clean up any previous files
	err := os.RemoveAll(testDir)
	if err != nil {
		return nil
	}
	return os.Mkdir(testDir, os.ModePerm)
}

func TestEnrollMember(t *testing.T) {
	require.NoError(t, cleanup())
	defer os.RemoveAll(testDir)

	gs := &bbs04.GroupSig{Curve: math.Curves[math.BN254]}
	gskBytes, gpkBytes, err := GenerateGroupKey(gs)
	require.NoError(t, err)
	registry, err := keystore.NewRegistry(filepath.Join(testDir, "registry"), nil)
	require.NoError(t, err)

	// the credential directory cannot be created: nothing is registered
	blocker := filepath.Join(testDir, "user")
	require.NoError(t, ioutil.WriteFile(blocker, []byte("not a directory"), 0640))
	err = EnrollMember(gs, "alice", filepath.Join(blocker, "alice"), "MemberCredential", gskBytes, gpkBytes, registry)
	require.Error(t, err)
	_, err = registry.LookupEnrollmentID("alice")
	require.True(t, errors.Is(err, keystore.ErrNotRegistered))
	require.NoError(t, os.Remove(blocker))

	// the id can be issued once the directory is usable
	dir := filepath.Join(testDir, "user", "alice")
	require.NoError(t, EnrollMember(gs, "alice", dir, "MemberCredential", gskBytes, gpkBytes, registry))
	credBytes, err := ioutil.ReadFile(filepath.Join(dir, "MemberCredential"))
	require.NoError(t, err)
	cred, err := gs.NewMemberCredentialFromBytes(credBytes)
	require.NoError(t, err)
	record, err := registry.LookupEnrollmentID("alice")
	require.NoError(t, err)
	require.Equal(t, cred.A.Bytes(), record.A)

	err = EnrollMember(gs, "alice", dir, "MemberCredential", gskBytes, gpkBytes, registry)
	require.EqualError(t, err, "directory "+dir+" already exists")

	// a failed issuance leaves no directory behind
	other := filepath.Join(testDir, "user", "alice-again")
	err = EnrollMember(gs, "alice", other, "MemberCredential", gskBytes, gpkBytes, registry)
	require.True(t, errors.Is(err, keystore.ErrAlreadyRegistered))
	_, err = os.Stat(other)
	require.True(t, os.IsNotExist(err))
}
