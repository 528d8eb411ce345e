/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keystore

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/IBM/groupsig/bccsp/keystore/kvs"
	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNotRegistered is returned by Lookup when no member was issued the
// credential element.
var ErrNotRegistered = errors.New("no member registered for credential element")

// ErrAlreadyRegistered is returned by Register when the credential element or
// the enrollment id is already on record.
var ErrAlreadyRegistered = errors.New("member already registered")

// MemberRecord is the issuance record kept for every credential the group
// manager hands out.
type MemberRecord struct {
	EnrollmentID string
	A            []byte
}

// KVS is the storage a Registry keeps its records in.
type KVS interface {
	Put(id string, entry interface{}) error
	Get(id string, entry interface{}) error
	Exists(id string) bool
	Delete(id string) error
}

// Registry maps the credential element A of an issued credential to the
// identity of the member it was issued to, so that an opened signature can be
// attributed.
type Registry struct {
	KVS    KVS
	Logger *zap.SugaredLogger
}

// NewRegistry opens (or creates) a registry stored under path.
func NewRegistry(path string, logger *zap.SugaredLogger) (*Registry, error) {
	store, err := kvs.NewFileBased(path)
	if err != nil {
		return nil, errors.WithMessage(err, "could not open registry")
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Registry{
		KVS:    store,
		Logger: logger,
	}, nil
}

func elementKey(A *math.G1) string {
	digest := sha256.Sum256(A.Bytes())
	return hex.EncodeToString(digest[:])
}

func enrollmentKey(enrollmentID string) string {
	digest := sha256.Sum256([]byte(enrollmentID))
	return "eid." + hex.EncodeToString(digest[:])
}

// Register records that A was issued to enrollmentID.
func (r *Registry) Register(enrollmentID string, A *math.G1) error {
	if enrollmentID == "" || A == nil {
		return errors.New("cannot register member: received empty input")
	}

	key := elementKey(A)
	if r.KVS.Exists(key) {
		return errors.WithMessagef(ErrAlreadyRegistered, "credential element [%s]", key)
	}
	eidKey := enrollmentKey(enrollmentID)
	if r.KVS.Exists(eidKey) {
		return errors.WithMessagef(ErrAlreadyRegistered, "enrollment id [%s]", enrollmentID)
	}

	record := &MemberRecord{
		EnrollmentID: enrollmentID,
		A:            A.Bytes(),
	}
	if err := r.KVS.Put(key, record); err != nil {
		return errors.WithMessagef(err, "could not register member [%s]", enrollmentID)
	}
	if err := r.KVS.Put(eidKey, record); err != nil {
		if derr := r.KVS.Delete(key); derr != nil {
			r.Logger.Errorw("could not roll back partial registration", "enrollmentID", enrollmentID, "element", key, "error", derr)
		}
		return errors.WithMessagef(err, "could not register member [%s]", enrollmentID)
	}

	r.Logger.Debugw("registered member", "enrollmentID", enrollmentID, "element", key)

	return nil
}

// Lookup returns the issuance record of the member holding A.
func (r *Registry) Lookup(A *math.G1) (*MemberRecord, error) {
	if A == nil {
		return nil, errors.New("cannot lookup member: received nil input")
	}

	key := elementKey(A)
	if !r.KVS.Exists(key) {
		return nil, errors.WithMessagef(ErrNotRegistered, "element [%s]", key)
	}

	record := &MemberRecord{}
	if err := r.KVS.Get(key, record); err != nil {
		return nil, err
	}

	r.Logger.Debugw("found member", "enrollmentID", record.EnrollmentID, "element", key)

	return record, nil
}

// LookupEnrollmentID returns the issuance record of enrollmentID.
func (r *Registry) LookupEnrollmentID(enrollmentID string) (*MemberRecord, error) {
	key := enrollmentKey(enrollmentID)
	if !r.KVS.Exists(key) {
		return nil, errors.WithMessagef(ErrNotRegistered, "enrollment id [%s]", enrollmentID)
	}

	record := &MemberRecord{}
	if err := r.KVS.Get(key, record); err != nil {
		return nil, err
	}

	return record, nil
}
