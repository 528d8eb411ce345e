/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package kvs

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileBasedKVS stores each entry as a JSON document in its own file under a
// directory.
type FileBasedKVS struct {
	path string
}

// NewFileBased returns a store rooted at path, creating the directory if
// needed.
func NewFileBased(path string) (*FileBasedKVS, error) {
	f, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "could not stat path [%s]", path)
	}

	if err == nil && f.Mode().IsRegular() {
		return nil, errors.Errorf("invalid path [%s]: it's a file", path)
	}

	if os.IsNotExist(err) {
		err = os.MkdirAll(path, 0770)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create path [%s]", path)
		}
	}

	return &FileBasedKVS{
		path: path,
	}, nil
}

func (f *FileBasedKVS) fileName(id string) (string, error) {
	if !validID.MatchString(id) || id == "." || id == ".." {
		return "", errors.Errorf("invalid id [%s]", id)
	}

	return filepath.Join(f.path, id), nil
}

// Put marshals entry to JSON and stores it under id, replacing any previous
// entry.
func (f *FileBasedKVS) Put(id string, entry interface{}) error {
	fname, err := f.fileName(id)
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrapf(err, "marshalling entry [%s] failed", id)
	}

	err = ioutil.WriteFile(fname, bytes, 0660)
	if err != nil {
		return errors.Wrapf(err, "writing [%s] failed", fname)
	}

	return nil
}

// Get unmarshals the entry stored under id into entry.
func (f *FileBasedKVS) Get(id string, entry interface{}) error {
	fname, err := f.fileName(id)
	if err != nil {
		return err
	}

	bytes, err := ioutil.ReadFile(fname)
	if err != nil {
		return errors.Wrapf(err, "could not read file [%s]", fname)
	}

	err = json.Unmarshal(bytes, entry)
	if err != nil {
		return errors.Wrapf(err, "could not unmarshal bytes for file [%s]", fname)
	}

	return nil
}

// Exists reports whether an entry is stored under id.
func (f *FileBasedKVS) Exists(id string) bool {
	fname, err := f.fileName(id)
	if err != nil {
		return false
	}

	_, err = os.Stat(fname)
	return err == nil
}

// Delete removes the entry stored under id. Deleting a missing entry is not
// an error.
func (f *FileBasedKVS) Delete(id string) error {
	fname, err := f.fileName(id)
	if err != nil {
		return err
	}

	err = os.Remove(fname)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not remove file [%s]", fname)
	}

	return nil
}
