/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package groupsigca

import (
	"io/ioutil"

	math "github.com/IBM/mathlib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	FP256BN_AMCL        = "FP256BN_AMCL"
	BN254               = "BN254"
	FP256BN_AMCL_MIRACL = "FP256BN_AMCL_MIRACL"
	BLS12_381           = "BLS12_381"
	BLS12_381_BBS       = "BLS12_381_BBS"
)

// ConfigVersion is the format version written to config.yaml.
const ConfigVersion = 1

// CurveNames lists the curves accepted by CurveByName.
var CurveNames = []string{FP256BN_AMCL, BN254, FP256BN_AMCL_MIRACL, BLS12_381, BLS12_381_BBS}

// CurveByName returns the curve with the given name.
func CurveByName(name string) (*math.Curve, error) {
	switch name {
	case FP256BN_AMCL:
		return math.Curves[math.FP256BN_AMCL], nil
	case BN254:
		return math.Curves[math.BN254], nil
	case FP256BN_AMCL_MIRACL:
		return math.Curves[math.FP256BN_AMCL_MIRACL], nil
	case BLS12_381:
		return math.Curves[math.BLS12_381], nil
	case BLS12_381_BBS:
		return math.Curves[math.BLS12_381_BBS], nil
	default:
		return nil, errors.Errorf("invalid curve [%s]", name)
	}
}

// Config is the public description of a group, stored next to the group
// public key.
type Config struct {
	Version int    `yaml:"version"`
	Curve   string `yaml:"curve"`
}

// WriteConfig stores conf as YAML at path.
func WriteConfig(path string, conf *Config) error {
	raw, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "failed to marshal group config")
	}

	return errors.Wrapf(ioutil.WriteFile(path, raw, 0640), "failed to write group config [%s]", path)
}

// ReadConfig loads and validates the group config at path.
func ReadConfig(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read group config [%s]", path)
	}

	conf := &Config{}
	if err := yaml.UnmarshalStrict(raw, conf); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal group config [%s]", path)
	}

	if conf.Version != ConfigVersion {
		return nil, errors.Errorf("unsupported group config version [%d]", conf.Version)
	}
	if _, err := CurveByName(conf.Curve); err != nil {
		return nil, err
	}

	return conf, nil
}
