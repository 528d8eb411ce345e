/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

// groupsiggen is a command line tool that generates the group manager's keys,
// issues member credentials and signs, verifies and opens group signatures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/IBM/groupsig/bccsp/keystore"
	"github.com/IBM/groupsig/bccsp/schemes/bbs04"
	"github.com/IBM/groupsig/common/flogging"
	"github.com/IBM/groupsig/tools/groupsiggen/groupsigca"
	"github.com/IBM/groupsig/tools/groupsiggen/metadata"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	GroupSigDirManager       = "ca"
	GroupSigDirMsp           = "msp"
	GroupSigDirUser          = "user"
	GroupSigDirRegistry      = "registry"
	GroupSigFileSecretKey    = "GroupSecretKey"
	GroupSigFilePublicKey    = "GroupPublicKey"
	GroupSigFileConfig       = "config.yaml"
	GroupSigFileMemberCred   = "MemberCredential"
	GroupSigDefaultSignature = "signature"
)

// command line flags
var (
	app = kingpin.New("groupsiggen", "Utility for generating and using BBS04 group signature key material")

	outputDir = app.Flag("output", "The output directory in which to place artifacts").Default("groupsig-config").String()
	curveID   = app.Flag("curve", "The curve to use to generate the crypto material").Short('c').Default(groupsigca.BLS12_381).Enum(groupsigca.CurveNames...)
	logLevel  = app.Flag("log-level", "The minimum log level (defaults to $"+flogging.EnvLogSpec+" or info)").String()
	logFormat = app.Flag("log-format", "The log format").Default("logfmt").Enum("logfmt", "json", "console")

	genGroupKey = app.Command("setup", "Generate the group manager's key material")

	issue             = app.Command("issue", "Issue a member credential")
	issueEnrollmentId = issue.Flag("enrollment-id", "The enrollment id of the new member").Short('e').Required().String()

	sign             = app.Command("sign", "Sign a message as a group member")
	signEnrollmentId = sign.Flag("enrollment-id", "The enrollment id of the signing member").Short('e').Required().String()
	signMessage      = sign.Flag("message", "The message to sign").Short('m').Required().String()
	signOutput       = sign.Flag("signature-out", "The file the signature is written to").Default(GroupSigDefaultSignature).String()

	verify          = app.Command("verify", "Verify a group signature")
	verifySignature = verify.Flag("signature", "The file holding the signature").Short('s').Default(GroupSigDefaultSignature).String()
	verifyMessage   = verify.Flag("message", "The signed message").Short('m').Required().String()

	open          = app.Command("open", "Verify a group signature and reveal its signer")
	openSignature = open.Flag("signature", "The file holding the signature").Short('s').Default(GroupSigDefaultSignature).String()
	openMessage   = open.Flag("message", "The signed message").Short('m').Required().String()

	version = app.Command("version", "Show version information")
)

var logger *zap.SugaredLogger

func main() {
	app.HelpFlag.Short('h')

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logging, err := flogging.New(flogging.Config{
		Format:  *logFormat,
		LogSpec: *logLevel,
		Writer:  os.Stderr,
	})
	handleError(err)
	logger = logging.Logger(metadata.ProgramName)
	defer logger.Sync()

	switch command {

	case genGroupKey.FullCommand():
		gs := groupSig(*curveID)

		gsk, gpk, err := groupsigca.GenerateGroupKey(gs)
		handleError(err)

		// Prevent overwriting the existing key
		path := filepath.Join(*outputDir, GroupSigDirManager)
		checkDirectoryNotExists(path, fmt.Sprintf("Directory %s already exists", path))

		path = filepath.Join(*outputDir, GroupSigDirMsp)
		checkDirectoryNotExists(path, fmt.Sprintf("Directory %s already exists", path))

		handleError(os.MkdirAll(filepath.Join(*outputDir, GroupSigDirManager), 0770))
		handleError(os.MkdirAll(filepath.Join(*outputDir, GroupSigDirMsp), 0770))
		writeFile(filepath.Join(*outputDir, GroupSigDirManager, GroupSigFileSecretKey), gsk)
		writeFile(filepath.Join(*outputDir, GroupSigDirMsp, GroupSigFilePublicKey), gpk)
		handleError(groupsigca.WriteConfig(
			filepath.Join(*outputDir, GroupSigDirMsp, GroupSigFileConfig),
			&groupsigca.Config{Version: groupsigca.ConfigVersion, Curve: *curveID},
		))

		logger.Infow("generated group key", "curve", *curveID, "output", *outputDir)

	case issue.FullCommand():
		gs := readGroupSig()

		checkEnrollmentID(*issueEnrollmentId)
		path := filepath.Join(*outputDir, GroupSigDirUser, *issueEnrollmentId)
		checkDirectoryNotExists(path, fmt.Sprintf("This group config already contains a directory \"%s\"", path))

		handleError(groupsigca.EnrollMember(gs, *issueEnrollmentId, path, GroupSigFileMemberCred, readGroupSecretKey(), readGroupPublicKey(), openRegistry()))

		logger.Infow("issued member credential", "enrollmentID", *issueEnrollmentId)

	case sign.FullCommand():
		gs := readGroupSig()

		checkEnrollmentID(*signEnrollmentId)
		sig, err := groupsigca.SignMessage(gs, readMemberCredential(*signEnrollmentId), readGroupPublicKey(), []byte(*signMessage))
		handleError(err)
		writeFile(*signOutput, sig)

		logger.Infow("signed message", "signature", *signOutput)

	case verify.FullCommand():
		gs := readGroupSig()

		handleError(groupsigca.VerifySignature(gs, readSignature(*verifySignature), readGroupPublicKey(), []byte(*verifyMessage)))
		fmt.Println("signature is valid")

	case open.FullCommand():
		gs := readGroupSig()

		record, err := groupsigca.OpenSignature(gs, readSignature(*openSignature), readGroupPublicKey(), readGroupSecretKey(), []byte(*openMessage), openRegistry())
		handleError(err)

		logger.Debugw("opened signature", "signature", *openSignature)
		fmt.Println(record.EnrollmentID)

	case version.FullCommand():
		printVersion()

	}
}

func printVersion() {
	fmt.Println(metadata.GetVersionInfo())
}

func groupSig(name string) *bbs04.GroupSig {
	curve, err := groupsigca.CurveByName(name)
	handleError(err)

	return &bbs04.GroupSig{Curve: curve}
}

// readGroupSig selects the curve recorded when the group was set up
func readGroupSig() *bbs04.GroupSig {
	conf, err := groupsigca.ReadConfig(filepath.Join(*outputDir, GroupSigDirMsp, GroupSigFileConfig))
	handleError(err)
	logger.Debugw("loaded group config", "curve", conf.Curve)

	return groupSig(conf.Curve)
}

func openRegistry() *keystore.Registry {
	registry, err := keystore.NewRegistry(filepath.Join(*outputDir, GroupSigDirManager, GroupSigDirRegistry), logger.Named("registry"))
	handleError(err)

	return registry
}

// writeFile writes bytes to a file and exits in case of an error
func writeFile(path string, contents []byte) {
	handleError(ioutil.WriteFile(path, contents, 0640))
}

func readFile(path, what string) []byte {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		handleError(errors.Wrapf(err, "failed to open %s file: %s", what, path))
	}

	return raw
}

func readGroupSecretKey() []byte {
	return readFile(filepath.Join(*outputDir, GroupSigDirManager, GroupSigFileSecretKey), "group secret key")
}

func readGroupPublicKey() []byte {
	return readFile(filepath.Join(*outputDir, GroupSigDirMsp, GroupSigFilePublicKey), "group public key")
}

func readMemberCredential(enrollmentID string) []byte {
	return readFile(filepath.Join(*outputDir, GroupSigDirUser, enrollmentID, GroupSigFileMemberCred), "member credential")
}

func readSignature(path string) []byte {
	return readFile(path, "signature")
}

// checkEnrollmentID exits if id cannot be used as a directory name
func checkEnrollmentID(id string) {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		handleError(errors.Errorf("invalid enrollment id [%s]", id))
	}
}

// checkDirectoryNotExists checks whether a directory with the given path already exists and exits if this is the case
func checkDirectoryNotExists(path string, errorMessage string) {
	_, err := os.Stat(path)
	if err == nil {
		handleError(errors.New(errorMessage))
	}
}

func handleError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
