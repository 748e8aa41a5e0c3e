package certeq

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/chilldkg/chilldkg/curve"
	"github.com/chilldkg/chilldkg/schnorr"
)

// sigLen is the byte length of one BIP340-style signature.
const sigLen = 64

// challengeTag binds the transcript x into the Schnorr challenge's domain
// separator, rather than into the signed message, so that a signature
// verifies only under the transcript the verifier believes in while the
// signed message stays a uniformly short 4 bytes across sessions.
func challengeTag(x []byte) []byte {
	return append(curve.Tag("certeq message"), x...)
}

// CertLen returns the byte length of a certificate for n participants.
func CertLen(n uint32) int {
	return sigLen * int(n)
}

// ParticipantStep signs this participant's index under hostseckey, binding
// the transcript x via the challenge tag rather than the message.
func ParticipantStep(hostseckey *curve.Scalar, idx uint32, x []byte, auxRand []byte) ([]byte, error) {
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], idx)

	seckeyBytes := hostseckey.Bytes()
	defer curve.ZeroizeBytes(seckeyBytes)
	sig, err := schnorr.Sign(seckeyBytes, idxBytes[:], auxRand, challengeTag(x))
	if err != nil {
		return nil, fmt.Errorf("certeq: sign: %w", err)
	}
	return sig, nil
}

// CoordinatorStep concatenates n participant signatures, in participant
// order, into the certificate.
func CoordinatorStep(sigs [][]byte) ([]byte, error) {
	cert := make([]byte, 0, sigLen*len(sigs))
	for i, sig := range sigs {
		if len(sig) != sigLen {
			return nil, fmt.Errorf("certeq: signature %d has wrong length", i)
		}
		cert = append(cert, sig...)
	}
	return cert, nil
}

// Verify checks that cert contains, in order, a valid signature from each of
// hostpubkeys over that participant's 4-byte index, under the CertEq
// challenge tag that binds x. It reports only whether all signatures verify,
// not which one failed.
func Verify(hostpubkeys []*curve.Point, x []byte, cert []byte) (bool, error) {
	n := len(hostpubkeys)
	if len(cert) != CertLen(uint32(n)) {
		return false, errors.New("certeq: certificate has wrong length")
	}
	tag := challengeTag(x)
	for i, hp := range hostpubkeys {
		pkBytes, err := hp.Bytes()
		if err != nil {
			return false, err
		}
		var idxBytes [4]byte
		binary.BigEndian.PutUint32(idxBytes[:], uint32(i))

		sig := cert[sigLen*i : sigLen*(i+1)]
		if !schnorr.Verify(pkBytes[1:], idxBytes[:], sig, tag) {
			return false, nil
		}
	}
	return true, nil
}
