package certeq

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/chilldkg/chilldkg/curve"
)

func genParticipants(t *testing.T, n int) ([]*curve.Scalar, []*curve.Point) {
	t.Helper()
	seckeys := make([]*curve.Scalar, n)
	pubkeys := make([]*curve.Point, n)
	for i := 0; i < n; i++ {
		sk, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		seckeys[i] = sk
		pubkeys[i] = curve.ScalarBaseMult(sk)
	}
	return seckeys, pubkeys
}

func buildCert(t *testing.T, seckeys []*curve.Scalar, x []byte) []byte {
	t.Helper()
	sigs := make([][]byte, len(seckeys))
	for i, sk := range seckeys {
		sig, err := ParticipantStep(sk, uint32(i), x, bytes.Repeat([]byte{byte(i + 1)}, 32))
		if err != nil {
			t.Fatalf("participant %d sign: %v", i, err)
		}
		sigs[i] = sig
	}
	cert, err := CoordinatorStep(sigs)
	if err != nil {
		t.Fatal(err)
	}
	return cert
}

func TestCertEqRoundTrip(t *testing.T) {
	seckeys, pubkeys := genParticipants(t, 4)
	x := []byte("session transcript")

	cert := buildCert(t, seckeys, x)
	if len(cert) != CertLen(4) {
		t.Fatalf("cert length = %d, want %d", len(cert), CertLen(4))
	}

	ok, err := Verify(pubkeys, x, cert)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("valid certificate did not verify")
	}
}

func TestCertEqRejectsTamperedTranscript(t *testing.T) {
	seckeys, pubkeys := genParticipants(t, 3)
	x := []byte("transcript one")
	cert := buildCert(t, seckeys, x)

	ok, err := Verify(pubkeys, []byte("transcript two"), cert)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("certificate verified under a different transcript")
	}
}

func TestCertEqRejectsTamperedSignature(t *testing.T) {
	seckeys, pubkeys := genParticipants(t, 3)
	x := []byte("transcript")
	cert := buildCert(t, seckeys, x)

	tampered := append([]byte{}, cert...)
	tampered[0] ^= 0xFF

	ok, err := Verify(pubkeys, x, tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("certificate with a tampered signature byte verified")
	}
}

func TestCertEqRejectsWrongLength(t *testing.T) {
	seckeys, pubkeys := genParticipants(t, 3)
	x := []byte("transcript")
	cert := buildCert(t, seckeys, x)

	if _, err := Verify(pubkeys, x, cert[:len(cert)-1]); err == nil {
		t.Error("expected error for wrong-length certificate")
	}
}
