package schnorr

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/chilldkg/chilldkg/curve"
)

// Sign produces a 64-byte BIP340 Schnorr signature over msg using seckey,
// under the given challenge tag. auxRand must be 32 bytes of fresh
// randomness. Unlike a packaged BIP340 implementation, tag is caller
// supplied rather than fixed to "BIP0340/challenge", so callers can bind
// extra context into the challenge domain separator.
func Sign(seckey, msg, auxRand, tag []byte) ([]byte, error) {
	if len(seckey) != 32 {
		return nil, errors.New("schnorr: secret key must be 32 bytes")
	}
	if len(auxRand) != 32 {
		return nil, errors.New("schnorr: aux randomness must be 32 bytes")
	}

	var d0 secp256k1.ModNScalar
	if overflow := d0.SetByteSlice(seckey); overflow || d0.IsZero() {
		return nil, errors.New("schnorr: invalid secret key")
	}

	var P secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&d0, &P)
	P.ToAffine()

	d := d0
	if P.Y.IsOdd() {
		d.Negate()
	}

	pBytes := xOnlyBytes(&P)

	auxHash := curve.TaggedHash(curve.Tag("aux"), auxRand)
	dBytes := d.Bytes()
	var t [32]byte
	for i := range t {
		t[i] = dBytes[i] ^ auxHash[i]
	}

	nonceHash := curve.TaggedHash(curve.Tag("nonce"), t[:], pBytes[:], msg)

	var k0 secp256k1.ModNScalar
	k0.SetByteSlice(nonceHash[:])
	if k0.IsZero() {
		return nil, errors.New("schnorr: derived nonce is zero")
	}

	var R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&k0, &R)
	R.ToAffine()

	k := k0
	if R.Y.IsOdd() {
		k.Negate()
	}

	rBytes := xOnlyBytes(&R)

	eHash := curve.TaggedHash(tag, rBytes[:], pBytes[:], msg)
	var e secp256k1.ModNScalar
	e.SetByteSlice(eHash[:])

	var ed secp256k1.ModNScalar
	ed.Mul2(&e, &d)
	var s secp256k1.ModNScalar
	s.Add2(&k, &ed)

	sBytes := s.Bytes()
	sig := make([]byte, 64)
	copy(sig[:32], rBytes[:])
	copy(sig[32:], sBytes[:])
	return sig, nil
}

// Verify reports whether sig is a valid 64-byte BIP340 signature over msg by
// the holder of the 32-byte x-only public key pubkeyXOnly, under the given
// challenge tag.
func Verify(pubkeyXOnly, msg, sig, tag []byte) bool {
	if len(pubkeyXOnly) != 32 || len(sig) != 64 {
		return false
	}

	compressed := make([]byte, 33)
	compressed[0] = 0x02
	copy(compressed[1:], pubkeyXOnly)
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return false
	}
	var P secp256k1.JacobianPoint
	pub.AsJacobian(&P)

	var r secp256k1.FieldVal
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return false
	}

	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(sig[32:64]); overflow {
		return false
	}

	eHash := curve.TaggedHash(tag, sig[:32], pubkeyXOnly, msg)
	var e secp256k1.ModNScalar
	e.SetByteSlice(eHash[:])

	var negE secp256k1.ModNScalar
	negE.Set(&e).Negate()

	var sG, negEP, R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s, &sG)
	secp256k1.ScalarMultNonConst(&negE, &P, &negEP)
	secp256k1.AddNonConst(&sG, &negEP, &R)

	var zNorm secp256k1.FieldVal
	zNorm.Set(&R.Z)
	zNorm.Normalize()
	if zNorm.IsZero() {
		return false
	}
	R.ToAffine()

	if R.Y.IsOdd() {
		return false
	}
	return R.X.Equals(&r)
}

func xOnlyBytes(p *secp256k1.JacobianPoint) [32]byte {
	var x secp256k1.FieldVal
	x.Set(&p.X)
	x.Normalize()
	return x.Bytes()
}
