package curve

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestScalar(t *testing.T) {
	t.Run("AddSub", func(t *testing.T) {
		a, _ := RandomScalar(rand.Reader)
		b, _ := RandomScalar(rand.Reader)

		sum := NewScalar().Add(a, b)
		diff := NewScalar().Sub(sum, b)

		if !diff.Equal(a) {
			t.Error("(a+b)-b != a")
		}
	})

	t.Run("MulInvert", func(t *testing.T) {
		a, _ := RandomScalar(rand.Reader)
		aInv, err := NewScalar().Invert(a)
		if err != nil {
			t.Fatal(err)
		}

		product := NewScalar().Mul(a, aInv)
		b, _ := RandomScalar(rand.Reader)
		result := NewScalar().Mul(product, b)

		if !result.Equal(b) {
			t.Error("a*a^-1 != 1")
		}
	})

	t.Run("InvertZeroFails", func(t *testing.T) {
		zero := NewScalar()
		if _, err := NewScalar().Invert(zero); err == nil {
			t.Error("expected error inverting zero")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		zero := NewScalar()
		a, _ := RandomScalar(rand.Reader)
		negA := NewScalar().Negate(a)

		if !NewScalar().Add(a, negA).Equal(zero) {
			t.Error("negating scalar failed")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		a, _ := RandomScalar(rand.Reader)
		restored, err := NewScalar().SetBytes(a.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(a) {
			t.Error("scalar bytes roundtrip failed")
		}
	})

	t.Run("SetBytesRejectsWrongLength", func(t *testing.T) {
		if _, err := NewScalar().SetBytes(make([]byte, 31)); err == nil {
			t.Error("expected error for 31-byte input")
		}
	})

	t.Run("ZeroClearsScalar", func(t *testing.T) {
		a, _ := RandomScalar(rand.Reader)
		a.Zero()
		if !a.IsZero() {
			t.Error("Zero() did not clear scalar")
		}
	})
}

func TestPoint(t *testing.T) {
	t.Run("AddSub", func(t *testing.T) {
		s1, _ := RandomScalar(rand.Reader)
		s2, _ := RandomScalar(rand.Reader)
		p := ScalarBaseMult(s1)
		q := ScalarBaseMult(s2)

		sum := NewPoint().Add(p, q)
		diff := NewPoint().Sub(sum, q)

		if !diff.Equal(p) {
			t.Error("(P+Q)-Q != P")
		}
	})

	t.Run("Negate", func(t *testing.T) {
		s, _ := RandomScalar(rand.Reader)
		p := ScalarBaseMult(s)
		negP := NewPoint().Negate(p)

		if !NewPoint().Add(p, negP).IsIdentity() {
			t.Error("P + (-P) != identity")
		}
	})

	t.Run("BytesRoundtrip", func(t *testing.T) {
		s, _ := RandomScalar(rand.Reader)
		p := ScalarBaseMult(s)

		b, err := p.Bytes()
		if err != nil {
			t.Fatal(err)
		}
		restored, err := NewPoint().SetBytes(b)
		if err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(p) {
			t.Error("point bytes roundtrip failed")
		}
	})

	t.Run("IdentityHasNoEncoding", func(t *testing.T) {
		if _, err := NewPoint().Bytes(); err == nil {
			t.Error("expected error encoding identity point")
		}
	})

	t.Run("GeneratorNotIdentity", func(t *testing.T) {
		if Generator().IsIdentity() {
			t.Error("generator should not be identity")
		}
	})

	t.Run("ScalarMultDistributive", func(t *testing.T) {
		a, _ := RandomScalar(rand.Reader)
		b, _ := RandomScalar(rand.Reader)

		lhs := ScalarBaseMult(NewScalar().Add(a, b))
		rhs := NewPoint().Add(ScalarBaseMult(a), ScalarBaseMult(b))

		if !lhs.Equal(rhs) {
			t.Error("(a+b)*G != a*G + b*G")
		}
	})
}

func TestECDHSymmetry(t *testing.T) {
	kI, _ := RandomScalar(rand.Reader)
	hostseckeyJ, _ := RandomScalar(rand.Reader)
	pubnonceI := ScalarBaseMult(kI)
	hostpubkeyJ := ScalarBaseMult(hostseckeyJ)

	left, err := ECDH(kI, hostpubkeyJ)
	if err != nil {
		t.Fatal(err)
	}
	right, err := ECDH(hostseckeyJ, pubnonceI)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(left, right) {
		t.Error("ecdh(k_i, hostpubkey_j) != ecdh(hostseckey_j, pubnonce_i)")
	}
}

func TestHostKeypair(t *testing.T) {
	seed := bytes.Repeat([]byte{0x07}, 32)

	seckey, pubkey, err := HostKeypair(seed)
	if err != nil {
		t.Fatal(err)
	}
	if !ScalarBaseMult(seckey).Equal(pubkey) {
		t.Error("hostpubkey is not seckey*G")
	}

	seckey2, pubkey2, err := HostKeypair(seed)
	if err != nil {
		t.Fatal(err)
	}
	if !seckey.Equal(seckey2) || !pubkey.Equal(pubkey2) {
		t.Error("HostKeypair is not deterministic")
	}

	if _, _, err := HostKeypair(make([]byte, 31)); err == nil {
		t.Error("expected error for wrong-length seed")
	}
}

func TestTaggedHashDomainSeparation(t *testing.T) {
	h1 := TaggedHash(Tag("a"), []byte("msg"))
	h2 := TaggedHash(Tag("b"), []byte("msg"))
	if h1 == h2 {
		t.Error("different tags produced the same hash")
	}
}
