package curve

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// BIPTag is the fixed domain-separation prefix shared by every tagged hash
// this module computes.
const BIPTag = "BIP DKG/"

// Tag returns the full tagged-hash domain separator for name, under the
// shared BIPTag prefix.
func Tag(name string) []byte {
	return append([]byte(BIPTag), name...)
}

// TaggedHash computes a BIP340-style tagged hash: SHA256(SHA256(tag) ‖
// SHA256(tag) ‖ msgs...). tag is used as given; callers generally pass the
// output of [Tag], except CertEq, which binds extra context into the tag
// itself.
func TaggedHash(tag []byte, msgs ...[]byte) [32]byte {
	tagHash := sha256.Sum256(tag)
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, m := range msgs {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// PRF derives a 32-byte value from seed under the given label, using
// TaggedHash with the shared BIPTag prefix.
func PRF(seed []byte, label string) [32]byte {
	return TaggedHash(Tag(label), seed)
}

// Scalar is an integer modulo the secp256k1 group order.
type Scalar struct {
	inner secp256k1.ModNScalar
}

// NewScalar returns a new zero scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// RandomScalar returns a cryptographically random scalar read from r.
func RandomScalar(r io.Reader) (*Scalar, error) {
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	s := NewScalar()
	s.inner.SetByteSlice(buf[:])
	return s, nil
}

// Add sets the receiver to a+b and returns it.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.inner.Add2(&a.inner, &b.inner)
	return s
}

// Sub sets the receiver to a-b and returns it.
func (s *Scalar) Sub(a, b *Scalar) *Scalar {
	var negB secp256k1.ModNScalar
	negB.Set(&b.inner).Negate()
	s.inner.Add2(&a.inner, &negB)
	return s
}

// Mul sets the receiver to a*b and returns it.
func (s *Scalar) Mul(a, b *Scalar) *Scalar {
	s.inner.Mul2(&a.inner, &b.inner)
	return s
}

// Negate sets the receiver to -a and returns it.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.inner.Set(&a.inner)
	s.inner.Negate()
	return s
}

// Invert sets the receiver to a^-1 and returns it. Returns an error if a is
// zero.
func (s *Scalar) Invert(a *Scalar) (*Scalar, error) {
	if a.IsZero() {
		return nil, errors.New("curve: cannot invert zero scalar")
	}
	s.inner.Set(&a.inner)
	s.inner.InverseValNonConst()
	return s, nil
}

// Set sets the receiver to a and returns it.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.inner.Set(&a.inner)
	return s
}

// SetInt sets the receiver to the small integer n and returns it.
func (s *Scalar) SetInt(n uint32) *Scalar {
	s.inner.SetInt(n)
	return s
}

// Bytes returns the canonical 32-byte big-endian representation of the
// scalar.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	out := make([]byte, 32)
	copy(out, b[:])
	return out
}

// SetBytes sets the receiver from a 32-byte big-endian slice, reducing it
// modulo the group order, and returns it. Returns an error if data is not
// exactly 32 bytes.
func (s *Scalar) SetBytes(data []byte) (*Scalar, error) {
	if len(data) != 32 {
		return nil, errors.New("curve: scalar must be 32 bytes")
	}
	s.inner.SetByteSlice(data)
	return s, nil
}

// Equal reports whether the receiver equals b.
func (s *Scalar) Equal(b *Scalar) bool {
	return s.inner.Equals(&b.inner)
}

// IsZero reports whether the receiver is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Zero wipes the scalar's backing storage.
func (s *Scalar) Zero() {
	s.inner.Zero()
}

// Point is a secp256k1 group element.
type Point struct {
	inner secp256k1.JacobianPoint
}

// NewPoint returns a new identity point.
func NewPoint() *Point {
	return &Point{}
}

// Generator returns the secp256k1 base point.
func Generator() *Point {
	p := NewPoint()
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &p.inner)
	return p
}

// ScalarBaseMult returns s*G.
func ScalarBaseMult(s *Scalar) *Point {
	p := NewPoint()
	secp256k1.ScalarBaseMultNonConst(&s.inner, &p.inner)
	return p
}

// Add sets the receiver to a+b and returns it.
func (p *Point) Add(a, b *Point) *Point {
	secp256k1.AddNonConst(&a.inner, &b.inner, &p.inner)
	return p
}

// Sub sets the receiver to a-b and returns it.
func (p *Point) Sub(a, b *Point) *Point {
	var negOne secp256k1.ModNScalar
	negOne.SetInt(1)
	negOne.Negate()
	var negB secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&negOne, &b.inner, &negB)
	secp256k1.AddNonConst(&a.inner, &negB, &p.inner)
	return p
}

// Negate sets the receiver to -a and returns it.
func (p *Point) Negate(a *Point) *Point {
	var negOne secp256k1.ModNScalar
	negOne.SetInt(1)
	negOne.Negate()
	secp256k1.ScalarMultNonConst(&negOne, &a.inner, &p.inner)
	return p
}

// ScalarMult sets the receiver to s*a and returns it.
func (p *Point) ScalarMult(s *Scalar, a *Point) *Point {
	secp256k1.ScalarMultNonConst(&s.inner, &a.inner, &p.inner)
	return p
}

// Set sets the receiver to a and returns it.
func (p *Point) Set(a *Point) *Point {
	p.inner = a.inner
	return p
}

// affine returns a normalized affine copy of the point's coordinates.
func (p *Point) affine() secp256k1.JacobianPoint {
	c := p.inner
	c.ToAffine()
	return c
}

// IsIdentity reports whether the receiver is the point at infinity.
func (p *Point) IsIdentity() bool {
	var z secp256k1.FieldVal
	z.Set(&p.inner.Z)
	z.Normalize()
	return z.IsZero()
}

// Bytes returns the 33-byte compressed representation of the point. It
// returns an error if the point is the identity, which has no compressed
// encoding.
func (p *Point) Bytes() ([]byte, error) {
	if p.IsIdentity() {
		return nil, errors.New("curve: identity point has no compressed encoding")
	}
	a := p.affine()
	pub := secp256k1.NewPublicKey(&a.X, &a.Y)
	return pub.SerializeCompressed(), nil
}

// SetBytes sets the receiver from a 33-byte compressed point encoding and
// returns it.
func (p *Point) SetBytes(data []byte) (*Point, error) {
	if len(data) != 33 {
		return nil, errors.New("curve: compressed point must be 33 bytes")
	}
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return nil, err
	}
	pub.AsJacobian(&p.inner)
	return p, nil
}

// Equal reports whether the receiver equals b.
func (p *Point) Equal(b *Point) bool {
	if p.IsIdentity() || b.IsIdentity() {
		return p.IsIdentity() == b.IsIdentity()
	}
	pb, errP := p.Bytes()
	bb, errB := b.Bytes()
	if errP != nil || errB != nil {
		return false
	}
	if len(pb) != len(bb) {
		return false
	}
	for i := range pb {
		if pb[i] != bb[i] {
			return false
		}
	}
	return true
}

// ECDH computes the compressed encoding of k*p, suitable as input to a hash
// when deriving a pairwise pad.
func ECDH(k *Scalar, p *Point) ([]byte, error) {
	shared := NewPoint().ScalarMult(k, p)
	return shared.Bytes()
}

// HostKeypair derives a participant's long-term host secret key and host
// public key from a 32-byte seed, via hostseckey = PRF(seed, "chilldkg
// hostseckey"). Returns an error if seed is not 32 bytes.
func HostKeypair(seed []byte) (*Scalar, *Point, error) {
	if len(seed) != 32 {
		return nil, nil, errors.New("curve: seed must be 32 bytes")
	}
	h := PRF(seed, "chilldkg hostseckey")
	seckey, err := NewScalar().SetBytes(h[:])
	if err != nil {
		return nil, nil, err
	}
	pubkey := ScalarBaseMult(seckey)
	return seckey, pubkey, nil
}

// ZeroizeBytes overwrites b with zeros in place.
func ZeroizeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
