package vss

import (
	"encoding/binary"
	"errors"

	"github.com/chilldkg/chilldkg/curve"
)

// Commitment is a Feldman VSS commitment: the coefficients of a degree-(t-1)
// polynomial, each multiplied by the group generator.
type Commitment struct {
	points []*curve.Point
}

// NewCommitment wraps an ordered slice of t commitment points. The slice is
// used directly, not copied.
func NewCommitment(points []*curve.Point) *Commitment {
	return &Commitment{points: points}
}

// Len returns the number of coefficients (t) in the commitment.
func (c *Commitment) Len() int {
	return len(c.points)
}

// Points returns the underlying ordered coefficient points.
func (c *Commitment) Points() []*curve.Point {
	return c.points
}

// Add sets the receiver to the pointwise sum of a and b and returns it. a
// and b must have the same length.
func (c *Commitment) Add(a, b *Commitment) (*Commitment, error) {
	if len(a.points) != len(b.points) {
		return nil, errors.New("vss: commitment length mismatch")
	}
	sum := make([]*curve.Point, len(a.points))
	for i := range a.points {
		sum[i] = curve.NewPoint().Add(a.points[i], b.points[i])
	}
	c.points = sum
	return c, nil
}

// CommitmentToSecret returns the constant-term point, the threshold public
// key once all participants' commitments have been summed.
func (c *Commitment) CommitmentToSecret() *curve.Point {
	return c.points[0]
}

// Pubshare returns the commitment polynomial evaluated at i+1, i.e. the
// public share corresponding to participant index i.
func (c *Commitment) Pubshare(i uint32) *curve.Point {
	x := curve.NewScalar().SetInt(i + 1)

	rhs := curve.NewPoint()
	xPower := curve.NewScalar().SetInt(1)

	for _, commit := range c.points {
		term := curve.NewPoint().ScalarMult(xPower, commit)
		rhs = curve.NewPoint().Add(rhs, term)
		xPower = curve.NewScalar().Mul(xPower, x)
	}

	return rhs
}

// Bytes returns the commitment's canonical encoding: t compressed points
// concatenated.
func (c *Commitment) Bytes() ([]byte, error) {
	out := make([]byte, 0, 33*len(c.points))
	for _, p := range c.points {
		b, err := p.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// ParseCommitment decodes a commitment of exactly t points from data.
func ParseCommitment(data []byte, t uint32) (*Commitment, error) {
	if uint64(len(data)) != 33*uint64(t) {
		return nil, errors.New("vss: commitment has wrong length")
	}
	points := make([]*curve.Point, t)
	for i := uint32(0); i < t; i++ {
		p, err := curve.NewPoint().SetBytes(data[33*i : 33*i+33])
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return NewCommitment(points), nil
}

// VSS holds a degree-(t-1) sharing polynomial, deterministically derived
// from a 32-byte seed.
type VSS struct {
	coeffs []*curve.Scalar
}

// Generate deterministically derives a degree-(t-1) polynomial from seed32.
// The k-th coefficient is TaggedHash("vss coefficient", seed32, k_be32)
// reduced modulo the group order. Determinism (rather than true randomness)
// is what makes recovering a VSS contribution from a seed possible.
func Generate(seed32 []byte, t uint32) (*VSS, error) {
	if len(seed32) != 32 {
		return nil, errors.New("vss: seed must be 32 bytes")
	}
	if t == 0 {
		return nil, errors.New("vss: threshold must be at least 1")
	}

	coeffs := make([]*curve.Scalar, t)
	for k := uint32(0); k < t; k++ {
		var kBytes [4]byte
		binary.BigEndian.PutUint32(kBytes[:], k)
		h := curve.TaggedHash(curve.Tag("vss coefficient"), seed32, kBytes[:])
		c, err := curve.NewScalar().SetBytes(h[:])
		if err != nil {
			return nil, err
		}
		coeffs[k] = c
	}

	return &VSS{coeffs: coeffs}, nil
}

// SecshareFor evaluates the polynomial at i+1 using Horner's method.
func (v *VSS) SecshareFor(i uint32) *curve.Scalar {
	x := curve.NewScalar().SetInt(i + 1)

	result := curve.NewScalar().Set(v.coeffs[len(v.coeffs)-1])
	for k := len(v.coeffs) - 2; k >= 0; k-- {
		result = curve.NewScalar().Mul(result, x)
		result = curve.NewScalar().Add(result, v.coeffs[k])
	}
	return result
}

// Commit returns the Feldman commitment to the polynomial: coeffs[k]*G for
// each coefficient.
func (v *VSS) Commit() *Commitment {
	points := make([]*curve.Point, len(v.coeffs))
	for k, c := range v.coeffs {
		points[k] = curve.ScalarBaseMult(c)
	}
	return NewCommitment(points)
}

// Zero wipes the polynomial's coefficients.
func (v *VSS) Zero() {
	for _, c := range v.coeffs {
		c.Zero()
	}
}

// VerifySecshare reports whether s*G == pubshare.
func VerifySecshare(s *curve.Scalar, pubshare *curve.Point) bool {
	return curve.ScalarBaseMult(s).Equal(pubshare)
}
