package chilldkg

import (
	"encoding/binary"
	"errors"

	"github.com/chilldkg/chilldkg/curve"
)

// SessionParams is the ordered list of host public keys and the threshold
// agreed for one DKG session. Identical across all parties in a session.
type SessionParams struct {
	hostpubkeys []*curve.Point
	t           uint32
}

// NewSessionParams validates and constructs a SessionParams from an ordered
// list of host public keys and a threshold t.
func NewSessionParams(hostpubkeys []*curve.Point, t uint32) (*SessionParams, error) {
	p := &SessionParams{hostpubkeys: hostpubkeys, t: t}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewSessionParamsFromUint64 is like NewSessionParams but accepts a
// threshold of arbitrary width, raising ThresholdOverflowError if t does
// not fit in 32 bits. Use this when t is parsed from an external source
// that is not already bounded to uint32.
func NewSessionParamsFromUint64(hostpubkeys []*curve.Point, t uint64) (*SessionParams, error) {
	if t > 0xFFFFFFFF {
		return nil, &ThresholdOverflowError{T: t}
	}
	return NewSessionParams(hostpubkeys, uint32(t))
}

// NewSessionParamsFromBytes decodes each raw compressed host public key and
// constructs a SessionParams, raising InvalidContributionError at the index
// of the first entry that fails to decode as a valid point.
func NewSessionParamsFromBytes(hostpubkeys [][]byte, t uint32) (*SessionParams, error) {
	points := make([]*curve.Point, len(hostpubkeys))
	for i, b := range hostpubkeys {
		p, err := curve.NewPoint().SetBytes(b)
		if err != nil {
			return nil, &InvalidContributionError{Index: i, Reason: err.Error()}
		}
		points[i] = p
	}
	return NewSessionParams(points, t)
}

// Validate enforces 1 <= t <= n and that hostpubkeys are pairwise distinct.
func (p *SessionParams) Validate() error {
	n := uint32(len(p.hostpubkeys))
	if p.t < 1 || p.t > n {
		return &ThresholdError{T: p.t, N: n}
	}

	seen := make(map[[33]byte]int, n)
	for i, hp := range p.hostpubkeys {
		b, err := hp.Bytes()
		if err != nil {
			return &InvalidContributionError{Index: i, Reason: err.Error()}
		}
		var key [33]byte
		copy(key[:], b)
		if _, ok := seen[key]; ok {
			return &DuplicateHostpubkeyError{Index: i}
		}
		seen[key] = i
	}
	return nil
}

// N returns the number of participants.
func (p *SessionParams) N() uint32 {
	return uint32(len(p.hostpubkeys))
}

// T returns the threshold.
func (p *SessionParams) T() uint32 {
	return p.t
}

// Hostpubkeys returns the ordered host public keys.
func (p *SessionParams) Hostpubkeys() []*curve.Point {
	return p.hostpubkeys
}

// ID returns the 32-byte params fingerprint: a tagged hash of t and the
// ordered host public keys. Identical IDs across parties imply identical
// session params.
func (p *SessionParams) ID() ([32]byte, error) {
	var tBytes [4]byte
	binary.BigEndian.PutUint32(tBytes[:], p.t)

	msgs := make([][]byte, 0, 1+len(p.hostpubkeys))
	msgs = append(msgs, tBytes[:])
	for _, hp := range p.hostpubkeys {
		b, err := hp.Bytes()
		if err != nil {
			return [32]byte{}, err
		}
		msgs = append(msgs, b)
	}
	return curve.TaggedHash(curve.Tag("params_id"), msgs...), nil
}

// indexOf locates own position within hostpubkeys by matching the derived
// host public key. Returns an error if it is not present.
func indexOf(hostpubkeys []*curve.Point, own *curve.Point) (uint32, error) {
	for i, hp := range hostpubkeys {
		if hp.Equal(own) {
			return uint32(i), nil
		}
	}
	return 0, errors.New("chilldkg: own hostpubkey not found among session params")
}

// HostPubkey derives a participant's long-term host keypair from a 32-byte
// seed.
func HostPubkey(seed []byte) (*curve.Scalar, *curve.Point, error) {
	return curve.HostKeypair(seed)
}

