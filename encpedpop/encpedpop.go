package encpedpop

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/chilldkg/chilldkg/curve"
	"github.com/chilldkg/chilldkg/vss"
)

// InvalidContributionError reports that participant Index supplied a
// malformed point, commitment, or share.
type InvalidContributionError struct {
	Index  int
	Reason string
}

func (e *InvalidContributionError) Error() string {
	return fmt.Sprintf("encpedpop: invalid contribution from participant %d: %s", e.Index, e.Reason)
}

// ParticipantState is the state a participant carries from ParticipantStep1
// to ParticipantStep2.
type ParticipantState struct {
	idx        uint32
	n          uint32
	t          uint32
	k          *curve.Scalar
	pubnonce   *curve.Point
	ownVSS     *vss.VSS
	commitment *vss.Commitment
	encContext []byte
}

// Message is the participant-to-coordinator contribution (msg1): a VSS
// commitment, an ephemeral pubnonce, and an encrypted share for every other
// participant.
type Message struct {
	Commitment *vss.Commitment
	PubNonce   *curve.Point
	EncShares  map[uint32]*curve.Scalar // recipient index -> enc_share_{idx->recipient}
}

// CoordinatorMessage is the coordinator's broadcast (cmsg1): identical for
// every participant.
type CoordinatorMessage struct {
	SumCommitment *vss.Commitment
	PubNonces     []*curve.Point
	EncSecshares  []*curve.Scalar
}

// DKGOutput is the result of a successful DKG: a participant's own share
// (nil on the coordinator side), the threshold public key, and every
// participant's public share.
type DKGOutput struct {
	Secshare        *curve.Scalar
	ThresholdPubkey *curve.Point
	Pubshares       []*curve.Point
}

// SerializeEncContext encodes the session's encryption context: t_be32
// followed by the ordered compressed hostpubkeys.
func SerializeEncContext(t uint32, hostpubkeys []*curve.Point) ([]byte, error) {
	out := make([]byte, 4, 4+33*len(hostpubkeys))
	binary.BigEndian.PutUint32(out, t)
	for _, hp := range hostpubkeys {
		b, err := hp.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// DeriveSessionSeed derives the seed fed to vss.Generate for this
// participant's VSS contribution.
func DeriveSessionSeed(seed []byte, pubnonce *curve.Point, encContext []byte) ([]byte, error) {
	pnBytes, err := pubnonce.Bytes()
	if err != nil {
		return nil, err
	}
	h := curve.TaggedHash(curve.Tag("encpedpop session seed"), seed, pnBytes, encContext)
	return h[:], nil
}

func deriveNonce(seed, random []byte, idx uint32, encContext []byte) (*curve.Scalar, error) {
	var idxBytes [4]byte
	binary.BigEndian.PutUint32(idxBytes[:], idx)
	h := curve.TaggedHash(curve.Tag("encpedpop nonce"), seed, random, idxBytes[:], encContext)
	return curve.NewScalar().SetBytes(h[:])
}

// DerivePad derives the pairwise pad a participant at index from applies
// when encrypting a share for the participant at index to. Exported so
// that recovery, which reconstructs a share outside of ParticipantStep2,
// can recompute the identical pad.
func DerivePad(ecdhBytes, encContext []byte, from, to uint32) (*curve.Scalar, error) {
	return derivePad(ecdhBytes, encContext, from, to)
}

func derivePad(ecdhBytes, encContext []byte, from, to uint32) (*curve.Scalar, error) {
	var fromBytes, toBytes [4]byte
	binary.BigEndian.PutUint32(fromBytes[:], from)
	binary.BigEndian.PutUint32(toBytes[:], to)
	h := curve.TaggedHash(curve.Tag("encpedpop pad"), ecdhBytes, encContext, fromBytes[:], toBytes[:])
	return curve.NewScalar().SetBytes(h[:])
}

// ParticipantStep1 derives this participant's ephemeral nonce and VSS
// contribution, and encrypts a share for every other participant.
func ParticipantStep1(seed []byte, t uint32, hostpubkeys []*curve.Point, idx uint32, random []byte) (*ParticipantState, *Message, error) {
	n := uint32(len(hostpubkeys))
	if idx >= n {
		return nil, nil, errors.New("encpedpop: idx out of range")
	}
	if len(random) != 32 {
		return nil, nil, errors.New("encpedpop: random must be 32 bytes")
	}

	encContext, err := SerializeEncContext(t, hostpubkeys)
	if err != nil {
		return nil, nil, err
	}

	k, err := deriveNonce(seed, random, idx, encContext)
	if err != nil {
		return nil, nil, err
	}
	pubnonce := curve.ScalarBaseMult(k)

	sessionSeed, err := DeriveSessionSeed(seed, pubnonce, encContext)
	if err != nil {
		return nil, nil, err
	}
	ownVSS, err := vss.Generate(sessionSeed, t)
	if err != nil {
		return nil, nil, err
	}

	encShares := make(map[uint32]*curve.Scalar, n-1)
	for j := uint32(0); j < n; j++ {
		if j == idx {
			continue
		}
		ecdhBytes, err := curve.ECDH(k, hostpubkeys[j])
		if err != nil {
			return nil, nil, err
		}
		pad, err := derivePad(ecdhBytes, encContext, idx, j)
		if err != nil {
			return nil, nil, err
		}
		encShares[j] = curve.NewScalar().Add(ownVSS.SecshareFor(j), pad)
	}

	state := &ParticipantState{
		idx:        idx,
		n:          n,
		t:          t,
		k:          k,
		pubnonce:   pubnonce,
		ownVSS:     ownVSS,
		commitment: ownVSS.Commit(),
		encContext: encContext,
	}
	msg := &Message{
		Commitment: state.commitment,
		PubNonce:   pubnonce,
		EncShares:  encShares,
	}
	return state, msg, nil
}

func buildEqInput(t uint32, sumCom *vss.Commitment, hostpubkeys, pubnonces []*curve.Point, encSecshares []*curve.Scalar) ([]byte, error) {
	var tBytes [4]byte
	binary.BigEndian.PutUint32(tBytes[:], t)
	out := append([]byte{}, tBytes[:]...)

	sumBytes, err := sumCom.Bytes()
	if err != nil {
		return nil, err
	}
	out = append(out, sumBytes...)

	for _, hp := range hostpubkeys {
		b, err := hp.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, pn := range pubnonces {
		b, err := pn.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, es := range encSecshares {
		out = append(out, es.Bytes()...)
	}
	return out, nil
}

// CoordinatorStep aggregates n participant messages into the broadcast
// cmsg1 and the CertEq transcript eq_input.
func CoordinatorStep(msgs []*Message, t uint32, hostpubkeys []*curve.Point) (*CoordinatorMessage, []byte, error) {
	n := uint32(len(hostpubkeys))
	if uint32(len(msgs)) != n {
		return nil, nil, errors.New("encpedpop: expected one message per participant")
	}

	sumCom := vss.NewCommitment(make([]*curve.Point, t))
	for k := uint32(0); k < t; k++ {
		sumCom.Points()[k] = curve.NewPoint()
	}
	for i, msg := range msgs {
		if uint32(msg.Commitment.Len()) != t {
			return nil, nil, &InvalidContributionError{Index: i, Reason: "commitment has wrong length"}
		}
		if _, err := sumCom.Add(sumCom, msg.Commitment); err != nil {
			return nil, nil, &InvalidContributionError{Index: i, Reason: err.Error()}
		}
	}

	pubnonces := make([]*curve.Point, n)
	for i, msg := range msgs {
		pubnonces[i] = msg.PubNonce
	}

	encSecshares := make([]*curve.Scalar, n)
	for j := uint32(0); j < n; j++ {
		sum := curve.NewScalar()
		for i, msg := range msgs {
			if uint32(i) == j {
				continue
			}
			share, ok := msg.EncShares[j]
			if !ok {
				return nil, nil, &InvalidContributionError{Index: i, Reason: "missing encrypted share for recipient"}
			}
			sum = curve.NewScalar().Add(sum, share)
		}
		encSecshares[j] = sum
	}

	cmsg := &CoordinatorMessage{
		SumCommitment: sumCom,
		PubNonces:     pubnonces,
		EncSecshares:  encSecshares,
	}

	eqInput, err := buildEqInput(t, sumCom, hostpubkeys, pubnonces, encSecshares)
	if err != nil {
		return nil, nil, err
	}
	return cmsg, eqInput, nil
}

// ParticipantStep2 decrypts this participant's aggregated share, verifies
// it against the aggregated commitment, and returns the DKG output together
// with the independently-recomputed eq_input transcript.
func ParticipantStep2(state *ParticipantState, hostseckey *curve.Scalar, cmsg *CoordinatorMessage, hostpubkeys []*curve.Point) (*DKGOutput, []byte, error) {
	n := state.n
	if uint32(cmsg.SumCommitment.Len()) != state.t {
		return nil, nil, errors.New("encpedpop: cmsg commitment has wrong length")
	}
	if uint32(len(cmsg.PubNonces)) != n || uint32(len(cmsg.EncSecshares)) != n {
		return nil, nil, errors.New("encpedpop: cmsg has wrong participant count")
	}

	encSecshare := curve.NewScalar().Set(cmsg.EncSecshares[state.idx])
	for j := uint32(0); j < n; j++ {
		if j == state.idx {
			continue
		}
		ecdhBytes, err := curve.ECDH(hostseckey, cmsg.PubNonces[j])
		if err != nil {
			return nil, nil, err
		}
		pad, err := derivePad(ecdhBytes, state.encContext, j, state.idx)
		if err != nil {
			return nil, nil, err
		}
		encSecshare = curve.NewScalar().Sub(encSecshare, pad)
	}

	secshare := curve.NewScalar().Add(encSecshare, state.ownVSS.SecshareFor(state.idx))

	expectedPubshare := cmsg.SumCommitment.Pubshare(state.idx)
	if !vss.VerifySecshare(secshare, expectedPubshare) {
		return nil, nil, &InvalidContributionError{Index: int(state.idx), Reason: "decrypted share failed verification"}
	}

	pubshares := make([]*curve.Point, n)
	for i := uint32(0); i < n; i++ {
		pubshares[i] = cmsg.SumCommitment.Pubshare(i)
	}

	out := &DKGOutput{
		Secshare:        secshare,
		ThresholdPubkey: cmsg.SumCommitment.CommitmentToSecret(),
		Pubshares:       pubshares,
	}

	eqInput, err := buildEqInput(state.t, cmsg.SumCommitment, hostpubkeys, cmsg.PubNonces, cmsg.EncSecshares)
	if err != nil {
		return nil, nil, err
	}
	return out, eqInput, nil
}

// Zero wipes the participant state's secret material: the ephemeral nonce
// and the VSS polynomial coefficients.
func (s *ParticipantState) Zero() {
	if s.k != nil {
		s.k.Zero()
	}
	if s.ownVSS != nil {
		s.ownVSS.Zero()
	}
}
