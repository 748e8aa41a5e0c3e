package chilldkg

import (
	"crypto/rand"

	"github.com/chilldkg/chilldkg/certeq"
	"github.com/chilldkg/chilldkg/encpedpop"
)

// Message1 is the participant's msg1: the encpedpop contribution.
type Message1 = encpedpop.Message

// Message2 is the participant's msg2: a CertEq signature.
type Message2 = []byte

// ParticipantState1 lives between ParticipantStep1 and ParticipantStep2.
type ParticipantState1 struct {
	params *SessionParams
	idx    uint32
	enc    *encpedpop.ParticipantState
}

// ParticipantState2 lives between ParticipantStep2 and ParticipantFinalize.
type ParticipantState2 struct {
	params  *SessionParams
	idx     uint32
	eqInput []byte
	out     *encpedpop.DKGOutput
}

// ParticipantStep1 validates params, locates this participant's own index by
// matching its derived host public key, and runs the encpedpop contribution
// step. random must be 32 fresh bytes; if nil, it is drawn from
// crypto/rand.
func ParticipantStep1(seed []byte, params *SessionParams, random []byte) (*ParticipantState1, *Message1, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	hostseckey, ownPubkey, err := HostPubkey(seed)
	if err != nil {
		return nil, nil, err
	}
	defer hostseckey.Zero()
	idx, err := indexOf(params.Hostpubkeys(), ownPubkey)
	if err != nil {
		return nil, nil, err
	}

	if random == nil {
		random = make([]byte, 32)
		if _, err := rand.Read(random); err != nil {
			return nil, nil, err
		}
	}

	encState, msg, err := encpedpop.ParticipantStep1(seed, params.T(), params.Hostpubkeys(), idx, random)
	if err != nil {
		return nil, nil, err
	}

	return &ParticipantState1{params: params, idx: idx, enc: encState}, msg, nil
}

// ParticipantStep2 decrypts and verifies this participant's aggregated
// share against the coordinator's broadcast, then advances to the
// CertEq signing step.
func ParticipantStep2(seed []byte, state *ParticipantState1, cmsg1 *encpedpop.CoordinatorMessage) (*ParticipantState2, Message2, error) {
	hostseckey, _, err := HostPubkey(seed)
	if err != nil {
		return nil, nil, err
	}
	defer hostseckey.Zero()

	out, eqInput, err := encpedpop.ParticipantStep2(state.enc, hostseckey, cmsg1, state.params.Hostpubkeys())
	state.enc.Zero()
	if err != nil {
		return nil, nil, err
	}

	auxRand := make([]byte, 32)
	if _, err := rand.Read(auxRand); err != nil {
		return nil, nil, err
	}

	sig, err := certeq.ParticipantStep(hostseckey, state.idx, eqInput, auxRand)
	if err != nil {
		return nil, nil, err
	}

	return &ParticipantState2{params: state.params, idx: state.idx, eqInput: eqInput, out: out}, sig, nil
}

// ParticipantFinalize verifies the certificate from cmsg2. On success it
// returns the DKG output and the serialized recovery data. On failure it
// raises SessionNotFinalizedError, which is NOT terminal: state and seed
// remain valid and the caller should retry via another party's recovery
// data.
func ParticipantFinalize(state *ParticipantState2, cmsg2 []byte) (*encpedpop.DKGOutput, []byte, error) {
	ok, err := certeq.Verify(state.params.Hostpubkeys(), state.eqInput, cmsg2)
	if err != nil {
		return nil, nil, &SessionNotFinalizedError{Reason: err.Error()}
	}
	if !ok {
		return nil, nil, &SessionNotFinalizedError{Reason: "certificate did not verify"}
	}

	recoveryData := append(append([]byte{}, state.eqInput...), cmsg2...)
	return state.out, recoveryData, nil
}
