package chilldkg

import (
	"github.com/chilldkg/chilldkg/certeq"
	"github.com/chilldkg/chilldkg/curve"
	"github.com/chilldkg/chilldkg/encpedpop"
)

// CoordinatorMessage1 is cmsg1, broadcast identically to every participant.
type CoordinatorMessage1 = encpedpop.CoordinatorMessage

// CoordinatorMessage2 is cmsg2, the assembled CertEq certificate.
type CoordinatorMessage2 = []byte

// CoordinatorState lives between CoordinatorStep1 and CoordinatorFinalize.
type CoordinatorState struct {
	params  *SessionParams
	eqInput []byte
	out     *encpedpop.DKGOutput
}

// CoordinatorStep1 validates params and aggregates n participant msg1s into
// the cmsg1 broadcast plus the CertEq transcript.
func CoordinatorStep1(params *SessionParams, msgs []*Message1) (*CoordinatorState, *CoordinatorMessage1, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	cmsg1, eqInput, err := encpedpop.CoordinatorStep(msgs, params.T(), params.Hostpubkeys())
	if err != nil {
		return nil, nil, err
	}

	n := params.N()
	pubshares := make([]*curve.Point, n)
	for i := uint32(0); i < n; i++ {
		pubshares[i] = cmsg1.SumCommitment.Pubshare(i)
	}

	out := &encpedpop.DKGOutput{
		Secshare:        nil,
		ThresholdPubkey: cmsg1.SumCommitment.CommitmentToSecret(),
		Pubshares:       pubshares,
	}

	return &CoordinatorState{params: params, eqInput: eqInput, out: out}, cmsg1, nil
}

// CoordinatorFinalize assembles the certificate from n participant msg2s,
// verifies it, and returns the certificate, the DKG output (with no
// secshare), and the serialized recovery data.
func CoordinatorFinalize(state *CoordinatorState, sigs [][]byte) (*CoordinatorMessage2, *encpedpop.DKGOutput, []byte, error) {
	cert, err := certeq.CoordinatorStep(sigs)
	if err != nil {
		return nil, nil, nil, err
	}

	ok, err := certeq.Verify(state.params.Hostpubkeys(), state.eqInput, cert)
	if err != nil {
		return nil, nil, nil, &SessionNotFinalizedError{Reason: err.Error()}
	}
	if !ok {
		return nil, nil, nil, &SessionNotFinalizedError{Reason: "certificate did not verify"}
	}

	recoveryData := append(append([]byte{}, state.eqInput...), cert...)
	return &cert, state.out, recoveryData, nil
}
