package chilldkg

import (
	"encoding/binary"

	"github.com/chilldkg/chilldkg/certeq"
	"github.com/chilldkg/chilldkg/curve"
	"github.com/chilldkg/chilldkg/encpedpop"
	"github.com/chilldkg/chilldkg/vss"
)

// perParticipantWidth is 33 (hostpubkey) + 33 (pubnonce) + 32
// (enc_secshare) + 64 (cert signature), i.e. the per-participant byte cost
// once the t-dependent sum_coms field is split out.
const perParticipantWidth = 33 + 33 + 32 + 64

// ParsedRecoveryData is the decoded form of a recovery data blob.
type ParsedRecoveryData struct {
	T            uint32
	SumCom       *vss.Commitment
	Hostpubkeys  []*curve.Point
	PubNonces    []*curve.Point
	EncSecshares []*curve.Scalar
	Cert         []byte
}

// Parse decodes recovery data per the fixed layout:
//
//	t(4) || sum_coms(33t) || hostpubkeys(33n) || pubnonces(33n) || enc_secshares(32n) || cert(64n)
//
// n is recovered from the remaining length after the t-dependent prefix,
// which must be evenly divisible by 33+33+32+64 = 162. Any length mismatch
// or point-decode failure raises InvalidRecoveryDataError wrapping the
// underlying cause.
func Parse(data []byte) (*ParsedRecoveryData, error) {
	if len(data) < 4 {
		return nil, &InvalidRecoveryDataError{Reason: "too short to contain t"}
	}
	t := binary.BigEndian.Uint32(data[:4])

	rest := data[4:]
	comLen := 33 * uint64(t)
	if uint64(len(rest)) < comLen {
		return nil, &InvalidRecoveryDataError{Reason: "too short to contain sum_coms"}
	}
	comBytes := rest[:comLen]
	rest = rest[comLen:]

	if uint64(len(rest))%perParticipantWidth != 0 {
		return nil, &InvalidRecoveryDataError{Reason: "trailing length not divisible by per-participant width"}
	}
	n := uint64(len(rest)) / perParticipantWidth
	if n == 0 {
		return nil, &InvalidRecoveryDataError{Reason: "zero participants"}
	}

	sumCom, err := vss.ParseCommitment(comBytes, t)
	if err != nil {
		return nil, &InvalidRecoveryDataError{Reason: "sum_coms", Cause: err}
	}

	hostpubkeyBytes := rest[:33*n]
	rest = rest[33*n:]
	pubnonceBytes := rest[:33*n]
	rest = rest[33*n:]
	encSecshareBytes := rest[:32*n]
	rest = rest[32*n:]
	certBytes := rest[:64*n]
	rest = rest[64*n:]
	if len(rest) != 0 {
		return nil, &InvalidRecoveryDataError{Reason: "trailing bytes"}
	}

	hostpubkeys := make([]*curve.Point, n)
	for i := uint64(0); i < n; i++ {
		p, err := curve.NewPoint().SetBytes(hostpubkeyBytes[33*i : 33*i+33])
		if err != nil {
			return nil, &InvalidRecoveryDataError{Reason: "hostpubkey decode", Cause: err}
		}
		hostpubkeys[i] = p
	}
	pubnonces := make([]*curve.Point, n)
	for i := uint64(0); i < n; i++ {
		p, err := curve.NewPoint().SetBytes(pubnonceBytes[33*i : 33*i+33])
		if err != nil {
			return nil, &InvalidRecoveryDataError{Reason: "pubnonce decode", Cause: err}
		}
		pubnonces[i] = p
	}
	encSecshares := make([]*curve.Scalar, n)
	for i := uint64(0); i < n; i++ {
		s, err := curve.NewScalar().SetBytes(encSecshareBytes[32*i : 32*i+32])
		if err != nil {
			return nil, &InvalidRecoveryDataError{Reason: "enc_secshare decode", Cause: err}
		}
		encSecshares[i] = s
	}

	return &ParsedRecoveryData{
		T:            t,
		SumCom:       sumCom,
		Hostpubkeys:  hostpubkeys,
		PubNonces:    pubnonces,
		EncSecshares: encSecshares,
		Cert:         certBytes,
	}, nil
}

// Bytes serializes parsed recovery data back into the fixed layout. This is
// the inverse of Parse: Parse(p.Bytes()) reproduces p field-for-field.
func (p *ParsedRecoveryData) Bytes() ([]byte, error) {
	var tBytes [4]byte
	binary.BigEndian.PutUint32(tBytes[:], p.T)
	out := append([]byte{}, tBytes[:]...)

	sumBytes, err := p.SumCom.Bytes()
	if err != nil {
		return nil, err
	}
	out = append(out, sumBytes...)

	for _, hp := range p.Hostpubkeys {
		b, err := hp.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, pn := range p.PubNonces {
		b, err := pn.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, es := range p.EncSecshares {
		out = append(out, es.Bytes()...)
	}
	out = append(out, p.Cert...)
	return out, nil
}

// Recover reconstructs a DKGOutput and SessionParams from recovery data. If
// seed is non-nil, the caller's own secshare is also reconstructed; if
// seed is nil, this is coordinator-side recovery and Secshare is left nil.
//
// Two deviations from a naive reading of the reference protocol, both
// required for correctness: the certificate's verification result is
// checked (a failure raises InvalidRecoveryDataError, it is never silently
// ignored), and the CertEq transcript used for verification is always
// len(recoveryData)-certLen bytes of the actually-parsed data, never a
// hardcoded 64*n slice taken before n has been validated.
func Recover(seed []byte, recoveryData []byte) (*encpedpop.DKGOutput, *SessionParams, error) {
	parsed, err := Parse(recoveryData)
	if err != nil {
		return nil, nil, err
	}
	n := uint32(len(parsed.Hostpubkeys))

	params, err := NewSessionParams(parsed.Hostpubkeys, parsed.T)
	if err != nil {
		return nil, nil, &InvalidRecoveryDataError{Reason: "session params", Cause: err}
	}

	certLen := certeq.CertLen(n)
	eqInput := recoveryData[:len(recoveryData)-certLen]

	ok, err := certeq.Verify(parsed.Hostpubkeys, eqInput, parsed.Cert)
	if err != nil {
		return nil, nil, &InvalidRecoveryDataError{Reason: "certificate decode", Cause: err}
	}
	if !ok {
		return nil, nil, &InvalidRecoveryDataError{Reason: "certificate did not verify"}
	}

	pubshares := make([]*curve.Point, n)
	for i := uint32(0); i < n; i++ {
		pubshares[i] = parsed.SumCom.Pubshare(i)
	}
	threshold := parsed.SumCom.CommitmentToSecret()

	if seed == nil {
		out := &encpedpop.DKGOutput{
			Secshare:        nil,
			ThresholdPubkey: threshold,
			Pubshares:       pubshares,
		}
		return out, params, nil
	}

	hostseckey, ownPubkey, err := HostPubkey(seed)
	if err != nil {
		return nil, nil, err
	}
	defer hostseckey.Zero()

	idx, err := indexOf(parsed.Hostpubkeys, ownPubkey)
	if err != nil {
		return nil, nil, &InvalidRecoveryDataError{Reason: "seed does not match any hostpubkey in recovery data", Cause: err}
	}

	encContext, err := encpedpop.SerializeEncContext(parsed.T, parsed.Hostpubkeys)
	if err != nil {
		return nil, nil, err
	}

	encSecshare := curve.NewScalar().Set(parsed.EncSecshares[idx])
	for j := uint32(0); j < n; j++ {
		if j == idx {
			continue
		}
		ecdhBytes, err := curve.ECDH(hostseckey, parsed.PubNonces[j])
		if err != nil {
			return nil, nil, err
		}
		pad, err := encpedpop.DerivePad(ecdhBytes, encContext, j, idx)
		if err != nil {
			return nil, nil, err
		}
		encSecshare = curve.NewScalar().Sub(encSecshare, pad)
	}

	sessionSeed, err := encpedpop.DeriveSessionSeed(seed, parsed.PubNonces[idx], encContext)
	if err != nil {
		return nil, nil, err
	}
	ownVSS, err := vss.Generate(sessionSeed, parsed.T)
	if err != nil {
		return nil, nil, err
	}
	defer ownVSS.Zero()

	secshare := curve.NewScalar().Add(encSecshare, ownVSS.SecshareFor(idx))

	if !vss.VerifySecshare(secshare, pubshares[idx]) {
		return nil, nil, &InvalidRecoveryDataError{Reason: "reconstructed secshare failed verification"}
	}

	out := &encpedpop.DKGOutput{
		Secshare:        secshare,
		ThresholdPubkey: threshold,
		Pubshares:       pubshares,
	}
	return out, params, nil
}

