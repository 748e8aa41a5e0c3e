// Package schnorr implements BIP340 Schnorr signatures over secp256k1 with
// a caller-supplied challenge tag.
//
// The ecosystem's packaged BIP340 implementations fix the challenge tag to
// "BIP0340/challenge", which is correct for Bitcoin-compatible signatures
// but unusable for CertEq (package certeq), whose challenge tag must also
// bind a session-specific transcript. This package instead implements the
// BIP340 algorithm directly against [curve]'s primitives, taking the
// challenge tag as a parameter.
//
// Internal nonce derivation (the "aux" and "nonce" tagged hashes used while
// signing) uses this module's own BIPTag-prefixed tags rather than BIP340's
// standard "BIP0340/aux" and "BIP0340/nonce" — signatures produced by this
// package are not intended to be verified by unrelated BIP340 verifiers,
// only by [Verify] in this package and by certeq.Verify.
package schnorr
