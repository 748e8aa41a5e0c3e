// Package curve provides the secp256k1 scalar and point arithmetic that the
// rest of this module is built on.
//
// Unlike a curve-generic group abstraction, curve exposes concrete Scalar
// and Point struct types directly: every component above it (vss, schnorr,
// certeq, encpedpop, chilldkg) targets exactly one curve, so there is no
// second implementation for an interface to abstract over.
//
// # Arithmetic style
//
// All arithmetic methods use a mutable receiver pattern: they modify the
// receiver, store the result in it, and return it, which keeps call sites
// allocation-light and allows chaining:
//
//	sum := curve.NewScalar().Add(a, b)
//
// # Tagged hashing
//
// TaggedHash implements the BIP340 tagged-hash construction
// (SHA256(SHA256(tag)‖SHA256(tag)‖msg)) under the shared domain-separation
// prefix BIPTag. Every derived value in this module — params fingerprints,
// EncPedPop nonces/pads/session seeds, VSS coefficients, the CertEq
// challenge tag — goes through TaggedHash so that two independent
// implementations given the same inputs derive identical bytes.
//
// # Secret hygiene
//
// Scalar.Zero wipes a scalar's backing storage in place. Callers holding
// host secret keys, ephemeral nonces, encryption pads, or decrypted shares
// must call Zero on them once they are no longer needed.
package curve
