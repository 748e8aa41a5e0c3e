// Package vss implements the Feldman verifiable secret sharing layer
// EncPedPop is built on: deterministic polynomial sampling, commitment
// generation, share evaluation, and share verification.
//
// # Determinism
//
// Generate derives its polynomial's coefficients from a 32-byte seed via a
// tagged hash rather than drawing them from a random source directly. This
// is what lets a participant regenerate the exact same VSS contribution
// during recovery: as long as the same seed is supplied to Generate, the
// resulting polynomial — and therefore every secshare and commitment derived
// from it — is identical.
//
// # Usage
//
//	v, _ := vss.Generate(sessionSeed, t)
//	commitment := v.Commit()
//	share := v.SecshareFor(idx)
//	ok := vss.VerifySecshare(share, commitment.Pubshare(idx))
package vss
