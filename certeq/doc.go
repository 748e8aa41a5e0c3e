// Package certeq implements the equality-check certificate protocol: every
// participant signs its own index under its hostseckey, with the transcript x
// bound into the Schnorr challenge tag, and the concatenation of those
// signatures, in participant order, is the certificate. A certificate
// verifies only if every participant signed under exactly x, which is what
// certifies that every participant ended the DKG agreeing on the same output.
//
// Unlike a threshold signature, CertEq performs no aggregation: the
// certificate grows linearly with the number of participants, and
// verification checks each signature independently. This trades
// certificate size for simplicity. Verify reports only whether the whole
// certificate is valid; it does not report which signature failed.
package certeq
