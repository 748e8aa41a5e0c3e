// Package encpedpop implements EncPedPop: a Pedersen distributed key
// generation in which every pairwise share is encrypted before it ever
// reaches the coordinator, so the coordinator relays ciphertext it cannot
// read.
//
// # Protocol shape
//
// ParticipantStep1 runs once per participant and produces a Message
// carrying a VSS commitment, an ephemeral pubnonce, and one encrypted share
// per recipient. CoordinatorStep aggregates all n messages into a single
// CoordinatorMessage broadcast identically to every participant, together
// with the eq_input transcript that CertEq will later sign. ParticipantStep2
// decrypts and verifies this participant's own aggregated share against the
// aggregated commitment, and independently recomputes the same eq_input so
// that every honest participant signs byte-identical data.
//
// # Pairwise encryption
//
// Shares are padded rather than encrypted with an AEAD: the pad for the
// share participant i sends to participant j is derived from the
// Diffie-Hellman shared point between i's ephemeral nonce key and j's
// static hostpubkey. Because ECDH is symmetric, participant j rederives the
// identical pad from j's static hostseckey and i's pubnonce, without either
// side learning the other's secret.
package encpedpop
