// Package chilldkg orchestrates the ChillDKG protocol: session parameter
// validation and fingerprinting, the two-round participant/coordinator
// exchange built on encpedpop and certeq, and the recovery codec.
//
// # State machine
//
// A participant moves through ParticipantStep1, ParticipantStep2, and
// ParticipantFinalize, exchanging msg1/msg2 with a coordinator that mirrors
// it through CoordinatorStep1 and CoordinatorFinalize. Encountering
// SessionNotFinalizedError at finalize is not terminal: the seed and any
// state already derived remain valid, and the caller should retry finalize
// with a correct certificate, or obtain recovery data from another party
// and call Recover.
//
// # Recovery
//
// Recovery data is a self-describing byte blob produced at finalize time;
// Parse decodes it into a ParsedRecoveryData.
// Recover reconstructs a participant's full DKG output from a seed and
// that blob without repeating the interactive protocol; passing a nil seed
// performs the coordinator-side variant, which has no secshare to recover.
package chilldkg
