// Package electionservice implements organizational elections inside the
// governance context.
//
// The module owns ballot validation (plurality and preferential Borda rules),
// atomic vote recording with secret-ballot detachment, and tally reads over
// recorded selections. Storage and transport stay behind ports and adapters.
package electionservice
