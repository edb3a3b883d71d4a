// Package commands defines the idwallet CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init      Create a new locked wallet
//   - wallets   List stored wallets
//   - keygen    Generate a key inside a wallet
//   - import    Import a key from a hex secret
//   - keys      List the keys of a wallet
//   - remove    Delete a key
//   - sign      Sign a message with a key
//   - verify    Verify a signature with a key
//   - encrypt   Seal a message to an X25519 key
//   - decrypt   Open a sealed message with an X25519 key
//
// # Implementation
//
// The root command builds the logger, the wallet store and the wallet service
// before any subcommand runs, so handlers share one app context. Binary
// arguments and results are hex encoded.
package commands
