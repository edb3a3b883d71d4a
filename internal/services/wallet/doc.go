// Package wallet implements the wallet service: creating locked wallets and
// managing and using the keys inside them.
//
// Each call takes the wallet passphrase, unlocks the stored blob, does its
// work and, for mutations, locks and saves the wallet again. Unlocked
// wallets never outlive the call.
package wallet
