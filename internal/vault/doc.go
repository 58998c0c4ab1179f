// Package vault holds the decrypted, in-memory form of a user's vault: a
// mapping from category name to site name to a [SiteCredential].
//
// A Vault value is only ever alive for the duration of a single service
// operation. It is decoded from the plaintext produced by the vault codec,
// read or mutated, encoded again and dropped.
package vault
