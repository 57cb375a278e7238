// Package models holds the identity domain model: credential records,
// service configuration, tier derivation, and the closed error taxonomy.
// Everything here is pure; no package in models touches storage or transport.
package models

import "time"

// Account is an opaque on-chain account address. Addresses are compared
// byte-for-byte; the service never parses them.
type Account string

// Config is the singleton service configuration. Created once at
// initialization, mutated only by the admin, never deleted.
type Config struct {
	Admin         Account `json:"admin"`
	AccessControl Account `json:"access_control"`
	Treasury      Account `json:"treasury"`
	MintFee       int64   `json:"mint_fee"`
}

// Credential is an issued soulbound identity token. TokenID and Owner are
// immutable after mint; the contribution payload may be refreshed by the
// owner through update.
type Credential struct {
	TokenID       uint64    `json:"token_id"`
	Owner         Account   `json:"owner"`
	Username      string    `json:"username"`
	Contributions uint32    `json:"contributions"`
	Tier          Tier      `json:"tier"`
	ProofData     []byte    `json:"proof_data"`
	MintedAt      time.Time `json:"minted_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
