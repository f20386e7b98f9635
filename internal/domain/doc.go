// Package domain contains the core model for statemelt: the wide per-state records that are loaded,
// the long per-chain records that are emitted, and the error taxonomy shared by every layer.
//
// The domain is format- and transport-agnostic: it does not depend on JSON, YAML, CSV, SQLite,
// or the filesystem. Infra/adapters map into/from these types.
package domain
