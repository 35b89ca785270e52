// Package schema provides the in-memory representation of Avro schemas.
//
// This package contains the type IR and its parser only. All other internal
// packages import schema; schema imports nothing internal.
//
// Key design constraints:
//   - Schema is a sealed interface: only the variants in this package
//     implement it, so every consumer can switch over the closed set
//   - IR values are never mutated after construction
//   - Records and enums are addressed by FQN ("namespace.Name") once
//     normalized; see GlobalTable
//   - Unions are built through NewUnion, which enforces the Avro union rules
package schema
