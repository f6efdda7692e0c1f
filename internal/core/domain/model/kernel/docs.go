// Package kernel provides core domain primitives shared by the partner application's
// aggregates.
//
// The package includes:
//   - ID: an opaque, validated document identifier
//   - Money: a non-negative amount in paise
//   - Phone: a normalized ten digit mobile number
//
// These primitives are immutable values; the zero value of each is "unset" and is
// rejected wherever a value is required.
package kernel
