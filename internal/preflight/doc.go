// Package preflight provides readiness checks for the external binaries and
// filesystem paths a compression run depends on.
//
// These checks run in two contexts:
//   - "mediapress compress" calls RunAll once before touching any file. A
//     failed required check aborts the batch with a classified error.
//   - "mediapress status" renders every result, including optional ones.
package preflight
