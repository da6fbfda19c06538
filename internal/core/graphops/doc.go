// Package graphops holds the pure functions over knowledge graphs:
// converting extractor output into a fragment, merging fragments,
// filtering a fragment and computing 1-hop neighbourhoods.
//
// None of these functions perform I/O or return errors for malformed
// data. Elements that cannot be used are skipped and the best-effort
// result is returned.
package graphops
