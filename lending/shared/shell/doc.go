// Package shell contains the imperative seams around the pure lending
// core: the repository and publisher ports the command handlers depend
// on, the mapping between domain events and their storable
// representation, event metadata, retry with exponential backoff for
// concurrency conflicts, and the handler result type.
package shell
