// Package pkgsource locates the content packages of a load order and parses
// their Light and Cell records.
//
// Parsing runs in parallel, one goroutine per package up to a limit, and
// results come back in declared order. A package that fails to parse is
// logged and returned with zero records; it never fails the load.
package pkgsource
