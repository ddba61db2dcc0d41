// Package coordinate parses and formats ClearlyDefined coordinates.
//
// A coordinate names a single component known to the service:
//
//	type/provider/namespace/name/revision
//
// For example `npm/npmjs/-/lodash/4.17.21`. A namespace of "-" means the
// component has none. The revision may be omitted, in which case the service
// resolves the latest revision where that makes sense for the provider. A
// curation PR can be applied by appending `/pr/<number>`.
//
// # Parsing
//
//	c, err := coordinate.Parse("crate/cratesio/-/syn/1.0.14")
//	if err != nil { ... }
//	fmt.Println(c.Name, c.Revision)
//
// Parse failures unwrap to [ErrInvalidCoordinate]. The canonical form from
// [Coordinate.String] round-trips through [Parse] for every valid input.
package coordinate
