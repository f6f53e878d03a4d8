// Package component models hierarchical economic tables such as the GDP and
// PCE tables: a tree of components, each carrying up to four measures
// (nominal level, real level, price index, quantity index), addressed by
// delimiter-joined codes.
//
// Addresses use ':' for ordinary subcomponents, '+' and '-' for the signed
// children of a balance component such as net exports, and '#' for members
// of a partition, an alternative decomposition of the same aggregate:
//
//	gdp:c:g     goods consumption
//	gdp:x+x     exports, a positive child of net exports
//	gdp:x-m     imports, a negative child of net exports
//	gdp#e       energy, in a partition of gdp
//
// Tables are built once, from Spec values or a YAML description, and are
// immutable afterwards.
package component
