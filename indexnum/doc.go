// Package indexnum computes price and quantity index numbers over a basket
// of table components, and builds chain-weighted aggregates from them.
//
// # Index Numbers
//
// Weighted formulas (Laspeyres, Paasche, Fisher, Törnqvist, Walsh,
// geometric and Marshall-Edgeworth) combine the prices and quantities of
// every item in the basket. Unweighted formulas (Carli, Dutot, Jevons,
// harmonic mean, CSWD and harmonic ratio) read a single measure.
//
// A chained index links consecutive periods and multiplies the links:
//
//	idx, err := indexnum.Fisher(nodes, indexnum.Options{Base: transform.Year(2012)})
//
// A fixed-base index compares every period with the base instead:
//
//	idx, err := indexnum.Laspeyres(nodes, indexnum.Options{Fixed: true})
//
// By default prices come from the price measure, falling back to the
// implicit deflator 100·nominal/real, and quantities from the real measure.
//
// # Aggregates
//
// Aggregate combines components the way national accounts build chained
// dollar aggregates: nominal levels add, the real level follows a Fisher
// quantity chain scaled to the components' real total in the base, and the
// price is the implicit deflator. The result is a new component whose
// subcomponents are the basket members, so shares and contributions apply
// to it unchanged.
package indexnum
