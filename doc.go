// Package edan is a queryable representation of hierarchical economic
// statistical tables (GDP, PCE, CPI, employment) together with a library of
// series transformations.
//
// Components of a table are addressed by codes built from four delimiters:
//
//	gdp:c:g     plain subcomponents (goods within consumption within GDP)
//	gdp:x+x     a balance component entering with a positive sign (exports)
//	gdp:x-m     a balance component entering with a negative sign (imports)
//	gdp#e       a member of an orthogonal partition of the aggregate
//
// # Packages
//
//   - timeseries: series with missing values, frequencies, CSV series store
//   - code: address parsing and composition
//   - component: the component tree, address resolution and table loading
//   - transform: differences, percent and log changes, moving aggregates,
//     annualization and re-indexing
//   - features: shares of and contributions to an aggregate
//   - indexnum: price and quantity index numbers, chain-weighted aggregates
//   - scenario: projecting a series forward from assumed changes
//
// # Quick Start
//
// Load a table and transform one of its components:
//
//	series, _ := timeseries.LoadCSVTable("nipa.csv", nil)
//	table, _ := component.LoadTableFile("gdp.yaml", component.MapSource(series))
//	pce, _ := table.Get("gdp:c")
//	growth, _ := pce.Transform(component.Real, transform.Spec{Method: transform.DifAPct})
//
// Relative addresses resolve from any component:
//
//	imports, _ := table.MustGet("gdp:x").Get("-m")
//
// Contributions of the subcomponents to the aggregate's growth:
//
//	contr, _ := features.Contributions(ctx, table.MustGet("gdp"), transform.Spec{})
//
// The edan command exposes the same operations from the shell.
package edan
