// Package render turns analysis results into output.
//
// # Overview
//
// Four outputs are provided:
//
//   - [Text]: the human-readable report for one package, colored with
//     lipgloss when the writer is a terminal
//   - [Chains]: one line per traced dependent chain
//   - [JSON]: machine-readable reports for every analyzed package
//   - [DOT] and [SVG]: a Graphviz diagram of traced chains
//
// # Usage
//
//	res, _ := analyzer.Analyze("react")
//	render.Text(os.Stdout, res)
//
//	tr, _ := analyzer.TraceDependencyChain("react")
//	render.Chains(os.Stdout, tr)
//
//	svg, err := render.SVG(ctx, render.DOT(tr))
package render
