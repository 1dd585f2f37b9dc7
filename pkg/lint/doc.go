// Package lint checks declared service identifiers against the identifiers
// implied by their bound types.
//
// # Two Passes
//
// Linting a corpus is a two-stage pipeline over the same ordered records:
//
//  1. DetectConflicts scans every record and builds an immutable
//     ExemptionSet: types bound under more than one identifier, and all
//     types sharing an identifier, cannot derive their identifier from the
//     type name and are exempted.
//  2. Check classifies every record using the exemption set, the rule
//     tables and naming.Derive, and groups the mismatches by source file.
//
// The exemption set must be complete before Check runs; Run wires both
// stages together:
//
//	records := ... // from the loader, in document order
//	report, exempt := lint.Run(records, naming.DefaultRuleTables())
//	for _, f := range report.Files {
//		for _, finding := range f.Findings {
//			fmt.Println(finding.Message())
//		}
//	}
//
// Neither stage modifies records or rule tables.
package lint
