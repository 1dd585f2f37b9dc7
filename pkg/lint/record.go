package lint

import "github.com/leapstack-labs/svclint/pkg/naming"

// ServiceRecord is one service declaration found in the corpus.
type ServiceRecord struct {
	Identifier string          // declared service identifier
	Type       naming.TypeName // bound type (the class field)
	SourceFile string          // document the declaration was read from
	Line       int             // 1-based line of the declaration, 0 if unknown
}
