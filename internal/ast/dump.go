package ast

import (
	"regexp"

	"github.com/sanity-io/litter"
)

var dumpOptions = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: true,
	FieldExclusions:   regexp.MustCompile(`^(StartToken|OpToken)$`),
}

// Dump renders the complete Go structure of node, leaving out token
// bookkeeping.
func Dump(node AstNode) string {
	return dumpOptions.Sdump(node)
}
