// Package diagerr defines the error taxonomy shared by every tsdiag package.
//
// Each failure carries a Kind so that callers can react without parsing
// messages:
//
//   - KindInputType: coefficients are neither a numeric sequence nor text
//   - KindInputValue: coefficients are empty, non-numeric, or fail to parse
//   - KindCardinality: a batch name list does not match its model list
//   - KindNumerical: root finding failed for a polynomial
//
// Use the Is* predicates, or errors.As with *Error:
//
//	res, err := diagnostic.Classify(raw, coeffs.AR)
//	if diagerr.IsInputValue(err) {
//	    // ask the user for corrected coefficients
//	}
package diagerr
