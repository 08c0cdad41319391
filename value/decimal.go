package value

import "regexp"

// Decimal carries a HighPrec value as canonical decimal text: an optional
// sign, one or more digits, an optional fractional part and an optional
// exponent. It is never converted to a math/big number by this package —
// the reference Python encoder (bjdata/encoder.py) only ever calls
// str(Decimal(...)) to produce this text and round-trips it verbatim, so
// there is no arithmetic anywhere in the wire format that would justify
// pulling in an arbitrary-precision math package.
type Decimal string

var decimalText = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// NewDecimal validates s as canonical decimal text and returns it as a
// Decimal. It rejects anything that is not a plain sign/digits/exponent
// run, in particular whitespace, "Infinity" and "NaN" spellings, which the
// encoder maps to Null rather than HighPrec (spec.md section 4.5.4).
func NewDecimal(s string) (Decimal, bool) {
	if !decimalText.MatchString(s) {
		return "", false
	}

	return Decimal(s), true
}

// Valid reports whether d holds well-formed canonical decimal text.
func (d Decimal) Valid() bool {
	return decimalText.MatchString(string(d))
}

// String returns the decimal text verbatim.
func (d Decimal) String() string {
	return string(d)
}
