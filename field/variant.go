package field

// Variant identifies the concrete kind of a field.
type Variant int

const (
	VariantString Variant = iota
	VariantLongString
	VariantBoolean
	VariantInteger
	VariantDecimal
	VariantDate
	VariantTime
	VariantDateTime
	VariantArray
	VariantCombo
)

func (v Variant) String() string {
	switch v {
	case VariantString:
		return "String"
	case VariantLongString:
		return "LongString"
	case VariantBoolean:
		return "Boolean"
	case VariantInteger:
		return "Integer"
	case VariantDecimal:
		return "Decimal"
	case VariantDate:
		return "Date"
	case VariantTime:
		return "Time"
	case VariantDateTime:
		return "DateTime"
	case VariantArray:
		return "Array"
	case VariantCombo:
		return "Combo"
	}
	return "Unknown"
}

// LongStringThreshold is the effective length above which string types get
// a multi-line control.
const LongStringThreshold = 60
