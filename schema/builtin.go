package schema

// DataKind is the intrinsic data kind of a builtin type.
type DataKind int

const (
	KindString DataKind = iota
	KindBoolean
	KindInteger
	KindDecimal
	KindDate
	KindTime
	KindDateTime
)

func (k DataKind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "dateTime"
	default:
		return "string"
	}
}

var builtinKinds = map[string]DataKind{
	"boolean": KindBoolean,

	"integer":            KindInteger,
	"int":                KindInteger,
	"long":               KindInteger,
	"short":              KindInteger,
	"byte":               KindInteger,
	"nonNegativeInteger": KindInteger,
	"nonPositiveInteger": KindInteger,
	"positiveInteger":    KindInteger,
	"negativeInteger":    KindInteger,
	"unsignedLong":       KindInteger,
	"unsignedInt":        KindInteger,
	"unsignedShort":      KindInteger,
	"unsignedByte":       KindInteger,

	"decimal": KindDecimal,
	"float":   KindDecimal,
	"double":  KindDecimal,

	"date":     KindDate,
	"time":     KindTime,
	"dateTime": KindDateTime,
}

var builtinNames = []string{
	"anySimpleType", "string", "normalizedString", "token", "language",
	"Name", "NCName", "ID", "IDREF", "IDREFS", "ENTITY", "ENTITIES",
	"NMTOKEN", "NMTOKENS", "NOTATION", "QName", "anyURI", "base64Binary",
	"hexBinary", "duration", "gYear", "gYearMonth", "gMonth", "gMonthDay",
	"gDay",
}

var builtins = func() map[string]*SimpleType {
	m := make(map[string]*SimpleType, len(builtinKinds)+len(builtinNames))
	for name, kind := range builtinKinds {
		m[name] = &SimpleType{Name: name, Builtin: true, Kind: kind}
	}
	for _, name := range builtinNames {
		m[name] = &SimpleType{Name: name, Builtin: true, Kind: KindString}
	}
	return m
}()

// Builtin returns the builtin simple type with the given local name.
func Builtin(local string) (*SimpleType, bool) {
	t, ok := builtins[local]
	return t, ok
}

// MustBuiltin is Builtin for names known at compile time.
func MustBuiltin(local string) *SimpleType {
	t, ok := builtins[local]
	if !ok {
		panic("schema: unknown builtin type " + local)
	}
	return t
}
