package codec

import (
	"errors"
	"math/big"
	"regexp"
	"strings"

	"github.com/reoring/xsdform/schema"
)

// Boolean returns a Codec for xs:boolean. "1" and "0" decode but encode
// as "true" and "false".
func Boolean() Codec[bool] { return booleanCodec{} }

type booleanCodec struct{}

func (booleanCodec) Decode(text string) (bool, error) {
	switch strings.TrimSpace(text) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, formatIssue(schema.KindBoolean, text, nil)
}

func (booleanCodec) Encode(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// Integer returns an arbitrary precision Codec for xs:integer and its
// derived types.
func Integer() Codec[*big.Int] { return integerCodec{} }

type integerCodec struct{}

func (integerCodec) Decode(text string) (*big.Int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(text), "+")
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, formatIssue(schema.KindInteger, text, errors.New("not a base 10 integer"))
	}
	return n, nil
}

func (integerCodec) Encode(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// Decimal returns a Codec for xs:decimal, xs:float and xs:double. Values are
// held as big.Float with 256 bits of precision.
func Decimal() Codec[*big.Float] { return decimalCodec{} }

type decimalCodec struct{}

var decimalLexical = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func (decimalCodec) Decode(text string) (*big.Float, error) {
	s := strings.TrimSpace(text)
	if !decimalLexical.MatchString(s) {
		return nil, formatIssue(schema.KindDecimal, text, nil)
	}
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, formatIssue(schema.KindDecimal, text, err)
	}
	return f, nil
}

func (decimalCodec) Encode(v *big.Float) string {
	if v == nil {
		return "0.0"
	}
	s := v.Text('f', -1)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
