package fixed

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Default division precision is too coarse for wei-scale quotients.
	decimal.DivisionPrecision = 36
}

// Point is a thin wrapper around an arbitrary-precision decimal. Construction
// from untrusted input must go through Parse; MustParse panics on malformed
// input and is meant for literals.
type Point struct {
	v decimal.Decimal
}

func New(value int64, scale int) Point {
	return Point{decimal.New(value, int32(-scale))}
}

func FromInt(value int, scale int) Point {
	return New(int64(value), scale)
}

func FromInt64(value int64, scale int) Point {
	return New(value, scale)
}

func FromFloat64(value float64) Point {
	return Point{decimal.NewFromFloat(value)}
}

func Parse(s string) (Point, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Point{}, err
	}
	return Point{v}, nil
}

func MustParse(s string) Point {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Point) String() string           { return p.v.String() }
func (p Point) Float64() (float64, bool) { return p.v.Float64() }

func (p Point) Abs() Point { return Point{p.v.Abs()} }
func (p Point) Neg() Point { return Point{p.v.Neg()} }

func (p Point) Add(o Point) Point { return Point{p.v.Add(o.v)} }
func (p Point) Sub(o Point) Point { return Point{p.v.Sub(o.v)} }
func (p Point) Mul(o Point) Point { return Point{p.v.Mul(o.v)} }
func (p Point) Div(o Point) Point { return Point{p.v.Div(o.v)} }

func (p Point) MulInt64(o int64) Point { return Point{p.v.Mul(decimal.New(o, 0))} }
func (p Point) MulInt(o int) Point     { return Point{p.v.Mul(decimal.New(int64(o), 0))} }
func (p Point) DivInt64(o int64) Point { return Point{p.v.Div(decimal.New(o, 0))} }
func (p Point) DivInt(o int) Point     { return Point{p.v.Div(decimal.New(int64(o), 0))} }

func (p Point) Eq(o Point) bool  { return p.v.Cmp(o.v) == 0 }
func (p Point) Gt(o Point) bool  { return p.v.Cmp(o.v) > 0 }
func (p Point) Lt(o Point) bool  { return p.v.Cmp(o.v) < 0 }
func (p Point) Gte(o Point) bool { return p.v.Cmp(o.v) >= 0 }
func (p Point) Lte(o Point) bool { return p.v.Cmp(o.v) <= 0 }

func (p Point) IsZero() bool     { return p.v.IsZero() }
func (p Point) IsNegative() bool { return p.v.IsNegative() }
func (p Point) IsPositive() bool { return p.v.IsPositive() }

// Shift moves the decimal point by exp digits, exactly.
func (p Point) Shift(exp int) Point { return Point{p.v.Shift(int32(exp))} }

// Floor rounds toward negative infinity to an integer value.
func (p Point) Floor() Point { return Point{p.v.Floor()} }

// Rescale rounds half away from zero to the given number of decimal places.
func (p Point) Rescale(scale int) Point { return Point{p.v.Round(int32(scale))} }

func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Point) UnmarshalText(text []byte) error {
	v, err := decimal.NewFromString(string(text))
	if err != nil {
		return err
	}
	p.v = v
	return nil
}
