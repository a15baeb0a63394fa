package fixed

import (
	"testing"
)

func TestFixedPoint_Constructors(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want string
	}{
		{"New integer", New(42, 0), "42"},
		{"New scaled", New(1, 4), "0.0001"},
		{"New negative scale", New(5, -2), "500"},
		{"FromInt", FromInt(-7, 0), "-7"},
		{"FromInt64 scaled", FromInt64(12345, 2), "123.45"},
		{"FromFloat64", FromFloat64(2.5), "2.5"},
		{"MustParse", MustParse("10.000000000000000001"), "10.000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %s; want %s", got, tt.want)
			}
		})
	}
}

func TestFixedPoint_Parse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"integer", "100", "100", false},
		{"decimal", "0.000001", "0.000001", false},
		{"negative", "-42.5", "-42.5", false},
		{"wei magnitude", "1000000000000000000000", "1000000000000000000000", false},
		{"empty", "", "", true},
		{"garbage", "12x.3", "", true},
		{"lone dot", ".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error, got %s", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s; want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixedPoint_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func() Point
		want string
	}{
		{"Add", func() Point { return MustParse("1.1").Add(MustParse("2.2")) }, "3.3"},
		{"Sub negative result", func() Point { return One.Sub(Ten) }, "-9"},
		{"Mul", func() Point { return MustParse("0.1").Mul(MustParse("0.2")) }, "0.02"},
		{"Div exact", func() Point { return Ten.Div(Two) }, "5"},
		{"Div repeating keeps precision", func() Point { return One.Div(MustParse("3")).Mul(MustParse("3")) }, "0.999999999999999999999999999999999999"},
		{"MulInt", func() Point { return MustParse("2.5").MulInt(4) }, "10"},
		{"DivInt64", func() Point { return MustParse("9").DivInt64(3) }, "3"},
		{"Neg", func() Point { return MustParse("4").Neg() }, "-4"},
		{"Abs", func() Point { return MustParse("-4.2").Abs() }, "4.2"},
		{"Shift up", func() Point { return MustParse("1.5").Shift(6) }, "1500000"},
		{"Shift down", func() Point { return MustParse("1500000").Shift(-6) }, "1.5"},
		{"Floor positive", func() Point { return MustParse("2.9").Floor() }, "2"},
		{"Floor negative", func() Point { return MustParse("-2.1").Floor() }, "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op().String(); got != tt.want {
				t.Errorf("got %s; want %s", got, tt.want)
			}
		})
	}
}

func TestFixedPoint_Comparisons(t *testing.T) {
	a := MustParse("1.50")
	b := MustParse("1.5")
	c := MustParse("2")

	if !a.Eq(b) {
		t.Error("1.50 should equal 1.5")
	}
	if !c.Gt(a) || !a.Lt(c) {
		t.Error("ordering broken between 1.5 and 2")
	}
	if !a.Gte(b) || !a.Lte(b) {
		t.Error("Gte/Lte should hold for equal values")
	}
	if !Zero.IsZero() {
		t.Error("Zero.IsZero() = false")
	}
	if !MustParse("-0.1").IsNegative() {
		t.Error("-0.1 should be negative")
	}
	if !MustParse("0.1").IsPositive() {
		t.Error("0.1 should be positive")
	}
}

func TestFixedPoint_Rescale(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		scale    int
		expected string
	}{
		{"truncating digits rounds", "1.234", 2, "1.23"},
		{"half rounds away from zero", "1.25", 1, "1.3"},
		{"negative half rounds away from zero", "-1.25", 1, "-1.3"},
		{"scale widens without padding", "1.2", 4, "1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.value).Rescale(tt.scale)
			if !got.Eq(MustParse(tt.expected)) {
				t.Errorf("Rescale(%s, %d) = %s, expected %s", tt.value, tt.scale, got, tt.expected)
			}
		})
	}
}

func TestFixedPoint_TextRoundTrip(t *testing.T) {
	orig := MustParse("123456789.000000000000000001")

	text, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var back Point
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !back.Eq(orig) {
		t.Errorf("round trip mismatch: %s != %s", back, orig)
	}

	if err := back.UnmarshalText([]byte("not-a-number")); err == nil {
		t.Error("UnmarshalText should reject garbage")
	}
}
