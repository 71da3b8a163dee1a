package curve

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"linear", Linear},
		{"Exponential", Exponential},
		{"LOGARITHMIC", Logarithmic},
		{"s-curve", SCurve},
		{"scurve", SCurve},
		{"S-Curve", SCurve},
		{"equal-power", EqualPower},
		{"equalpower", EqualPower},
		{"step", Step},
		{"bezier", Bezier},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseType("cubic"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
}

func TestInvalidType(t *testing.T) {
	bad := Type(99)
	if got := bad.String(); got != "Type(99)" {
		t.Fatalf("String() = %q", got)
	}
	if _, err := bad.MarshalText(); err == nil {
		t.Fatal("expected MarshalText error")
	}
	var typ Type
	if err := typ.UnmarshalText([]byte("nope")); err == nil {
		t.Fatal("expected UnmarshalText error")
	}
}

func TestControlClamp(t *testing.T) {
	got := Control{X: -0.5, Y: 3}.Clamp()
	if got != (Control{X: 0, Y: 2}) {
		t.Fatalf("Clamp() = %+v", got)
	}
	got = Control{X: 1.5, Y: -4}.Clamp()
	if got != (Control{X: 1, Y: -1}) {
		t.Fatalf("Clamp() = %+v", got)
	}
	if DefaultControl.Clamp() != DefaultControl {
		t.Fatal("DefaultControl changed by Clamp")
	}
}
