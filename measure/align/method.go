package align

import (
	"fmt"
	"strings"
)

// Method selects how lag scores are computed.
type Method int

const (
	// MethodDirect scores each lag with a time-domain dot product.
	MethodDirect Method = iota
	// MethodFFT computes all lag sums with one FFT cross-correlation.
	MethodFFT
	// MethodAuto picks FFT when the direct search would be expensive.
	MethodAuto
)

var methodNames = [...]string{
	MethodDirect: "direct",
	MethodFFT:    "fft",
	MethodAuto:   "auto",
}

func (m Method) valid() bool {
	return m >= MethodDirect && m <= MethodAuto
}

func (m Method) String() string {
	if !m.valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod converts a method name to a Method.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("align: unknown method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("align: invalid method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
