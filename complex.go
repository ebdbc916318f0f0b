package complexpr

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultTolerance is the componentwise tolerance for general
	// approximate comparisons.
	DefaultTolerance = 1e-8
	// TrialTolerance is the componentwise tolerance used for equivalence
	// trials.
	TrialTolerance = 1e-7

	// intExpWindow is how far an exponent's imaginary part may stray from
	// zero while Pow still treats the exponent as an integer.
	intExpWindow = 1e-14
	// maxIntExp bounds the exponent magnitude eligible for repeated
	// multiplication. Larger integers would overflow the int conversion,
	// and the polar formula is no less exact at that scale.
	maxIntExp = 1 << 31
	// logGuard keeps the polar logarithm away from its singularity at zero
	// magnitude.
	logGuard = 1e-300
	// displayZero is the magnitude below which a component renders as zero.
	displayZero = 1e-12
)

var (
	// ErrDivisionByZero is returned when a divisor is exactly zero. Only a
	// literally zero denominator counts; there is no tolerance.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrRootDegree is returned when a root degree is zero.
	ErrRootDegree = errors.New("root degree must be a nonzero integer")
)

// Complex is a complex value. Operations return new values and never modify
// their operands.
type Complex struct {
	Re, Im float64
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{z.Re + w.Re, z.Im + w.Im}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{z.Re - w.Re, z.Im - w.Im}
}

// Mul returns z * w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{z.Re*w.Re - z.Im*w.Im, z.Re*w.Im + z.Im*w.Re}
}

// Div returns z / w, or ErrDivisionByZero if w is exactly zero.
func (z Complex) Div(w Complex) (Complex, error) {
	d := w.Re*w.Re + w.Im*w.Im
	if d == 0 {
		return Complex{}, ErrDivisionByZero
	}
	return Complex{(z.Re*w.Re + z.Im*w.Im) / d, (z.Im*w.Re - z.Re*w.Im) / d}, nil
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{-z.Re, -z.Im}
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{z.Re, -z.Im}
}

// Abs returns the magnitude of z.
func (z Complex) Abs() float64 {
	return math.Hypot(z.Re, z.Im)
}

// Pow returns z**w. An exponent whose imaginary part is within 1e-14 of zero
// and whose real part is an exact integer of magnitude below 2**31 is
// computed by repeated multiplication, which keeps results like (-2)**2
// exact; a negative integer exponent computes the positive power and inverts
// it with Div, which can surface ErrDivisionByZero for a zero base. Every
// other exponent uses the polar formula.
func (z Complex) Pow(w Complex) (Complex, error) {
	if math.Abs(w.Im) < intExpWindow && w.Re == math.Trunc(w.Re) && math.Abs(w.Re) < maxIntExp {
		return z.ipow(int(w.Re))
	}
	r := z.Abs()
	theta := math.Atan2(z.Im, z.Re)
	mag := math.Pow(r, w.Re) * math.Exp(-w.Im*theta)
	ang := w.Re*theta + w.Im*math.Log(math.Max(r, logGuard))
	return Complex{mag * math.Cos(ang), mag * math.Sin(ang)}, nil
}

// ipow raises z to an integer power by repeated multiplication.
func (z Complex) ipow(n int) (Complex, error) {
	m := n
	if m < 0 {
		m = -m
	}
	r := Complex{Re: 1}
	for i := 0; i < m; i++ {
		r = r.Mul(z)
	}
	if n < 0 {
		return Complex{Re: 1}.Div(r)
	}
	return r, nil
}

// Sqrt returns the principal square root of z. The sign of the result's
// imaginary part follows the sign of z's.
func (z Complex) Sqrt() Complex {
	r := z.Abs()
	re := math.Sqrt((r + z.Re) / 2)
	im := math.Sqrt((r - z.Re) / 2)
	if z.Im < 0 {
		im = -im
	}
	return Complex{re, im}
}

// Root returns the principal n-th root of z, or ErrRootDegree if n is zero.
func (z Complex) Root(n int) (Complex, error) {
	if n == 0 {
		return Complex{}, ErrRootDegree
	}
	r := math.Pow(z.Abs(), 1/float64(n))
	theta := math.Atan2(z.Im, z.Re) / float64(n)
	return Complex{r * math.Cos(theta), r * math.Sin(theta)}, nil
}

// ApproxEqual reports whether both componentwise absolute differences
// between z and w are below tol.
func (z Complex) ApproxEqual(w Complex, tol float64) bool {
	return math.Abs(z.Re-w.Re) < tol && math.Abs(z.Im-w.Im) < tol
}

// String renders z for display. Components are rounded to ten decimal
// places and written in fixed notation, with exponent notation only for
// extreme magnitudes; magnitudes below 1e-12 render as zero, a zero
// imaginary part is omitted entirely, and a unit imaginary coefficient
// renders as a bare i.
func (z Complex) String() string {
	re := displayRound(z.Re)
	im := displayRound(z.Im)
	if im == 0 {
		return formatComponent(re)
	}
	var b strings.Builder
	if re != 0 {
		b.WriteString(formatComponent(re))
		if im > 0 {
			b.WriteByte('+')
		}
	}
	switch im {
	case 1:
		// bare i
	case -1:
		b.WriteByte('-')
	default:
		b.WriteString(formatComponent(im))
	}
	b.WriteByte('i')
	return b.String()
}

// formatComponent writes one component in fixed notation. Magnitudes of
// 1e15 and up have no fractional part anyway and fall back to exponent
// notation rather than a wall of zeros.
func formatComponent(v float64) string {
	if math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func displayRound(v float64) float64 {
	a := math.Abs(v)
	if a < displayZero {
		return 0
	}
	if a >= 1e16 {
		// Integral already; scaling by 1e10 could overflow.
		return v
	}
	return math.Round(v*1e10) / 1e10
}
