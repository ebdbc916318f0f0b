package complexpr

import (
	"math/rand"
)

const (
	// defaultTrials is the number of agreeing random samples Equivalent
	// requires by default.
	defaultTrials = 6
	// retryBudget bounds the number of errored samples one equivalence
	// check may discard before giving up as inconclusive.
	retryBudget = 1000
	// sampleSpan is the half-width of the uniform range for sampled
	// variable components.
	sampleSpan = 5
)

// EquivOption is an option for Equivalent.
type EquivOption interface {
	equivOption(*equivConfig)
}

type equivConfig struct {
	trials  int
	tol     float64
	rnd     func() float64
	retries int
}

type (
	trialsOpt int
	tolOpt    float64
	randOpt   struct{ r *rand.Rand }
)

func (o trialsOpt) equivOption(c *equivConfig) { c.trials = int(o) }
func (o tolOpt) equivOption(c *equivConfig)    { c.tol = float64(o) }
func (o randOpt) equivOption(c *equivConfig)   { c.rnd = o.r.Float64 }

// Trials sets the number of agreeing random samples required. A value below
// one still samples once, but the first errored evaluation propagates
// instead of being retried.
func Trials(n int) EquivOption {
	return trialsOpt(n)
}

// Tolerance sets the componentwise tolerance for trial agreement.
func Tolerance(tol float64) EquivOption {
	return tolOpt(tol)
}

// Rand sets the random source used for trial environments, which makes a
// check reproducible. By default the process-wide source is used.
func Rand(r *rand.Rand) EquivOption {
	return randOpt{r}
}

// Equivalent reports whether a and b evaluate to the same value, within
// tolerance, under every one of several random variable assignments. Each
// trial draws every free variable of either expression uniformly from
// [-5, 5] in both components. A trial in which either evaluation fails, for
// example an unlucky zero denominator, does not count and is redrawn; a
// check that exhausts its whole retry budget this way returns an
// InconclusiveError wrapping the last evaluation error.
//
// Agreement on every trial is evidence of equivalence, not proof: two
// distinct expressions that happen to agree on the sampled points are
// misreported as equivalent.
func Equivalent(a, b *Expr, opts ...EquivOption) (bool, error) {
	cfg := equivConfig{
		trials:  defaultTrials,
		tol:     TrialTolerance,
		rnd:     rand.Float64,
		retries: retryBudget,
	}
	for _, opt := range opts {
		opt.equivOption(&cfg)
	}
	trials := cfg.trials
	if trials < 1 {
		trials = 1
		cfg.retries = 0
	}
	names := union(a.names, b.names)
	sample := func() Complex {
		return Complex{cfg.rnd()*2*sampleSpan - sampleSpan, cfg.rnd()*2*sampleSpan - sampleSpan}
	}
	retries := 0
	for done := 0; done < trials; {
		env := make(map[string]Complex, len(names))
		for _, k := range names {
			env[k] = sample()
		}
		va, err := a.Eval(env)
		if err == nil {
			var vb Complex
			vb, err = b.Eval(env)
			if err == nil {
				if !va.ApproxEqual(vb, cfg.tol) {
					return false, nil
				}
				done++
				continue
			}
		}
		if retries >= cfg.retries {
			if cfg.retries == 0 {
				// A zero budget means errors propagate undecorated.
				return false, err
			}
			return false, &InconclusiveError{Rounds: done, Err: err}
		}
		retries++
	}
	return true, nil
}

// union merges two sorted name lists without duplicates.
func union(a, b []string) []string {
	v := make([]string, 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		switch {
		case a[0] < b[0]:
			v = append(v, a[0])
			a = a[1:]
		case a[0] > b[0]:
			v = append(v, b[0])
			b = b[1:]
		default:
			v = append(v, a[0])
			a, b = a[1:], b[1:]
		}
	}
	v = append(v, a...)
	return append(v, b...)
}

// InconclusiveError reports an equivalence check that spent its entire retry
// budget on errored samples, e.g. an expression that divides by zero under
// every assignment.
type InconclusiveError struct {
	// Rounds is the number of trials that completed before giving up.
	Rounds int
	// Err is the last evaluation error.
	Err error
}

func (err *InconclusiveError) Error() string {
	return "equivalence check inconclusive: " + err.Err.Error()
}

func (err *InconclusiveError) Unwrap() error {
	return err.Err
}
