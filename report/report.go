// SPDX-License-Identifier: MIT

// Package report formats a solved distribution as Pr[var=value] lines.
// It reads only the public query methods of a result.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrNilResult indicates a nil result.
	ErrNilResult = errors.New("report: nil result")

	// ErrBadShape indicates a non-positive variable count or domain size.
	ErrBadShape = errors.New("report: invalid shape")
)

// DefaultPrecision prints the shortest representation that round-trips.
const DefaultPrecision = -1

// Querier is the read side of a solved distribution.
type Querier interface {
	VarProb(n, v int) float64
	Entropy() float64
}

// Option configures Write.
type Option func(*Options)

// Options is the resolved formatting configuration.
type Options struct {
	skipZero  bool
	precision int
}

// WithSkipZero omits entries with probability 0.
func WithSkipZero(on bool) Option {
	return func(o *Options) { o.skipZero = on }
}

// WithPrecision prints probabilities with digits decimals; negative means
// shortest round-trip form.
func WithPrecision(digits int) Option {
	return func(o *Options) { o.precision = digits }
}

// Write emits one "Pr[n=v] = p" line per entry, variable-major, followed by
// "entropy = h".
func Write(w io.Writer, r Querier, variableCount, k int, opts ...Option) error {
	if r == nil {
		return ErrNilResult
	}
	if variableCount <= 0 || k <= 0 {
		return fmt.Errorf("write %dx%d: %w", variableCount, k, ErrBadShape)
	}
	o := Options{precision: DefaultPrecision}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	bw := bufio.NewWriter(w)
	for n := 0; n < variableCount; n++ {
		for v := 0; v < k; v++ {
			p := r.VarProb(n, v)
			if o.skipZero && p == 0 {
				continue
			}
			fmt.Fprintf(bw, "Pr[%d=%d] = %s\n", n, v, o.format(p))
		}
	}
	fmt.Fprintf(bw, "entropy = %s\n", o.format(r.Entropy()))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (o Options) format(f float64) string {
	if o.precision < 0 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', o.precision, 64)
}
