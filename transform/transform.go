package transform

import (
	"context"
	"log/slog"
	"time"

	"github.com/hotzsauce/edan/internal/logging"
	"github.com/hotzsauce/edan/timeseries"
)

// Options holds the parameters of a transformation.
type Options struct {
	// N is the lag for the difference methods and the window length for the
	// moving methods. Zero means 1.
	N int

	// H is the number of periods per year. Zero means the series' native
	// frequency decides.
	H int

	// Base is the reference period of the index method.
	Base Base
}

// Result is a transformed series together with the periods that came out
// missing and why.
type Result struct {
	Series *timeseries.Series
	Gaps   []DataGap
}

// Engine applies transformations and reports data gaps to its logger.
type Engine struct {
	Logger *slog.Logger
}

// NewEngine creates an engine logging to logger. A nil logger discards.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{Logger: logger}
}

var defaultEngine = NewEngine(nil)

// Transform applies method to s with the default engine and returns the
// derived series. See Engine.Apply.
func Transform(s *timeseries.Series, method string, opts Options) (*timeseries.Series, error) {
	res, err := defaultEngine.Apply(s, method, opts)
	if err != nil {
		return nil, err
	}
	return res.Series, nil
}

// Apply computes method over s. The input is never modified.
//
// The output is shorter than the input by the method's lookback: n for the
// difference methods, h for the year-over-year methods and n-1 for the moving
// methods. Its periods are the input's last periods. An output period whose
// operands are missing, or whose formula is undefined there, is missing and
// recorded in Result.Gaps; this never fails the call.
func (e *Engine) Apply(s *timeseries.Series, method string, opts Options) (*Result, error) {
	m, ok := methods[method]
	if !ok {
		return nil, newError(method, ErrUnknownMethod, "")
	}
	if s == nil {
		return nil, newError(method, ErrInvalidParameter, "nil series")
	}

	var (
		values   []float64
		lookback int
		gaps     []DataGap
		err      error
	)
	if m.family == indexFamily {
		values, err = rebase(s, opts.Base)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			if timeseries.IsMissing(v) {
				gaps = append(gaps, gapAt(s, i, GapMissingOperand))
			}
		}
	} else {
		n, h, err := resolveParams(s, m, opts)
		if err != nil {
			return nil, err
		}
		switch m.family {
		case yearFamily:
			lookback = h
		case windowFamily:
			lookback = n - 1
		default:
			lookback = n
		}
		if lookback >= s.Len() {
			return nil, newError(method, ErrInsufficientData,
				"lookback of %d periods leaves nothing of %d observations", lookback, s.Len())
		}

		if m.family == windowFamily {
			values, gaps = applyWindow(s, m, n, h)
		} else {
			values, gaps = applyPair(s, m, lookback, n, h)
		}
	}

	if len(gaps) > 0 {
		e.report(s, method, gaps)
	}

	return &Result{
		Series: s.Derive(s.Name, values, lookback),
		Gaps:   gaps,
	}, nil
}

func resolveParams(s *timeseries.Series, m *method, opts Options) (n, h int, err error) {
	n = opts.N
	if n == 0 {
		n = 1
	}
	if n < 1 {
		return 0, 0, newError(m.name, ErrInvalidParameter, "n must be positive, got %d", n)
	}

	h = opts.H
	if h < 0 {
		return 0, 0, newError(m.name, ErrInvalidParameter, "h must be positive, got %d", h)
	}
	if h == 0 {
		h = s.Freq.PeriodsPerYear()
	}
	if m.needsH && h == 0 {
		return 0, 0, newError(m.name, ErrMissingParameter, "h required for a series of unknown frequency")
	}
	return n, h, nil
}

// applyPair evaluates a formula of x(t) and x(t-lag). Output i corresponds to
// input period i+lag.
func applyPair(s *timeseries.Series, m *method, lag, n, h int) ([]float64, []DataGap) {
	out := make([]float64, s.Len()-lag)
	var gaps []DataGap
	for i := range out {
		t := i + lag
		cur, prev := s.Values[t], s.Values[t-lag]
		if timeseries.IsMissing(cur) || timeseries.IsMissing(prev) {
			out[i] = timeseries.Missing()
			gaps = append(gaps, gapAt(s, t, GapMissingOperand))
			continue
		}
		v, reason, ok := m.pair(cur, prev, n, h)
		if !ok {
			out[i] = timeseries.Missing()
			gaps = append(gaps, gapAt(s, t, reason))
			continue
		}
		out[i] = v
	}
	return out, gaps
}

// applyWindow evaluates a formula over the n observations ending at each
// period. A missing value anywhere in the window makes the output missing.
func applyWindow(s *timeseries.Series, m *method, n, h int) ([]float64, []DataGap) {
	out := make([]float64, s.Len()-(n-1))
	var gaps []DataGap
	for i := range out {
		t := i + n - 1
		sum, complete := 0.0, true
		for _, v := range s.Values[t-n+1 : t+1] {
			if timeseries.IsMissing(v) {
				complete = false
				break
			}
			sum += v
		}
		if !complete {
			out[i] = timeseries.Missing()
			gaps = append(gaps, gapAt(s, t, GapMissingOperand))
			continue
		}
		out[i] = m.window(sum, n, h)
	}
	return out, gaps
}

func gapAt(s *timeseries.Series, i int, reason GapReason) DataGap {
	g := DataGap{Index: i, Reason: reason}
	if s.HasTimestamps() {
		g.Period = s.Timestamps[i]
	}
	return g
}

// report logs gaps. Missing operands are usually known holes in the source
// data and go to debug; undefined formulas go to warn.
func (e *Engine) report(s *timeseries.Series, method string, gaps []DataGap) {
	logger := e.Logger
	if logger == nil {
		return
	}
	for _, g := range gaps {
		level := slog.LevelWarn
		if g.Reason == GapMissingOperand {
			level = slog.LevelDebug
		}
		attrs := []any{"series", s.Name, "method", method, "reason", g.Reason.String()}
		if g.Period.IsZero() {
			attrs = append(attrs, "index", g.Index)
		} else {
			attrs = append(attrs, "period", g.Period.Format(time.DateOnly))
		}
		logger.Log(context.Background(), level, "transform produced missing value", attrs...)
	}
}
