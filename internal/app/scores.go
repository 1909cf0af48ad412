package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/studiowebux/gradebook/internal/tui"
	"github.com/studiowebux/gradebook/internal/types"
)

// ErrInvalidScore is returned for score input that is not a finite number
var ErrInvalidScore = errors.New("invalid score")

// parseScore parses one score. NaN and infinities are rejected, the data
// file has no encoding for them.
func parseScore(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidScore, s)
	}
	return v, nil
}

// parseScores turns the three raw inputs into scores. With a base, blank
// input keeps the base value for that subject. The total must stay finite
// as well as each score.
func parseScores(raw [3]string, base *types.Scores) (types.Scores, error) {
	var prior [3]float64
	if base != nil {
		prior = [3]float64{base.Chinese, base.Math, base.English}
	}

	var vals [3]float64
	for i, s := range raw {
		if s == "" && base != nil {
			vals[i] = prior[i]
			continue
		}
		v, err := parseScore(s)
		if err != nil {
			return types.Scores{}, err
		}
		vals[i] = v
	}

	scores := types.Scores{Chinese: vals[0], Math: vals[1], English: vals[2]}
	if math.IsInf(scores.Total(), 0) {
		return types.Scores{}, fmt.Errorf("%w: total of %v is not finite", ErrInvalidScore, raw)
	}
	return scores, nil
}

// formatScore prints a score without trailing zeros
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// readScores prompts for the three subject scores in order. Any invalid
// value reports an error and asks for all three again. Escape on any prompt
// cancels.
func (a *App) readScores(title string, base *types.Scores, context []string) (tui.Outcome[types.Scores], error) {
	prompts := [3]string{
		a.p.Sprintf("Chinese score:"),
		a.p.Sprintf("Math score:"),
		a.p.Sprintf("English score:"),
	}

	for {
		var raw [3]string
		for i, prompt := range prompts {
			out, err := a.prompt.Line(title, prompt, context...)
			if err != nil {
				return tui.Cancelled[types.Scores](), err
			}
			v, ok := out.Get()
			if !ok {
				return tui.Cancelled[types.Scores](), nil
			}
			raw[i] = v
		}

		scores, err := parseScores(raw, base)
		if err != nil {
			a.log.Debug("rejected score input", "error", err)
			a.prompt.Flash(tui.ToneError, a.p.Sprintf("Please enter valid numeric scores!"))
			continue
		}
		return tui.Value(scores), nil
	}
}
