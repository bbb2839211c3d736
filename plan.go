package thunderframe

import (
	"fmt"
	"strings"
)

// JoinStrategy names how a join finds matching rows.
type JoinStrategy string

const (
	// StrategyHash looks candidates up by key in a hash of the right rows.
	StrategyHash JoinStrategy = "hash"
	// StrategyNestedLoop tests every pair of rows.
	StrategyNestedLoop JoinStrategy = "nested-loop"
)

// JoinPlan describes how a join is executed.
type JoinPlan struct {
	Type     JoinType
	Strategy JoinStrategy

	// Keys are the column pairs compared through the hash.
	Keys []JoinKey
	// Residual is evaluated on each candidate pair; nil accepts every candidate.
	Residual Condition

	LeftRows  int
	RightRows int
}

// Summary is a one-line form of the plan, used in log records.
func (p JoinPlan) Summary() string {
	if p.Residual == nil {
		return fmt.Sprintf("%s %s on %d keys", p.Type, p.Strategy, len(p.Keys))
	}
	return fmt.Sprintf("%s %s on %d keys, filter %s", p.Type, p.Strategy, len(p.Keys), conditionString(p.Residual))
}

// String returns a human-readable multi-line description of the plan.
func (p JoinPlan) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Join Plan (%s)\n", p.Type))
	b.WriteString(strings.Repeat("-", 50) + "\n")

	b.WriteString(fmt.Sprintf("  Strategy:   %s\n", p.Strategy))
	b.WriteString(fmt.Sprintf("  Left Rows:  %s    Right Rows: %s\n",
		formatCount(int64(p.LeftRows)), formatCount(int64(p.RightRows))))

	b.WriteString("\nKeys:\n")
	if len(p.Keys) == 0 {
		b.WriteString("  none\n")
	}
	for _, k := range p.Keys {
		b.WriteString(fmt.Sprintf("  left%s == right%s\n",
			strings.TrimPrefix(k.Left.String(), "$"), strings.TrimPrefix(k.Right.String(), "$")))
	}

	b.WriteString("\nFilter:\n")
	if p.Residual == nil {
		b.WriteString("  none\n")
	} else {
		b.WriteString("  " + conditionString(p.Residual) + "\n")
	}
	return b.String()
}

// formatCount formats an integer with comma separators for readability.
func formatCount(n int64) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	s := fmt.Sprintf("%d", n)
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
