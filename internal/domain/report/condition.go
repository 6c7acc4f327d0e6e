package report

// Condition is the self-reported mood attached to a daily report.
// ConditionBad is the distress ("SOS") value managers follow up on.
type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionNormal    Condition = "normal"
	ConditionTired     Condition = "tired"
	ConditionBad       Condition = "bad"
)

func (c Condition) IsValid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionNormal, ConditionTired, ConditionBad:
		return true
	}
	return false
}

// IsDistress reports whether the condition signals the author needs follow-up.
func (c Condition) IsDistress() bool {
	return c == ConditionBad
}

func (c Condition) String() string {
	return string(c)
}

// Conditions lists the valid values in display order.
func Conditions() []Condition {
	return []Condition{
		ConditionExcellent,
		ConditionGood,
		ConditionNormal,
		ConditionTired,
		ConditionBad,
	}
}
