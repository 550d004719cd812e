package constants

const (
	// Scoring constants. Scores live on a 1-10 scale; a missing score counts
	// as the midpoint. Each completed activity adds a flat bonus and the sum
	// is capped at MaxPercentage.
	MinScore          = 1
	MaxScore          = 10
	DefaultScore      = 5
	ActivityBonus     = 5
	MaxPercentage     = 100
	DaysInWeek        = 7
	ScoreToPercentage = 10

	// Progress classification thresholds (inclusive lower bounds)
	ExcellentThreshold = 80
	GoodThreshold      = 60
	FairThreshold      = 40

	LabelExcellent      = "Excellent Progress"
	LabelGood           = "Good Progress"
	LabelFair           = "Fair Progress"
	LabelNeedsAttention = "Needs Attention"

	// Goal defaults used by the goal form and CLI
	DefaultGoalTarget   = 1
	DefaultGoalUnit     = "times"
	DefaultGoalSpanDays = 7

	DefaultConversationTitle = "New Conversation"
	DefaultMoodListLimit     = 30
	DefaultInsightsEntries   = 14
)
