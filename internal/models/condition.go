package models

// Condition names one removal rule of the closed condition set
type Condition string

const (
	ConditionUncommented     Condition = "uncommented"
	ConditionUnliked         Condition = "unliked"
	ConditionText            Condition = "text"
	ConditionImages          Condition = "images"
	ConditionGifs            Condition = "gifs"
	ConditionVideos          Condition = "videos"
	ConditionContainsStrings Condition = "containsStrings"
)

var allConditions = []Condition{
	ConditionUncommented,
	ConditionUnliked,
	ConditionText,
	ConditionImages,
	ConditionGifs,
	ConditionVideos,
	ConditionContainsStrings,
}

// AllConditions returns every condition in evaluation order
func AllConditions() []Condition {
	out := make([]Condition, len(allConditions))
	copy(out, allConditions)
	return out
}

// ParseCondition looks up a condition by its exact name
func ParseCondition(s string) (Condition, bool) {
	for _, c := range allConditions {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Condition) String() string {
	return string(c)
}
