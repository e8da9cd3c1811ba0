package models

// Config represents the main configuration
type Config struct {
	Remove  RemoveConfig  `mapstructure:"remove"`
	Options OptionsConfig `mapstructure:"options"`
	RunOn   RunOnConfig   `mapstructure:"run_on"`
}

// RemoveConfig holds the per-condition removal switches
type RemoveConfig struct {
	Uncommented     bool       `mapstructure:"uncommented"`
	Unliked         bool       `mapstructure:"unliked"`
	Text            bool       `mapstructure:"text"`
	Images          bool       `mapstructure:"images"`
	Gifs            bool       `mapstructure:"gifs"`
	Videos          bool       `mapstructure:"videos"`
	ContainsStrings TermGroups `mapstructure:"contains_strings"`
}

// OptionsConfig contains matching and pagination options
type OptionsConfig struct {
	TargetLoadCount   int          `mapstructure:"target_load_count"`
	CaseSensitive     bool         `mapstructure:"case_sensitive"`
	ReverseConditions bool         `mapstructure:"reverse_conditions"`
	LinkedConditions  LinkedGroups `mapstructure:"linked_conditions"`
}

// RunOnConfig selects the feed pages the filter runs on
type RunOnConfig struct {
	Home      bool `mapstructure:"home"`
	Social    bool `mapstructure:"social"`
	Profile   bool `mapstructure:"profile"`
	GuestHome bool `mapstructure:"guest_home"`
}

// Enabled reports whether condition c is switched on as an independent check.
// containsStrings counts as enabled only when its rule carries at least one term.
func (r *RemoveConfig) Enabled(c Condition) bool {
	switch c {
	case ConditionUncommented:
		return r.Uncommented
	case ConditionUnliked:
		return r.Unliked
	case ConditionText:
		return r.Text
	case ConditionImages:
		return r.Images
	case ConditionGifs:
		return r.Gifs
	case ConditionVideos:
		return r.Videos
	case ConditionContainsStrings:
		return !r.ContainsStrings.IsEmpty()
	}
	return false
}
