package models

// Signals is the set of facts extracted from one feed entry.
// Anything the extractor could not determine is left at its zero value.
type Signals struct {
	HasComments bool   `json:"has_comments" yaml:"has_comments"`
	HasLikes    bool   `json:"has_likes" yaml:"has_likes"`
	IsTextOnly  bool   `json:"is_text_only" yaml:"is_text_only"`
	HasImage    bool   `json:"has_image" yaml:"has_image"`
	IsGif       bool   `json:"is_gif" yaml:"is_gif"`
	HasVideo    bool   `json:"has_video" yaml:"has_video"`
	Text        string `json:"-" yaml:"-"`
}

// Entry is one activity of a feed page
type Entry struct {
	Index   int
	Kind    string // activity class suffix: text, message, anime-list, ...
	Signals Signals
}
