package prompt

import "fmt"

// Category identifies the kind of audio being summarized. The set is closed:
// template selection switches exhaustively over these eight values, and any
// identifier outside the set is rejected before transcription starts.
type Category string

const (
	CategoryMeeting        Category = "meeting"
	CategorySong           Category = "song"
	CategoryLecture        Category = "lecture"
	CategoryPodcast        Category = "podcast"
	CategoryInterview      Category = "interview"
	CategoryAudiobook      Category = "audiobook"
	CategoryVoiceMemo      Category = "voice-memo"
	CategoryConferenceTalk Category = "conference-talk"
)

// Categories lists every supported category in display order.
func Categories() []Category {
	return []Category{
		CategoryMeeting,
		CategorySong,
		CategoryLecture,
		CategoryPodcast,
		CategoryInterview,
		CategoryAudiobook,
		CategoryVoiceMemo,
		CategoryConferenceTalk,
	}
}

// UnknownCategoryError reports a category identifier outside the supported set.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown audio category %q", e.Category)
}

// Parse validates a raw category identifier from a request.
func Parse(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryMeeting, CategorySong, CategoryLecture, CategoryPodcast,
		CategoryInterview, CategoryAudiobook, CategoryVoiceMemo, CategoryConferenceTalk:
		return c, nil
	}
	return "", &UnknownCategoryError{Category: s}
}

// Label returns the human-readable name shown in the UI.
func (c Category) Label() string {
	switch c {
	case CategoryMeeting:
		return "Meeting Recording"
	case CategorySong:
		return "Song"
	case CategoryLecture:
		return "Lecture"
	case CategoryPodcast:
		return "Podcast"
	case CategoryInterview:
		return "Interview"
	case CategoryAudiobook:
		return "Audiobook"
	case CategoryVoiceMemo:
		return "Voice Memo"
	case CategoryConferenceTalk:
		return "Conference Talk"
	}
	return string(c)
}
