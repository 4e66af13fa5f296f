// Package prompt renders category-specific summarization instructions for a
// transcript. Rendering is pure string assembly: identical inputs always
// produce identical output, and nothing here talks to the network.
package prompt

import "strings"

// Build renders the full prompt sent to the language model. Optional context
// from the uploader is inserted verbatim under a labeled delimiter so the
// model can tell operator guidance apart from transcript content; no escaping
// or sanitization is attempted. When context is empty the delimiter is
// omitted entirely.
func Build(cat Category, transcript, context string) (string, error) {
	tmpl, err := templateFor(cat)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(tmpl)
	if context != "" {
		b.WriteString("\n\nContext: ")
		b.WriteString(context)
	}
	b.WriteString("\n\nTranscript:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nSummary:")
	return b.String(), nil
}

func templateFor(cat Category) (string, error) {
	switch cat {
	case CategoryMeeting:
		return meetingTemplate, nil
	case CategorySong:
		return songTemplate, nil
	case CategoryLecture:
		return lectureTemplate, nil
	case CategoryPodcast:
		return podcastTemplate, nil
	case CategoryInterview:
		return interviewTemplate, nil
	case CategoryAudiobook:
		return audiobookTemplate, nil
	case CategoryVoiceMemo:
		return voiceMemoTemplate, nil
	case CategoryConferenceTalk:
		return conferenceTalkTemplate, nil
	}
	return "", &UnknownCategoryError{Category: string(cat)}
}
