package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildEveryCategory(t *testing.T) {
	for _, cat := range Categories() {
		t.Run(string(cat), func(t *testing.T) {
			got, err := Build(cat, "the transcript body", "")
			if err != nil {
				t.Fatalf("Build(%q) error = %v", cat, err)
			}
			if !strings.Contains(got, "You are given a transcript from") {
				t.Errorf("Build(%q) missing template preamble", cat)
			}
			if !strings.Contains(got, "\n\nTranscript:\nthe transcript body") {
				t.Errorf("Build(%q) missing transcript block:\n%s", cat, got)
			}
			if !strings.HasSuffix(got, "\n\nSummary:") {
				t.Errorf("Build(%q) does not end with summary cue", cat)
			}
		})
	}
}

func TestBuildCategoriesDiffer(t *testing.T) {
	seen := map[string]Category{}
	for _, cat := range Categories() {
		got, err := Build(cat, "same transcript", "")
		if err != nil {
			t.Fatalf("Build(%q) error = %v", cat, err)
		}
		if prev, dup := seen[got]; dup {
			t.Errorf("categories %q and %q render identical prompts", prev, cat)
		}
		seen[got] = cat
	}
}

func TestBuildContextBlock(t *testing.T) {
	withCtx, err := Build(CategoryMeeting, "transcript", "quarterly planning sync")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(withCtx, "Context: quarterly planning sync") {
		t.Errorf("context block missing:\n%s", withCtx)
	}
	// Context must precede the transcript so the model reads guidance first.
	if strings.Index(withCtx, "Context:") > strings.Index(withCtx, "Transcript:") {
		t.Error("context block appears after transcript block")
	}

	without, err := Build(CategoryMeeting, "transcript", "")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(without, "Context:") {
		t.Errorf("empty context still produced a delimiter:\n%s", without)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := Build(CategoryPodcast, "one two three", "ctx")
	b, _ := Build(CategoryPodcast, "one two three", "ctx")
	if a != b {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildUnknownCategory(t *testing.T) {
	_, err := Build(Category("sermon"), "transcript", "")
	if err == nil {
		t.Fatal("Build() error = nil, want UnknownCategoryError")
	}
	var unknownErr *UnknownCategoryError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Build() error = %v, want *UnknownCategoryError", err)
	}
	if unknownErr.Category != "sermon" {
		t.Errorf("UnknownCategoryError.Category = %q, want %q", unknownErr.Category, "sermon")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"meeting", CategoryMeeting, false},
		{"voice-memo", CategoryVoiceMemo, false},
		{"conference-talk", CategoryConferenceTalk, false},
		{"Meeting", "", true},
		{"sermon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	want := map[Category]string{
		CategoryMeeting:        "Meeting Recording",
		CategorySong:           "Song",
		CategoryLecture:        "Lecture",
		CategoryPodcast:        "Podcast",
		CategoryInterview:      "Interview",
		CategoryAudiobook:      "Audiobook",
		CategoryVoiceMemo:      "Voice Memo",
		CategoryConferenceTalk: "Conference Talk",
	}
	for cat, label := range want {
		if got := cat.Label(); got != label {
			t.Errorf("Label(%q) = %q, want %q", cat, got, label)
		}
	}
}
