package transcribe

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "strips segment timestamps",
			raw: "[00:00:00.000 --> 00:00:04.000]   Welcome back to the show.\n" +
				"[00:00:04.000 --> 00:00:07.520]   Today we talk about rivers.\n",
			want: "Welcome back to the show.\nToday we talk about rivers.",
		},
		{
			name: "comma millisecond separator",
			raw:  "[00:00:00,000 --> 00:00:02,480] Hello there.",
			want: "Hello there.",
		},
		{
			name: "drops blank lines",
			raw:  "\n\n[00:00:00.000 --> 00:00:01.000] one\n\n\n[00:00:01.000 --> 00:00:02.000] two\n\n",
			want: "one\ntwo",
		},
		{
			name: "plain text passes through",
			raw:  "  already clean text  ",
			want: "already clean text",
		},
		{
			name: "timestamp-only lines vanish",
			raw:  "[00:00:00.000 --> 00:00:01.000]\n[00:00:01.000 --> 00:00:02.000]   \n",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  " \n\t\n ",
			want: "",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "bracketed speech is not a timestamp",
			raw:  "[APPLAUSE] and then she said",
			want: "[APPLAUSE] and then she said",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}
