package models

import "testing"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "keyword highlight markup",
			title: `<em class="keyword">明日</em>への扉`,
			want:  "明日への扉",
		},
		{
			name:  "html entities",
			title: "Tom &amp; Jerry",
			want:  "Tom & Jerry",
		},
		{
			name:  "markup and entities together",
			title: `<em class="keyword">A &amp; B</em> live`,
			want:  "A & B live",
		},
		{name: "plain text untouched", title: "ordinary title", want: "ordinary title"},
		{name: "empty", title: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestParseDurationText(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"03:25", 205000},
		{"00:04", 4000},
		{"01:02:03", 3723000},
		{"10:00:00", 36000000},
		{"garbage", 0},
		{"1:2:3:4", 0},
		{"", 0},
		{"-1:30", 0},
	}
	for _, tt := range tests {
		if got := ParseDurationText(tt.text); got != tt.want {
			t.Errorf("ParseDurationText(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSecondsToMS(t *testing.T) {
	if got := SecondsToMS(205); got != 205000 {
		t.Errorf("SecondsToMS(205) = %d, want 205000", got)
	}
	if got := SecondsToMS(0); got != 0 {
		t.Errorf("SecondsToMS(0) = %d, want 0", got)
	}
}

// The clock-text form of a duration must convert to the same millisecond
// value as its plain-seconds form, and formatting must round-trip.
func TestDurationRoundTrip(t *testing.T) {
	for _, ms := range []int64{0, 4000, 59000, 60000, 205000, 3599000, 3600000, 3723000, 36000000} {
		if got := ParseDurationText(FormatDuration(ms)); got != ms {
			t.Errorf("round trip %d ms: format=%q parse=%d", ms, FormatDuration(ms), got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{205000, "03:25"},
		{3723000, "01:02:03"},
		{0, "00:00"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
