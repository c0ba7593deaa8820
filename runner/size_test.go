package runner

import "testing"

func TestSizeSet(t *testing.T) {
	tests := []struct {
		input string
		want  Size
	}{
		{"100", 100},
		{"1k", 1 << 10},
		{"2K", 2 << 10},
		{"64kb", 64 << 10},
		{"256m", 256 << 20},
		{"1g", 1 << 30},
		{"512B", 512},
	}
	for _, tt := range tests {
		var s Size
		if err := s.Set(tt.input); err != nil {
			t.Errorf("Set(%q) error: %v", tt.input, err)
			continue
		}
		if s != tt.want {
			t.Errorf("Set(%q) = %d, want %d", tt.input, s, tt.want)
		}
	}
}

func TestSizeSetInvalid(t *testing.T) {
	var s Size
	if err := s.Set(""); err == nil {
		t.Error("Set accepted an empty string")
	}
	if err := s.Set("abc"); err == nil {
		t.Error("Set accepted a non numeric value")
	}
}

func TestSizeString(t *testing.T) {
	tests := []struct {
		s    Size
		want string
	}{
		{100, "100 B"},
		{1 << 10, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{1 << 30, "1.0 GiB"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", uint64(tt.s), got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusInvalid, "Invalid"},
		{StatusExited, "Exited"},
		{StatusSignalled, "Signalled"},
		{StatusDumped, "Dumped"},
		{StatusRunnerError, "Runner Error"},
		{Status(99), "Invalid"},
		{Status(-1), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
