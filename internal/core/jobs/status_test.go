package jobs

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"open", StatusOpen, false},
		{"in-progress", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"cancelled", StatusCancelled, false},
		{"OPEN", "", true},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseApplicantStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    ApplicantStatus
		wantErr bool
	}{
		{"pending", ApplicantPending, false},
		{"accepted", ApplicantAccepted, false},
		{"rejected", ApplicantRejected, false},
		{"approved", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseApplicantStatus(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseApplicantStatus(%q): expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseApplicantStatus(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseApplicantStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusOpen, StatusCompleted, false},
		{StatusInProgress, StatusOpen, false},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusOpen, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusOpen, false},
	}

	for _, tt := range tests {
		if got := IsTransitionAllowed(tt.from, tt.to); got != tt.want {
			t.Errorf("IsTransitionAllowed(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusOpen, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if got := IsTerminal(tt.status); got != tt.want {
			t.Errorf("IsTerminal(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
