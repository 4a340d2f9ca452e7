package dash2pdf

// Notes:
// - ParseArgs/Validate run before any browser work; every rejection must
//   wrap ErrInvalidParams so the CLI exits 1 without launching Chrome.
// - URL reachability is not checked here; only shape.

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseArgs - Positional argument contract
// ---------------------------------------------------------------------------

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    Params
		wantErr error
	}{
		{
			name: "four arguments with Null tab",
			args: []string{fakeDashboard, "q4report", "Null", fakeOrigin},
			want: Params{TargetURL: fakeDashboard, OutputName: "q4report", Tab: NoTab, Origin: fakeOrigin},
		},
		{
			name: "surrounding whitespace trimmed",
			args: []string{" " + fakeDashboard + " ", " q4 ", " TABS-1 ", fakeOrigin + "\n"},
			want: Params{TargetURL: fakeDashboard, OutputName: "q4", Tab: "TABS-1", Origin: fakeOrigin},
		},
		{"no arguments", nil, Params{}, ErrInvalidParams},
		{"three arguments", []string{fakeDashboard, "q4", "Null"}, Params{}, ErrInvalidParams},
		{"five arguments", []string{fakeDashboard, "q4", "Null", fakeOrigin, "x"}, Params{}, ErrInvalidParams},
		{"empty url", []string{"", "q4", "Null", fakeOrigin}, Params{}, ErrEmptyURL},
		{"blank origin", []string{fakeDashboard, "q4", "Null", "   "}, Params{}, ErrEmptyURL},
		{"relative url", []string{"/superset/dashboard/7/", "q4", "Null", fakeOrigin}, Params{}, ErrInvalidParams},
		{"ftp origin", []string{fakeDashboard, "q4", "Null", "ftp://bi.example.com"}, Params{}, ErrInvalidParams},
		{"name with slash", []string{fakeDashboard, "../q4", "Null", fakeOrigin}, Params{}, ErrInvalidName},
		{"name with backslash", []string{fakeDashboard, `a\b`, "Null", fakeOrigin}, Params{}, ErrInvalidName},
		{"dot-dot name", []string{fakeDashboard, "..", "Null", fakeOrigin}, Params{}, ErrInvalidName},
		{"empty name", []string{fakeDashboard, "", "Null", fakeOrigin}, Params{}, ErrInvalidName},
		{"empty tab", []string{fakeDashboard, "q4", "", fakeOrigin}, Params{}, ErrEmptyTab},
		{"blank tab", []string{fakeDashboard, "q4", "   ", fakeOrigin}, Params{}, ErrEmptyTab},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseArgs(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseArgs() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidParams) {
					t.Errorf("error %v does not wrap ErrInvalidParams", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseArgs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParams_Helpers - Tab sentinel and login URL
// ---------------------------------------------------------------------------

func TestParams_WantsTab(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tab  string
		want bool
	}{
		{NoTab, false},
		{"", true}, // rejected by Validate, never a silent opt-out
		{"TABS-1", true},
		{"null", true}, // the sentinel is case-sensitive
	}
	for _, tt := range tests {
		if got := (Params{Tab: tt.tab}).WantsTab(); got != tt.want {
			t.Errorf("WantsTab(%q) = %v, want %v", tt.tab, got, tt.want)
		}
	}
}

func TestParams_LoginURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://bi.example.com", "https://bi.example.com/login/"},
		{"https://bi.example.com/", "https://bi.example.com/login/"},
		{"http://localhost:8088//", "http://localhost:8088/login/"},
	}
	for _, tt := range tests {
		if got := (Params{Origin: tt.origin}).LoginURL(); got != tt.want {
			t.Errorf("LoginURL(%q) = %q, want %q", tt.origin, got, tt.want)
		}
	}
}
