package components

import (
	"testing"

	"github.com/jfmoncada/plata/internal/tui/theme"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"good", string(theme.Active.Green)},
		{"warning", string(theme.Active.Orange)},
		{"exceeded", string(theme.Active.Red)},
	}
	for _, tt := range tests {
		if got := string(StatusColor(tt.status)); got != tt.want {
			t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestAlertColor(t *testing.T) {
	tests := []struct {
		alertType string
		want      string
	}{
		{"warning", string(theme.Active.Orange)},
		{"exceeded", string(theme.Active.Red)},
		{"soat_expiry", string(theme.Active.Blue)},
	}
	for _, tt := range tests {
		if got := string(AlertColor(tt.alertType)); got != tt.want {
			t.Errorf("AlertColor(%q) = %q, want %q", tt.alertType, got, tt.want)
		}
	}

	// An expiry deadline must never read as a healthy status.
	if got := AlertColor("soat_expiry"); got == theme.Active.Green {
		t.Fatal("soat_expiry colored green")
	}
}
