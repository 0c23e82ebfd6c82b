package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Study", "B1 · Grammar", 100)
	if !strings.Contains(h, "Lingua") {
		t.Error("header should carry the app name")
	}
	if !strings.Contains(h, "Study") || !strings.Contains(h, "B1 · Grammar") {
		t.Error("header should carry title and status")
	}
	if got := lipgloss.Height(h); got != 3 {
		t.Errorf("header height = %d, want 3", got)
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 80)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Select") {
		t.Error("footer should list key hints")
	}
}

func TestCardWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{80, 72},
		{200, MaxCardWidth},
		{10, 20},
	}
	for _, tt := range tests {
		if got := CardWidth(tt.in); got != tt.want {
			t.Errorf("CardWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) || IsTooSmall(80, 24) {
		t.Error("unexpected minimum size check")
	}
}
