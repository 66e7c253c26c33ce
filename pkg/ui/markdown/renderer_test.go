package markdown_test

import (
	"strings"
	"testing"

	"github.com/cbwinslow/lazylocker/pkg/ui/markdown"
)

func TestRenderLockerStatusIncludesFields(t *testing.T) {
	t.Parallel()

	r, err := markdown.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	out, err := r.RenderLockerStatus("/home/user/.lazylocker", 3, true, "7h59m")
	if err != nil {
		t.Fatalf("RenderLockerStatus: %v", err)
	}
	if !strings.Contains(out, "Secrets") {
		t.Error("expected rendered status to mention Secrets")
	}
}

func TestRenderLockerStatusAgentNotRunning(t *testing.T) {
	t.Parallel()

	r, err := markdown.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	out, err := r.RenderLockerStatus("/home/user/.lazylocker", 0, false, "")
	if err != nil {
		t.Fatalf("RenderLockerStatus: %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Error("expected rendered status to mention agent not running")
	}
}
