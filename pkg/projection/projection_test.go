package projection

import (
	"testing"

	"github.com/re-cinq/ghgcore/pkg/ghgtypes"
	"github.com/re-cinq/ghgcore/pkg/registry"
)

func TestGridEFExactAnchorYear(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	if got := GridEF(fs, 2030); got != 0.295 {
		t.Fatalf("GridEF(2030) = %v, want 0.295 (exact anchor)", got)
	}
}

func TestGridEFInterpolatesBetweenAnchors(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	got := GridEF(fs, 2027)
	if got >= 0.355 || got <= 0.295 {
		t.Fatalf("GridEF(2027) = %v, want strictly between the 2025 (0.355) and 2030 (0.295) anchors", got)
	}
}

func TestGridEFBelowDomainFallsBackTo2035Anchor(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	if got := GridEF(fs, 1990); got != 0.224 {
		t.Fatalf("GridEF(1990) = %v, want 0.224 (2035 anchor fallback)", got)
	}
}

func TestGridEFAboveDomainFallsBackTo2035Anchor(t *testing.T) {
	fs, err := registry.Load()
	if err != nil {
		t.Fatalf("registry.Load() error: %v", err)
	}
	if got := GridEF(fs, 2100); got != 0.224 {
		t.Fatalf("GridEF(2100) = %v, want 0.224 (2035 anchor fallback)", got)
	}
}

func TestGridEFEmptyTableUsesUltimateConstant(t *testing.T) {
	fs := &ghgtypes.FactorSet{}
	if got := GridEF(fs, 2030); got != 0.224 {
		t.Fatalf("GridEF(empty table) = %v, want 0.224", got)
	}
}
