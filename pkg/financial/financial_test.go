package financial

import (
	"math"
	"testing"
)

func TestNPVZeroRate(t *testing.T) {
	flows := []float64{-100, 50, 50, 50}
	if got := NPV(flows, 0); got != 50 {
		t.Fatalf("NPV at 0%% = %v, want 50", got)
	}
}

func TestIRRKnownSolution(t *testing.T) {
	// -100, 110 has IRR exactly 10%.
	flows := []float64{-100, 110}
	irr := IRR(flows)
	if irr == nil {
		t.Fatal("IRR returned nil, want 0.10")
	}
	if math.Abs(*irr-0.10) > 1e-6 {
		t.Fatalf("IRR = %v, want 0.10", *irr)
	}
}

func TestIRRAllPositiveFlowsDoesNotConverge(t *testing.T) {
	// No sign change: NPV(r) never crosses zero for r near 0.10, and the
	// derivative search should bail out rather than fabricate a rate.
	flows := []float64{100, 100, 100}
	if irr := IRR(flows); irr != nil {
		t.Fatalf("IRR(all-positive flows) = %v, want nil", *irr)
	}
}

func TestPaybackZeroSavings(t *testing.T) {
	if got := Payback(1000, 0); !math.IsInf(got, 1) {
		t.Fatalf("Payback(savings=0) = %v, want +Inf", got)
	}
	if got := Payback(1000, -5); !math.IsInf(got, 1) {
		t.Fatalf("Payback(negative savings) = %v, want +Inf", got)
	}
}

func TestPaybackZeroCapexPositiveSavings(t *testing.T) {
	if got := Payback(0, 500); got != 0 {
		t.Fatalf("Payback(capex=0, savings>0) = %v, want 0", got)
	}
}

func TestBuildCashFlowsShape(t *testing.T) {
	flows := BuildCashFlows(1000, 200, 5)
	if len(flows) != 6 {
		t.Fatalf("len(flows) = %d, want 6", len(flows))
	}
	if flows[0] != -1000 {
		t.Fatalf("flows[0] = %v, want -1000", flows[0])
	}
	for i := 1; i < len(flows); i++ {
		if flows[i] != 200 {
			t.Fatalf("flows[%d] = %v, want 200", i, flows[i])
		}
	}
}

func TestCumulativeCO2AvoidedNoDecay(t *testing.T) {
	got := CumulativeCO2Avoided(10, 0, 5)
	if got != 50 {
		t.Fatalf("CumulativeCO2Avoided(no decay) = %v, want 50", got)
	}
}
