package disk

import (
	"math"
	"testing"

	"github.com/diskforge/diskforge/pkg/errors"
)

// workshopSpec matches the workshop-180 preset: 180mm disk, 40 slots,
// slots between 70mm and 85mm, 50mm pulley.
func workshopSpec() Spec {
	return Spec{
		DiameterMM:       180,
		CenterHoleMM:     8,
		SlotCount:        40,
		SlotWidthMM:      3,
		InnerRadiusMM:    70,
		OuterRadiusMM:    85,
		PulleyDiameterMM: 50,
		Material:         "2mm stainless steel",
		ThicknessMM:      2,
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestComputeSlots(t *testing.T) {
	spec := workshopSpec()
	slots, err := ComputeSlots(spec)
	if err != nil {
		t.Fatalf("ComputeSlots error: %v", err)
	}

	if len(slots) != spec.SlotCount {
		t.Fatalf("len(slots) = %d, want %d", len(slots), spec.SlotCount)
	}

	// Spans must partition [0°, 360°) with no gap or overlap.
	var sum float64
	for i, s := range slots {
		if s.Index != i {
			t.Errorf("slot %d: Index = %d", i, s.Index)
		}
		if i > 0 && slots[i-1].EndDeg != s.StartDeg {
			t.Errorf("gap or overlap between slot %d and %d: %v != %v",
				i-1, i, slots[i-1].EndDeg, s.StartDeg)
		}
		if s.EndDeg <= s.StartDeg {
			t.Errorf("slot %d: non-increasing span [%v, %v)", i, s.StartDeg, s.EndDeg)
		}
		sum += s.WidthDeg()
	}
	if relErr := math.Abs(sum-360) / 360; relErr > 1e-9 {
		t.Errorf("widths sum to %v, want 360 within 1e-9 relative error", sum)
	}
	if slots[0].StartDeg != 0 {
		t.Errorf("first slot starts at %v, want 0", slots[0].StartDeg)
	}
	if !almostEqual(slots[len(slots)-1].EndDeg, 360, 1e-9) {
		t.Errorf("last slot ends at %v, want 360", slots[len(slots)-1].EndDeg)
	}
}

func TestComputeSlotsParity(t *testing.T) {
	for _, count := range []int{2, 4, 20, 40, 128} {
		spec := workshopSpec()
		spec.SlotCount = count

		slots, err := ComputeSlots(spec)
		if err != nil {
			t.Fatalf("count %d: %v", count, err)
		}

		opaque := 0
		for _, s := range slots {
			if s.Opaque {
				opaque++
				if s.Index%2 != 0 {
					t.Errorf("count %d: odd-indexed slot %d is opaque", count, s.Index)
				}
			} else if s.Index%2 == 0 {
				t.Errorf("count %d: even-indexed slot %d is transparent", count, s.Index)
			}
		}
		if opaque != count/2 {
			t.Errorf("count %d: %d opaque slots, want %d", count, opaque, count/2)
		}
	}
}

func TestComputeSlotsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"OddCount", func(s *Spec) { s.SlotCount = 21 }},
		{"ZeroCount", func(s *Spec) { s.SlotCount = 0 }},
		{"NegativeCount", func(s *Spec) { s.SlotCount = -4 }},
		{"InvertedRadii", func(s *Spec) { s.InnerRadiusMM, s.OuterRadiusMM = 85, 70 }},
		{"ZeroInnerRadius", func(s *Spec) { s.InnerRadiusMM = 0 }},
		{"NegativeOuterRadius", func(s *Spec) { s.OuterRadiusMM = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := workshopSpec()
			tt.mutate(&spec)
			if _, err := ComputeSlots(spec); !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("ComputeSlots = %v, want INVALID_SPEC", err)
			}
		})
	}
}

func TestComputeSlotsIdempotent(t *testing.T) {
	spec := workshopSpec()
	first, err := ComputeSlots(spec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ComputeSlots(spec)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between identical calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestComputeResolution(t *testing.T) {
	tests := []struct {
		name      string
		slots     int
		pulley    float64
		wantPerMM float64
	}{
		{"Workshop40", 40, 50, 3.9270},
		{"Compact20", 20, 50, 7.854},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := workshopSpec()
			spec.SlotCount = tt.slots
			spec.PulleyDiameterMM = tt.pulley

			res, err := ComputeResolution(spec)
			if err != nil {
				t.Fatalf("ComputeResolution error: %v", err)
			}
			if !almostEqual(res.MMPerSlot, tt.wantPerMM, 1e-3) {
				t.Errorf("MMPerSlot = %v, want ≈%v", res.MMPerSlot, tt.wantPerMM)
			}
			wantCirc := math.Pi * tt.pulley
			if !almostEqual(res.PulleyCircumferenceMM, wantCirc, 1e-9) {
				t.Errorf("PulleyCircumferenceMM = %v, want %v", res.PulleyCircumferenceMM, wantCirc)
			}
		})
	}
}

func TestComputeResolutionInvalid(t *testing.T) {
	spec := workshopSpec()
	spec.SlotCount = 0
	if _, err := ComputeResolution(spec); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("zero slot count: got %v, want INVALID_SPEC", err)
	}

	spec = workshopSpec()
	spec.PulleyDiameterMM = 0
	if _, err := ComputeResolution(spec); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("zero pulley: got %v, want INVALID_SPEC", err)
	}
}

func TestArcLengthMM(t *testing.T) {
	spec := workshopSpec()

	// 40 slots at the 77.5mm sensor radius: 2π·77.5/40 ≈ 12.17mm.
	got, err := ArcLengthMM(spec, 77.5)
	if err != nil {
		t.Fatalf("ArcLengthMM error: %v", err)
	}
	if !almostEqual(got, 12.17, 0.01) {
		t.Errorf("ArcLengthMM(77.5) = %v, want ≈12.17", got)
	}

	if _, err := ArcLengthMM(spec, 0); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("zero radius: got %v, want INVALID_SPEC", err)
	}
}

func TestAngularWidthDeg(t *testing.T) {
	spec := workshopSpec()

	// 3mm slot width at 77.5mm radius: 3·360/(2π·77.5) ≈ 2.218°.
	got, err := AngularWidthDeg(spec, 77.5)
	if err != nil {
		t.Fatalf("AngularWidthDeg error: %v", err)
	}
	if !almostEqual(got, 2.218, 1e-3) {
		t.Errorf("AngularWidthDeg(77.5) = %v, want ≈2.218", got)
	}
}

func TestSensorRadius(t *testing.T) {
	spec := workshopSpec()
	if got := spec.SensorRadiusMM(); got != 77.5 {
		t.Errorf("SensorRadiusMM = %v, want 77.5", got)
	}
	if got := spec.SlotLengthMM(); got != 15 {
		t.Errorf("SlotLengthMM = %v, want 15", got)
	}
}
