package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/diskforge/diskforge/pkg/disk"
	"github.com/diskforge/diskforge/pkg/plan"
	"github.com/diskforge/diskforge/pkg/render/styles"
)

func templatePlan(t *testing.T) *plan.Plan {
	t.Helper()
	spec := disk.Spec{
		DiameterMM:       180,
		CenterHoleMM:     10,
		SlotCount:        40,
		SlotWidthMM:      3,
		InnerRadiusMM:    70,
		OuterRadiusMM:    85,
		PulleyDiameterMM: 50,
		Material:         "2mm stainless steel",
	}
	p, err := plan.Build(plan.KindTemplate, spec, plan.DefaultOptions())
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	return p
}

func TestRenderSVGStructure(t *testing.T) {
	p := templatePlan(t)
	out := string(RenderSVG(p))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg header: %.80s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("missing closing tag")
	}
	if got, want := strings.Count(out, "<path "), len(p.Wedges); got != want {
		t.Errorf("wedge paths = %d, want %d", got, want)
	}
	if got, want := strings.Count(out, "<circle "), len(p.Circles); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
	if !strings.Contains(out, p.Title) {
		t.Errorf("title %q not rendered", p.Title)
	}
	for _, note := range p.Notes {
		if !strings.Contains(out, escape(note)) {
			t.Errorf("note %q not rendered", note)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	p := templatePlan(t)
	a := RenderSVG(p)
	b := RenderSVG(p)
	if !bytes.Equal(a, b) {
		t.Errorf("output differs between runs")
	}
}

func TestRenderSVGStyles(t *testing.T) {
	p := templatePlan(t)

	printOut := string(RenderSVG(p, WithStyle(styles.Print{})))
	blueOut := string(RenderSVG(p, WithStyle(styles.Blueprint{})))

	if printOut == blueOut {
		t.Fatalf("styles produced identical output")
	}
	for _, out := range []string{printOut, blueOut} {
		if !strings.Contains(out, "<style>") {
			t.Errorf("style defs missing")
		}
		if !strings.Contains(out, ".outline") {
			t.Errorf("outline class rule missing")
		}
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	p := templatePlan(t)
	data, err := RenderJSON(p)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	back, err := plan.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != p.Kind || len(back.Wedges) != len(p.Wedges) {
		t.Errorf("round trip lost data: kind=%s wedges=%d", back.Kind, len(back.Wedges))
	}
}

func TestEscape(t *testing.T) {
	got := escape(`<2mm & "steel">`)
	want := `&lt;2mm &amp; "steel"&gt;`
	if got != want {
		t.Errorf("escape = %q, want %q", got, want)
	}
}
