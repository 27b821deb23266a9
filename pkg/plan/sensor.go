package plan

import (
	"fmt"

	"github.com/diskforge/diskforge/pkg/disk"
)

// Sensor positions, degrees from the 0° reference. The quadrature sensor
// sits a quarter turn from the primary so the two signals are 90° out of
// phase for direction detection.
const (
	primarySensorDeg    = 0
	quadratureSensorDeg = 90
)

// buildSensor produces the sensor placement diagram: disk outline, the
// sensor reading radius, and body markers for the primary and quadrature
// sensors.
func buildSensor(spec disk.Spec, opts Options) (*Plan, error) {
	arc, err := disk.ArcLengthMM(spec, spec.SensorRadiusMM())
	if err != nil {
		return nil, err
	}

	notes := []string{
		"SENSOR PLACEMENT:",
		fmt.Sprintf("Both sensors read at %.1fmm radius (center of slot band)", spec.SensorRadiusMM()),
		"Quadrature sensor exactly 90° from primary for direction detection",
		"Maintain 1-2mm gap between sensor face and disk surface",
		fmt.Sprintf("Segment spacing at reading radius: %.2fmm", arc),
	}

	f := newFrame(spec.DiameterMM/2, opts.Scale, len(notes))
	p := &Plan{
		Kind:        KindSensor,
		Spec:        spec,
		Scale:       opts.Scale,
		FrameWidth:  f.width,
		FrameHeight: f.height,
		Title:       fmt.Sprintf("%.0fmm ENCODER DISK - SENSOR PLACEMENT", spec.DiameterMM),
		Notes:       notes,
	}

	s := opts.Scale
	p.Circles = append(p.Circles,
		Circle{CX: f.cx, CY: f.cy, R: spec.DiameterMM / 2 * s, Class: ClassOutline},
		Circle{CX: f.cx, CY: f.cy, R: spec.CenterHoleMM / 2 * s, Class: ClassHole},
		Circle{CX: f.cx, CY: f.cy, R: spec.SensorRadiusMM() * s, Class: ClassGuide, Dashed: true},
	)

	// Sensor bodies: small rectangles straddling the reading radius.
	bodyW, bodyH := 6*s, 3*s
	if bodyW > f.r/3 {
		bodyW, bodyH = f.r/3, f.r/6
	}

	px, py := f.polar(primarySensorDeg, spec.SensorRadiusMM()*s)
	qx, qy := f.polar(quadratureSensorDeg, spec.SensorRadiusMM()*s)
	p.Rects = append(p.Rects,
		Rect{X: px - bodyW/2, Y: py - bodyH/2, W: bodyW, H: bodyH, Class: ClassSensor},
		Rect{X: qx - bodyH/2, Y: qy - bodyW/2, W: bodyH, H: bodyW, Class: ClassSensor},
	)
	p.Labels = append(p.Labels,
		Label{X: px + bodyW/2 + 2, Y: py, Text: "Primary sensor (0°)", Size: 3, Class: ClassSensor, Anchor: "start"},
		Label{X: qx, Y: qy - bodyW/2 - 3, Text: "Quadrature sensor (90°)", Size: 3, Class: ClassSensor},
	)

	return p, nil
}
