package sink

import (
	"github.com/diskforge/diskforge/pkg/plan"
)

// RenderJSON emits the plan itself, for debugging geometry or feeding
// other tooling. The output round-trips through plan.Unmarshal.
func RenderJSON(p *plan.Plan) ([]byte, error) {
	return plan.Marshal(p)
}
