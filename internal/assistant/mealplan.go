package assistant

import (
	"context"
	"encoding/json"
	"sync"
)

// PlanCapture collects the payload save_meal_plan produces during a
// generation run. The meal plan service pre-creates the row, carries a
// capture through the tool loop, and persists whatever was captured,
// so the tool never races the service on the same row.
type PlanCapture struct {
	mu    sync.Mutex
	title string
	plan  json.RawMessage
	saved bool
}

func (c *PlanCapture) set(title string, plan json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = title
	c.plan = plan
	c.saved = true
}

// Plan returns the captured payload. ok is false when save_meal_plan was
// never called.
func (c *PlanCapture) Plan() (title string, plan json.RawMessage, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title, c.plan, c.saved
}

type planCaptureKey struct{}

// WithPlanCapture attaches a capture to the context for the duration of
// a tool loop.
func WithPlanCapture(ctx context.Context, capture *PlanCapture) context.Context {
	return context.WithValue(ctx, planCaptureKey{}, capture)
}

func planCaptureFrom(ctx context.Context) *PlanCapture {
	capture, _ := ctx.Value(planCaptureKey{}).(*PlanCapture)
	return capture
}
