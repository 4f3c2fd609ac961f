package core

// Step is an incremental-reveal point within a slide.
type Step struct {
	No       int    `json:"no"`
	Title    string `json:"title"`
	Shortcut string `json:"shortcut,omitempty"`
}

// StepCollector accumulates steps and numbers them densely from 1.
type StepCollector struct {
	steps []*Step
}

// NewStepCollector returns a collector continuing after existing.
func NewStepCollector(existing ...*Step) *StepCollector {
	c := &StepCollector{}
	c.steps = append(c.steps, existing...)
	return c
}

// Add appends a step and returns it.
func (c *StepCollector) Add(title string, shortcut ...string) *Step {
	s := &Step{No: len(c.steps) + 1, Title: title}
	if len(shortcut) > 0 {
		s.Shortcut = shortcut[0]
	}
	c.steps = append(c.steps, s)
	return s
}

// Steps returns the collected steps in presentation order.
func (c *StepCollector) Steps() []*Step {
	return c.steps
}

// Len returns the number of collected steps.
func (c *StepCollector) Len() int {
	return len(c.steps)
}
