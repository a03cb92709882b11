// Package plan holds an ordered list of provisioning steps. Unlike a
// convergence plan there is no prioritization: provisioning is a fixed
// chain and the plan preserves insertion order exactly.
package plan

import (
	"encoding/json"
	"fmt"

	"selenite.systems/groundwork/internal/steps"
)

type Plan struct {
	steps []steps.Step
}

func NewPlan() *Plan {
	return &Plan{}
}

func (p *Plan) Add(s steps.Step) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("unable to add step to plan: %w", err)
	}
	p.steps = append(p.steps, s)
	return nil
}

func (p *Plan) Append(ss []steps.Step) error {
	for _, s := range ss {
		if err := p.Add(s); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plan) Empty() bool {
	return len(p.steps) == 0
}

func (p *Plan) Size() int {
	return len(p.steps)
}

func (p *Plan) Steps() []steps.Step {
	return p.steps
}

func (p *Plan) Validate() error {
	lastStage := 0
	for _, s := range p.steps {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.Todo.Stage() < lastStage {
			return fmt.Errorf("step %v out of stage order", s)
		}
		lastStage = s.Todo.Stage()
	}
	return nil
}

func (p *Plan) Pretty() string {
	if p.Empty() {
		return "Nothing to do"
	}
	result := "Plan: \n"
	for i, s := range p.steps {
		result += fmt.Sprintf("%v. %v\n", i+1, s.Pretty())
	}
	return result
}

func (p *Plan) PrettyLines() []string {
	if p.Empty() {
		return []string{""}
	}
	var result []string
	for i, s := range p.steps {
		result = append(result, fmt.Sprintf("%v. %v", i+1, s.Pretty()))
	}
	return result
}

func (p *Plan) ToJson() ([]byte, error) {
	return json.Marshal(p.steps)
}
