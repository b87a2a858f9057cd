package fixture

import (
	"fmt"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/effect"
)

type Group struct {
	Fixtures map[string]*Fixture
}

// Create a new FixtureGroup object with reasonable defaults for real usage.
func NewGroup() *Group {
	return &Group{
		Fixtures: make(map[string]*Fixture),
	}
}

// NewGroupFromPatch builds a fixture for every patch entry, keyed by name, and binds each fixture's effect slots.
func NewGroupFromPatch(patch []config.PatchedLayer, effects []config.EffectSlot) (*Group, error) {
	oscillators := make(map[uint32]effect.Oscillator, len(effects))
	for _, e := range effects {
		shape, err := effect.ParseShape(e.Shape)
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", e.ID, err)
		}
		oscillators[e.ID] = effect.NewOscillator(shape, e.Beats)
	}

	fg := NewGroup()
	for _, p := range patch {
		if fg.HasFixture(p.Name) {
			return nil, fmt.Errorf("fixture %s is patched twice", p.Name)
		}
		fix, err := NewFixture(p)
		if err != nil {
			return nil, err
		}
		for _, id := range p.Effects {
			osc, ok := oscillators[id]
			if !ok {
				return nil, fmt.Errorf("fixture %s uses unknown effect %d", p.Name, id)
			}
			fix.BindEffect(id, osc)
		}
		fg.AddFixture(p.Name, fix)
	}
	return fg, nil
}

func (fg *Group) GetFixture(id string) (*Fixture, error) {
	if fixture, found := fg.Fixtures[id]; found {
		return fixture, nil
	} else {
		return nil, fmt.Errorf("the fixture group does not contain a fixture with the id: %s", id)
	}
}

func (fg *Group) AddFixture(id string, fixture *Fixture) {
	fg.Fixtures[id] = fixture
}

func (fg *Group) HasFixture(id string) bool {
	_, ok := fg.Fixtures[id]
	return ok
}

// Merge returns a new group holding fg's fixtures and then others', later groups replacing earlier names.
func (fg *Group) Merge(others ...*Group) *Group {
	out := NewGroup()
	for id, f := range fg.Fixtures {
		out.AddFixture(id, f)
	}
	for _, o := range others {
		for id, f := range o.Fixtures {
			out.AddFixture(id, f)
		}
	}
	return out
}

// HasFixtures returns true if there are fixtures in the group
func (fg *Group) HasFixtures() bool {
	return len(fg.Fixtures) > 0
}

// Count returns the number of fixtures in the group
func (fg *Group) Count() int {
	return len(fg.Fixtures)
}
