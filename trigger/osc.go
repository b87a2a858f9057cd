package trigger

import (
	"fmt"
	"strings"
)

// ArgOp is the comparison an ArgConstraint applies to one OSC argument.
type ArgOp int

const (
	ArgAny ArgOp = iota
	ArgEqual
	ArgAtLeast
	ArgAtMost
	ArgText
)

var argOpNames = map[ArgOp]string{
	ArgAny:     "any",
	ArgEqual:   "eq",
	ArgAtLeast: "gte",
	ArgAtMost:  "lte",
	ArgText:    "text",
}

func (op ArgOp) String() string {
	if name, ok := argOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// ParseArgOp is the inverse of ArgOp.String.
func ParseArgOp(name string) (ArgOp, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for op, n := range argOpNames {
		if n == name {
			return op, nil
		}
	}
	return ArgAny, fmt.Errorf("unknown osc argument op %q", name)
}

// ArgConstraint constrains the argument at Index. ArgAny only requires the argument to exist.
type ArgConstraint struct {
	Index  int
	Op     ArgOp
	Number float64
	Text   string
}

func (c ArgConstraint) matches(args []interface{}) bool {
	if c.Index < 0 || c.Index >= len(args) {
		return false
	}
	arg := args[c.Index]
	switch c.Op {
	case ArgAny:
		return true
	case ArgText:
		s, ok := arg.(string)
		return ok && s == c.Text
	}
	v, ok := numeric(arg)
	if !ok {
		return false
	}
	switch c.Op {
	case ArgEqual:
		return v == c.Number
	case ArgAtLeast:
		return v >= c.Number
	case ArgAtMost:
		return v <= c.Number
	}
	return false
}

func numeric(arg interface{}) (float64, bool) {
	switch v := arg.(type) {
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// OSCEvent is a parsed OSC message.
type OSCEvent struct {
	Address string
	Args    []interface{}
}

func (e OSCEvent) String() string {
	return fmt.Sprintf("%s %v", e.Address, e.Args)
}

// OSCTrigger matches an exact address or an OSC address pattern, plus optional argument constraints which must all
// hold.
type OSCTrigger struct {
	Address string
	Args    []ArgConstraint
}

func (t *OSCTrigger) Matches(ev OSCEvent) bool {
	if !MatchAddress(t.Address, ev.Address) {
		return false
	}
	for _, c := range t.Args {
		if !c.matches(ev.Args) {
			return false
		}
	}
	return true
}

func (t *OSCTrigger) Validate() error {
	if !strings.HasPrefix(t.Address, "/") {
		return fmt.Errorf("osc address %q must start with '/'", t.Address)
	}
	if _, err := compilePattern(t.Address); err != nil {
		return err
	}
	for _, c := range t.Args {
		if c.Index < 0 {
			return fmt.Errorf("osc argument index %d is negative", c.Index)
		}
		if _, ok := argOpNames[c.Op]; !ok {
			return fmt.Errorf("unknown osc argument op %d", int(c.Op))
		}
	}
	return nil
}

func (t OSCTrigger) Equal(o OSCTrigger) bool {
	if t.Address != o.Address || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if t.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

func (t OSCTrigger) String() string {
	if len(t.Args) == 0 {
		return "osc " + t.Address
	}
	return fmt.Sprintf("osc %s %v", t.Address, t.Args)
}
