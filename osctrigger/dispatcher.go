// Package osctrigger feeds OSC packets into the cue engine. Messages under the control prefix drive playback
// directly; everything else is offered to the cue triggers.
package osctrigger

import (
	"fmt"
	"strings"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/sirupsen/logrus"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/logger"
)

// Control addresses.
const (
	AddressGo    = "/lumen/go"
	AddressBack  = "/lumen/back"
	AddressGoto  = "/lumen/goto"
	AddressLearn = "/lumen/learn"
)

// Handler is the part of the cue master the dispatcher drives.
type Handler interface {
	Next() error
	Previous() error
	GotoCue(id uint32, override *time.Duration) error
	Learn(cueID uint32) error
	HandleOSC(msg *osc.Message) (cuelist.Dispatch, error)
}

// Dispatcher implements osc.Dispatcher on top of a Handler.
type Dispatcher struct {
	handler Handler
}

func NewDispatcher(h Handler) *Dispatcher {
	return &Dispatcher{handler: h}
}

// NewServer returns an OSC server listening on addr that dispatches to h.
func NewServer(addr string, h Handler) *osc.Server {
	return &osc.Server{Addr: addr, Dispatcher: NewDispatcher(h)}
}

// Dispatch implements Dispatcher.Dispatch. Bundles are flattened and their messages handled in order.
func (d *Dispatcher) Dispatch(packet osc.Packet) {
	if packet == nil {
		return
	}

	logger := logger.GetProjectLogger()
	logPacket(logger, packet)

	for _, msg := range flatten(packet) {
		if err := d.handle(msg); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{"address": msg.Address}).Warn("OSC message rejected")
		}
	}
}

// logPacket dumps the packet at debug level. The dump is only built when debug logging is on.
func logPacket(logger *logrus.Entry, packet osc.Packet) {
	if logger.Logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug(debug(packet, 0))
	}
}

func (d *Dispatcher) handle(msg *osc.Message) error {
	switch msg.Address {
	case AddressGo:
		return d.handler.Next()
	case AddressBack:
		return d.handler.Previous()
	case AddressGoto:
		id, err := cueArg(msg)
		if err != nil {
			return err
		}
		var override *time.Duration
		if len(msg.Arguments) > 1 {
			secs, ok := seconds(msg.Arguments[1])
			if !ok || secs < 0 {
				return fmt.Errorf("%s: fade time must be a non-negative number", msg.Address)
			}
			fade := time.Duration(secs * float64(time.Second))
			override = &fade
		}
		return d.handler.GotoCue(id, override)
	case AddressLearn:
		id, err := cueArg(msg)
		if err != nil {
			return err
		}
		return d.handler.Learn(id)
	}

	_, err := d.handler.HandleOSC(msg)
	return err
}

func cueArg(msg *osc.Message) (uint32, error) {
	if len(msg.Arguments) == 0 {
		return 0, fmt.Errorf("%s: missing cue id", msg.Address)
	}
	switch v := msg.Arguments[0].(type) {
	case int32:
		if v >= 0 {
			return uint32(v), nil
		}
	case int64:
		if v >= 0 && v <= int64(^uint32(0)) {
			return uint32(v), nil
		}
	case float32:
		if v >= 0 && float32(int64(v)) == v {
			return uint32(v), nil
		}
	}
	return 0, fmt.Errorf("%s: cue id must be a non-negative integer, got %v", msg.Address, msg.Arguments[0])
}

func seconds(arg interface{}) (float64, bool) {
	switch v := arg.(type) {
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func flatten(packet osc.Packet) []*osc.Message {
	switch packet := packet.(type) {
	case *osc.Message:
		return []*osc.Message{packet}
	case *osc.Bundle:
		var out []*osc.Message
		out = append(out, packet.Messages...)
		for _, b := range packet.Bundles {
			out = append(out, flatten(b)...)
		}
		return out
	}
	return nil
}

func indent(str string, indentLevel int) string {
	indentation := strings.Repeat("  ", indentLevel)

	result := ""

	for i, line := range strings.Split(str, "\n") {
		if i != 0 {
			result += "\n"
		}

		result += indentation + line
	}

	return result
}

func debug(packet osc.Packet, indentLevel int) string {
	switch packet := packet.(type) {
	default:
		return "Unknown packet type!"

	case *osc.Message:
		return fmt.Sprintf("-- OSC Message: %s", packet)

	case *osc.Bundle:
		result := fmt.Sprintf("-- OSC Bundle (%s):", packet.Timetag.Time())

		for i, message := range packet.Messages {
			result += "\n" + indent(
				fmt.Sprintf("-- OSC Message #%d: %s", i+1, message),
				indentLevel+1,
			)
		}

		for _, bundle := range packet.Bundles {
			result += "\n" + indent(debug(bundle, 0), indentLevel+1)
		}

		return result
	}
}
