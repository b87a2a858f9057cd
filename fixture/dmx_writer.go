package fixture

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/logger"
)

const universeSize = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

type dmxOperation struct {
	universe, channel int
	value             byte
}

func NewDMXState() *DMXState {
	return &DMXState{universes: make(map[int][]byte)}
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > universeSize {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = op.value
	}

	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, universeSize)
	}
}

// GetValue returns the level of a one-based channel.
func (s *DMXState) GetValue(universe, channel int) byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	u := s.universes[universe]
	if u == nil || channel < 1 || channel > universeSize {
		return 0
	}
	return u[channel-1]
}

// Snapshot copies every universe.
func (s *DMXState) Snapshot() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// Output renders blended cue states onto the patched fixtures' DMX channels.
type Output struct {
	group *Group
	dmx   *DMXState
}

var _ cuelist.Sink = (*Output)(nil)

func NewOutput(group *Group, dmx *DMXState) *Output {
	for _, f := range group.Fixtures {
		dmx.initializeUniverse(f.Universe)
	}
	return &Output{group: group, dmx: dmx}
}

// SendFrame updates the DMX state for every fixture whose channels changed.
func (o *Output) SendFrame(state cuelist.State, view cuelist.View) {
	var ops []dmxOperation
	for _, f := range o.group.Fixtures {
		f.Apply(state, view.Beats)
		if !f.NeedsUpdate() {
			continue
		}
		for _, c := range f.Channels {
			ops = append(ops, dmxOperation{universe: f.Universe, channel: f.Address + c.Offset - 1, value: c.DMX()})
		}
		f.HasUpdated()
	}
	if len(ops) == 0 {
		return
	}
	if err := o.dmx.set(ops...); err != nil {
		logger.GetProjectLogger().WithError(err).Error("Failed to update DMX state")
	}
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// SendDMXWorker sends OLA the current dmxState across all universes
func SendDMXWorker(ctx context.Context, client OLAClient, clk clock.Clock, tick time.Duration, dmx *DMXState, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	logger := logger.GetProjectLogger()

	t := clk.NewTimer(tick)
	defer t.Stop()
	logger.WithFields(logrus.Fields{"tick": tick}).Info("SendDMXWorker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C():
			universes := dmx.Snapshot()
			keys := make([]int, 0, len(universes))
			for k := range universes {
				keys = append(keys, k)
			}
			sort.Ints(keys)
			for _, k := range keys {
				if _, err := client.SendDmx(k, universes[k]); err != nil {
					logger.WithError(err).WithFields(logrus.Fields{"universe": k}).Warn("Failed to send DMX")
				}
			}
			t.Reset(tick)
		}
	}
}
