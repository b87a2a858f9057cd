package osctrigger

import (
	"errors"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robmorgan/lumen/cuelist"
)

type call struct {
	op       string
	id       uint32
	override *time.Duration
	address  string
}

type fakeHandler struct {
	calls []call
}

func (f *fakeHandler) Next() error {
	f.calls = append(f.calls, call{op: "next"})
	return nil
}

func (f *fakeHandler) Previous() error {
	f.calls = append(f.calls, call{op: "previous"})
	return errors.New("no cue before the first cue")
}

func (f *fakeHandler) GotoCue(id uint32, override *time.Duration) error {
	f.calls = append(f.calls, call{op: "goto", id: id, override: override})
	return nil
}

func (f *fakeHandler) Learn(id uint32) error {
	f.calls = append(f.calls, call{op: "learn", id: id})
	return nil
}

func (f *fakeHandler) HandleOSC(msg *osc.Message) (cuelist.Dispatch, error) {
	f.calls = append(f.calls, call{op: "osc", address: msg.Address})
	return cuelist.Dispatch{}, nil
}

func TestDispatchControlMessages(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	d := NewDispatcher(h)

	d.Dispatch(osc.NewMessage(AddressGo))
	d.Dispatch(osc.NewMessage(AddressBack))
	d.Dispatch(osc.NewMessage(AddressGoto, int32(4)))
	d.Dispatch(osc.NewMessage(AddressGoto, int32(5), float32(1.5)))
	d.Dispatch(osc.NewMessage(AddressLearn, int32(6)))
	d.Dispatch(osc.NewMessage("/show/scene", int32(1)))
	d.Dispatch(nil)

	require.Len(t, h.calls, 6)
	assert.Equal(t, "next", h.calls[0].op)
	assert.Equal(t, "previous", h.calls[1].op)
	assert.Equal(t, call{op: "goto", id: 4}, h.calls[2])
	require.NotNil(t, h.calls[3].override)
	assert.Equal(t, 1500*time.Millisecond, *h.calls[3].override)
	assert.Equal(t, call{op: "learn", id: 6}, h.calls[4])
	assert.Equal(t, call{op: "osc", address: "/show/scene"}, h.calls[5])
}

func TestDispatchRejectsBadArguments(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	d := NewDispatcher(h)

	d.Dispatch(osc.NewMessage(AddressGoto))
	d.Dispatch(osc.NewMessage(AddressGoto, int32(-1)))
	d.Dispatch(osc.NewMessage(AddressGoto, "one"))
	d.Dispatch(osc.NewMessage(AddressGoto, int32(1), float32(-2)))
	d.Dispatch(osc.NewMessage(AddressLearn))

	assert.Empty(t, h.calls)
}

func TestDispatchFlattensBundles(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	d := NewDispatcher(h)

	inner := osc.NewBundle(time.Now())
	require.NoError(t, inner.Append(osc.NewMessage("/inner")))
	outer := osc.NewBundle(time.Now())
	require.NoError(t, outer.Append(osc.NewMessage("/first")))
	require.NoError(t, outer.Append(osc.NewMessage(AddressGo)))
	require.NoError(t, outer.Append(inner))

	d.Dispatch(outer)

	var ops []string
	for _, c := range h.calls {
		ops = append(ops, c.op+c.address)
	}
	assert.Equal(t, []string{"osc/first", "next", "osc/inner"}, ops)
	assert.Contains(t, debug(outer, 0), "-- OSC Bundle")
}

func TestLogPacketOnlyAtDebug(t *testing.T) {
	t.Parallel()

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.InfoLevel)
	entry := logrus.NewEntry(log)

	logPacket(entry, osc.NewMessage("/lumen/go"))
	assert.Empty(t, hook.AllEntries())

	log.SetLevel(logrus.DebugLevel)
	logPacket(entry, osc.NewMessage("/lumen/go"))
	require.Len(t, hook.AllEntries(), 1)
	assert.Contains(t, hook.LastEntry().Message, "/lumen/go")
}
