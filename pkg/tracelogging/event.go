package tracelogging

import (
	"github.com/pkg/errors"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// CompileEvent validates an event description and compiles its layout.
func CompileEvent(desc *syntax.Event, env *schema.Env) (*layout.Layout, error) {
	ev, err := schema.ParseEvent(desc, env)
	if err != nil {
		return nil, err
	}
	return layout.Compile(ev)
}

// Event is a compiled event of a Provider. It is safe for concurrent use.
type Event struct {
	provider *Provider
	layout   *layout.Layout

	// static is set when the descriptor does not depend on the resolver.
	static     bool
	descriptor etw.EventDescriptor
}

func newEvent(p *Provider, l *layout.Layout) (*Event, error) {
	e := &Event{provider: p, layout: l}
	d, err := l.EventDescriptor(nil)
	if err == nil {
		e.static = true
		e.descriptor = d
	}
	if !l.Deferred() {
		// Catch oversized constant metadata now rather than on every write.
		if _, err := l.Metadata(nil); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.layout.Event.Name
}

// Layout returns the compiled layout of the event.
func (e *Event) Layout() *layout.Layout {
	return e.layout
}

// Descriptor returns the event descriptor, resolving expressions that are not
// constant with the provider's resolver.
func (e *Event) Descriptor() (etw.EventDescriptor, error) {
	if e.static {
		return e.descriptor, nil
	}
	return e.layout.EventDescriptor(e.provider.resolver)
}

// Enabled reports whether any session wants this event.
func (e *Event) Enabled() bool {
	d, err := e.Descriptor()
	return err == nil && e.provider.Enabled(d.Level, d.Keyword)
}

// Write writes the event. values are the event arguments in layout binding
// order: the activity ID and related activity ID if the event takes them,
// then one value per data field. Nothing is marshalled if no session wants the
// event.
func (e *Event) Write(values ...interface{}) error {
	l := e.layout
	if len(values) != len(l.Bindings) {
		return errors.Errorf("event %q takes %d values, got %d", l.Event.Name, len(l.Bindings), len(values))
	}

	d, err := e.Descriptor()
	if err != nil {
		return errors.Wrapf(err, "event %q", l.Event.Name)
	}
	if !e.provider.Enabled(d.Level, d.Keyword) {
		return nil
	}

	meta, err := l.Metadata(e.provider.resolver)
	if err != nil {
		return errors.Wrapf(err, "event %q", l.Event.Name)
	}

	var activityID, relatedID *guid.GUID
	args := make([][]byte, len(l.Bindings))
	for i := range l.Bindings {
		b := &l.Bindings[i]
		switch b.Kind {
		case layout.BindActivityID:
			activityID, err = correlationID(b, values[i])
		case layout.BindRelatedID:
			relatedID, err = correlationID(b, values[i])
		default:
			args[i], err = marshalArg(b, values[i])
		}
		if err != nil {
			return errors.Wrapf(err, "event %q", l.Event.Name)
		}
	}

	lengths := make([]uint16, len(l.Lengths))
	for i, slot := range l.Lengths {
		switch slot.Func {
		case layout.CountedSize:
			lengths[i] = etw.CountedSize(args[slot.Arg])
		case layout.SliceCount:
			lengths[i] = etw.SliceCount(len(args[slot.Arg]) / sequenceElemSize(&l.Bindings[slot.Arg]))
		}
	}

	data := make([]etw.EventDataDescriptor, 0, len(l.Descriptors))
	for _, ds := range l.Descriptors {
		data = append(data, e.descriptorFor(ds, meta, args, lengths))
	}
	return e.provider.transport.WriteTransfer(&d, activityID, relatedID, data)
}

var zeros [2]byte

func (e *Event) descriptorFor(ds layout.DescriptorSpec, meta []byte, args [][]byte, lengths []uint16) etw.EventDataDescriptor {
	switch ds.Kind {
	case layout.DescProviderMetadata:
		return etw.NewEventDataDescriptor(etw.EventDataDescriptorTypeProviderMetadata, e.provider.metadata)
	case layout.DescEventMetadata:
		return etw.NewEventDataDescriptor(etw.EventDataDescriptorTypeEventMetadata, meta)
	case layout.DescCStr:
		return etw.DescriptorFromCStr(args[ds.Arg], ds.ElemSize)
	case layout.DescZero:
		return etw.DescriptorFromValue(zeros[:ds.ElemSize])
	case layout.DescSid:
		return etw.DescriptorFromSid(args[ds.Arg])
	case layout.DescCounted:
		return etw.DescriptorFromCounted(args[ds.Arg])
	case layout.DescSlice:
		return etw.DescriptorFromSlice(args[ds.Arg], ds.ElemSize)
	case layout.DescLength:
		return etw.DescriptorFromValue(etw.EncodeLength(lengths[ds.Slot]))
	}
	return etw.DescriptorFromValue(args[ds.Arg])
}
