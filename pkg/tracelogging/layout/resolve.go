package layout

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

// Resolver resolves the deferred expressions of a layout when an event is
// written. *schema.Env is a Resolver for constant expressions.
type Resolver interface {
	Resolve(expr string) (uint64, error)
}

// Values is a Resolver looking up expressions by their exact text.
type Values map[string]uint64

// Resolve implements Resolver.
func (v Values) Resolve(expr string) (uint64, error) {
	if x, ok := v[strings.TrimSpace(expr)]; ok {
		return x, nil
	}
	return 0, errors.Errorf("no value for %q", expr)
}

// Chain is a Resolver trying each of its Resolvers in turn.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(expr string) (uint64, error) {
	var err error
	for _, r := range c {
		var v uint64
		if v, err = r.Resolve(expr); err == nil {
			return v, nil
		}
	}
	if err == nil {
		err = errors.Errorf("no value for %q", expr)
	}
	return 0, err
}

func resolve(r Resolver, v schema.Value) (uint64, error) {
	if v.IsConst {
		return v.Const, nil
	}
	if r == nil {
		return 0, errors.Errorf("unresolved expression %q", v.Expr)
	}
	x, err := r.Resolve(v.Expr)
	if err != nil {
		return 0, errors.Wrapf(err, "resolve %q", v.Expr)
	}
	return x, nil
}

// Metadata returns the event metadata block, resolving deferred chunks with r.
// The returned slice must not be modified.
func (l *Layout) Metadata(r Resolver) ([]byte, error) {
	if l.metadata != nil {
		return l.metadata, nil
	}
	return l.build(r)
}

func (l *Layout) build(r Resolver) ([]byte, error) {
	meta := make([]byte, 2, l.minMetadataSize()+8)
	for _, ch := range l.Chunks {
		switch ch.Kind {
		case ChunkLiteral:
			meta = append(meta, ch.Bytes...)
		case ChunkByte:
			v, err := resolve(r, ch.Value)
			if err != nil {
				return nil, err
			}
			if v > 0xff {
				return nil, errors.Errorf("type code %s = %d does not fit in a byte", ch.Value.Expr, v)
			}
			meta = append(meta, uint8(v)|ch.Flags)
		case ChunkTag:
			v, err := resolve(r, ch.Value)
			if err != nil {
				return nil, err
			}
			if v > etw.MaxTag {
				return nil, errors.Errorf("tag %s = %#x must not be greater than 0x0FFFFFFF", ch.Value.Expr, v)
			}
			meta = etw.AppendTag(meta, uint32(v))
		}
	}
	if len(meta) > MaxMetadataSize {
		return nil, errors.Errorf("event %q metadata is %d bytes (limit is %d bytes)", l.Event.Name, len(meta), MaxMetadataSize)
	}
	binary.LittleEndian.PutUint16(meta, uint16(len(meta)))
	return meta, nil
}

// Level returns the event level.
func (l *Layout) Level(r Resolver) (etw.Level, error) {
	v, err := resolve(r, l.Event.Level)
	if err != nil {
		return 0, err
	}
	if v > 0xff {
		return 0, errors.Errorf("level %d out of range", v)
	}
	return etw.Level(v), nil
}

// KeywordMask returns the bitwise OR of the event keywords.
func (l *Layout) KeywordMask(r Resolver) (uint64, error) {
	if l.Keyword.IsConst {
		return l.Keyword.Const, nil
	}
	var mask uint64
	for _, kw := range l.Event.Keywords {
		v, err := resolve(r, kw)
		if err != nil {
			return 0, err
		}
		mask |= v
	}
	return mask, nil
}

// EventDescriptor returns the event descriptor.
func (l *Layout) EventDescriptor(r Resolver) (etw.EventDescriptor, error) {
	ev := l.Event
	var (
		d     etw.EventDescriptor
		vals  [6]uint64
		limit = [6]uint64{0xffff, 0xff, 0xff, 0xff, 0xff, 0xffff}
		names = [6]string{"id", "version", "channel", "level", "opcode", "task"}
	)
	for i, v := range []schema.Value{ev.ID, ev.Version, ev.Channel, ev.Level, ev.Opcode, ev.Task} {
		x, err := resolve(r, v)
		if err != nil {
			return d, err
		}
		if x > limit[i] {
			return d, errors.Errorf("%s %d out of range", names[i], x)
		}
		vals[i] = x
	}
	kw, err := l.KeywordMask(r)
	if err != nil {
		return d, err
	}
	d = etw.EventDescriptor{
		ID:      uint16(vals[0]),
		Version: uint8(vals[1]),
		Channel: etw.Channel(vals[2]),
		Level:   etw.Level(vals[3]),
		Opcode:  etw.Opcode(vals[4]),
		Task:    uint16(vals[5]),
		Keyword: kw,
	}
	return d, nil
}
