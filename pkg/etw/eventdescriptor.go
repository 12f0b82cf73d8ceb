package etw

// Channel represents the ETW logging channel that is used. It can be used by
// event consumers to give an event special treatment.
type Channel uint8

const (
	// ChannelTraceClassic is the channel used by classic (non-TraceLogging)
	// events.
	ChannelTraceClassic Channel = 0
	// ChannelTraceLogging is the default channel for TraceLogging events. It is
	// not required to be used for TraceLogging, but will prevent decoding
	// issues for these events on older operating systems.
	ChannelTraceLogging Channel = 11
	// ChannelProviderMetadata is used for events that carry provider traits.
	ChannelProviderMetadata Channel = 12
)

// Level represents the ETW logging level. There are several predefined levels
// that are commonly used, but technically anything from 0-255 is allowed.
// Lower levels indicate more important events, and 0 indicates an event that
// will always be collected.
type Level uint8

// Predefined ETW log levels from winmeta.xml in the Windows SDK.
const (
	LevelAlways Level = iota
	LevelCritical
	LevelError
	LevelWarning
	LevelInfo
	LevelVerbose
)

// Opcode represents the operation that the event indicates is being performed.
type Opcode uint8

// Predefined ETW opcodes from winmeta.xml in the Windows SDK.
const (
	// OpcodeInfo indicates an informational event.
	OpcodeInfo Opcode = iota
	// OpcodeStart indicates the start of an operation.
	OpcodeStart
	// OpcodeStop indicates the end of an operation.
	OpcodeStop
	// OpcodeDCStart indicates the start of a provider capture state operation.
	OpcodeDCStart
	// OpcodeDCStop indicates the end of a provider capture state operation.
	OpcodeDCStop
	OpcodeExtension
	OpcodeReply
	OpcodeResume
	OpcodeSuspend
	OpcodeSend
	OpcodeReceive Opcode = 240
)

// EventDescriptor represents various metadata for an ETW event. The layout
// matches EVENT_DESCRIPTOR from evntprov.h.
type EventDescriptor struct {
	ID      uint16
	Version uint8
	Channel Channel
	Level   Level
	Opcode  Opcode
	Task    uint16
	Keyword uint64
}

// NewEventDescriptor returns an EventDescriptor initialized for use with
// TraceLogging.
func NewEventDescriptor() *EventDescriptor {
	// Standard TraceLogging events default to the TraceLogging channel, and
	// verbose level.
	return &EventDescriptor{
		Channel: ChannelTraceLogging,
		Level:   LevelVerbose,
		Keyword: 1,
	}
}

// Identity returns the identity of the event. If the identity is not 0, it
// should uniquely identify the other event metadata (contained in
// EventDescriptor, and field metadata). Only the lower 24 bits of this value
// are relevant.
func (ed *EventDescriptor) Identity() uint32 {
	return (uint32(ed.Version) << 16) | uint32(ed.ID)
}

// SetIdentity sets the identity of the event.
func (ed *EventDescriptor) SetIdentity(identity uint32) {
	ed.ID = uint16(identity)
	ed.Version = uint8(identity >> 16)
}
