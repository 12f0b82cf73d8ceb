// Package etwlogrus provides a logrus hook that writes each log entry as a
// TraceLogging event.
package etwlogrus

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// EventName is the name of the events written by the hook.
const EventName = "LogrusEntry"

// Hook is a Logrus hook which logs received events to ETW.
type Hook struct {
	provider *tracelogging.Provider
	cache    *tracelogging.Cache
}

// NewHook creates a new provider and returns a hook to log from it. opts
// configure the provider.
func NewHook(providerName string, opts ...tracelogging.ProviderOpt) (*Hook, error) {
	provider, err := tracelogging.NewProvider(providerName, opts...)
	if err != nil {
		return nil, err
	}
	return NewHookFromProvider(provider), nil
}

// NewHookFromProvider returns a hook logging from an existing provider.
func NewHookFromProvider(provider *tracelogging.Provider) *Hook {
	return &Hook{
		provider: provider,
		cache:    tracelogging.NewCache(provider),
	}
}

// Levels returns the set of levels that this hook wants to receive log entries
// for.
func (h *Hook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.TraceLevel,
		logrus.DebugLevel,
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
}

// Fire receives each Logrus entry as it is logged, and logs it to ETW.
func (h *Hook) Fire(e *logrus.Entry) error {
	// We could try to map Logrus levels to ETW levels, but we would lose some
	// fidelity as there are fewer ETW levels. So instead we use the level
	// directly.
	level := etw.Level(e.Level)
	if !h.provider.Enabled(level, 0) {
		return nil
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Entries with the same level and field names share one compiled event.
	shape := strconv.Itoa(int(level)) + "\x00" + strings.Join(keys, "\x00")
	event, err := h.cache.Event(shape, func() *syntax.Event {
		return describe(level, keys)
	})
	if err != nil {
		return err
	}

	// Reserve extra space for the message field.
	values := make([]interface{}, 0, len(keys)+1)
	values = append(values, e.Message)
	for _, k := range keys {
		switch v := e.Data[k].(type) {
		case string:
			values = append(values, v)
		case fmt.Stringer:
			values = append(values, v.String())
		case error:
			values = append(values, v.Error())
		default:
			values = append(values, fmt.Sprintf("<unknown type: %v> %v", reflect.TypeOf(v), v))
		}
	}
	return event.Write(values...)
}

func describe(level etw.Level, keys []string) *syntax.Event {
	opts := make([]*syntax.Option, 0, len(keys)+2)
	opts = append(opts,
		syntax.Opt("level", syntax.X(strconv.Itoa(int(level)))),
		syntax.Opt("str8", syntax.Str("Message"), syntax.X("e.Message")),
	)
	for _, k := range keys {
		opts = append(opts, syntax.Opt("str8", syntax.Str(k), syntax.X(strconv.Quote(k))))
	}
	return syntax.NewEvent("", EventName, opts...)
}

// Close cleans up the hook and closes the ETW provider.
func (h *Hook) Close() error {
	return h.provider.Close()
}
