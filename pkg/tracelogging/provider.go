// Package tracelogging writes TraceLogging events described with the option
// vocabulary of the catalog package. Event descriptions are validated and
// compiled once; writing an event marshals its values into data descriptors
// according to the compiled plan.
package tracelogging

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

// Transport delivers events to the event tracing system. *etw.Provider is
// the Windows transport.
type Transport interface {
	Enabled(level etw.Level, keywords uint64) bool
	WriteTransfer(descriptor *etw.EventDescriptor, activityID, relatedActivityID *guid.GUID, data []etw.EventDataDescriptor) error
	Close() error
}

var _ Transport = &etw.Provider{}

type providerOpts struct {
	id        *guid.GUID
	groupID   *guid.GUID
	transport Transport
	resolver  layout.Resolver
	constants map[string]int64
	callback  etw.EnableCallback
	log       *logrus.Entry
}

// ProviderOpt configures a Provider.
type ProviderOpt func(*providerOpts)

// WithID sets the provider ID instead of deriving it from the provider name.
func WithID(id guid.GUID) ProviderOpt {
	return func(opts *providerOpts) {
		opts.id = &id
	}
}

// WithGroupID adds the provider group trait to the provider metadata.
func WithGroupID(id guid.GUID) ProviderOpt {
	return func(opts *providerOpts) {
		opts.groupID = &id
	}
}

// WithTransport writes events through t instead of registering an ETW
// provider.
func WithTransport(t Transport) ProviderOpt {
	return func(opts *providerOpts) {
		opts.transport = t
	}
}

// WithResolver resolves the expressions of event descriptions that are not
// constant, such as a level held in a variable, each time an event is written.
func WithResolver(r layout.Resolver) ProviderOpt {
	return func(opts *providerOpts) {
		opts.resolver = r
	}
}

// WithConstants declares named integer constants usable in event
// descriptions.
func WithConstants(consts map[string]int64) ProviderOpt {
	return func(opts *providerOpts) {
		opts.constants = consts
	}
}

// WithCallback sets the callback invoked when sessions enable or disable the
// registered ETW provider.
func WithCallback(cb etw.EnableCallback) ProviderOpt {
	return func(opts *providerOpts) {
		opts.callback = cb
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *logrus.Entry) ProviderOpt {
	return func(opts *providerOpts) {
		opts.log = log
	}
}

// Provider writes events for one TraceLogging provider.
type Provider struct {
	model     *schema.ProviderModel
	metadata  []byte
	transport Transport
	env       *schema.Env
	resolver  layout.Resolver
	log       *logrus.Entry
}

// NewProvider creates a provider named name. Unless WithTransport is given,
// an ETW provider is registered, which fails with etw.ErrNotSupported outside
// of Windows.
func NewProvider(name string, opts ...ProviderOpt) (*Provider, error) {
	return NewProviderFromDescription(syntax.NewProvider("", name), opts...)
}

// NewProviderFromDescription creates a provider from a provider description.
// WithID and WithGroupID override the description's id and group_id options.
func NewProviderFromDescription(desc *syntax.Provider, opts ...ProviderOpt) (*Provider, error) {
	o := providerOpts{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logrus.NewEntry(logrus.StandardLogger())
	}

	model, err := schema.ParseProvider(desc)
	if err != nil {
		return nil, err
	}
	if o.id != nil {
		model.ID = *o.id
	}
	if o.groupID != nil {
		model.GroupID = o.groupID
	}

	p := &Provider{
		model:    model,
		metadata: layout.EncodeProvider(model),
		env:      schema.NewEnv(o.constants),
		log:      o.log.WithField("provider", model.Name),
	}
	p.resolver = layout.Chain{p.env}
	if o.resolver != nil {
		p.resolver = layout.Chain{o.resolver, p.env}
	}

	p.transport = o.transport
	if p.transport == nil {
		ep, err := etw.NewProvider(model.ID, p.metadata, o.callback)
		if err != nil {
			return nil, errors.Wrapf(err, "register provider %q", model.Name)
		}
		p.transport = ep
	}

	if model.Debug {
		p.log.WithFields(logrus.Fields{
			"id":       model.ID,
			"metadata": hex.EncodeToString(p.metadata),
		}).Debug("registered provider")
	}
	return p, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.model.Name
}

// ID returns the provider ID.
func (p *Provider) ID() guid.GUID {
	return p.model.ID
}

// Metadata returns the provider metadata block passed with every event.
func (p *Provider) Metadata() []byte {
	return p.metadata
}

// Env returns the environment event descriptions are folded in.
func (p *Provider) Env() *schema.Env {
	return p.env
}

// Enabled reports whether any session wants events with the given level and
// keywords.
func (p *Provider) Enabled(level etw.Level, keywords uint64) bool {
	return p.transport.Enabled(level, keywords)
}

// Close closes the transport.
func (p *Provider) Close() error {
	return p.transport.Close()
}

// NewEvent compiles an event named name with the given options.
func (p *Provider) NewEvent(name string, opts ...*syntax.Option) (*Event, error) {
	return p.Compile(syntax.NewEvent(p.model.Symbol, name, opts...))
}

// Compile validates and compiles an event description. Diagnostics are
// returned as a single error; see diag.Diagnostics.
func (p *Provider) Compile(desc *syntax.Event) (*Event, error) {
	l, err := CompileEvent(desc, p.env)
	if err != nil {
		return nil, err
	}
	return newEvent(p, l)
}
