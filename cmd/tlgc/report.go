package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
)

type providerReport struct {
	Symbol   string `json:"symbol,omitempty"`
	Name     string `json:"name"`
	ID       string `json:"id"`
	GroupID  string `json:"group_id,omitempty"`
	Metadata string `json:"metadata"`
}

type eventReport struct {
	Provider    string            `json:"provider"`
	Name        string            `json:"name"`
	Position    string            `json:"position"`
	Descriptor  map[string]string `json:"descriptor"`
	Tags        []string          `json:"tags"`
	Keywords    []string          `json:"keywords,omitempty"`
	Metadata    string            `json:"metadata,omitempty"`
	Chunks      []string          `json:"chunks,omitempty"`
	Bindings    []string          `json:"bindings"`
	Descriptors []string          `json:"descriptors"`
	Lengths     []string          `json:"lengths,omitempty"`
}

type fileReport struct {
	File      string           `json:"file"`
	Providers []providerReport `json:"providers"`
	Events    []eventReport    `json:"events"`
}

func newProviderReport(m *schema.ProviderModel, metadata []byte) providerReport {
	r := providerReport{
		Symbol:   m.Symbol,
		Name:     m.Name,
		ID:       m.ID.String(),
		Metadata: hex.EncodeToString(metadata),
	}
	if m.GroupID != nil {
		r.GroupID = m.GroupID.String()
	}
	return r
}

func newEventReport(l *layout.Layout) eventReport {
	ev := l.Event
	r := eventReport{
		Provider: ev.Provider,
		Name:     ev.Name,
		Position: ev.Pos.String(),
		Descriptor: map[string]string{
			"id":      ev.ID.String(),
			"version": ev.Version.String(),
			"channel": ev.Channel.String(),
			"level":   ev.Level.String(),
			"opcode":  ev.Opcode.String(),
			"task":    ev.Task.String(),
			"keyword": l.Keyword.String(),
		},
	}
	for _, t := range l.Tags {
		r.Tags = append(r.Tags, t.Name+" = "+t.Value.String())
	}
	for _, kw := range l.Keywords {
		r.Keywords = append(r.Keywords, kw.Name+" = "+kw.Value.String())
	}

	if meta, err := l.Metadata(nil); err == nil {
		r.Metadata = hex.EncodeToString(meta)
	} else {
		for _, ch := range l.Chunks {
			switch ch.Kind {
			case layout.ChunkLiteral:
				r.Chunks = append(r.Chunks, hex.EncodeToString(ch.Bytes))
			case layout.ChunkByte:
				r.Chunks = append(r.Chunks, fmt.Sprintf("byte(%s)|%#04x", ch.Value.Expr, ch.Flags))
			case layout.ChunkTag:
				r.Chunks = append(r.Chunks, fmt.Sprintf("tag(%s)", ch.Value.Expr))
			}
		}
	}

	for _, b := range l.Bindings {
		s := b.Name + " " + b.Kind.String()
		if b.Elem != nil {
			s += " " + b.Elem.String()
		}
		if b.ArrayLen != 0 {
			s += fmt.Sprintf("[%d]", b.ArrayLen)
		}
		r.Bindings = append(r.Bindings, s+" = "+b.Expr)
	}
	for _, d := range l.Descriptors {
		r.Descriptors = append(r.Descriptors, describeDescriptor(l, d))
	}
	for _, s := range l.Lengths {
		r.Lengths = append(r.Lengths, fmt.Sprintf("%s(%s)", s.Func, l.Bindings[s.Arg].Name))
	}
	return r
}

func describeDescriptor(l *layout.Layout, d layout.DescriptorSpec) string {
	switch d.Kind {
	case layout.DescProviderMetadata, layout.DescEventMetadata:
		return d.Kind.String()
	case layout.DescZero:
		return fmt.Sprintf("Zero(%d)", d.ElemSize)
	case layout.DescLength:
		return fmt.Sprintf("Length(%d)", d.Slot)
	}
	return fmt.Sprintf("%s(%s)", d.Kind, l.Bindings[d.Arg].Name)
}

func newFileReport(prog *tracelogging.Program) fileReport {
	r := fileReport{File: prog.Name}
	for _, p := range prog.Providers {
		r.Providers = append(r.Providers, newProviderReport(p.Model, p.Metadata))
	}
	for _, l := range prog.Events {
		r.Events = append(r.Events, newEventReport(l))
	}
	return r
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProviderText(w io.Writer, p providerReport) {
	fmt.Fprintf(w, "provider %s %q\n", p.Symbol, p.Name)
	fmt.Fprintf(w, "  id:       %s\n", p.ID)
	if p.GroupID != "" {
		fmt.Fprintf(w, "  group_id: %s\n", p.GroupID)
	}
	fmt.Fprintf(w, "  metadata: %s\n", p.Metadata)
}

var descriptorKeys = []string{"id", "version", "channel", "level", "opcode", "task", "keyword"}

func writeEventText(w io.Writer, e eventReport) {
	fmt.Fprintf(w, "event %s %q (%s)\n", e.Provider, e.Name, e.Position)
	for _, k := range descriptorKeys {
		fmt.Fprintf(w, "  %-8s %s\n", k+":", e.Descriptor[k])
	}
	writeList(w, "tags", e.Tags)
	writeList(w, "keywords", e.Keywords)
	if e.Metadata != "" {
		fmt.Fprintf(w, "  metadata: %s\n", e.Metadata)
	} else {
		fmt.Fprintf(w, "  metadata: %s\n", strings.Join(e.Chunks, " "))
	}
	writeList(w, "bindings", e.Bindings)
	writeList(w, "descriptors", e.Descriptors)
	writeList(w, "lengths", e.Lengths)
}

func writeList(w io.Writer, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", name)
	for _, it := range items {
		fmt.Fprintf(w, "    %s\n", it)
	}
}

func writeFileText(w io.Writer, r fileReport) {
	fmt.Fprintf(w, "# %s\n", r.File)
	for _, p := range r.Providers {
		writeProviderText(w, p)
	}
	for _, e := range r.Events {
		writeEventText(w, e)
	}
}
