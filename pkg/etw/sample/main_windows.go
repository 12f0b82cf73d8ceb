//go:build windows
// +build windows

// Shows a sample usage of the ETW logging package.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/Microsoft/go-tracelogging/pkg/etw"
	"github.com/Microsoft/go-tracelogging/pkg/guid"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

func callback(sourceID guid.GUID, state etw.ProviderState, level etw.Level, matchAnyKeyword uint64, matchAllKeyword uint64, filterData uintptr) {
	fmt.Printf("Callback: isEnabled=%d, level=%d, matchAnyKeyword=%d\n", state, level, matchAnyKeyword)
}

func main() {
	fmt.Printf("Running on %s/%s\n", runtime.GOOS, runtime.GOARCH)

	group, err := guid.FromString("12341234-abcd-abcd-abcd-123412341234")
	if err != nil {
		log.Fatal(err)
	}

	level := layout.Values{"level": uint64(etw.LevelInfo)}
	provider, err := tracelogging.NewProvider("TestProvider",
		tracelogging.WithCallback(callback),
		tracelogging.WithResolver(level),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := provider.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	providerWithGroup, err := tracelogging.NewProvider("TestProviderWithGroup",
		tracelogging.WithGroupID(group),
		tracelogging.WithCallback(callback),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := providerWithGroup.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	fmt.Printf("Provider ID: %s\n", provider.ID())
	fmt.Printf("Provider w/ Group ID: %s\n", providerWithGroup.ID())

	fields := []*syntax.Option{
		syntax.Opt("level", syntax.X("level")),
		syntax.Opt("keyword", syntax.X("0x140")),
		syntax.Opt("str8", syntax.Str("TestField"), syntax.X("a")),
		syntax.Opt("str8", syntax.Str("TestField2"), syntax.X("b")),
		syntax.Opt("struct", syntax.Str("TestStruct"), syntax.Fields(
			syntax.Opt("str8", syntax.Str("Field1"), syntax.X("c")),
			syntax.Opt("str16", syntax.Str("Field2"), syntax.X("d")),
		)),
		syntax.Opt("u32_slice", syntax.Str("TestArray"), syntax.X("e")),
		syntax.Opt("systemtime", syntax.Str("Now"), syntax.X("time.Now()")),
	}

	event, err := provider.NewEvent("TestEvent", fields...)
	if err != nil {
		log.Fatal(err)
	}
	eventWithGroup, err := providerWithGroup.NewEvent("TestEventWithGroup", fields[1:]...)
	if err != nil {
		log.Fatal(err)
	}

	step, err := provider.NewEvent("TestActivityStep",
		syntax.Opt("activity_id", syntax.X("aid")),
		syntax.Opt("related_id", syntax.X("parent")),
		syntax.Opt("u32", syntax.Str("Step"), syntax.X("step")),
	)
	if err != nil {
		log.Fatal(err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Press enter to log events")
	reader.ReadString('\n')

	values := []interface{}{"Foo", "Bar", "Value1", "Value2", []uint32{1, 2, 3, 4, 5}, time.Now()}
	if err := event.Write(values...); err != nil {
		log.Fatal(err)
	}
	if err := eventWithGroup.Write(values...); err != nil {
		log.Fatal(err)
	}

	parent, err := etw.NewActivityID()
	if err != nil {
		log.Fatal(err)
	}
	for i := uint32(0); i < 3; i++ {
		aid, err := etw.NewActivityID()
		if err != nil {
			log.Fatal(err)
		}
		if err := step.Write(aid, parent, i); err != nil {
			log.Fatal(err)
		}
	}
}
