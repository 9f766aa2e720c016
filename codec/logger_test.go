package codec

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/plainwire/schema"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestLogger_DefaultIsNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("SetLogger(nil) left a nil logger")
	}
}

func TestLogger_PlanLayout(t *testing.T) {
	logs := observeLogs(t)

	if _, err := PlanLayout(swapSchema()); err != nil {
		t.Fatalf("PlanLayout failed: %v", err)
	}
	entries := logs.FilterMessage("layout planned").All()
	if len(entries) != 1 {
		t.Fatalf("got %d 'layout planned' entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["schema"] != "swap" {
		t.Errorf("schema = %v", fields["schema"])
	}
	if fields["static_size"] != int64(8) || fields["first_dynamic"] != int64(1) {
		t.Errorf("static_size/first_dynamic = %v/%v", fields["static_size"], fields["first_dynamic"])
	}

	bad := schema.MustNew("bad", schema.Field{Name: "f", Kind: schema.KindF64})
	if _, err := PlanLayout(bad); err == nil {
		t.Fatal("expected error for f64")
	}
	if n := logs.FilterField(zap.String("schema", "bad")).Len(); n != 1 {
		t.Errorf("got %d entries for the rejected schema, want 1", n)
	}
}

func TestLogger_Compile(t *testing.T) {
	logs := observeLogs(t)
	c := NewCompiler()
	plan := mustPlan(t, swapSchema())

	for i := 0; i < 3; i++ {
		if _, err := c.Compile(plan, reflect.TypeFor[Swap]()); err != nil {
			t.Fatalf("Compile failed: %v", err)
		}
	}
	if n := logs.FilterMessage("compiled record binding").Len(); n != 1 {
		t.Errorf("got %d compile entries, want 1 (later calls hit the cache)", n)
	}
}

func TestLogger_EncodeDecodeAreSilent(t *testing.T) {
	plan := mustPlan(t, swapSchema())
	logs := observeLogs(t)

	data, err := NewEncoder(plan).Encode(swapRecord())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := NewDecoder(plan).Decode(data[:5]); err == nil {
		t.Fatal("expected truncation error")
	}
	if logs.Len() != 0 {
		t.Errorf("encode/decode logged %d entries", logs.Len())
	}
}
