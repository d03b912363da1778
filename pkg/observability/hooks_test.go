package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, "tablero-microsegmentacion-chart", 28)
	p.OnLayoutComplete(ctx, "tablero-microsegmentacion-chart", time.Second, nil)
	p.OnRenderStart(ctx, []string{"png"})
	p.OnRenderComplete(ctx, []string{"png"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "chart")
	c.OnCacheMiss(ctx, "deck")
	c.OnCacheSet(ctx, "chart", 1024)

	// Insert hooks
	i := NoopInsertHooks{}
	i.OnInsertStart(ctx, "perfil-identificacion-right")
	i.OnInsertComplete(ctx, "perfil-identificacion-right", true, time.Second, nil)
	i.OnInsertRejected(ctx, "perfil-identificacion-right", errors.New("in flight"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Insert().(NoopInsertHooks); !ok {
		t.Error("Insert() should return NoopInsertHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customInsert := &testInsertHooks{}
	SetInsertHooks(customInsert)
	if Insert() != customInsert {
		t.Error("SetInsertHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Insert().(NoopInsertHooks); !ok {
		t.Error("Reset() should restore NoopInsertHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)
	SetInsertHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if Insert() == nil {
		t.Error("SetInsertHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testInsertHooks struct{ NoopInsertHooks }
