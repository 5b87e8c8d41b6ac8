package sitecmd

import (
	"context"
	"errors"
	"testing"

	lexicon "github.com/goliatone/go-lexicon"
)

type stubBuilder struct {
	buildCalls []lexicon.BuildRequest
	cleanCalls int
	summary    *lexicon.BuildSummary
	err        error
}

func (s *stubBuilder) Build(_ context.Context, req lexicon.BuildRequest) (*lexicon.BuildSummary, error) {
	s.buildCalls = append(s.buildCalls, req)
	return s.summary, s.err
}

func (s *stubBuilder) Clean(context.Context) error {
	s.cleanCalls++
	return s.err
}

func TestBuildSiteHandlerRunsBuild(t *testing.T) {
	builder := &stubBuilder{summary: &lexicon.BuildSummary{}}
	var envelope *ResultEnvelope

	handler := NewBuildSiteHandler(builder, nil)
	err := handler.Execute(context.Background(), BuildSiteCommand{
		DryRun:  true,
		Workers: 3,
		ResultCallback: func(e ResultEnvelope) {
			envelope = &e
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(builder.buildCalls) != 1 {
		t.Fatalf("build called %d times", len(builder.buildCalls))
	}
	req := builder.buildCalls[0]
	if !req.DryRun || req.Workers != 3 {
		t.Errorf("request = %+v", req)
	}
	if envelope == nil || envelope.Summary != builder.summary {
		t.Errorf("callback envelope = %+v", envelope)
	}
}

func TestBuildSiteHandlerRejectsInvalidMessage(t *testing.T) {
	builder := &stubBuilder{}
	handler := NewBuildSiteHandler(builder, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{Workers: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(builder.buildCalls) != 0 {
		t.Fatal("builder must not run on invalid messages")
	}
}

func TestBuildSiteHandlerPropagatesBuildError(t *testing.T) {
	wantErr := errors.New("boom")
	builder := &stubBuilder{err: wantErr}
	var called bool

	handler := NewBuildSiteHandler(builder, nil)
	err := handler.Execute(context.Background(), BuildSiteCommand{
		ResultCallback: func(ResultEnvelope) { called = true },
	})
	if err == nil {
		t.Fatal("expected build error")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("error should wrap the build failure: %v", err)
	}
	if !called {
		t.Fatal("callback should fire even when the build fails")
	}
}

func TestBuildSiteHandlerRequiresBuilder(t *testing.T) {
	handler := NewBuildSiteHandler(nil, nil)
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if err == nil || !errors.Is(err, ErrBuilderRequired) {
		t.Fatalf("expected ErrBuilderRequired, got %v", err)
	}
}

func TestCleanSiteHandlerRunsClean(t *testing.T) {
	builder := &stubBuilder{}
	handler := NewCleanSiteHandler(builder, nil)

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if builder.cleanCalls != 1 {
		t.Fatalf("clean called %d times", builder.cleanCalls)
	}
}
