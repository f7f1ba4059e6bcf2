package llm

import (
	"context"
	"testing"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &GenerateResponse{Text: f.text}, nil
}

func (f *fakeProvider) ModelInfo() ModelMeta { return ModelMeta{ID: "fake", Provider: "fake"} }

func (f *fakeProvider) HealthCheck(context.Context) error { return nil }

func newTestClient(p Provider) *Client {
	router := NewRouter(map[string]Provider{"fake": p}, "fake")
	return NewClient(router, 0, nil)
}

func TestInferSuccess(t *testing.T) {
	res := newTestClient(&fakeProvider{text: "ok"}).Infer(context.Background(), "prompt", "fake")
	if !res.OK {
		t.Fatalf("result not OK: %+v", res)
	}
	if res.RawText != "ok" {
		t.Errorf("rawText = %q", res.RawText)
	}
	if res.ErrKind != ErrorNone {
		t.Errorf("errKind = %q, want none", res.ErrKind)
	}
}

func TestInferClassifiesCallErrors(t *testing.T) {
	res := newTestClient(&fakeProvider{err: &CallError{Kind: ErrorTimeout}}).Infer(context.Background(), "prompt", "fake")
	if res.OK {
		t.Fatal("result OK on provider failure")
	}
	if res.ErrKind != ErrorTimeout {
		t.Errorf("errKind = %q, want timeout", res.ErrKind)
	}
}

func TestInferUnknownErrorDefaultsToNetwork(t *testing.T) {
	res := newTestClient(&fakeProvider{err: context.Canceled}).Infer(context.Background(), "prompt", "fake")
	if res.OK {
		t.Fatal("result OK on provider failure")
	}
	if res.ErrKind != ErrorNetwork {
		t.Errorf("errKind = %q, want network", res.ErrKind)
	}
}

func TestRouterUnknownProvider(t *testing.T) {
	router := NewRouter(map[string]Provider{}, "missing")
	if _, err := router.Route(context.Background()); err == nil {
		t.Fatal("expected error for unregistered default provider")
	}
}
