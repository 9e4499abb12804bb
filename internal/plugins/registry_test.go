package plugins

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"testing"

	"github.com/smsledger/smsledger/pkg/api"
)

type fakeReaderPlugin struct {
	name   string
	scopes []string
}

func (p *fakeReaderPlugin) Name() string             { return p.name }
func (p *fakeReaderPlugin) Description() string      { return "fake reader" }
func (p *fakeReaderPlugin) RequiredScopes() []string { return p.scopes }
func (p *fakeReaderPlugin) NewReader(*http.Client, json.RawMessage, *slog.Logger) (api.Reader, error) {
	return nil, nil
}

type fakeWriterPlugin struct {
	name   string
	scopes []string
}

func (p *fakeWriterPlugin) Name() string             { return p.name }
func (p *fakeWriterPlugin) Description() string      { return "fake writer" }
func (p *fakeWriterPlugin) RequiredScopes() []string { return p.scopes }
func (p *fakeWriterPlugin) NewWriter(*http.Client, json.RawMessage, *slog.Logger) (api.Writer, error) {
	return nil, nil
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterReader(&fakeReaderPlugin{name: "a"}); err != nil {
		t.Fatalf("RegisterReader error: %v", err)
	}
	if err := r.RegisterReader(&fakeReaderPlugin{name: "a"}); err == nil {
		t.Error("expected error on duplicate reader registration")
	}

	if err := r.RegisterWriter(&fakeWriterPlugin{name: "b"}); err != nil {
		t.Fatalf("RegisterWriter error: %v", err)
	}
	if err := r.RegisterWriter(&fakeWriterPlugin{name: "b"}); err == nil {
		t.Error("expected error on duplicate writer registration")
	}
}

func TestGetUnknownPlugin(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetReader("missing"); err == nil {
		t.Error("expected error for unknown reader")
	}
	if _, err := r.GetWriter("missing"); err == nil {
		t.Error("expected error for unknown writer")
	}
}

func TestGetAllScopesDeduplicates(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterReader(&fakeReaderPlugin{name: "rd", scopes: []string{"scope.a", "scope.b"}}); err != nil {
		t.Fatalf("RegisterReader error: %v", err)
	}
	if err := r.RegisterWriter(&fakeWriterPlugin{name: "wr", scopes: []string{"scope.b", "scope.c"}}); err != nil {
		t.Fatalf("RegisterWriter error: %v", err)
	}

	scopes, err := r.GetAllScopes("rd", "wr")
	if err != nil {
		t.Fatalf("GetAllScopes error: %v", err)
	}

	sort.Strings(scopes)
	want := []string{"scope.a", "scope.b", "scope.c"}
	if len(scopes) != len(want) {
		t.Fatalf("got %v, want %v", scopes, want)
	}
	for i := range want {
		if scopes[i] != want[i] {
			t.Errorf("got %v, want %v", scopes, want)
			break
		}
	}
}

func TestGetAllScopesEmptyForLocalPlugins(t *testing.T) {
	r := NewRegistry()

	if err := r.RegisterReader(&fakeReaderPlugin{name: "rd"}); err != nil {
		t.Fatalf("RegisterReader error: %v", err)
	}
	if err := r.RegisterWriter(&fakeWriterPlugin{name: "wr"}); err != nil {
		t.Fatalf("RegisterWriter error: %v", err)
	}

	scopes, err := r.GetAllScopes("rd", "wr")
	if err != nil {
		t.Fatalf("GetAllScopes error: %v", err)
	}
	if len(scopes) != 0 {
		t.Errorf("got %v, want no scopes", scopes)
	}
}
