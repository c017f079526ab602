package roleform

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-roleform/pkg/page"
	"github.com/goliatone/go-roleform/pkg/registration"
	"github.com/goliatone/go-roleform/pkg/sink"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), Request{Role: "planner", Locale: "ko-KR"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`lang="ko"`, `data-field="experienceYear"`, `data-field="projectSummary"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
	if strings.Contains(html, `data-field="github"`) {
		t.Fatalf("developer fields must not render for planner")
	}
}

func TestGenerateHTMLRejectsUnknownVariant(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), Request{ThemeVariant: "sepia"}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestNewHandlerSubmits(t *testing.T) {
	var got registration.Result
	handler, err := NewHandler(nil, page.WithSink(sink.Func(func(_ context.Context, r registration.Result) error {
		got = r
		return nil
	})))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	form := url.Values{
		"name":           {"Kim"},
		"role":           {"planner"},
		"experienceYear": {"2"},
		"projectSummary": {"Launch"},
	}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body:\n%s", rec.Code, rec.Body.String())
	}
	payload, err := got.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Kim","role":"planner","experienceYear":2,"projectSummary":"Launch"}`
	if string(payload) != want {
		t.Fatalf("submitted = %s, want %s", payload, want)
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "form.tmpl"); err != nil {
		t.Fatalf("form template: %v", err)
	}
	if !strings.Contains(string(EmbeddedDocument()), "registerEmployee") {
		t.Fatalf("document missing operation")
	}
}
