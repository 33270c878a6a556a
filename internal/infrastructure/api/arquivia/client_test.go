package arquivia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, Options{Token: "tok"})
}

func TestGetClassificationDecodesEnvelopeAndNestedRefs(t *testing.T) {
	var capturedPath, capturedAuth, capturedRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		capturedRequestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"sucesso":true,"mensagem":"ok","data":{
			"is_reviewed":true,
			"classification_status":{"classification_status_id":2,"status":"Em andamento"},
			"privacity":"3",
			"reviewer":{"user_id":7,"name":"Ana"},
			"exclusive_users":[4,{"user_id":9}]
		}}`))
	})

	cls, err := client.GetClassification(context.Background(), 15)
	if err != nil {
		t.Fatalf("GetClassification() error = %v", err)
	}
	if capturedPath != "/api/v1/documento/classificacao/consultar/15/" {
		t.Fatalf("unexpected path %s", capturedPath)
	}
	if capturedAuth != "Bearer tok" {
		t.Fatalf("expected bearer token, got %q", capturedAuth)
	}
	if capturedRequestID == "" {
		t.Fatalf("expected request id header")
	}
	if !cls.IsReviewed || cls.Status == nil || *cls.Status != domain.StatusInProgress {
		t.Fatalf("unexpected status in %+v", cls)
	}
	if cls.Privacity == nil || *cls.Privacity != domain.PrivacityExclusive {
		t.Fatalf("unexpected privacity in %+v", cls)
	}
	if cls.Reviewer == nil || cls.Reviewer.ID != 7 || cls.Reviewer.Name != "Ana" {
		t.Fatalf("unexpected reviewer %+v", cls.Reviewer)
	}
	if !domain.SameIDSet(cls.ExclusiveUsers, []int{4, 9}) {
		t.Fatalf("unexpected exclusive users %v", cls.ExclusiveUsers)
	}
}

func TestUpdateClassificationSendsFullReplacement(t *testing.T) {
	var payload map[string]any
	var method string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"sucesso":true,"mensagem":"Classificação alterada","data":null}`))
	})

	status := domain.StatusConcluded
	err := client.UpdateClassification(context.Background(), 3, domain.Classification{
		IsReviewed: true,
		Status:     &status,
		Reviewer:   &domain.UserRef{ID: 5, Name: "Bia"},
	})
	if err != nil {
		t.Fatalf("UpdateClassification() error = %v", err)
	}
	if method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", method)
	}
	for _, key := range []string{"is_reviewed", "classification_status", "privacity", "reviewer"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected key %q in payload %v", key, payload)
		}
	}
	if payload["privacity"] != nil {
		t.Fatalf("expected null privacity, got %v", payload["privacity"])
	}
	if payload["reviewer"].(float64) != 5 {
		t.Fatalf("expected reviewer id 5, got %v", payload["reviewer"])
	}
	if _, ok := payload["exclusive_users"]; ok {
		t.Fatalf("exclusive users must only travel with Exclusive privacy")
	}
}

func TestLinkCategoriesSendsSortedIDs(t *testing.T) {
	var payload struct {
		CategoriesID []int `json:"categories_id"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/documento/categoria/vincular/8/" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.LinkCategories(context.Background(), 8, []int{3, 1, 2, 3}); err != nil {
		t.Fatalf("LinkCategories() error = %v", err)
	}
	if len(payload.CategoriesID) != 3 || payload.CategoriesID[0] != 1 || payload.CategoriesID[2] != 3 {
		t.Fatalf("unexpected categories payload %v", payload.CategoriesID)
	}
}

func TestSearchDocumentsSendsFullFilterBag(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/documento/pesquisar/" {
			http.NotFound(w, r)
			return
		}
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"sucesso":true,"mensagem":"2 resultados para contrato","data":{"count":2,"next":null,"previous":null,"results":[{"document_id":1,"title":"Contrato A"},{"document_id":2,"title":"Contrato B"}]}}`))
	})

	reviewed := true
	page, err := client.SearchDocuments(context.Background(), domain.DocumentFilters{
		SearchTerm: "contrato",
		IsReviewed: &reviewed,
		Categories: []string{"RH", " Jurídico "},
	}, 2)
	if err != nil {
		t.Fatalf("SearchDocuments() error = %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Mensagem != "2 resultados para contrato" {
		t.Fatalf("expected annotation, got %q", page.Mensagem)
	}
	for _, key := range []string{"searchTerm", "isReviewed", "statusId", "privacityId", "reviewer", "categories", "page"} {
		if _, ok := query[key]; !ok {
			t.Fatalf("expected query key %q in %v", key, query)
		}
	}
	if query["categories"][0] != "RH;Jurídico" {
		t.Fatalf("unexpected categories param %q", query["categories"][0])
	}
	if query["isReviewed"][0] != "true" || query["page"][0] != "2" || query["statusId"][0] != "" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestListDocumentsAcceptsBarePaginatedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			t.Errorf("expected page=1, got %q", r.URL.Query().Get("page"))
		}
		_, _ = w.Write([]byte(`{"count":45,"next":"http://x/?page=2","previous":null,"results":[{"document_id":3,"title":"Ata"}]}`))
	})

	page, err := client.ListDocuments(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if page.Count != 45 || page.Next == nil || page.Results[0].Title != "Ata" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestAPIErrorPrefersFirstFieldMessageInBodyOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"sucesso":false,"mensagem":"Dados inválidos","data":{"zeta":["primeiro erro"],"alpha":["segundo erro"]}}`))
	})

	_, err := client.CreateDocument(context.Background(), domain.NewDocument{Title: "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Field != "zeta" || apiErr.Message != "primeiro erro" {
		t.Fatalf("expected first field error, got field=%q message=%q", apiErr.Field, apiErr.Message)
	}
	if !domain.IsKind(err, domain.ErrRequest) {
		t.Fatalf("expected ErrRequest kind, got %v", err)
	}
	if domain.UserMessage(err, "") != "primeiro erro" {
		t.Fatalf("unexpected user message %q", domain.UserMessage(err, ""))
	}
}

func TestAPIErrorFallsBackToBusinessMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Você não tem permissão."}`))
	})

	err := client.DeleteDocument(context.Background(), 1)
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if msg := domain.UserMessage(err, ""); msg != "Você não tem permissão." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUnsuccessfulEnvelopeOn200IsRequestError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sucesso":false,"mensagem":"Categoria já existe.","data":null}`))
	})

	_, err := client.CreateCategory(context.Background(), domain.NewCategory{Name: "RH"})
	if !domain.IsKind(err, domain.ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
	if msg := domain.UserMessage(err, ""); msg != "Categoria já existe." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestNetworkFailureUsesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(url, Options{})
	_, err := client.Dashboard(context.Background())
	if !domain.IsKind(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if msg := domain.UserMessage(err, ""); msg != domain.GenericFailureMessage {
		t.Fatalf("expected generic message, got %q", msg)
	}
}

type observerFake struct {
	mu         sync.Mutex
	operations []string
	statuses   []int
}

func (f *observerFake) ObserveRequest(operation string, statusCode int, _ time.Duration, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operations = append(f.operations, operation)
	f.statuses = append(f.statuses, statusCode)
}

func TestObserverReceivesOperationAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	observer := &observerFake{}
	client := New(server.URL, Options{Version: "v2", Observer: observer})
	if !strings.HasSuffix(client.BaseURL(), "/api/v2") {
		t.Fatalf("unexpected base url %s", client.BaseURL())
	}
	_, err := client.ListEnterprises(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected 5xx to map to ErrTemporary, got %v", err)
	}
	if len(observer.operations) != 1 || observer.operations[0] != "enterprises.list" || observer.statuses[0] != http.StatusBadGateway {
		t.Fatalf("unexpected observations %v %v", observer.operations, observer.statuses)
	}
}

func TestServiceUnavailableCarriesRetryAfterHint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"sucesso":false,"mensagem":"Manutenção programada."}`))
	})

	_, err := client.GetDocument(context.Background(), 5)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.RetryAfter != 3*time.Second {
		t.Fatalf("expected 3s hint, got %s", apiErr.RetryAfter)
	}
	class := classifyAPIError(err)
	if !class.Retryable || class.RetryAfter != 3*time.Second {
		t.Fatalf("unexpected classification %+v", class)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{raw: "", want: 0},
		{raw: "2", want: 2 * time.Second},
		{raw: "-4", want: 0},
		{raw: now.Add(90 * time.Second).Format(http.TimeFormat), want: 90 * time.Second},
		{raw: now.Add(-time.Minute).Format(http.TimeFormat), want: 0},
		{raw: "soon", want: 0},
	}
	for _, tc := range tests {
		if got := parseRetryAfter(tc.raw, now); got != tc.want {
			t.Fatalf("parseRetryAfter(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
