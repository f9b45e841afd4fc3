package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/internal/observability"
	"github.com/smallbiznis/myinvois/internal/tin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComplianceService struct {
	industries  []industrydomain.IndustryCode
	lastFilter  compliancedomain.IndustryFilter
	lastConsol  compliancedomain.ConsolidationRequest
	evaluateErr error
}

func (f *fakeComplianceService) ValidateTIN(ctx context.Context, value string) tin.Result {
	_ = ctx
	return tin.Validate(value)
}

func (f *fakeComplianceService) LookupIndustry(ctx context.Context, code string) (*industrydomain.IndustryCode, error) {
	_ = ctx
	for _, item := range f.industries {
		if item.Code == code {
			return &item, nil
		}
	}
	return nil, compliancedomain.ErrIndustryNotFound
}

func (f *fakeComplianceService) SearchIndustries(ctx context.Context, query string) []industrydomain.IndustryCode {
	_ = ctx
	_ = query
	return f.industries
}

func (f *fakeComplianceService) ListIndustries(ctx context.Context, filter compliancedomain.IndustryFilter) []industrydomain.IndustryCode {
	_ = ctx
	f.lastFilter = filter
	return f.industries
}

func (f *fakeComplianceService) CheckConsolidation(ctx context.Context, req compliancedomain.ConsolidationRequest) (*compliancedomain.ConsolidationResponse, error) {
	_ = ctx
	f.lastConsol = req
	if req.LineCount < 0 {
		return nil, compliancedomain.ErrInvalidTransaction
	}
	return &compliancedomain.ConsolidationResponse{IndustryCode: req.IndustryCode, Allowed: true}, nil
}

func (f *fakeComplianceService) Evaluate(ctx context.Context, req compliancedomain.EvaluateRequest) (*compliancedomain.Report, error) {
	_ = ctx
	if f.evaluateErr != nil {
		return nil, f.evaluateErr
	}
	if req.Invoice == nil {
		return nil, fmt.Errorf("%w: %w", compliancedomain.ErrInvalidRequest, compliancedomain.ErrMissingInvoice)
	}
	return &compliancedomain.Report{
		ID:              "1",
		InvoiceNumber:   req.Invoice.InvoiceNumber,
		RegistryVersion: "2026.10",
		RuleCount:       17,
		Findings:        []compliancedomain.ValidationResult{},
		Score:           100,
	}, nil
}

func newTestRouter(svc compliancedomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := &Server{engine: gin.New(), complianceSvc: svc}
	srv.engine.Use(ErrorHandlingMiddleware())
	srv.registerAPIRoutes()
	srv.registerFallback()
	return srv.engine
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var decoded map[string]any
	if resp.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func errorType(t *testing.T, body map[string]any) (string, []any) {
	t.Helper()
	payload, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error payload, got %v", body)
	errs, _ := payload["errors"].([]any)
	return payload["type"].(string), errs
}

func testIndustries() []industrydomain.IndustryCode {
	return []industrydomain.IndustryCode{
		{Code: "47190", Description: "Other retail sale in non-specialized stores", Category: "Retail Trade", Section: "G", AllowsB2CConsolidation: true},
		{Code: "56101", Description: "Restaurants and restaurant cum night clubs", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true},
		{Code: "56103", Description: "Fast-food restaurants", Category: "Food & Beverage", Section: "I", AllowsB2CConsolidation: true},
	}
}

func TestValidateTINHandler(t *testing.T) {
	router := newTestRouter(&fakeComplianceService{})

	resp, body := doRequest(t, router, http.MethodPost, "/api/compliance/tin/validate", `{"tin":"C2581473690"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_valid"])
	assert.Equal(t, "corporate", data["type"])

	resp, body = doRequest(t, router, http.MethodPost, "/api/compliance/tin/validate", `{"tin":`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	typ, _ := errorType(t, body)
	assert.Equal(t, "validation_error", typ)
}

func TestListIndustriesHandlerPaginates(t *testing.T) {
	svc := &fakeComplianceService{industries: testIndustries()}
	router := newTestRouter(svc)

	resp, body := doRequest(t, router, http.MethodGet, "/api/compliance/industries?category=Food&section=I&page_size=2", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Food", svc.lastFilter.Category)
	assert.Equal(t, "I", svc.lastFilter.Section)

	data := body["data"].([]any)
	require.Len(t, data, 2)
	info := body["page_info"].(map[string]any)
	assert.Equal(t, true, info["has_more"])
	token := info["next_page_token"].(string)

	resp, body = doRequest(t, router, http.MethodGet, "/api/compliance/industries?page_size=2&page_token="+token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	data = body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "56103", data[0].(map[string]any)["code"])

	resp, body = doRequest(t, router, http.MethodGet, "/api/compliance/industries?page_token=***", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	_, errs := errorType(t, body)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_page_token", errs[0].(map[string]any)["code"])
}

func TestGetIndustryHandler(t *testing.T) {
	router := newTestRouter(&fakeComplianceService{industries: testIndustries()})

	resp, body := doRequest(t, router, http.MethodGet, "/api/compliance/industries/56101", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "56101", body["data"].(map[string]any)["code"])

	resp, body = doRequest(t, router, http.MethodGet, "/api/compliance/industries/99999", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	typ, _ := errorType(t, body)
	assert.Equal(t, "not_found", typ)
}

func TestCheckConsolidationHandler(t *testing.T) {
	svc := &fakeComplianceService{}
	router := newTestRouter(svc)

	resp, body := doRequest(t, router, http.MethodPost, "/api/compliance/consolidation/check",
		`{"industry_code":"47190","line_count":12,"amount":48000.50}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, body["data"].(map[string]any)["allowed"])
	assert.Equal(t, compliancedomain.Amount("48000.50"), svc.lastConsol.Amount)

	resp, body = doRequest(t, router, http.MethodPost, "/api/compliance/consolidation/check",
		`{"industry_code":"47190","line_count":-1}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	_, errs := errorType(t, body)
	require.Len(t, errs, 1)
	assert.Equal(t, "invalid_transaction_count", errs[0].(map[string]any)["code"])
}

func TestEvaluateInvoiceHandler(t *testing.T) {
	router := newTestRouter(&fakeComplianceService{})

	resp, body := doRequest(t, router, http.MethodPost, "/api/compliance/invoices/evaluate",
		`{"invoice":{"invoice_number":"INV-1","einvoice_type":"01","issue_date":"2026-03-15"},"lines":[],"organization":{"tin":"C2581473690"}}`)
	require.Equal(t, http.StatusOK, resp.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "INV-1", data["invoice_number"])
	assert.Equal(t, float64(100), data["score"])

	resp, body = doRequest(t, router, http.MethodPost, "/api/compliance/invoices/evaluate", `{"lines":[]}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	_, errs := errorType(t, body)
	require.Len(t, errs, 1)
	assert.Equal(t, "missing_invoice", errs[0].(map[string]any)["code"])
	assert.Equal(t, "invoice", errs[0].(map[string]any)["field"])
}

func TestEvaluateInvoiceHandlerInternalError(t *testing.T) {
	router := newTestRouter(&fakeComplianceService{evaluateErr: assert.AnError})

	resp, body := doRequest(t, router, http.MethodPost, "/api/compliance/invoices/evaluate", `{"invoice":{"invoice_number":"INV-1"}}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	typ, _ := errorType(t, body)
	assert.Equal(t, "internal_error", typ)
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(&fakeComplianceService{})
	resp, body := doRequest(t, router, http.MethodGet, "/api/compliance/unknown", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	typ, _ := errorType(t, body)
	assert.Equal(t, "not_found", typ)
}

func TestNewEngineHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewEngine(observability.Config{Environment: "test", PrometheusEnabled: true}, nil)

	resp, body := doRequest(t, engine, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", body["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(compliancedomain.ErrIndustryNotFound)
	assert.Equal(t, "not_found", typ)
	assert.Equal(t, "not_found", code)

	status, payload := mapError(ErrRateLimited)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", payload.Type)

	typ, code = classifyErrorForLog(compliancedomain.ErrInvalidIndustry)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "invalid_industry_code", code)
}
