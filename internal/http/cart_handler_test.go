package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
	"github.com/PRASHANT-tech870/Embroidery/internal/catalog"
)

type repoMock struct {
	design *catalog.Design
	err    error
}

func (r repoMock) GetDesign(context.Context, string) (*catalog.Design, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.design, nil
}

func (r repoMock) ListDesigns(context.Context) ([]*catalog.Design, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []*catalog.Design{r.design}, nil
}

type cacheMock struct{}

func (cacheMock) Get(context.Context, string) (*catalog.Design, error) {
	return nil, catalog.ErrCacheMiss
}
func (cacheMock) Set(context.Context, *catalog.Design) error { return nil }
func (cacheMock) Delete(context.Context, string) error       { return nil }

func catalogService(design *catalog.Design, err error) *catalog.Service {
	return catalog.NewService(repoMock{design: design, err: err}, cacheMock{})
}

func testDesign() *catalog.Design {
	return &catalog.Design{
		ID:         "design-1",
		Name:       "Nature Collection",
		PriceRange: "500-2000",
		PageCount:  54,
	}
}

func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
	return r.WithContext(ctx)
}

func TestAddItem_Success(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	body, _ := json.Marshal(AddItemRequestDTO{DesignID: "design-1", Page: 7, Quantity: 2})
	request := httptest.NewRequest("POST", "/", bytes.NewReader(body))
	request = withSession(request, "session-1")
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var response CartResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Lines, 1)
	assert.Equal(t, "design-1", response.Lines[0].DesignID)
	assert.Equal(t, 7, response.Lines[0].Page)
	assert.Equal(t, 2, response.Lines[0].Quantity)
	assert.Equal(t, "Nature Collection (Page 7)", response.Lines[0].Name)
	assert.Equal(t, response.Lines[0].UnitPrice*2, response.Total)

	// the frozen price lands in the session's cart
	assert.Equal(t, 1, sessions.Get("session-1").Len())
}

func TestAddItem_PageOutOfRange(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	body, _ := json.Marshal(AddItemRequestDTO{DesignID: "design-1", Page: 500, Quantity: 1})
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "session-1")
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Zero(t, sessions.Get("session-1").Len())
}

func TestAddItem_DesignNotFound(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(nil, catalog.ErrDesignNotFound))

	body, _ := json.Marshal(AddItemRequestDTO{DesignID: "missing", Page: 1, Quantity: 1})
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "session-1")
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddItem_InvalidBody(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader([]byte("{"))), "session-1")
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_ZeroQuantityRejected(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	body, _ := json.Marshal(AddItemRequestDTO{DesignID: "design-1", Page: 1, Quantity: 0})
	request := withSession(httptest.NewRequest("POST", "/", bytes.NewReader(body)), "session-1")
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func chiRequest(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateQuantity_FloorOfOneAtBoundary(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	sessions.Get("session-1").Add(cart.Line{DesignID: "design-1", Page: 7, UnitPrice: 50000, Quantity: 2})
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 0})
	request := httptest.NewRequest("PUT", "/", bytes.NewReader(body))
	request = withSession(request, "session-1")
	request = chiRequest(request, map[string]string{"design_id": "design-1", "page": "7"})
	recorder := httptest.NewRecorder()

	handler.UpdateQuantity(recorder, request)

	// the boundary rejects it; the store is never asked to go below 1
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 2, sessions.Get("session-1").Lines()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	sessions.Get("session-1").Add(cart.Line{DesignID: "design-1", Page: 7, UnitPrice: 50000, Quantity: 1})
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	request := httptest.NewRequest("DELETE", "/", nil)
	request = withSession(request, "session-1")
	request = chiRequest(request, map[string]string{"design_id": "design-1", "page": "7"})
	recorder := httptest.NewRecorder()

	handler.RemoveItem(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Zero(t, sessions.Get("session-1").Len())
}

func TestGetCart_EmptyCartHasEmptyLines(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, catalogService(testDesign(), nil))

	request := withSession(httptest.NewRequest("GET", "/", nil), "session-1")
	recorder := httptest.NewRecorder()

	handler.GetCart(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"lines":[],"total":0}`, recorder.Body.String())
}
