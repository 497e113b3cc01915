package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmancera/shopstream-backend/api/middleware"
	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/internal/wishlist"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubWishlistService struct {
	loadResp   *wishlist.LoadResponse
	loadErr    error
	lastCrit   *criteria.Criteria
	lastChan   wishlist.ChannelContext
	addErr     error
	removeErr  error
	removedIDs []uuid.UUID
}

func (s *stubWishlistService) Load(_ context.Context, _ *http.Request, channel wishlist.ChannelContext, crit *criteria.Criteria) (*wishlist.LoadResponse, error) {
	s.lastChan = channel
	s.lastCrit = crit
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.loadResp, nil
}

func (s *stubWishlistService) AddProduct(_ context.Context, channel wishlist.ChannelContext, productID uuid.UUID) (*models.Wishlist, error) {
	s.lastChan = channel
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &models.Wishlist{ID: uuid.New()}, nil
}

func (s *stubWishlistService) RemoveProduct(_ context.Context, channel wishlist.ChannelContext, productID uuid.UUID) error {
	s.lastChan = channel
	s.removedIDs = append(s.removedIDs, productID)
	return s.removeErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func storefrontContext(channelID uuid.UUID, customerID *uuid.UUID) context.Context {
	ctx := middleware.WithSalesChannelID(context.Background(), channelID)
	if customerID != nil {
		ctx = middleware.WithCustomerID(ctx, *customerID)
	}
	return ctx
}

func TestWishlistLoadSuccess(t *testing.T) {
	channelID := uuid.New()
	customerID := uuid.New()
	stub := &stubWishlistService{
		loadResp: &wishlist.LoadResponse{
			Wishlist: models.Wishlist{ID: uuid.New(), CustomerID: customerID, SalesChannelID: channelID},
			Products: &products.ListingResult{Items: []products.ProductSummary{}},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/store-api/wishlist?limit=5", nil)
	req = req.WithContext(storefrontContext(channelID, &customerID))
	rec := httptest.NewRecorder()
	WishlistLoad(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastChan.SalesChannelID != channelID {
		t.Fatalf("channel not forwarded: %s", stub.lastChan.SalesChannelID)
	}
	if stub.lastChan.CustomerID == nil || *stub.lastChan.CustomerID != customerID {
		t.Fatalf("customer not forwarded: %v", stub.lastChan.CustomerID)
	}
	if stub.lastCrit == nil || stub.lastCrit.Limit != 5 {
		t.Fatalf("criteria not decoded: %+v", stub.lastCrit)
	}

	var envelope struct {
		Data wishlist.LoadResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data.Wishlist.ID != stub.loadResp.Wishlist.ID {
		t.Fatalf("response wishlist mismatch: %s", envelope.Data.Wishlist.ID)
	}
}

func TestWishlistLoadPostCriteria(t *testing.T) {
	channelID := uuid.New()
	customerID := uuid.New()
	stub := &stubWishlistService{
		loadResp: &wishlist.LoadResponse{Products: &products.ListingResult{}},
	}

	body := `{"filter":[{"field":"name","type":"contains","value":"kettle"}]}`
	req := httptest.NewRequest(http.MethodPost, "/store-api/wishlist", strings.NewReader(body))
	req = req.WithContext(storefrontContext(channelID, &customerID))
	rec := httptest.NewRecorder()
	WishlistLoad(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastCrit == nil || len(stub.lastCrit.Filters) != 1 {
		t.Fatalf("body criteria not decoded: %+v", stub.lastCrit)
	}
}

func TestWishlistLoadAnonymousPassedThrough(t *testing.T) {
	stub := &stubWishlistService{
		loadErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "customer login is required"),
	}

	req := httptest.NewRequest(http.MethodGet, "/store-api/wishlist", nil)
	req = req.WithContext(storefrontContext(uuid.New(), nil))
	rec := httptest.NewRecorder()
	WishlistLoad(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if stub.lastChan.CustomerID != nil {
		t.Fatal("anonymous request must not carry a customer")
	}
}

func TestWishlistLoadFeatureDisabled(t *testing.T) {
	stub := &stubWishlistService{
		loadErr: pkgerrors.New(pkgerrors.CodeFeatureDisabled, "wishlist is not activated for this sales channel"),
	}

	customerID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/store-api/wishlist", nil)
	req = req.WithContext(storefrontContext(uuid.New(), &customerID))
	rec := httptest.NewRecorder()
	WishlistLoad(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Error.Code != "FEATURE_DISABLED" {
		t.Fatalf("expected FEATURE_DISABLED, got %s", envelope.Error.Code)
	}
}

func TestWishlistLoadMissingChannelContext(t *testing.T) {
	stub := &stubWishlistService{}

	req := httptest.NewRequest(http.MethodGet, "/store-api/wishlist", nil)
	rec := httptest.NewRecorder()
	WishlistLoad(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without channel context, got %d", rec.Code)
	}
}

func TestWishlistAddProduct(t *testing.T) {
	channelID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()
	stub := &stubWishlistService{}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())
	ctx := storefrontContext(channelID, &customerID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodPost, "/store-api/wishlist/product/"+productID.String(), nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	WishlistAddProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestWishlistAddProductInvalidID(t *testing.T) {
	channelID := uuid.New()
	customerID := uuid.New()
	stub := &stubWishlistService{}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", "not-a-uuid")
	ctx := storefrontContext(channelID, &customerID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodPost, "/store-api/wishlist/product/not-a-uuid", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	WishlistAddProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWishlistRemoveProduct(t *testing.T) {
	channelID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()
	stub := &stubWishlistService{}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID.String())
	ctx := storefrontContext(channelID, &customerID)
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodDelete, "/store-api/wishlist/product/"+productID.String(), nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	WishlistRemoveProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.removedIDs) != 1 || stub.removedIDs[0] != productID {
		t.Fatalf("remove not forwarded: %v", stub.removedIDs)
	}
}
