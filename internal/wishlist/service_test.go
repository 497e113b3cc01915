package wishlist

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dmancera/shopstream-backend/internal/criteria"
	"github.com/dmancera/shopstream-backend/internal/events"
	"github.com/dmancera/shopstream-backend/internal/products"
	"github.com/dmancera/shopstream-backend/internal/sysconfig"
	"github.com/dmancera/shopstream-backend/pkg/db/models"
	pkgerrors "github.com/dmancera/shopstream-backend/pkg/errors"
	"github.com/dmancera/shopstream-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type stubWishlistRepo struct {
	wishlist     *models.Wishlist
	findErr      error
	findErrLimit int // findErr only for the first N calls; 0 means every call
	created      *models.Wishlist
	createErr    error
	added        []uuid.UUID
	removed      []uuid.UUID
	findCalls    int
	createSeen   bool
}

func (s *stubWishlistRepo) FindByCustomer(context.Context, uuid.UUID, uuid.UUID) (*models.Wishlist, error) {
	s.findCalls++
	if s.findErr != nil && (s.findErrLimit == 0 || s.findCalls <= s.findErrLimit) {
		return nil, s.findErr
	}
	return s.wishlist, nil
}

func (s *stubWishlistRepo) Create(context.Context, uuid.UUID, uuid.UUID) (*models.Wishlist, error) {
	s.createSeen = true
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubWishlistRepo) AddProduct(_ context.Context, _ uuid.UUID, productID uuid.UUID) error {
	s.added = append(s.added, productID)
	return nil
}

func (s *stubWishlistRepo) RemoveProduct(_ context.Context, _ uuid.UUID, productID uuid.UUID) error {
	s.removed = append(s.removed, productID)
	return nil
}

type stubProductRepo struct {
	result      *products.ListingResult
	searchErr   error
	searched    *criteria.Criteria
	product     *models.Product
	findByIDErr error
}

func (s *stubProductRepo) Search(_ context.Context, crit *criteria.Criteria) (*products.ListingResult, error) {
	s.searched = crit
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.result, nil
}

func (s *stubProductRepo) FindByID(context.Context, uuid.UUID) (*models.Product, error) {
	if s.findByIDErr != nil {
		return nil, s.findByIDErr
	}
	return s.product, nil
}

type stubConfig struct {
	enabled bool
	err     error
	calls   int
}

func (s *stubConfig) Bool(_ context.Context, key string, _ uuid.UUID) (bool, error) {
	if key != sysconfig.ConfigKeyWishlistEnabled {
		return false, nil
	}
	s.calls++
	return s.enabled, s.err
}

type fixture struct {
	svc        Service
	wishlists  *stubWishlistRepo
	products   *stubProductRepo
	config     *stubConfig
	dispatcher *events.Dispatcher
	channel    ChannelContext
	wishlistID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	customerID := uuid.New()
	channelID := uuid.New()
	wishlistID := uuid.New()

	wishlists := &stubWishlistRepo{
		wishlist: &models.Wishlist{ID: wishlistID, CustomerID: customerID, SalesChannelID: channelID},
	}
	productRepo := &stubProductRepo{
		result:  &products.ListingResult{Items: []products.ProductSummary{{ID: uuid.New()}, {ID: uuid.New()}}},
		product: &models.Product{ID: uuid.New()},
	}
	cfg := &stubConfig{enabled: true}
	dispatcher := events.NewDispatcher(logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel}))

	svc, err := NewService(ServiceParams{
		WishlistRepo: wishlists,
		ProductRepo:  productRepo,
		Config:       cfg,
		Notifier:     dispatcher,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &fixture{
		svc:        svc,
		wishlists:  wishlists,
		products:   productRepo,
		config:     cfg,
		dispatcher: dispatcher,
		channel:    ChannelContext{SalesChannelID: channelID, CustomerID: &customerID},
		wishlistID: wishlistID,
	}
}

func TestLoadScopesCriteriaToWishlist(t *testing.T) {
	f := newFixture(t)

	crit := criteria.New()
	crit.AddFilter(criteria.Filter{Field: "name", Op: criteria.OpContains, Value: "kettle"})
	crit.AddSort("price", criteria.Ascending)

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	resp, err := f.svc.Load(context.Background(), req, f.channel, crit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.products.searched == nil {
		t.Fatal("search was not invoked")
	}
	filters := f.products.searched.Filters
	if len(filters) != 2 {
		t.Fatalf("expected caller filter plus wishlist filter, got %+v", filters)
	}
	last := filters[len(filters)-1]
	if last.Field != products.FieldWishlistID || last.Value != f.wishlistID {
		t.Fatalf("wishlist filter not appended last: %+v", last)
	}
	sorts := f.products.searched.Sorts
	if len(sorts) != 2 {
		t.Fatalf("expected caller sort plus wishlisted-at sort, got %+v", sorts)
	}
	if sorts[0].Field != "price" {
		t.Fatalf("caller sort lost precedence: %+v", sorts)
	}
	if sorts[1].Field != products.FieldWishlistedAt || sorts[1].Direction != criteria.Descending {
		t.Fatalf("expected descending wishlisted-at sort appended, got %+v", sorts[1])
	}

	if resp.Wishlist.ID != f.wishlistID {
		t.Fatalf("response carries wrong wishlist: %s", resp.Wishlist.ID)
	}
	if resp.Products != f.products.result {
		t.Fatal("response does not carry the search result")
	}
}

func TestLoadNilCriteriaDefaults(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	if _, err := f.svc.Load(context.Background(), req, f.channel, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.products.searched == nil || len(f.products.searched.Filters) != 1 {
		t.Fatalf("expected default criteria with wishlist filter, got %+v", f.products.searched)
	}
}

func TestLoadFeatureDisabled(t *testing.T) {
	f := newFixture(t)
	f.config.enabled = false

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	_, err := f.svc.Load(context.Background(), req, f.channel, criteria.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeFeatureDisabled {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if f.wishlists.findCalls != 0 {
		t.Fatal("wishlist lookup ran despite disabled feature")
	}
	if f.products.searched != nil {
		t.Fatal("search ran despite disabled feature")
	}
}

func TestLoadRequiresCustomer(t *testing.T) {
	f := newFixture(t)
	f.channel.CustomerID = nil

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	_, err := f.svc.Load(context.Background(), req, f.channel, criteria.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if f.config.calls != 1 {
		t.Fatal("feature flag was not checked before the auth guard")
	}
}

func TestLoadWishlistNotFound(t *testing.T) {
	f := newFixture(t)
	f.wishlists.findErr = gorm.ErrRecordNotFound

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	_, err := f.svc.Load(context.Background(), req, f.channel, criteria.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if f.products.searched != nil {
		t.Fatal("search ran without a wishlist")
	}
}

func TestLoadCriteriaSubscriberShapesQuery(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Subscribe(EventProductCriteria, func(_ context.Context, event events.Event) error {
		evt := event.(*ProductCriteriaEvent)
		evt.Criteria.AddFilter(criteria.Equals("is_active", true))
		return nil
	})

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	if _, err := f.svc.Load(context.Background(), req, f.channel, criteria.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen bool
	for _, filter := range f.products.searched.Filters {
		if filter.Field == "is_active" {
			seen = true
		}
	}
	if !seen {
		t.Fatal("subscriber filter did not reach the search")
	}
}

func TestLoadLoadedSubscriberRewritesResult(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Subscribe(EventProductsLoaded, func(_ context.Context, event events.Event) error {
		evt := event.(*ProductsLoadedEvent)
		evt.Result.Items = evt.Result.Items[:1]
		return nil
	})

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	resp, err := f.svc.Load(context.Background(), req, f.channel, criteria.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Products.Items) != 1 {
		t.Fatalf("subscriber rewrite lost, got %d items", len(resp.Products.Items))
	}
}

func TestLoadCriteriaSubscriberErrorAbortsSearch(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.Subscribe(EventProductCriteria, func(context.Context, events.Event) error {
		return pkgerrors.New(pkgerrors.CodeForbidden, "listing blocked")
	})

	req := httptest.NewRequest("GET", "/store-api/wishlist", nil)
	_, err := f.svc.Load(context.Background(), req, f.channel, criteria.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected subscriber error to propagate, got %v", err)
	}
	if f.products.searched != nil {
		t.Fatal("search ran after the pre-query subscriber failed")
	}
}

func TestAddProductCreatesWishlistOnFirstUse(t *testing.T) {
	f := newFixture(t)
	f.wishlists.findErr = gorm.ErrRecordNotFound
	f.wishlists.created = &models.Wishlist{ID: uuid.New()}
	productID := uuid.New()

	wl, err := f.svc.AddProduct(context.Background(), f.channel, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.wishlists.createSeen {
		t.Fatal("wishlist was not created")
	}
	if wl.ID != f.wishlists.created.ID {
		t.Fatalf("unexpected wishlist returned: %s", wl.ID)
	}
	if len(f.wishlists.added) != 1 || f.wishlists.added[0] != productID {
		t.Fatalf("product was not added: %v", f.wishlists.added)
	}
}

func TestAddProductConcurrentCreateFallsBackToRefind(t *testing.T) {
	f := newFixture(t)
	f.wishlists.findErr = gorm.ErrRecordNotFound
	f.wishlists.findErrLimit = 1
	f.wishlists.createErr = errors.New(`duplicate key value violates unique constraint "wishlists_customer_channel_key"`)
	productID := uuid.New()

	wl, err := f.svc.AddProduct(context.Background(), f.channel, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.wishlists.createSeen {
		t.Fatal("create was never attempted")
	}
	if f.wishlists.findCalls != 2 {
		t.Fatalf("expected a second lookup after the unique violation, got %d calls", f.wishlists.findCalls)
	}
	if wl.ID != f.wishlistID {
		t.Fatalf("expected the concurrently created wishlist, got %s", wl.ID)
	}
	if len(f.wishlists.added) != 1 || f.wishlists.added[0] != productID {
		t.Fatalf("product was not added: %v", f.wishlists.added)
	}
}

func TestAddProductUnknownProduct(t *testing.T) {
	f := newFixture(t)
	f.products.findByIDErr = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")

	_, err := f.svc.AddProduct(context.Background(), f.channel, uuid.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if len(f.wishlists.added) != 0 {
		t.Fatal("entry added for unknown product")
	}
}

func TestRemoveProductWithoutWishlist(t *testing.T) {
	f := newFixture(t)
	f.wishlists.findErr = gorm.ErrRecordNotFound

	err := f.svc.RemoveProduct(context.Background(), f.channel, uuid.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRemoveProductFeatureDisabled(t *testing.T) {
	f := newFixture(t)
	f.config.enabled = false

	err := f.svc.RemoveProduct(context.Background(), f.channel, uuid.New())

	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeFeatureDisabled {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
}
