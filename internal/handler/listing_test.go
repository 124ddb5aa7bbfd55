package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdir/business-listing-api/internal/model"
	"github.com/bizdir/business-listing-api/internal/repository"
)

// fakeListingStore keeps listings in memory and enforces the same
// one-listing-per-owner rule as the SQL store.
type fakeListingStore struct {
	listings map[string]*model.Listing
	nextID   int
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: map[string]*model.Listing{}}
}

func (s *fakeListingStore) Create(_ context.Context, l *model.Listing) error {
	if l.Kind.SoleOwnership() {
		for _, existing := range s.listings {
			if existing.OwnerID == l.OwnerID && existing.Kind.SoleOwnership() {
				return repository.ErrDuplicateOwnership
			}
		}
	}
	s.nextID++
	l.ID = string(rune('a' + s.nextID - 1))
	cp := *l
	s.listings[l.ID] = &cp
	return nil
}

func (s *fakeListingStore) GetByID(_ context.Context, id string) (*model.Listing, error) {
	l, ok := s.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *fakeListingStore) GetOwn(_ context.Context, ownerID uint64) (*model.Listing, error) {
	for _, l := range s.listings {
		if l.OwnerID == ownerID && l.Kind.SoleOwnership() {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeListingStore) Update(_ context.Context, l *model.Listing) error {
	if _, ok := s.listings[l.ID]; !ok {
		return repository.ErrListingNotFound
	}
	cp := *l
	s.listings[l.ID] = &cp
	return nil
}

func (s *fakeListingStore) Delete(_ context.Context, id string) error {
	delete(s.listings, id)
	return nil
}

func (s *fakeListingStore) ListCurated(context.Context) ([]*model.Listing, error) {
	var out []*model.Listing
	for _, l := range s.listings {
		if l.Kind.Curated() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeListingStore) ListAllWithOwners(context.Context) ([]*model.ListingWithOwner, error) {
	return nil, nil
}

func (s *fakeListingStore) Search(context.Context, repository.SearchFilter) ([]*model.Listing, error) {
	return nil, nil
}

func invokeJSON(t *testing.T, h echo.HandlerFunc, method, path string, body any, uid uint64, role string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&rd).Encode(body))
	}
	e := echo.New()
	req := httptest.NewRequest(method, path, &rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	c.Set("role", role)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestCreateListingReturnsMessageEnvelope(t *testing.T) {
	h := NewListingHandler(newFakeListingStore())
	rec := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 7, "USER", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "listing created", body["message"])

	listing, ok := body["listing"].(map[string]any)
	require.True(t, ok, "response must nest the listing under \"listing\"")
	assert.Equal(t, "Joe's Diner", listing["businessName"])
	assert.Equal(t, "SELF", listing["kind"])
	assert.Equal(t, "austin/cafe-bar/joe-s-diner", listing["slug"])
}

func TestCreateListingRejectsSecondOwnListing(t *testing.T) {
	store := newFakeListingStore()
	h := NewListingHandler(store)

	first := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 7, "USER", nil)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 7, "USER", nil)
	assert.Equal(t, http.StatusForbidden, second.Code)
	assert.Len(t, store.listings, 1, "the rejected creation must not be stored")

	// A different owner is unaffected.
	other := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 8, "USER", nil)
	assert.Equal(t, http.StatusCreated, other.Code)
}

func TestAdminCreatesUnlimitedCuratedListings(t *testing.T) {
	store := newFakeListingStore()
	h := NewAdminListingHandler(store)

	for i := 0; i < 3; i++ {
		rec := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings/admin", fullBody(), 1, "ADMIN", nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "listing created", body["message"])
	}
	curated, err := store.ListCurated(context.Background())
	require.NoError(t, err)
	assert.Len(t, curated, 3)
}

func TestUpdateListingReturnsEnvelopeAndMergesFields(t *testing.T) {
	store := newFakeListingStore()
	h := NewListingHandler(store)

	created := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 7, "USER", nil)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["listing"].(map[string]any)["id"].(string)

	rec := invokeJSON(t, h.Update, http.MethodPut, "/v1/listings/"+id,
		map[string]string{"phone": "555-0202"}, 7, "USER", map[string]string{"id": id})
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "listing updated", body["message"])
	listing := body["listing"].(map[string]any)
	assert.Equal(t, "555-0202", listing["phone"])
	assert.Equal(t, "Joe's Diner", listing["businessName"], "absent fields keep their values")
}

func TestUpdateListingForbiddenForNonOwner(t *testing.T) {
	store := newFakeListingStore()
	h := NewListingHandler(store)

	created := invokeJSON(t, h.Create, http.MethodPost, "/v1/listings", fullBody(), 7, "USER", nil)
	id := decodeBody(t, created)["listing"].(map[string]any)["id"].(string)

	rec := invokeJSON(t, h.Update, http.MethodPut, "/v1/listings/"+id,
		map[string]string{"phone": "555-0202"}, 8, "USER", map[string]string{"id": id})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin may edit any listing.
	admin := invokeJSON(t, h.Update, http.MethodPut, "/v1/listings/"+id,
		map[string]string{"phone": "555-0303"}, 1, "ADMIN", map[string]string{"id": id})
	assert.Equal(t, http.StatusOK, admin.Code)
}
