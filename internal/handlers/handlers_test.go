package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pottyspotty/internal/models"
	"pottyspotty/internal/store"
	"pottyspotty/internal/store/storetest"
	"pottyspotty/internal/submission"
)

type stubGeocoder struct {
	calls int
	point *models.GeoPoint
}

func (g *stubGeocoder) Geocode(context.Context, models.Address) (*models.GeoPoint, error) {
	g.calls++
	return g.point, nil
}

func restroomAt(name, zip string, lat, lng float64, accessible bool) models.Restroom {
	p, err := models.NewGeoPoint(lng, lat)
	if err != nil {
		panic(err)
	}
	return models.Restroom{
		Name:         name,
		Address:      models.Address{Street: name + " St", City: "Nashville", State: "TN", ZipCode: zip},
		Location:     &p,
		IsAccessible: accessible,
	}
}

type testServer struct {
	engine *gin.Engine
	store  *storetest.Recorder
	geo    *stubGeocoder
}

func newTestServer(t *testing.T, seed ...models.Restroom) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := storetest.Wrap(store.NewMemoryStore(seed...))
	p, err := models.NewGeoPoint(-86.7816, 36.1627)
	require.NoError(t, err)
	geo := &stubGeocoder{point: &p}

	logger := zap.NewNop()
	svc := submission.NewService(st, geo, logger)
	return &testServer{engine: NewRouter(st, svc, logger), store: st, geo: geo}
}

func (ts *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decodeRestrooms(t *testing.T, w *httptest.ResponseRecorder) []models.Restroom {
	t.Helper()
	var out []models.Restroom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetRestroomsListsAll(t *testing.T) {
	ts := newTestServer(t, restroomAt("A", "", 36.1, -86.7, false), restroomAt("B", "", 40, -86.5, false))

	for _, path := range []string{"/restrooms", "/api/restrooms"} {
		w := ts.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, decodeRestrooms(t, w), 2)
	}
}

func TestGetRestroomsEmptyListIsArray(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/restrooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestGetRestroomsWithBounds(t *testing.T) {
	ts := newTestServer(t, restroomAt("North", "", 40, -86.5, false), restroomAt("Inside", "", 36.5, -86.5, false))

	w := ts.do(http.MethodGet, "/restrooms?bounds=36,37,-87,-86", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeRestrooms(t, w)
	require.Len(t, got, 1)
	require.Equal(t, "Inside", got[0].Name)

	w = ts.do(http.MethodGet, "/restrooms/in-bounds?minLat=36&maxLat=37&minLng=-87&maxLng=-86", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeRestrooms(t, w), 1)
}

func TestGetRestroomsBadBounds(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/restrooms?bounds=36,37,-87",
		"/restrooms?bounds=36,abc,-87,-86",
		"/restrooms?bounds=",
		"/restrooms/in-bounds?minLat=36&maxLat=37&minLng=-87",
		"/restrooms/in-bounds?minLat=37&maxLat=36&minLng=-87&maxLng=-86",
	} {
		w := ts.do(http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		require.Equal(t, codeInvalidArgument, decodeError(t, w)["error"], target)
	}
}

func TestGetNearbyRestrooms(t *testing.T) {
	ts := newTestServer(t,
		restroomAt("Far", "", 36.30, -86.78, false),
		restroomAt("Close", "", 36.161, -86.78, false),
		restroomAt("Mid", "", 36.18, -86.78, false),
	)

	w := ts.do(http.MethodGet, "/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeRestrooms(t, w)
	require.Len(t, got, 2)
	require.Equal(t, "Close", got[0].Name)
	require.Equal(t, "Mid", got[1].Name)

	w = ts.do(http.MethodGet, "/restrooms/nearby?lat=36.16&lng=-86.78", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeRestrooms(t, w), 2)
}

func TestGetNearbyRequiresLatLng(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{
		"/restrooms/nearby?lng=-86.78",
		"/restrooms/nearby?lat=36.16",
		"/restrooms/nearby?lat=x&lng=-86.78",
		"/restrooms/nearby?lat=36.16&lng=-86.78&limit=0",
		"/restrooms/nearby?lat=NaN&lng=-86.78",
		"/restrooms/nearby?lat=36.16&lng=Inf",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=-1",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=0",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=NaN",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=Inf",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=-Inf",
		"/restrooms/nearby?lat=36.16&lng=-86.78&maxDistance=abc",
	} {
		w := ts.do(http.MethodGet, target, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, target)
		require.Equal(t, codeInvalidArgument, decodeError(t, w)["error"], target)
	}
	require.Equal(t, 0, ts.store.Calls("ListNearby"))
}

func TestCheckExists(t *testing.T) {
	seed := models.Restroom{Name: "Starbucks", Address: models.Address{Street: "123 Main St", City: "Nashville", State: "TN"}}
	ts := newTestServer(t, seed)

	w := ts.do(http.MethodGet, "/restrooms/check-exists?name=STARBUCKS&street=123+main+st&city=nashville", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = ts.do(http.MethodGet, "/restrooms/check-exists?name=Starbucks&street=9+Elm&city=Nashville", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"exists":false}`, w.Body.String())

	w = ts.do(http.MethodGet, "/restrooms/check-exists?name=Starbucks&city=Nashville", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRestrooms(t *testing.T) {
	ts := newTestServer(t,
		restroomAt("Library", "37219", 36.16, -86.78, true),
		restroomAt("Cafe", "37208", 36.17, -86.79, false),
		restroomAt("Gym", "37064", 36.18, -86.80, false),
	)

	w := ts.do(http.MethodGet, "/restrooms/search?q=accessible+37208", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeRestrooms(t, w)
	require.Len(t, got, 2)
	require.Equal(t, "Library", got[0].Name)
	require.Equal(t, "Cafe", got[1].Name)

	w = ts.do(http.MethodGet, "/restrooms/search?q=", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func submissionBody() map[string]any {
	return map[string]any{
		"name": "Starbucks",
		"address": map[string]any{
			"street":  "123 Main St",
			"city":    "Nashville",
			"state":   "TN",
			"zipCode": "37208",
		},
		"isAccessible":     true,
		"isGenderNeutral":  false,
		"hasChangingTable": true,
		"comments":         "Code on receipt",
	}
}

func TestCreateRestroom(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/restrooms", submissionBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Restroom
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, created.ID.IsZero())
	require.Equal(t, [2]float64{-86.7816, 36.1627}, created.Location.Coordinates)
	require.True(t, created.HasChangingTable)
	require.NotContains(t, w.Body.String(), "dedupKey")
	require.Equal(t, 1, ts.geo.calls)
}

func TestCreateRestroomDuplicate(t *testing.T) {
	ts := newTestServer(t, models.Restroom{
		Name:    "STARBUCKS",
		Address: models.Address{Street: "123 main st", City: "NASHVILLE", State: "TN"},
	})

	w := ts.do(http.MethodPost, "/restrooms", submissionBody())
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, codeDuplicateRestroom, decodeError(t, w)["error"])
	require.Equal(t, 0, ts.geo.calls)
}

func TestCreateRestroomMissingFields(t *testing.T) {
	ts := newTestServer(t)

	body := submissionBody()
	delete(body, "name")
	w := ts.do(http.MethodPost, "/restrooms", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, codeMissingFields, resp["error"])
	require.Contains(t, resp["message"], "name")

	body = submissionBody()
	body["address"] = map[string]any{"street": "123 Main St", "city": "Nashville"}
	w = ts.do(http.MethodPost, "/restrooms", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeError(t, w)["message"], "address.state")

	body = submissionBody()
	body["name"] = "   "
	w = ts.do(http.MethodPost, "/restrooms", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, codeMissingFields, decodeError(t, w)["error"])

	w = ts.do(http.MethodPost, "/restrooms", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, 0, ts.geo.calls)
}

func TestCreateRestroomGeocodeFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.geo.point = nil

	w := ts.do(http.MethodPost, "/restrooms", submissionBody())
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	require.Equal(t, codeGeocodeFailure, resp["error"])
	require.Contains(t, resp["message"], "Unable to find the location")
	require.Equal(t, 0, ts.store.Calls("Insert"))
}

func TestDatabaseUnavailable(t *testing.T) {
	ts := newTestServer(t)
	ts.store.FailWith(errors.New("no reachable servers"))

	w := ts.do(http.MethodGet, "/restrooms", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Equal(t, codeDatabaseUnavailable, decodeError(t, w)["error"])

	w = ts.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestClassify(t *testing.T) {
	status, code, _ := classify(store.ErrPersistence)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, codePersistenceError, code)

	status, code, _ = classify(errors.New("unexpected"))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, codeInternal, code)

	status, code, _ = classify(&submission.FieldError{Err: submission.ErrInvalidInput, Fields: []string{"comments"}})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, codeValidationFailed, code)
}

func TestFieldPath(t *testing.T) {
	require.Equal(t, "address.street", fieldPath("Input.Address.Street"))
	require.Equal(t, "name", fieldPath("Input.Name"))
}
