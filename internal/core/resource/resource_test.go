package resource

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/cloud-resource-api/internal/core/domain"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/internal/log"
)

// templateResolver expands "{var}" placeholders in fixed route templates.
type templateResolver map[string]string

func (t templateResolver) Reverse(name string, vars map[string]string) (*url.URL, error) {
	tpl, ok := t[name]
	if !ok {
		return nil, errors.New(errors.CodeResourceNotFound, "no route "+name)
	}
	for k, v := range vars {
		tpl = strings.ReplaceAll(tpl, "{"+k+"}", v)
	}
	return &url.URL{Path: tpl}, nil
}

var testRoutes = templateResolver{
	"region-list":   "/regions/",
	"region-detail": "/regions/{pk}/",
	"zone-list":     "/regions/{region_pk}/zones/",
	"zone-detail":   "/regions/{region_pk}/zones/{pk}/",
}

type fixture struct {
	regions map[string]*domain.Region
	zones   map[string][]*domain.Zone
}

func newFixture() *fixture {
	return &fixture{
		regions: map[string]*domain.Region{
			"r1": {ID: "r1", Name: "region one"},
			"r2": {ID: "r2", Name: "region two"},
		},
		zones: map[string][]*domain.Zone{
			"r1": {{ID: "r1a", Name: "r1a", Region: "r1"}, {ID: "r1b", Name: "r1b", Region: "r1"}},
			"r2": {},
		},
	}
}

func (f *fixture) regionHandler(t *testing.T) *Handler {
	h, err := NewHandler(Definition[*domain.Region]{
		Kind:         domain.KindRegion,
		Capabilities: ReadOnly,
		Retrieval:    RetrieveDirect,
		List: func(*Request) ([]*domain.Region, error) {
			return []*domain.Region{f.regions["r1"], f.regions["r2"]}, nil
		},
		Get: func(_ *Request, id string) (*domain.Region, error) {
			return f.regions[id], nil
		},
	})
	require.NoError(t, err)
	return h
}

func (f *fixture) zoneHandler(t *testing.T) *Handler {
	h, err := NewHandler(Definition[*domain.Zone]{
		Kind:         domain.KindZone,
		Capabilities: ReadOnly,
		Retrieval:    RetrieveFilteredList,
		ParentParam:  "region_pk",
		VerifyParent: func(_ *Request, parentID string) error {
			if _, ok := f.regions[parentID]; !ok {
				return errors.NotFound(domain.KindRegion.String(), parentID)
			}
			return nil
		},
		List: func(req *Request) ([]*domain.Zone, error) {
			return f.zones[req.Var("region_pk")], nil
		},
	})
	require.NoError(t, err)
	return h
}

func newRequest(method, target, body, basename string, vars map[string]string) *Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return &Request{
		HTTP:     r,
		Vars:     vars,
		Basename: basename,
		URLs:     testRoutes,
		Logger:   log.NewNop(),
	}
}

func TestRetrieveObject_Direct(t *testing.T) {
	h := newFixture().regionHandler(t)

	obj, err := h.RetrieveObject(newRequest(http.MethodGet, "/regions/r1/", "", "region", map[string]string{LookupPK: "r1"}))
	require.NoError(t, err)
	assert.Equal(t, "r1", obj.ObjectID())

	_, err = h.RetrieveObject(newRequest(http.MethodGet, "/regions/nope/", "", "region", map[string]string{LookupPK: "nope"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))
}

func TestRetrieveObject_FilteredListMatchesList(t *testing.T) {
	h := newFixture().zoneHandler(t)
	vars := map[string]string{"region_pk": "r1"}

	items, err := h.ListObjects(newRequest(http.MethodGet, "/regions/r1/zones/", "", "zone", vars))
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, item := range items {
		obj, err := h.RetrieveObject(newRequest(http.MethodGet, "/", "", "zone", map[string]string{"region_pk": "r1", LookupPK: item.ObjectID()}))
		require.NoError(t, err)
		assert.Same(t, item, obj)
	}

	_, err = h.RetrieveObject(newRequest(http.MethodGet, "/", "", "zone", map[string]string{"region_pk": "r1", LookupPK: "r2a"}))
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))
}

func TestListObjects_MissingParentIsNotFound(t *testing.T) {
	h := newFixture().zoneHandler(t)

	_, err := h.ListObjects(newRequest(http.MethodGet, "/", "", "zone", map[string]string{"region_pk": "ghost"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))

	// An existing parent without children is an empty list, not an error.
	items, err := h.ListObjects(newRequest(http.MethodGet, "/", "", "zone", map[string]string{"region_pk": "r2"}))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestList_HyperlinkedCarriesParentVars(t *testing.T) {
	h := newFixture().zoneHandler(t)
	req := newRequest(http.MethodGet, "http://api.test/regions/r1/zones/", "", "zone", map[string]string{"region_pk": "r1"})

	resp, err := h.List(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	body, ok := resp.Body.([]any)
	require.True(t, ok)
	require.Len(t, body, 2)
	first := body[0].(map[string]any)
	assert.Equal(t, "http://api.test/regions/r1/zones/r1a/", first[FieldURL])
	assert.Equal(t, "r1", first["region_name"])
}

func TestNewHandler_RejectsIncompleteDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  Definition[*domain.Region]
	}{
		{"no kind", Definition[*domain.Region]{Capabilities: ReadOnly}},
		{"no capabilities", Definition[*domain.Region]{Kind: domain.KindRegion}},
		{"list without func", Definition[*domain.Region]{Kind: domain.KindRegion, Capabilities: CapList}},
		{"direct without get", Definition[*domain.Region]{
			Kind: domain.KindRegion, Capabilities: CapRetrieve, Retrieval: RetrieveDirect,
		}},
		{"nested without verifier", Definition[*domain.Region]{
			Kind: domain.KindRegion, Capabilities: CapList, ParentParam: "x_pk",
			List: func(*Request) ([]*domain.Region, error) { return nil, nil },
		}},
		{"duplicate action", Definition[*domain.Region]{
			Kind: domain.KindRegion, Capabilities: CapList,
			List: func(*Request) ([]*domain.Region, error) { return nil, nil },
			Actions: []Action{
				{Name: "a", Methods: []string{http.MethodPost}, Run: func(*Request, domain.Object) (*Response, error) { return nil, nil }},
				{Name: "a", Methods: []string{http.MethodPost}, Run: func(*Request, domain.Object) (*Response, error) { return nil, nil }},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHandler(tt.def)
			assert.Error(t, err)
		})
	}
}

func volumeHandler(t *testing.T, store map[string]*domain.Volume, perm ObjectPermission) *Handler {
	h, err := NewHandler(Definition[*domain.Volume]{
		Kind:         domain.KindVolume,
		Capabilities: Mutable,
		List: func(*Request) ([]*domain.Volume, error) {
			out := []*domain.Volume{}
			for _, v := range store {
				out = append(out, v)
			}
			return out, nil
		},
		Get: func(_ *Request, id string) (*domain.Volume, error) { return store[id], nil },
		Create: func(_ *Request, input any) (*domain.Volume, error) {
			spec := input.(*domain.VolumeSpec)
			v := &domain.Volume{ID: "vol-" + spec.Name, Name: spec.Name, SizeGB: spec.SizeGB, Zone: spec.Zone, Tags: spec.Tags}
			store[v.ID] = v
			return v, nil
		},
		Delete: func(_ *Request, current *domain.Volume) error {
			delete(store, current.ID)
			return nil
		},
		NewInput:   func() any { return &domain.VolumeSpec{} },
		Serializer: Plain{},
		Permission: perm,
	})
	require.NoError(t, err)
	return h
}

func TestCreate_ValidatesInput(t *testing.T) {
	store := map[string]*domain.Volume{}
	h := volumeHandler(t, store, nil)

	resp, err := h.Create(newRequest(http.MethodPost, "/volumes/", `{"name":"data","size":10,"zone_id":"z1"}`, "volume", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Contains(t, store, "vol-data")

	_, err = h.Create(newRequest(http.MethodPost, "/volumes/", `{"name":"bad","size":0}`, "volume", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "required", appErr.Fields["size"])
	assert.Equal(t, "required", appErr.Fields["zone_id"])

	_, err = h.Create(newRequest(http.MethodPost, "/volumes/", "", "volume", nil))
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))

	_, err = h.Create(newRequest(http.MethodPost, "/volumes/", `{"name":`, "volume", nil))
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

func TestDestroy_PermissionDeniedIsDistinctFromNotFound(t *testing.T) {
	store := map[string]*domain.Volume{
		"vol-a": {ID: "vol-a", Tags: map[string]string{"managed-by": "cloud-api"}},
		"vol-b": {ID: "vol-b"},
	}
	h := volumeHandler(t, store, TagGuard{Key: "managed-by", Value: "cloud-api"})

	_, err := h.Destroy(newRequest(http.MethodDelete, "/", "", "volume", map[string]string{LookupPK: "vol-b"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodePermissionDenied))
	assert.Equal(t, http.StatusForbidden, errors.HTTPStatus(err))
	assert.Contains(t, store, "vol-b")

	_, err = h.Destroy(newRequest(http.MethodDelete, "/", "", "volume", map[string]string{LookupPK: "vol-z"}))
	assert.Equal(t, http.StatusNotFound, errors.HTTPStatus(err))

	resp, err := h.Destroy(newRequest(http.MethodDelete, "/", "", "volume", map[string]string{LookupPK: "vol-a"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.NotContains(t, store, "vol-a")

	// Reads are never guarded.
	_, err = h.Retrieve(newRequest(http.MethodGet, "/", "", "volume", map[string]string{LookupPK: "vol-b"}))
	assert.NoError(t, err)
}

func TestDetailAction_RunsOnPermittedObject(t *testing.T) {
	var got domain.Object
	h, err := NewHandler(Definition[*domain.Region]{
		Kind:         domain.KindRegion,
		Capabilities: CapRetrieve,
		Get: func(_ *Request, id string) (*domain.Region, error) {
			if id == "r1" {
				return &domain.Region{ID: "r1"}, nil
			}
			return nil, nil
		},
		Actions: []Action{{
			Name: "ping", Detail: true, Methods: []string{http.MethodPost},
			Run: func(_ *Request, obj domain.Object) (*Response, error) {
				got = obj
				return &Response{Status: http.StatusAccepted}, nil
			},
		}},
	})
	require.NoError(t, err)

	op := h.ActionOperation(h.Actions()[0])
	resp, err := op(newRequest(http.MethodPost, "/", "", "region", map[string]string{LookupPK: "r1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "r1", got.ObjectID())

	_, err = op(newRequest(http.MethodPost, "/", "", "region", map[string]string{LookupPK: "r9"}))
	assert.True(t, errors.Is(err, errors.CodeResourceNotFound))
}

func TestSummarySingleton(t *testing.T) {
	ep, err := SummarySingleton(domain.KindCompute, Links{"regions": "region-list"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindCompute, ep.Kind())

	resp, err := ep.Get(newRequest(http.MethodGet, "https://api.test/compute/", "", "compute", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"regions": "https://api.test/regions/"}, resp.Body)
}

func TestAbsoluteURL_HonoursForwardedProto(t *testing.T) {
	req := newRequest(http.MethodGet, "http://api.test/", "", "region", nil)
	req.HTTP.Header.Set("X-Forwarded-Proto", "https")

	u, err := req.AbsoluteURL("region-detail", map[string]string{LookupPK: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.test/regions/r1/", u)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.InvalidInput("bad", map[string]string{"name": "required"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"bad","code":"INVALID_INPUT","fields":{"name":"required"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New(errors.CodeInternal, "secret detail"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}
