package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pulsepoint/pulsepoint-api/internal/core"
	"github.com/pulsepoint/pulsepoint-api/internal/data"
	"github.com/pulsepoint/pulsepoint-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postRequestBody() map[string]any {
	return map[string]any{
		"blood_type":        "O-",
		"quantity":          3,
		"quantity_unit":     "pints",
		"urgency":           "medium",
		"deadline":          time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"medical_condition": "Postpartum hemorrhage",
		"location":          "Lagos University Teaching Hospital",
		"contact_person":    "Dr. Bello",
		"contact_phone":     "+2348011112222",
		"contact_email":     "bloodbank@example.com",
	}
}

func TestCreateRequest(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, hospitalUser())

	f.requests.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *model.PostRequestInput) (*model.BloodRequest, error) {
			// the posting hospital comes from the session
			assert.Equal(t, "hosp-1", in.HospitalID)
			assert.Equal(t, model.BloodONeg, in.BloodType)
			return &model.BloodRequest{
				ID:         "req-1",
				HospitalID: in.HospitalID,
				BloodType:  in.BloodType,
				Urgency:    in.Urgency,
				Status:     model.RequestStatusActive,
			}, nil
		})

	rec := f.doJSON(t, http.MethodPost, "/api/requests", postRequestBody(), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "req-1", decodeBody(t, rec)["id"])
}

func TestCreateRequest_RequiresHospital(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.doJSON(t, http.MethodPost, "/api/requests", postRequestBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookie := f.loginAs(t, donorUser())
	rec = f.doJSON(t, http.MethodPost, "/api/requests", postRequestBody(), cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListRequests_AnonymousSeesActiveBoard(t *testing.T) {
	f := newRouterFixture(t)

	f.requests.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error) {
			require.NotNil(t, opts.Status)
			assert.Equal(t, model.RequestStatusActive, *opts.Status)
			assert.Nil(t, opts.HospitalID)
			return []*model.BloodRequest{{ID: "req-1", Status: model.RequestStatusActive}}, nil
		})

	rec := f.doJSON(t, http.MethodGet, "/api/requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestListRequests_HospitalSeesOwnHistory(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, hospitalUser())

	f.requests.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error) {
			require.NotNil(t, opts.HospitalID)
			assert.Equal(t, "hosp-1", *opts.HospitalID)
			assert.Nil(t, opts.Status)
			return nil, nil
		})

	rec := f.doJSON(t, http.MethodGet, "/api/requests", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	// an empty result still responds with a list shape
	assert.Equal(t, float64(0), decodeBody(t, rec)["count"])
}

func TestListRequests_Filters(t *testing.T) {
	f := newRouterFixture(t)

	f.requests.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, opts model.RequestsListOptions) ([]*model.BloodRequest, error) {
			require.NotNil(t, opts.BloodType)
			assert.Equal(t, model.BloodONeg, *opts.BloodType)
			require.NotNil(t, opts.Urgency)
			assert.Equal(t, model.UrgencyCritical, *opts.Urgency)
			assert.Equal(t, "deadline", opts.Sort)
			assert.Equal(t, "asc", opts.Dir)
			assert.Equal(t, 10, opts.Limit)
			return nil, nil
		})

	rec := f.doJSON(t, http.MethodGet,
		"/api/requests?blood_type=O-&urgency=critical&sort=deadline:asc&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRequest(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, donorUser())

	f.requests.EXPECT().
		GetByID(gomock.Any(), "req-1").
		Return(&model.BloodRequest{ID: "req-1", Status: model.RequestStatusActive}, nil)

	rec := f.doJSON(t, http.MethodGet, "/api/requests/req-1", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", decodeBody(t, rec)["id"])

	f.requests.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, data.ErrRequestNotFound)
	rec = f.doJSON(t, http.MethodGet, "/api/requests/missing", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelRequest(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, hospitalUser())

	f.requests.EXPECT().
		UpdateStatus(gomock.Any(), core.UpdateRequestStatusParams{
			ID:         "req-1",
			HospitalID: "hosp-1",
			Status:     model.RequestStatusCancelled,
		}).
		Return(true, nil)

	rec := f.doJSON(t, http.MethodDelete, "/api/requests/req-1", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelRequest_NotOwned(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, hospitalUser())

	f.requests.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(false, nil)

	rec := f.doJSON(t, http.MethodDelete, "/api/requests/req-9", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFulfillRequest(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.loginAs(t, hospitalUser())

	f.requests.EXPECT().
		UpdateStatus(gomock.Any(), core.UpdateRequestStatusParams{
			ID:         "req-1",
			HospitalID: "hosp-1",
			Status:     model.RequestStatusFulfilled,
		}).
		Return(true, nil)

	rec := f.doJSON(t, http.MethodPost, "/api/requests/req-1/fulfill", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}
