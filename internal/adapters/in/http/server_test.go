package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpapi "bolpurmart/internal/adapters/in/http"
	"bolpurmart/internal/core/application/session"
	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/live"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	goodToken  = "good-token"
	serviceKey = "service-secret"
)

var (
	partnerID = kernel.MustIDFromString("P1")
	now       = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
)

type commandFunc[C any] func(context.Context, C) error

func (f commandFunc[C]) Handle(ctx context.Context, cmd C) error { return f(ctx, cmd) }

type queryFunc[Q, R any] func(context.Context, Q) (R, error)

func (f queryFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) { return f(ctx, q) }

type fakeProvider struct {
	ports.SessionProvider

	mu         sync.Mutex
	signInErr  error
	signedOut  []string
	signOutErr error
}

func (p *fakeProvider) Verify(_ context.Context, token string) (ports.Identity, error) {
	if token != goodToken {
		return ports.Identity{}, errs.NewAuthError(errs.AuthCodeInvalidToken, "bad token")
	}
	return ports.Identity{PartnerID: partnerID, Email: "ravi@example.com", Token: token, ExpiresAt: now.Add(time.Hour)}, nil
}

func (p *fakeProvider) SignIn(_ context.Context, email, _ string) (ports.Identity, error) {
	if p.signInErr != nil {
		return ports.Identity{}, p.signInErr
	}
	return ports.Identity{PartnerID: partnerID, Email: email, Token: goodToken, ExpiresAt: now.Add(time.Hour)}, nil
}

func (p *fakeProvider) SignOut(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signedOut = append(p.signedOut, token)
	return p.signOutErr
}

type fakeRegistry struct {
	mu        sync.Mutex
	signedOut []string
}

func (r *fakeRegistry) Get(string) (*session.Session, error) {
	return nil, errs.NewAuthError(errs.AuthCodeInvalidToken, "no session")
}

func (r *fakeRegistry) SignOut(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signedOut = append(r.signedOut, token)
}

type fakeViews struct {
	available *live.Stream[[]queries.OrderView]
}

func (v *fakeViews) AvailableOrders(context.Context, kernel.ID) (*live.Stream[[]queries.OrderView], error) {
	return v.available, nil
}

func (v *fakeViews) ActiveOrders(context.Context, kernel.ID) (*live.Stream[[]queries.OrderView], error) {
	return nil, errors.New("not used")
}

func (v *fakeViews) Profile(context.Context, kernel.ID) (*live.Stream[queries.PartnerProfile], error) {
	return nil, errors.New("not used")
}

type fixture struct {
	echo     *echo.Echo
	provider *fakeProvider
	registry *fakeRegistry
	views    *fakeViews
	handlers *httpapi.Handlers
}

func newFixture(t *testing.T, configure func(h *httpapi.Handlers)) *fixture {
	t.Helper()

	f := &fixture{
		provider: &fakeProvider{},
		registry: &fakeRegistry{},
		views:    &fakeViews{},
		handlers: &httpapi.Handlers{},
	}
	if configure != nil {
		configure(f.handlers)
	}

	server := httpapi.NewServer(*f.handlers, f.provider, f.registry, f.views, zap.NewNop())
	e, err := httpapi.NewRouter(t.Context(), server, f.provider, serviceKey, zap.NewNop())
	require.NoError(t, err)
	f.echo = e
	return f
}

func (f *fixture) do(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpapi.Error {
	t.Helper()
	var body httpapi.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t, nil)

	for _, token := range []string{"", "forged"} {
		rec := f.do(http.MethodGet, "/api/v1/orders/available", "", token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, token)
		assert.Equal(t, errs.AuthCodeInvalidToken, decodeError(t, rec).Reason)
	}
}

func TestGetAvailableOrders(t *testing.T) {
	fee, err := kernel.Rupees(30)
	require.NoError(t, err)

	f := newFixture(t, func(h *httpapi.Handlers) {
		h.AvailableOrders = queryFunc[queries.GetAvailableOrdersQuery, []queries.OrderView](
			func(_ context.Context, q queries.GetAvailableOrdersQuery) ([]queries.OrderView, error) {
				assert.True(t, q.PartnerID().IsEqual(partnerID))
				return []queries.OrderView{{
					ID:              kernel.MustIDFromString("O1"),
					CustomerPhone:   "9876543210",
					CustomerAddress: "Station Road",
					Status:          order.Confirmed,
					DeliveryFee:     &fee,
					CreatedAt:       now,
					UpdatedAt:       now,
				}}, nil
			})
	})

	rec := f.do(http.MethodGet, "/api/v1/orders/available", "", goodToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var orders []httpapi.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "O1", orders[0].ID)
	assert.Equal(t, "confirmed", orders[0].Status)
	assert.Nil(t, orders[0].DeliveryPartnerID)
	require.NotNil(t, orders[0].DeliveryFeePaise)
	assert.EqualValues(t, 3000, *orders[0].DeliveryFeePaise)
}

func TestAcceptOrder_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"accepted", nil, http.StatusNoContent, ""},
		{
			"lost race",
			errs.NewTransitionRejectedError(order.OpAccept, "O1", ""),
			http.StatusConflict, "transition_rejected",
		},
		{
			"not approved",
			errs.NewTransitionRejectedErrorWithCause(order.OpAccept, "O1", "", commands.ErrPartnerNotApproved),
			http.StatusForbidden, "partner_not_approved",
		},
		{"missing", errs.NewObjectNotFoundError("order", "O1"), http.StatusNotFound, "not_found"},
		{"store down", errs.NewWriteFailureError("accept", errors.New("conn reset")), http.StatusServiceUnavailable, "write_failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got commands.AcceptOrderCommand
			f := newFixture(t, func(h *httpapi.Handlers) {
				h.AcceptOrder = commandFunc[commands.AcceptOrderCommand](func(_ context.Context, cmd commands.AcceptOrderCommand) error {
					got = cmd
					return tt.err
				})
			})

			rec := f.do(http.MethodPost, "/api/v1/orders/O1/accept", "", goodToken)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "O1", got.OrderID().String())
			assert.True(t, got.PartnerID().IsEqual(partnerID))
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, decodeError(t, rec).Reason)
			}
		})
	}
}

func TestRequestValidation(t *testing.T) {
	called := false
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.UpdatePartner = commandFunc[commands.UpdatePartnerCommand](func(context.Context, commands.UpdatePartnerCommand) error {
			called = true
			return nil
		})
		h.DeliveryHistory = queryFunc[queries.GetDeliveryHistoryQuery, []queries.OrderView](
			func(context.Context, queries.GetDeliveryHistoryQuery) ([]queries.OrderView, error) {
				called = true
				return nil, nil
			})
	})

	rec := f.do(http.MethodPut, "/api/v1/me/status", `{"status":"flying"}`, goodToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/orders/history?limit=500", "", goodToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPatch, "/api/v1/me/vehicle", `{"vehicleType":"Bike"}`, goodToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.False(t, called)
}

func TestSetStatus(t *testing.T) {
	var got commands.UpdatePartnerCommand
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.UpdatePartner = commandFunc[commands.UpdatePartnerCommand](func(_ context.Context, cmd commands.UpdatePartnerCommand) error {
			got = cmd
			return nil
		})
	})

	rec := f.do(http.MethodPut, "/api/v1/me/status", `{"status":"online"}`, goodToken)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, got.PartnerID().IsEqual(partnerID))
}

func TestUpdateProfile_MissingPartnerRecord(t *testing.T) {
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.UpdatePartner = commandFunc[commands.UpdatePartnerCommand](func(context.Context, commands.UpdatePartnerCommand) error {
			return errs.NewObjectNotFoundError("delivery partner", partnerID)
		})
	})

	rec := f.do(http.MethodPatch, "/api/v1/me/profile", `{"name":"Ravi","phone":"9876543210"}`, goodToken)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProfile_NotFound(t *testing.T) {
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.PartnerProfile = queryFunc[queries.GetPartnerProfileQuery, queries.PartnerProfile](
			func(context.Context, queries.GetPartnerProfileQuery) (queries.PartnerProfile, error) {
				return queries.PartnerProfile{}, errs.ErrProfileNotFound
			})
	})

	rec := f.do(http.MethodGet, "/api/v1/me", "", goodToken)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "profile_not_found", decodeError(t, rec).Reason)
}

func TestSignIn_AuthErrors(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
	}{
		{errs.AuthCodeWrongPassword, http.StatusUnauthorized},
		{errs.AuthCodeUserNotFound, http.StatusUnauthorized},
		{errs.AuthCodeTooManyRequests, http.StatusTooManyRequests},
		{errs.AuthCodeUserDisabled, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			f := newFixture(t, nil)
			f.provider.signInErr = errs.NewAuthError(tt.code, "internal detail")

			rec := f.do(http.MethodPost, "/api/v1/auth/signin", `{"email":"ravi@example.com","password":"secret1"}`, "")

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Reason)
			assert.Equal(t, errs.UserMessage(errs.NewAuthError(tt.code, "")), body.Message)
		})
	}
}

func TestSignIn_ReturnsSession(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/v1/auth/signin", `{"email":"ravi@example.com","password":"secret1"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var s httpapi.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.Equal(t, "P1", s.PartnerID)
	assert.Equal(t, goodToken, s.Token)
}

func TestSignOut_EndsLiveSession(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(http.MethodPost, "/api/v1/auth/signout", "", goodToken)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{goodToken}, f.provider.signedOut)
	assert.Equal(t, []string{goodToken}, f.registry.signedOut)
}

func TestCreateOrder_RequiresServiceKey(t *testing.T) {
	var got commands.CreateOrderCommand
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.CreateOrder = commandFunc[commands.CreateOrderCommand](func(_ context.Context, cmd commands.CreateOrderCommand) error {
			got = cmd
			return nil
		})
	})
	body := `{"id":"O9","customerPhone":"9876543210","customerAddress":"Station Road","deliveryFeePaise":2500}`

	rec := f.do(http.MethodPost, "/api/v1/orders", body, goodToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/orders", body, "", "X-Service-Key", serviceKey)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "O9", got.OrderID().String())
	require.NotNil(t, got.DeliveryFee())
	assert.EqualValues(t, 2500, got.DeliveryFee().Paise())
}

func TestRegisterDeviceToken_FailureIsReported(t *testing.T) {
	calls := 0
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.RegisterDeviceToken = commandFunc[commands.RegisterDeviceTokenCommand](func(context.Context, commands.RegisterDeviceTokenCommand) error {
			calls++
			return errs.NewWriteFailureError("register device token", errors.New("timeout"))
		})
	})

	rec := f.do(http.MethodPost, "/api/v1/me/device-tokens", `{"token":"fcm-1"}`, goodToken)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestGetEarnings_BindsRange(t *testing.T) {
	var got queries.GetEarningsQuery
	f := newFixture(t, func(h *httpapi.Handlers) {
		h.Earnings = queryFunc[queries.GetEarningsQuery, queries.GetEarningsQueryResponse](
			func(_ context.Context, q queries.GetEarningsQuery) (queries.GetEarningsQueryResponse, error) {
				got = q
				return queries.GetEarningsQueryResponse{}, nil
			})
	})

	rec := f.do(http.MethodGet, "/api/v1/me/earnings?from=2025-03-01T00:00:00Z&to=2025-04-01T00:00:00Z", "", goodToken)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.From())
	require.NotNil(t, got.To())
	assert.True(t, got.From().Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	rec = f.do(http.MethodGet, "/api/v1/me/earnings?from=2025-04-01T00:00:00Z&to=2025-03-01T00:00:00Z", "", goodToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreamAvailableOrders_ClosesOnDisconnect(t *testing.T) {
	stream := live.NewStream[[]queries.OrderView](nil)
	stream.Publish([]queries.OrderView{{
		ID:              kernel.MustIDFromString("O1"),
		CustomerPhone:   "9876543210",
		CustomerAddress: "Station Road",
		Status:          order.Confirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}})

	f := newFixture(t, nil)
	f.views.available = stream
	srv := httptest.NewServer(f.echo)
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/stream/orders/available?access_token="+goodToken, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: orders\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"id":"O1"`)

	stream.Fail(errs.NewWriteFailureError("read", errors.New("boom")))
	_, err = reader.ReadString('\n') // blank line after the first event
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: error\n", line)

	cancel()
	assert.Eventually(t, stream.IsClosed, time.Second, 10*time.Millisecond)
}
