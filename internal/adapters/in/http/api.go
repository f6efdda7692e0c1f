package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Wire types of openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type SignUpRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
	Password      string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	PartnerID string    `json:"partnerId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type VehicleUpdate struct {
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
}

type PaymentDetails struct {
	UpiID         string `json:"upiId"`
	AccountHolder string `json:"accountHolder"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type DeviceToken struct {
	Token string `json:"token"`
}

type NewOrder struct {
	ID               string `json:"id"`
	CustomerPhone    string `json:"customerPhone"`
	CustomerAddress  string `json:"customerAddress"`
	DeliveryFeePaise *int64 `json:"deliveryFeePaise,omitempty"`
}

type Partner struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	VehicleType     string  `json:"vehicleType"`
	VehicleNumber   string  `json:"vehicleNumber"`
	AdminApproved   bool    `json:"adminApproved"`
	Status          string  `json:"status"`
	Rating          float64 `json:"rating"`
	TotalDeliveries int     `json:"totalDeliveries"`
	UpiID           string  `json:"upiId,omitempty"`
	AccountHolder   string  `json:"accountHolder,omitempty"`
}

type Order struct {
	ID                    string     `json:"id"`
	CustomerPhone         string     `json:"customerPhone"`
	CustomerAddress       string     `json:"customerAddress"`
	DeliveryPartnerID     *string    `json:"deliveryPartnerId,omitempty"`
	Status                string     `json:"status"`
	DeliveryFeePaise      *int64     `json:"deliveryFeePaise,omitempty"`
	PickupTime            *time.Time `json:"pickupTime,omitempty"`
	DeliveryTime          *time.Time `json:"deliveryTime,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type Earning struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	AmountPaise int64     `json:"amountPaise"`
	Date        time.Time `json:"date"`
}

type Earnings struct {
	Items      []Earning `json:"items"`
	TotalPaise int64     `json:"totalPaise"`
}

// SessionState is the payload of the session stream.
type SessionState struct {
	Phase           string   `json:"phase"`
	PartnerID       string   `json:"partnerId,omitempty"`
	Profile         *Partner `json:"profile,omitempty"`
	AvailableOrders []Order  `json:"availableOrders"`
	ActiveOrders    []Order  `json:"activeOrders"`
	Error           *Error   `json:"error,omitempty"`
}

type GetEarningsParams struct {
	From *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To   *time.Time `form:"to,omitempty" json:"to,omitempty"`
}

type GetDeliveryHistoryParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/auth/signup)
	SignUp(ctx echo.Context) error
	// (POST /api/v1/auth/signin)
	SignIn(ctx echo.Context) error
	// (POST /api/v1/auth/signout)
	SignOut(ctx echo.Context) error

	// (GET /api/v1/me)
	GetProfile(ctx echo.Context) error
	// (PATCH /api/v1/me/profile)
	UpdateProfile(ctx echo.Context) error
	// (PATCH /api/v1/me/vehicle)
	UpdateVehicle(ctx echo.Context) error
	// (PUT /api/v1/me/payment)
	UpdatePayment(ctx echo.Context) error
	// (PUT /api/v1/me/status)
	SetStatus(ctx echo.Context) error
	// (POST /api/v1/me/device-tokens)
	RegisterDeviceToken(ctx echo.Context) error
	// (GET /api/v1/me/earnings)
	GetEarnings(ctx echo.Context, params GetEarningsParams) error

	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/available)
	GetAvailableOrders(ctx echo.Context) error
	// (GET /api/v1/orders/active)
	GetActiveOrders(ctx echo.Context) error
	// (GET /api/v1/orders/history)
	GetDeliveryHistory(ctx echo.Context, params GetDeliveryHistoryParams) error
	// (POST /api/v1/orders/{orderId}/accept)
	AcceptOrder(ctx echo.Context, orderID string) error
	// (POST /api/v1/orders/{orderId}/decline)
	DeclineOrder(ctx echo.Context, orderID string) error
	// (POST /api/v1/orders/{orderId}/pickup)
	MarkPickedUp(ctx echo.Context, orderID string) error
	// (POST /api/v1/orders/{orderId}/deliver)
	MarkDelivered(ctx echo.Context, orderID string) error

	// (GET /api/v1/stream/session)
	StreamSession(ctx echo.Context) error
	// (GET /api/v1/stream/me)
	StreamProfile(ctx echo.Context) error
	// (GET /api/v1/stream/orders/available)
	StreamAvailableOrders(ctx echo.Context) error
	// (GET /api/v1/stream/orders/active)
	StreamActiveOrders(ctx echo.Context) error
}

// ServerInterfaceWrapper binds parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetEarnings(ctx echo.Context) error {
	var params GetEarningsParams

	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	return w.Handler.GetEarnings(ctx, params)
}

func (w *ServerInterfaceWrapper) GetDeliveryHistory(ctx echo.Context) error {
	var params GetDeliveryHistoryParams

	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetDeliveryHistory(ctx, params)
}

// withOrderID binds the orderId path parameter for the lifecycle operations.
func (w *ServerInterfaceWrapper) withOrderID(op func(echo.Context, string) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var orderID string

		err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
		}

		return op(ctx, orderID)
	}
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/auth/signup", si.SignUp)
	router.POST("/api/v1/auth/signin", si.SignIn)
	router.POST("/api/v1/auth/signout", si.SignOut)

	router.GET("/api/v1/me", si.GetProfile)
	router.PATCH("/api/v1/me/profile", si.UpdateProfile)
	router.PATCH("/api/v1/me/vehicle", si.UpdateVehicle)
	router.PUT("/api/v1/me/payment", si.UpdatePayment)
	router.PUT("/api/v1/me/status", si.SetStatus)
	router.POST("/api/v1/me/device-tokens", si.RegisterDeviceToken)
	router.GET("/api/v1/me/earnings", w.GetEarnings)

	router.POST("/api/v1/orders", si.CreateOrder)
	router.GET("/api/v1/orders/available", si.GetAvailableOrders)
	router.GET("/api/v1/orders/active", si.GetActiveOrders)
	router.GET("/api/v1/orders/history", w.GetDeliveryHistory)
	router.POST("/api/v1/orders/:orderId/accept", w.withOrderID(si.AcceptOrder))
	router.POST("/api/v1/orders/:orderId/decline", w.withOrderID(si.DeclineOrder))
	router.POST("/api/v1/orders/:orderId/pickup", w.withOrderID(si.MarkPickedUp))
	router.POST("/api/v1/orders/:orderId/deliver", w.withOrderID(si.MarkDelivered))

	router.GET("/api/v1/stream/session", si.StreamSession)
	router.GET("/api/v1/stream/me", si.StreamProfile)
	router.GET("/api/v1/stream/orders/available", si.StreamAvailableOrders)
	router.GET("/api/v1/stream/orders/active", si.StreamActiveOrders)
}
