package http

import (
	"context"
	"net/http"

	"bolpurmart/internal/core/application/session"
	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CommandHandler is implemented by the command handlers of the application layer.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is implemented by the query handlers and by signup, which returns the
// new identity.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	RegisterPartner     QueryHandler[commands.RegisterPartnerCommand, ports.Identity]
	UpdatePartner       CommandHandler[commands.UpdatePartnerCommand]
	RegisterDeviceToken CommandHandler[commands.RegisterDeviceTokenCommand]
	CreateOrder         CommandHandler[commands.CreateOrderCommand]
	AcceptOrder         CommandHandler[commands.AcceptOrderCommand]
	DeclineOrder        CommandHandler[commands.DeclineOrderCommand]
	MarkPickedUp        CommandHandler[commands.MarkPickedUpCommand]
	MarkDelivered       CommandHandler[commands.MarkDeliveredCommand]

	PartnerProfile  QueryHandler[queries.GetPartnerProfileQuery, queries.PartnerProfile]
	AvailableOrders QueryHandler[queries.GetAvailableOrdersQuery, []queries.OrderView]
	ActiveOrders    QueryHandler[queries.GetActiveOrdersQuery, []queries.OrderView]
	DeliveryHistory QueryHandler[queries.GetDeliveryHistoryQuery, []queries.OrderView]
	Earnings        QueryHandler[queries.GetEarningsQuery, queries.GetEarningsQueryResponse]
}

// SessionRegistry hands out the live session of a token. *session.Registry implements it.
type SessionRegistry interface {
	Get(token string) (*session.Session, error)
	SignOut(token string)
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	sessions ports.SessionProvider
	registry SessionRegistry
	views    session.Views
	logger   *zap.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a server with the required handlers and live sources.
func NewServer(
	handlers Handlers,
	sessions ports.SessionProvider,
	registry SessionRegistry,
	views session.Views,
	logger *zap.Logger,
) *Server {
	return &Server{
		handlers: handlers,
		sessions: sessions,
		registry: registry,
		views:    views,
		logger:   logger.With(zap.String("component", "http")),
	}
}

func (s *Server) SignUp(ctx echo.Context) error {
	var req SignUpRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterPartnerCommand(
		req.Name, req.Phone, req.Email, req.VehicleType, req.VehicleNumber, req.Password,
	)
	if err != nil {
		return err
	}

	identity, err := s.handlers.RegisterPartner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toSession(identity))
}

func (s *Server) SignIn(ctx echo.Context) error {
	var req SignInRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	identity, err := s.sessions.SignIn(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toSession(identity))
}

// SignOut revokes the partner's tokens and ends the live session of this token before
// responding, so nothing of the partner's data is streamed afterwards.
func (s *Server) SignOut(ctx echo.Context) error {
	identity := identityOf(ctx)

	if err := s.sessions.SignOut(ctx.Request().Context(), identity.Token); err != nil {
		return err
	}
	s.registry.SignOut(identity.Token)

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GetProfile(ctx echo.Context) error {
	query, err := queries.NewGetPartnerProfileQuery(identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	profile, err := s.handlers.PartnerProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPartner(profile))
}

func (s *Server) UpdateProfile(ctx echo.Context) error {
	var req ProfileUpdate
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return s.updatePartner(ctx, func(id kernel.ID) (commands.UpdatePartnerCommand, error) {
		return commands.NewUpdateProfileCommand(id, req.Name, req.Phone)
	})
}

func (s *Server) UpdateVehicle(ctx echo.Context) error {
	var req VehicleUpdate
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return s.updatePartner(ctx, func(id kernel.ID) (commands.UpdatePartnerCommand, error) {
		return commands.NewUpdateVehicleCommand(id, req.VehicleType, req.VehicleNumber)
	})
}

func (s *Server) UpdatePayment(ctx echo.Context) error {
	var req PaymentDetails
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return s.updatePartner(ctx, func(id kernel.ID) (commands.UpdatePartnerCommand, error) {
		return commands.NewUpdatePaymentCommand(id, req.UpiID, req.AccountHolder)
	})
}

func (s *Server) SetStatus(ctx echo.Context) error {
	var req StatusUpdate
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return s.updatePartner(ctx, func(id kernel.ID) (commands.UpdatePartnerCommand, error) {
		return commands.NewSetPartnerStatusCommand(id, req.Status)
	})
}

func (s *Server) updatePartner(ctx echo.Context, build func(kernel.ID) (commands.UpdatePartnerCommand, error)) error {
	cmd, err := build(identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdatePartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterDeviceToken stores a push token. A failure is logged and reported; the client
// does not retry.
func (s *Server) RegisterDeviceToken(ctx echo.Context) error {
	var req DeviceToken
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	partnerID := identityOf(ctx).PartnerID
	cmd, err := commands.NewRegisterDeviceTokenCommand(partnerID, req.Token)
	if err != nil {
		return err
	}

	if err = s.handlers.RegisterDeviceToken.Handle(ctx.Request().Context(), cmd); err != nil {
		s.logger.Warn("device token registration failed", zap.String("partner_id", partnerID.String()), zap.Error(err))
		metrics.PushFailuresTotal.WithLabelValues("device_token").Inc()
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GetEarnings(ctx echo.Context, params GetEarningsParams) error {
	query, err := queries.NewGetEarningsQuery(identityOf(ctx).PartnerID, params.From, params.To)
	if err != nil {
		return err
	}

	result, err := s.handlers.Earnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toEarnings(result))
}

// CreateOrder stores a confirmed order handed over by the ordering system.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrder
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	orderID, err := kernel.IDFromString(req.ID)
	if err != nil {
		return err
	}

	var fee *kernel.Money
	if req.DeliveryFeePaise != nil {
		m, err := kernel.NewMoney(*req.DeliveryFeePaise)
		if err != nil {
			return err
		}
		fee = &m
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, req.CustomerPhone, req.CustomerAddress, fee)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusCreated)
}

func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	query, err := queries.NewGetAvailableOrdersQuery(identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	orders, err := s.handlers.AvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery(identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	orders, err := s.handlers.ActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

func (s *Server) GetDeliveryHistory(ctx echo.Context, params GetDeliveryHistoryParams) error {
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetDeliveryHistoryQuery(identityOf(ctx).PartnerID, limit)
	if err != nil {
		return err
	}

	orders, err := s.handlers.DeliveryHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrders(orders))
}

func (s *Server) AcceptOrder(ctx echo.Context, orderID string) error {
	return s.transition(ctx, order.OpAccept, orderID, func(c context.Context, id kernel.ID) error {
		cmd, err := commands.NewAcceptOrderCommand(id, identityOf(ctx).PartnerID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptOrder.Handle(c, cmd)
	})
}

func (s *Server) DeclineOrder(ctx echo.Context, orderID string) error {
	return s.transition(ctx, order.OpDecline, orderID, func(c context.Context, id kernel.ID) error {
		cmd, err := commands.NewDeclineOrderCommand(id)
		if err != nil {
			return err
		}
		return s.handlers.DeclineOrder.Handle(c, cmd)
	})
}

func (s *Server) MarkPickedUp(ctx echo.Context, orderID string) error {
	return s.transition(ctx, order.OpPickUp, orderID, func(c context.Context, id kernel.ID) error {
		cmd, err := commands.NewMarkPickedUpCommand(id)
		if err != nil {
			return err
		}
		return s.handlers.MarkPickedUp.Handle(c, cmd)
	})
}

func (s *Server) MarkDelivered(ctx echo.Context, orderID string) error {
	return s.transition(ctx, order.OpDeliver, orderID, func(c context.Context, id kernel.ID) error {
		cmd, err := commands.NewMarkDeliveredCommand(id, identityOf(ctx).PartnerID)
		if err != nil {
			return err
		}
		return s.handlers.MarkDelivered.Handle(c, cmd)
	})
}

// transition runs one lifecycle operation and counts its outcome. A rejected
// transition is reported as is and never retried.
func (s *Server) transition(
	ctx echo.Context,
	operation, rawID string,
	run func(context.Context, kernel.ID) error,
) error {
	id, err := kernel.IDFromString(rawID)
	if err != nil {
		return err
	}

	err = run(ctx.Request().Context(), id)
	metrics.ObserveTransition(operation, err)
	if err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) StreamSession(ctx echo.Context) error {
	sess, err := s.registry.Get(identityOf(ctx).Token)
	if err != nil {
		return err
	}

	states, err := sess.Watch()
	if err != nil {
		return err
	}

	return serveStream(ctx, states, "session", func(st session.State) any { return toSessionState(st) })
}

func (s *Server) StreamProfile(ctx echo.Context) error {
	stream, err := s.views.Profile(ctx.Request().Context(), identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	return serveStream(ctx, stream, "profile", func(p queries.PartnerProfile) any { return toPartner(p) })
}

func (s *Server) StreamAvailableOrders(ctx echo.Context) error {
	stream, err := s.views.AvailableOrders(ctx.Request().Context(), identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	return serveStream(ctx, stream, "orders", func(o []queries.OrderView) any { return toOrders(o) })
}

func (s *Server) StreamActiveOrders(ctx echo.Context) error {
	stream, err := s.views.ActiveOrders(ctx.Request().Context(), identityOf(ctx).PartnerID)
	if err != nil {
		return err
	}

	return serveStream(ctx, stream, "orders", func(o []queries.OrderView) any { return toOrders(o) })
}
