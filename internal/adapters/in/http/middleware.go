package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	bearerScheme     = "bearerAuth"
	serviceKeyScheme = "serviceKey"
	serviceKeyHeader = "X-Service-Key"

	// accessTokenParam carries the token for EventSource clients, which cannot set headers.
	accessTokenParam = "access_token"

	identityKey = "identity"
)

// TokenVerifier resolves a session token. ports.SessionProvider implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (ports.Identity, error)
}

// gatekeeper authenticates every API request against the security requirement of its
// operation and validates it against the document. Requests outside the document
// (health, metrics, swagger) pass through untouched.
type gatekeeper struct {
	router     routers.Router
	verifier   TokenVerifier
	serviceKey []byte
	options    *openapi3filter.Options
}

func newGatekeeper(doc *openapi3.T, verifier TokenVerifier, serviceKey string) (*gatekeeper, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	return &gatekeeper{
		router:     router,
		verifier:   verifier,
		serviceKey: []byte(serviceKey),
		options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}, nil
}

func (g *gatekeeper) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		route, pathParams, err := g.router.FindRoute(req)
		if err != nil {
			return next(c)
		}

		if err = g.authenticate(c, route); err != nil {
			return err
		}

		err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    g.options,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
		}

		return next(c)
	}
}

// authenticate enforces the requirement of the operation. Every operation of the
// document names at most one scheme.
func (g *gatekeeper) authenticate(c echo.Context, route *routers.Route) error {
	security := route.Operation.Security
	if security == nil {
		security = &route.Spec.Security
	}

	for _, requirement := range *security {
		for scheme := range requirement {
			switch scheme {
			case bearerScheme:
				identity, err := g.verifier.Verify(c.Request().Context(), bearerToken(c.Request()))
				if err != nil {
					return err
				}
				c.Set(identityKey, identity)
			case serviceKeyScheme:
				key := []byte(c.Request().Header.Get(serviceKeyHeader))
				if len(g.serviceKey) == 0 || subtle.ConstantTimeCompare(key, g.serviceKey) != 1 {
					return errs.NewAuthError(errs.AuthCodeInvalidToken, "service key is missing or wrong")
				}
			}
		}
	}
	return nil
}

func bearerToken(req *http.Request) string {
	if h := req.Header.Get(echo.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if req.Method == http.MethodGet {
		return req.URL.Query().Get(accessTokenParam)
	}
	return ""
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason
		}
		if reqErr.RequestBody != nil && reqErr.Err != nil {
			return "invalid request body: " + reqErr.Err.Error()
		}
		return reqErr.Error()
	}
	return err.Error()
}

// identityOf returns the identity set by the gatekeeper.
func identityOf(c echo.Context) ports.Identity {
	identity, _ := c.Get(identityKey).(ports.Identity)
	return identity
}

// RequestLogger logs one line per request with the route pattern, never the raw URI,
// so tokens passed as query parameters stay out of the log.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
