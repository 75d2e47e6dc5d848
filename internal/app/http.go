package app

import (
	apphttp "github.com/yungbote/buildcare-backend/internal/http"
	httpH "github.com/yungbote/buildcare-backend/internal/http/handlers"
	httpMW "github.com/yungbote/buildcare-backend/internal/http/middleware"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	User      *httpH.UserHandler
	Building  *httpH.BuildingHandler
	Agreement *httpH.AgreementHandler
	Contract  *httpH.ContractHandler
	Coupon    *httpH.CouponHandler
	Payment   *httpH.PaymentHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(services.Auth),
		User:      httpH.NewUserHandler(services.User),
		Building:  httpH.NewBuildingHandler(services.Building),
		Agreement: httpH.NewAgreementHandler(services.Agreement, services.Adjudication),
		Contract:  httpH.NewContractHandler(services.Contract),
		Coupon:    httpH.NewCouponHandler(services.Coupon),
		Payment:   httpH.NewPaymentHandler(services.Payment),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouterConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers, mw Middleware) apphttp.RouterConfig {
	if cfg.TokenIssuerEnabled() {
		log.Warn("POST /jwt token issuer enabled", "env", cfg.Environment)
	}
	return apphttp.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.ServiceName,
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthMiddleware:   mw.Auth,
		TokenIssuer:      cfg.TokenIssuerEnabled(),
		HealthHandler:    h.Health,
		AuthHandler:      h.Auth,
		UserHandler:      h.User,
		BuildingHandler:  h.Building,
		AgreementHandler: h.Agreement,
		ContractHandler:  h.Contract,
		CouponHandler:    h.Coupon,
		PaymentHandler:   h.Payment,
	}
}
