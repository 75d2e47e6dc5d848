package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/buildcare-backend/internal/domain"
	httpH "github.com/yungbote/buildcare-backend/internal/http/handlers"
	httpMW "github.com/yungbote/buildcare-backend/internal/http/middleware"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware
	// TokenIssuer exposes POST /jwt, which signs a token for any posted
	// email. Local environments only.
	TokenIssuer bool

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	UserHandler      *httpH.UserHandler
	BuildingHandler  *httpH.BuildingHandler
	AgreementHandler *httpH.AgreementHandler
	ContractHandler  *httpH.ContractHandler
	CouponHandler    *httpH.CouponHandler
	PaymentHandler   *httpH.PaymentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Home)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Public
	if cfg.AuthHandler != nil && cfg.TokenIssuer {
		r.POST("/jwt", cfg.AuthHandler.IssueToken)
	}
	if cfg.UserHandler != nil {
		r.POST("/users", cfg.UserHandler.Register)
	}
	if cfg.BuildingHandler != nil {
		r.GET("/apartments", cfg.BuildingHandler.ListApartments)
		r.GET("/apartmentsCount", cfg.BuildingHandler.CountApartments)
		r.GET("/search", cfg.BuildingHandler.Search)
	}
	if cfg.CouponHandler != nil {
		r.GET("/couponCodes", cfg.CouponHandler.List)
		r.GET("/couponCheck/:code", cfg.CouponHandler.Check)
	}

	am := cfg.AuthMiddleware
	if am == nil {
		return r
	}

	protected := r.Group("/")
	protected.Use(am.RequireAuth())

	admin := protected.Group("/")
	admin.Use(am.RequireRole(domain.RoleAdmin))

	member := protected.Group("/")
	member.Use(am.RequireRole(domain.RoleMember))

	if cfg.UserHandler != nil {
		protected.GET("/users/:email", cfg.UserHandler.GetUser)
		admin.GET("/members", cfg.UserHandler.ListMembers)
		admin.PATCH("/members/:id", cfg.UserHandler.RemoveMember)
	}

	if cfg.BuildingHandler != nil {
		protected.GET("/makeAnnouncements", cfg.BuildingHandler.ListAnnouncements)
		admin.POST("/makeAnnouncements", cfg.BuildingHandler.CreateAnnouncement)
	}

	// Agreements
	if cfg.AgreementHandler != nil {
		protected.POST("/agreements/:email", am.RequireSelfOrAdmin(httpMW.EmailParam("email")), cfg.AgreementHandler.Submit)
		admin.GET("/agreements", cfg.AgreementHandler.List)
		admin.GET("/agreements/:email", cfg.AgreementHandler.Get)
		admin.PATCH("/agreementsRequest/:id", cfg.AgreementHandler.Adjudicate)
	}

	// Contracts
	if cfg.ContractHandler != nil {
		member.GET("/acceptRequests/:email", am.RequireSelf(httpMW.EmailParam("email")), cfg.ContractHandler.Get)
		member.PATCH("/acceptRequest/:email", am.RequireSelf(httpMW.EmailParam("email")), cfg.ContractHandler.SetMonth)
	}

	// Coupons
	if cfg.CouponHandler != nil {
		admin.POST("/couponCodes", cfg.CouponHandler.Create)
		admin.DELETE("/couponCodes/:id", cfg.CouponHandler.Delete)
	}

	// Payments
	if cfg.PaymentHandler != nil {
		member.POST("/create-checkout-session", cfg.PaymentHandler.CreateCheckoutSession)
		member.POST("/payments", am.RequireSelf(httpMW.EmailQuery("email")), cfg.PaymentHandler.Settle)
		member.GET("/paymentHistory/:email", am.RequireSelf(httpMW.EmailParam("email")), cfg.PaymentHandler.History)
	}

	return r
}
