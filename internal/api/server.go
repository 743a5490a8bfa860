package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/homies-gc/homies-api/docs"
	v1 "github.com/homies-gc/homies-api/internal/api/handler/v1"
	"github.com/homies-gc/homies-api/internal/api/middleware"
	"github.com/homies-gc/homies-api/internal/config"
	"github.com/homies-gc/homies-api/internal/redisx"
	"github.com/homies-gc/homies-api/internal/repository"
	"github.com/homies-gc/homies-api/internal/repository/dao"
	"github.com/homies-gc/homies-api/internal/service"
	"github.com/homies-gc/homies-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store *storage.LocalStore
	uSvc  *service.UserService
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  storage.NewLocalStore(conf.Uploads.Dir),
	}
	s.uSvc = service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(s.uSvc)
	memberHandler, verifyHandler := s.initMemberHandlers(db, rdb)
	productHandler := s.initProductHandler(db)
	saleHandler := s.initSaleHandler(db)
	paymentHandler := s.initPaymentHandler(db)
	vehicleHandler := s.initVehicleHandler(db)
	reportHandler := s.initReportHandler(db)

	s.MountHandlers(authHandler, userHandler, memberHandler, verifyHandler,
		productHandler, saleHandler, paymentHandler, vehicleHandler, reportHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initMemberHandlers(db *gorm.DB, rdb *redis.Client) (*v1.MemberHandler, *v1.VerifyHandler) {
	memberDAO := dao.NewMemberDAO(db)
	repo := repository.NewMemberRepository(memberDAO)
	svc := service.NewMemberService(repo, redisx.NewCredentialCache(rdb))

	return v1.NewMemberHandler(s.Config.API, svc, s.uSvc, s.store),
		v1.NewVerifyHandler(s.Config.API, svc)
}

func (s *Server) initProductHandler(db *gorm.DB) *v1.ProductHandler {
	productDAO := dao.NewProductDAO(db)
	repo := repository.NewProductRepository(productDAO)
	svc := service.NewProductService(repo)
	handler := v1.NewProductHandler(svc, s.uSvc, s.store)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB) *v1.SaleHandler {
	saleRepo := repository.NewSaleRepository(dao.NewSaleDAO(db))
	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))
	svc := service.NewSaleService(saleRepo, memberRepo, productRepo, paymentRepo)
	handler := v1.NewSaleHandler(svc, s.uSvc)

	return handler
}

func (s *Server) initPaymentHandler(db *gorm.DB) *v1.PaymentHandler {
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))
	saleRepo := repository.NewSaleRepository(dao.NewSaleDAO(db))
	svc := service.NewPaymentService(paymentRepo, saleRepo)
	handler := v1.NewPaymentHandler(svc, s.uSvc, s.store)

	return handler
}

func (s *Server) initVehicleHandler(db *gorm.DB) *v1.VehicleHandler {
	vehicleRepo := repository.NewVehicleRepository(dao.NewVehicleDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewVehicleService(vehicleRepo, productRepo)
	handler := v1.NewVehicleHandler(svc, s.uSvc, s.store)

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	repo := repository.NewReportRepository(dao.NewReportDAO(db))
	svc := service.NewReportService(repo)
	handler := v1.NewReportHandler(svc, s.uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	memberHandler *v1.MemberHandler,
	verifyHandler *v1.VerifyHandler,
	productHandler *v1.ProductHandler,
	saleHandler *v1.SaleHandler,
	paymentHandler *v1.PaymentHandler,
	vehicleHandler *v1.VehicleHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/miembros", memberHandler.HandleListMembers)
		authed.POST("/miembros", memberHandler.HandleCreateMember)
		authed.GET("/miembros/:memberID", memberHandler.HandleGetMember)
		authed.PUT("/miembros/:memberID", memberHandler.HandleUpdateMember)
		authed.PATCH("/miembros/:memberID/baja", memberHandler.HandleDeactivateMember)
		authed.PATCH("/miembros/:memberID/reactivar", memberHandler.HandleReactivateMember)
		authed.GET("/miembros/:memberID/credencial", memberHandler.HandleMemberCredential)

		authed.GET("/productos", productHandler.HandleListProducts)
		authed.POST("/productos", productHandler.HandleCreateProduct)
		authed.PUT("/productos/:productID", productHandler.HandleUpdateProduct)
		authed.PATCH("/productos/:productID/habilitar", productHandler.HandleEnableProduct)
		authed.PATCH("/productos/:productID/deshabilitar", productHandler.HandleDisableProduct)

		authed.GET("/ventas", saleHandler.HandleListSales)
		authed.POST("/ventas", saleHandler.HandleCreateSale)
		authed.GET("/ventas/:saleID", saleHandler.HandleGetSale)
		authed.GET("/ventas/:saleID/recibo", saleHandler.HandleSaleVoucher)
		authed.PATCH("/ventas/:saleID/entregar", saleHandler.HandleDeliverSale)
		authed.PATCH("/ventas/:saleID/cancelar", saleHandler.HandleCancelSale)

		authed.GET("/pagos", paymentHandler.HandleListPayments)
		authed.POST("/pagos", paymentHandler.HandleRegisterPayment)
		authed.PATCH("/pagos/:paymentID/aprobar", paymentHandler.HandleApprovePayment)
		authed.PATCH("/pagos/:paymentID/rechazar", paymentHandler.HandleRejectPayment)

		authed.GET("/vehiculos", vehicleHandler.HandleListVehicles)
		authed.POST("/vehiculos", vehicleHandler.HandleCreateVehicle)
		authed.GET("/vehiculos/:vehicleID", vehicleHandler.HandleGetVehicle)
		authed.PUT("/vehiculos/:vehicleID", vehicleHandler.HandleUpdateVehicle)
		authed.GET("/vehiculos/:vehicleID/mantenimientos", vehicleHandler.HandleListMaintenances)
		authed.POST("/vehiculos/:vehicleID/mantenimientos", vehicleHandler.HandleAddMaintenance)
		authed.GET("/vehiculos/:vehicleID/inventario", vehicleHandler.HandleListInventory)
		authed.POST("/vehiculos/:vehicleID/inventario", vehicleHandler.HandleAssignInventory)
		authed.GET("/vehiculos/:vehicleID/reportes", reportHandler.HandleVehicleReport)

		authed.GET("/reportes/miembros", reportHandler.HandleMembersReport)
		authed.GET("/reportes/ventas", reportHandler.HandleSalesReport)
		authed.GET("/reportes/pagos", reportHandler.HandlePaymentsReport)
		authed.GET("/reportes/vehiculos", reportHandler.HandleVehiclesReport)
		authed.GET("/reportes/dashboard", reportHandler.HandleDashboardReport)
	}

	// The verification URL printed in credential QR codes.
	s.Router.GET("/verificar/:uuid", verifyHandler.HandleVerifyCredential)

	// Uploaded photos, receipts and maintenance attachments.
	s.Router.Static("/uploads", s.Config.Uploads.Dir)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "HOMIES API"
	docs.SwaggerInfo.Description = "Membership, inventory and sales management for the HOMIES organization."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
