package router

import (
	"time"

	"listacomparativa/internal/config"
	"listacomparativa/internal/handler"
	"listacomparativa/internal/infra"
	"listacomparativa/internal/middleware"
	"listacomparativa/internal/repository"
	"listacomparativa/internal/service"
	"listacomparativa/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	listaRepo := repository.NewListaPrecioRepository(db)
	historialRepo := repository.NewHistorialPrecioRepository(db)
	analisisRepo := repository.NewAnalisisRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	sugerenciaRepo := repository.NewSugerenciaRepository(db)
	carritoRepo := repository.NewCarritoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	productoSvc := service.NewProductoService(productoRepo, historialRepo)
	listaSvc := service.NewListaPrecioService(listaRepo, productoRepo, proveedorRepo, historialRepo)
	analisisSvc := service.NewAnalisisService(analisisRepo, listaRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, productoRepo, analisisRepo, sugerenciaRepo)
	carritoSvc := service.NewCarritoService(carritoRepo, listaRepo, ordenRepo, dispatcher)
	ordenSvc := service.NewOrdenService(ordenRepo, dispatcher)
	dashboardSvc := service.NewDashboardService(proveedorRepo, inventarioRepo, sugerenciaRepo, ordenRepo, listaRepo, analisisRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	listasH := handler.NewListasPreciosHandler(listaSvc, cfg)
	analisisH := handler.NewAnalisisHandler(analisisSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, cfg)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	consultaH := handler.NewConsultaPreciosHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", authH.Register)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:barcode", consultaH.GetPrecioPorBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/profile", authH.Perfil)

		// Proveedores — writes restricted to administrators
		v1.GET("/proveedores", proveedoresH.Listar)
		v1.GET("/proveedores/:id", proveedoresH.Obtener)
		prov := v1.Group("/proveedores", middleware.RequireRole("admin"))
		{
			prov.POST("", proveedoresH.Crear)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		// Productos — read-only catalog built up by price-list imports
		v1.GET("/productos", productosH.Listar)
		v1.GET("/productos/:id", productosH.Obtener)
		v1.GET("/productos/:id/historial-precios", productosH.HistorialPrecios)

		// Listas de precios — upload is the system's main data intake
		v1.GET("/listas-precios", listasH.Listar)
		v1.GET("/listas-precios/:id", listasH.Obtener)
		listas := v1.Group("/listas-precios", middleware.RequireRole("admin"))
		{
			listas.POST("", listasH.Importar)
			listas.DELETE("/:id", listasH.Eliminar)
		}

		// Análisis comparativo
		v1.GET("/analisis", analisisH.Listar)
		v1.POST("/analisis/generar", analisisH.Generar)
		v1.GET("/analisis/:producto_id", analisisH.Detalle)

		// Inventario
		v1.GET("/inventario", inventarioH.Listar)
		v1.GET("/inventario/alertas", inventarioH.Alertas)
		v1.GET("/inventario/movimientos", inventarioH.Movimientos)
		v1.GET("/inventario/sugerencias", inventarioH.Sugerencias)
		inv := v1.Group("/inventario", middleware.RequireRole("admin"))
		{
			inv.POST("/importar", inventarioH.Importar)
			inv.POST("/movimientos", inventarioH.AjustarStock)
			inv.POST("/sugerencias/generar", inventarioH.GenerarSugerencias)
			inv.PATCH("/sugerencias/:id/procesar", inventarioH.ProcesarSugerencia)
		}

		// Carrito — always scoped to the authenticated user
		carrito := v1.Group("/carrito")
		{
			carrito.GET("", carritoH.Obtener)
			carrito.POST("/items", carritoH.AgregarItem)
			carrito.PATCH("/items/:id/cantidad", carritoH.CambiarCantidad)
			carrito.DELETE("/items/:id", carritoH.QuitarItem)
			carrito.DELETE("", carritoH.Vaciar)
			carrito.POST("/confirmar", carritoH.Confirmar)
		}

		// Órdenes de compra
		ordenes := v1.Group("/ordenes")
		{
			ordenes.GET("", ordenesH.Listar)
			ordenes.GET("/:id", ordenesH.Obtener)
			ordenes.GET("/:id/pdf", ordenesH.DescargarPDF)
			ordenes.POST("/:id/reintentar", ordenesH.Reintentar)
		}

		v1.GET("/dashboard/resumen", dashboardH.Resumen)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
