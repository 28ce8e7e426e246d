package router

import (
	"github.com/gocommerce/shop-api/internal/application"
	"github.com/gocommerce/shop-api/internal/container"
	pginfra "github.com/gocommerce/shop-api/internal/infrastructure/postgres"
	handlers "github.com/gocommerce/shop-api/internal/interface/http"
	"github.com/gocommerce/shop-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	carts := pginfra.NewCartRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	coupons := pginfra.NewCouponRepository(pool)

	authService := application.NewAuthService(users, jwt, container.GetMailgun(), container.GetRabbitPub(), logger, cfg.ResetCodeTTL, cfg.MailSendEnabled)
	userService := application.NewUserService(users, jwt, logger)
	productService := application.NewProductService(products, logger, container.GetES(), cfg.ESProductsIndex)
	cartService := application.NewCartService(carts, products, coupons, logger)
	couponService := application.NewCouponService(coupons)
	reviewService := application.NewReviewService(reviews, products, logger)
	orderService := application.NewOrderService(orders, carts, products, users,
		container.GetPayment(), container.GetRabbitPub(), logger,
		cfg.Currency, cfg.BaseURL, cfg.StockAllowNegative)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authService)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userService), users, jwt))
	r.Add(modules.NewCatalogModule(handlers.NewProductHandler(productService), handlers.NewReviewHandler(reviewService), users, jwt))
	r.Add(modules.NewCouponModule(handlers.NewCouponHandler(couponService), users, jwt))
	r.Add(modules.NewCartModule(handlers.NewCartHandler(cartService), users, jwt))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderService, cfg.PaymentWebhookSecret, logger), users, jwt))
}
