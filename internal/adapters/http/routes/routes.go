package routes

import (
	"libralend/internal/adapters/http/handlers"
	"libralend/internal/adapters/http/middleware"
	"libralend/internal/adapters/persistence/repositories"
	"libralend/internal/config"
	"libralend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize unit of work and repositories
	uow := repositories.NewUnitOfWork(db)

	// Initialize services
	authorService := services.NewAuthorService(uow.Authors())
	categoryService := services.NewCategoryService(uow.Categories())
	bookService := services.NewBookService(uow)
	memberService := services.NewMemberService(uow.Members(), uow.BorrowRecords())
	borrowingService := services.NewBorrowingService(uow)
	availabilityService := services.NewAvailabilityService(uow.Books(), uow.BorrowRecords())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authorHandler := handlers.NewAuthorHandler(authorService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	bookHandler := handlers.NewBookHandler(bookService, availabilityService)
	memberHandler := handlers.NewMemberHandler(memberService)
	borrowHandler := handlers.NewBorrowRecordHandler(borrowingService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authorHandler, categoryHandler,
		bookHandler, memberHandler, borrowHandler)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authorHandler *handlers.AuthorHandler,
	categoryHandler *handlers.CategoryHandler,
	bookHandler *handlers.BookHandler,
	memberHandler *handlers.MemberHandler,
	borrowHandler *handlers.BorrowRecordHandler,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Author routes - catalog data, cacheable
	authors := router.Group("/authors")
	authors.Post("/", authorHandler.Create)
	authors.Get("/", middleware.CatalogCache(), authorHandler.List)
	authors.Get("/:id", middleware.CatalogCache(), authorHandler.Get)
	authors.Put("/:id", authorHandler.Update)
	authors.Delete("/:id", authorHandler.Delete)

	// Category routes - catalog data, cacheable
	categories := router.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", middleware.CatalogCache(), categoryHandler.List)
	categories.Get("/:id", middleware.CatalogCache(), categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Book routes - availability must never be served stale
	books := router.Group("/books")
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/isbn/:isbn", bookHandler.GetByISBN)
	books.Get("/:id", bookHandler.Get)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)
	books.Get("/:id/availability", middleware.NoCacheHeaders(), bookHandler.Availability)
	books.Put("/:id/availability", bookHandler.SetAvailability)
	books.Get("/:id/borrows", borrowHandler.ListByBook)

	// Member routes
	members := router.Group("/members")
	members.Post("/", memberHandler.Create)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Put("/:id", memberHandler.Update)
	members.Delete("/:id", memberHandler.Delete)
	members.Get("/:id/borrows", borrowHandler.ListByMember)

	// Borrow routes - circulation endpoints are rate limited
	borrows := router.Group("/borrows", middleware.NoCacheHeaders())
	borrows.Post("/", middleware.CirculationRateLimiter(), borrowHandler.Borrow)
	borrows.Get("/", borrowHandler.List)
	borrows.Get("/eligibility", borrowHandler.CanBorrow)
	borrows.Get("/:id", borrowHandler.Get)
	borrows.Post("/:id/return", middleware.CirculationRateLimiter(), borrowHandler.Return)
	borrows.Get("/:id/fine", borrowHandler.Fine)
	borrows.Patch("/:id/status", borrowHandler.SetStatus)
	borrows.Delete("/:id", borrowHandler.Delete)
}
