package routes

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"quill/app/controllers"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/services"
)

// Services bundles everything the HTTP layer needs. Tests build this
// from mock repositories; SetupRoutes builds it on top of Badger.
type Services struct {
	Catalog  *services.CatalogService
	Posts    *services.PostService
	Comments *services.CommentService
	Users    *services.UserService
	Taxonomy *services.TaxonomyService
}

// BuildServices wires the service layer on top of the given repositories.
func BuildServices(
	users repositories.UserRepository,
	categories repositories.CategoryRepository,
	locations repositories.LocationRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	sessions repositories.SessionRepository,
	clock services.Clock,
) *Services {
	visibility := services.NewVisibility(categories, clock)
	return &Services{
		Catalog:  services.NewCatalogService(posts, comments, categories, locations, users, clock),
		Posts:    services.NewPostService(posts, comments, visibility, clock),
		Comments: services.NewCommentService(comments, posts, clock),
		Users:    services.NewUserService(users, posts, comments, sessions, clock),
		Taxonomy: services.NewTaxonomyService(categories, locations, posts, clock),
	}
}

// NewRouter builds the full route table with logging, panic recovery
// and session authentication applied to every request.
func NewRouter(svc *Services, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.Authenticate(svc.Users))

	catalog := controllers.NewCatalogController(svc.Catalog)
	posts := controllers.NewPostController(svc.Posts)
	comments := controllers.NewCommentController(svc.Comments)
	auth := controllers.NewAuthController(svc.Users)

	router.HandleFunc("/", catalog.Home).Methods("GET")
	router.HandleFunc("/posts", catalog.Home).Methods("GET")
	router.HandleFunc("/posts", posts.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", posts.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", posts.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id:[0-9]+}", posts.Delete).Methods("DELETE")

	router.HandleFunc("/posts/{postId:[0-9]+}/comments", comments.Create).Methods("POST")
	router.HandleFunc("/posts/{postId:[0-9]+}/comments/{id:[0-9]+}", comments.Edit).Methods("PUT")
	router.HandleFunc("/posts/{postId:[0-9]+}/comments/{id:[0-9]+}", comments.Delete).Methods("DELETE")

	router.HandleFunc("/category/{slug:[a-zA-Z0-9_-]+}", catalog.Category).Methods("GET")

	router.HandleFunc("/profile", auth.UpdateProfile).Methods("PUT")
	router.HandleFunc("/profile/{username}", catalog.Profile).Methods("GET")

	router.HandleFunc("/auth/register", auth.Register).Methods("POST")
	router.HandleFunc("/auth/login", auth.Login).Methods("POST")
	router.HandleFunc("/auth/logout", auth.Logout).Methods("POST")

	return router
}

// SetupRoutes wires Badger-backed repositories into the router. This is
// the composition root used by the server command.
func SetupRoutes(db *badger.DB, log *zap.Logger) *mux.Router {
	svc := BuildServices(
		repositories.NewBadgerUserRepository(db),
		repositories.NewBadgerCategoryRepository(db),
		repositories.NewBadgerLocationRepository(db),
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		repositories.NewBadgerSessionRepository(db),
		services.SystemClock(),
	)
	return NewRouter(svc, log)
}
