package routes

import (
	"net/http"

	"quill/app/controllers"
	"quill/app/middleware"
	"quill/app/realtime"
	"quill/app/repositories"
	"quill/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Deps carries everything the router wires together.
type Deps struct {
	Articles    *services.ArticleService
	Comments    *services.CommentService
	Attachments *services.AttachmentService
	Users       *services.UserService
	Favorites   *services.FavoriteService
	Categories  repositories.CategoryRepository
	FriendLinks repositories.FriendLinkRepository
	Hub         *realtime.Hub
	WSOptions   realtime.Options
	UploadDir   string
	Log         zerolog.Logger
}

// Setup defines the application's routes and returns a router.
func Setup(deps Deps) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Recoverer(deps.Log))

	articleController := controllers.NewArticleController(deps.Articles)
	commentController := controllers.NewCommentController(deps.Comments)
	attachmentController := controllers.NewAttachmentController(deps.Attachments)
	authController := controllers.NewAuthController(deps.Users)
	favoriteController := controllers.NewFavoriteController(deps.Favorites)
	categoryController := controllers.NewCategoryController(deps.Categories)
	friendLinkController := controllers.NewFriendLinkController(deps.FriendLinks)

	authed := middleware.RequireAuth(deps.Users)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(h))
	}

	// Realtime comment channel
	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(deps.Hub, deps.WSOptions, w, r)
	}).Methods("GET")

	// Uploaded comment images
	router.PathPrefix("/uploads/comments/").Handler(
		http.StripPrefix("/uploads/comments/", http.FileServer(http.Dir(deps.UploadDir))))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth endpoints
	api.HandleFunc("/auth/register", authController.Register).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")
	api.Handle("/auth/me", authed(http.HandlerFunc(authController.Me))).Methods("GET")

	// Articles API endpoints
	articles := api.PathPrefix("/articles").Subrouter()
	articles.HandleFunc("", articleController.Index).Methods("GET")
	articles.HandleFunc("/{id:[0-9]+}", articleController.Show).Methods("GET")
	articles.Handle("", admin(articleController.Create)).Methods("POST")
	articles.Handle("/{id:[0-9]+}", admin(articleController.Update)).Methods("PUT")
	articles.Handle("/{id:[0-9]+}", admin(articleController.Delete)).Methods("DELETE")

	// Comments API endpoints
	articles.HandleFunc("/{articleId:[0-9]+}/comments", commentController.Index).Methods("GET")
	api.HandleFunc("/comments/counts", commentController.Counts).Methods("GET")
	api.Handle("/comments/{id:[0-9]+}", admin(commentController.Delete)).Methods("DELETE")

	// Comment image uploads. Open like comment submission itself;
	// anonymous commenters attach images too.
	api.HandleFunc("/comments/images", attachmentController.Upload).Methods("POST")
	api.HandleFunc("/comments/images/delete", attachmentController.Delete).Methods("POST")

	// Favorites
	api.Handle("/favorites", authed(http.HandlerFunc(favoriteController.Index))).Methods("GET")
	api.Handle("/articles/{articleId:[0-9]+}/favorite", authed(http.HandlerFunc(favoriteController.Toggle))).Methods("POST")

	// Categories
	api.HandleFunc("/categories", categoryController.Index).Methods("GET")
	api.Handle("/categories", admin(categoryController.Create)).Methods("POST")
	api.Handle("/categories/{id:[0-9]+}", admin(categoryController.Update)).Methods("PUT")
	api.Handle("/categories/{id:[0-9]+}", admin(categoryController.Delete)).Methods("DELETE")

	// Friend links
	api.HandleFunc("/friendlinks", friendLinkController.Index).Methods("GET")
	api.Handle("/friendlinks", admin(friendLinkController.Create)).Methods("POST")
	api.Handle("/friendlinks/{id:[0-9]+}", admin(friendLinkController.Update)).Methods("PUT")
	api.Handle("/friendlinks/{id:[0-9]+}", admin(friendLinkController.Delete)).Methods("DELETE")

	// Admin user management
	api.Handle("/users", admin(authController.ListUsers)).Methods("GET")
	api.Handle("/users/{id:[0-9]+}/frozen", admin(authController.SetFrozen)).Methods("PUT")
	api.Handle("/users/{id:[0-9]+}/password", admin(authController.ResetPassword)).Methods("PUT")

	return router
}
