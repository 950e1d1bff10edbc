package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quill/app/config"
	"quill/app/logger"
	"quill/app/realtime"
	"quill/app/repositories"
	"quill/app/routes"
	"quill/app/services"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("quill version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: quill <command>
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the blog server (HTTP API, uploads and realtime comments).
`
	fmt.Println(helpText)
}

// serve wires the application together and runs the HTTP server until
// it receives SIGINT or SIGTERM.
func serve() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level)

	db, err := repositories.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to open store")
	}
	defer db.Close()

	articleRepo := repositories.NewBadgerArticleRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)
	friendLinkRepo := repositories.NewBadgerFriendLinkRepository(db)
	favoriteRepo := repositories.NewBadgerFavoriteRepository(db)

	attachments, err := services.NewAttachmentService(cfg.Uploads.Dir, cfg.Uploads.MaxFileSize, cfg.Uploads.MaxPerUpload, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init attachment store")
	}

	commentService := services.NewCommentService(commentRepo, articleRepo, attachments, log)
	articleService := services.NewArticleService(articleRepo, categoryRepo, log)
	userService := services.NewUserService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, log)
	favoriteService := services.NewFavoriteService(favoriteRepo, articleRepo, services.LogMailer{Log: log}, log)

	hub := realtime.NewHub(commentService, log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	router := routes.Setup(routes.Deps{
		Articles:    articleService,
		Comments:    commentService,
		Attachments: attachments,
		Users:       userService,
		Favorites:   favoriteService,
		Categories:  categoryRepo,
		FriendLinks: friendLinkRepo,
		Hub:         hub,
		WSOptions: realtime.Options{
			SendBufferSize:  cfg.Realtime.SendBufferSize,
			WriteWait:       cfg.Realtime.WriteWait,
			PongWait:        cfg.Realtime.PongWait,
			MaxMessageBytes: cfg.Realtime.MaxMessageBytes,
		},
		UploadDir: cfg.Uploads.Dir,
		Log:       log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
	stopHub()
}
