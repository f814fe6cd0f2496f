package server

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"MoodSync/cache"
	"MoodSync/config"
	"MoodSync/core/auth"
	"MoodSync/db"
	"MoodSync/logger"
	"MoodSync/model"
	"MoodSync/repository"
	"MoodSync/service"
	"MoodSync/storage"

	"github.com/gorilla/mux"
	"github.com/minio/minio-go/v7"
)

// Start initializes all backing services and runs the HTTP server until an
// interrupt arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	auth.InitJWT(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHour)*time.Hour)

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("database connection failed", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(
		&model.User{},
		&model.Genre{},
		&model.Song{},
		&model.MoodSong{},
		&model.Favorite{},
		&model.Playlist{},
		&model.PlaylistSong{},
		&model.EmotionRecord{},
		&model.Feedback{},
	); err != nil {
		logger.Fatal("schema migration failed", logger.ErrorField(err))
	}

	// Redis and MinIO are optional: the API degrades to uncached listings
	// and rejected uploads when they are unreachable.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("redis unavailable, mood cache disabled", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
	}

	if err := storage.InitMinio(cfg); err != nil {
		logger.Warn("minio unavailable, cover uploads disabled", logger.ErrorField(err))
	}

	songRepo := repository.NewGormSongRepository(db.GormDB)
	genreRepo := repository.NewGormGenreRepository(db.GormDB)
	moodSongRepo := repository.NewGormMoodSongRepository(db.GormDB)
	favoriteRepo := repository.NewGormFavoriteRepository(db.GormDB)
	userRepo := repository.NewGormUserRepository(db.GormDB)
	playlistRepo := repository.NewGormPlaylistRepository(db.GormDB)
	emotionRepo := repository.NewGormEmotionRepository(db.GormDB)
	feedbackRepo := repository.NewGormFeedbackRepository(db.GormDB)

	moodCache := cache.NewMoodCache(db.RedisClient)

	catalogSvc := service.NewCatalogService(songRepo, genreRepo, moodCache)
	moodSongSvc := service.NewMoodSongService(moodSongRepo, songRepo, moodCache)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, songRepo)
	userSvc := service.NewUserService(userRepo)
	playlistSvc := service.NewPlaylistService(playlistRepo, songRepo)
	emotionSvc := service.NewEmotionService(emotionRepo)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, songRepo)
	recommendationSvc := service.NewRecommendationService(moodSongRepo, favoriteRepo, emotionRepo)

	authHandler := NewAuthHandler(userSvc)
	songHandler := NewSongHandler(catalogSvc)
	genreHandler := NewGenreHandler(catalogSvc)
	moodSongHandler := NewMoodSongHandler(moodSongSvc)
	favoriteHandler := NewFavoriteHandler(favoriteSvc)
	userHandler := NewUserHandler(userSvc)
	playlistHandler := NewPlaylistHandler(playlistSvc)
	emotionHandler := NewEmotionHandler(emotionSvc)
	feedbackHandler := NewFeedbackHandler(feedbackSvc)
	recommendationHandler := NewRecommendationHandler(recommendationSvc)
	wsEmotionHandler := NewWSEmotionHandler(emotionSvc, recommendationSvc)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	// Auth
	router.HandleFunc("/api/auth/register", authHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", authHandler.LoginHandler).Methods(http.MethodPost)

	// Users
	router.HandleFunc("/api/users", userHandler.ListUsersHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/users/profile", AuthMiddleware(userHandler.ProfileHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/users/profile", AuthMiddleware(userHandler.UpdateOwnProfileHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/users/{id}", userHandler.GetUserHandler).Methods(http.MethodGet)

	// Songs
	router.HandleFunc("/api/songs", songHandler.ListSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", AuthMiddleware(songHandler.CreateSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/search", songHandler.SearchSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/genre/{genreId}", songHandler.SongsByGenreHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", songHandler.GetSongHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", AuthMiddleware(songHandler.UpdateSongHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}", AuthMiddleware(songHandler.DeleteSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/songs/{id}/cover", AuthMiddleware(songHandler.UploadCoverHandler)).Methods(http.MethodPost)

	// Genres
	router.HandleFunc("/api/genres", genreHandler.ListGenresHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/genres", AuthMiddleware(genreHandler.CreateGenreHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/genres/{id}", AuthMiddleware(genreHandler.UpdateGenreHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/genres/{id}", AuthMiddleware(genreHandler.DeleteGenreHandler)).Methods(http.MethodDelete)

	// Mood mappings
	router.HandleFunc("/api/mood-songs", AuthMiddleware(moodSongHandler.CreateMoodSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/mood-songs/moods", moodSongHandler.ListMoodsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/mood-songs/mood/{mood}", moodSongHandler.ListByMoodHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/mood-songs/song/{songId}", moodSongHandler.BySongHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/mood-songs/{id}", moodSongHandler.GetMoodSongHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/mood-songs/{id}", AuthMiddleware(moodSongHandler.UpdateMoodSongHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/mood-songs/{id}", AuthMiddleware(moodSongHandler.DeleteMoodSongHandler)).Methods(http.MethodDelete)

	// Favorites
	router.HandleFunc("/api/favorites", favoriteHandler.AddFavoriteHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites", favoriteHandler.ListFavoritesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/check/{songId}", favoriteHandler.CheckFavoriteHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/{songId}", favoriteHandler.RemoveFavoriteHandler).Methods(http.MethodDelete)

	// Playlists
	router.HandleFunc("/api/playlists", AuthMiddleware(playlistHandler.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists", AuthMiddleware(playlistHandler.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", AuthMiddleware(playlistHandler.GetPlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", AuthMiddleware(playlistHandler.UpdatePlaylistHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", AuthMiddleware(playlistHandler.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/songs", AuthMiddleware(playlistHandler.AddPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", AuthMiddleware(playlistHandler.RemovePlaylistSongHandler)).Methods(http.MethodDelete)

	// Emotions
	router.HandleFunc("/api/emotions", AuthMiddleware(emotionHandler.RecordEmotionHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/emotions", AuthMiddleware(emotionHandler.ListEmotionsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/emotions/latest", AuthMiddleware(emotionHandler.LatestEmotionHandler)).Methods(http.MethodGet)
	router.HandleFunc("/ws/emotion", wsEmotionHandler.StreamHandler)

	// Feedback
	router.HandleFunc("/api/feedback", AuthMiddleware(feedbackHandler.CreateFeedbackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/feedback", AuthMiddleware(feedbackHandler.ListFeedbackHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/feedback/{id}", AuthMiddleware(feedbackHandler.DeleteFeedbackHandler)).Methods(http.MethodDelete)

	// Recommendations
	router.HandleFunc("/api/recommendations", OptionalAuthMiddleware(recommendationHandler.ByMoodHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/recommendations/me", AuthMiddleware(recommendationHandler.ForMeHandler)).Methods(http.MethodGet)

	// Cover art and other objects are served straight out of MinIO.
	router.PathPrefix("/static/").HandlerFunc(serveMinioObject)

	// Frontend UI serving
	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/").Handler(uiFileServer)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func serveMinioObject(w http.ResponseWriter, r *http.Request) {
	objectPath := strings.TrimPrefix(r.URL.Path, "/static/")
	client := storage.GetMinioClient()
	if client == nil {
		http.Error(w, "object storage not available", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	object, err := client.GetObject(ctx, storage.Bucket(), objectPath, minio.GetObjectOptions{})
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	defer object.Close()

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(objectPath, ".png"):
		contentType = "image/png"
	case strings.HasSuffix(objectPath, ".jpg"), strings.HasSuffix(objectPath, ".jpeg"):
		contentType = "image/jpeg"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if _, err := io.Copy(w, object); err != nil {
		logger.Warn("serving object failed", logger.String("object", objectPath), logger.ErrorField(err))
	}
}
