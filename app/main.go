package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/moviestar/moviestar/internal/repository"
	mysqlRepo "github.com/moviestar/moviestar/internal/repository/mysql"
	redisCache "github.com/moviestar/moviestar/internal/repository/redis"
	"github.com/moviestar/moviestar/internal/workers"

	"github.com/moviestar/moviestar/internal/rest"
	"github.com/moviestar/moviestar/internal/rest/middleware"
	commentUC "github.com/moviestar/moviestar/internal/usecase/comment"
	movieUC "github.com/moviestar/moviestar/internal/usecase/movie"
	ratingUC "github.com/moviestar/moviestar/internal/usecase/rating"
	watchlistUC "github.com/moviestar/moviestar/internal/usecase/watchlist"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		// TranslateError maps MySQL 1062 to gorm.ErrDuplicatedKey, which the
		// vote repository relies on to detect concurrent first votes.
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	commentRepo := mysqlRepo.NewCommentRepository(db)
	voteRepo := mysqlRepo.NewVoteRepository(db)
	ratingRepo := mysqlRepo.NewRatingRepository(db)
	watchlistRepo := mysqlRepo.NewWatchlistRepository(db)

	// Movie gets the three-layer treatment: DB layer, cache layer, and the
	// coordinating repository with read-through and invalidation on top.
	movieDBRepo := mysqlRepo.NewMovieDBRepository(db)
	movieCache := redisCache.NewMovieCache(client)
	movieRepo := repository.NewMovieRepository(movieDBRepo, movieCache)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recounter := workers.NewRecountWorker(commentRepo)
	go recounter.Start(ctx)

	// Build service Layer
	movieSvc := movieUC.NewService(movieRepo)
	ratingSvc := ratingUC.NewService(ratingRepo, movieRepo, movieCache)
	commentSvc := commentUC.NewService(commentRepo, voteRepo, movieRepo, recounter)
	watchlistSvc := watchlistUC.NewService(watchlistRepo, movieRepo)

	movieHandler := rest.NewMovieHandler(movieSvc, ratingSvc)
	ratingHandler := rest.NewRatingHandler(ratingSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	watchlistHandler := rest.NewWatchlistHandler(watchlistSvc, movieHandler)

	authMiddleware := middleware.AuthMiddleware(os.Getenv("JWT_SECRET"))

	// Register routes
	route.GET("/movies", movieHandler.FetchAll)
	route.GET("/movies/search", movieHandler.Search)
	route.GET("/movies/genre/:genre", movieHandler.FetchByGenre)
	route.GET("/movies/actor/:actor", movieHandler.FetchByActor)
	route.GET("/movies/:id", movieHandler.GetByID)
	route.GET("/movies/:id/comments", commentHandler.FetchByMovie)

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.POST("/movies/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.DeleteOwn)

		authorized.POST("/comments/:id/like", commentHandler.Vote)
		authorized.DELETE("/comments/:id/like", commentHandler.Unvote)
		authorized.GET("/comments/:id/like/status", commentHandler.VoteStatus)

		authorized.POST("/movies/:id/rating", ratingHandler.Rate)
		authorized.GET("/movies/:id/rating", ratingHandler.Status)
		authorized.DELETE("/movies/:id/rating", ratingHandler.Remove)

		authorized.GET("/me/comments", commentHandler.FetchMine)
		authorized.GET("/me/ratings", ratingHandler.Mine)
		authorized.GET("/me/watchlist", watchlistHandler.List)
		authorized.POST("/me/watchlist/:id", watchlistHandler.Add)
		authorized.DELETE("/me/watchlist/:id", watchlistHandler.Remove)
		authorized.GET("/me/watchlist/:id", watchlistHandler.Contains)
	}

	admin := route.Group("/admin")
	admin.Use(authMiddleware, middleware.AdminOnly())
	{
		admin.POST("/movies", movieHandler.Store)
		admin.PUT("/movies/:id", movieHandler.Update)
		admin.DELETE("/movies/:id", movieHandler.Delete)
		admin.POST("/movies/:id/directors/:directorId", movieHandler.AttachDirector)
		admin.DELETE("/movies/:id/directors/:directorId", movieHandler.DetachDirector)

		admin.DELETE("/comments/:id", commentHandler.AdminDelete)
		admin.DELETE("/users/:username/comments", commentHandler.AdminDeleteAllForUser)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
