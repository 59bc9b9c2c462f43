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

	"github.com/inkpress/inkpress/internal/repository"
	mysqlRepo "github.com/inkpress/inkpress/internal/repository/mysql"
	redisCache "github.com/inkpress/inkpress/internal/repository/redis"

	"github.com/inkpress/inkpress/internal/rest"
	"github.com/inkpress/inkpress/internal/rest/middleware"
	"github.com/inkpress/inkpress/internal/rest/request"
	"github.com/inkpress/inkpress/internal/usecase/admin"
	"github.com/inkpress/inkpress/internal/usecase/blog"
	"github.com/inkpress/inkpress/internal/usecase/comment"
	"github.com/inkpress/inkpress/internal/usecase/user"
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
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
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
	request.RegisterValidations()
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
	userRepo := mysqlRepo.NewUserRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	categoryRepo := mysqlRepo.NewCategoryRepository(db)
	likeRepo := mysqlRepo.NewLikeRepository(db)

	// Blog相关的三层架构
	// 1. DB层
	blogDBRepo := mysqlRepo.NewBlogRepository(db)
	// 2. Cache层
	blogCache := redisCache.NewBlogCache(client)
	// 3. Repository协调层
	blogRepo := repository.NewBlogRepository(blogDBRepo, likeRepo, blogCache)

	// Build service Layer
	jwtSecret := os.Getenv("JWT_SECRET")
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	blogSvc := blog.NewService(blogRepo, categoryRepo, likeRepo, userRepo, blogCache)
	commentSvc := comment.NewService(commentRepo, blogRepo, userRepo, blogCache)
	userSvc := user.NewService(userRepo, []byte(jwtSecret), time.Duration(jwtTTL)*time.Hour)
	adminSvc := admin.NewService(userRepo, blogRepo, categoryRepo, commentRepo, likeRepo)

	blogHandler := rest.NewBlogHandler(blogSvc, categoryRepo)
	commentHandler := rest.NewCommentHandler(commentSvc)
	userHandler := rest.NewUserHandler(userSvc)
	adminHandler := rest.NewAdminHandler(adminSvc)

	authMiddleware := middleware.AuthMiddleware(jwtSecret)
	optionalAuth := middleware.OptionalAuth(jwtSecret)

	// Register routes
	api := route.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.GET("/profile", authMiddleware, userHandler.Profile)
		auth.PUT("/profile", authMiddleware, userHandler.UpdateProfile)
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("/all", blogHandler.FetchAll)
		blogs.GET("/blog/:slug", optionalAuth, blogHandler.GetBySlug)
		blogs.GET("/search", blogHandler.Search)
		blogs.GET("/latest", blogHandler.Latest)
		blogs.GET("/trending", blogHandler.Trending)
		blogs.GET("/related/:slug", blogHandler.Related)
		blogs.GET("/author", blogHandler.ByAuthor)
		blogs.GET("/categories", blogHandler.FetchCategories)
		blogs.GET("/by-category", blogHandler.ByCategory)

		blogs.POST("", authMiddleware, blogHandler.Store)
		blogs.PUT("/update/:slug", authMiddleware, blogHandler.Update)
		blogs.DELETE("/delete/:slug", authMiddleware, blogHandler.Delete)
		blogs.POST("/like/:slug", authMiddleware, blogHandler.Like)
		blogs.GET("/like-status/:slug", authMiddleware, blogHandler.LikeStatus)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:commentId/replies", commentHandler.FetchReplies)
		comments.POST("/blog/:slug", authMiddleware, commentHandler.CreateComment)
		comments.DELETE("/:commentId", authMiddleware, commentHandler.DeleteComment)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(authMiddleware, middleware.AdminOnly())
	{
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.GET("/users/:id", adminHandler.GetUser)
		adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

		adminGroup.GET("/blogs", adminHandler.ListBlogs)
		adminGroup.GET("/blogs/:id", adminHandler.GetBlog)
		adminGroup.PATCH("/blogs/:id/publish", adminHandler.ToggleBlogPublish)
		adminGroup.DELETE("/blogs/:id", adminHandler.DeleteBlog)

		adminGroup.GET("/categories", adminHandler.ListCategories)
		adminGroup.GET("/categories/:id", adminHandler.GetCategory)
		adminGroup.POST("/categories", adminHandler.CreateCategory)
		adminGroup.PUT("/categories/:id", adminHandler.UpdateCategory)
		adminGroup.DELETE("/categories/:id", adminHandler.DeleteCategory)

		adminGroup.GET("/comments", adminHandler.ListComments)
		adminGroup.GET("/comments/:id", adminHandler.GetComment)
		adminGroup.DELETE("/comments/:id", adminHandler.DeleteComment)

		adminGroup.GET("/analytics", adminHandler.Analytics)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	log.Println("Server exiting")
}
