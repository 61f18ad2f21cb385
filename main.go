package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/media"
	"github.com/mednest/Backend-Med-Nest/src/middleware"
	"github.com/mednest/Backend-Med-Nest/src/repository"
	"github.com/mednest/Backend-Med-Nest/src/routes"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

func main() {
	cfg := lib.LoadConfig()

	logger, err := lib.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := lib.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Fatalw("failed to connect to MongoDB", "error", err)
	}
	logger.Infow("connected to MongoDB", "database", cfg.MongoDB)

	if err := lib.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalw("failed to create indexes", "error", err)
	}

	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		logger.Fatalw("failed to configure media uploader", "error", err)
	}

	// repositories
	users := repository.NewMongoUserRepo(db)
	connections := repository.NewMongoConnectionRepo(db)
	posts := repository.NewMongoPostRepo(db)
	comments := repository.NewMongoCommentRepo(db)
	likes := repository.NewMongoLikeRepo(db)
	notifications := repository.NewMongoNotificationRepo(db)

	// services
	notificationService := services.NewNotificationService(notifications, logger)
	connectionService := services.NewConnectionService(connections, users, notificationService, logger)
	postService := services.NewPostService(posts, comments, likes, users, uploader, notificationService, logger)
	likeService := services.NewLikeService(likes, posts, comments, notificationService, logger)
	feedService := services.NewFeedService(posts, users, likes, comments)
	discoveryService := services.NewDiscoveryService(users, connections)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	protect := middleware.ProtectRoute(users, cfg.JWTSecret)
	identify := middleware.IdentifyUser(users, cfg.JWTSecret)

	authController := controllers.NewAuthController(users, cfg.JWTSecret, logger)
	userController := controllers.NewUserController(users, feedService, postService, logger)
	postController := controllers.NewPostController(postService, feedService, logger)
	commentController := controllers.NewCommentController(postService, logger)
	likeController := controllers.NewLikeController(likeService, logger)
	connectionController := controllers.NewConnectionController(connectionService, discoveryService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)

	routes.AuthRoutes(app, authController, protect)
	routes.UserRoutes(app, userController, protect, identify)
	routes.PostRoutes(app, postController, commentController, protect, identify)
	routes.EngagementRoutes(app, likeController, commentController, protect)
	routes.ConnectionRoutes(app, connectionController, protect)
	routes.NotificationRoutes(app, notificationController, protect)

	logger.Infow("server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
