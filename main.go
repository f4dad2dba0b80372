package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/takdanai-ph/taskboard/config"
	"github.com/takdanai-ph/taskboard/handlers"
	"github.com/takdanai-ph/taskboard/repositories"
	"github.com/takdanai-ph/taskboard/services"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	cfg := config.GetConfig()
	if cfg.JWTSecret == "" {
		log.Fatalln("JWT_SECRET is not set")
	}

	exp, err := newExporter(cfg.JaegerAddress)
	handleErr(err)
	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(context.Background()) }()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer := tp.Tracer("taskboard")

	// Set up a timeout context for the initial connections
	timeoutContext, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storeLogger := log.New(os.Stdout, "[taskboard-store] ", log.LstdFlags)

	mongoClient, err := repositories.NewMongoClient(timeoutContext, cfg.MongoURI, storeLogger)
	handleErr(err)

	userRepository := repositories.NewUserRepo(mongoClient, cfg.MongoDatabase, storeLogger)
	taskRepository := repositories.NewTaskRepo(mongoClient, cfg.MongoDatabase, storeLogger)
	teamRepository := repositories.NewTeamRepo(mongoClient, cfg.MongoDatabase, storeLogger)

	notificationRepository, err := repositories.NewNotificationRepo(cfg.CassandraHost, storeLogger)
	handleErr(err)
	defer notificationRepository.Close()

	notificationService := services.NewNotificationService(notificationRepository)
	authService := services.NewAuthService(userRepository, cfg.JWTSecret)
	userService := services.NewUserService(userRepository)
	taskService := services.NewTaskService(taskRepository, notificationService, storeLogger, tracer)
	teamService := services.NewTeamService(teamRepository, userRepository)

	authMiddleware := handlers.NewAuthMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, userService)
	taskHandler := handlers.NewTaskHandler(taskService, tracer)
	teamHandler := handlers.NewTeamHandler(teamService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	router := handlers.NewRouter(authMiddleware, authHandler, taskHandler, teamHandler, notificationHandler)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "PATCH"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	server := &http.Server{
		Handler: cors(router),
		Addr:    cfg.Address,
	}

	log.Println("Taskboard server is running on", cfg.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.Address, err)
		}
	}()

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	sig := <-sigCh
	log.Println("Received terminate, graceful shutdown", sig)

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Cannot gracefully shutdown:", err)
	}
	if err := userRepository.Disconnect(ctx); err != nil {
		log.Println("Error closing MongoDB connection:", err)
	}
	log.Println("Server stopped")
}

// handleErr is a helper function for error handling
func handleErr(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

func newExporter(address string) (*jaeger.Exporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("taskboard"),
		),
	)
	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
