package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"blog-service/configs"
	"blog-service/internal/media"
	"blog-service/internal/migrate"
	"blog-service/internal/post"
	"blog-service/internal/shared/httpx"
	"blog-service/internal/user"
	"blog-service/pkg/di"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gorm.io/plugin/opentelemetry/tracing"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("blog-service"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	tp := trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	cfg := configs.LoadConfig()
	container, err := di.BuildContainer(cfg)
	if err != nil {
		log.Fatalf("container: %v", err)
	}
	_ = container.DB.Use(tracing.NewPlugin())

	if os.Getenv("AUTO_MIGRATE") != "false" {
		if err := migrate.AutoMigrateAll(container.DB); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	if err := container.Media.EnsureBucket(ctx); err != nil {
		log.Fatalf("s3 ensure bucket: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	uh := user.NewHandler(container.UserService)
	mux.Handle("POST /users", httpx.Wrap(uh.Register))
	mux.Handle("POST /users/login", httpx.Wrap(uh.Login))

	ph := post.NewHandler(container.PostService)
	mux.Handle("GET /posts", httpx.Wrap(ph.List))
	mux.Handle("GET /posts/tag/{tag_slug}", httpx.Wrap(ph.ListByTag))
	mux.Handle("GET /posts/{year}/{month}/{day}/{slug}", httpx.Wrap(ph.Detail))
	mux.Handle("GET /search", httpx.Wrap(ph.Search))

	mh := media.NewHandler(container.Media)
	mux.Handle("GET /media/{key}", httpx.Wrap(mh.RedirectToSignedGet))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}
	protect("POST /posts", httpx.Wrap(ph.Create))
	protect("GET /manage", httpx.Wrap(ph.Manage))
	protect("PUT /posts/{slug}", httpx.Wrap(ph.Update))
	protect("DELETE /posts/{slug}", httpx.Wrap(ph.Delete))
	protect("POST /media/upload", httpx.Wrap(mh.Upload))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("blog-service listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
