// Package container wires the application together with samber/do.
package container

import (
	"fmt"

	"github.com/JoshGearou/shortlink/internal/events"
	"github.com/JoshGearou/shortlink/internal/handlers"
	"github.com/JoshGearou/shortlink/internal/hasher"
	"github.com/JoshGearou/shortlink/internal/health"
	"github.com/JoshGearou/shortlink/internal/messaging"
	"github.com/JoshGearou/shortlink/internal/middleware"
	"github.com/JoshGearou/shortlink/internal/ratelimit"
	"github.com/JoshGearou/shortlink/internal/shortener"
	"github.com/JoshGearou/shortlink/internal/store"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Options holds the CLI-configurable knobs.
type Options struct {
	Port            int    `default:"8888"   help:"Port to listen on"                                                  short:"p"`
	BaseURL         string `default:""       help:"Base URL for returned short links; defaults to http://localhost:<port>"`
	DefaultStrategy string `default:"sha256" help:"Code derivation strategy used when the request does not name one"   short:"s"`
	MaxAttempts     int    `default:"16"     help:"Collision retry budget per shorten request"`
	SaltLength      int    `default:"6"      help:"Random salt length used once the retry budget is spent"`
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*zap.Logger, error) {
		return zap.NewProduction()
	})
}

// StorePackage provides the in-memory code table and the rate limit store.
func StorePackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (shortener.Store, error) {
		return store.NewMemoryStore(), nil
	})

	do.Provide(injector, func(_ *do.Injector) (ratelimit.Store, error) {
		return store.NewRateLimitMemoryStore(), nil
	})
}

// ResolverPackage provides the bounded collision resolver.
func ResolverPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Resolver, error) {
		options := do.MustInvoke[*Options](i)

		salt, err := nanoid.Standard(options.SaltLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewResolver(
			do.MustInvoke[shortener.Store](i),
			options.MaxAttempts,
			salt,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// MessagingPackage provides the in-process event bus, publisher group, and
// the link-created consumer.
func MessagingPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*gochannel.GoChannel, error) {
		return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.Consumer[events.LinkCreatedEvent], error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return messaging.NewConsumer(
			do.MustInvoke[*gochannel.GoChannel](i),
			events.TopicLinkCreated,
			events.LogHandler(logger),
			logger,
		), nil
	})
}

// HTTPPackage provides the router, the URL handler, and the huma API with all
// routes and middlewares registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*handlers.URLHandler, error) {
		options := do.MustInvoke[*Options](i)

		registry := hasher.DefaultRegistry()
		if _, ok := registry[options.DefaultStrategy]; !ok {
			return nil, fmt.Errorf("unknown default strategy %q", options.DefaultStrategy)
		}

		baseURL := options.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)
		publish := messaging.NewPublishFunc[events.LinkCreatedEvent](group.Publisher(), events.TopicLinkCreated)

		return handlers.NewURLHandler(
			do.MustInvoke[shortener.Store](i),
			do.MustInvoke[*shortener.Resolver](i),
			registry,
			baseURL,
			options.DefaultStrategy,
			publish,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		api := humachi.New(router, huma.DefaultConfig("shortlink", "1.0.0"))

		api.UseMiddleware(middleware.RateLimiter(api,
			do.MustInvoke[ratelimit.Store](i),
			do.MustInvoke[*zap.Logger](i),
		))

		handlers.RegisterRoutes(api, do.MustInvoke[*handlers.URLHandler](i))
		health.RegisterRoutes(api, health.NewHandler(do.MustInvoke[shortener.Store](i)))

		return api, nil
	})
}
