package container

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// ServiceProvider groups related container registrations. Register binds
// services; Boot runs after every provider has registered, so it is the
// place to resolve and use other bindings.
type ServiceProvider interface {
	Register(c *Container) error
	Boot(c *Container) error
}

// DeferrableProvider is an optional interface for providers whose Register
// should be delayed until one of the identifiers they provide is first
// resolved. Provides must name every identifier Register binds.
type DeferrableProvider interface {
	ServiceProvider

	Provides() []string
}

// BaseProvider is an embeddable struct with a no-op Boot. Embed it in a
// provider that only needs Register.
type BaseProvider struct{}

func (BaseProvider) Boot(*Container) error { return nil }

// ProviderRegistry manages registration and booting of service providers,
// including deferred ones.
type ProviderRegistry struct {
	container *Container
	providers []ServiceProvider
	booted    bool
	logger    hclog.Logger
}

// NewProviderRegistry creates a registry bound to the given container.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		container: c,
		logger:    c.logger,
	}
}

// Register runs the provider's Register immediately, or, for a
// DeferrableProvider, installs lazy bindings that load the provider on
// first resolution of any identifier it provides. When the registry has
// already booted, an eager provider's Boot runs right away.
func (r *ProviderRegistry) Register(p ServiceProvider) error {
	if d, ok := p.(DeferrableProvider); ok {
		r.registerDeferred(d)
		return nil
	}

	r.logger.Trace("registering provider", "provider", providerName(p))
	if err := p.Register(r.container); err != nil {
		return err
	}
	r.providers = append(r.providers, p)

	if r.booted {
		return p.Boot(r.container)
	}
	return nil
}

// Boot boots every registered provider. Safe to call once; later calls are
// no-ops. Providers registered after Boot are booted on registration.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true

	for _, p := range r.providers {
		r.logger.Trace("booting provider", "provider", providerName(p))
		if err := p.Boot(r.container); err != nil {
			return err
		}
	}

	return nil
}

// registerDeferred binds a loading trampoline under each provided
// identifier. The first Get of any of them runs the provider's Register,
// which replaces the trampolines with the real bindings, then resolves the
// identifier against those.
func (r *ProviderRegistry) registerDeferred(p DeferrableProvider) {
	var once sync.Once
	var loadErr error
	load := func() error {
		once.Do(func() {
			r.logger.Trace("loading deferred provider", "provider", providerName(p))
			if loadErr = p.Register(r.container); loadErr != nil {
				return
			}
			loadErr = p.Boot(r.container)
		})
		return loadErr
	}

	for _, identifier := range p.Provides() {
		identifier := identifier

		var trampoline *Func
		trampoline, _ = NewFunc(func() (interface{}, error) {
			if err := load(); err != nil {
				return nil, err
			}

			// The provider must have replaced this trampoline; resolving
			// through it again would recurse forever.
			c := r.container
			c.mu.RLock()
			b, stillBound := c.bindings[identifier]
			_, hasInstance := c.instances[identifier]
			c.mu.RUnlock()
			if !hasInstance && stillBound && b.factory == trampoline {
				return nil, fmt.Errorf(
					"deferred provider %s lists %q in Provides but never binds it",
					providerName(p), identifier)
			}

			return c.Get(identifier)
		})

		r.container.bind(identifier, trampoline, false)
	}
}

func providerName(p ServiceProvider) string {
	type named interface{ Name() string }
	if n, ok := p.(named); ok {
		return n.Name()
	}

	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
