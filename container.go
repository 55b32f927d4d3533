package container

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Container is a registry mapping string identifiers to object construction
// strategies. It owns three keyed mappings (bindings, live instances, and
// aliases) and resolves constructor and function parameters by matching
// declared parameter names against registered identifiers.
//
// The maps are guarded by a read/write mutex covering map access only;
// user-supplied factories run outside the lock so they may resolve further
// identifiers from the container. As a consequence, concurrent first access
// to a singleton that has not been promoted yet may run its factory more
// than once; promotion is last-write-wins and every later Get observes a
// single instance.
type Container struct {
	mu sync.RWMutex

	// bindings maps an identifier to its registered factory.
	bindings map[string]*binding

	// instances maps an identifier to an already produced value. A value
	// is stored here either directly by BindInstance or by singleton
	// promotion on first Get.
	instances map[string]interface{}

	// aliases maps an alternative name to a target identifier. Chains are
	// flattened at registration time.
	aliases map[string]string

	logger hclog.Logger
}

// binding holds a registered factory and whether its first resolution is
// promoted to a cached instance.
type binding struct {
	factory   *Func
	singleton bool
}

// Option configures a Container on creation.
type Option func(*Container)

// WithLogger sets the logger used by the container's registration and
// resolution paths. Defaults to hclog.L().
func WithLogger(l hclog.Logger) Option {
	return func(c *Container) {
		c.logger = l
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]interface{}),
		aliases:   make(map[string]string),
		logger:    hclog.L(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Has returns true if the identifier is registered as a binding, an
// instance, or an alias.
func (c *Container) Has(identifier string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasLocked(identifier)
}

func (c *Container) hasLocked(identifier string) bool {
	if _, ok := c.bindings[identifier]; ok {
		return true
	}
	if _, ok := c.instances[identifier]; ok {
		return true
	}
	_, ok := c.aliases[identifier]
	return ok
}

// Get resolves the value registered under the given identifier.
//
// The identifier is resolved through the alias chain to its root key. An
// existing instance is returned directly, with the same identity on every
// call. A binding runs its factory with auto-wired parameters; when the
// binding is marked singleton the produced value is stored as an instance
// and the binding entry is removed, a one-way transition.
func (c *Container) Get(identifier string) (interface{}, error) {
	c.mu.RLock()
	if !c.hasLocked(identifier) {
		err := &UnknownIdentifierError{
			Identifier: identifier,
			Registered: c.registeredLocked(),
		}
		c.mu.RUnlock()
		return nil, err
	}

	key := c.canonicalLocked(identifier)
	if instance, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return instance, nil
	}

	b, ok := c.bindings[key]
	var singleton bool
	if ok {
		singleton = b.singleton
	}
	c.mu.RUnlock()

	if !ok {
		// Alias whose target was never registered.
		return nil, &UnknownIdentifierError{Identifier: key, Registered: c.registered()}
	}

	c.logger.Trace("resolving binding", "identifier", key, "singleton", singleton)

	args, err := newArgBuilderWith(c.logger)
	if err != nil {
		return nil, err
	}
	value, err := c.call(b.factory, args)
	if err != nil {
		return nil, err
	}

	if singleton {
		c.mu.Lock()
		// Another caller may have promoted between our read and now.
		if instance, ok := c.instances[key]; ok {
			c.mu.Unlock()
			return instance, nil
		}
		c.instances[key] = value
		delete(c.bindings, key)
		c.mu.Unlock()
		c.logger.Trace("promoted binding to instance", "identifier", key)
	}

	return value, nil
}

// BindInstance registers a pre-built value under the given identifier.
// Unconditional upsert; every Get returns this exact value.
func (c *Container) BindInstance(identifier string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[identifier] = value
	c.logger.Trace("bound instance", "identifier", identifier)
}

// BindConstructor registers a binding that constructs a new value of the
// given type on resolution. With singleton set, the first Get caches the
// constructed value.
func (c *Container) BindConstructor(identifier string, t *Type, singleton bool) error {
	if t == nil {
		return fmt.Errorf("constructor binding %q needs a type descriptor", identifier)
	}

	factory, err := NewFunc(func() (interface{}, error) {
		return c.Construct(t)
	}, WithName(fmt.Sprintf("construct(%s)", t.Name())))
	if err != nil {
		return err
	}

	c.bind(identifier, factory, singleton)
	return nil
}

// BindFactory registers the given function as the producer for the
// identifier. The factory is invoked with no explicit parameters; its own
// declared parameters, if any, are auto-wired from the container the same
// way Invoke wires them. Opts may carry parameter-name metadata or a
// signature override for the factory.
func (c *Container) BindFactory(identifier string, factory interface{}, singleton bool, opts ...Arg) error {
	f, err := NewFunc(factory, opts...)
	if err != nil {
		return err
	}

	c.bind(identifier, f, singleton)
	return nil
}

func (c *Container) bind(identifier string, factory *Func, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Rebinding drops a previously cached value so the new factory takes
	// effect on the next Get.
	delete(c.instances, identifier)
	c.bindings[identifier] = &binding{factory: factory, singleton: singleton}
	c.logger.Trace("bound factory", "identifier", identifier, "singleton", singleton)
}

// MakeSingleton marks an existing binding as a singleton so that its next
// resolution is cached. A no-op when the identifier already resolves to an
// instance. Returns *UnknownIdentifierError when the identifier was never
// registered.
func (c *Container) MakeSingleton(identifier string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasLocked(identifier) {
		return &UnknownIdentifierError{
			Identifier: identifier,
			Registered: c.registeredLocked(),
		}
	}

	key := c.canonicalLocked(identifier)
	if _, ok := c.instances[key]; ok {
		return nil
	}

	if b, ok := c.bindings[key]; ok {
		b.singleton = true
		c.logger.Trace("marked binding singleton", "identifier", key)
	}

	return nil
}

// Alias registers aliasName as an alternative name for the identifier.
// Any existing alias chain rooted at the identifier is collapsed first, so
// aliases always point one hop from a root binding or instance key. An
// alias that would point at itself is ignored.
func (c *Container) Alias(identifier, aliasName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.canonicalLocked(identifier)
	if aliasName == target {
		return
	}

	c.aliases[aliasName] = target
	c.logger.Trace("registered alias", "alias", aliasName, "target", target)
}

// canonicalLocked resolves an identifier through the alias chain to its
// root binding or instance key. Binding and instance keys shadow an alias
// registered under the same name. Callers must hold at least a read lock.
func (c *Container) canonicalLocked(identifier string) string {
	// Chains are flattened on write; the loop bound only guards against a
	// hand-crafted cycle.
	for i := 0; i <= len(c.aliases); i++ {
		if _, ok := c.instances[identifier]; ok {
			return identifier
		}
		if _, ok := c.bindings[identifier]; ok {
			return identifier
		}

		target, ok := c.aliases[identifier]
		if !ok || target == identifier {
			return identifier
		}
		identifier = target
	}

	return identifier
}

func (c *Container) registered() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registeredLocked()
}

func (c *Container) registeredLocked() []string {
	result := make([]string, 0, len(c.bindings)+len(c.instances)+len(c.aliases))
	for k := range c.bindings {
		result = append(result, k)
	}
	for k := range c.instances {
		result = append(result, k)
	}
	for k := range c.aliases {
		result = append(result, k)
	}
	return result
}

// Resolve is a generic helper over Get that type-asserts the result.
func Resolve[T any](c *Container, identifier string) (T, error) {
	var zero T

	value, err := c.Get(identifier)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("identifier %q resolved to %T, want %T", identifier, value, zero)
	}

	return typed, nil
}
