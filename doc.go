// Package container is a runtime dependency-injection container for Go.
//
// The container maps string identifiers to object-construction strategies
// (pre-built instances, factory functions, and constructible type
// descriptors) and resolves constructor and function parameters by
// matching declared parameter names against registered identifiers.
//
// # Registration
//
//	c := container.New()
//
//	// A pre-built value, returned as-is on every Get.
//	c.BindInstance("config", cfg)
//
//	// A factory; its parameters are auto-wired from the container.
//	c.BindFactory("mailer", func(in struct {
//		Config *Config
//	}) *Mailer {
//		return NewMailer(in.Config)
//	}, true)
//
//	// An alternative name. Chains are flattened on registration.
//	c.Alias("mailer", "mail")
//
// # Parameter names
//
// Go reflection cannot recover the names of plain function arguments, so
// auto-wiring needs a structural source for them. A callable taking a single
// struct argument uses its exported field names, lowercased; a `container`
// field tag overrides the name. Any other callable supplies names with the
// ParameterNames option, paired positionally with its arguments:
//
//	c.BindFactory("report", NewReport, false,
//		container.ParameterNames("config", "mailer"))
//
// When neither applies the parameter list is treated as empty and the
// callable receives zero values. This is deliberate, silent degradation:
// extraction failure is never an error.
//
// # Resolution
//
// Get resolves an identifier through the alias chain to its root binding or
// instance. A binding marked singleton is promoted on first resolution: the
// produced value is cached as an instance and the binding entry removed.
//
//	mailer, err := container.Resolve[*Mailer](c, "mail")
//
// Invoke calls an arbitrary function with auto-wired arguments. Each
// parameter name resolves with a fixed precedence: an explicit parameter
// given via Named or FromStruct (an explicit Unset pins the zero value),
// then a container registration with that name, then the zero value of the
// parameter's type. An unresolvable name is not an error.
//
//	out, err := c.Invoke(func(in struct {
//		Mailer *Mailer
//		Dry    bool
//	}) error {
//		...
//	}, container.Named("dry", true))
//
// Construct builds a value of a described type, searching the descriptor's
// declared ancestry for the first explicit constructor the way an embedded
// struct lends its constructor to the outer type.
//
// Only an unknown identifier is fatal: Get and MakeSingleton return
// *UnknownIdentifierError for names that were never registered, and that
// error is always propagated to the caller.
package container
