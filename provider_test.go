package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	BaseProvider

	registered int
	booted     int
}

func (p *recordingProvider) Register(c *Container) error {
	p.registered++
	c.BindInstance("recorded", p.registered)
	return nil
}

func (p *recordingProvider) Boot(*Container) error {
	p.booted++
	return nil
}

type deferredProvider struct {
	BaseProvider

	registered int
}

func (p *deferredProvider) Register(c *Container) error {
	p.registered++
	return c.BindFactory("lazy", func() *widget {
		return &widget{id: 99}
	}, true)
}

func (p *deferredProvider) Provides() []string {
	return []string{"lazy"}
}

func TestProviderRegistry(t *testing.T) {
	require := require.New(t)

	c := New()
	r := NewProviderRegistry(c)

	p := &recordingProvider{}
	require.NoError(r.Register(p))
	require.Equal(1, p.registered)
	require.Equal(0, p.booted)

	got, err := c.Get("recorded")
	require.NoError(err)
	require.Equal(1, got)

	require.NoError(r.Boot())
	require.Equal(1, p.booted)

	// Booting twice is a no-op.
	require.NoError(r.Boot())
	require.Equal(1, p.booted)
}

func TestProviderRegistry_registerAfterBoot(t *testing.T) {
	require := require.New(t)

	c := New()
	r := NewProviderRegistry(c)
	require.NoError(r.Boot())

	p := &recordingProvider{}
	require.NoError(r.Register(p))
	require.Equal(1, p.registered)
	require.Equal(1, p.booted)
}

func TestProviderRegistry_deferred(t *testing.T) {
	require := require.New(t)

	c := New()
	r := NewProviderRegistry(c)

	p := &deferredProvider{}
	require.NoError(r.Register(p))
	require.NoError(r.Boot())

	// Registration has not run yet; the identifier is still resolvable.
	require.Equal(0, p.registered)
	require.True(c.Has("lazy"))

	first, err := c.Get("lazy")
	require.NoError(err)
	require.Equal(1, p.registered)
	require.Equal(99, first.(*widget).id)

	// The real singleton binding replaced the trampoline.
	second, err := c.Get("lazy")
	require.NoError(err)
	require.Same(first, second)
	require.Equal(1, p.registered)
}

type emptyDeferredProvider struct {
	BaseProvider
}

func (p *emptyDeferredProvider) Register(*Container) error { return nil }

func (p *emptyDeferredProvider) Provides() []string {
	return []string{"phantom"}
}

func TestProviderRegistry_deferredNeverBinds(t *testing.T) {
	require := require.New(t)

	c := New()
	r := NewProviderRegistry(c)
	require.NoError(r.Register(&emptyDeferredProvider{}))

	// Provides lists an identifier Register never binds; resolution must
	// fail cleanly instead of re-entering the trampoline.
	_, err := c.Get("phantom")
	require.Error(err)
	require.Contains(err.Error(), "never binds")
}

type failingProvider struct {
	BaseProvider
}

func (p *failingProvider) Register(*Container) error {
	return errors.New("register failed")
}

func TestProviderRegistry_registerError(t *testing.T) {
	require := require.New(t)

	r := NewProviderRegistry(New())
	require.EqualError(r.Register(&failingProvider{}), "register failed")
}
