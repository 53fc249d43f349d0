package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
)

type fakeProvider struct {
	name string
}

func (f fakeProvider) Name() string { return f.name }

func (f fakeProvider) AuthCodeURL(state, codeChallenge string) string {
	return "https://idp.example.com/auth?state=" + state
}

func (f fakeProvider) ExchangeCode(context.Context, string, string) (*auth.ExternalIdentity, error) {
	return &auth.ExternalIdentity{Provider: f.name}, nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(fakeProvider{name: "google"}, fakeProvider{name: "oidc"})

	p, err := r.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())

	_, err = r.Get("facebook")
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistryEnsure(t *testing.T) {
	r := NewRegistry(fakeProvider{name: "oidc"})

	require.NoError(t, r.Ensure("oidc"))

	// an empty registry can never satisfy the configured default
	empty := NewRegistry()
	require.ErrorIs(t, empty.Ensure("google"), ErrUnknownProvider)
	require.ErrorIs(t, r.Ensure("google"), ErrUnknownProvider)
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(fakeProvider{name: "google"}, fakeProvider{name: "oidc"})
	assert.ElementsMatch(t, []string{"google", "oidc"}, r.Names())
}
