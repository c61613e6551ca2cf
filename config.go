package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// DefaultHeader is the request header carrying the token when none is configured
const DefaultHeader = "mg-a-token"

// DefaultValidity is the token lifetime in minutes when none is configured
const DefaultValidity = 60

// CORSOptions is passthrough configuration for the surrounding HTTP layer.
// The authentication core never reads it.
type CORSOptions struct {
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
	AllowedMethods []string `json:"allowedMethods,omitempty" yaml:"allowedMethods,omitempty"`
	AllowedHeaders []string `json:"allowedHeaders,omitempty" yaml:"allowedHeaders,omitempty"`
	ExposedHeaders []string `json:"exposedHeaders,omitempty" yaml:"exposedHeaders,omitempty"`
}

// Options is the concrete configuration surface. It satisfies Config so it
// can be handed straight to NewTokenService and the middleware; loaders own
// how it is populated (file, env, flags).
type Options struct {
	// Secret signs and verifies every token, required
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`
	// Validity is the token lifetime in minutes
	Validity int `json:"validity,omitempty" yaml:"validity,omitempty"`
	// Header is the request header carrying the raw token
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
	// Endpoints are the authorization rules evaluated after authentication
	Endpoints RuleSet `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	// ExcludedEndpoints bypass the authentication pipeline entirely
	ExcludedEndpoints RuleSet `json:"excludedEndpoints,omitempty" yaml:"excludedEndpoints,omitempty"`
	// CORS is opaque passthrough for the transport layer
	CORS *CORSOptions `json:"cors,omitempty" yaml:"cors,omitempty"`
}

var _ Config = (*Options)(nil)

// Validate checks the options, applying defaults for optional fields.
func (o *Options) Validate() error {
	if o.Header == "" {
		o.Header = DefaultHeader
	}

	if o.Validity == 0 {
		o.Validity = DefaultValidity
	}

	return validation.ValidateStruct(o,
		validation.Field(&o.Secret, validation.Required),
		validation.Field(&o.Header, validation.Required),
	)
}

func (o *Options) GetSecret() string {
	return o.Secret
}

func (o *Options) GetValidity() int {
	return o.Validity
}

func (o *Options) GetHeader() string {
	return o.Header
}

func (o *Options) GetEndpoints() []EndpointRule {
	return o.Endpoints
}

func (o *Options) GetExcludedEndpoints() []EndpointRule {
	return o.ExcludedEndpoints
}
