package nlp

import (
	"fmt"
	"path/filepath"
)

type Tokenizer interface {
	Tokenize(text string) TokenStream
}

type TokenizerFactory interface {
	Name() string
	Create() Tokenizer
}

type TokenFilterFactory interface {
	Name() string
	Create(input TokenStream) TokenStream
}

// Index identifies the index a component is configured for.
type Index struct {
	Name string
	UUID string
}

// Environment is supplied by the host. A nil Registry means DefaultRegistry.
type Environment struct {
	ConfigDir string
	Registry  *Registry
}

func (e Environment) Plugins() *Registry {
	if e.Registry == nil {
		return DefaultRegistry
	}
	return e.Registry
}

// ResolvePath resolves a relative path against ConfigDir.
func (e Environment) ResolvePath(path string) string {
	if filepath.IsAbs(path) || e.ConfigDir == "" {
		return path
	}
	return filepath.Join(e.ConfigDir, path)
}

// TokenizerConstructor builds a named tokenizer. On failure it returns an untyped nil factory with the error.
type TokenizerConstructor func(index Index, indexSettings Settings, env Environment, name string, settings Settings) (TokenizerFactory, error)

// TokenFilterConstructor builds a named filter. On failure it returns an untyped nil factory with the error.
type TokenFilterConstructor func(index Index, indexSettings Settings, env Environment, name string, settings Settings) (TokenFilterFactory, error)

// ConfigurationError aborts analyzer setup. It is never retried.
type ConfigurationError struct {
	Component string
	Name      string
	Err       error
}

func (c *ConfigurationError) Error() string {
	return fmt.Sprintf("failed to load %s for [%s]: %s", c.Component, c.Name, c.Err)
}

func (c *ConfigurationError) Unwrap() error {
	return c.Err
}
