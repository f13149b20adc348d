package llm

import "strings"

// Model identifiers are qualified as provider/name, the form OpenRouter
// expects. Aliases from the models map resolve through their
// ModelConfig; an already-qualified identifier passes through untouched.

// ResolveModelID returns the fully qualified identifier for an alias.
func ResolveModelID(alias string, cfg ModelConfig) string {
	alias = strings.TrimSpace(alias)
	if strings.Contains(alias, "/") {
		return alias
	}

	name := strings.TrimSpace(cfg.ModelName)
	if name == "" {
		name = alias
	}
	if strings.Contains(name, "/") {
		return name
	}
	if provider := strings.TrimSpace(cfg.Provider); provider != "" {
		return provider + "/" + name
	}
	return name
}

// ParseModelID splits a qualified identifier into provider and name.
// An unqualified identifier yields an empty provider.
func ParseModelID(model string) (provider, name string) {
	if i := strings.Index(model, "/"); i >= 0 {
		return model[:i], model[i+1:]
	}
	return "", model
}
