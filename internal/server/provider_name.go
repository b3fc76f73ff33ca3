package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/scorigami-service/internal/providers"
)

// normalizeProviderName labels a provider for metrics and logs.
// An explicit GAME_PROVIDER wins; otherwise the implementing package name is used.
func normalizeProviderName(raw string, provider providers.GameProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider == nil {
		return "provider"
	}
	typeName := strings.TrimPrefix(fmt.Sprintf("%T", provider), "*")
	pkg, _, _ := strings.Cut(typeName, ".")
	return strings.ToLower(pkg)
}
