package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"
)

// RuntimeResolver reports whether a language's toolchain is present on
// the host.
type RuntimeResolver interface {
	Resolve(ctx context.Context, language string) runtime.Runtime
}

// LanguagesHandler reports which languages the sandbox accepts and
// whether each one can execute for real on this host.
type LanguagesHandler struct {
	resolver RuntimeResolver
	logger   *slog.Logger
}

func NewLanguagesHandler(resolver RuntimeResolver, logger *slog.Logger) *LanguagesHandler {
	return &LanguagesHandler{
		resolver: resolver,
		logger:   logger,
	}
}

type languageInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Simulated bool   `json:"simulated"`
}

// HandleList probes every executable runtime on demand, so the answer
// reflects the host as it is right now.
func (h *LanguagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	executable := runtime.ExecutableLanguages()
	simulated := runtime.SimulatedLanguages()
	languages := make([]languageInfo, 0, len(executable)+len(simulated))

	for _, lang := range executable {
		rt := h.resolver.Resolve(r.Context(), string(lang))
		languages = append(languages, languageInfo{
			Name:      string(lang),
			Available: rt.Available,
		})
	}
	for _, lang := range simulated {
		languages = append(languages, languageInfo{
			Name:      string(lang),
			Available: true,
			Simulated: true,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"languages": languages})
}
