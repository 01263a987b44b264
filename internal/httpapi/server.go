package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"evalmodels/internal/llm"
	"evalmodels/internal/prompt"
	"evalmodels/internal/registry"
	"evalmodels/internal/validate"
	"evalmodels/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *registry.Registry satisfies it.
type Service interface {
	List() []types.ModelEntry
	Get(abbr string) (types.ModelEntry, error)
	Len() int
}

func NewMux(svc Service) http.Handler {
	setRegistrySize(svc.Len())

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.List()})
	})

	r.Get("/models/{abbr}", func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(chi.URLParam(r, "abbr"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	})

	r.Get("/models/{abbr}/plan", func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Get(chi.URLParam(r, "abbr"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		plan, err := llm.Plan(e)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, plan)
	})

	r.Post("/models/{abbr}/render", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.RenderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		e, err := svc.Get(chi.URLParam(r, "abbr"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		p, err := prompt.Render(e.MetaTemplate, req.Messages)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		rendersTotal.WithLabelValues(e.Abbr).Inc()
		writeJSON(w, http.StatusOK, types.RenderResponse{Prompt: p.Text, Stop: p.StopWords})
	})

	r.Post("/validate", func(w http.ResponseWriter, r *http.Request) {
		format, ok := formatFromContentType(r.Header.Get("Content-Type"))
		if !ok {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json, application/yaml or application/toml")
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid body")
			return
		}
		writeJSON(w, http.StatusOK, validateDocument(format, body))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Len() > 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no models registered"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// validateDocument checks a models document. Unknown keys and schema
// violations are findings; only an unparseable body is reported as such.
func validateDocument(format registry.Format, body []byte) types.ValidateResponse {
	var resp types.ValidateResponse
	f, err := registry.Decode(format, body, true)
	if err != nil {
		resp.Errors = append(resp.Errors, err.Error())
		lenient, lerr := registry.Decode(format, body, false)
		if lerr != nil {
			validationsTotal.WithLabelValues("invalid").Inc()
			return resp
		}
		f = lenient
	}
	resp.Errors = append(resp.Errors, validate.Errors(validate.Models(f))...)
	for i, e := range f.Models {
		for _, w := range validate.Consistency(e) {
			resp.Warnings = append(resp.Warnings, "models["+itoa(i)+"]."+w.String())
		}
	}
	resp.Valid = len(resp.Errors) == 0
	if resp.Valid {
		validationsTotal.WithLabelValues("valid").Inc()
	} else {
		validationsTotal.WithLabelValues("invalid").Inc()
	}
	return resp
}

func formatFromContentType(ct string) (registry.Format, bool) {
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	switch ct {
	case "application/json":
		return registry.FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml":
		return registry.FormatYAML, true
	case "application/toml":
		return registry.FormatTOML, true
	default:
		return "", false
	}
}

// writeServiceError maps well-known errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var he HTTPError
	switch {
	case registry.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, prompt.ErrEmptyDialogue), errors.Is(err, prompt.ErrUnknownRole):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &he):
		writeJSONError(w, he.StatusCode(), he.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logError(err, "encode response")
	}
}
