package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/soilscan/pkg/module"
)

func echoPath() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /soils/{label}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.PathValue("label")))
	})
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("root:" + r.URL.Path))
	})
	return mux
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()

	api := module.New("/api", echoPath())
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})
	router.Mount(api)
	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	tests := []struct {
		name       string
		path       string
		wantBody   string
		wantModule string
	}{
		{"module route", "/api/soils/Peat%20Soil", "Peat Soil", "api"},
		{"module root", "/api", "root:/", "api"},
		{"trailing slash", "/api/soils/Black%20Soil/", "Black Soil", "api"},
		{"native route", "/healthz", "ok", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if got := rec.Header().Get("X-Module"); got != tt.wantModule {
				t.Errorf("X-Module = %q, want %q", got, tt.wantModule)
			}
		})
	}
}

func TestNewRejectsBadPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.NotFoundHandler())
		})
	}
}
