package tfhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strconv"
	"strings"
	"time"

	"github.com/brutella/hc/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudkucooland/hdfd/config"
	"github.com/cloudkucooland/hdfd/linuxsensors"
	"github.com/cloudkucooland/hdfd/platform"
	"github.com/cloudkucooland/hdfd/thermal"
)

// Platform is the primary handle
type Platform struct {
	Controller *thermal.Controller
	Sensors    *linuxsensors.Platform // optional
	Gatherer   prometheus.Gatherer    // optional
	Debug      bool

	srv *http.Server
}

// Startup is called by the platform management to get things running
func (h *Platform) Startup(c config.Config) platform.Control {
	if c.HTTPAddress == "" {
		log.Info.Print("HTTP control channel disabled")
		return h
	}

	h.srv = &http.Server{
		Addr:         c.HTTPAddress,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      h.Router(),
	}

	go func(srv *http.Server) {
		log.Info.Printf("starting up HTTP control channel on %s", c.HTTPAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Info.Print(err)
		}
	}(h.srv)

	return h
}

// Shutdown is called by the platform management to shut things down
func (h *Platform) Shutdown() platform.Control {
	if h.srv == nil {
		return h
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		log.Info.Print(err)
	}
	h.srv = nil
	return h
}

// Background - just satisfies the Platform interface
func (h *Platform) Background() {
	// nothing to do
}

// Router builds the handler tree.
func (h *Platform) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", homeHandler).Methods(http.MethodGet)
	r.HandleFunc("/hdf", h.statusHandler).Methods(http.MethodGet)
	r.HandleFunc("/hdf/{name}", h.getHandler).Methods(http.MethodGet)
	r.HandleFunc("/hdf/{name}", h.setHandler).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/sensors", h.sensorsHandler).Methods(http.MethodGet)
	if h.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))
	}
	if h.Debug {
		r.Use(debugMW)
	}
	return r
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	fmt.Fprint(w, "{ \"status\": \"OK\" }")
}

func debugMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		dump, _ := httputil.DumpRequest(req, false)
		log.Debug.Print(string(dump))
		next.ServeHTTP(res, req)
	})
}

// Value is the body of every /hdf/{name} answer.
type Value struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type tunable struct {
	get func(*thermal.Controller) (interface{}, error)
	set func(*thermal.Controller, int) error // nil: read-only
}

var tunables = map[string]tunable{
	"enabled": {
		get: func(c *thermal.Controller) (interface{}, error) {
			if c.Settings().Enabled {
				return 1, nil
			}
			return 0, nil
		},
		set: (*thermal.Controller).SetEnabled,
	},
	"interval": {
		get: func(c *thermal.Controller) (interface{}, error) { return c.Settings().Interval, nil },
		set: (*thermal.Controller).SetInterval,
	},
	"fanon": {
		get: func(c *thermal.Controller) (interface{}, error) { return c.Settings().FanOn, nil },
		set: (*thermal.Controller).SetFanOn,
	},
	"fanoff": {
		get: func(c *thermal.Controller) (interface{}, error) { return c.Settings().FanOff, nil },
		set: (*thermal.Controller).SetFanOff,
	},
	"temperature": {
		get: func(c *thermal.Controller) (interface{}, error) { return c.Temperature() },
	},
	"fanstate": {
		get: func(c *thermal.Controller) (interface{}, error) {
			s, err := c.FanState()
			if err != nil {
				return nil, err
			}
			return s.String(), nil
		},
	},
}

func (h *Platform) statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Controller.Status())
}

func (h *Platform) getHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	t, ok := tunables[name]
	if !ok {
		httpError(w, http.StatusNotFound, fmt.Errorf("unknown setting %q", name))
		return
	}
	v, err := t.get(h.Controller)
	if err != nil {
		log.Info.Printf("read %s: %s", name, err)
		httpError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, Value{Name: name, Value: v})
}

func (h *Platform) setHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	t, ok := tunables[name]
	if !ok {
		httpError(w, http.StatusNotFound, fmt.Errorf("unknown setting %q", name))
		return
	}
	if t.set == nil {
		httpError(w, http.StatusMethodNotAllowed, fmt.Errorf("%s is read-only", name))
		return
	}

	raw := r.URL.Query().Get("value")
	if raw == "" {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64))
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		raw = string(body)
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("%s: %q is not an integer", name, raw))
		return
	}

	if err := t.set(h.Controller, value); err != nil {
		var verr *thermal.ValidationError
		if errors.As(err, &verr) {
			httpError(w, http.StatusBadRequest, err)
			return
		}
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	log.Info.Printf("%s set to %d", name, value)

	v, _ := t.get(h.Controller)
	writeJSON(w, http.StatusOK, Value{Name: name, Value: v})
}

// Sensors is the body of /sensors.
type Sensors struct {
	Pulled   time.Time             `json:"pulled"`
	Readings linuxsensors.Readings `json:"readings"`
}

func (h *Platform) sensorsHandler(w http.ResponseWriter, r *http.Request) {
	if h.Sensors == nil {
		httpError(w, http.StatusNotFound, errors.New("lm-sensors not configured"))
		return
	}
	readings, pulled := h.Sensors.Readings()
	writeJSON(w, http.StatusOK, Sensors{Pulled: pulled, Readings: readings})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Info.Print(err)
	}
}

func httpError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
