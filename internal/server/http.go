package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/go9cc/internal/compiler"
	"github.com/karupanerura/go9cc/internal/config"
	"github.com/karupanerura/go9cc/internal/types"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	basePath       = "/v1/compilations"
	reloadInterval = 5 * time.Second
)

type compilation struct {
	Name       string    `json:"name"`
	CreateTime time.Time `json:"createTime"`
	State      string    `json:"state"`
	Source     string    `json:"source"`
	Assembly   string    `json:"assembly,omitempty"`
	Error      any       `json:"error,omitempty"`
	Diagnostic string    `json:"diagnostic,omitempty"`
}

type compileRequest struct {
	Source string `json:"source"`
}

type batchCompileRequest struct {
	Sources []string `json:"sources"`
}

type httpHandler struct {
	config       atomic.Value
	idBase       uint64
	compilations sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch path := r.URL.Path; {
	case path == basePath:
		switch r.Method {
		case http.MethodGet:
			h.listCompilations(w, r)
			return

		case http.MethodPost:
			h.createCompilation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

	case path == basePath+":batch":
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.batchCreateCompilations(w, r)
		return

	case strings.HasPrefix(path, basePath+"/"):
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getCompilation(w, r, strings.TrimPrefix(path, basePath+"/"))
		return

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
}

func (h *httpHandler) createCompilation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	c := h.compile(req.Source)
	h.store(c)
	resJSON(w, http.StatusOK, c)
}

func (h *httpHandler) batchCreateCompilations(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req batchCompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	results := make([]*compilation, len(req.Sources))
	eg := errgroup.Group{}
	for i, source := range req.Sources {
		i := i
		source := source
		eg.Go(func() error {
			results[i] = h.compile(source)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Printf("failed to compile batch: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	for _, c := range results {
		h.store(c)
	}
	resJSON(w, http.StatusOK, map[string][]*compilation{"compilations": results})
}

func (h *httpHandler) compile(source string) *compilation {
	c := &compilation{
		CreateTime: time.Now().UTC(),
		Source:     source,
	}

	p, err := compiler.Compile(source)
	if err != nil {
		c.State = "FAILED"
		var exception types.Exception
		if errors.As(err, &exception) {
			c.Error = exception.Exception()
		} else {
			c.Error = err.Error()
		}
		var typedErr *types.Error
		if errors.As(err, &typedErr) {
			c.Diagnostic = typedErr.Diagnostic()
		}
		return c
	}

	c.State = "SUCCEEDED"
	c.Assembly = h.config.Load().(*config.Config).Emitter().Assemble(p)
	return c
}

func (h *httpHandler) store(c *compilation) {
	id := fmt.Sprintf("%016x", atomic.AddUint64(&h.idBase, 1))
	c.Name = basePath + "/" + id
	h.compilations.Store(id, c)
}

func (h *httpHandler) listCompilations(w http.ResponseWriter, r *http.Request) {
	results := []*compilation{}
	h.compilations.Range(func(key, value any) bool {
		results = append(results, value.(*compilation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreateTime.Equal(results[j].CreateTime) {
			return results[i].Name < results[j].Name
		}
		return results[i].CreateTime.Before(results[j].CreateTime)
	})

	resJSON(w, http.StatusOK, map[string][]string{
		"compilations": lo.Map(results, func(c *compilation, _ int) string {
			return c.Name
		}),
	})
}

func (h *httpHandler) getCompilation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.compilations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	resJSON(w, http.StatusOK, ret.(*compilation))
}

// NewHTTPHandler serves the compile API. The config is reloaded through loader periodically.
func NewHTTPHandler(loader func() (*config.Config, error)) (http.Handler, error) {
	c, err := loader()
	if err != nil {
		return nil, err
	}

	h := &httpHandler{}
	h.config.Store(c)
	go func() {
		t := time.NewTicker(reloadInterval)
		for range t.C {
			c, err := loader()
			if err != nil {
				log.Printf("failed to reload config: %v", err)
				continue
			}
			h.config.Store(c)
		}
	}()
	return h, nil
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
