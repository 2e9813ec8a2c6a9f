// Package server exposes the generation workflow over HTTP with a small
// embedded web UI.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"ai_content_generator/publisher"
	"ai_content_generator/schema"
	"ai_content_generator/workflow"
)

//go:embed web/index.html
var webFS embed.FS

// Generation requests can take a couple of minutes: research, content, and
// image are three model round-trips.
const generateTimeout = 5 * time.Minute

type Server struct {
	graph         *workflow.Graph
	store         *generationStore
	linkedinToken string
}

type generationStore struct {
	mu          sync.Mutex
	generations map[string]*workflow.State
}

func newStore() *generationStore {
	return &generationStore{generations: make(map[string]*workflow.State)}
}

func (s *generationStore) set(id string, state *workflow.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[id] = state
}

func (s *generationStore) get(id string) (*workflow.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.generations[id]
	return state, ok
}

// New builds a Server. linkedinToken may be empty; publishing then returns
// 503 until a token is configured.
func New(graph *workflow.Graph, linkedinToken string) (*Server, error) {
	if graph == nil {
		return nil, errors.New("workflow graph required")
	}
	return &Server{
		graph:         graph,
		store:         newStore(),
		linkedinToken: linkedinToken,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generations", s.handleGenerate)
	mux.HandleFunc("/api/generations/", s.handleGenerationByID)
	mux.HandleFunc("/api/meta", s.handleMeta)
	mux.HandleFunc("/", s.handleIndex)
	return logMiddleware(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// --- Handlers ---

type generateReq struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
}

type imageResp struct {
	Prompt string `json:"prompt"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

type generationResp struct {
	ID          string                 `json:"id"`
	Phase       string                 `json:"phase"`
	Request     schema.Request         `json:"request"`
	Research    *schema.ResearchResult `json:"research,omitempty"`
	Content     *schema.ContentResult  `json:"content,omitempty"`
	ContentHTML string                 `json:"content_html,omitempty"`
	Image       *imageResp             `json:"image,omitempty"`
	ImageError  string                 `json:"image_error,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	platform, err := schema.ParsePlatform(req.Platform)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tone, err := schema.ParseTone(req.Tone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	state, err := s.graph.Run(ctx, schema.Request{Topic: req.Topic, Platform: platform, Tone: tone})
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	id := uuid.New().String()
	s.store.set(id, state)
	writeJSON(w, buildGenerationResp(id, state))
}

func (s *Server) handleGenerationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/generations/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	state, ok := s.store.get(id)
	if !ok {
		http.Error(w, "generation not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, buildGenerationResp(id, state))
	case "image":
		s.handleImage(w, r, state)
	case "publish":
		s.handlePublish(w, r, state)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request, state *workflow.State) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if state.Image == nil || len(state.Image.Data) == 0 {
		http.Error(w, "no image for this generation", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(state.Image.Data)
}

type publishResp struct {
	PostID string `json:"post_id"`
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request, state *workflow.State) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.linkedinToken == "" {
		http.Error(w, "linkedin access token not configured", http.StatusServiceUnavailable)
		return
	}
	if state.Content == nil {
		http.Error(w, "generation produced no content", http.StatusConflict)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()
	client, err := publisher.New(ctx, s.linkedinToken, false, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	var postID string
	if state.Image != nil {
		postID, err = client.PostImage(ctx, *state.Content, state.Image.ImagePath)
	} else {
		postID, err = client.PostText(ctx, *state.Content)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, publishResp{PostID: postID})
}

type metaResp struct {
	Platforms []schema.Platform `json:"platforms"`
	Tones     []schema.Tone     `json:"tones"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, metaResp{Platforms: schema.Platforms(), Tones: schema.Tones()})
}

// --- Helpers ---

func buildGenerationResp(id string, state *workflow.State) generationResp {
	resp := generationResp{
		ID:       id,
		Phase:    string(state.Phase),
		Request:  state.Request,
		Research: state.Research,
		Content:  state.Content,
	}
	if state.Content != nil && state.Request.Platform == schema.PlatformMedium {
		if html, err := renderHTML(state.Content.Content); err == nil {
			resp.ContentHTML = html
		}
	}
	if state.Image != nil {
		resp.Image = &imageResp{
			Prompt: state.Image.ImagePrompt,
			Path:   state.Image.ImagePath,
			URL:    "/api/generations/" + id + "/image",
		}
	}
	if state.ImageErr != nil {
		resp.ImageError = state.ImageErr.Error()
	}
	return resp
}

// renderHTML converts medium long-form markdown to preview HTML.
func renderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[http] %s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
