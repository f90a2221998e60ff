package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Dileepkumaryarramasu/ai-agent-blog/generator"
	"github.com/Dileepkumaryarramasu/ai-agent-blog/publisher"
)

// Server exposes the generate-and-save pipeline over HTTP.
type Server struct {
	agent    *generator.Agent
	pub      *publisher.Publisher
	defaults generator.Spec
}

// New wires the HTTP layer. defaults fills in the niche and affiliate link
// for requests that omit them.
func New(agent *generator.Agent, pub *publisher.Publisher, defaults generator.Spec) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if pub == nil {
		return nil, errors.New("publisher required")
	}
	return &Server{agent: agent, pub: pub, defaults: defaults}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", s.handlePosts)
	mux.HandleFunc("/api/posts/", s.handlePostPreview)
	mux.HandleFunc("/healthz", s.handleHealth)
	return logMiddleware(mux)
}

// --- Handlers ---

type createReq struct {
	Niche        string `json:"niche"`
	AffiliateURL string `json:"affiliate_url"`
}

type createResp struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	Markdown string `json:"markdown"`
}

type listResp struct {
	Posts []publisher.PostInfo `json:"posts"`
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handlePostCreate(w, r)
	case http.MethodGet:
		s.handlePostList(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	spec := s.defaults
	if req.Niche != "" {
		spec.Niche = req.Niche
	}
	if req.AffiliateURL != "" {
		spec.AffiliateURL = req.AffiliateURL
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	post, err := s.agent.Generate(ctx, spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	path, err := s.pub.SavePost(post.Title, post.Markdown)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, createResp{
		Filename: filepath.Base(path),
		Title:    post.Title,
		Path:     path,
		Markdown: post.Markdown,
	})
}

func (s *Server) handlePostList(w http.ResponseWriter, _ *http.Request) {
	infos, err := s.pub.ListPosts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []publisher.PostInfo{}
	}
	writeJSON(w, listResp{Posts: infos})
}

func (s *Server) handlePostPreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/posts/")
	name, ok := strings.CutSuffix(rest, "/preview")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}
	md, err := s.pub.LoadPost(name)
	if err != nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	html, err := publisher.RenderHTML(md)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// --- Helpers ---

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
