package main

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"studyquiz"
)

const (
	sessionName   = "quiz-session"
	optionLetters = "ABCDEFGHIJ"

	defaultIdleTimeout = 30 * time.Minute
)

//go:embed templates/*.html
var templateFS embed.FS

// playSession is one browser's quiz session.
type playSession struct {
	engine   *studyquiz.Engine
	log      *studyquiz.SessionLog
	lastUsed time.Time
}

func (ps *playSession) close() {
	if ps.log != nil {
		ps.log.Close()
	}
}

// Server serves quiz sessions over HTTP. Every browser session gets its own
// engine over the shared corpus.
type Server struct {
	store     *studyquiz.ContentStore
	lex       *studyquiz.Lexicon
	settings  *studyquiz.Settings
	cookies   sessions.Store
	templates map[string]*template.Template

	// sessions idle longer than idleTimeout are dropped
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*playSession
	started  uint64
}

// NewServer parses the page templates and creates an empty session registry.
func NewServer(store *studyquiz.ContentStore, lex *studyquiz.Lexicon, settings *studyquiz.Settings, cookies sessions.Store) (*Server, error) {
	funcMap := template.FuncMap{
		"letter": func(i int) string {
			return optionLetters[i : i+1]
		},
		"percent": func(correct, answered int) float64 {
			if answered == 0 {
				return 0
			}
			return float64(correct) / float64(answered) * 100
		},
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{"question", "answer", "results"} {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		templates[name] = tmpl
	}

	return &Server{
		store:     store,
		lex:       lex,
		settings:  settings,
		cookies:   cookies,
		templates: templates,

		idleTimeout: defaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*playSession),
	}, nil
}

// Routes returns the HTTP handler of the server.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleQuestion)
	mux.HandleFunc("POST /answer", s.handleAnswer)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("POST /restart", s.handleRestart)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Close closes the session logs of every open session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ps := range s.sessions {
		ps.close()
		delete(s.sessions, id)
	}
}

// EvictIdle drops the sessions that have not been used within the idle
// timeout and returns how many were removed.
func (s *Server) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictIdle()
}

func (s *Server) evictIdle() int {
	cutoff := s.now().Add(-s.idleTimeout)
	evicted := 0
	for id, ps := range s.sessions {
		if ps.lastUsed.Before(cutoff) {
			ps.close()
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("Evicted %d idle quiz sessions", evicted)
	}
	return evicted
}

// sweep evicts idle sessions every interval until stop is closed.
func (s *Server) sweep(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.EvictIdle()
		case <-stop:
			return
		}
	}
}

// lookup returns the existing quiz session of the request.
func (s *Server) lookup(r *http.Request) (*playSession, bool) {
	cookie, _ := s.cookies.Get(r, sessionName)
	sid, _ := cookie.Values["sid"].(string)
	if sid == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ps, ok := s.sessions[sid]
	if ok {
		ps.lastUsed = s.now()
	}
	return ps, ok
}

// session returns the quiz session of the request, starting one if needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*playSession, error) {
	if ps, ok := s.lookup(r); ok {
		return ps, nil
	}

	cookie, _ := s.cookies.Get(r, sessionName)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdle()
	ps, err := s.startSession()
	if err != nil {
		return nil, err
	}
	cookie.Values["sid"] = ps.engine.ID()
	if err := cookie.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	return ps, nil
}

func (s *Server) startSession() (*playSession, error) {
	seed := s.settings.Seed
	if seed != 0 {
		seed += s.started
	}
	s.started++

	id := uuid.NewString()
	ps := &playSession{lastUsed: s.now()}
	opts := []studyquiz.EngineOption{studyquiz.WithSessionID(id)}
	if s.settings.LogDir != "" {
		sl, err := studyquiz.NewSessionLog(s.settings.LogDir, id, s.settings.Params, s.store.Stats())
		if err != nil {
			return nil, err
		}
		ps.log = sl
		opts = append(opts, studyquiz.WithSessionLog(sl))
	}

	engine, err := studyquiz.NewEngine(s.store, s.lex, s.settings.Params, studyquiz.NewRand(seed), opts...)
	if err != nil {
		ps.close()
		return nil, err
	}
	ps.engine = engine
	s.sessions[engine.ID()] = ps
	log.Printf("Started quiz session %s", engine.ID())
	return ps, nil
}

// answered reports whether the current question was already graded.
func answered(engine *studyquiz.Engine, q *studyquiz.Question) bool {
	last, ok := engine.History().Last()
	return ok && last.Question.ID == q.ID
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	ps, err := s.session(w, r)
	if err != nil {
		log.Printf("Failed to start session: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	q := ps.engine.Current()
	if q == nil || answered(ps.engine, q) {
		q, err = ps.engine.NextQuestion()
		if errors.Is(err, studyquiz.ErrGenerationExhausted) {
			http.Redirect(w, r, "/results?exhausted=1", http.StatusSeeOther)
			return
		}
		if err != nil {
			log.Printf("Failed to generate question: %v", err)
			http.Error(w, "Failed to generate question", http.StatusInternalServerError)
			return
		}
	}

	correct, total := ps.engine.History().Score()
	s.render(w, "question", map[string]interface{}{
		"Number":   total + 1,
		"Question": q,
		"Correct":  correct,
		"Answered": total,
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.lookup(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	q := ps.engine.Current()
	if q == nil || answered(ps.engine, q) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil || option < 0 || option >= len(q.Options) {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	verdict, err := ps.engine.CheckOption(option)
	if errors.Is(err, studyquiz.ErrNoActiveQuestion) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	correct, total := ps.engine.History().Score()
	s.render(w, "answer", map[string]interface{}{
		"Question": q,
		"Selected": option,
		"Verdict":  verdict,
		"Correct":  correct,
		"Answered": total,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.lookup(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	correct, total := ps.engine.History().Score()
	s.render(w, "results", map[string]interface{}{
		"Answers":   ps.engine.History().All(),
		"Correct":   correct,
		"Answered":  total,
		"Exhausted": r.URL.Query().Get("exhausted") != "",
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	cookie, _ := s.cookies.Get(r, sessionName)
	if sid, ok := cookie.Values["sid"].(string); ok {
		s.mu.Lock()
		if ps, ok := s.sessions[sid]; ok {
			ps.close()
			delete(s.sessions, sid)
		}
		s.mu.Unlock()
		delete(cookie.Values, "sid")
		if err := cookie.Save(r, w); err != nil {
			log.Printf("Session save error: %v", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := len(s.sessions)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"corpus":   s.store.Stats(),
		"sessions": active,
		"mode":     s.settings.Params.Mode,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates[name].ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
