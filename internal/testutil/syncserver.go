package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// EmptySnapshot is the document a fresh account syncs down.
const EmptySnapshot = `{"categories":[],"tricks":[],"templates":[],"challenges":[],"trainingPlans":[]}`

// SyncServer is an in-memory stand-in for the sync server's auth and
// /sync endpoints.
type SyncServer struct {
	*httptest.Server

	mu          sync.Mutex
	users       map[string]string
	snapshot    []byte
	pushes      [][]byte
	fetches     int
	failures    []int
	pushDelay   time.Duration
	inFlight    int
	maxInFlight int
}

// NewSyncServer starts a server that is closed when the test ends.
func NewSyncServer(t *testing.T) *SyncServer {
	t.Helper()
	s := &SyncServer{
		users:    make(map[string]string),
		snapshot: []byte(EmptySnapshot),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /sync", s.handleFetch)
	mux.HandleFunc("PUT /sync", s.handlePush)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// TokenFor is the access token issued to email.
func TokenFor(email string) string {
	return "token-" + email
}

// AddUser registers an account directly.
func (s *SyncServer) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// FailSync makes the next /sync requests answer with the given statuses,
// one per request.
func (s *SyncServer) FailSync(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, statuses...)
}

// SetPushDelay holds every push open for d before answering.
func (s *SyncServer) SetPushDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushDelay = d
}

// SetSnapshot replaces the stored document.
func (s *SyncServer) SetSnapshot(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = []byte(doc)
}

// Pushes returns the body of every accepted push.
func (s *SyncServer) Pushes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pushes))
	for i, p := range s.pushes {
		out[i] = string(p)
	}
	return out
}

// PushCount is the number of accepted pushes.
func (s *SyncServer) PushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pushes)
}

// FetchCount is the number of answered fetches, failed ones included.
func (s *SyncServer) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// MaxInFlight is the highest number of /sync requests served at once.
func (s *SyncServer) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

func (s *SyncServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}

	s.mu.Lock()
	_, exists := s.users[body.Email]
	if !exists {
		s.users[body.Email] = body.Password
	}
	s.mu.Unlock()

	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": body.Email})
}

func (s *SyncServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad form"})
		return
	}
	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	s.mu.Lock()
	stored, ok := s.users[email]
	s.mu.Unlock()

	if !ok || stored != password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": TokenFor(email),
		"token_type":   "bearer",
	})
}

func (s *SyncServer) handleFetch(w http.ResponseWriter, r *http.Request) {
	done, ok := s.begin(w, r)
	if !ok {
		return
	}
	defer done()

	s.mu.Lock()
	s.fetches++
	status, failed := s.popFailureLocked()
	doc := s.snapshot
	s.mu.Unlock()

	if failed {
		http.Error(w, "sync unavailable", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

func (s *SyncServer) handlePush(w http.ResponseWriter, r *http.Request) {
	done, ok := s.begin(w, r)
	if !ok {
		return
	}
	defer done()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "expected JSON", http.StatusUnsupportedMediaType)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	delay := s.pushDelay
	status, failed := s.popFailureLocked()
	s.mu.Unlock()

	time.Sleep(delay)
	if failed {
		http.Error(w, "sync unavailable", status)
		return
	}

	s.mu.Lock()
	s.snapshot = body
	s.pushes = append(s.pushes, body)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// begin checks the bearer token and tracks concurrency.
func (s *SyncServer) begin(w http.ResponseWriter, r *http.Request) (func(), bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	valid := false
	for email := range s.users {
		if TokenFor(email) == token {
			valid = true
			break
		}
	}
	if !valid {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
		return nil, false
	}
	s.inFlight++
	s.maxInFlight = max(s.maxInFlight, s.inFlight)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}, true
}

func (s *SyncServer) popFailureLocked() (int, bool) {
	if len(s.failures) == 0 {
		return 0, false
	}
	status := s.failures[0]
	s.failures = s.failures[1:]
	return status, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
