package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Realtime serves session updates over websockets. It runs on its own net/http
// listener next to the Fiber API.
type Realtime struct {
	service  *Service
	router   *mux.Router
	upgrader websocket.Upgrader
	origins  []string
	logger   *zap.Logger
}

// NewRealtime creates the realtime server. origins lists the allowed browser
// origins; "*" allows any.
func NewRealtime(service *Service, origins []string, logger *zap.Logger) *Realtime {
	rt := &Realtime{
		service: service,
		router:  mux.NewRouter(),
		origins: origins,
		logger:  logger,
	}
	rt.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     rt.checkOrigin,
	}

	rt.router.HandleFunc("/healthz", rt.handleHealth).Methods("GET")
	rt.router.HandleFunc("/ws/sessions/{id}", rt.handleSubscribe).Methods("GET")
	return rt
}

// Handler returns the HTTP handler with CORS applied.
func (rt *Realtime) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   rt.origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(rt.router)
}

func (rt *Realtime) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range rt.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (rt *Realtime) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (rt *Realtime) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// Browsers cannot set headers on websocket requests, so the token may come
	// from the query string.
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r.Header.Get("Authorization"))
	}

	claims, err := rt.service.Authenticate(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	sub, err := rt.service.Subscribe(r.Context(), claims, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	defer rt.service.Unsubscribe(sub)

	conn, err := rt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	l := rt.logger.With(zap.String("session", id), zap.String("member", claims.MemberID))
	l.Debug("Realtime subscriber connected")

	// Writer goroutine.
	writeErr := make(chan error, 1)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-sub.C():
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "dropped"))
					writeErr <- nil
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					writeErr <- err
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Reader loop: clients only send control frames; anything else is ignored.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	rt.service.Unsubscribe(sub)
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	l.Debug("Realtime subscriber disconnected")
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
