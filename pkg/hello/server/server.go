/*
Copyright 2026 The Argo CD Demo Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/argocd-demo/hello/pkg/hello/constants"
	"github.com/argocd-demo/hello/pkg/hello/output/log"
)

// waits for 1 second before forcing a server shutdown
var forceShutdownTimeout = 1 * time.Second

// Server answers the greeting route on a single TCP port.
type Server struct {
	port     int
	router   *mux.Router
	http     *http.Server
	listener net.Listener
}

// New creates a server for the given port. Port 0 picks a free port on Listen.
func New(port int) *Server {
	router := newRouter()
	return &Server{
		port:   port,
		router: router,
		http: &http.Server{
			Handler: router,
		},
	}
}

// Run binds the port and serves until the process is terminated.
func Run(ctx context.Context, port int) error {
	s := New(port)
	if err := s.Listen(ctx); err != nil {
		return err
	}
	return s.Serve()
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)
	r.HandleFunc(constants.RootPath, greet).Methods(http.MethodGet, http.MethodHead)
	return r
}

func greet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, constants.Greeting)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !logrus.IsLevelEnabled(logrus.DebugLevel) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := log.WithEventContext(r.Context(), log.EventContext{
			Component: log.Server,
			RequestID: uuid.NewString(),
		})
		log.Entry(ctx).Debugf("%s %s from %s", r.Method, r.URL.RequestURI(), r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the port the server is bound to, or the requested one before Listen.
func (s *Server) Port() int {
	return s.port
}

// Listen binds the TCP port. Failing to bind is fatal for the caller: there is no retry.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.port, err)
	}

	s.listener = l
	if addr, ok := l.Addr().(*net.TCPAddr); ok {
		s.port = addr.Port
	}

	log.Entry(ctx).Infof("App running on port %d", s.port)
	return nil
}

// Serve accepts connections on the bound listener. It blocks until Shutdown is called.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests,
// for at most forceShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, forceShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
