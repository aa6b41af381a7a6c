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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/argocd-demo/hello/pkg/hello/constants"
	"github.com/argocd-demo/hello/testutil"
)

type response struct {
	Status      int
	ContentType string
	Body        string
}

func serve(h http.Handler, req *http.Request) response {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return response{
		Status:      rec.Code,
		ContentType: rec.Header().Get("Content-Type"),
		Body:        rec.Body.String(),
	}
}

// startServer binds a free port and serves in the background until the test ends.
func startServer(t *testutil.T) *Server {
	s := New(0)
	t.CheckNoError(s.Listen(context.Background()))

	done := make(chan error, 1)
	go func() { done <- s.Serve() }()
	t.Cleanup(func() {
		t.CheckNoError(s.Shutdown(context.Background()))
		if err := <-done; err != nil {
			t.Errorf("serve returned: %v", err)
		}
	})
	return s
}

func get(port int, path string) (response, error) {
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d%s", port, path))
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}
	return response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

func TestGreeting(t *testing.T) {
	expected := response{
		Status:      http.StatusOK,
		ContentType: "text/plain; charset=utf-8",
		Body:        "Hello World from Argo CD Demo!",
	}

	tests := []struct {
		description string
		target      string
		headers     map[string]string
	}{
		{
			description: "no headers",
			target:      "/",
		},
		{
			description: "query parameters are ignored",
			target:      "/?name=argo&debug=true",
		},
		{
			description: "accept json is ignored",
			target:      "/",
			headers:     map[string]string{"Accept": "application/json"},
		},
		{
			description: "arbitrary headers are ignored",
			target:      "/",
			headers: map[string]string{
				"Authorization":   "Bearer token",
				"X-Forwarded-For": "10.0.0.1",
				"Cookie":          "session=1",
			},
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			req := httptest.NewRequest(http.MethodGet, test.target, nil)
			for k, v := range test.headers {
				req.Header.Set(k, v)
			}

			actual := serve(New(constants.Port).Handler(), req)

			t.CheckDeepEqual(expected, actual)
		})
	}
}

func TestOtherRoutes(t *testing.T) {
	tests := []struct {
		description    string
		method         string
		target         string
		expectedStatus int
	}{
		{
			description:    "POST on root",
			method:         http.MethodPost,
			target:         "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			description:    "PUT on root",
			method:         http.MethodPut,
			target:         "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			description:    "DELETE on root",
			method:         http.MethodDelete,
			target:         "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			description:    "unknown path",
			method:         http.MethodGet,
			target:         "/health",
			expectedStatus: http.StatusNotFound,
		},
		{
			description:    "nested path",
			method:         http.MethodGet,
			target:         "/api/hello",
			expectedStatus: http.StatusNotFound,
		},
		{
			description:    "POST on unknown path",
			method:         http.MethodPost,
			target:         "/hello",
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			req := httptest.NewRequest(test.method, test.target, strings.NewReader("payload"))

			actual := serve(New(constants.Port).Handler(), req)

			t.CheckDeepEqual(test.expectedStatus, actual.Status)
			t.CheckTrue(actual.Body != constants.Greeting)
		})
	}
}

func TestGreetingIsIdempotent(t *testing.T) {
	h := New(constants.Port).Handler()

	first := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	for i := 0; i < 100; i++ {
		actual := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		if actual != first {
			t.Fatalf("request %d differs: %+v != %+v", i, actual, first)
		}
	}
}

func TestConcurrentRequests(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		s := startServer(t)

		const n = 50
		responses := make([]response, n)
		var g errgroup.Group
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				resp, err := get(s.Port(), "/")
				responses[i] = resp
				return err
			})
		}
		t.CheckNoError(g.Wait())

		for _, resp := range responses {
			t.CheckDeepEqual(response{
				Status:      http.StatusOK,
				ContentType: "text/plain; charset=utf-8",
				Body:        constants.Greeting,
			}, resp)
		}
	})
}

func TestHead(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		s := startServer(t)

		resp, err := http.Head(fmt.Sprintf("http://127.0.0.1:%d/", s.Port()))
		t.CheckNoError(err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		t.CheckNoError(err)
		t.CheckDeepEqual(http.StatusOK, resp.StatusCode)
		t.CheckEmpty(string(body))
	})
}

func TestListenLogsPort(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		var out bytes.Buffer
		t.Override(&logrus.StandardLogger().Out, &out)
		t.Override(&logrus.StandardLogger().Level, logrus.InfoLevel)

		s := New(0)
		t.CheckNoError(s.Listen(context.Background()))
		t.Cleanup(func() { s.listener.Close() })

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		t.CheckDeepEqual(1, len(lines))
		t.CheckContains(fmt.Sprintf("App running on port %d", s.Port()), lines[0])
		t.CheckTrue(s.Port() != 0)
	})
}

func TestListenPortInUse(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.Override(&logrus.StandardLogger().Out, io.Discard)

		first := startServer(t)

		second := New(first.Port())
		err := second.Listen(context.Background())
		t.CheckErrorContains(fmt.Sprintf("listening on port %d", first.Port()), err)

		resp, err := get(first.Port(), "/")
		t.CheckNoError(err)
		t.CheckDeepEqual(http.StatusOK, resp.Status)
		t.CheckDeepEqual(constants.Greeting, resp.Body)
	})
}

func TestServeWithoutListen(t *testing.T) {
	err := New(constants.Port).Serve()

	testutil.CheckError(t, true, err)
}

func TestRunPortInUse(t *testing.T) {
	testutil.Run(t, "", func(t *testutil.T) {
		t.Override(&logrus.StandardLogger().Out, io.Discard)

		first := startServer(t)

		err := Run(context.Background(), first.Port())
		t.CheckErrorContains("listening on port", err)
	})
}

func TestRequestLogging(t *testing.T) {
	tests := []struct {
		description string
		level       logrus.Level
		shouldLog   bool
	}{
		{
			description: "requests are logged at debug",
			level:       logrus.DebugLevel,
			shouldLog:   true,
		},
		{
			description: "nothing is logged at info",
			level:       logrus.InfoLevel,
		},
	}
	for _, test := range tests {
		testutil.Run(t, test.description, func(t *testutil.T) {
			var out bytes.Buffer
			t.Override(&logrus.StandardLogger().Out, &out)
			t.Override(&logrus.StandardLogger().Level, test.level)

			actual := serve(New(constants.Port).Handler(), httptest.NewRequest(http.MethodGet, "/?q=1", nil))

			t.CheckDeepEqual(constants.Greeting, actual.Body)
			if test.shouldLog {
				t.CheckContains("GET /?q=1", out.String())
				t.CheckContains("request=", out.String())
			} else {
				t.CheckEmpty(out.String())
			}
		})
	}
}
