package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := requestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("hello"))
	}))

	cases := []struct {
		path   string
		status int
		bytes  int
	}{
		{"/", http.StatusOK, 5},
		{"/missing", http.StatusNotFound, len("404 page not found\n")},
	}
	for _, tc := range cases {
		hook.Reset()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

		e := hook.LastEntry()
		if e == nil || e.Message != "http" || e.Level != logrus.InfoLevel {
			t.Fatalf("%s: entry = %+v", tc.path, e)
		}
		if e.Data["status"] != tc.status || e.Data["bytes"] != tc.bytes || e.Data["path"] != tc.path {
			t.Errorf("%s: fields = %v", tc.path, e.Data)
		}
	}
}

func TestRequestLoggerPassesWebsocketThrough(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var got http.ResponseWriter
	h := requestLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = w }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ws", nil))
	if got != rec {
		t.Fatal("websocket request writer was wrapped; Hijack would be lost")
	}
	if e := hook.LastEntry(); e == nil || e.Message != "websocket" {
		t.Fatalf("entry = %+v", e)
	}
}
