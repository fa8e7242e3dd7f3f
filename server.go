package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"
)

//go:embed ui
var content embed.FS

func uiFS() fs.FS {
	sub, err := fs.Sub(content, "ui")
	if err != nil {
		panic(err)
	}
	return sub
}

func bridgeScript() string {
	data, err := content.ReadFile("ui/bridge.js")
	if err != nil {
		panic(err)
	}
	return string(data)
}

func newUIHandler() http.Handler {
	mux := http.NewServeMux()
	files := http.FileServer(http.FS(uiFS()))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		files.ServeHTTP(w, r)
	})
	return mux
}

type uiServer struct {
	srv *http.Server
	url string
}

// startUIServer serves the overlay page on the loopback interface only.
func startUIServer(port int) (*uiServer, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s := &uiServer{
		srv: &http.Server{Handler: newUIHandler(), ReadHeaderTimeout: 5 * time.Second},
		url: "http://" + ln.Addr().String() + "/",
	}
	logger.Printf("[HTTP] listening on %s", ln.Addr())
	go func() {
		defer safeDefer("uiServer")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("[HTTP] server error: %v", err)
		}
	}()
	return s, nil
}

func (s *uiServer) URL() string { return s.url }

func (s *uiServer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}
