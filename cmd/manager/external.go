package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/zllovesuki/OverlayManager/system/surface"

	"github.com/improbable-eng/grpc-web/go/grpcweb"
	suture "github.com/thejerf/suture/v4"
	"gopkg.in/yaml.v3"
)

type webConfig struct {
	Address   string
	Handler   *grpcweb.WrappedGrpcServer
	// Raster is nil on dry runs
	Raster    *surface.Raster
	LogPath   string
	LogToFile bool
	// Crashes reports the supervisor restarts per service
	Crashes   func() map[string]int
}

type externalWeb struct {
	srv  *http.Server
	conf webConfig
}

func NewWeb(conf webConfig) *externalWeb {
	w := &externalWeb{
		srv: &http.Server{
			Addr: conf.Address,
		},
		conf: conf,
	}
	w.srv.Handler = w.mux()
	return w
}

func (g *externalWeb) String() string {
	return "externalWeb"
}

func (g *externalWeb) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/debug/logs", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.conf.LogToFile {
			fmt.Fprintf(w, "Logging to file is not enabled on debug build")
			return
		}
		osFile, err := os.Open(g.conf.LogPath)
		if err != nil {
			fmt.Fprintf(w, "Unable to open log file: %+v", err)
			return
		}
		defer osFile.Close()
		io.Copy(w, osFile)
	}))
	mux.Handle("/debug/crashes", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.conf.Crashes == nil {
			http.Error(w, "Crash counts are not available", http.StatusNotFound)
			return
		}
		b, err := yaml.Marshal(g.conf.Crashes())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(b)
	}))
	mux.Handle("/debug/frame.png", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.conf.Raster == nil {
			http.Error(w, "No frame on dry run", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		if err := png.Encode(w, g.conf.Raster.Frame()); err != nil {
			log.Printf("[externalWeb] cannot encode frame: %s\n", err)
		}
	}))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, x-user-agent, x-grpc-web, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Expose-Headers", "grpc-status, grpc-message")
		if r.Method == "OPTIONS" {
			return
		}
		if g.conf.Handler != nil && g.conf.Handler.IsGrpcWebRequest(r) {
			g.conf.Handler.ServeHTTP(w, r)
		} else {
			http.DefaultServeMux.ServeHTTP(w, r)
		}
	}))
	return mux
}

func (g *externalWeb) Serve(haltCtx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		log.Printf("[externalWeb] externalWeb available at %s\n", g.srv.Addr)
		errCh <- g.srv.ListenAndServe()
	}()
	for {
		select {
		case <-haltCtx.Done():
			log.Println("[externalWeb] exiting externalWeb server")
			g.srv.Shutdown(context.Background())
			return nil
		case err := <-errCh:
			if err == nil || err == http.ErrServerClosed {
				return nil
			}
			log.Printf("[externalWeb] error channel: %s\n", err)
			return suture.ErrTerminateSupervisorTree
		}
	}
}
