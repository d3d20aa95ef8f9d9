package main

import (
	"image/png"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/zllovesuki/OverlayManager/system/surface"

	"github.com/stretchr/testify/require"
)

func TestFrameEndpoint(t *testing.T) {
	raster, err := surface.NewRaster(surface.RasterConfig{Width: 320, Height: 180})
	require.NoError(t, err)
	defer raster.Close()

	web := NewWeb(webConfig{Address: "127.0.0.1:0", Raster: raster})
	rec := httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/frame.png", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 180, img.Bounds().Dy())
}

func TestFrameEndpointOnDryRun(t *testing.T) {
	web := NewWeb(webConfig{Address: "127.0.0.1:0"})
	rec := httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/frame.png", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogsEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.log")
	require.NoError(t, ioutil.WriteFile(path, []byte("[overlay] starting overlay loop\n"), 0644))

	web := NewWeb(webConfig{Address: "127.0.0.1:0", LogPath: path, LogToFile: true})
	rec := httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/logs", nil))
	require.Equal(t, "[overlay] starting overlay loop\n", rec.Body.String())

	web = NewWeb(webConfig{Address: "127.0.0.1:0", LogPath: path})
	rec = httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/logs", nil))
	require.Contains(t, rec.Body.String(), "not enabled")
}

func TestCrashesEndpoint(t *testing.T) {
	web := NewWeb(webConfig{Address: "127.0.0.1:0", Crashes: func() map[string]int {
		return map[string]int{"Controller": 2, "HidListener": 1}
	}})
	rec := httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/crashes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Controller: 2\nHidListener: 1\n", rec.Body.String())

	web = NewWeb(webConfig{Address: "127.0.0.1:0"})
	rec = httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/crashes", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreflight(t *testing.T) {
	web := NewWeb(webConfig{Address: "127.0.0.1:0"})
	rec := httptest.NewRecorder()
	web.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/protocol.Overlay/GetState", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
