//go:build !server

// +build !server

package main

import (
	"embed"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

// FileLoader serves submission preview images to the frontend.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// ServeHTTP handles requests with the /doodleday-local-file/ prefix and
// refuses anything outside the app data directory.
func (f *FileLoader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/doodleday-local-file/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	requestedPath := strings.TrimPrefix(r.URL.Path, "/doodleday-local-file")

	decodedPath, err := url.PathUnescape(requestedPath)
	if err != nil {
		http.Error(w, "could not decode path", http.StatusBadRequest)
		return
	}

	homeDir, _ := os.UserHomeDir()
	if !strings.HasPrefix(decodedPath, filepath.Join(homeDir, ".doodleday")+string(filepath.Separator)) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	fileData, err := os.ReadFile(decodedPath)
	if err != nil {
		http.Error(w, "could not load file", http.StatusNotFound)
		return
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(decodedPath)) {
	case ".png":
		contentType = "image/png"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".svg":
		contentType = "image/svg+xml"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(fileData)
}

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	app := NewApp()

	err := wails.Run(&options.App{
		Title:     "doodleday",
		Width:     1100,
		Height:    800,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: NewFileLoader(),
		},
		BackgroundColour:         &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		EnableDefaultContextMenu: false,
		LogLevel:                 logger.DEBUG,
		LogLevelProduction:       logger.INFO,
		OnStartup:                app.startup,
		OnShutdown:               app.shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
			},
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  false,
		},
	})

	if err != nil {
		log.Println("Error:", err.Error())
	}
}
