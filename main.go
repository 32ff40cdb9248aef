package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/img2video/internal/config"
	"github.com/ytget/img2video/internal/convert"
	"github.com/ytget/img2video/internal/engine"
	"github.com/ytget/img2video/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.img2video"
	AppName = "Image to Video"

	PreviewDirName = "previews"

	WindowWidth  = 640
	WindowHeight = 780
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)

	// Engine is owned here for the whole session and loaded on first use
	ffmpeg := engine.NewFFmpeg(settings.GetFFmpegPath(), "")
	defer func() {
		if err := ffmpeg.Close(); err != nil {
			log.Printf("failed to clean engine workspaces: %v", err)
		}
	}()
	handle := engine.NewHandle(ffmpeg)

	previewDir := previewDirectory(myApp)
	defer os.RemoveAll(previewDir)

	converter := convert.NewService(handle, previewDir)

	// Surface a missing ffmpeg in the log before the first conversion
	go func() {
		if _, err := handle.Get(context.Background()); err != nil {
			log.Printf("ffmpeg unavailable: %v", err)
			return
		}
		log.Printf("Engine ready: %s", ffmpeg.Version())
	}()

	ui.NewRootUI(myWindow, myApp, converter)

	myWindow.ShowAndRun()
}

// previewDirectory places previews in the app storage, or the temp dir
// when the app has no storage root
func previewDirectory(a fyne.App) string {
	if root := a.Storage().RootURI(); root != nil && root.Path() != "" {
		return filepath.Join(root.Path(), PreviewDirName)
	}
	return filepath.Join(os.TempDir(), "img2video-"+PreviewDirName)
}
