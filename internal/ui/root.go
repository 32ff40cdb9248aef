package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/img2video/internal/config"
	"github.com/ytget/img2video/internal/convert"
	"github.com/ytget/img2video/internal/model"
	"github.com/ytget/img2video/internal/platform"
	"github.com/ytget/img2video/internal/selection"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	converter    convert.Converter
	selection    *selection.Manager
	settings     *config.Settings
	localization *Localization

	// Header
	titleLabel    *widget.Label
	subtitleLabel *widget.Label
	settingsBtn   *widget.Button

	// Selection
	selectBtn    *widget.Button
	summaryLabel *widget.Label
	thumbStrip   *fyne.Container

	// Parameters
	outputNameLabel *widget.Label
	outputNameEntry *widget.Entry
	fpsLabel        *widget.Label
	fpsSelect       *widget.Select
	musicLabel      *widget.Label
	musicSelect     *widget.Select
	musicHint       *widget.Label

	// Conversion
	convertBtn    *widget.Button
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	progressBox   *fyne.Container
	statusLabel   *widget.Label

	// Result
	resultTitle   *widget.Label
	resultInfo    *widget.Label
	resultPreview *fyne.Container
	playBtn       *widget.Button
	saveBtn       *widget.Button
	revealBtn     *widget.Button
	resultBox     *fyne.Container

	// Latest state, touched on the UI thread only
	job         model.Job
	imageCount  int
	hasSelected bool
	savedPath   string
	coverImage  []byte // first image of the running or last conversion

	// Progress update debouncing
	lastProgressUpdate time.Time
	progressMutex      sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, converter convert.Converter) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		converter:    converter,
		selection:    selection.NewManager(),
		settings:     settings,
		localization: localization,
	}

	// Restore the last used parameters
	params := settings.GetParams()
	ui.selection.SetOutputName(params.OutputName)
	if err := ui.selection.SetFPS(params.FPS); err != nil {
		log.Printf("Ignoring stored fps: %v", err)
	}
	if err := ui.selection.SetMusic(params.Music); err != nil {
		log.Printf("Ignoring stored music: %v", err)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	converter.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	text := ui.localization.GetText
	params := ui.selection.Params()

	// Header
	ui.titleLabel = widget.NewLabelWithStyle(text(KeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.subtitleLabel = widget.NewLabelWithStyle(text(KeySubtitle), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewBorder(nil, nil, nil, ui.settingsBtn, ui.titleLabel)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, ui.settingsBtn, ui.titleLabel)
	}

	// Folder picker and summary
	ui.selectBtn = widget.NewButton(IconFolder+" "+text(KeySelectImages), ui.onSelectFolder)
	ui.summaryLabel = widget.NewLabel("")
	ui.summaryLabel.Hide()
	ui.thumbStrip = container.NewHBox()

	// Parameters
	ui.outputNameLabel = widget.NewLabel(text(KeyOutputName))
	ui.outputNameEntry = widget.NewEntry()
	ui.outputNameEntry.SetPlaceHolder(model.DefaultOutputName)
	ui.outputNameEntry.SetText(params.OutputName)
	ui.outputNameEntry.OnChanged = ui.onOutputNameChanged

	fpsOptions := make([]string, 0, len(model.FPSOptions))
	for _, fps := range model.FPSOptions {
		fpsOptions = append(fpsOptions, model.FPSLabel(fps))
	}
	ui.fpsLabel = widget.NewLabel(text(KeyFrameRate))
	ui.fpsSelect = widget.NewSelect(fpsOptions, nil)
	ui.fpsSelect.SetSelected(model.FPSLabel(params.FPS))
	ui.fpsSelect.OnChanged = ui.onFPSChanged

	musicOptions := make([]string, 0, len(model.MusicOptions))
	for _, m := range model.MusicOptions {
		musicOptions = append(musicOptions, string(m))
	}
	ui.musicLabel = widget.NewLabel(IconMusic + " " + text(KeyMusic))
	ui.musicSelect = widget.NewSelect(musicOptions, nil)
	ui.musicSelect.SetSelected(string(params.Music))
	ui.musicSelect.OnChanged = ui.onMusicChanged
	ui.musicHint = widget.NewLabelWithStyle(text(KeyMusicHint), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})

	paramsForm := container.New(
		layout.NewFormLayout(),
		ui.outputNameLabel, ui.outputNameEntry,
		ui.fpsLabel, ui.fpsSelect,
		ui.musicLabel, ui.musicSelect,
	)

	// Convert and progress
	ui.convertBtn = widget.NewButton(IconFilm+" "+text(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	ui.convertBtn.Disable()

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Min = 0
	ui.progressBar.Max = 100
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.progressLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	ui.progressBox = container.NewVBox(ui.progressBar, ui.progressLabel)
	ui.progressBox.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.statusLabel.Hide()

	// Result panel
	ui.resultTitle = widget.NewLabelWithStyle(text(KeyVideoReady), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.resultInfo = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	ui.resultPreview = container.NewCenter()
	ui.playBtn = widget.NewButton(IconPlay+" "+text(KeyPlay), ui.onPlay)
	ui.saveBtn = widget.NewButton(IconSave+" "+text(KeySave), ui.onSave)
	ui.saveBtn.Importance = widget.SuccessImportance
	ui.revealBtn = widget.NewButton(IconFolder+" "+text(KeyReveal), ui.onReveal)
	ui.resultBox = container.NewVBox(
		widget.NewSeparator(),
		ui.resultTitle,
		ui.resultPreview,
		ui.resultInfo,
		container.NewCenter(container.NewHBox(ui.playBtn, ui.saveBtn, ui.revealBtn)),
	)
	ui.resultBox.Hide()

	content := container.NewVBox(
		header,
		ui.subtitleLabel,
		widget.NewSeparator(),
		ui.selectBtn,
		ui.summaryLabel,
		container.NewHScroll(ui.thumbStrip),
		widget.NewSeparator(),
		paramsForm,
		ui.musicHint,
		ui.convertBtn,
		ui.progressBox,
		ui.statusLabel,
		ui.resultBox,
	)

	ui.window.SetContent(container.NewVScroll(container.NewPadded(content)))

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	selectItem := fyne.NewMenuItem(ui.localization.GetText(KeySelectImages), ui.onSelectFolder)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), selectItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.titleLabel.SetText(text(KeyAppTitle))
	ui.subtitleLabel.SetText(text(KeySubtitle))
	ui.selectBtn.SetText(IconFolder + " " + text(KeySelectImages))
	ui.outputNameLabel.SetText(text(KeyOutputName))
	ui.fpsLabel.SetText(text(KeyFrameRate))
	ui.musicLabel.SetText(IconMusic + " " + text(KeyMusic))
	ui.musicHint.SetText(text(KeyMusicHint))
	ui.resultTitle.SetText(text(KeyVideoReady))
	ui.playBtn.SetText(IconPlay + " " + text(KeyPlay))
	ui.saveBtn.SetText(IconSave + " " + text(KeySave))
	ui.revealBtn.SetText(IconFolder + " " + text(KeyReveal))

	if ui.hasSelected {
		ui.summaryLabel.SetText(ui.summaryText(ui.imageCount))
	}
	ui.applyJob(ui.job)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
			ui.onLanguageChange(lang)
		}
		ui.showStatus(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// onSelectFolder opens the folder picker
func (ui *RootUI) onSelectFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.Printf("Folder picker failed: %v", err)
			return
		}
		if uri == nil {
			return // Cancelled
		}
		ui.loadFolder(uri.Path())
	}, ui.window)
}

// loadFolder reads dir in the background and replaces the selection
func (ui *RootUI) loadFolder(dir string) {
	log.Printf("Reading images from %s", dir)

	go func() {
		files, err := platform.ReadFolder(dir)
		if err != nil {
			log.Printf("Failed to read folder %s: %v", dir, err)
			fyne.Do(func() {
				ui.showStatus(ui.localization.GetText(KeyErrorReadingDir)+": "+err.Error(), true)
			})
			return
		}

		images := ui.selection.SelectImages(files)
		thumbs := buildThumbnails(images, ThumbnailStripCount, ThumbnailWidth, ThumbnailHeight)
		log.Printf("Selected %d of %d files from %s", len(images), len(files), dir)

		fyne.Do(func() {
			ui.applySelection(len(images), thumbs)
		})
	}()
}

// applySelection renders a new selection
func (ui *RootUI) applySelection(count int, thumbs []fyne.CanvasObject) {
	ui.imageCount = count
	ui.hasSelected = true

	ui.summaryLabel.SetText(ui.summaryText(count))
	ui.summaryLabel.Show()

	ui.thumbStrip.Objects = thumbs
	ui.thumbStrip.Refresh()

	if count == 0 {
		ui.showStatus(ui.localization.GetText(KeyNoImagesFound), true)
	} else {
		ui.statusLabel.Hide()
	}

	ui.updateConvertButton()
}

func (ui *RootUI) summaryText(count int) string {
	return fmt.Sprintf(ui.localization.GetText(KeyImagesSelected), count)
}

func (ui *RootUI) onOutputNameChanged(name string) {
	ui.selection.SetOutputName(name)
	ui.settings.SetOutputName(name)
}

func (ui *RootUI) onFPSChanged(label string) {
	fps, err := model.ParseFPSLabel(label)
	if err == nil {
		err = ui.selection.SetFPS(fps)
	}
	if err != nil {
		log.Printf("Rejected frame rate %q: %v", label, err)
		return
	}
	ui.settings.SetFPS(fps)
}

func (ui *RootUI) onMusicChanged(value string) {
	music := model.MusicMode(value)
	if err := ui.selection.SetMusic(music); err != nil {
		log.Printf("Rejected music mode %q: %v", value, err)
		return
	}
	ui.settings.SetMusic(music)
}

// onConvertClick starts a conversion of the current selection
func (ui *RootUI) onConvertClick() {
	images := ui.selection.Images()
	if len(images) == 0 || ui.converter.IsConverting() {
		return
	}
	params := ui.selection.Params()
	if strings.TrimSpace(params.OutputName) == "" {
		params.OutputName = model.DefaultOutputName
	}

	ui.coverImage = images[0].Data
	ui.statusLabel.Hide()
	ui.convertBtn.Disable()
	ui.convertBtn.SetText(ui.localization.GetText(KeyConverting))

	log.Printf("Converting %d images at %d fps", len(images), params.FPS)

	go func() {
		result, err := ui.converter.Convert(context.Background(), images, params)
		fyne.Do(func() {
			ui.onConvertFinished(result, err)
		})
	}()
}

// onConvertFinished reports the outcome of a conversion
func (ui *RootUI) onConvertFinished(result *model.Result, err error) {
	if err != nil {
		if errors.Is(err, convert.ErrBusy) {
			return
		}
		ui.showStatus(ui.localization.GetText(KeyConversionFailed)+": "+err.Error(), true)
		ui.applyJob(ui.converter.Snapshot())
		return
	}

	log.Printf("Video ready: %s (%d bytes)", result.DownloadName, result.Size())
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyVideoReady),
		Content: result.DownloadName,
	})
	ui.applyJob(ui.converter.Snapshot())
}

// onJobUpdate receives job snapshots from the converter
func (ui *RootUI) onJobUpdate(job *model.Job) {
	if job.State.IsActive() && job.Percent > 0 && !ui.shouldUpdateProgress() {
		return
	}
	snapshot := *job
	fyne.Do(func() {
		ui.applyJob(snapshot)
	})
}

// shouldUpdateProgress limits the rate of progress-only updates
func (ui *RootUI) shouldUpdateProgress() bool {
	ui.progressMutex.Lock()
	defer ui.progressMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastProgressUpdate) < ProgressUpdateDebounce {
		return false
	}
	ui.lastProgressUpdate = now
	return true
}

// applyJob renders a job snapshot. Must run on the UI thread.
func (ui *RootUI) applyJob(job model.Job) {
	previous := ui.job.Result
	ui.job = job

	converting := job.State.IsActive()
	if converting || job.Percent > 0 {
		ui.progressBar.SetValue(float64(job.Percent))
		ui.progressLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyProgressComplete), job.Percent))
		ui.progressBox.Show()
	} else {
		ui.progressBox.Hide()
	}

	if job.Result != nil {
		if job.Result != previous {
			ui.savedPath = ""
			ui.renderResult(job.Result)
		}
		ui.resultBox.Show()
	} else {
		ui.resultBox.Hide()
	}

	ui.updateConvertButton()
}

// renderResult fills the result panel for a newly published video
func (ui *RootUI) renderResult(result *model.Result) {
	info := []string{
		ui.localization.GetText(KeyDuration) + ": " + result.GetDurationString(),
		ui.localization.GetText(KeyResolution) + ": " + result.GetResolutionString(),
		ui.localization.GetText(KeySize) + ": " + formatBytes(result.Size()),
	}
	ui.resultInfo.SetText(strings.Join(info, MiddleDotSeparator))

	ui.resultPreview.Objects = nil
	if len(ui.coverImage) > 0 {
		if img, err := MakeThumbnail(ui.coverImage, PreviewWidth, PreviewHeight); err == nil {
			ui.resultPreview.Objects = []fyne.CanvasObject{newThumbnailImage(img, PreviewWidth, PreviewHeight)}
		}
	}
	ui.resultPreview.Refresh()

	if result.PreviewPath == "" {
		ui.playBtn.Disable()
		ui.revealBtn.Disable()
	} else {
		ui.playBtn.Enable()
		ui.revealBtn.Enable()
	}
}

// updateConvertButton enables the trigger only with images and no active run
func (ui *RootUI) updateConvertButton() {
	if ui.job.State.IsActive() {
		ui.convertBtn.SetText(ui.localization.GetText(KeyConverting))
		ui.convertBtn.Disable()
		return
	}

	ui.convertBtn.SetText(IconFilm + " " + ui.localization.GetText(KeyConvert))
	if ui.imageCount > 0 {
		ui.convertBtn.Enable()
	} else {
		ui.convertBtn.Disable()
	}
}

// showStatus shows a message under the convert button
func (ui *RootUI) showStatus(message string, isError bool) {
	if isError {
		message = IconError + " " + message
	}
	ui.statusLabel.SetText(message)
	ui.statusLabel.Show()
}

// currentResult returns the published result, or nil
func (ui *RootUI) currentResult() *model.Result {
	return ui.job.Result
}

// onPlay opens the preview with the system player
func (ui *RootUI) onPlay() {
	result := ui.currentResult()
	if result == nil || result.PreviewPath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(result.PreviewPath); err != nil {
		log.Printf("Error playing %s: %v", result.PreviewPath, err)
		ui.showStatus(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), true)
	}
}

// onReveal shows the saved video, or the preview if not saved yet
func (ui *RootUI) onReveal() {
	path := ui.savedPath
	if path == "" {
		if result := ui.currentResult(); result != nil {
			path = result.PreviewPath
		}
	}
	if path == "" {
		return
	}
	if err := platform.OpenFileInManager(path); err != nil {
		log.Printf("Error revealing %s: %v", path, err)
		ui.showStatus(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), true)
	}
}

// onSave asks for a destination and writes the video there
func (ui *RootUI) onSave() {
	result := ui.currentResult()
	if result == nil {
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showStatus(ui.localization.GetText(KeyErrorSavingFile)+": "+err.Error(), true)
			return
		}
		if writer == nil {
			return // Cancelled
		}
		ui.writeResult(result, writer)
	}, ui.window)

	saveDialog.SetFileName(result.DownloadName)
	if dir := ui.settings.GetOutputDirectory(); dir != "" {
		if err := platform.CreateDirectoryIfNotExists(dir); err == nil {
			if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
				saveDialog.SetLocation(lister)
			}
		}
	}
	saveDialog.Show()
}

// writeResult copies the video bytes to writer and closes it
func (ui *RootUI) writeResult(result *model.Result, writer fyne.URIWriteCloser) {
	_, writeErr := writer.Write(result.Data)
	closeErr := writer.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		log.Printf("Error saving video to %s: %v", writer.URI(), writeErr)
		ui.showStatus(ui.localization.GetText(KeyErrorSavingFile)+": "+writeErr.Error(), true)
		return
	}

	ui.savedPath = writer.URI().Path()
	log.Printf("Video saved to %s", ui.savedPath)
	if err := platform.NotifyMediaScanner(ui.savedPath); err != nil {
		log.Printf("Media scanner notification failed: %v", err)
	}
	ui.showStatus(ui.localization.GetText(KeyVideoSaved)+": "+ui.savedPath, false)

	if ui.settings.GetAutoRevealOnComplete() {
		ui.onReveal()
	}
}

// formatBytes renders a size as B, KB or MB
func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
