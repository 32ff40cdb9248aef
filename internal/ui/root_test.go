package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/img2video/internal/model"
)

type convertCall struct {
	images []model.ImageInput
	params model.Params
}

type fakeConverter struct {
	mu       sync.Mutex
	callback func(*model.Job)
	job      model.Job
	result   *model.Result
	err      error
	calls    chan convertCall
}

func newFakeConverter() *fakeConverter {
	return &fakeConverter{calls: make(chan convertCall, 1)}
}

func (f *fakeConverter) SetUpdateCallback(cb func(*model.Job)) {
	f.mu.Lock()
	f.callback = cb
	f.mu.Unlock()
}

func (f *fakeConverter) Convert(ctx context.Context, images []model.ImageInput, params model.Params) (*model.Result, error) {
	f.calls <- convertCall{images: images, params: params}
	return f.result, f.err
}

func (f *fakeConverter) Snapshot() model.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.job
}

func (f *fakeConverter) IsConverting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.job.State.IsActive()
}

func newTestUI(t *testing.T) (*RootUI, *fakeConverter) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	window := app.NewWindow("test")
	conv := newFakeConverter()
	return NewRootUI(window, app, conv), conv
}

func TestNewRootUI_InitialState(t *testing.T) {
	ui, conv := newTestUI(t)

	if conv.callback == nil {
		t.Error("UI should register an update callback")
	}
	if !ui.convertBtn.Disabled() {
		t.Error("Convert should be disabled without images")
	}
	if ui.progressBox.Visible() {
		t.Error("Progress should be hidden initially")
	}
	if ui.resultBox.Visible() {
		t.Error("Result panel should be hidden initially")
	}
	if ui.fpsSelect.Selected != "10 FPS" {
		t.Errorf("Expected default fps selection, got %q", ui.fpsSelect.Selected)
	}
	if ui.musicSelect.Selected != string(model.MusicNone) {
		t.Errorf("Expected default music selection, got %q", ui.musicSelect.Selected)
	}
	if ui.outputNameEntry.Text != model.DefaultOutputName {
		t.Errorf("Expected default output name, got %q", ui.outputNameEntry.Text)
	}
	if len(ui.fpsSelect.Options) != len(model.FPSOptions) {
		t.Errorf("Expected %d fps options, got %d", len(model.FPSOptions), len(ui.fpsSelect.Options))
	}
}

func TestApplySelection(t *testing.T) {
	ui, _ := newTestUI(t)

	ui.applySelection(3, nil)
	if ui.summaryLabel.Text != "3 images selected" {
		t.Errorf("Unexpected summary %q", ui.summaryLabel.Text)
	}
	if ui.convertBtn.Disabled() {
		t.Error("Convert should be enabled with images")
	}

	ui.applySelection(0, nil)
	if ui.summaryLabel.Text != "0 images selected" {
		t.Errorf("Unexpected summary %q", ui.summaryLabel.Text)
	}
	if !ui.convertBtn.Disabled() {
		t.Error("Convert should be disabled with an empty selection")
	}
	if !ui.statusLabel.Visible() {
		t.Error("Empty selection should be reported")
	}
}

func TestApplyJob_Converting(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.applySelection(2, nil)

	ui.applyJob(model.Job{State: model.RunStateConverting, Percent: 40})

	if !ui.convertBtn.Disabled() {
		t.Error("Convert should be disabled while converting")
	}
	if ui.convertBtn.Text != "Converting..." {
		t.Errorf("Expected converting label, got %q", ui.convertBtn.Text)
	}
	if !ui.progressBox.Visible() {
		t.Error("Progress should be visible while converting")
	}
	if ui.progressLabel.Text != "40% Complete" {
		t.Errorf("Unexpected progress label %q", ui.progressLabel.Text)
	}
	if ui.progressBar.Value != 40 {
		t.Errorf("Expected progress bar at 40, got %v", ui.progressBar.Value)
	}
}

func TestApplyJob_Ready(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.applySelection(2, nil)

	result := &model.Result{
		Data:         make([]byte, 2048),
		MIMEType:     model.VideoMIMEType,
		DownloadName: "holiday.mp4",
		DurationSec:  0.2,
		Width:        1280,
		Height:       720,
	}
	ui.applyJob(model.Job{State: model.RunStateIdle, Percent: 100, Result: result})

	if !ui.resultBox.Visible() {
		t.Error("Result panel should be visible")
	}
	if ui.convertBtn.Disabled() || !strings.Contains(ui.convertBtn.Text, "Convert to Video") {
		t.Errorf("Convert should be re-enabled, got %q", ui.convertBtn.Text)
	}
	if ui.progressLabel.Text != "100% Complete" {
		t.Errorf("Unexpected progress label %q", ui.progressLabel.Text)
	}
	if !strings.Contains(ui.resultInfo.Text, "1280x720") || !strings.Contains(ui.resultInfo.Text, "2.0 KB") {
		t.Errorf("Unexpected result info %q", ui.resultInfo.Text)
	}
	if !ui.playBtn.Disabled() {
		t.Error("Play needs a preview file")
	}
}

func TestApplyJob_FailureKeepsResult(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.applySelection(1, nil)

	result := &model.Result{DownloadName: "a.mp4"}
	ui.applyJob(model.Job{State: model.RunStateIdle, Percent: 100, Result: result})
	ui.applyJob(model.Job{State: model.RunStateIdle, Percent: 35, Result: result, LastError: "exit status 1"})

	if !ui.resultBox.Visible() {
		t.Error("Previous result should stay visible after a failure")
	}
	if ui.progressLabel.Text != "35% Complete" {
		t.Errorf("Progress should stay at the last value, got %q", ui.progressLabel.Text)
	}
}

func TestParameterControls(t *testing.T) {
	ui, _ := newTestUI(t)

	ui.outputNameEntry.SetText("holiday")
	ui.fpsSelect.SetSelected("25 FPS")
	ui.musicSelect.SetSelected(string(model.MusicRelaxing))

	want := model.Params{OutputName: "holiday", FPS: 25, Music: model.MusicRelaxing}
	if got := ui.selection.Params(); got != want {
		t.Errorf("Expected params %+v, got %+v", want, got)
	}
	if got := ui.settings.GetParams(); got != want {
		t.Errorf("Expected stored params %+v, got %+v", want, got)
	}
}

func TestOnConvertClick(t *testing.T) {
	ui, conv := newTestUI(t)
	conv.result = &model.Result{DownloadName: "awesome_video.mp4"}

	ui.selection.SelectImages([]model.RawFile{
		{Name: "b.png", Data: []byte("b"), MediaType: "image/png"},
		{Name: "a.jpg", Data: []byte("a"), MediaType: "image/jpeg"},
	})
	ui.applySelection(ui.selection.Count(), nil)

	test.Tap(ui.convertBtn)

	select {
	case call := <-conv.calls:
		if len(call.images) != 2 || call.images[0].Name != "a.jpg" {
			t.Errorf("Unexpected images %+v", call.images)
		}
		if call.params.FPS != model.DefaultFPS {
			t.Errorf("Unexpected params %+v", call.params)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Convert was not called")
	}
}

func TestOnConvertClick_NoImages(t *testing.T) {
	ui, conv := newTestUI(t)

	ui.onConvertClick()

	select {
	case <-conv.calls:
		t.Error("Convert should not run without images")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLanguageChange(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.applySelection(4, nil)

	ui.onLanguageChange("ru")

	if ui.titleLabel.Text != "Конвертер изображений в видео" {
		t.Errorf("Title not localized: %q", ui.titleLabel.Text)
	}
	if ui.summaryLabel.Text != "Выбрано изображений: 4" {
		t.Errorf("Summary not localized: %q", ui.summaryLabel.Text)
	}
	if ui.settings.GetLanguage() != "ru" {
		t.Error("Language should be stored")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
