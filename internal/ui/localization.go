package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySubtitle          = "subtitle"
	KeySelectImages      = "select_images"
	KeyImagesSelected    = "images_selected"
	KeyNoImagesFound     = "no_images_found"
	KeyOutputName        = "output_name"
	KeyFrameRate         = "frame_rate"
	KeyMusic             = "music"
	KeyMusicHint         = "music_hint"
	KeyConvert           = "convert"
	KeyConverting        = "converting"
	KeyProgressComplete  = "progress_complete"
	KeyVideoReady        = "video_ready"
	KeyPlay              = "play"
	KeyReveal            = "reveal"
	KeyConversionFailed  = "conversion_failed"
	KeyVideoSaved        = "video_saved"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyOutputDirectory   = "output_directory"
	KeyFFmpegPath        = "ffmpeg_path"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorReadingDir   = "error_reading_dir"
	KeyErrorSavingFile   = "error_saving_file"
	KeyRestartForFFmpeg  = "restart_for_ffmpeg"
	KeyDuration          = "duration"
	KeyResolution        = "resolution"
	KeySize              = "size"
	KeyConversionStarted = "conversion_started"
)

// Supported languages in fallback order
var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest
// supported language to the process locale.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// SystemLanguage matches LC_ALL, LC_MESSAGES or LANG against the supported
// languages, defaulting to English
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang := matchLocale(os.Getenv(key)); lang != "" {
			return lang
		}
	}
	return "en"
}

// matchLocale turns a POSIX locale such as "pt_BR.UTF-8" into a supported
// language code, or "" when nothing matches
func matchLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if idx := strings.IndexAny(locale, ".@"); idx >= 0 {
		locale = locale[:idx]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}

	matcher := language.NewMatcher(supportedLanguages)
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return ""
	}
	base, _ := supportedLanguages[idx].Base()
	return base.String()
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Image to Video Converter",
		KeySubtitle:          "Turn a folder of images into a video slideshow",
		KeySelectImages:      "Select Images",
		KeyImagesSelected:    "%d images selected",
		KeyNoImagesFound:     "No images found in this folder",
		KeyOutputName:        "Output Name",
		KeyFrameRate:         "Frame Rate",
		KeyMusic:             "Background Music",
		KeyMusicHint:         "Music is not mixed into the video yet",
		KeyConvert:           "Convert to Video",
		KeyConverting:        "Converting...",
		KeyProgressComplete:  "%d%% Complete",
		KeyVideoReady:        "Your Video is Ready!",
		KeyPlay:              "Play",
		KeyReveal:            "Show in Folder",
		KeyConversionFailed:  "Conversion failed",
		KeyVideoSaved:        "Video saved",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyOutputDirectory:   "Output Directory",
		KeyFFmpegPath:        "FFmpeg Binary",
		KeyAutoReveal:        "Show saved video in folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorReadingDir:   "Error reading folder",
		KeyErrorSavingFile:   "Error saving file",
		KeyRestartForFFmpeg:  "The new FFmpeg binary is used after a restart",
		KeyDuration:          "Duration",
		KeyResolution:        "Resolution",
		KeySize:              "Size",
		KeyConversionStarted: "Conversion started",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Конвертер изображений в видео",
		KeySubtitle:          "Превратите папку с изображениями в слайд-шоу",
		KeySelectImages:      "Выбрать изображения",
		KeyImagesSelected:    "Выбрано изображений: %d",
		KeyNoImagesFound:     "В этой папке нет изображений",
		KeyOutputName:        "Имя файла",
		KeyFrameRate:         "Частота кадров",
		KeyMusic:             "Фоновая музыка",
		KeyMusicHint:         "Музыка пока не добавляется в видео",
		KeyConvert:           "Создать видео",
		KeyConverting:        "Конвертация...",
		KeyProgressComplete:  "Готово на %d%%",
		KeyVideoReady:        "Ваше видео готово!",
		KeyPlay:              "Воспроизвести",
		KeyReveal:            "Показать в папке",
		KeyConversionFailed:  "Ошибка конвертации",
		KeyVideoSaved:        "Видео сохранено",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyOutputDirectory:   "Папка для видео",
		KeyFFmpegPath:        "Программа FFmpeg",
		KeyAutoReveal:        "Показывать сохранённое видео в папке",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyErrorReadingDir:   "Ошибка чтения папки",
		KeyErrorSavingFile:   "Ошибка сохранения файла",
		KeyRestartForFFmpeg:  "Новый FFmpeg будет использован после перезапуска",
		KeyDuration:          "Длительность",
		KeyResolution:        "Разрешение",
		KeySize:              "Размер",
		KeyConversionStarted: "Конвертация начата",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Conversor de Imagens em Vídeo",
		KeySubtitle:          "Transforme uma pasta de imagens em um vídeo",
		KeySelectImages:      "Selecionar Imagens",
		KeyImagesSelected:    "%d imagens selecionadas",
		KeyNoImagesFound:     "Nenhuma imagem encontrada nesta pasta",
		KeyOutputName:        "Nome do Arquivo",
		KeyFrameRate:         "Taxa de Quadros",
		KeyMusic:             "Música de Fundo",
		KeyMusicHint:         "A música ainda não é adicionada ao vídeo",
		KeyConvert:           "Converter em Vídeo",
		KeyConverting:        "Convertendo...",
		KeyProgressComplete:  "%d%% Concluído",
		KeyVideoReady:        "Seu Vídeo está Pronto!",
		KeyPlay:              "Reproduzir",
		KeyReveal:            "Mostrar na Pasta",
		KeyConversionFailed:  "Falha na conversão",
		KeyVideoSaved:        "Vídeo salvo",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyOutputDirectory:   "Diretório de Saída",
		KeyFFmpegPath:        "Programa FFmpeg",
		KeyAutoReveal:        "Mostrar vídeo salvo na pasta",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyErrorReadingDir:   "Erro ao ler a pasta",
		KeyErrorSavingFile:   "Erro ao salvar arquivo",
		KeyRestartForFFmpeg:  "O novo FFmpeg será usado após reiniciar",
		KeyDuration:          "Duração",
		KeyResolution:        "Resolução",
		KeySize:              "Tamanho",
		KeyConversionStarted: "Conversão iniciada",
	}
}
