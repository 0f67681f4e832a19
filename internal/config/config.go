package config

import "os"

const defaultOpenAIModel = "gpt-4o-mini"

// Config carries every environment-derived setting so the rest of the tool
// never reads the process environment directly. Tests build the struct by
// hand instead of mutating the real environment.
type Config struct {
	// TesseractCmd overrides the local engine binary. Empty selects the
	// in-process Tesseract binding.
	TesseractCmd string
	GoogleKey    string
	OpenAIKey    string
	OpenAIModel  string
}

// FromEnv reads the supported environment variables once, applying the
// default model when OPENAI_MODEL is unset.
func FromEnv() Config {
	cfg := Config{
		TesseractCmd: os.Getenv("TESSERACT_CMD"),
		GoogleKey:    os.Getenv("GOOGLE_OCR_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultOpenAIModel
	}
	return cfg
}
