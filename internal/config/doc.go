// Package config loads docingest settings.
//
// Values are layered with koanf: struct defaults first, then any dotenv file,
// then the process environment. Each field carries the environment variable
// that overrides it in its env tag, for example PORT, TARGET_CHARS,
// OVERLAP_CHARS and MODEL_NAME. Blank variables are ignored.
package config
