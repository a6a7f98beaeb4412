package config

import "os"

type Config struct {
	Port         string
	Env          string
	PostgresURL  string
	MongoURI     string
	JWTSecret    string
	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBLanguage string
	MailFrom     string
	LogLevel     string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		PostgresURL:  getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:     getEnv("MONGO_URI", ""),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretjwtkey"),
		TMDBAPIKey:   getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBLanguage: getEnv("TMDB_LANGUAGE", "en-US"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@cinelist.io"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
