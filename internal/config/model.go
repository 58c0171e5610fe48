package config

// Model is the unified, format-agnostic representation of a settings file.
type Model struct {
	Server   *Server
	CORS     *CORS
	Log      *Log
	Realtime *Realtime
}

// Server holds HTTP listener settings.
type Server struct {
	ListenAddr      *string
	ReadTimeout     *string
	WriteTimeout    *string
	ShutdownTimeout *string
	MaxBodyBytes    *int64
}

// CORS lists the origins trusted for cross-origin requests.
type CORS struct {
	AllowedOrigins []string
}

// Log holds logger settings.
type Log struct {
	Level  *string
	Format *string
}

// Realtime toggles the Socket.IO transport.
type Realtime struct {
	Enabled *bool
}
