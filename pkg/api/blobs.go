package api

// BlobResponse ответ на загрузку файла
type BlobResponse struct {
	URL      string `json:"url"`      // публичный адрес файла
	Path     string `json:"path"`     // путь внутри хранилища
	Checksum string `json:"checksum"` // blake2b-256, hex
	Size     int64  `json:"size"`
}

// WhoAmIResponse субъект текущего токена
type WhoAmIResponse struct {
	Subject   string `json:"subject"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// HealthResponse ответ health-check
type HealthResponse struct {
	Status  string `json:"status"` // ok | unavailable
	Version string `json:"version,omitempty"`
}
