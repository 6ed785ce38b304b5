package model

import "encoding/json"

// ShortenRequest представляет структуру JSON-запроса на сокращение URL.
type ShortenRequest struct {
	URL                string      `json:"url"`
	UseCustomValidity  bool        `json:"useCustomValidity"`
	ValidityPeriod     json.Number `json:"validityPeriod,omitempty"`
	UseCustomShortcode bool        `json:"useCustomShortcode"`
	CustomShortcode    string      `json:"customShortcode,omitempty"`
}

// Submission переводит запрос API в данные формы.
func (r ShortenRequest) Submission() Submission {
	return Submission{
		LongURL:            r.URL,
		UseCustomValidity:  r.UseCustomValidity,
		ValidityPeriod:     r.ValidityPeriod.String(),
		UseCustomShortcode: r.UseCustomShortcode,
		CustomShortcode:    r.CustomShortcode,
	}
}

// ErrorResponse описывает ошибку, возвращаемую API.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// LookupResponse возвращается при поиске ссылки по короткому коду.
type LookupResponse struct {
	Shortcode   string `json:"shortcode"`
	OriginalURL string `json:"originalUrl"`
}

// StatsResponse содержит статистику сервиса.
type StatsResponse struct {
	URLs int `json:"urls"`
}
