package model

// Submission содержит данные формы сокращения ссылки.
type Submission struct {
	LongURL            string
	UseCustomValidity  bool
	ValidityPeriod     string // как ввёл пользователь, в минутах
	UseCustomShortcode bool
	CustomShortcode    string
}
