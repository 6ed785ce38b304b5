package model

// ExpiryNever отображается вместо срока действия, если пользователь его не задал.
const ExpiryNever = "Never"

// Mapping представляет созданную короткую ссылку.
// В хранилище попадает только пара Shortcode -> OriginalURL,
// ExpiryDisplay вычисляется один раз при создании и нигде не проверяется.
type Mapping struct {
	Shortcode     string `json:"shortcode"`
	OriginalURL   string `json:"originalUrl"`
	ShortURL      string `json:"shortUrl"`
	ExpiryDisplay string `json:"expiryDate"`
}
