package services

import (
	"github.com/microcosm-cc/bluemonday"

	"tgminiapp/internal/miniapp/ports/services"
)

// HTMLSanitizer очищает HTML заметок политикой UGC.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer создает санитайзер. Политика безопасна для конкурентного использования.
func NewHTMLSanitizer() services.Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &HTMLSanitizer{policy: policy}
}

// Sanitize удаляет скрипты, обработчики событий и прочую опасную разметку.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
