// Package extract turns an uploaded exam image into question text. The
// real OCR backend is a deployment concern; the service ships with a
// deterministic mock so the rest of the pipeline can run end to end.
package extract

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"
)

// Extractor recovers the question text from an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// cannedQuestions mirrors the kind of statements found on Brazilian
// school exams. The mock cycles through them for binary uploads.
var cannedQuestions = []string{
	"Uma loja oferece um desconto de 15% sobre o preço de uma mercadoria que custa R$ 240,00. Qual será o valor pago após o desconto?",
	"Um terreno retangular tem 25 m de comprimento e 18 m de largura. Calcule a área total do terreno em metros quadrados.",
	"João aplicou R$ 1.000,00 a juros simples de 2% ao mês. Qual será o montante após 6 meses?",
	"Uma escada de 5 m está apoiada em um muro, com a base a 3 m da parede. A que altura do chão está o topo da escada?",
}

// Mock is the canned-text Extractor. Plain UTF-8 uploads pass through
// unchanged; anything else yields the next canned question.
type Mock struct {
	mu   sync.Mutex
	next int
}

// NewMock creates a Mock extractor.
func NewMock() *Mock {
	return &Mock{}
}

// Extract returns the upload itself when it is already readable text,
// otherwise the next canned question in rotation.
func (m *Mock) Extract(_ context.Context, data []byte) (string, error) {
	if text := strings.TrimSpace(string(data)); text != "" && utf8.ValidString(text) && !looksBinary(text) {
		return text, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	q := cannedQuestions[m.next%len(cannedQuestions)]
	m.next++
	return q, nil
}

// looksBinary flags content with control characters outside the usual
// whitespace set.
func looksBinary(s string) bool {
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			return true
		}
	}
	return false
}
