package interview

import "errors"

var ErrNoQuestions = errors.New("question bank is empty")

// Bank is the fixed, ordered list of practice questions.
type Bank struct {
	questions []string
}

func NewBank(questions []string) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Bank{questions: append([]string(nil), questions...)}, nil
}

// All returns a copy of the questions in order.
func (b *Bank) All() []string {
	return append([]string(nil), b.questions...)
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Next picks the question to ask after answered responses:
// index = answered mod len. Negative counts start from the top.
func (b *Bank) Next(answered int) (int, string) {
	if answered < 0 {
		answered = 0
	}
	idx := answered % len(b.questions)
	return idx, b.questions[idx]
}

func (b *Bank) At(index int) (string, bool) {
	if index < 0 || index >= len(b.questions) {
		return "", false
	}
	return b.questions[index], true
}
