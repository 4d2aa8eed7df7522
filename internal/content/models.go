package content

import "github.com/mind-engage/imuno/internal/bank"

type Image struct {
	Src     string `json:"src"`
	Caption string `json:"legenda"`
	Detail  string `json:"descricao_detalhada,omitempty"`
	Alt     string `json:"alt"`
}

type Flashcard struct {
	Front string `json:"frente"`
	Back  string `json:"verso"`
}

type Subtopic struct {
	Title      string      `json:"titulo"`
	Body       string      `json:"conteudo"` // sanitised HTML
	Images     []Image     `json:"imagens"`
	Flashcards []Flashcard `json:"flashcards"`
}

type Module struct {
	ID        bank.ID    `json:"id"`
	Title     string     `json:"titulo"`
	Subtopics []Subtopic `json:"subtopicos"`
}

type Reference struct {
	Text string `json:"referencia"`
}
