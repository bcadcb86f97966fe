package validators

// FuncionCognitiva is one answered questionnaire item from the cognitive
// functions section of the PIAR form.
type FuncionCognitiva struct {
	Pregunta  string `json:"pregunta" validate:"required" binding:"required"`
	Respuesta string `json:"respuesta" validate:"required" binding:"required"`
	Categoria string `json:"categoria"`
}

type AnalysisRequest struct {
	FuncionesCognitivas []FuncionCognitiva `json:"funcionesCognitivas" validate:"required,min=1,dive" binding:"required,min=1,dive"`
}
