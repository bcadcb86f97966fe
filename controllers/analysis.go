package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/utils"
	"github.com/kando-edu/piar-api/validators"
)

// AnalysisController turns questionnaire answers into a narrative summary
// through an external text generator.
type AnalysisController struct {
	generator utils.TextGenerator
	model     string
}

func NewAnalysisController(generator utils.TextGenerator, model string) *AnalysisController {
	return &AnalysisController{
		generator: generator,
		model:     model,
	}
}

// Status is the service diagnostic for the analysis API.
func (an *AnalysisController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "Gemini Analysis API",
		"version":   "1.0.0",
		"status":    "active",
		"model":     an.model,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// AnalizarFuncionesCognitivas generates the pedagogical narrative for the
// cognitive-functions section of the PIAR form.
func (an *AnalysisController) AnalizarFuncionesCognitivas(c *gin.Context) {
	var req validators.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.FuncionesCognitivas) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Se requieren datos de funciones cognitivas para el análisis",
		})
		return
	}
	if errs := validators.Validate(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, validators.ValidationResponse{Errors: errs})
		return
	}

	prompt := buildAnalysisPrompt(req.FuncionesCognitivas)

	analisis, err := an.generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrGeneratorNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "API key de Gemini no configurada correctamente",
			})
		case errors.Is(err, utils.ErrGeneratorInvalidKey):
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "API key de Gemini inválida",
			})
		case errors.Is(err, utils.ErrGeneratorQuotaExceeded):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Cuota de API de Gemini excedida",
			})
		default:
			log.Printf("analysis: generating: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error interno al realizar el análisis con IA",
			})
		}
		return
	}

	analisis = sanitizeAnalysis(analisis)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Análisis completado exitosamente",
		"data": gin.H{
			"analisis":          analisis,
			"timestamp":         time.Now().UTC().Format(time.RFC3339),
			"totalPreguntas":    len(req.FuncionesCognitivas),
			"palabrasGeneradas": countWords(analisis),
		},
	})
}

// VerificarConfiguracion reports whether the generator is usable.
func (an *AnalysisController) VerificarConfiguracion(c *gin.Context) {
	type configurable interface{ Configured() bool }

	if g, ok := an.generator.(configurable); ok && !g.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "API key de Gemini no configurada",
			"configured": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Configuración de Gemini verificada",
		"configured": true,
	})
}

func buildAnalysisPrompt(items []validators.FuncionCognitiva) string {
	var b strings.Builder

	b.WriteString(`Actúa como un especialista en psicología educativa y neuropsicología infantil. Tu tarea es analizar las respuestas de un estudiante en el área de "Funciones Cognitivas Básicas Para Aprender" dentro del contexto de un Plan Individual de Ajustes Razonables (PIAR) en Colombia.

CONTEXTO:
El PIAR es un documento que garantiza los procesos de enseñanza y aprendizaje de los estudiantes, basados en la valoración pedagógica y social, que incluye los apoyos y ajustes razonables requeridos, entre ellos los curriculares, de infraestructura y todos los demás necesarios para garantizar el aprendizaje, la participación, permanencia y promoción del estudiante.

FUNCIONES COGNITIVAS EVALUADAS:
`)

	for _, categoria := range categoriasOrdenadas(items) {
		b.WriteString("\n--- " + strings.ToUpper(categoria) + " ---\n")
		n := 0
		for _, item := range items {
			if nombreCategoria(item) != categoria {
				continue
			}
			n++
			b.WriteString(strconv.Itoa(n) + ". " + item.Pregunta + "\n   Respuesta: " + item.Respuesta + "\n")
		}
	}

	b.WriteString(`
INSTRUCCIONES PARA EL ANÁLISIS:
1. Genera un RESUMEN COMPLETO Y PRECISO de las funciones cognitivas del estudiante
2. Sé conciso pero asegúrate de incluir toda la información relevante
3. Identifica las fortalezas y áreas de oportunidad más importantes
4. Incluye recomendaciones pedagógicas específicas y prácticas
5. Considera el contexto educativo colombiano y las normativas de educación inclusiva
6. Mantén un lenguaje profesional pero comprensible para educadores
7. Estructura tu respuesta de manera clara y organizada
8. Prioriza la COMPLETITUD y PRECISIÓN sobre la extensión
9. Evita información genérica, enfócate en lo específico del perfil evaluado

FORMATO DE RESPUESTA ESPERADO:
**PERFIL COGNITIVO DEL ESTUDIANTE:**
[Resumen ejecutivo conciso del perfil general]

**FORTALEZAS PRINCIPALES:**
[Capacidades destacadas identificadas en la evaluación]

**ÁREAS QUE REQUIEREN APOYO:**
[Aspectos específicos que necesitan atención o refuerzo]

**RECOMENDACIONES PEDAGÓGICAS:**
[Estrategias concretas y aplicables para el aula]

**AJUSTES SUGERIDOS:**
[Modificaciones específicas recomendadas para optimizar el aprendizaje]

Proporciona un resumen completo y preciso, sin información genérica. Enfócate en los hallazgos específicos basados en las respuestas del estudiante evaluado.`)

	return b.String()
}

func nombreCategoria(item validators.FuncionCognitiva) string {
	if item.Categoria == "" {
		return "General"
	}
	return item.Categoria
}

// categoriasOrdenadas returns the distinct categories in first-seen order.
func categoriasOrdenadas(items []validators.FuncionCognitiva) []string {
	seen := make(map[string]bool)
	var order []string
	for _, item := range items {
		cat := nombreCategoria(item)
		if !seen[cat] {
			seen[cat] = true
			order = append(order, cat)
		}
	}
	return order
}

var aiReferenceRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i).*gemini.*\n?`),
	regexp.MustCompile(`(?i).*inteligencia artificial.*\n?`),
	regexp.MustCompile(`(?i).*\bIA\b.*\n?`),
	regexp.MustCompile(`(?i).*generado automáticamente.*\n?`),
	regexp.MustCompile(`(?i).*sistema automatizado.*\n?`),
	regexp.MustCompile(`(?i).*análisis generado por.*\n?`),
	regexp.MustCompile(`(?i).*este análisis fue.*\n?`),
	regexp.MustCompile(`(?i).*modelo de lenguaje.*\n?`),
	regexp.MustCompile(`(?i).*asistente virtual.*\n?`),
}

// sanitizeAnalysis strips lines where the model refers to itself.
func sanitizeAnalysis(text string) string {
	for _, re := range aiReferenceRes {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
