package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kando-edu/piar-api/controllers"
)

// RequestID tags every request and response with an X-Request-ID header,
// honoring one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func SetupRoutes(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	catalogController *controllers.CatalogController,
	dbaController *controllers.DbaController,
	analysisController *controllers.AnalysisController,
) {
	router.Use(RequestID())

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/recover-password", authController.RecoverPassword)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.GET("/me", authController.AuthMiddleware(), userController.GetCurrentUser)
	}

	router.GET("/api/tipos-documento", catalogController.GetTiposDocumento)
	router.GET("/api/tipos-documento/:id", catalogController.GetTipoDocumentoById)
	router.POST("/api/tipos-documento", authController.AuthMiddleware(), catalogController.CreateTipoDocumento)
	router.PUT("/api/tipos-documento/:id", authController.AuthMiddleware(), catalogController.UpdateTipoDocumento)
	router.DELETE("/api/tipos-documento/:id", authController.AuthMiddleware(), catalogController.DeleteTipoDocumento)

	router.GET("/api/generos", catalogController.GetGeneros)

	router.GET("/api/departamentos", catalogController.GetDepartamentos)
	router.GET("/api/departamentos/:id/municipios", catalogController.GetMunicipiosByDepartamento)

	router.GET("/api/eps", catalogController.GetEps)
	router.GET("/api/eps/:id", catalogController.GetEpsById)

	router.GET("/api/frecuencias-rehabilitacion", catalogController.GetFrecuenciasRehabilitacion)
	router.GET("/api/frecuencias-rehabilitacion/:id", catalogController.GetFrecuenciaRehabilitacionById)

	router.GET("/api/frecuencias-medicamentos", catalogController.GetFrecuenciasMedicamentos)
	router.GET("/api/frecuencias-medicamentos/:id", catalogController.GetFrecuenciaMedicamentoById)

	router.GET("/api/horarios-medicamentos", catalogController.GetHorariosMedicamentos)
	router.GET("/api/horarios-medicamentos/:id", catalogController.GetHorarioMedicamentoById)

	router.GET("/api/categorias-simat", catalogController.GetCategoriasSimat)
	router.GET("/api/categorias-simat/:id", catalogController.GetCategoriaSimatById)

	router.GET("/api/barreras", catalogController.GetAllBarreras)
	router.GET("/api/barreras/categoria/:id", catalogController.GetBarrerasByCategoria)
	router.GET("/api/barreras/:id", catalogController.GetBarreraById)

	router.GET("/api/grupos-etnicos", catalogController.GetGruposEtnicos)
	router.GET("/api/grupos-etnicos/:id", catalogController.GetGrupoEtnicoById)

	router.GET("/api/colegios", catalogController.GetColegios)
	router.GET("/api/colegios/:id", catalogController.GetColegioById)

	router.GET("/api/niveles-educativos", catalogController.GetNivelesEducativos)
	router.GET("/api/niveles-educativos/:id", catalogController.GetNivelEducativoById)

	router.GET("/api/ingresos-promedios-mensuales", catalogController.GetIngresosPromediosMensuales)
	router.GET("/api/ingresos-promedios-mensuales/:id", catalogController.GetIngresoPromedioMensualById)

	router.GET("/api/relaciones-estudiante", catalogController.GetRelacionesEstudiante)
	router.GET("/api/relaciones-estudiante/nombres", catalogController.GetNombresRelaciones)
	router.GET("/api/relaciones-estudiante/:id", catalogController.GetRelacionEstudianteById)

	router.GET("/api/asignaturas", catalogController.GetAsignaturas)
	router.GET("/api/asignaturas-educacion-inicial", catalogController.GetAsignaturasEducacionInicial)
	router.GET("/api/asignaturas-educacion-inicial/resumen/dimensiones", catalogController.GetResumenDimensiones)
	router.GET("/api/asignaturas-educacion-inicial/:id", catalogController.GetAsignaturaEducacionInicialById)

	dba := router.Group("/api/derechos-basicos-aprendizaje")
	{
		dba.GET("/asignatura/:idAsignatura/grado/:idGrado", dbaController.GetDbaByAsignaturaAndGrado)
		dba.GET("/asignaturas-grados", dbaController.GetAsignaturasGradosConDba)
		dba.GET("/buscar", dbaController.BuscarDba)
		dba.GET("/estadisticas", dbaController.GetEstadisticasDba)
		dba.GET("/:idDba/evidencias", dbaController.GetDbaWithEvidencias)
	}

	gemini := router.Group("/api/gemini", authController.AuthMiddleware())
	{
		gemini.POST("/analizar-funciones-cognitivas", analysisController.AnalizarFuncionesCognitivas)
		gemini.GET("/verificar-configuracion", analysisController.VerificarConfiguracion)
		gemini.GET("/status", analysisController.Status)
	}
}
