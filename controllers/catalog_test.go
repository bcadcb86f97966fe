package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.TipoDocumento{}, &models.Genero{}, &models.Departamento{}, &models.Municipio{},
		&models.Eps{}, &models.CategoriaSimat{}, &models.Barrera{}, &models.Colegio{},
		&models.NivelEducativo{}, &models.Asignatura{}, &models.GradoPiar{},
		&models.DerechoBasicoAprendizaje{}, &models.EvidenciaAprendizaje{},
		&models.IngresoPromedioMensual{}, &models.RelacionEstudiante{},
		&models.AsignaturaEducacionInicial{},
	))

	cc := NewCatalogController(db, nil)
	dc := NewDbaController(db)

	router := gin.New()
	router.GET("/api/tipos-documento", cc.GetTiposDocumento)
	router.GET("/api/tipos-documento/:id", cc.GetTipoDocumentoById)
	router.POST("/api/tipos-documento", cc.CreateTipoDocumento)
	router.PUT("/api/tipos-documento/:id", cc.UpdateTipoDocumento)
	router.DELETE("/api/tipos-documento/:id", cc.DeleteTipoDocumento)
	router.GET("/api/generos", cc.GetGeneros)
	router.GET("/api/departamentos/:id/municipios", cc.GetMunicipiosByDepartamento)
	router.GET("/api/eps", cc.GetEps)
	router.GET("/api/eps/:id", cc.GetEpsById)
	router.GET("/api/barreras", cc.GetAllBarreras)
	router.GET("/api/barreras/categoria/:id", cc.GetBarrerasByCategoria)
	router.GET("/api/ingresos-promedios-mensuales/:id", cc.GetIngresoPromedioMensualById)
	router.GET("/api/relaciones-estudiante/nombres", cc.GetNombresRelaciones)
	router.GET("/api/asignaturas-educacion-inicial/resumen/dimensiones", cc.GetResumenDimensiones)
	router.GET("/api/derechos-basicos-aprendizaje/asignatura/:idAsignatura/grado/:idGrado", dc.GetDbaByAsignaturaAndGrado)
	router.GET("/api/derechos-basicos-aprendizaje/asignaturas-grados", dc.GetAsignaturasGradosConDba)
	router.GET("/api/derechos-basicos-aprendizaje/buscar", dc.BuscarDba)
	router.GET("/api/derechos-basicos-aprendizaje/estadisticas", dc.GetEstadisticasDba)
	router.GET("/api/derechos-basicos-aprendizaje/:idDba/evidencias", dc.GetDbaWithEvidencias)

	return &catalogFixture{db: db, router: router}
}

func (f *catalogFixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *catalogFixture) send(method, path string, body interface{}) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGetGenerosListsOnlyActive(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&[]models.Genero{
		{Descripcion: "Masculino", Estado: true},
		{Descripcion: "Femenino", Estado: true},
		{Descripcion: "Obsoleto", Estado: true},
	}).Error)
	require.NoError(t, f.db.Model(&models.Genero{}).
		Where("descripcion = ?", "Obsoleto").Update("estado", false).Error)

	w := f.get("/api/generos")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var items []models.Genero
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestGetEpsOrdersOtroLast(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&[]models.Eps{
		{Nombre: "Otro", Estado: true},
		{Nombre: "Sura", Estado: true},
		{Nombre: "Compensar", Estado: true},
	}).Error)

	w := f.get("/api/eps")
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.Eps
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &items))
	require.Len(t, items, 3)
	assert.Equal(t, "Compensar", items[0].Nombre)
	assert.Equal(t, "Sura", items[1].Nombre)
	assert.Equal(t, "Otro", items[2].Nombre)
}

func TestGetEpsByIdNotFound(t *testing.T) {
	f := newCatalogFixture(t)

	w := f.get("/api/eps/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestGetMunicipiosByDepartamento(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&[]models.Municipio{
		{IDDepartamento: 1, Descripcion: "Medellín", Estado: true},
		{IDDepartamento: 1, Descripcion: "Bello", Estado: true},
		{IDDepartamento: 2, Descripcion: "Cali", Estado: true},
	}).Error)

	w := f.get("/api/departamentos/1/municipios")
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.Municipio
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Bello", items[0].Descripcion)
}

func TestBarrerasByCategoria(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&models.CategoriaSimat{Nombre: "Discapacidad", Estado: true}).Error)
	require.NoError(t, f.db.Create(&[]models.Barrera{
		{IDCategoriaSimat: 1, Nombre: "Acceso físico", Orden: 2, Estado: true},
		{IDCategoriaSimat: 1, Nombre: "Comunicación", Orden: 1, Estado: true},
	}).Error)

	w := f.get("/api/barreras/categoria/1")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []barreraConCategoria
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Comunicación", rows[0].Nombre)
	assert.Equal(t, "Discapacidad", rows[0].Categoria)

	empty := f.get("/api/barreras/categoria/99")
	assert.Equal(t, http.StatusNotFound, empty.Code)
}

func TestTipoDocumentoCRUD(t *testing.T) {
	f := newCatalogFixture(t)

	created := f.send(http.MethodPost, "/api/tipos-documento", gin.H{
		"codigo":      "CC",
		"descripcion": "Cédula de ciudadanía",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	// Duplicate codes conflict, case-insensitively.
	dup := f.send(http.MethodPost, "/api/tipos-documento", gin.H{
		"codigo":      "cc",
		"descripcion": "Duplicado",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)

	updated := f.send(http.MethodPut, "/api/tipos-documento/1", gin.H{
		"codigo":      "CC",
		"descripcion": "Cédula de ciudadanía colombiana",
	})
	assert.Equal(t, http.StatusOK, updated.Code)

	got := f.get("/api/tipos-documento/1")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "colombiana")

	deleted := f.send(http.MethodDelete, "/api/tipos-documento/1", nil)
	assert.Equal(t, http.StatusOK, deleted.Code)

	var item models.TipoDocumento
	require.NoError(t, f.db.First(&item, "id = ?", 1).Error)
	assert.False(t, item.Activo)

	missing := f.send(http.MethodDelete, "/api/tipos-documento/99", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestGetIngresoPromedioMensualById(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&models.IngresoPromedioMensual{
		Nombre: "Menos de 1 SMMLV", Estado: true,
	}).Error)

	w := f.get("/api/ingresos-promedios-mensuales/1")
	require.Equal(t, http.StatusOK, w.Code)

	var item models.IngresoPromedioMensual
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &item))
	assert.Equal(t, "Menos de 1 SMMLV", item.Nombre)

	missing := f.get("/api/ingresos-promedios-mensuales/99")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestGetNombresRelaciones(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&[]models.RelacionEstudiante{
		{Nombre: "Madre", Descripcion: "Madre del estudiante", Estado: true},
		{Nombre: "Padre", Descripcion: "Padre del estudiante", Estado: true},
	}).Error)

	w := f.get("/api/relaciones-estudiante/nombres")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []struct {
		ID     uint   `json:"id"`
		Nombre string `json:"nombre"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Madre", rows[0].Nombre)

	// Only id and nombre are exposed on this endpoint.
	assert.NotContains(t, w.Body.String(), "Madre del estudiante")
}

func TestGetResumenDimensiones(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&[]models.AsignaturaEducacionInicial{
		{Nombre: "Corporal", DimensionTipo: "desarrollo", OrdenDimension: 2, Estado: true},
		{Nombre: "Cognitiva", DimensionTipo: "desarrollo", OrdenDimension: 1, Estado: true},
		{Nombre: "Juego", DimensionTipo: "actividad", OrdenDimension: 1, Estado: true},
	}).Error)

	w := f.get("/api/asignaturas-educacion-inicial/resumen/dimensiones")
	require.Equal(t, http.StatusOK, w.Code)

	var resumen []resumenDimension
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &resumen))
	require.Len(t, resumen, 2)
	assert.Equal(t, "actividad", resumen[0].DimensionTipo)
	assert.Equal(t, 1, resumen[0].TotalDimensiones)
	assert.Equal(t, "desarrollo", resumen[1].DimensionTipo)
	assert.Equal(t, 2, resumen[1].TotalDimensiones)
	assert.Equal(t, "Cognitiva, Corporal", resumen[1].Dimensiones)
}

func TestDbaByAsignaturaAndGrado(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&models.Asignatura{Nombre: "Matemáticas", Estado: true}).Error)
	require.NoError(t, f.db.Create(&models.GradoPiar{Nombre: "Tercero", Estado: true}).Error)
	require.NoError(t, f.db.Create(&[]models.DerechoBasicoAprendizaje{
		{NumeroDba: 2, Titulo: "Resolución de problemas", IDAsignatura: 1, IDGrado: 1, Estado: true},
		{NumeroDba: 1, Titulo: "Conteo", IDAsignatura: 1, IDGrado: 1, Estado: true},
	}).Error)
	require.NoError(t, f.db.Create(&[]models.EvidenciaAprendizaje{
		{IDDba: 2, NumeroEvidencia: 1, Descripcion: "Cuenta hasta cien", Estado: true},
		{IDDba: 2, NumeroEvidencia: 2, Descripcion: "Agrupa de a diez", Estado: true},
	}).Error)

	w := f.get("/api/derechos-basicos-aprendizaje/asignatura/1/grado/1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Asignatura string `json:"asignatura"`
		Grado      string `json:"grado"`
		Dba        []struct {
			NumeroDba       int   `json:"numero_dba"`
			TotalEvidencias int64 `json:"total_evidencias"`
		} `json:"dba"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	assert.Equal(t, "Matemáticas", data.Asignatura)
	assert.Equal(t, "Tercero", data.Grado)
	require.Len(t, data.Dba, 2)
	assert.Equal(t, 1, data.Dba[0].NumeroDba)
	assert.EqualValues(t, 2, data.Dba[0].TotalEvidencias)
	assert.EqualValues(t, 0, data.Dba[1].TotalEvidencias)

	notFound := f.get("/api/derechos-basicos-aprendizaje/asignatura/9/grado/9")
	assert.Equal(t, http.StatusNotFound, notFound.Code)

	badID := f.get("/api/derechos-basicos-aprendizaje/asignatura/abc/grado/1")
	assert.Equal(t, http.StatusBadRequest, badID.Code)
}

func TestDbaWithEvidencias(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Create(&models.Asignatura{Nombre: "Lenguaje", Estado: true}).Error)
	require.NoError(t, f.db.Create(&models.GradoPiar{Nombre: "Primero", Estado: true}).Error)
	require.NoError(t, f.db.Create(&models.DerechoBasicoAprendizaje{
		NumeroDba: 1, Titulo: "Comprensión lectora", IDAsignatura: 1, IDGrado: 1, Estado: true,
	}).Error)
	require.NoError(t, f.db.Create(&models.EvidenciaAprendizaje{
		IDDba: 1, NumeroEvidencia: 1, Descripcion: "Identifica personajes", Estado: true,
	}).Error)

	w := f.get("/api/derechos-basicos-aprendizaje/1/evidencias")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Comprensión lectora")
	assert.Contains(t, w.Body.String(), "Identifica personajes")

	missing := f.get("/api/derechos-basicos-aprendizaje/42/evidencias")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func seedDbaCorpus(t *testing.T, f *catalogFixture) {
	t.Helper()
	require.NoError(t, f.db.Create(&[]models.Asignatura{
		{Nombre: "Lenguaje", Estado: true},
		{Nombre: "Matemáticas", Estado: true},
	}).Error)
	require.NoError(t, f.db.Create(&[]models.GradoPiar{
		{Nombre: "Primero", NivelEducativo: "basica", OrdenGrado: 1, Estado: true},
		{Nombre: "Transición", NivelEducativo: "preescolar", OrdenGrado: 0, Estado: true},
	}).Error)
	require.NoError(t, f.db.Create(&[]models.DerechoBasicoAprendizaje{
		{NumeroDba: 1, Titulo: "Comprension lectora", Descripcion: "Lee textos cortos", IDAsignatura: 1, IDGrado: 1, Estado: true},
		{NumeroDba: 1, Titulo: "Conteo basico", Descripcion: "Cuenta colecciones", IDAsignatura: 2, IDGrado: 1, Estado: true},
		{NumeroDba: 2, Titulo: "Agrupacion", Descripcion: "Agrupa objetos", IDAsignatura: 2, IDGrado: 1, Estado: true},
		{NumeroDba: 1, Titulo: "Exploracion", Descripcion: "Explora el entorno", IDAsignatura: 1, IDGrado: 2, Estado: true},
	}).Error)
	require.NoError(t, f.db.Create(&[]models.EvidenciaAprendizaje{
		{IDDba: 1, NumeroEvidencia: 1, Descripcion: "Identifica personajes principales", Estado: true},
		{IDDba: 2, NumeroEvidencia: 1, Descripcion: "Cuenta hasta veinte", Estado: true},
	}).Error)
}

func TestGetAsignaturasGradosConDba(t *testing.T) {
	f := newCatalogFixture(t)
	seedDbaCorpus(t, f)

	w := f.get("/api/derechos-basicos-aprendizaje/asignaturas-grados")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []asignaturaGradoRow
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rows))
	require.Len(t, rows, 3)

	// Ordered by subject name, then grade order within it.
	assert.Equal(t, "Lenguaje", rows[0].Asignatura)
	assert.Equal(t, "Transición", rows[0].Grado)
	assert.Equal(t, "Lenguaje", rows[1].Asignatura)
	assert.Equal(t, "Primero", rows[1].Grado)
	assert.Equal(t, "Matemáticas", rows[2].Asignatura)
	assert.EqualValues(t, 2, rows[2].TotalDba)
}

func TestBuscarDba(t *testing.T) {
	f := newCatalogFixture(t)
	seedDbaCorpus(t, f)

	short := f.get("/api/derechos-basicos-aprendizaje/buscar?q=ab")
	assert.Equal(t, http.StatusBadRequest, short.Code)

	byTitle := f.get("/api/derechos-basicos-aprendizaje/buscar?q=conteo")
	require.Equal(t, http.StatusOK, byTitle.Code, byTitle.Body.String())
	var rows []busquedaDbaRow
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, byTitle).Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Conteo basico", rows[0].Titulo)
	assert.Equal(t, "Matemáticas", rows[0].Asignatura)

	// Evidence text is searched too.
	byEvidence := f.get("/api/derechos-basicos-aprendizaje/buscar?q=veinte")
	require.Equal(t, http.StatusOK, byEvidence.Code)
	rows = nil
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, byEvidence).Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Conteo basico", rows[0].Titulo)

	none := f.get("/api/derechos-basicos-aprendizaje/buscar?q=inexistente")
	require.Equal(t, http.StatusOK, none.Code)
	assert.Contains(t, none.Body.String(), "Se encontraron 0 DBA")
}

func TestGetEstadisticasDba(t *testing.T) {
	f := newCatalogFixture(t)
	seedDbaCorpus(t, f)

	w := f.get("/api/derechos-basicos-aprendizaje/estadisticas")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rows []estadisticaNivelRow
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &rows))
	require.Len(t, rows, 2)

	// preescolar sorts before basica regardless of alphabetical order.
	assert.Equal(t, "preescolar", rows[0].NivelEducativo)
	assert.EqualValues(t, 1, rows[0].TotalDba)
	assert.EqualValues(t, 0, rows[0].TotalEvidencias)

	assert.Equal(t, "basica", rows[1].NivelEducativo)
	assert.EqualValues(t, 2, rows[1].TotalAsignaturas)
	assert.EqualValues(t, 3, rows[1].TotalDba)
	assert.EqualValues(t, 2, rows[1].TotalEvidencias)
}
