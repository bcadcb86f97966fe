package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/database"
	"github.com/kando-edu/piar-api/models"
	"gorm.io/gorm"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogController serves the reference-data tables that feed the PIAR
// questionnaire. List responses are cached in Redis; the cache degrades to
// plain database reads when unavailable.
type CatalogController struct {
	db    *gorm.DB
	cache *database.RedisClient
}

func NewCatalogController(db *gorm.DB, cache *database.RedisClient) *CatalogController {
	return &CatalogController{
		db:    db,
		cache: cache,
	}
}

func (cc *CatalogController) ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func (cc *CatalogController) fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func (cc *CatalogController) cachedData(c *gin.Context, key string) (json.RawMessage, bool) {
	if cc.cache == nil {
		return nil, false
	}
	val, ok := cc.cache.CacheGet(c.Request.Context(), key)
	if !ok {
		return nil, false
	}
	return json.RawMessage(val), true
}

func (cc *CatalogController) storeCache(c *gin.Context, key string, data interface{}) {
	if cc.cache == nil {
		return
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := cc.cache.CacheSet(c.Request.Context(), key, string(buf), catalogCacheTTL); err != nil {
		log.Printf("catalog cache: storing %s: %v", key, err)
	}
}

func (cc *CatalogController) invalidateCache(c *gin.Context, pattern string) {
	if cc.cache == nil {
		return
	}
	if err := cc.cache.CacheInvalidate(c.Request.Context(), pattern); err != nil {
		log.Printf("catalog cache: invalidating %s: %v", pattern, err)
	}
}

// listado serves the standard "all active rows, ordered" catalog query.
func listado[T any](cc *CatalogController, c *gin.Context, key, order, okMsg, errMsg string) {
	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, okMsg, data)
		return
	}

	var items []T
	if err := cc.db.Where("estado = ?", true).Order(order).Find(&items).Error; err != nil {
		log.Printf("catalog: %s: %v", key, err)
		cc.fail(c, http.StatusInternalServerError, errMsg)
		return
	}

	cc.storeCache(c, key, items)
	cc.ok(c, okMsg, items)
}

// porID serves the standard "one active row by primary key" catalog query.
func porID[T any](cc *CatalogController, c *gin.Context, idColumn, okMsg, notFoundMsg, errMsg string) {
	id := c.Param("id")

	var item T
	err := cc.db.Where(idColumn+" = ? AND estado = ?", id, true).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cc.fail(c, http.StatusNotFound, notFoundMsg)
			return
		}
		log.Printf("catalog: %s=%s: %v", idColumn, id, err)
		cc.fail(c, http.StatusInternalServerError, errMsg)
		return
	}

	cc.ok(c, okMsg, item)
}

// ---- Géneros ----

func (cc *CatalogController) GetGeneros(c *gin.Context) {
	listado[models.Genero](cc, c, "catalog:generos", "id_genero ASC",
		"Géneros obtenidos exitosamente", "Error interno del servidor al obtener géneros")
}

// ---- Departamentos y municipios ----

func (cc *CatalogController) GetDepartamentos(c *gin.Context) {
	listado[models.Departamento](cc, c, "catalog:departamentos", "descripcion ASC",
		"Departamentos obtenidos exitosamente", "Error interno del servidor al obtener departamentos")
}

func (cc *CatalogController) GetMunicipiosByDepartamento(c *gin.Context) {
	idDepartamento := c.Param("id")
	key := "catalog:municipios:" + idDepartamento

	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, "Municipios obtenidos exitosamente", data)
		return
	}

	var municipios []models.Municipio
	if err := cc.db.Where("id_departamento = ? AND estado = ?", idDepartamento, true).
		Order("descripcion ASC").Find(&municipios).Error; err != nil {
		log.Printf("catalog: municipios for departamento %s: %v", idDepartamento, err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener municipios")
		return
	}

	cc.storeCache(c, key, municipios)
	cc.ok(c, "Municipios obtenidos exitosamente", municipios)
}

// ---- EPS ----

// GetEps lists health providers with "Otro" forced to the end of the list.
func (cc *CatalogController) GetEps(c *gin.Context) {
	const key = "catalog:eps"
	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, "EPS obtenidas exitosamente", data)
		return
	}

	var items []models.Eps
	err := cc.db.Where("estado = ?", true).
		Order("CASE WHEN LOWER(nombre) = 'otro' THEN 1 ELSE 0 END ASC, nombre ASC").
		Find(&items).Error
	if err != nil {
		log.Printf("catalog: eps: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener EPS")
		return
	}

	cc.storeCache(c, key, items)
	cc.ok(c, "EPS obtenidas exitosamente", items)
}

func (cc *CatalogController) GetEpsById(c *gin.Context) {
	porID[models.Eps](cc, c, "id_eps",
		"EPS obtenida exitosamente", "EPS no encontrada", "Error interno del servidor al obtener EPS")
}

// ---- Frecuencias y horarios ----

func (cc *CatalogController) GetFrecuenciasRehabilitacion(c *gin.Context) {
	listado[models.FrecuenciaRehabilitacion](cc, c, "catalog:frecuencias-rehabilitacion", "id_frecuencia ASC",
		"Frecuencias de rehabilitación obtenidas exitosamente", "Error interno del servidor al obtener frecuencias")
}

func (cc *CatalogController) GetFrecuenciaRehabilitacionById(c *gin.Context) {
	porID[models.FrecuenciaRehabilitacion](cc, c, "id_frecuencia",
		"Frecuencia obtenida exitosamente", "Frecuencia no encontrada", "Error interno del servidor al obtener la frecuencia")
}

func (cc *CatalogController) GetFrecuenciasMedicamentos(c *gin.Context) {
	listado[models.FrecuenciaMedicamento](cc, c, "catalog:frecuencias-medicamentos", "id_frecuencia_medicamento ASC",
		"Frecuencias de medicamentos obtenidas exitosamente", "Error interno del servidor al obtener frecuencias")
}

func (cc *CatalogController) GetFrecuenciaMedicamentoById(c *gin.Context) {
	porID[models.FrecuenciaMedicamento](cc, c, "id_frecuencia_medicamento",
		"Frecuencia obtenida exitosamente", "Frecuencia no encontrada", "Error interno del servidor al obtener la frecuencia")
}

func (cc *CatalogController) GetHorariosMedicamentos(c *gin.Context) {
	listado[models.HorarioMedicamento](cc, c, "catalog:horarios-medicamentos", "id_horario_medicamento ASC",
		"Horarios de medicamentos obtenidos exitosamente", "Error interno del servidor al obtener horarios")
}

func (cc *CatalogController) GetHorarioMedicamentoById(c *gin.Context) {
	porID[models.HorarioMedicamento](cc, c, "id_horario_medicamento",
		"Horario obtenido exitosamente", "Horario no encontrado", "Error interno del servidor al obtener el horario")
}

// ---- Categorías SIMAT y barreras ----

func (cc *CatalogController) GetCategoriasSimat(c *gin.Context) {
	listado[models.CategoriaSimat](cc, c, "catalog:categorias-simat", "id_categoria_simat ASC",
		"Categorías SIMAT obtenidas exitosamente", "Error interno del servidor al obtener categorías")
}

func (cc *CatalogController) GetCategoriaSimatById(c *gin.Context) {
	porID[models.CategoriaSimat](cc, c, "id_categoria_simat",
		"Categoría obtenida exitosamente", "Categoría no encontrada", "Error interno del servidor al obtener la categoría")
}

type barreraConCategoria struct {
	IDBarrera        uint   `json:"id_barrera"`
	IDCategoriaSimat uint   `json:"id_categoria_simat"`
	Nombre           string `json:"nombre"`
	Descripcion      string `json:"descripcion"`
	Orden            int    `json:"orden"`
	Categoria        string `json:"categoria"`
}

const barrerasSelect = "b.id_barrera AS id_barrera, b.id_categoria_simat AS id_categoria_simat, " +
	"b.nombre AS nombre, b.descripcion AS descripcion, b.orden AS orden, cs.nombre AS categoria"

func (cc *CatalogController) GetAllBarreras(c *gin.Context) {
	const key = "catalog:barreras"
	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, "Barreras obtenidas exitosamente", data)
		return
	}

	var rows []barreraConCategoria
	err := cc.db.Table("barreras b").
		Select(barrerasSelect).
		Joins("INNER JOIN categorias_simat cs ON b.id_categoria_simat = cs.id_categoria_simat").
		Where("b.estado = ?", true).
		Order("b.id_categoria_simat ASC, b.orden ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("catalog: barreras: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener barreras")
		return
	}

	cc.storeCache(c, key, rows)
	cc.ok(c, "Barreras obtenidas exitosamente", rows)
}

func (cc *CatalogController) GetBarrerasByCategoria(c *gin.Context) {
	categoriaID := c.Param("id")

	var rows []barreraConCategoria
	err := cc.db.Table("barreras b").
		Select(barrerasSelect).
		Joins("INNER JOIN categorias_simat cs ON b.id_categoria_simat = cs.id_categoria_simat").
		Where("b.id_categoria_simat = ? AND b.estado = ?", categoriaID, true).
		Order("b.orden ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("catalog: barreras categoria %s: %v", categoriaID, err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener barreras")
		return
	}

	if len(rows) == 0 {
		cc.fail(c, http.StatusNotFound, "No se encontraron barreras para la categoría especificada")
		return
	}

	cc.ok(c, "Barreras obtenidas exitosamente", rows)
}

func (cc *CatalogController) GetBarreraById(c *gin.Context) {
	id := c.Param("id")

	var row barreraConCategoria
	err := cc.db.Table("barreras b").
		Select(barrerasSelect).
		Joins("INNER JOIN categorias_simat cs ON b.id_categoria_simat = cs.id_categoria_simat").
		Where("b.id_barrera = ? AND b.estado = ?", id, true).
		Scan(&row).Error
	if err != nil {
		log.Printf("catalog: barrera %s: %v", id, err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener la barrera")
		return
	}
	if row.IDBarrera == 0 {
		cc.fail(c, http.StatusNotFound, "Barrera no encontrada")
		return
	}

	cc.ok(c, "Barrera obtenida exitosamente", row)
}

// ---- Grupos étnicos ----

func (cc *CatalogController) GetGruposEtnicos(c *gin.Context) {
	listado[models.GrupoEtnico](cc, c, "catalog:grupos-etnicos", "id_grupo_etnico ASC",
		"Grupos étnicos obtenidos exitosamente", "Error interno del servidor al obtener grupos étnicos")
}

func (cc *CatalogController) GetGrupoEtnicoById(c *gin.Context) {
	porID[models.GrupoEtnico](cc, c, "id_grupo_etnico",
		"Grupo étnico obtenido exitosamente", "Grupo étnico no encontrado", "Error interno del servidor al obtener el grupo étnico")
}

// ---- Colegios ----

func (cc *CatalogController) GetColegios(c *gin.Context) {
	listado[models.Colegio](cc, c, "catalog:colegios", "nombre ASC",
		"Colegios obtenidos exitosamente", "Error interno del servidor al obtener colegios")
}

func (cc *CatalogController) GetColegioById(c *gin.Context) {
	porID[models.Colegio](cc, c, "id",
		"Colegio obtenido exitosamente", "Colegio no encontrado", "Error interno del servidor al obtener colegio")
}

// ---- Niveles educativos e ingresos ----

func (cc *CatalogController) GetNivelesEducativos(c *gin.Context) {
	listado[models.NivelEducativo](cc, c, "catalog:niveles-educativos", "id_nivel_educativo ASC",
		"Niveles educativos obtenidos exitosamente", "Error interno del servidor al obtener niveles educativos")
}

func (cc *CatalogController) GetNivelEducativoById(c *gin.Context) {
	porID[models.NivelEducativo](cc, c, "id_nivel_educativo",
		"Nivel educativo obtenido exitosamente", "Nivel educativo no encontrado", "Error interno del servidor al obtener el nivel educativo")
}

func (cc *CatalogController) GetIngresosPromediosMensuales(c *gin.Context) {
	listado[models.IngresoPromedioMensual](cc, c, "catalog:ingresos-promedios-mensuales", "id_ingreso ASC",
		"Ingresos promedios obtenidos exitosamente", "Error interno del servidor al obtener ingresos promedios")
}

func (cc *CatalogController) GetIngresoPromedioMensualById(c *gin.Context) {
	porID[models.IngresoPromedioMensual](cc, c, "id_ingreso",
		"Ingreso promedio obtenido exitosamente", "Ingreso promedio no encontrado", "Error interno del servidor al obtener el ingreso promedio")
}

// ---- Relaciones con el estudiante ----

func (cc *CatalogController) GetRelacionesEstudiante(c *gin.Context) {
	listado[models.RelacionEstudiante](cc, c, "catalog:relaciones-estudiante", "id_relacion ASC",
		"Relaciones obtenidas exitosamente", "Error interno del servidor al obtener relaciones")
}

func (cc *CatalogController) GetRelacionEstudianteById(c *gin.Context) {
	porID[models.RelacionEstudiante](cc, c, "id_relacion",
		"Relación obtenida exitosamente", "Relación no encontrada", "Error interno del servidor al obtener la relación")
}

// GetNombresRelaciones returns the id/name pairs the frontend selects need.
func (cc *CatalogController) GetNombresRelaciones(c *gin.Context) {
	const key = "catalog:relaciones-estudiante:nombres"
	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, "Nombres de relaciones obtenidos exitosamente", data)
		return
	}

	type nombreRelacion struct {
		ID     uint   `gorm:"column:id_relacion" json:"id"`
		Nombre string `json:"nombre"`
	}
	var rows []nombreRelacion
	err := cc.db.Model(&models.RelacionEstudiante{}).
		Select("id_relacion, nombre").
		Where("estado = ?", true).
		Order("id_relacion ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("catalog: nombres relaciones: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener nombres de relaciones")
		return
	}

	cc.storeCache(c, key, rows)
	cc.ok(c, "Nombres de relaciones obtenidos exitosamente", rows)
}

// ---- Asignaturas ----

func (cc *CatalogController) GetAsignaturas(c *gin.Context) {
	listado[models.Asignatura](cc, c, "catalog:asignaturas", "id_asignatura ASC",
		"Asignaturas obtenidas exitosamente", "Error interno del servidor al obtener asignaturas")
}

func (cc *CatalogController) GetAsignaturasEducacionInicial(c *gin.Context) {
	listado[models.AsignaturaEducacionInicial](cc, c, "catalog:asignaturas-educacion-inicial", "orden_dimension ASC",
		"Asignaturas de educación inicial obtenidas exitosamente", "Error interno del servidor al obtener asignaturas")
}

func (cc *CatalogController) GetAsignaturaEducacionInicialById(c *gin.Context) {
	porID[models.AsignaturaEducacionInicial](cc, c, "id_asignatura_inicial",
		"Asignatura obtenida exitosamente", "Asignatura no encontrada", "Error interno del servidor al obtener la asignatura")
}

type resumenDimension struct {
	DimensionTipo    string `json:"dimension_tipo"`
	TotalDimensiones int    `json:"total_dimensiones"`
	Dimensiones      string `json:"dimensiones"`
}

// GetResumenDimensiones groups the early-education dimensions by type with
// their names joined in curriculum order.
func (cc *CatalogController) GetResumenDimensiones(c *gin.Context) {
	var items []models.AsignaturaEducacionInicial
	err := cc.db.Where("estado = ?", true).
		Order("dimension_tipo ASC, orden_dimension ASC").
		Find(&items).Error
	if err != nil {
		log.Printf("catalog: resumen dimensiones: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	var resumen []resumenDimension
	for _, item := range items {
		if len(resumen) == 0 || resumen[len(resumen)-1].DimensionTipo != item.DimensionTipo {
			resumen = append(resumen, resumenDimension{DimensionTipo: item.DimensionTipo})
		}
		grupo := &resumen[len(resumen)-1]
		grupo.TotalDimensiones++
		if grupo.Dimensiones != "" {
			grupo.Dimensiones += ", "
		}
		grupo.Dimensiones += item.Nombre
	}

	cc.ok(c, "Resumen de dimensiones obtenido exitosamente", resumen)
}

// ---- Tipos de documento (full CRUD) ----

type tipoDocumentoRequest struct {
	Codigo        string `json:"codigo" binding:"required"`
	Descripcion   string `json:"descripcion" binding:"required"`
	Activo        *bool  `json:"activo"`
	Orden         *int   `json:"orden"`
	Observaciones string `json:"observaciones"`
}

func (cc *CatalogController) GetTiposDocumento(c *gin.Context) {
	const key = "catalog:tipos-documento"
	if data, hit := cc.cachedData(c, key); hit {
		cc.ok(c, "Tipos de documento obtenidos exitosamente", data)
		return
	}

	var items []models.TipoDocumento
	if err := cc.db.Order("orden ASC, codigo ASC").Find(&items).Error; err != nil {
		log.Printf("catalog: tipos-documento: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener tipos de documento")
		return
	}

	cc.storeCache(c, key, items)
	cc.ok(c, "Tipos de documento obtenidos exitosamente", items)
}

func (cc *CatalogController) GetTipoDocumentoById(c *gin.Context) {
	id := c.Param("id")

	var item models.TipoDocumento
	if err := cc.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cc.fail(c, http.StatusNotFound, "Tipo de documento no encontrado")
			return
		}
		log.Printf("catalog: tipo-documento %s: %v", id, err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al obtener el tipo de documento")
		return
	}

	cc.ok(c, "Tipo de documento obtenido exitosamente", item)
}

func (cc *CatalogController) CreateTipoDocumento(c *gin.Context) {
	var req tipoDocumentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.fail(c, http.StatusBadRequest, "Código y descripción son requeridos")
		return
	}

	var count int64
	if err := cc.db.Model(&models.TipoDocumento{}).
		Where("UPPER(codigo) = UPPER(?)", req.Codigo).Count(&count).Error; err != nil {
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al crear el tipo de documento")
		return
	}
	if count > 0 {
		cc.fail(c, http.StatusConflict, "Ya existe un tipo de documento con ese código")
		return
	}

	item := models.TipoDocumento{
		Codigo:        req.Codigo,
		Descripcion:   req.Descripcion,
		Activo:        true,
		Orden:         1,
		Observaciones: req.Observaciones,
	}
	if req.Activo != nil {
		item.Activo = *req.Activo
	}
	if req.Orden != nil {
		item.Orden = *req.Orden
	}

	if err := cc.db.Create(&item).Error; err != nil {
		log.Printf("catalog: creating tipo-documento: %v", err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al crear el tipo de documento")
		return
	}

	cc.invalidateCache(c, "catalog:tipos-documento*")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Tipo de documento creado exitosamente",
		"data":    item,
	})
}

func (cc *CatalogController) UpdateTipoDocumento(c *gin.Context) {
	id := c.Param("id")

	var req tipoDocumentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.fail(c, http.StatusBadRequest, "Código y descripción son requeridos")
		return
	}

	var item models.TipoDocumento
	if err := cc.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cc.fail(c, http.StatusNotFound, "Tipo de documento no encontrado")
			return
		}
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al actualizar el tipo de documento")
		return
	}

	var count int64
	if err := cc.db.Model(&models.TipoDocumento{}).
		Where("UPPER(codigo) = UPPER(?) AND id != ?", req.Codigo, item.ID).Count(&count).Error; err != nil {
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al actualizar el tipo de documento")
		return
	}
	if count > 0 {
		cc.fail(c, http.StatusConflict, "Ya existe otro tipo de documento con ese código")
		return
	}

	updates := map[string]interface{}{
		"codigo":        req.Codigo,
		"descripcion":   req.Descripcion,
		"observaciones": req.Observaciones,
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}
	if req.Orden != nil {
		updates["orden"] = *req.Orden
	}

	if err := cc.db.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("catalog: updating tipo-documento %s: %v", id, err)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al actualizar el tipo de documento")
		return
	}

	cc.invalidateCache(c, "catalog:tipos-documento*")
	cc.ok(c, "Tipo de documento actualizado exitosamente", item)
}

// DeleteTipoDocumento deactivates a document type; rows referenced by
// existing records must survive, so nothing is physically removed.
func (cc *CatalogController) DeleteTipoDocumento(c *gin.Context) {
	id := c.Param("id")

	result := cc.db.Model(&models.TipoDocumento{}).Where("id = ?", id).Update("activo", false)
	if result.Error != nil {
		log.Printf("catalog: deleting tipo-documento %s: %v", id, result.Error)
		cc.fail(c, http.StatusInternalServerError, "Error interno del servidor al eliminar el tipo de documento")
		return
	}
	if result.RowsAffected == 0 {
		cc.fail(c, http.StatusNotFound, "Tipo de documento no encontrado")
		return
	}

	cc.invalidateCache(c, "catalog:tipos-documento*")
	cc.ok(c, "Tipo de documento eliminado exitosamente", nil)
}

// parseID validates numeric path parameters for the DBA endpoints.
func parseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
