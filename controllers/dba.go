package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/models"
	"gorm.io/gorm"
)

// DbaController serves the DBA curriculum standards (Derechos Básicos de
// Aprendizaje) and their learning evidences.
type DbaController struct {
	db *gorm.DB
}

func NewDbaController(db *gorm.DB) *DbaController {
	return &DbaController{
		db: db,
	}
}

type dbaRow struct {
	IDDba           uint   `json:"id_dba"`
	NumeroDba       int    `json:"numero_dba"`
	Titulo          string `json:"titulo"`
	Descripcion     string `json:"descripcion"`
	Asignatura      string `json:"asignatura"`
	Grado           string `json:"grado"`
	TotalEvidencias int64  `json:"total_evidencias"`
}

// GetDbaByAsignaturaAndGrado lists the DBA for one subject and grade with
// per-DBA evidence counts.
func (dc *DbaController) GetDbaByAsignaturaAndGrado(c *gin.Context) {
	idAsignatura, okA := parseID(c.Param("idAsignatura"))
	idGrado, okG := parseID(c.Param("idGrado"))
	if !okA || !okG {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID de asignatura y grado son requeridos y deben ser números válidos",
		})
		return
	}

	var rows []dbaRow
	err := dc.db.Table("derechos_basicos_aprendizaje dba").
		Select("dba.id_dba AS id_dba, dba.numero_dba AS numero_dba, dba.titulo AS titulo, "+
			"dba.descripcion AS descripcion, a.nombre AS asignatura, g.nombre AS grado, "+
			"COUNT(ev.id_evidencia) AS total_evidencias").
		Joins("INNER JOIN asignaturas a ON dba.id_asignatura = a.id_asignatura").
		Joins("INNER JOIN grados_piar g ON dba.id_grado = g.id_grado").
		Joins("LEFT JOIN evidencias_aprendizaje ev ON dba.id_dba = ev.id_dba AND ev.estado = ?", true).
		Where("dba.id_asignatura = ? AND dba.id_grado = ? AND dba.estado = ? AND a.estado = ? AND g.estado = ?",
			idAsignatura, idGrado, true, true, true).
		Group("dba.id_dba, dba.numero_dba, dba.titulo, dba.descripcion, a.nombre, g.nombre").
		Order("dba.numero_dba ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("dba: asignatura=%d grado=%d: %v", idAsignatura, idGrado, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor al obtener los DBA",
		})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "No se encontraron DBA para la asignatura y grado especificados",
		})
		return
	}

	dba := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		dba = append(dba, gin.H{
			"id_dba":           row.IDDba,
			"numero_dba":       row.NumeroDba,
			"titulo":           row.Titulo,
			"descripcion":      row.Descripcion,
			"total_evidencias": row.TotalEvidencias,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "DBA obtenidos exitosamente",
		"data": gin.H{
			"asignatura": rows[0].Asignatura,
			"grado":      rows[0].Grado,
			"dba":        dba,
		},
	})
}

// GetDbaWithEvidencias returns a single DBA together with its evidences.
func (dc *DbaController) GetDbaWithEvidencias(c *gin.Context) {
	idDba, ok := parseID(c.Param("idDba"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "ID de DBA inválido",
		})
		return
	}

	var head struct {
		IDDba       uint   `json:"id_dba"`
		NumeroDba   int    `json:"numero_dba"`
		Titulo      string `json:"titulo"`
		Descripcion string `json:"descripcion"`
		Asignatura  string `json:"asignatura"`
		Grado       string `json:"grado"`
	}
	err := dc.db.Table("derechos_basicos_aprendizaje dba").
		Select("dba.id_dba AS id_dba, dba.numero_dba AS numero_dba, dba.titulo AS titulo, "+
			"dba.descripcion AS descripcion, a.nombre AS asignatura, g.nombre AS grado").
		Joins("INNER JOIN asignaturas a ON dba.id_asignatura = a.id_asignatura").
		Joins("INNER JOIN grados_piar g ON dba.id_grado = g.id_grado").
		Where("dba.id_dba = ? AND dba.estado = ?", idDba, true).
		Scan(&head).Error
	if err != nil {
		log.Printf("dba: %d: %v", idDba, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor al obtener el DBA",
		})
		return
	}
	if head.IDDba == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "DBA no encontrado",
		})
		return
	}

	var evidencias []models.EvidenciaAprendizaje
	if err := dc.db.Where("id_dba = ? AND estado = ?", idDba, true).
		Order("numero_evidencia ASC").Find(&evidencias).Error; err != nil {
		log.Printf("dba: evidencias for %d: %v", idDba, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor al obtener las evidencias",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "DBA obtenido exitosamente",
		"data": gin.H{
			"dba":        head,
			"evidencias": evidencias,
		},
	})
}

type asignaturaGradoRow struct {
	IDAsignatura   uint   `json:"id_asignatura"`
	Asignatura     string `json:"asignatura"`
	IDGrado        uint   `json:"id_grado"`
	Grado          string `json:"grado"`
	NivelEducativo string `json:"nivel_educativo"`
	OrdenGrado     int    `json:"orden_grado"`
	TotalDba       int64  `json:"total_dba"`
}

// GetAsignaturasGradosConDba lists every subject/grade pair that has DBA
// available, with the count per pair.
func (dc *DbaController) GetAsignaturasGradosConDba(c *gin.Context) {
	var rows []asignaturaGradoRow
	err := dc.db.Table("derechos_basicos_aprendizaje dba").
		Select("a.id_asignatura AS id_asignatura, a.nombre AS asignatura, g.id_grado AS id_grado, " +
			"g.nombre AS grado, g.nivel_educativo AS nivel_educativo, g.orden_grado AS orden_grado, " +
			"COUNT(dba.id_dba) AS total_dba").
		Joins("INNER JOIN asignaturas a ON dba.id_asignatura = a.id_asignatura").
		Joins("INNER JOIN grados_piar g ON dba.id_grado = g.id_grado").
		Where("dba.estado = ? AND a.estado = ? AND g.estado = ?", true, true, true).
		Group("a.id_asignatura, a.nombre, g.id_grado, g.nombre, g.nivel_educativo, g.orden_grado").
		Order("a.nombre ASC, g.orden_grado ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("dba: asignaturas-grados: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Asignaturas y grados con DBA obtenidos exitosamente",
		"data":    rows,
	})
}

type busquedaDbaRow struct {
	IDDba          uint   `json:"id_dba"`
	NumeroDba      int    `json:"numero_dba"`
	Titulo         string `json:"titulo"`
	Descripcion    string `json:"descripcion"`
	Asignatura     string `json:"asignatura"`
	Grado          string `json:"grado"`
	NivelEducativo string `json:"nivel_educativo"`
}

// BuscarDba searches titles, descriptions and evidence texts for a keyword.
func (dc *DbaController) BuscarDba(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "El término de búsqueda debe tener al menos 3 caracteres",
		})
		return
	}

	term := "%" + strings.ToLower(q) + "%"

	var rows []busquedaDbaRow
	err := dc.db.Table("derechos_basicos_aprendizaje dba").
		Select("dba.id_dba AS id_dba, dba.numero_dba AS numero_dba, dba.titulo AS titulo, "+
			"dba.descripcion AS descripcion, a.nombre AS asignatura, g.nombre AS grado, "+
			"g.nivel_educativo AS nivel_educativo").
		Joins("INNER JOIN asignaturas a ON dba.id_asignatura = a.id_asignatura").
		Joins("INNER JOIN grados_piar g ON dba.id_grado = g.id_grado").
		Where("(LOWER(dba.titulo) LIKE ? OR LOWER(dba.descripcion) LIKE ? OR EXISTS ("+
			"SELECT 1 FROM evidencias_aprendizaje ev WHERE ev.id_dba = dba.id_dba "+
			"AND LOWER(ev.descripcion) LIKE ? AND ev.estado = ?))", term, term, term, true).
		Where("dba.estado = ? AND a.estado = ? AND g.estado = ?", true, true, true).
		Order("a.nombre ASC, g.orden_grado ASC, dba.numero_dba ASC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		log.Printf("dba: buscar %q: %v", q, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Se encontraron %d DBA que coinciden con la búsqueda", len(rows)),
		"data":    rows,
	})
}

type estadisticaNivelRow struct {
	NivelEducativo   string `json:"nivel_educativo"`
	TotalAsignaturas int64  `json:"total_asignaturas"`
	TotalGrados      int64  `json:"total_grados"`
	TotalDba         int64  `json:"total_dba"`
	TotalEvidencias  int64  `json:"total_evidencias"`
}

// GetEstadisticasDba aggregates DBA coverage per educational level. The DBA
// count is DISTINCT because the evidence join multiplies rows.
func (dc *DbaController) GetEstadisticasDba(c *gin.Context) {
	var rows []estadisticaNivelRow
	err := dc.db.Table("derechos_basicos_aprendizaje dba").
		Select("g.nivel_educativo AS nivel_educativo, "+
			"COUNT(DISTINCT a.id_asignatura) AS total_asignaturas, "+
			"COUNT(DISTINCT g.id_grado) AS total_grados, "+
			"COUNT(DISTINCT dba.id_dba) AS total_dba, "+
			"COUNT(ev.id_evidencia) AS total_evidencias").
		Joins("INNER JOIN asignaturas a ON dba.id_asignatura = a.id_asignatura").
		Joins("INNER JOIN grados_piar g ON dba.id_grado = g.id_grado").
		Joins("LEFT JOIN evidencias_aprendizaje ev ON dba.id_dba = ev.id_dba AND ev.estado = ?", true).
		Where("dba.estado = ? AND a.estado = ? AND g.estado = ?", true, true, true).
		Group("g.nivel_educativo").
		Order("CASE g.nivel_educativo WHEN 'preescolar' THEN 1 WHEN 'basica' THEN 2 WHEN 'media' THEN 3 ELSE 4 END").
		Scan(&rows).Error
	if err != nil {
		log.Printf("dba: estadisticas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error interno del servidor",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Estadísticas de DBA obtenidas exitosamente",
		"data":    rows,
	})
}
