package models

import (
	"time"
)

// Reference-data tables backing the PIAR questionnaire. Schema management
// lives outside this service; these mappings only read (and for document
// types, write) rows the migrations own.

type TipoDocumento struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Codigo        string    `gorm:"not null" json:"codigo"`
	Descripcion   string    `gorm:"not null" json:"descripcion"`
	Activo        bool      `gorm:"default:true" json:"activo"`
	Orden         int       `gorm:"default:1" json:"orden"`
	Observaciones string    `json:"observaciones"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (TipoDocumento) TableName() string { return "tipos_documento" }

type Genero struct {
	ID          uint   `gorm:"primarykey;column:id_genero" json:"id_genero"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (Genero) TableName() string { return "generos" }

type Departamento struct {
	ID          uint   `gorm:"primarykey;column:id_departamento" json:"id_departamento"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (Departamento) TableName() string { return "departamentos" }

type Municipio struct {
	ID             uint   `gorm:"primarykey;column:id_municipio" json:"id_municipio"`
	IDDepartamento uint   `gorm:"column:id_departamento" json:"id_departamento"`
	Descripcion    string `json:"descripcion"`
	Estado         bool   `gorm:"default:true" json:"-"`
}

func (Municipio) TableName() string { return "municipios" }

type Eps struct {
	ID          uint   `gorm:"primarykey;column:id_eps" json:"id_eps"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (Eps) TableName() string { return "eps" }

type FrecuenciaRehabilitacion struct {
	ID          uint      `gorm:"primarykey;column:id_frecuencia" json:"id_frecuencia"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FrecuenciaRehabilitacion) TableName() string { return "frecuencias_rehabilitacion" }

type FrecuenciaMedicamento struct {
	ID          uint      `gorm:"primarykey;column:id_frecuencia_medicamento" json:"id_frecuencia_medicamento"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FrecuenciaMedicamento) TableName() string { return "frecuencias_medicamentos" }

type HorarioMedicamento struct {
	ID          uint      `gorm:"primarykey;column:id_horario_medicamento" json:"id_horario_medicamento"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (HorarioMedicamento) TableName() string { return "horarios_medicamentos" }

type CategoriaSimat struct {
	ID          uint      `gorm:"primarykey;column:id_categoria_simat" json:"id_categoria_simat"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CategoriaSimat) TableName() string { return "categorias_simat" }

type GrupoEtnico struct {
	ID          uint      `gorm:"primarykey;column:id_grupo_etnico" json:"id_grupo_etnico"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GrupoEtnico) TableName() string { return "grupos_etnicos" }

type Colegio struct {
	ID                uint   `gorm:"primarykey" json:"id"`
	CodigoInstitucion string `gorm:"column:codigo_institucion" json:"codigo_institucion"`
	Nombre            string `json:"nombre"`
	Estado            bool   `gorm:"default:true" json:"-"`
}

func (Colegio) TableName() string { return "colegios" }

type NivelEducativo struct {
	ID          uint   `gorm:"primarykey;column:id_nivel_educativo" json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (NivelEducativo) TableName() string { return "niveles_educativos" }

type IngresoPromedioMensual struct {
	ID          uint   `gorm:"primarykey;column:id_ingreso" json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (IngresoPromedioMensual) TableName() string { return "ingresos_promedios_mensuales" }

type RelacionEstudiante struct {
	ID          uint      `gorm:"primarykey;column:id_relacion" json:"id_relacion"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Estado      bool      `gorm:"default:true" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RelacionEstudiante) TableName() string { return "relaciones_estudiante" }

type Asignatura struct {
	ID          uint   `gorm:"primarykey;column:id_asignatura" json:"id_asignatura"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Estado      bool   `gorm:"default:true" json:"-"`
}

func (Asignatura) TableName() string { return "asignaturas" }

type AsignaturaEducacionInicial struct {
	ID             uint   `gorm:"primarykey;column:id_asignatura_inicial" json:"id_asignatura_inicial"`
	Nombre         string `json:"nombre"`
	Descripcion    string `json:"descripcion"`
	DimensionTipo  string `gorm:"column:dimension_tipo" json:"dimension_tipo"`
	OrdenDimension int    `gorm:"column:orden_dimension" json:"orden_dimension"`
	Estado         bool   `gorm:"default:true" json:"-"`
}

func (AsignaturaEducacionInicial) TableName() string { return "asignaturas_educacion_inicial" }

type Barrera struct {
	ID               uint   `gorm:"primarykey;column:id_barrera" json:"id_barrera"`
	IDCategoriaSimat uint   `gorm:"column:id_categoria_simat" json:"id_categoria_simat"`
	Nombre           string `json:"nombre"`
	Descripcion      string `json:"descripcion"`
	Orden            int    `gorm:"default:1" json:"orden"`
	Estado           bool   `gorm:"default:true" json:"-"`
}

func (Barrera) TableName() string { return "barreras" }

type GradoPiar struct {
	ID             uint   `gorm:"primarykey;column:id_grado" json:"id_grado"`
	Nombre         string `json:"nombre"`
	NivelEducativo string `gorm:"column:nivel_educativo" json:"nivel_educativo"`
	OrdenGrado     int    `gorm:"column:orden_grado" json:"orden_grado"`
	Estado         bool   `gorm:"default:true" json:"-"`
}

func (GradoPiar) TableName() string { return "grados_piar" }

// DerechoBasicoAprendizaje is one DBA curriculum standard for a subject and
// grade, with its associated learning evidences.
type DerechoBasicoAprendizaje struct {
	ID           uint   `gorm:"primarykey;column:id_dba" json:"id_dba"`
	NumeroDba    int    `gorm:"column:numero_dba" json:"numero_dba"`
	Titulo       string `json:"titulo"`
	Descripcion  string `json:"descripcion"`
	IDAsignatura uint   `gorm:"column:id_asignatura" json:"id_asignatura"`
	IDGrado      uint   `gorm:"column:id_grado" json:"id_grado"`
	Estado       bool   `gorm:"default:true" json:"-"`
}

func (DerechoBasicoAprendizaje) TableName() string { return "derechos_basicos_aprendizaje" }

type EvidenciaAprendizaje struct {
	ID              uint   `gorm:"primarykey;column:id_evidencia" json:"id_evidencia"`
	IDDba           uint   `gorm:"column:id_dba" json:"id_dba"`
	NumeroEvidencia int    `gorm:"column:numero_evidencia" json:"numero_evidencia"`
	Descripcion     string `json:"descripcion"`
	Estado          bool   `gorm:"default:true" json:"-"`
}

func (EvidenciaAprendizaje) TableName() string { return "evidencias_aprendizaje" }
