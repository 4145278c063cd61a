package models

// JobCategory is the stable key of a job category.
type JobCategory string

const (
	CategoryLimpieza        JobCategory = "limpieza"
	CategoryReparaciones    JobCategory = "reparaciones"
	CategoryMudanzas        JobCategory = "mudanzas"
	CategoryJardineria      JobCategory = "jardineria"
	CategoryCuidadoPersonas JobCategory = "cuidado_personas"
	CategoryClases          JobCategory = "clases"
	CategoryTecnologia      JobCategory = "tecnologia"
	CategoryOtros           JobCategory = "otros"
)

var categoryLabels = map[JobCategory]string{
	CategoryLimpieza:        "Limpieza",
	CategoryReparaciones:    "Reparaciones",
	CategoryMudanzas:        "Mudanzas",
	CategoryJardineria:      "Jardinería",
	CategoryCuidadoPersonas: "Cuidado de personas",
	CategoryClases:          "Clases particulares",
	CategoryTecnologia:      "Tecnología",
	CategoryOtros:           "Otros",
}

var categoryOrder = []JobCategory{
	CategoryLimpieza, CategoryReparaciones, CategoryMudanzas, CategoryJardineria,
	CategoryCuidadoPersonas, CategoryClases, CategoryTecnologia, CategoryOtros,
}

func (c JobCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c JobCategory) Label() string { return categoryLabels[c] }

// AllCategories returns the categories in display order.
func AllCategories() []JobCategory { return append([]JobCategory(nil), categoryOrder...) }

// JobStatus is the lifecycle state of a job. Any status may be rewritten by an admin.
type JobStatus string

const (
	JobOpen      JobStatus = "open"
	JobAssigned  JobStatus = "assigned"
	JobApproved  JobStatus = "approved"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

var jobStatusLabels = map[JobStatus]string{
	JobOpen:      "Abierto",
	JobAssigned:  "Asignado",
	JobApproved:  "Aprobado",
	JobCompleted: "Completado",
	JobCancelled: "Cancelado",
}

var jobStatusOrder = []JobStatus{JobOpen, JobAssigned, JobApproved, JobCompleted, JobCancelled}

func (s JobStatus) Valid() bool {
	_, ok := jobStatusLabels[s]
	return ok
}

func (s JobStatus) Label() string { return jobStatusLabels[s] }

// IsTerminalByConvention reports completed and cancelled. Nothing enforces it.
func (s JobStatus) IsTerminalByConvention() bool {
	return s == JobCompleted || s == JobCancelled
}

func AllJobStatuses() []JobStatus { return append([]JobStatus(nil), jobStatusOrder...) }

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var applicationStatusLabels = map[ApplicationStatus]string{
	ApplicationPending:  "Pendiente",
	ApplicationAccepted: "Aceptada",
	ApplicationRejected: "Rechazada",
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationStatusLabels[s]
	return ok
}

func (s ApplicationStatus) Label() string { return applicationStatusLabels[s] }

func AllApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{ApplicationPending, ApplicationAccepted, ApplicationRejected}
}

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountPending   AccountStatus = "pending"
)

var accountStatusLabels = map[AccountStatus]string{
	AccountActive:    "Activo",
	AccountSuspended: "Suspendido",
	AccountPending:   "Pendiente",
}

func (s AccountStatus) Valid() bool {
	_, ok := accountStatusLabels[s]
	return ok
}

func (s AccountStatus) Label() string { return accountStatusLabels[s] }

// Toggled flips between active and suspended. Pending counts as not active, so it becomes active.
func (s AccountStatus) Toggled() AccountStatus {
	if s == AccountActive {
		return AccountSuspended
	}
	return AccountActive
}

func AllAccountStatuses() []AccountStatus {
	return []AccountStatus{AccountActive, AccountSuspended, AccountPending}
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var roleLabels = map[Role]string{
	RoleUser:  "Usuario",
	RoleAdmin: "Admin",
}

func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

func (r Role) Label() string { return roleLabels[r] }

func AllRoles() []Role { return []Role{RoleUser, RoleAdmin} }

// Province is one of the 50 Spanish provinces or the autonomous cities of Ceuta and Melilla.
type Province string

var provinceOrder = []Province{
	"alava", "albacete", "alicante", "almeria", "asturias", "avila", "badajoz", "barcelona",
	"burgos", "caceres", "cadiz", "cantabria", "castellon", "ciudad_real", "cordoba", "cuenca",
	"girona", "granada", "guadalajara", "guipuzcoa", "huelva", "huesca", "islas_baleares", "jaen",
	"la_coruna", "la_rioja", "las_palmas", "leon", "lleida", "lugo", "madrid", "malaga",
	"murcia", "navarra", "ourense", "palencia", "pontevedra", "salamanca", "santa_cruz_tenerife",
	"segovia", "sevilla", "soria", "tarragona", "teruel", "toledo", "valencia", "valladolid",
	"vizcaya", "zamora", "zaragoza", "ceuta", "melilla",
}

var provinceLabels = map[Province]string{
	"alava":               "Álava",
	"albacete":            "Albacete",
	"alicante":            "Alicante",
	"almeria":             "Almería",
	"asturias":            "Asturias",
	"avila":               "Ávila",
	"badajoz":             "Badajoz",
	"barcelona":           "Barcelona",
	"burgos":              "Burgos",
	"caceres":             "Cáceres",
	"cadiz":               "Cádiz",
	"cantabria":           "Cantabria",
	"castellon":           "Castellón",
	"ciudad_real":         "Ciudad Real",
	"cordoba":             "Córdoba",
	"cuenca":              "Cuenca",
	"girona":              "Girona",
	"granada":             "Granada",
	"guadalajara":         "Guadalajara",
	"guipuzcoa":           "Guipúzcoa",
	"huelva":              "Huelva",
	"huesca":              "Huesca",
	"islas_baleares":      "Islas Baleares",
	"jaen":                "Jaén",
	"la_coruna":           "La Coruña",
	"la_rioja":            "La Rioja",
	"las_palmas":          "Las Palmas",
	"leon":                "León",
	"lleida":              "Lleida",
	"lugo":                "Lugo",
	"madrid":              "Madrid",
	"malaga":              "Málaga",
	"murcia":              "Murcia",
	"navarra":             "Navarra",
	"ourense":             "Ourense",
	"palencia":            "Palencia",
	"pontevedra":          "Pontevedra",
	"salamanca":           "Salamanca",
	"santa_cruz_tenerife": "Santa Cruz de Tenerife",
	"segovia":             "Segovia",
	"sevilla":             "Sevilla",
	"soria":               "Soria",
	"tarragona":           "Tarragona",
	"teruel":              "Teruel",
	"toledo":              "Toledo",
	"valencia":            "Valencia",
	"valladolid":          "Valladolid",
	"vizcaya":             "Vizcaya",
	"zamora":              "Zamora",
	"zaragoza":            "Zaragoza",
	"ceuta":               "Ceuta",
	"melilla":             "Melilla",
}

func (p Province) Valid() bool {
	_, ok := provinceLabels[p]
	return ok
}

func (p Province) Label() string { return provinceLabels[p] }

func AllProvinces() []Province { return append([]Province(nil), provinceOrder...) }

// FilterAll is the filter value that means "no constraint".
const FilterAll = "all"
