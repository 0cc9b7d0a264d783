package roster

// Role is the enumerated job role with a fixed sort ordinal. Free text from
// the records is parsed once, at the boundary; sorting never inspects the raw
// string again.
type Role int

const (
	RoleCamarero Role = iota + 1
	RoleEncargado
	RoleCocinero
	RoleAyudanteCocina
	RoleJefeCocina
	RoleUnknown
)

var roleNames = map[string]Role{
	"camarero":           RoleCamarero,
	"camarera":           RoleCamarero,
	"encargado":          RoleEncargado,
	"encargada":          RoleEncargado,
	"cocinero":           RoleCocinero,
	"cocinera":           RoleCocinero,
	"ayudante de cocina": RoleAyudanteCocina,
	"jefe de cocina":     RoleJefeCocina,
	"jefa de cocina":     RoleJefeCocina,
}

// ParseRole maps free text to a role, accent- and case-insensitive. Anything
// unrecognized ranks last.
func ParseRole(raw string) Role {
	if role, ok := roleNames[foldSpanish(raw)]; ok {
		return role
	}
	return RoleUnknown
}

func (r Role) String() string {
	switch r {
	case RoleCamarero:
		return "Camarero"
	case RoleEncargado:
		return "Encargado"
	case RoleCocinero:
		return "Cocinero"
	case RoleAyudanteCocina:
		return "Ayudante de cocina"
	case RoleJefeCocina:
		return "Jefe de cocina"
	}
	return "Sin puesto"
}
