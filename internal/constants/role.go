package constants

type Role string

const (
	RoleOperator Role = "Operario"
	RoleAdmin    Role = "Administrador"
)

func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleAdmin
}
