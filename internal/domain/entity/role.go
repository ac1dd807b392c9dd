package entity

// Role names as stored on the users table. The clinic distinguishes
// clinical staff (bookable as practitioners) from everyone else.
const (
	RoleAdmin               = "admin"
	RoleSpecialistPhysician = "specialist_physician"
	RoleNurse               = "nurse"
	RoleNursingAux          = "nursing_aux"
	RoleIntern              = "intern"
	RoleParamedic           = "paramedic"
	RolePatient             = "patient"
	RoleSecurity            = "security"
	RoleVulnerablePerson    = "vulnerable_person"
)

// clinicalRoles are the roles that can appear as the practitioner of an
// appointment.
var clinicalRoles = map[string]bool{
	RoleSpecialistPhysician: true,
	RoleNurse:               true,
	RoleNursingAux:          true,
	RoleIntern:              true,
	RoleParamedic:           true,
}

// IsValidRole reports whether name is one of the known roles.
func IsValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleSpecialistPhysician, RoleNurse, RoleNursingAux,
		RoleIntern, RoleParamedic, RolePatient, RoleSecurity, RoleVulnerablePerson:
		return true
	}
	return false
}

// IsClinicalRole reports whether name is a role that can be booked.
func IsClinicalRole(name string) bool {
	return clinicalRoles[name]
}

// ClinicalRoles returns the bookable role names.
func ClinicalRoles() []string {
	roles := make([]string, 0, len(clinicalRoles))
	for role := range clinicalRoles {
		roles = append(roles, role)
	}
	return roles
}
