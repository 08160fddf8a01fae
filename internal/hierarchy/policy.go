package hierarchy

// Employee field names the edit policy is keyed on. These match the json
// field names of the employee update payload.
const (
	FieldContactNumber          = "contact_number"
	FieldEmergencyContactNumber = "emergency_contact_number"
	FieldResidentialAddress     = "residential_address"
	FieldPermanentAddress       = "permanent_address"
	FieldClient                 = "client"
	FieldDepartment             = "department"
)

// editableFields maps a designation to the employee fields it may write.
// Adding a role or a field is a table edit, not a new code path. Management
// designations (VP and above) bypass the table entirely, see FilterUpdate.
var editableFields = map[string][]string{
	DesignationAssociate: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
	},
	DesignationSeniorAssociate: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
	},
	DesignationTeamLeader: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
	},
	DesignationManager: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
		FieldClient,
		FieldDepartment,
	},
	DesignationSeniorManager: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
		FieldClient,
		FieldDepartment,
	},
	DesignationVicePresident: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
		FieldClient,
		FieldDepartment,
	},
	DesignationPresident: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
		FieldClient,
		FieldDepartment,
	},
	DesignationCEO: {
		FieldContactNumber,
		FieldEmergencyContactNumber,
		FieldResidentialAddress,
		FieldPermanentAddress,
		FieldClient,
		FieldDepartment,
	},
}

var managementTier = map[string]bool{
	DesignationVicePresident: true,
	DesignationPresident:     true,
	DesignationCEO:           true,
}

// IsManagementTier reports whether a designation belongs to the top three
// tiers, which bypass field filtering and hold soft-delete rights.
func IsManagementTier(designation string) bool {
	return managementTier[designation]
}

// EditableFields returns a fresh copy of the policy table entry for a
// designation. Designations without an entry get an empty set.
func EditableFields(designation string) []string {
	fields := editableFields[designation]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// FilterUpdate strips fields the actor's designation may not write. This is
// a filtering operation, not a validation error: disallowed fields are
// silently dropped and the permitted subset is returned. Management tiers
// pass through untouched. Callers must reject the write outright when the
// actor has no designation at all; an empty designation filters to nothing.
func FilterUpdate(actorDesignation string, patch map[string]string) map[string]string {
	if IsManagementTier(actorDesignation) {
		out := make(map[string]string, len(patch))
		for k, v := range patch {
			out[k] = v
		}
		return out
	}

	permitted := make(map[string]bool)
	for _, f := range editableFields[actorDesignation] {
		permitted[f] = true
	}

	out := make(map[string]string)
	for k, v := range patch {
		if permitted[k] {
			out[k] = v
		}
	}
	return out
}
