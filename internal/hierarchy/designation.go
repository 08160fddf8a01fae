package hierarchy

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
)

// Designations, lowest to highest seniority. HR is a designation without a
// seniority rank; it never appears on a reporting edge.
const (
	DesignationAssociate       = "ASSOCIATE"
	DesignationSeniorAssociate = "SENIOR_ASSOCIATE"
	DesignationTeamLeader      = "TEAM_LEADER"
	DesignationManager         = "MANAGER"
	DesignationSeniorManager   = "SENIOR_MANAGER"
	DesignationVicePresident   = "VICE_PRESIDENT"
	DesignationPresident       = "PRESIDENT"
	DesignationCEO             = "CEO"
	DesignationHR              = "HR"
)

const (
	DepartmentIT         = "IT"
	DepartmentAdmin      = "ADMIN"
	DepartmentDeveloper  = "DEVELOPER"
	DepartmentHR         = "HR"
	DepartmentManagement = "MANAGEMENT"
)

var seniorityOrder = map[string]int{
	DesignationAssociate:       1,
	DesignationSeniorAssociate: 2,
	DesignationTeamLeader:      3,
	DesignationManager:         4,
	DesignationSeniorManager:   5,
	DesignationVicePresident:   6,
	DesignationPresident:       7,
	DesignationCEO:             8,
}

var (
	ErrUnknownDesignation = apperror.New(
		apperror.CodeInvalidInput,
		"unknown designation",
		http.StatusBadRequest,
	)
	ErrReportingNotSenior = apperror.New(
		apperror.CodeInvalidInput,
		"reporting person must be senior to the employee",
		http.StatusBadRequest,
	)
)

// Rank returns the seniority rank of a designation. Unranked designations
// (HR, empty, unknown) report ok=false.
func Rank(designation string) (int, bool) {
	rank, ok := seniorityOrder[designation]
	return rank, ok
}

// ValidateReportingEdge checks that the reporting person is strictly senior
// to the candidate. Equal or junior rank is rejected, as is any unranked
// designation on either end of the edge.
func ValidateReportingEdge(candidate, reportingPerson string) error {
	candidateRank, ok := Rank(candidate)
	if !ok {
		return ErrUnknownDesignation
	}
	reportingRank, ok := Rank(reportingPerson)
	if !ok {
		return ErrUnknownDesignation
	}
	if reportingRank <= candidateRank {
		return ErrReportingNotSenior
	}
	return nil
}
