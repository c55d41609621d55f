package alias

import (
	"log/slog"
	"os"
)

// LoadDefaults populates d with the built-in synonym tables, which
// NewWithDefaultsAndDir always loads before layering any assets directory
// on top. Mirrors the literal end-to-end scenarios
// in spec.md §8 (e.g. Siemens-style `PersonID`/`WorkEmails`/`HomeEmails`).
func LoadDefaults(d *Dictionary) error {
	if err := d.LoadEntries("Candidate", candidateAliases()); err != nil {
		return err
	}
	if err := d.LoadEntries("Employee", employeeAliases()); err != nil {
		return err
	}
	if err := d.LoadEntries("Position", positionAliases()); err != nil {
		return err
	}
	return nil
}

// NewWithDefaults builds a Dictionary pre-loaded with the built-in tables.
func NewWithDefaults() (*Dictionary, error) {
	d := New()
	if err := LoadDefaults(d); err != nil {
		return nil, err
	}
	return d, nil
}

// NewWithDefaultsAndDir builds a Dictionary from the built-in tables, then
// layers every *.yaml file under dir on top — adding entities the
// built-ins don't cover (e.g. Department) and extending the synonym
// lists of ones they do. A missing dir is not an error: it mirrors
// schemaregistry.NewRegistryWithPath's "built-ins only" fallback so a
// fresh deploy with no assets/ directory still works.
func NewWithDefaultsAndDir(dir string) (*Dictionary, error) {
	d, err := NewWithDefaults()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return d, nil
	}
	if _, err := os.Stat(dir); err != nil {
		slog.Warn("alias: directory not found, using built-in tables only", "dir", dir)
		return d, nil
	}
	if err := mergeDir(d, dir); err != nil {
		return nil, err
	}
	return d, nil
}

func candidateAliases() []Entry {
	return []Entry{
		{Target: "CANDIDATE_ID", Aliases: []string{"PersonID", "CandidateID", "ApplicantID", "Candidate_ID"}},
		{Target: "FIRST_NAME", Aliases: []string{"GivenName", "Fname"}},
		{Target: "LAST_NAME", Aliases: []string{"Surname", "FamilyName", "Lname"}},
		{Target: "EMAIL", Aliases: []string{"WorkEmails", "HomeEmails", "EmailAddress", "Emails"}},
		{Target: "PHONE", Aliases: []string{"WorkPhones", "HomePhones", "PhoneNumber", "Phones", "MobilePhone"}},
		{Target: "LAST_ACTIVITY_TS", Aliases: []string{"LastActivityTimeStamp", "LastActivityDate", "LastModified"}},
	}
}

func employeeAliases() []Entry {
	return []Entry{
		{Target: "EMPLOYEE_ID", Aliases: []string{"PersonID", "EmpID", "WorkerID", "Employee_ID"}},
		{Target: "FIRST_NAME", Aliases: []string{"GivenName", "Fname"}},
		{Target: "LAST_NAME", Aliases: []string{"Surname", "FamilyName", "Lname"}},
		{Target: "EMAIL", Aliases: []string{"WorkEmails", "HomeEmails", "EmailAddress", "Emails"}},
		{Target: "PHONE", Aliases: []string{"WorkPhones", "HomePhones", "PhoneNumber", "Phones", "MobilePhone"}},
		{Target: "HIRE_DATE", Aliases: []string{"StartDate", "JoinDate", "DateHired"}},
		{Target: "TERMINATION_DATE", Aliases: []string{"EndDate", "DateTerminated", "SeparationDate"}},
		{Target: "DEPARTMENT", Aliases: []string{"Dept", "Division", "BusinessUnit"}},
		{Target: "MANAGER_ID", Aliases: []string{"SupervisorID", "ManagerEmployeeID"}},
		{Target: "TITLE", Aliases: []string{"JobTitle", "Role", "PositionTitle"}},
		{Target: "STATUS", Aliases: []string{"EmploymentStatus", "WorkerStatus"}},
		{Target: "LAST_ACTIVITY_TS", Aliases: []string{"LastActivityTimeStamp", "LastActivityDate", "LastModified"}},
	}
}

func positionAliases() []Entry {
	return []Entry{
		{Target: "POSITION_ID", Aliases: []string{"JobID", "ReqID", "RequisitionID"}},
		{Target: "TITLE", Aliases: []string{"JobTitle", "PositionTitle", "RoleTitle"}},
		{Target: "DEPARTMENT", Aliases: []string{"Dept", "Division", "BusinessUnit"}},
		{Target: "LOCATION", Aliases: []string{"Office", "Site", "City"}},
		{Target: "OPEN_DATE", Aliases: []string{"PostedDate", "DateOpened"}},
		{Target: "STATUS", Aliases: []string{"ReqStatus", "JobStatus"}},
		{Target: "URL", Aliases: []string{"PostingURL", "JobURL", "ApplyURL"}},
	}
}
