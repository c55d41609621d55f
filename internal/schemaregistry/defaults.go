package schemaregistry

// defaultSchemas returns the built-in entity schemas available even with
// no on-disk assets directory configured. These mirror the Eightfold-style
// target entities referenced throughout the end-to-end scenarios.
func defaultSchemas() []*EntitySchema {
	return []*EntitySchema{candidateSchema(), employeeSchema(), positionSchema()}
}

func candidateSchema() *EntitySchema {
	return &EntitySchema{
		Entity:      "Candidate",
		Description: "A person under consideration for a role.",
		Fields: []FieldDefinition{
			{Name: "CANDIDATE_ID", DisplayName: "Candidate ID", SemanticType: TypeString, Required: true, Example: "C-10293", Description: "Unique identifier for the candidate record."},
			{Name: "FIRST_NAME", DisplayName: "First Name", SemanticType: TypeString, Required: true, Example: "Maria", Description: "Given name."},
			{Name: "LAST_NAME", DisplayName: "Last Name", SemanticType: TypeString, Required: true, Example: "Lopez", Description: "Family name."},
			{Name: "EMAIL", DisplayName: "Email", SemanticType: TypeListEmail, Required: true, Example: "maria.lopez@example.com", Description: "One or more contact email addresses."},
			{Name: "PHONE", DisplayName: "Phone", SemanticType: TypeListPhone, Required: false, Example: "555-0100", Description: "One or more contact phone numbers."},
			{Name: "LAST_ACTIVITY_TS", DisplayName: "Last Activity Timestamp", SemanticType: TypeDateTime, Required: false, Format: "YYYY-MM-DDTHH:MM:SS", Example: "2026-01-15T09:30:00", Description: "Timestamp of the candidate's most recent activity."},
		},
	}
}

func employeeSchema() *EntitySchema {
	return &EntitySchema{
		Entity:      "Employee",
		Description: "A current employee record.",
		Fields: []FieldDefinition{
			{Name: "EMPLOYEE_ID", DisplayName: "Employee ID", SemanticType: TypeString, Required: true, Example: "E-55210", Description: "Unique identifier for the employee record."},
			{Name: "FIRST_NAME", DisplayName: "First Name", SemanticType: TypeString, Required: true, Example: "John", Description: "Given name."},
			{Name: "LAST_NAME", DisplayName: "Last Name", SemanticType: TypeString, Required: true, Example: "Smith", Description: "Family name."},
			{Name: "EMAIL", DisplayName: "Email", SemanticType: TypeListEmail, Required: true, Example: "john.smith@example.com", Description: "One or more contact email addresses."},
			{Name: "PHONE", DisplayName: "Phone", SemanticType: TypeListPhone, Required: false, Example: "555-0101", Description: "One or more contact phone numbers."},
			{Name: "HIRE_DATE", DisplayName: "Hire Date", SemanticType: TypeDate, Required: false, Format: "YYYY-MM-DD", Example: "2022-03-01", Description: "Date the employee was hired."},
			{Name: "TERMINATION_DATE", DisplayName: "Termination Date", SemanticType: TypeDate, Required: false, Format: "YYYY-MM-DD", Example: "", Description: "Date of employment termination, if any."},
			{Name: "DEPARTMENT", DisplayName: "Department", SemanticType: TypeString, Required: false, Example: "Engineering", Description: "Organizational department."},
			{Name: "MANAGER_ID", DisplayName: "Manager ID", SemanticType: TypeString, Required: false, Example: "E-55001", Description: "Employee ID of the direct manager."},
			{Name: "TITLE", DisplayName: "Job Title", SemanticType: TypeString, Required: false, Example: "Software Engineer", Description: "Current job title."},
			{Name: "STATUS", DisplayName: "Status", SemanticType: TypeString, Required: false, Example: "active", Description: "Employment status."},
			{Name: "LAST_ACTIVITY_TS", DisplayName: "Last Activity Timestamp", SemanticType: TypeDateTime, Required: false, Format: "YYYY-MM-DDTHH:MM:SS", Example: "2026-01-15T09:30:00", Description: "Timestamp of the employee's most recent activity."},
		},
	}
}

func positionSchema() *EntitySchema {
	return &EntitySchema{
		Entity:      "Position",
		Description: "An open or filled organizational role.",
		Fields: []FieldDefinition{
			{Name: "POSITION_ID", DisplayName: "Position ID", SemanticType: TypeString, Required: true, Example: "P-9001", Description: "Unique identifier for the position."},
			{Name: "TITLE", DisplayName: "Title", SemanticType: TypeString, Required: true, Example: "Senior Software Engineer", Description: "Position title."},
			{Name: "DEPARTMENT", DisplayName: "Department", SemanticType: TypeString, Required: false, Example: "Engineering", Description: "Organizational department owning the position."},
			{Name: "LOCATION", DisplayName: "Location", SemanticType: TypeString, Required: false, Example: "Austin, TX", Description: "Primary work location."},
			{Name: "OPEN_DATE", DisplayName: "Open Date", SemanticType: TypeDate, Required: false, Format: "YYYY-MM-DD", Example: "2026-01-01", Description: "Date the position was opened."},
			{Name: "STATUS", DisplayName: "Status", SemanticType: TypeString, Required: false, Example: "open", Description: "Position status."},
			{Name: "URL", DisplayName: "Posting URL", SemanticType: TypeURL, Required: false, Example: "https://careers.example.com/p/9001", Description: "Public job posting URL."},
		},
	}
}
