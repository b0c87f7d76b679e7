package salesforce

// Credential is the per-request Salesforce credential sourced from forwarded
// headers. Ephemeral: never persisted, never logged.
type Credential struct {
	AccessToken string
	InstanceURL string
}

// ObjectType identifies a Salesforce sobject addressed by the tool surface.
type ObjectType string

const (
	ObjectContact      ObjectType = "Contact"
	ObjectLead         ObjectType = "Lead"
	ObjectAccount      ObjectType = "Account"
	ObjectOpportunity  ObjectType = "Opportunity"
	ObjectCase         ObjectType = "Case"
	objectEmailMessage ObjectType = "EmailMessage"
)

// CRMObjects lists the object types exposed through the CRUD/describe tools.
func CRMObjects() []ObjectType {
	return []ObjectType{ObjectContact, ObjectLead, ObjectAccount, ObjectOpportunity, ObjectCase}
}

// PicklistValue is one allowed value of a picklist field.
type PicklistValue struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
}

// Field describes a single sobject field as returned by a describe call.
// Required mirrors the REST API's nillable flag inverted.
type Field struct {
	Name           string          `json:"name"`
	Label          string          `json:"label"`
	Type           string          `json:"type"`
	Required       bool            `json:"required"`
	Createable     bool            `json:"createable"`
	Updateable     bool            `json:"updateable"`
	PicklistValues []PicklistValue `json:"picklistValues"`
}

// ObjectSchema is the field list of one sobject with type metadata.
type ObjectSchema struct {
	Object ObjectType `json:"object"`
	Fields []Field    `json:"fields"`
}

// QueryResult is the verbatim shape of a SOQL query response.
// NextRecordsURL is set when the result is paginated and more records remain.
type QueryResult struct {
	TotalSize      int              `json:"totalSize"`
	Done           bool             `json:"done"`
	Records        []map[string]any `json:"records"`
	NextRecordsURL string           `json:"nextRecordsUrl,omitempty"`
}

// ConvertLeadInput carries the parameters of a native lead conversion.
// AccountID and ContactID are optional existing records to link.
type ConvertLeadInput struct {
	LeadID          string
	ConvertedStatus string
	OpportunityName string
	AccountID       string
	ContactID       string
}

// ConvertLeadResult is the outcome of a lead conversion: the linked records
// created or reused by Salesforce.
type ConvertLeadResult struct {
	Success       bool   `json:"success"`
	LeadID        string `json:"leadId"`
	AccountID     string `json:"accountId"`
	ContactID     string `json:"contactId"`
	OpportunityID string `json:"opportunityId"`
}

// Email message Status picklist values (Enhanced Email).
const (
	EmailStatusSent  = 3
	EmailStatusDraft = 5
)

// EmailMessageInput carries the fields of an EmailMessage record.
type EmailMessageInput struct {
	RelatedToID string
	Subject     string
	TextBody    string
	HTMLBody    string
	FromName    string
	FromAddress string
	ToAddress   string
	Status      int
}
