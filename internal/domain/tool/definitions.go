package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matiasleandrokruk/salesbridge/internal/domain/salesforce"
)

// Tool names outside the generated per-object CRUD set.
const (
	ToolConvertLead   = "convert_lead_to_opportunity"
	ToolQuery         = "query"
	ToolGetDirectLink = "get_direct_link"
	ToolEmailMessage  = "email_message"
)

// registerBuiltins declares the fixed tool surface: describe/create/update/
// delete for each CRM object, plus the four standalone tools. Tool and
// parameter names are part of the external contract.
func (r *Registry) registerBuiltins() {
	for _, object := range salesforce.CRMObjects() {
		r.registerObjectTools(object)
	}

	r.register(Definition{
		Name:        ToolConvertLead,
		Description: "Converts an existing lead into a new Opportunity in Salesforce.",
		InputSchema: json.RawMessage(`{"type":"object","required":["lead_id","converted_status","opportunity_name"],"properties":{"lead_id":{"type":"string","description":"A string containing the Salesforce Id of the lead to convert"},"converted_status":{"type":"string","description":"The converted status of the lead. Must exist within Salesforce."},"opportunity_name":{"type":"string","description":"The name of the opportunity to create"},"account_id":{"type":"string","description":"The Salesforce Id of an existing account to associate with the opportunity"},"contact_id":{"type":"string","description":"The Salesforce Id of an existing contact to associate with the opportunity"}},"additionalProperties":false}`),
		Required:    []string{"lead_id", "converted_status", "opportunity_name"},
		Handler:     r.convertLeadHandler(),
	})

	r.register(Definition{
		Name:        ToolQuery,
		Description: "Query Salesforce using SOQL.",
		InputSchema: json.RawMessage(`{"type":"object","required":["query"],"properties":{"query":{"type":"string","description":"The SOQL query to execute"}},"additionalProperties":false}`),
		Required:    []string{"query"},
		Handler:     r.queryHandler(),
	})

	r.register(Definition{
		Name:        ToolGetDirectLink,
		Description: "Get a direct weblink to a Salesforce object.",
		InputSchema: json.RawMessage(`{"type":"object","required":["object_type","object_id"],"properties":{"object_type":{"type":"string","description":"The type of Salesforce object to get the direct link for. Use singular form, starting with a capital letter (e.g., Account, Contact, Lead, Opportunity, Case)"},"object_id":{"type":"string","description":"The ID of the Salesforce object to get the direct link for."}},"additionalProperties":false}`),
		Required:    []string{"object_type", "object_id"},
		Handler:     r.directLinkHandler(),
	})

	r.register(Definition{
		Name:        ToolEmailMessage,
		Description: "Create an Email in Salesforce using Enhanced Email functionality.",
		InputSchema: json.RawMessage(`{"type":"object","required":["related_object_id","subject","text_body","html_body","from_name","from_address","to_address"],"properties":{"related_object_id":{"type":"string","description":"The Salesforce Id of the object to which the email should be related"},"subject":{"type":"string","description":"The subject of the email"},"text_body":{"type":"string","description":"The plaintext body of the email"},"html_body":{"type":"string","description":"The HTML body of the email"},"from_name":{"type":"string","description":"The name of the sender"},"from_address":{"type":"string","description":"The email address of the sender"},"to_address":{"type":"string","description":"The email address of the recipient"},"status":{"type":"integer","description":"The numeric status of the email (3 = Sent, 5 = Draft). Create messages as drafts by default."}},"additionalProperties":false}`),
		Required:    []string{"related_object_id", "subject", "text_body", "html_body", "from_name", "from_address", "to_address"},
		Handler:     r.emailMessageHandler(),
	})
}

// registerObjectTools declares the describe/create/update/delete quartet for
// one CRM object. The record-fields parameter is named after the object
// (e.g. "contact") and carries a JSON-formatted string, the id parameter is
// "<object>_id" — both inherited contract.
func (r *Registry) registerObjectTools(object salesforce.ObjectType) {
	lower := strings.ToLower(string(object))
	idParam := lower + "_id"

	r.register(Definition{
		Name:        fmt.Sprintf("describe_%s_schema", lower),
		Description: fmt.Sprintf("Describes the available fields for a %s object in Salesforce.", lower),
		InputSchema: json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`),
		Handler:     r.describeHandler(object),
	})

	r.register(Definition{
		Name:        "create_" + lower,
		Description: fmt.Sprintf("Create a new %s in Salesforce.", lower),
		InputSchema: json.RawMessage(fmt.Sprintf(
			`{"type":"object","required":[%q],"properties":{%q:{"type":"string","description":"A JSON-formatted string containing the %s fields to use for the new %s"}},"additionalProperties":false}`,
			lower, lower, lower, lower)),
		Required: []string{lower},
		Handler:  r.createHandler(object, lower),
	})

	r.register(Definition{
		Name:        "update_" + lower,
		Description: fmt.Sprintf("Update an existing %s in Salesforce.", lower),
		InputSchema: json.RawMessage(fmt.Sprintf(
			`{"type":"object","required":[%q,%q],"properties":{%q:{"type":"string","description":"A JSON-formatted string containing the %s fields to update in the existing %s"},%q:{"type":"string","description":"A string containing the Salesforce Id of the %s to update"}},"additionalProperties":false}`,
			lower, idParam, lower, lower, lower, idParam, lower)),
		Required: []string{lower, idParam},
		Handler:  r.updateHandler(object, lower, idParam),
	})

	r.register(Definition{
		Name:        "delete_" + lower,
		Description: fmt.Sprintf("Delete an existing %s in Salesforce.", lower),
		InputSchema: json.RawMessage(fmt.Sprintf(
			`{"type":"object","required":[%q],"properties":{%q:{"type":"string","description":"A string containing the Salesforce Id of the %s to delete"}},"additionalProperties":false}`,
			idParam, idParam, lower)),
		Required: []string{idParam},
		Handler:  r.deleteHandler(object, idParam),
	})
}
