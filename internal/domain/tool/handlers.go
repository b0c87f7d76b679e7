// Handler implementations, one constructor per tool category.
// Success payloads mirror the inherited external contract (message + id
// shapes); CRM-side failures pass through with their detail intact.
package tool

import (
	"context"
	"fmt"

	"github.com/matiasleandrokruk/salesbridge/internal/domain/salesforce"
)

func (r *Registry) describeHandler(object salesforce.ObjectType) HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, _ Args) (any, error) {
		schema, err := r.client.DescribeObject(ctx, cred, object)
		if err != nil {
			return nil, err
		}
		return map[string]any{"schema": schema}, nil
	}
}

func (r *Registry) createHandler(object salesforce.ObjectType, fieldsParam string) HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		fields, err := args.JSONObject(fieldsParam)
		if err != nil {
			return nil, err
		}
		id, err := r.client.CreateRecord(ctx, cred, object, fields)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"message": fmt.Sprintf("%s created successfully with Id: %s", object, id),
			"id":      id,
		}, nil
	}
}

func (r *Registry) updateHandler(object salesforce.ObjectType, fieldsParam, idParam string) HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		fields, err := args.JSONObject(fieldsParam)
		if err != nil {
			return nil, err
		}
		recordID, err := args.String(idParam)
		if err != nil {
			return nil, err
		}
		if err := r.client.UpdateRecord(ctx, cred, object, recordID, fields); err != nil {
			return nil, err
		}
		return map[string]any{
			"message": fmt.Sprintf("%s %s updated successfully", object, recordID),
		}, nil
	}
}

func (r *Registry) deleteHandler(object salesforce.ObjectType, idParam string) HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		recordID, err := args.String(idParam)
		if err != nil {
			return nil, err
		}
		if err := r.client.DeleteRecord(ctx, cred, object, recordID); err != nil {
			return nil, err
		}
		return map[string]any{
			"message": fmt.Sprintf("%s %s deleted successfully", object, recordID),
		}, nil
	}
}

func (r *Registry) convertLeadHandler() HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		leadID, err := args.String("lead_id")
		if err != nil {
			return nil, err
		}
		convertedStatus, err := args.String("converted_status")
		if err != nil {
			return nil, err
		}
		opportunityName, err := args.String("opportunity_name")
		if err != nil {
			return nil, err
		}
		accountID, err := args.OptionalString("account_id")
		if err != nil {
			return nil, err
		}
		contactID, err := args.OptionalString("contact_id")
		if err != nil {
			return nil, err
		}

		result, err := r.client.ConvertLead(ctx, cred, salesforce.ConvertLeadInput{
			LeadID:          leadID,
			ConvertedStatus: convertedStatus,
			OpportunityName: opportunityName,
			AccountID:       accountID,
			ContactID:       contactID,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"message":       fmt.Sprintf("Lead %s converted successfully to opportunity: %s", leadID, opportunityName),
			"opportunityId": result.OpportunityID,
		}, nil
	}
}

func (r *Registry) queryHandler() HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		soql, err := args.String("query")
		if err != nil {
			return nil, err
		}
		// Verbatim passthrough: no client-side parsing or validation of the SOQL.
		return r.client.Query(ctx, cred, soql)
	}
}

func (r *Registry) directLinkHandler() HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		objectType, err := args.String("object_type")
		if err != nil {
			return nil, err
		}
		objectID, err := args.String("object_id")
		if err != nil {
			return nil, err
		}
		// Pure URL construction from the forwarded instance URL; no CRM call.
		return map[string]any{
			"url":         salesforce.DirectLink(cred, objectID),
			"object_type": objectType,
			"object_id":   objectID,
		}, nil
	}
}

func (r *Registry) emailMessageHandler() HandlerFunc {
	return func(ctx context.Context, cred salesforce.Credential, args Args) (any, error) {
		input := salesforce.EmailMessageInput{}
		var err error
		if input.RelatedToID, err = args.String("related_object_id"); err != nil {
			return nil, err
		}
		if input.Subject, err = args.String("subject"); err != nil {
			return nil, err
		}
		if input.TextBody, err = args.String("text_body"); err != nil {
			return nil, err
		}
		if input.HTMLBody, err = args.String("html_body"); err != nil {
			return nil, err
		}
		if input.FromName, err = args.String("from_name"); err != nil {
			return nil, err
		}
		if input.FromAddress, err = args.String("from_address"); err != nil {
			return nil, err
		}
		if input.ToAddress, err = args.String("to_address"); err != nil {
			return nil, err
		}
		if input.Status, err = args.OptionalInt("status", salesforce.EmailStatusDraft); err != nil {
			return nil, err
		}

		id, err := r.client.CreateEmailMessage(ctx, cred, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"message": fmt.Sprintf("Email message created successfully with Id: %s (Status: %s)", id, emailStatusText(input.Status)),
			"id":      id,
		}, nil
	}
}

func emailStatusText(status int) string {
	switch status {
	case salesforce.EmailStatusDraft:
		return "Draft"
	case salesforce.EmailStatusSent:
		return "Sent"
	default:
		return "Unknown"
	}
}
