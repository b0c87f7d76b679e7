package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testToken = "00Dxx0000001gPF!AQEAQ"

func testClient() *RESTClient {
	return NewRESTClient("v59.0", 5*time.Second)
}

func credFor(srv *httptest.Server) Credential {
	return Credential{AccessToken: testToken, InstanceURL: srv.URL}
}

func TestBaseURL_Normalization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare host gets https", "acme.my.salesforce.com", "https://acme.my.salesforce.com"},
		{"https kept", "https://acme.my.salesforce.com", "https://acme.my.salesforce.com"},
		{"http kept", "http://localhost:8089", "http://localhost:8089"},
		{"trailing slash trimmed", "https://acme.my.salesforce.com/", "https://acme.my.salesforce.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := BaseURL(Credential{InstanceURL: tc.in})
			if got != tc.want {
				t.Errorf("BaseURL(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDirectLink(t *testing.T) {
	t.Parallel()

	cred := Credential{InstanceURL: "acme.my.salesforce.com"}
	got := DirectLink(cred, "0035g00000abcde")
	want := "https://acme.my.salesforce.com/0035g00000abcde"
	if got != want {
		t.Errorf("DirectLink = %q; want %q", got, want)
	}
}

func TestDescribeObject(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s; want GET", r.Method)
		}
		if r.URL.Path != "/services/data/v59.0/sobjects/Contact/describe" {
			t.Errorf("path = %s; want describe path", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
			t.Errorf("Authorization = %q; want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"fields":[
			{"name":"Id","label":"Contact ID","type":"id","nillable":false,"createable":false,"updateable":false},
			{"name":"Name","label":"Full Name","type":"string","nillable":true,"createable":false,"updateable":false},
			{"name":"LeadSource","label":"Lead Source","type":"picklist","nillable":true,"createable":true,"updateable":true,
			 "picklistValues":[{"label":"Web","value":"Web","active":true}]}
		]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	schema, err := testClient().DescribeObject(context.Background(), credFor(srv), ObjectContact)
	if err != nil {
		t.Fatalf("DescribeObject error = %v", err)
	}

	if schema.Object != ObjectContact {
		t.Errorf("Object = %s; want Contact", schema.Object)
	}
	if len(schema.Fields) != 3 {
		t.Fatalf("len(Fields) = %d; want 3", len(schema.Fields))
	}
	if schema.Fields[0].Name != "Id" || !schema.Fields[0].Required {
		t.Errorf("Fields[0] = %+v; want required Id (nillable=false)", schema.Fields[0])
	}
	if schema.Fields[1].Name != "Name" || schema.Fields[1].Required {
		t.Errorf("Fields[1] = %+v; want optional Name", schema.Fields[1])
	}
	if len(schema.Fields[2].PicklistValues) != 1 || schema.Fields[2].PicklistValues[0].Value != "Web" {
		t.Errorf("Fields[2].PicklistValues = %v; want the Web entry", schema.Fields[2].PicklistValues)
	}
}

func TestCreateRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/services/data/v59.0/sobjects/Lead" {
			t.Errorf("got %s %s; want POST /services/data/v59.0/sobjects/Lead", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["LastName"] != "Stone" {
			t.Errorf("body LastName = %v; want Stone", body["LastName"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"00Q5g00000abcde","success":true,"errors":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	id, err := testClient().CreateRecord(context.Background(), credFor(srv), ObjectLead, map[string]any{"LastName": "Stone", "Company": "Acme"})
	if err != nil {
		t.Fatalf("CreateRecord error = %v", err)
	}
	if id != "00Q5g00000abcde" {
		t.Errorf("id = %q; want fixture id", id)
	}
}

func TestCreateRecord_ValidationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"message":"Required fields are missing: [LastName]","errorCode":"REQUIRED_FIELD_MISSING","fields":["LastName"]}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient().CreateRecord(context.Background(), credFor(srv), ObjectLead, map[string]any{"Company": "Acme"})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %T (%v); want *ValidationError in chain", err, err)
	}
	if len(valErr.Fields) != 1 || valErr.Fields[0] != "LastName" {
		t.Errorf("Fields = %v; want [LastName]", valErr.Fields)
	}
}

func TestUpdateRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/services/data/v59.0/sobjects/Contact/0035g00000abcde" {
			t.Errorf("got %s %s; want PATCH on the record path", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := testClient().UpdateRecord(context.Background(), credFor(srv), ObjectContact, "0035g00000abcde", map[string]any{"Email": "j@acme.com"})
	if err != nil {
		t.Fatalf("UpdateRecord error = %v", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/services/data/v59.0/sobjects/Case/5005g00000abcde" {
			t.Errorf("got %s %s; want DELETE on the record path", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := testClient().DeleteRecord(context.Background(), credFor(srv), ObjectCase, "5005g00000abcde")
	if err != nil {
		t.Fatalf("DeleteRecord error = %v", err)
	}
}

func TestQuery_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/data/v59.0/query" {
			t.Errorf("path = %s; want query path", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "SELECT Id, Name FROM Account LIMIT 2" {
			t.Errorf("q = %q; want the SOQL forwarded verbatim", got)
		}
		w.Write([]byte(`{"totalSize":2,"done":true,"records":[
			{"attributes":{"type":"Account"},"Id":"0015g1","Name":"Acme"},
			{"attributes":{"type":"Account"},"Id":"0015g2","Name":"Globex"}
		]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	result, err := testClient().Query(context.Background(), credFor(srv), "SELECT Id, Name FROM Account LIMIT 2")
	if err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if result.TotalSize != 2 || !result.Done {
		t.Errorf("result = %+v; want totalSize 2, done", result)
	}
	if len(result.Records) != 2 || result.Records[1]["Name"] != "Globex" {
		t.Errorf("Records = %v; want both fixture rows", result.Records)
	}
}

func TestQuery_Paginated(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalSize":4000,"done":false,"records":[{"Id":"0015g1"}],
			"nextRecordsUrl":"/services/data/v59.0/query/01g5g-2000"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	result, err := testClient().Query(context.Background(), credFor(srv), "SELECT Id FROM Account")
	if err != nil {
		t.Fatalf("Query error = %v", err)
	}
	if result.Done {
		t.Error("Done = true; want false for paginated result")
	}
	if result.NextRecordsURL != "/services/data/v59.0/query/01g5g-2000" {
		t.Errorf("NextRecordsURL = %q; want passthrough", result.NextRecordsURL)
	}
}

func TestQuery_MalformedSOQL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"message":"unexpected token: '<EOF>'","errorCode":"MALFORMED_QUERY"}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient().Query(context.Background(), credFor(srv), "SELECT Id Account")
	if err == nil {
		t.Fatal("expected query error, got nil")
	}
	var queryErr *QueryError
	if !errors.As(err, &queryErr) {
		t.Fatalf("error = %T (%v); want *QueryError in chain", err, err)
	}
}

func TestQuery_ExpiredToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`[{"message":"Session expired or invalid","errorCode":"INVALID_SESSION_ID"}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient().Query(context.Background(), credFor(srv), "SELECT Id FROM Account")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %T (%v); want *AuthError in chain", err, err)
	}
}

func TestConvertLead(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/services/apexrest/apex/ConvertLead" {
			t.Errorf("got %s %s; want POST /services/apexrest/apex/ConvertLead", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["leadId"] != "00Q5g00000abcde" || body["convertedStatus"] != "Closed - Converted" {
			t.Errorf("body = %v; want leadId and convertedStatus", body)
		}
		if _, present := body["accountId"]; present {
			t.Error("accountId present in body; optional field should be omitted when empty")
		}
		w.Write([]byte(`{"success":true,"leadId":"00Q5g00000abcde","accountId":"0015g00000abcde",
			"contactId":"0035g00000abcde","opportunityId":"0065g00000abcde"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	result, err := testClient().ConvertLead(context.Background(), credFor(srv), ConvertLeadInput{
		LeadID:          "00Q5g00000abcde",
		ConvertedStatus: "Closed - Converted",
		OpportunityName: "Acme - New Business",
	})
	if err != nil {
		t.Fatalf("ConvertLead error = %v", err)
	}
	if !result.Success || result.OpportunityID != "0065g00000abcde" {
		t.Errorf("result = %+v; want success with the fixture opportunity id", result)
	}
}

func TestCreateEmailMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/data/v59.0/sobjects/EmailMessage" {
			t.Errorf("path = %s; want the EmailMessage sobject", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["Status"] != float64(EmailStatusDraft) {
			t.Errorf("Status = %v; want %d", body["Status"], EmailStatusDraft)
		}
		if body["RelatedToId"] != "5005g00000abcde" {
			t.Errorf("RelatedToId = %v; want related object id", body["RelatedToId"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"02s5g00000abcde","success":true,"errors":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	id, err := testClient().CreateEmailMessage(context.Background(), credFor(srv), EmailMessageInput{
		RelatedToID: "5005g00000abcde",
		Subject:     "Renewal",
		TextBody:    "Hi",
		HTMLBody:    "<p>Hi</p>",
		FromName:    "Sales",
		FromAddress: "sales@acme.com",
		ToAddress:   "cto@globex.com",
		Status:      EmailStatusDraft,
	})
	if err != nil {
		t.Fatalf("CreateEmailMessage error = %v", err)
	}
	if id != "02s5g00000abcde" {
		t.Errorf("id = %q; want fixture id", id)
	}
}
