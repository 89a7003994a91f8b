package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgform "github.com/goliatone/go-sitegen/pkg/form"
)

const contactDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "contact", "version": "1.0.0"},
  "paths": {
    "/contact": {
      "post": {
        "operationId": "submitContact",
        "requestBody": {
          "required": true,
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": {
                "type": "object",
                "required": ["name", "email", "message"],
                "properties": {
                  "name": {"type": "string", "maxLength": 80},
                  "email": {"type": "string", "format": "email"},
                  "message": {"type": "string", "maxLength": 2000},
                  "company": {"type": "string", "title": "Company (optional)"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func TestContactForm(t *testing.T) {
	p := New(pkgform.ParserOptions{})

	got, err := p.ContactForm(context.Background(), []byte(contactDoc), "submitContact")
	if err != nil {
		t.Fatalf("ContactForm returned error: %v", err)
	}

	want := pkgform.Form{
		Name:   "submitContact",
		Method: "POST",
		Action: "/contact",
		Fields: []pkgform.Field{
			{Name: "company", Label: "Company (optional)", Kind: pkgform.FieldKindText},
			{Name: "email", Label: "Email", Kind: pkgform.FieldKindEmail, Required: true},
			{Name: "message", Label: "Message", Kind: pkgform.FieldKindTextarea, Required: true, MaxLength: 2000},
			{Name: "name", Label: "Name", Kind: pkgform.FieldKindText, Required: true, MaxLength: 80},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestContactFormDefaultsToFirstPost(t *testing.T) {
	p := New(pkgform.ParserOptions{})

	got, err := p.ContactForm(context.Background(), []byte(contactDoc), "")
	if err != nil {
		t.Fatalf("ContactForm returned error: %v", err)
	}
	if got.Action != "/contact" || got.Name != "submitContact" {
		t.Fatalf("unexpected form %+v", got)
	}
}

func TestContactFormErrors(t *testing.T) {
	p := New(pkgform.ParserOptions{})
	ctx := context.Background()

	if _, err := p.ContactForm(ctx, nil, ""); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if _, err := p.ContactForm(ctx, []byte(contactDoc), "unknownOp"); err == nil ||
		!strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
	noPaths := `{"openapi": "3.0.3", "info": {"title": "t", "version": "1"}, "paths": {}}`
	if _, err := p.ContactForm(ctx, []byte(noPaths), ""); err == nil {
		t.Fatal("expected error for pathless document")
	}
}

func TestLabelFromName(t *testing.T) {
	cases := map[string]string{
		"email":        "Email",
		"first_name":   "First Name",
		"phone-number": "Phone Number",
	}
	for in, want := range cases {
		if got := pkgform.LabelFromName(in); got != want {
			t.Fatalf("LabelFromName(%q) = %q, want %q", in, got, want)
		}
	}
}
