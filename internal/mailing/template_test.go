package mailing

import (
	"testing"

	"github.com/ignite/outreach-scheduler/internal/domain"
)

func TestRenderStep(t *testing.T) {
	ts := NewTemplateService()
	contact := domain.Contact{
		ID: "contact-1", Email: "ada@acme.example",
		FirstName: "Ada", Company: "Acme",
	}
	step := domain.SequenceStep{
		StepNumber: 1,
		Subject:    "Quick question, {{ first_name }}",
		Body:       "<p>Hi {{ first_name }}, saw what {{ company }} is building.</p>",
	}

	subject, body, err := ts.RenderStep(contact, step, 0)
	if err != nil {
		t.Fatalf("RenderStep: %v", err)
	}
	if subject != "Quick question, Ada" {
		t.Errorf("subject = %q", subject)
	}
	if body != "<p>Hi Ada, saw what Acme is building.</p>" {
		t.Errorf("body = %q", body)
	}
}

func TestRender_DefaultFilter(t *testing.T) {
	ts := NewTemplateService()
	contact := domain.Contact{ID: "contact-2", Email: "x@example.com"} // no first name
	step := domain.SequenceStep{
		StepNumber: 1,
		Subject:    `Hey {{ first_name | default: "there" }}`,
		Body:       "b",
	}

	subject, _, err := ts.RenderStep(contact, step, 0)
	if err != nil {
		t.Fatalf("RenderStep: %v", err)
	}
	if subject != "Hey there" {
		t.Errorf("subject = %q, want default applied", subject)
	}
}

func TestRender_ParseErrorSurfaces(t *testing.T) {
	ts := NewTemplateService()
	if _, err := ts.Render("{% if %}", nil); err == nil {
		t.Error("malformed template must error")
	}
}

func TestRender_CacheReturnsSameOutput(t *testing.T) {
	ts := NewTemplateService()
	bindings := map[string]interface{}{"first_name": "Ada"}

	out1, err := ts.Render("Hi {{ first_name }}", bindings)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	out2, err := ts.Render("Hi {{ first_name }}", bindings)
	if err != nil {
		t.Fatalf("cached render: %v", err)
	}
	if out1 != out2 || out1 != "Hi Ada" {
		t.Errorf("renders differ: %q vs %q", out1, out2)
	}
}
