// Package mailing renders sequence step content and dispatches it
// through AWS SES. Templates use the Liquid language so step bodies can
// personalize on contact fields without code changes.
package mailing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"
	"github.com/ignite/outreach-scheduler/internal/domain"
)

// TemplateService renders Liquid step templates with parse caching.
type TemplateService struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateService creates a template service with the filters step
// authors rely on.
func NewTemplateService() *TemplateService {
	engine := liquid.NewEngine()

	// {{ first_name | default: "there" }} is the single most common
	// pattern in cold-outreach copy.
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	engine.RegisterFilter("capitalize", func(s string) string {
		if len(s) == 0 {
			return s
		}
		return strings.ToUpper(string(s[0])) + s[1:]
	})

	return &TemplateService{engine: engine}
}

// Bindings builds the Liquid variable set for one contact/step pair.
func Bindings(contact domain.Contact, step domain.SequenceStep, senderIndex int) map[string]interface{} {
	return map[string]interface{}{
		"first_name":   contact.FirstName,
		"last_name":    contact.LastName,
		"company":      contact.Company,
		"email":        contact.Email,
		"step_number":  step.StepNumber,
		"sender_index": senderIndex,
	}
}

// Render renders one template string against bindings, using the parse
// cache keyed by template source.
func (ts *TemplateService) Render(src string, bindings map[string]interface{}) (string, error) {
	if cached, ok := ts.cache.Load(src); ok {
		out, err := cached.(*liquid.Template).Render(bindings)
		if err != nil {
			return "", fmt.Errorf("render template: %w", err)
		}
		return string(out), nil
	}

	tpl, err := ts.engine.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	ts.cache.Store(src, tpl)

	out, err := tpl.Render(bindings)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return string(out), nil
}

// RenderStep renders a step's subject and body for one contact.
func (ts *TemplateService) RenderStep(contact domain.Contact, step domain.SequenceStep, senderIndex int) (subject, body string, err error) {
	bindings := Bindings(contact, step, senderIndex)

	subject, err = ts.Render(step.Subject, bindings)
	if err != nil {
		return "", "", fmt.Errorf("step %d subject: %w", step.StepNumber, err)
	}
	body, err = ts.Render(step.Body, bindings)
	if err != nil {
		return "", "", fmt.Errorf("step %d body: %w", step.StepNumber, err)
	}
	return subject, body, nil
}
