package sendcloud

import (
	"context"
)

// Public interfaces for the sendcloud library
type (
	// SMSClient defines the send pipeline contract.
	// All methods are safe for concurrent use once templates are registered.
	SMSClient interface {
		TemplateStore

		// Send dispatches a templated message to a batch of phones.
		// A nil template is resolved from the batch's countries.
		Send(ctx context.Context, kind TemplateKind, phones []Phone, vars map[string]string, template *TemplateItem) (*ActionResult, error)

		// SendByID dispatches using an exact template id lookup.
		SendByID(ctx context.Context, kind TemplateKind, phones []Phone, vars map[string]string, templateID string) (*ActionResult, error)

		// SendNumbers parses raw numbers with the home country as the
		// default and dispatches to the result.
		SendNumbers(ctx context.Context, kind TemplateKind, numbers []string, vars map[string]string, template *TemplateItem) (*ActionResult, error)

		// SendCode sends a verification code to a single phone.
		SendCode(ctx context.Context, phone Phone, code string, template *TemplateItem) (*ActionResult, error)

		// SendCodeByID sends a verification code using an exact template id.
		SendCodeByID(ctx context.Context, phone Phone, code string, templateID string) (*ActionResult, error)

		// Close closes the client. After Close, sends fail with ErrClientClosed.
		Close() error
	}

	// TemplateStore defines template registration and lookup. Registration
	// is append-only and must complete before concurrent resolution starts.
	TemplateStore interface {
		// AddTemplate registers a template.
		AddTemplate(item TemplateItem)

		// AddTemplates registers templates in order.
		AddTemplates(items []TemplateItem)

		// Template resolves the best-matching template, or nil.
		Template(kind TemplateKind, templateID, country, language string) *TemplateItem
	}
)
