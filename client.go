package sendcloud

import (
	"context"
	"crypto/md5" // #nosec G501 -- the gateway protocol mandates an MD5 signature
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/etsoo/sendcloud-go/internal/core"
	"github.com/etsoo/sendcloud-go/internal/gateway"
)

// Type aliases to re-export core types for the public API.
// This allows users to access types like sendcloud.Phone instead of
// core.Phone, keeping implementation details internal.
type (
	Country          = core.Country
	Phone            = core.Phone
	PhoneValidator   = core.PhoneValidator
	TemplateKind     = core.TemplateKind
	TemplateItem     = core.TemplateItem
	TemplateRegistry = core.TemplateRegistry
	ActionResult     = core.ActionResult
	Transport        = gateway.Transport
)

// Template kinds.
const (
	KindCode      = core.KindCode
	KindNotice    = core.KindNotice
	KindMarketing = core.KindMarketing
)

// MaxBatchSize is the gateway's per-request recipient limit.
const MaxBatchSize = core.MaxBatchSize

// DefaultSendURL is the gateway's standard send endpoint.
const DefaultSendURL = gateway.DefaultSendURL

// Titles used by locally rejected sends.
const (
	ResultNoValidRecipient = core.ResultNoValidRecipient
	ResultBatchTooLarge    = core.ResultBatchTooLarge
)

// Country and phone functions re-exported from the core package.
var (
	Countries       = core.Countries
	GetCountry      = core.GetCountry
	GetCountryByIDD = core.GetCountryByIDD
	CreatePhone     = core.CreatePhone
	CreatePhones    = core.CreatePhones
	UniquePhones    = core.UniquePhones
)

// Ptr returns a pointer to v, for the optional scope fields of TemplateItem.
func Ptr[T any](v T) *T {
	return &v
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client implements the SMSClient interface and sends templated SMS
// messages through the SendCloud gateway. Sends are safe to run
// concurrently once the template registry is populated.
type Client struct {
	config    Config
	home      Country
	templates TemplateRegistry
	transport Transport
	tracer    trace.Tracer
	mu        sync.RWMutex
	closed    bool
}

// New creates a new SMS client with the given configuration.
func New(config Config, opts ...Option) (*Client, error) {
	// Apply functional options
	for _, opt := range opts {
		opt(&config)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	home := core.GetCountry(config.Country)
	if home == nil {
		home = core.GetCountry("CN")
	}

	client := &Client{
		config: config,
		home:   *home,
		tracer: otel.Tracer("github.com/etsoo/sendcloud-go"),
	}

	client.transport = config.Transport
	if client.transport == nil {
		client.transport = gateway.NewClient(config.HTTPClient, config.Timeout)
	}

	if len(config.Templates) > 0 {
		client.templates.AddAll(config.Templates)
	}

	return client, nil
}

// HomeCountry returns the client's home country.
func (c *Client) HomeCountry() Country {
	return c.home
}

// AddTemplate registers a template. Registration is append-only and must
// complete before the client is shared between goroutines.
func (c *Client) AddTemplate(item TemplateItem) {
	c.templates.Add(item)
}

// AddTemplates registers templates in order.
func (c *Client) AddTemplates(items []TemplateItem) {
	c.templates.AddAll(items)
}

// Template resolves the best-matching registered template, or nil.
func (c *Client) Template(kind TemplateKind, templateID, country, language string) *TemplateItem {
	return c.templates.Resolve(kind, templateID, country, language)
}

// Send dispatches a templated message to a batch of phones. When template
// is nil one is resolved from the batch's countries. Local validation
// failures and gateway rejections are reported through the ActionResult
// with Ok=false; a non-nil error means the pipeline itself failed.
func (c *Client) Send(ctx context.Context, kind TemplateKind, phones []Phone, vars map[string]string, template *TemplateItem) (*ActionResult, error) {
	ctx, span := c.tracer.Start(ctx, "sendcloud.Client.Send")
	defer span.End()

	// Check if client is closed
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		span.RecordError(ErrClientClosed)
		span.SetStatus(codes.Error, ErrClientClosed.Error())
		return nil, ErrClientClosed
	}
	c.mu.RUnlock()

	// Mobile only, duplicates removed.
	validated := make([]Phone, 0, len(phones))
	for _, p := range core.UniquePhones(phones) {
		if p.IsMobile {
			validated = append(validated, p)
		}
	}

	span.SetAttributes(
		attribute.String("sms.kind", kind.String()),
		attribute.Int("sms.recipients", len(validated)),
	)

	if len(validated) == 0 {
		span.SetStatus(codes.Error, ResultNoValidRecipient)
		return core.NewFailedResult(ResultNoValidRecipient), nil
	}
	if len(validated) > MaxBatchSize {
		span.SetStatus(codes.Error, ResultBatchTooLarge)
		return core.NewFailedResult(ResultBatchTooLarge), nil
	}

	// Template and domestic/international classification.
	var intl bool
	switch {
	case template == nil:
		countryIDs := distinctCountries(validated)
		first := countryIDs[0]
		intl = len(countryIDs) > 1 || first != c.home.ID

		// Scope the lookup to the batch's country only when there is one.
		scope := ""
		if len(countryIDs) == 1 {
			scope = first
		}
		template = c.templates.Resolve(kind, "", scope, "")
		if template == nil {
			span.RecordError(ErrTemplateRequired)
			span.SetStatus(codes.Error, "template resolution failed")
			return nil, ErrTemplateRequired
		}
	case template.Country == nil:
		for _, p := range phones {
			if p.CountryID != c.home.ID {
				intl = true
				break
			}
		}
	default:
		intl = *template.Country != c.home.ID
	}

	msgType := 0
	if intl {
		msgType = 2
	}

	numbers := make([]string, len(validated))
	for i, p := range validated {
		if intl {
			numbers[i] = p.ToInternationalFormat(c.home.ExitCode)
		} else {
			numbers[i] = p.PhoneNumber
		}
	}

	if vars == nil {
		vars = map[string]string{}
	}
	varsJSON, err := json.Marshal(vars)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "vars serialization failed")
		return nil, fmt.Errorf("failed to serialize vars: %w", err)
	}

	data := map[string]string{
		"smsUser":    c.config.User,
		"templateId": template.TemplateID,
		"phone":      strings.Join(numbers, ","),
		"msgType":    strconv.Itoa(msgType),
		"vars":       string(varsJSON),
	}
	data["signature"] = c.sign(data)

	endpoint := template.Endpoint
	if endpoint == "" {
		endpoint = c.config.Endpoint
	}
	if endpoint == "" {
		endpoint = DefaultSendURL
	}

	span.SetAttributes(
		attribute.Bool("sms.international", intl),
		attribute.String("sms.template_id", template.TemplateID),
	)

	body, err := c.transport.PostForm(ctx, endpoint, data)
	if err != nil {
		terr := NewTransportError(endpoint, "post failed", err)
		span.RecordError(terr)
		span.SetStatus(codes.Error, "gateway call failed")
		return nil, terr
	}

	resp, err := gateway.ParseResponse(body)
	if err != nil {
		terr := NewTransportError(endpoint, "malformed response", err)
		span.RecordError(terr)
		span.SetStatus(codes.Error, "malformed gateway response")
		return nil, terr
	}

	result := &ActionResult{
		Ok:     resp.Result,
		Status: resp.StatusCode,
		Data:   resp.Info,
	}
	if resp.Message != nil {
		result.Title = *resp.Message
	}
	if result.Data == nil {
		result.Data = map[string]any{}
	}

	if result.Ok {
		span.SetStatus(codes.Ok, "message sent")
	} else {
		span.SetStatus(codes.Error, "gateway rejected the send")
	}

	return result, nil
}

// SendByID dispatches using an exact template id lookup. When the id is
// unknown the send falls back to resolution by the batch's countries.
func (c *Client) SendByID(ctx context.Context, kind TemplateKind, phones []Phone, vars map[string]string, templateID string) (*ActionResult, error) {
	return c.Send(ctx, kind, phones, vars, c.templates.Resolve(kind, templateID, "", ""))
}

// SendNumbers parses raw numbers with the home country as the default and
// dispatches to the result. Parsing stops at the first invalid number,
// matching CreatePhones.
func (c *Client) SendNumbers(ctx context.Context, kind TemplateKind, numbers []string, vars map[string]string, template *TemplateItem) (*ActionResult, error) {
	return c.Send(ctx, kind, core.CreatePhones(numbers, c.home.ID), vars, template)
}

// SendCode sends a verification code to a single phone.
func (c *Client) SendCode(ctx context.Context, phone Phone, code string, template *TemplateItem) (*ActionResult, error) {
	return c.Send(ctx, KindCode, []Phone{phone}, map[string]string{"code": code}, template)
}

// SendCodeByID sends a verification code using an exact template id.
func (c *Client) SendCodeByID(ctx context.Context, phone Phone, code string, templateID string) (*ActionResult, error) {
	return c.SendCode(ctx, phone, code, c.templates.Resolve(KindCode, templateID, "", ""))
}

// Close closes the client. Subsequent sends fail with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// sign computes the keyed digest over the payload rendered as "k=v&" pairs
// in sorted key order, bracketed by the secret key. The signature field
// itself is never part of the hashed material.
func (c *Client) sign(data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.config.Key)
	b.WriteString("&")
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(data[k])
		b.WriteString("&")
	}
	b.WriteString(c.config.Key)

	sum := md5.Sum([]byte(b.String())) // #nosec G401 -- gateway wire contract
	return hex.EncodeToString(sum[:])
}

// distinctCountries returns the batch's country ids in first-appearance order.
func distinctCountries(phones []Phone) []string {
	seen := make(map[string]struct{}, len(phones))
	ids := make([]string, 0, len(phones))
	for _, p := range phones {
		if _, ok := seen[p.CountryID]; ok {
			continue
		}
		seen[p.CountryID] = struct{}{}
		ids = append(ids, p.CountryID)
	}
	return ids
}
