// Package stripepay talks to Stripe Checkout and verifies its webhooks.
package stripepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

var ErrInvalidSignature = errors.New("stripe: invalid webhook signature")

type Gateway struct {
	api           *client.API
	webhookSecret string
}

func New(secretKey, webhookSecret string) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Gateway{api: api, webhookSecret: webhookSecret}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	params := checkoutParams(req)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func checkoutParams(req domain.CheckoutRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:            stripe.String(req.CustomerEmail),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.ProductDescription),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}

// ParseEvent verifies the Stripe-Signature header against the raw payload.
func (g *Gateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return toPaymentEvent(event)
}

func toPaymentEvent(event stripe.Event) (*domain.PaymentEvent, error) {
	out := &domain.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return out, nil
	}

	var obj struct {
		ID     string `json:"id"`
		Object string `json:"object"`
	}
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return nil, fmt.Errorf("decode event object: %w", err)
	}
	if obj.Object == "checkout.session" {
		out.SessionID = obj.ID
	}
	return out, nil
}

// GetSession re-fetches a checkout session with its line items expanded.
func (g *Gateway) GetSession(ctx context.Context, id string) (*domain.SessionDetail, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items.data.price.product")

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.HTTPStatusCode == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toSessionDetail(s), nil
}

func toSessionDetail(s *stripe.CheckoutSession) *domain.SessionDetail {
	d := &domain.SessionDetail{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
		CustomerEmail: s.CustomerEmail,
	}
	if s.CustomerDetails != nil {
		if s.CustomerDetails.Email != "" {
			d.CustomerEmail = s.CustomerDetails.Email
		}
		d.CustomerName = s.CustomerDetails.Name
	}
	if s.LineItems != nil && len(s.LineItems.Data) > 0 {
		item := s.LineItems.Data[0]
		d.ProductName = item.Description
		if item.Price != nil && item.Price.Product != nil {
			if item.Price.Product.Name != "" {
				d.ProductName = item.Price.Product.Name
			}
			d.ProductDescription = item.Price.Product.Description
		}
	}
	if d.Metadata == nil {
		d.Metadata = map[string]string{}
	}
	return d
}
