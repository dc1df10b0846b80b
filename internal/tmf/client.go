package tmf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// ErrUnavailable indicates OpenSlice could not be reached or answered with a
// server error. Handlers map it to 503.
var ErrUnavailable = errors.New("openslice unavailable")

// OpenSlice TMF API paths.
const (
	serviceOrderPath = "/tmf-api/serviceOrdering/v4/serviceOrder"
	serviceSpecPath  = "/tmf-api/serviceCatalogManagement/v4/serviceSpecification"
	inventoryPath    = "/tmf-api/serviceInventory/v4/service"
)

// Client talks to the OpenSlice TMF APIs (service catalog, service ordering
// and service inventory).
type Client struct {
	rest *resty.Client
}

// NewClient creates a client for the OpenSlice instance at host (without
// scheme), e.g. "10.255.32.80" or "openslice:8080".
func NewClient(host string) *Client {
	base := host
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	// Retries replay PATCH requests as well. Characteristic updates are
	// idempotent merges, so a replayed patch converges to the same state.
	rest := resty.New().
		SetBaseURL(base).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{rest: rest}
}

// ListActiveServiceOrders returns all service orders in an active state.
func (c *Client) ListActiveServiceOrders(ctx context.Context) ([]ServiceOrder, error) {
	var orders []ServiceOrder
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&orders).
		Get(serviceOrderPath)
	if err := c.check(resp, err, "list service orders"); err != nil {
		return nil, err
	}

	active := orders[:0]
	for _, order := range orders {
		if order.Active() {
			active = append(active, order)
		}
	}
	return active, nil
}

// GetServiceOrder fetches a single service order by id.
func (c *Client) GetServiceOrder(ctx context.Context, id string) (*ServiceOrder, error) {
	var order ServiceOrder
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&order).
		Get(serviceOrderPath + "/" + id)
	if err := c.check(resp, err, "get service order "+id); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListServiceSpecs returns all service specifications in the catalog.
func (c *Client) ListServiceSpecs(ctx context.Context) ([]ServiceSpec, error) {
	var specs []ServiceSpec
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&specs).
		Get(serviceSpecPath)
	if err := c.check(resp, err, "list service specs"); err != nil {
		return nil, err
	}
	return specs, nil
}

// GetServiceSpec fetches a single service specification by id.
func (c *Client) GetServiceSpec(ctx context.Context, id string) (*ServiceSpec, error) {
	var spec ServiceSpec
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&spec).
		Get(serviceSpecPath + "/" + id)
	if err := c.check(resp, err, "get service spec "+id); err != nil {
		return nil, err
	}
	return &spec, nil
}

// UpdateServiceOrderAndInventories patches the service order's items with the
// spec's characteristics and propagates the same characteristics to every
// inventory entry created by the order. The updated order is returned.
func (c *Client) UpdateServiceOrderAndInventories(ctx context.Context, orderID string, spec ServiceSpec) (*ServiceOrder, error) {
	order, err := c.GetServiceOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		for _, char := range spec.Characteristics {
			applyToService(&item.Service, char)
		}
	}

	var updated ServiceOrder
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"orderItem": order.OrderItems}).
		SetResult(&updated).
		Patch(serviceOrderPath + "/" + orderID)
	if err := c.check(resp, err, "update service order "+orderID); err != nil {
		return nil, err
	}

	if err := c.updateInventories(ctx, orderID, spec.Characteristics); err != nil {
		return nil, err
	}

	log.Debug().Str("order", orderID).Int("characteristics", len(spec.Characteristics)).
		Msg("updated service order and inventories")
	return &updated, nil
}

// UpdateServiceOrdersFromSpec applies the spec's characteristics to every
// active service order referencing it, returning the updated orders.
func (c *Client) UpdateServiceOrdersFromSpec(ctx context.Context, spec ServiceSpec) ([]ServiceOrder, error) {
	orders, err := c.ListActiveServiceOrders(ctx)
	if err != nil {
		return nil, err
	}

	var updated []ServiceOrder
	for _, order := range orders {
		if !order.ReferencesSpec(spec) {
			continue
		}
		result, err := c.UpdateServiceOrderAndInventories(ctx, order.ID, spec)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *result)
	}
	return updated, nil
}

// ListInventoriesForOrder returns the inventory entries created by the order.
func (c *Client) ListInventoriesForOrder(ctx context.Context, orderID string) ([]ServiceInventory, error) {
	var inventories []ServiceInventory
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("serviceOrderId", orderID).
		SetResult(&inventories).
		Get(inventoryPath)
	if err := c.check(resp, err, "list inventories for order "+orderID); err != nil {
		return nil, err
	}
	return inventories, nil
}

func (c *Client) updateInventories(ctx context.Context, orderID string, chars []Characteristic) error {
	inventories, err := c.ListInventoriesForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, inventory := range inventories {
		inventory.ApplyCharacteristics(chars)
		resp, err := c.rest.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]any{"serviceCharacteristic": inventory.Characteristics}).
			Patch(inventoryPath + "/" + inventory.UUID)
		if err := c.check(resp, err, "update inventory "+inventory.UUID); err != nil {
			return err
		}
	}
	return nil
}

// check normalizes transport and server errors into ErrUnavailable and
// surfaces client errors verbatim.
func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode())
	}
	if resp.IsError() {
		return fmt.Errorf("%s: openslice returned status %d: %s", op, resp.StatusCode(), resp.String())
	}
	return nil
}

func applyToService(svc *OrderService, char Characteristic) {
	for i, existing := range svc.Characteristics {
		if existing.Name == char.Name {
			svc.Characteristics[i].Value = char.Value
			return
		}
	}
	svc.Characteristics = append(svc.Characteristics, char)
}
